package check

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devshell-sh/cli/internal/constants"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/primer"
	"github.com/devshell-sh/cli/internal/testhelpers/outputhelper"
)

const sampleDescriptor = `
name: pixelforge
channel: nixpkgs-unstable
tools:
  - rust-toolchain
  - sdl2
env:
  - name: RUST_SRC_PATH
    value: ${tools.rust-toolchain.src}
`

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.ConfigFileName), []byte(sampleDescriptor), 0644))

	out := &outputhelper.TypedCatcher{}
	runner := New(primer.New(out))
	require.NoError(t, runner.Run(&Params{Path: dir}))

	require.Len(t, out.Prints, 1)
	res, ok := out.Prints[0].(*result)
	require.True(t, ok)
	assert.Equal(t, "pixelforge", res.Name)
	assert.Equal(t, "nixpkgs-unstable", res.Channel)
	assert.Equal(t, []string{"rust-toolchain", "sdl2"}, res.Tools)
	assert.Equal(t, []string{"RUST_SRC_PATH"}, res.Vars)
}

func TestCheckBrokenDescriptor(t *testing.T) {
	dir := t.TempDir()
	broken := "name: broken\ntools:\n  - ghost-user\nenv:\n  - name: V\n    value: ${tools.ghost.bin}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.ConfigFileName), []byte(broken), 0644))

	out := &outputhelper.TypedCatcher{}
	runner := New(primer.New(out))

	err := runner.Run(&Params{Path: dir})
	require.Error(t, err)
	assert.True(t, locale.IsInputError(err))
}

func TestCheckNoDescriptor(t *testing.T) {
	out := &outputhelper.TypedCatcher{}
	runner := New(primer.New(out))

	err := runner.Run(&Params{Path: t.TempDir()})
	require.Error(t, err)
	assert.True(t, locale.IsInputError(err))
}
