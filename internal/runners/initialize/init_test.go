package initialize

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devshell-sh/cli/internal/constants"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/primer"
	"github.com/devshell-sh/cli/internal/testhelpers/outputhelper"
	"github.com/devshell-sh/cli/pkg/descriptorfile"
)

func TestInitialize(t *testing.T) {
	dir := t.TempDir()
	out := &outputhelper.TypedCatcher{}

	runner := New(primer.New(out))
	require.NoError(t, runner.Run(&Params{Path: dir}))

	target := filepath.Join(dir, constants.ConfigFileName)
	d, err := descriptorfile.Parse(target)
	require.NoError(t, err, "the generated descriptor parses and validates")

	assert.Equal(t, filepath.Base(dir), d.Name)
	assert.Equal(t, constants.DefaultChannel, d.Channel)
	assert.True(t, d.HasTool("rust-toolchain"))
	assert.NotEmpty(t, out.Notices)
}

func TestInitializeNameAndChannel(t *testing.T) {
	dir := t.TempDir()
	out := &outputhelper.TypedCatcher{}

	runner := New(primer.New(out))
	require.NoError(t, runner.Run(&Params{Path: dir, Name: "pixelforge", Channel: "nixpkgs-unstable"}))

	d, err := descriptorfile.Parse(filepath.Join(dir, constants.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, "pixelforge", d.Name)
	assert.Equal(t, "nixpkgs-unstable", d.Channel)
}

func TestInitializeRefusesExisting(t *testing.T) {
	dir := t.TempDir()
	out := &outputhelper.TypedCatcher{}

	runner := New(primer.New(out))
	require.NoError(t, runner.Run(&Params{Path: dir}))

	err := runner.Run(&Params{Path: dir})
	require.Error(t, err)
	assert.True(t, locale.IsInputError(err))
}
