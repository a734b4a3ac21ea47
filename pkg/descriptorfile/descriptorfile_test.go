package descriptorfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devshell-sh/cli/internal/constants"
	"github.com/devshell-sh/cli/internal/locale"
)

const sampleDescriptor = `
name: pixelforge
channel: nixpkgs-unstable
tools:
  - rust-toolchain
  - cargo
  - name: sdl2
    version: "2.30"
  - pkg-config
env:
  - name: RUST_SRC_PATH
    value: ${tools.rust-toolchain.src}
  - name: PKG_CONFIG_PATH
    values:
      - ${tools.sdl2.root}/lib/pkgconfig
    join: prepend
`

func writeDescriptor(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, constants.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestParse(t *testing.T) {
	path := writeDescriptor(t, t.TempDir(), sampleDescriptor)

	d, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "pixelforge", d.Name)
	assert.Equal(t, "nixpkgs-unstable", d.Channel)
	assert.Equal(t, path, d.Path())
	assert.Equal(t, []string{"rust-toolchain", "cargo", "sdl2", "pkg-config"}, d.ToolNames())

	// scalar entries carry no version, map entries do
	assert.Equal(t, "", d.Tools[0].Version)
	assert.Equal(t, "2.30", d.Tools[2].Version)

	require.Len(t, d.Env, 2)
	assert.Equal(t, "RUST_SRC_PATH", d.Env[0].Name)
	assert.Equal(t, []string{"${tools.rust-toolchain.src}"}, d.Env[0].AllValues())
	assert.Equal(t, "PKG_CONFIG_PATH", d.Env[1].Name)
	assert.Equal(t, []string{"${tools.sdl2.root}/lib/pkgconfig"}, d.Env[1].AllValues())
	assert.Equal(t, "prepend", d.Env[1].Join)

	assert.True(t, d.HasTool("cargo"))
	assert.True(t, d.HasTool("CARGO"))
	assert.False(t, d.HasTool("ghost"))
}

func TestParseDefaultChannel(t *testing.T) {
	path := writeDescriptor(t, t.TempDir(), "name: minimal\ntools:\n  - cargo\n")

	d, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultChannel, d.Channel)
}

func TestParseMissing(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), constants.ConfigFileName))
	require.Error(t, err)
	assert.True(t, locale.IsInputError(err))
}

func TestParseInvalidYaml(t *testing.T) {
	path := writeDescriptor(t, t.TempDir(), "name: [broken\n")
	_, err := Parse(path)
	require.Error(t, err)
	assert.True(t, locale.IsInputError(err))
}

func TestParseLocalOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeDescriptor(t, dir, sampleDescriptor)

	local := "channel: nixpkgs-unstable@a1b2c3\ntools:\n  - gdb\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.LocalOverrideFileName), []byte(local), 0644))

	d, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "pixelforge", d.Name, "name survives the override")
	assert.Equal(t, "nixpkgs-unstable@a1b2c3", d.Channel, "local channel wins")
	assert.Equal(t, []string{"rust-toolchain", "cargo", "sdl2", "pkg-config", "gdb"}, d.ToolNames(), "local tools are appended")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		descriptor *DescriptorFile
	}{
		{
			"no name",
			&DescriptorFile{},
		},
		{
			"invalid tool name",
			&DescriptorFile{Name: "x", Tools: []*Tool{{Name: "not a tool"}}},
		},
		{
			"dotted tool name",
			&DescriptorFile{Name: "x", Tools: []*Tool{{Name: "foo.bar"}}},
		},
		{
			"duplicate tool",
			&DescriptorFile{Name: "x", Tools: []*Tool{{Name: "cargo"}, {Name: "cargo"}}},
		},
		{
			"invalid var name",
			&DescriptorFile{Name: "x", Env: []*EnvVar{{Name: "BAD NAME", Value: "v"}}},
		},
		{
			"duplicate var",
			&DescriptorFile{Name: "x", Env: []*EnvVar{{Name: "V", Value: "a"}, {Name: "V", Value: "b"}}},
		},
		{
			"value and values",
			&DescriptorFile{Name: "x", Env: []*EnvVar{{Name: "V", Value: "a", Values: []string{"b"}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.descriptor.Validate()
			require.Error(t, err)
			assert.True(t, locale.IsInputError(err), "validation failures are input errors")
		})
	}
}

func TestGetDescriptorFilePath(t *testing.T) {
	dir := t.TempDir()
	path := writeDescriptor(t, dir, sampleDescriptor)

	nested := filepath.Join(dir, "src", "engine")
	require.NoError(t, os.MkdirAll(nested, 0755))

	found, err := GetDescriptorFilePath(nested)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestFromPath(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, sampleDescriptor)

	d, err := FromPath(dir)
	require.NoError(t, err)
	assert.Equal(t, "pixelforge", d.Name)
	assert.Equal(t, dir, d.Dir())
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeDescriptor(t, dir, sampleDescriptor)

	d, err := Parse(path)
	require.NoError(t, err)

	d.Name = "renamed"
	require.NoError(t, d.Save())

	reparsed, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "renamed", reparsed.Name)
	assert.Equal(t, d.ToolNames(), reparsed.ToolNames())
}
