package provision

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devshell-sh/cli/internal/constants"
	configMediator "github.com/devshell-sh/cli/internal/mediators/config"
	"github.com/devshell-sh/cli/pkg/channel"
	"github.com/devshell-sh/cli/pkg/descriptor"
)

func TestToolAttributes(t *testing.T) {
	report := &Report{Tools: []ToolResult{
		{
			Name:       "rust-toolchain",
			Version:    "1.78.0",
			InstallDir: "/opt/rust",
			Attributes: map[string]string{"src": "/opt/rust/lib/rustlib/src"},
		},
		{
			Name:       "sdl2",
			Version:    "2.30",
			InstallDir: "/opt/sdl2",
			Attributes: map[string]string{"bin": "/opt/sdl2/tools"},
		},
	}}

	attrs := report.ToolAttributes()

	// attributes the backend did not report are derived from the install dir
	rust := attrs["rust-toolchain"]
	assert.Equal(t, "/opt/rust", rust["root"])
	assert.Equal(t, filepath.Join("/opt/rust", "bin"), rust["bin"])
	assert.Equal(t, "/opt/rust/lib/rustlib/src", rust["src"])
	assert.Equal(t, "1.78.0", rust["version"])

	// reported attributes win over derived ones
	assert.Equal(t, "/opt/sdl2/tools", attrs["sdl2"]["bin"])
}

func TestResult(t *testing.T) {
	report := &Report{Tools: []ToolResult{{Name: "cargo"}}}

	require.NotNil(t, report.Result("cargo"))
	assert.Nil(t, report.Result("ghost"))
}

func TestBackendRequest(t *testing.T) {
	snapshot := &channel.Snapshot{Channel: "stable", SnapshotID: "abc"}
	req := newBackendRequest(snapshot, []descriptor.ToolRequest{{Name: "cargo"}})

	assert.Equal(t, "stable", req.Channel)
	assert.Equal(t, "abc", req.SnapshotID)
	assert.NotEmpty(t, req.CacheDir)
	require.Len(t, req.Tools, 1)
	assert.Equal(t, "cargo", req.Tools[0].Name)
}

func TestBackendOptionRegistered(t *testing.T) {
	opt := configMediator.GetOption(ConfigKeyBackend)
	require.True(t, configMediator.KnownOption(opt))
	assert.Equal(t, configMediator.String, opt.Type)
	assert.Equal(t, constants.DefaultBackendCommand, opt.Default)
}
