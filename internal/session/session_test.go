package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devshell-sh/cli/internal/constants"
	"github.com/devshell-sh/cli/internal/fileutils"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/provision"
	"github.com/devshell-sh/cli/pkg/channel"
	"github.com/devshell-sh/cli/pkg/descriptor"
	"github.com/devshell-sh/cli/pkg/descriptorfile"
	"github.com/devshell-sh/cli/pkg/envdef"
)

type fakeResolver struct {
	snapshot *channel.Snapshot
	calls    int
}

func (r *fakeResolver) Resolve(ref channel.Ref) (*channel.Snapshot, error) {
	r.calls++
	return r.snapshot, nil
}

// toolExecutables names the executables each tool of the test descriptor ships
var toolExecutables = map[string][]string{
	"rust-toolchain": {"rustc"},
	"cargo":          {"cargo"},
	"rustfmt":        {"rustfmt"},
	"clippy":         {"clippy-driver"},
	"rust-analyzer":  {"rust-analyzer"},
}

// fakeProvisioner materializes tools under a base directory the way a real
// backend would, shipping a PATH contribution per tool
type fakeProvisioner struct {
	base  string
	calls int
}

func (p *fakeProvisioner) Provision(snapshot *channel.Snapshot, tools []descriptor.ToolRequest) (*provision.Report, error) {
	p.calls++
	report := &provision.Report{}
	for _, tool := range tools {
		installDir := filepath.Join(p.base, tool.Name)

		for _, exe := range toolExecutables[tool.Name] {
			if err := fileutils.Touch(filepath.Join(installDir, "bin", exe)); err != nil {
				return nil, err
			}
		}

		result := provision.ToolResult{
			Name:       tool.Name,
			Version:    "1.0.0",
			InstallDir: installDir,
			Env: &envdef.EnvironmentDefinition{
				InstallDir: installDir,
				Env: []envdef.EnvironmentVariable{{
					Name:      "PATH",
					Values:    []string{filepath.Join(installDir, "bin")},
					Join:      envdef.Prepend,
					Inherit:   true,
					Separator: ":",
				}},
			},
		}

		switch tool.Name {
		case "rust-toolchain":
			src := filepath.Join(installDir, "lib", "rustlib", "src", "rust", "library")
			if err := fileutils.Mkdir(src); err != nil {
				return nil, err
			}
			result.Attributes = map[string]string{"src": src}
		case "sdl2", "sdl2-ttf":
			pc := strings.ReplaceAll(tool.Name, "-", "_") + ".pc"
			if err := fileutils.Touch(filepath.Join(installDir, "lib", "pkgconfig", pc)); err != nil {
				return nil, err
			}
		}

		report.Tools = append(report.Tools, result)
	}
	return report, nil
}

func testRequest(t *testing.T) *descriptor.EnvironmentRequest {
	t.Helper()
	file := &descriptorfile.DescriptorFile{
		Name:    "pixelforge",
		Channel: "nixpkgs-unstable",
		Tools: []*descriptorfile.Tool{
			{Name: "rust-toolchain"},
			{Name: "cargo"},
			{Name: "rustfmt"},
			{Name: "clippy"},
			{Name: "rust-analyzer"},
			{Name: "sdl2"},
			{Name: "sdl2-ttf"},
			{Name: "pkg-config"},
		},
		Env: []*descriptorfile.EnvVar{
			{Name: "RUST_SRC_PATH", Value: "${tools.rust-toolchain.src}"},
			{Name: "PKG_CONFIG_PATH", Values: []string{
				"${tools.sdl2.root}/lib/pkgconfig",
				"${tools.sdl2-ttf.root}/lib/pkgconfig",
			}},
		},
	}
	file.SetPath(filepath.Join(t.TempDir(), constants.ConfigFileName))

	request, err := descriptor.New(file).Evaluate()
	require.NoError(t, err)
	return request
}

func testSession(t *testing.T) (*Session, *fakeResolver, *fakeProvisioner) {
	t.Helper()
	resolver := &fakeResolver{snapshot: &channel.Snapshot{Channel: "nixpkgs-unstable", SnapshotID: "aaa"}}
	provisioner := &fakeProvisioner{base: t.TempDir()}
	history := channel.NewHistoryAt(filepath.Join(t.TempDir(), "snapshots.json"))

	sess := New(testRequest(t), t.TempDir(), resolver, provisioner, history)
	return sess, resolver, provisioner
}

// containsDirWith reports whether any of the list entries is a directory
// holding the named file
func containsDirWith(entries []string, filename string) bool {
	for _, dir := range entries {
		if fileutils.FileExists(filepath.Join(dir, filename)) {
			return true
		}
	}
	return false
}

func TestEnv(t *testing.T) {
	sess, _, _ := testSession(t)

	env, err := sess.Env(false)
	require.NoError(t, err)

	pathEntries := strings.Split(env["PATH"], ":")
	for _, executables := range toolExecutables {
		for _, exe := range executables {
			assert.True(t, containsDirWith(pathEntries, exe), "%s should be on PATH (%s)", exe, env["PATH"])
		}
	}

	pkgEntries := strings.Split(env["PKG_CONFIG_PATH"], ":")
	assert.True(t, containsDirWith(pkgEntries, "sdl2.pc"), "sdl2.pc should be discoverable via PKG_CONFIG_PATH")
	assert.True(t, containsDirWith(pkgEntries, "sdl2_ttf.pc"), "sdl2_ttf.pc should be discoverable via PKG_CONFIG_PATH")

	require.NotEmpty(t, env["RUST_SRC_PATH"])
	assert.True(t, fileutils.DirExists(env["RUST_SRC_PATH"]), "RUST_SRC_PATH should point at an existing directory")

	assert.Equal(t, sess.ActivationID(), env[constants.ActivatedIDEnvVarName])
	assert.NotEmpty(t, env[constants.ActivatedEnvVarName])
}

func TestEnvIsBuiltOnce(t *testing.T) {
	sess, resolver, provisioner := testSession(t)

	first, err := sess.Env(false)
	require.NoError(t, err)
	second, err := sess.Env(false)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, resolver.calls, "the channel is resolved once per session")
	assert.Equal(t, 1, provisioner.calls, "tools are provisioned once per session")
	assert.Equal(t, "aaa", sess.Snapshot().SnapshotID)
}

func TestEnvInheritsBaseEnvironment(t *testing.T) {
	sess, _, _ := testSession(t)

	t.Setenv("PATH", "/base/bin")

	env, err := sess.Env(true)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(env["PATH"], "/base/bin"), "tool directories are prepended to the inherited PATH (%s)", env["PATH"])
}

func TestDrift(t *testing.T) {
	resolver := &fakeResolver{snapshot: &channel.Snapshot{Channel: "nixpkgs-unstable", SnapshotID: "bbb"}}
	provisioner := &fakeProvisioner{base: t.TempDir()}
	history := channel.NewHistoryAt(filepath.Join(t.TempDir(), "snapshots.json"))

	_, err := history.Record(&channel.Snapshot{Channel: "nixpkgs-unstable", SnapshotID: "aaa"})
	require.NoError(t, err)

	sess := New(testRequest(t), t.TempDir(), resolver, provisioner, history)
	_, err = sess.Env(false)
	require.NoError(t, err)

	previous, drifted := sess.Drift()
	require.True(t, drifted, "the channel head moved, drift should be reported")
	assert.Equal(t, "aaa", previous.SnapshotID)
}

func TestNoDriftOnStableHead(t *testing.T) {
	sess, _, _ := testSession(t)

	_, err := sess.Env(false)
	require.NoError(t, err)

	_, drifted := sess.Drift()
	assert.False(t, drifted)
}

// staticProvisioner returns a canned report, for conflict and omission cases
type staticProvisioner struct {
	report *provision.Report
}

func (p *staticProvisioner) Provision(*channel.Snapshot, []descriptor.ToolRequest) (*provision.Report, error) {
	return p.report, nil
}

func singleVarDefinition(installDir, name, value string) *envdef.EnvironmentDefinition {
	return &envdef.EnvironmentDefinition{
		InstallDir: installDir,
		Env: []envdef.EnvironmentVariable{{
			Name:      name,
			Values:    []string{value},
			Join:      envdef.Disallowed,
			Separator: ":",
		}},
	}
}

func TestEnvConflict(t *testing.T) {
	request := &descriptor.EnvironmentRequest{
		Name:    "conflicted",
		Channel: channel.Ref{Name: "stable"},
		Tools: []descriptor.ToolRequest{
			{Name: "tool-a"},
			{Name: "tool-b"},
		},
	}

	provisioner := &staticProvisioner{report: &provision.Report{Tools: []provision.ToolResult{
		{Name: "tool-a", InstallDir: "/opt/a", Env: singleVarDefinition("/opt/a", "CC", "gcc")},
		{Name: "tool-b", InstallDir: "/opt/b", Env: singleVarDefinition("/opt/b", "CC", "clang")},
	}}}
	resolver := &fakeResolver{snapshot: &channel.Snapshot{Channel: "stable", SnapshotID: "aaa"}}

	sess := New(request, t.TempDir(), resolver, provisioner, nil)
	_, err := sess.Env(false)
	require.Error(t, err)

	message := locale.JoinedErrorMessage(err)
	assert.Contains(t, message, "CC", "the conflict names the variable")
	assert.Contains(t, message, "gcc")
	assert.Contains(t, message, "clang")
}

func TestEnvMissingToolResult(t *testing.T) {
	request := &descriptor.EnvironmentRequest{
		Name:    "partial",
		Channel: channel.Ref{Name: "stable"},
		Tools:   []descriptor.ToolRequest{{Name: "tool-a"}},
	}

	provisioner := &staticProvisioner{report: &provision.Report{}}
	resolver := &fakeResolver{snapshot: &channel.Snapshot{Channel: "stable", SnapshotID: "aaa"}}

	sess := New(request, t.TempDir(), resolver, provisioner, nil)
	_, err := sess.Env(false)
	require.Error(t, err)
	assert.Contains(t, locale.JoinedErrorMessage(err), "tool-a")
}

func TestParseJoinDefaults(t *testing.T) {
	join, err := parseJoin(descriptor.VariableRequest{Name: "V", Values: []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, envdef.Disallowed, join, "single value variables default to disallowed")

	join, err = parseJoin(descriptor.VariableRequest{Name: "V", Values: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, envdef.Prepend, join, "multi value variables default to prepend")

	join, err = parseJoin(descriptor.VariableRequest{Name: "V", Values: []string{"a"}, Join: "append"})
	require.NoError(t, err)
	assert.Equal(t, envdef.Append, join)

	_, err = parseJoin(descriptor.VariableRequest{Name: "V", Values: []string{"a"}, Join: "sideways"})
	require.Error(t, err)
	assert.True(t, locale.IsInputError(err))
}

func TestIsActivated(t *testing.T) {
	t.Setenv(constants.ActivatedEnvVarName, "")
	os.Unsetenv(constants.ActivatedEnvVarName)
	assert.False(t, IsActivated())

	t.Setenv(constants.ActivatedEnvVarName, "/some/project")
	assert.True(t, IsActivated())
}
