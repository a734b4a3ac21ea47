package provision

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/devshell-sh/cli/internal/constants"
	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/installation/storage"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/logging"
	configMediator "github.com/devshell-sh/cli/internal/mediators/config"
	"github.com/devshell-sh/cli/pkg/channel"
	"github.com/devshell-sh/cli/pkg/descriptor"
	"github.com/devshell-sh/cli/pkg/envdef"
)

// ConfigKeyBackend is the config key under which a user can point us at a
// different provisioning backend executable
const ConfigKeyBackend = "backend.command"

func init() {
	configMediator.RegisterOption(configMediator.Option{
		Name:    ConfigKeyBackend,
		Type:    configMediator.String,
		Default: constants.DefaultBackendCommand,
	})
}

// Configurable defines the subset of our config instance that this package needs
type Configurable interface {
	GetString(string) string
}

// Backend drives the provisioning backend executable. The backend speaks
// JSON on stdin/stdout; stderr is passed through for its own diagnostics.
type Backend struct {
	command        string
	versionChecked bool
}

var _ Provisioner = &Backend{}

// New returns a backend using the configured executable
func New(cfg Configurable) *Backend {
	command := os.Getenv(constants.BackendEnvVarName)
	if command == "" {
		command = cfg.GetString(ConfigKeyBackend)
	}
	if command == "" {
		command = constants.DefaultBackendCommand
	}
	return &Backend{command: command}
}

// backendRequest is the JSON document we hand the backend on stdin
type backendRequest struct {
	Channel    string                   `json:"channel"`
	SnapshotID string                   `json:"snapshot_id"`
	CacheDir   string                   `json:"cache_dir"`
	Tools      []descriptor.ToolRequest `json:"tools"`
}

// newBackendRequest assembles a provisioning request, pointing the backend at
// our cache dir for its tool installations
func newBackendRequest(snapshot *channel.Snapshot, tools []descriptor.ToolRequest) backendRequest {
	return backendRequest{
		Channel:    snapshot.Channel,
		SnapshotID: snapshot.SnapshotID,
		CacheDir:   storage.CachePath(),
		Tools:      tools,
	}
}

// backendResponse is the JSON document the backend writes to stdout
type backendResponse struct {
	Report
	Failures []resolutionFailure `json:"failures,omitempty"`
}

// Provision asks the backend to make the given tools available from the
// given snapshot. Any tool the backend cannot resolve is fatal; we never
// return a partial report.
func (b *Backend) Provision(snapshot *channel.Snapshot, tools []descriptor.ToolRequest) (*Report, error) {
	if err := b.checkVersion(); err != nil {
		return nil, err
	}

	stdin, err := json.Marshal(newBackendRequest(snapshot, tools))
	if err != nil {
		return nil, errs.Wrap(err, "Could not marshal provisioning request")
	}

	logging.Debug("Provisioning %d tools from %s via %s", len(tools), snapshot.String(), b.command)

	cmd := exec.Command(b.command, "provision", "--format", "json")
	cmd.Stdin = bytes.NewReader(stdin)
	cmd.Stderr = os.Stderr

	stdout, err := cmd.Output()
	if err != nil && len(stdout) == 0 {
		if _, ok := err.(*exec.ExitError); !ok {
			return nil, locale.WrapError(err, "err_backend_unavailable", "", b.command)
		}
		return nil, locale.WrapError(err, "err_backend_failed", "", b.command)
	}

	var response backendResponse
	if err := json.Unmarshal(stdout, &response); err != nil {
		return nil, errs.Wrap(err, "Could not unmarshal provisioning report from %s", b.command)
	}

	if len(response.Failures) > 0 {
		return nil, resolutionError(snapshot, response.Failures)
	}

	expandReport(&response.Report)
	return &response.Report, nil
}

// resolutionError folds per-tool failures into a single fatal error naming
// every tool that could not be resolved
func resolutionError(snapshot *channel.Snapshot, failures []resolutionFailure) error {
	var failed []string
	var err error
	for _, failure := range failures {
		failed = append(failed, failure.Tool)
		err = locale.WrapError(err, "err_resolution_tool", "", failure.Tool, failure.Message)
	}
	return locale.WrapInputError(err, "err_resolution", "", strings.Join(failed, ", "), snapshot.String())
}

// expandReport replaces ${INSTALLDIR} placeholders in every tool's
// environment definition with the tool's actual install dir
func expandReport(report *Report) {
	for i := range report.Tools {
		tool := &report.Tools[i]
		if tool.Env == nil {
			continue
		}
		tool.Env = tool.Env.ExpandVariables(envdef.NewConstants(tool.InstallDir))
	}
}

// checkVersion refuses to talk to backends older than we can support
func (b *Backend) checkVersion() error {
	if b.versionChecked {
		return nil
	}

	out, err := exec.Command(b.command, "--version").Output()
	if err != nil {
		return locale.WrapError(err, "err_backend_unavailable", "", b.command)
	}

	raw := strings.TrimSpace(string(out))
	actual, err := goversion.NewVersion(raw)
	if err != nil {
		return locale.WrapError(err, "err_backend_version_parse", "", b.command, raw)
	}

	minimum := goversion.Must(goversion.NewVersion(constants.MinimumBackendVersion))
	if actual.LessThan(minimum) {
		return locale.NewError("err_backend_outdated", "", raw, constants.MinimumBackendVersion)
	}

	b.versionChecked = true
	return nil
}
