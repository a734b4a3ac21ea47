package subshell

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/logging"
	configMediator "github.com/devshell-sh/cli/internal/mediators/config"
	"github.com/devshell-sh/cli/internal/output"
	"github.com/devshell-sh/cli/internal/subshell/bash"
	"github.com/devshell-sh/cli/internal/subshell/cmd"
	"github.com/devshell-sh/cli/internal/subshell/sscommon"
	"github.com/devshell-sh/cli/internal/subshell/zsh"
)

// ConfigKeyShell is the config key under which a user can pin their preferred shell binary
const ConfigKeyShell = "shell"

func init() {
	configMediator.RegisterOption(configMediator.Option{
		Name:    ConfigKeyShell,
		Type:    configMediator.String,
		Default: "",
	})
}

// SubShell defines the interface for our shell integrations, which should be contained in a
// sub-directory under the same directory as this file
type SubShell interface {
	// Activate launches the shell as a child process, initialized from a generated rc file
	Activate(wd string, out output.Outputer) error

	// Errors returns a channel for receiving errors related to active behavior
	Errors() <-chan error

	// Deactivate signals the running shell to terminate
	Deactivate() error

	// Run executes the given script file inside the shell
	Run(filename string, args ...string) error

	// SetEnv sets the environment the shell will be launched with
	SetEnv(env map[string]string) error

	// Quote escapes the given value for use inside this shell
	Quote(value string) string

	// Shell returns an identifiable string representing the shell, eg. bash, zsh
	Shell() string

	// Binary returns the configured binary
	Binary() string

	// SetBinary sets the configured binary, this should only be called by the subshell package
	SetBinary(string)

	// IsActive returns whether the shell is running
	IsActive() bool
}

// New detects the user's shell and returns the matching SubShell instance
func New(cfg sscommon.Configurable) (SubShell, error) {
	binary := cfg.GetString(ConfigKeyShell)
	if binary == "" {
		binary = detectShellBinary()
	}

	name := filepath.Base(binary)
	logging.Debug("Detected shell: %s", name)

	var subs SubShell
	switch name {
	case bash.Name:
		subs = &bash.SubShell{}
	case zsh.Name:
		subs = &zsh.SubShell{}
	case cmd.Name:
		subs = &cmd.SubShell{}
	default:
		return nil, locale.NewInputError("err_unsupported_shell", "", name)
	}

	subs.SetBinary(binary)
	return subs, nil
}

func detectShellBinary() string {
	if runtime.GOOS == "windows" {
		if comspec := os.Getenv("ComSpec"); comspec != "" {
			return comspec
		}
		return "cmd.exe"
	}

	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/bash"
}
