package zsh

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/fileutils"
	"github.com/devshell-sh/cli/internal/logging"
	"github.com/devshell-sh/cli/internal/osutils"
	"github.com/devshell-sh/cli/internal/output"
	"github.com/devshell-sh/cli/internal/subshell/sscommon"
)

var escaper *osutils.ShellEscape

func init() {
	escaper = osutils.NewBashEscaper()
}

const Name string = "zsh"

// SubShell covers the subshell.SubShell interface, reference that for documentation
type SubShell struct {
	binary string
	rcFile string
	cmd    *exec.Cmd
	env    map[string]string
	errs   chan error
}

// Shell - see subshell.SubShell
func (v *SubShell) Shell() string {
	return Name
}

// Binary - see subshell.SubShell
func (v *SubShell) Binary() string {
	return v.binary
}

// SetBinary - see subshell.SubShell
func (v *SubShell) SetBinary(binary string) {
	v.binary = binary
}

// SetEnv - see subshell.SubShell
func (v *SubShell) SetEnv(env map[string]string) error {
	v.env = env
	return nil
}

// Quote - see subshell.SubShell
func (v *SubShell) Quote(value string) string {
	return escaper.Quote(value)
}

// Activate - see subshell.SubShell
func (v *SubShell) Activate(wd string, out output.Outputer) error {
	env := sscommon.EscapeEnv(v.env)

	var err error
	if v.rcFile, err = sscommon.SetupRcFile("zshrc.sh", "", sscommon.RcData{Env: env, WD: wd}); err != nil {
		return err
	}

	// zsh does not support an rc file flag, so we use a temporary ZDOTDIR that
	// holds our generated .zshrc alongside a copy of the user's own.
	path, err := os.MkdirTemp("", "devshell-zsh")
	if err != nil {
		return errs.Wrap(err, "Could not create temporary ZDOTDIR")
	}

	if err := copyUserZshrc(path); err != nil {
		return err
	}

	activeZshrcPath := filepath.Join(path, ".zshrc")
	contents, err := fileutils.ReadFile(v.rcFile)
	if err != nil {
		return errs.Wrap(err, "Could not read generated rc file")
	}
	if err := fileutils.WriteFile(activeZshrcPath, contents); err != nil {
		return errs.Wrap(err, "Could not write .zshrc to temporary ZDOTDIR")
	}

	os.Setenv("ZDOTDIR", path)

	cmd := sscommon.NewCommand(v.Binary(), nil, nil)
	v.errs = sscommon.Start(cmd)
	v.cmd = cmd
	return nil
}

// copyUserZshrc copies the user's own zshrc into the temporary ZDOTDIR so the
// generated rc file can source it.
func copyUserZshrc(target string) error {
	userzdotdir := os.Getenv("ZDOTDIR")
	if userzdotdir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			logging.Warning("Could not determine home directory for current user: %v", err)
			return nil
		}
		userzdotdir = home
	}

	userZshrc := filepath.Join(userzdotdir, ".zshrc")
	if !fileutils.FileExists(userZshrc) {
		return nil
	}

	contents, err := fileutils.ReadFile(userZshrc)
	if err != nil {
		return errs.Wrap(err, "Could not read user zshrc at %s", userZshrc)
	}

	backupPath := filepath.Join(target, ".zshrc.bak")
	if err := fileutils.WriteFile(backupPath, []byte(fmt.Sprintf("export ZDOTDIR=%s\n", escaper.Quote(userzdotdir)))); err != nil {
		return errs.Wrap(err, "Could not write zshrc backup at %s", backupPath)
	}
	return fileutils.AppendToFile(backupPath, contents)
}

// Errors returns a channel for receiving errors related to active behavior
func (v *SubShell) Errors() <-chan error {
	return v.errs
}

// Deactivate - see subshell.SubShell
func (v *SubShell) Deactivate() error {
	if !v.IsActive() {
		return nil
	}

	if err := sscommon.Stop(v.cmd); err != nil {
		return err
	}

	v.cmd = nil
	return nil
}

// Run - see subshell.SubShell
func (v *SubShell) Run(filename string, args ...string) error {
	_, err := sscommon.RunFuncByBinary(v.Binary())(osutils.EnvMapToSlice(v.env), filename, args...)
	return err
}

// IsActive - see subshell.SubShell
func (v *SubShell) IsActive() bool {
	return v.cmd != nil && (v.cmd.ProcessState == nil || !v.cmd.ProcessState.Exited())
}
