package cmd

import (
	"os/exec"

	"github.com/devshell-sh/cli/internal/osutils"
	"github.com/devshell-sh/cli/internal/output"
	"github.com/devshell-sh/cli/internal/subshell/sscommon"
)

var escaper *osutils.ShellEscape

func init() {
	escaper = osutils.NewBatchEscaper()
}

const Name string = "cmd.exe"

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
	if v.rcFile, err = sscommon.SetupRcFile("config.bat", ".bat", sscommon.RcData{Env: env, WD: wd}); err != nil {
		return err
	}

	shellArgs := []string{"/K", v.rcFile}

	cmd := sscommon.NewCommand(v.Binary(), shellArgs, nil)
	v.errs = sscommon.Start(cmd)
	v.cmd = cmd
	return nil
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
