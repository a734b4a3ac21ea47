//go:build !windows

package sscommon

import (
	"os/exec"
	"strings"
	"syscall"

	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/logging"
	"github.com/devshell-sh/cli/internal/osutils"
)

const lineBreak = "\n"
const lineBreakChar = `\n`

var escaper *osutils.ShellEscape

func init() {
	escaper = osutils.NewBashEscaper()
}

// EscapeEnv escapes all values so they can be exported
func EscapeEnv(env map[string]string) map[string]string {
	result := map[string]string{}
	for k, v := range env {
		result[k] = escaper.Escape(v)
		result[k] = strings.ReplaceAll(result[k], lineBreak, lineBreakChar)
	}
	return result
}

func stop(cmd *exec.Cmd) error {
	// may panic if process no longer exists
	defer func() {
		if r := recover(); r != nil {
			logging.Debug("Recovered from panic while stopping process: %v", r)
		}
	}()

	sig := syscall.SIGHUP
	if err := cmd.Process.Signal(sig); err != nil {
		return errs.Wrap(err, "Could not send SIGHUP to subshell process")
	}

	sig = syscall.SIGTERM
	if err := cmd.Process.Signal(sig); err != nil {
		return errs.Wrap(err, "Could not send SIGTERM to subshell process")
	}

	return nil
}

// RunFuncByBinary returns the RunFunc appropriate for the given shell binary
func RunFuncByBinary(binary string) RunFunc {
	bin := strings.ToLower(binary)
	if strings.Contains(bin, "bash") || strings.Contains(bin, "zsh") {
		return runWithShell(bin)
	}
	return runDirect
}

func runWithShell(bin string) RunFunc {
	shell := "bash"
	if strings.Contains(bin, "zsh") {
		shell = "zsh"
	}
	return func(env []string, name string, args ...string) (int, error) {
		quotedArgs := escaper.Quote(name)
		for _, arg := range args {
			quotedArgs += " " + escaper.Quote(arg)
		}

		return runDirect(env, shell, "-c", quotedArgs)
	}
}
