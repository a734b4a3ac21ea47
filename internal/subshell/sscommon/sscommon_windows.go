//go:build windows

package sscommon

import (
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/logging"
	"github.com/devshell-sh/cli/internal/osutils"
)

const lineBreak = "\r\n"
const lineBreakChar = "^\r\n"

var escaper *osutils.ShellEscape

func init() {
	escaper = osutils.NewBatchEscaper()
}

// EscapeEnv escapes all values so they can be set in a batch script
func EscapeEnv(env map[string]string) map[string]string {
	result := map[string]string{}
	for k, v := range env {
		result[k] = escaper.Escape(v)
		result[k] = strings.ReplaceAll(result[k], lineBreak, lineBreakChar)
	}
	return result
}

func stop(cmd *exec.Cmd) error {
	// windows should use "CTRL_CLOSE_EVENT"; SIGKILL works
	sig := syscall.SIGKILL

	// may panic if process no longer exists
	defer func() {
		if r := recover(); r != nil {
			logging.Debug("Recovered from panic while stopping process: %v", r)
		}
	}()

	if err := cmd.Process.Signal(sig); err != nil {
		return errs.Wrap(err, "Could not send kill signal to subshell process")
	}

	return nil
}

// RunFuncByBinary returns the RunFunc appropriate for the given shell binary
func RunFuncByBinary(binary string) RunFunc {
	bin := strings.ToLower(binary)
	if strings.Contains(bin, "cmd.exe") {
		return runWithCmd
	}
	return runDirect
}

func runWithCmd(env []string, name string, args ...string) (int, error) {
	ext := filepath.Ext(name)
	if ext != ".bat" && ext != ".cmd" {
		return 1, locale.NewInputError("err_sscommon_unsupported_script", "", ext)
	}

	return runDirect(env, "cmd.exe", append([]string{"/C", name}, args...)...)
}
