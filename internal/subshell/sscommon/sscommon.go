package sscommon

import (
	"os"
	"os/exec"
	"strings"

	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/logging"
	"github.com/devshell-sh/cli/internal/osutils"
)

// Configurable defines the subset of our config instance that this package needs
type Configurable interface {
	Set(string, interface{}) error
	GetString(string) string
}

// NewCommand constructs the shell command without starting it
func NewCommand(command string, args []string, env []string) *exec.Cmd {
	cmd := exec.Command(command, args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	return cmd
}

// Start wires stdin/stdout/stderr into the provided command, starts it, and
// returns a channel to monitor errors on.
func Start(cmd *exec.Cmd) chan error {
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr

	cmd.Start()

	errors := make(chan error, 1)

	go func() {
		defer close(errors)

		if err := cmd.Wait(); err != nil {
			if eerr, ok := err.(*exec.ExitError); ok {
				code := eerr.ExitCode()
				valid := eerr.Exited()
				// code 130 is returned when a process halts
				// due to SIGTERM after receiving a SIGINT
				// code -1 is returned when a process halts
				// due to SIGTERM without any interference.
				if code == 130 || (valid && code == -1) {
					logging.Debug("exit - valid: %t, code: %d", valid, code)
					return
				}

				errors <- errs.WrapExitCode(eerr, code)
				return
			}

			errors <- errs.Wrap(err, "SubShell command failed")
			return
		}
	}()

	return errors
}

// Stop signals the provided command to terminate.
func Stop(cmd *exec.Cmd) error {
	return stop(cmd)
}

// RunFunc is a function that runs a command with the given env and returns its exit code
type RunFunc func(env []string, name string, args ...string) (int, error)

func runDirect(env []string, name string, args ...string) (int, error) {
	logging.Debug("Running command: %s %s", name, strings.Join(args, " "))

	runCmd := exec.Command(name, args...)
	runCmd.Stdin, runCmd.Stdout, runCmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	runCmd.Env = env

	err := runCmd.Run()
	return osutils.CmdExitCode(runCmd), err
}
