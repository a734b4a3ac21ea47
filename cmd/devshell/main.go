package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/devshell-sh/cli/cmd/devshell/internal/cmdtree"
	"github.com/devshell-sh/cli/internal/config"
	"github.com/devshell-sh/cli/internal/constants"
	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/logging"
	"github.com/devshell-sh/cli/internal/multilog"
	"github.com/devshell-sh/cli/internal/output"
	"github.com/devshell-sh/cli/internal/primer"
	"github.com/devshell-sh/cli/internal/subshell"
)

func main() {
	var exitCode int

	// Set up crash reporting
	logging.SetupRollbar(constants.DevshellRollbarToken)

	var cfg *config.Instance
	defer func() {
		// Handle panics gracefully, and ensure that we exit with non-zero code
		if handlePanics(recover()) {
			exitCode = 1
		}

		if cfg != nil {
			if err := cfg.Close(); err != nil {
				logging.Error("Failed to close config: %v", err)
			}
		}

		// ensure queued log and rollbar messages are flushed
		logging.WaitForRollbar()
		logging.Close()

		os.Exit(exitCode)
	}()

	var err error
	cfg, err = config.New()
	if err != nil {
		multilog.Critical("Could not initialize config: %v", errs.JoinMessage(err))
		fmt.Fprintf(os.Stderr, "Could not load config, if this problem persists please reinstall devshell. Error: %s\n", errs.JoinMessage(err))
		exitCode = 1
		return
	}

	// Set up our output formatter/writer
	outFlags := parseOutputFlags(os.Args)
	out, err := initOutput(outFlags)
	if err != nil {
		multilog.Critical("Could not initialize outputer: %s", errs.JoinMessage(err))
		os.Stderr.WriteString(locale.Tr("err_main_outputer", err.Error()))
		exitCode = 1
		return
	}

	// Run our main command logic, which defers to the error handling logic below
	err = run(os.Args, cfg, out)
	if err != nil {
		exitCode, err = unwrapError(err)
		if err != nil {
			out.Error(err)
		}
	}
}

func run(args []string, cfg *config.Instance, out output.Outputer) error {
	logging.CurrentHandler().SetVerbose(os.Getenv(constants.VerboseEnvVarName) != "" || argsHaveVerbose(args))

	logging.Debug("ConfigPath: %s", cfg.ConfigPath())

	// A shell we cannot integrate with is only fatal for commands that need one
	sshell, err := subshell.New(cfg)
	if err != nil {
		logging.Warning("Could not detect a supported shell: %s", errs.JoinMessage(err))
	}

	prime := primer.New(out, cfg, sshell)

	cmds := cmdtree.New(prime)
	return cmds.Execute(args[1:])
}

func argsHaveVerbose(args []string) bool {
	for _, arg := range args {
		// Skip looking for verbose args after --, eg. for `devshell exec -- cargo -v`
		if arg == "--" {
			return false
		}
		if arg == "--verbose" || arg == "-v" {
			return true
		}
	}
	return false
}

func isInteractive() bool {
	return os.Getenv(constants.NonInteractiveEnvVarName) == "" &&
		term.IsTerminal(int(os.Stdin.Fd()))
}
