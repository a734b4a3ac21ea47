package main

import (
	"os"

	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/output"
)

type outputFlags struct {
	// These should be kept in sync with the persistent flags in cmdtree
	Output string
	Mono   bool
}

// parseOutputFlags is a minimal args parser that runs before the command tree
// is set up, because the outputer has to exist before captain does
func parseOutputFlags(args []string) outputFlags {
	var flagSet outputFlags
	for i, arg := range args {
		if arg == "--" {
			break
		}
		switch {
		case arg == "--output" || arg == "-o":
			if i+1 < len(args) {
				flagSet.Output = args[i+1]
			}
		case arg == "--mono":
			flagSet.Mono = true
		}
	}
	return flagSet
}

func initOutput(flags outputFlags) (output.Outputer, error) {
	out, err := output.New(flags.Output, &output.Config{
		OutWriter:   os.Stdout,
		ErrWriter:   os.Stderr,
		Colored:     !flags.Mono && isInteractive(),
		Interactive: isInteractive(),
	})
	if err != nil {
		return nil, errs.Wrap(err, "Could not create outputer for format: %s", flags.Output)
	}
	return out, nil
}
