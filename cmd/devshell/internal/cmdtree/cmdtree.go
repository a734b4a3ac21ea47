package cmdtree

import (
	"github.com/devshell-sh/cli/internal/captain"
	"github.com/devshell-sh/cli/internal/constants"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/primer"
)

// CmdTree manages the devshell command tree
type CmdTree struct {
	cmd *captain.Command
}

// New prepares the devshell command tree
func New(prime *primer.Values) *CmdTree {
	globals := newGlobalOptions()

	rootCmd := newRootCommand(prime, globals)
	rootCmd.AddChildren(
		newActivateCommand(prime),
		newCheckCommand(prime),
		newEnvCommand(prime),
		newExecCommand(prime),
		newInitCommand(prime),
	)

	return &CmdTree{
		cmd: rootCmd,
	}
}

type globalOptions struct {
	Output  string
	Mono    bool
	Verbose bool
}

func newGlobalOptions() *globalOptions {
	return &globalOptions{}
}

func newRootCommand(prime *primer.Values, globals *globalOptions) *captain.Command {
	var cmd *captain.Command
	cmd = captain.NewCommand(
		constants.CommandName,
		"",
		locale.T("devshell_description"),
		prime,
		[]*captain.Flag{
			{
				Name:        "output",
				Shorthand:   "o",
				Description: locale.T("flag_output_description"),
				Persist:     true,
				Value:       &globals.Output,
			},
			{
				Name:        "mono",
				Description: locale.T("flag_mono_description"),
				Persist:     true,
				Value:       &globals.Mono,
			},
			{
				Name:        "verbose",
				Shorthand:   "v",
				Description: locale.T("flag_verbose_description"),
				Persist:     true,
				Value:       &globals.Verbose,
			},
		},
		[]*captain.Argument{},
		func(ccmd *captain.Command, args []string) error {
			return cmd.Usage()
		},
	)
	return cmd
}

// Execute the command tree
func (ct *CmdTree) Execute(args []string) error {
	return ct.cmd.Execute(args)
}

// Command returns the root command of the command tree
func (ct *CmdTree) Command() *captain.Command {
	return ct.cmd
}
