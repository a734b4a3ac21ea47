package cmdtree

import (
	"github.com/devshell-sh/cli/internal/captain"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/primer"
	"github.com/devshell-sh/cli/internal/runners/exec"
)

func newExecCommand(prime *primer.Values) *captain.Command {
	runner := exec.New(prime)

	params := exec.Params{}

	cmd := captain.NewCommand(
		"exec",
		"",
		locale.T("exec_description"),
		prime,
		[]*captain.Flag{
			{
				Name:        "path",
				Description: locale.T("flag_path_description"),
				Value:       &params.Path,
			},
		},
		[]*captain.Argument{
			{
				Name:        locale.T("arg_exec_command"),
				Description: locale.T("arg_exec_command_description"),
				Required:    true,
				Value:       new(string),
			},
		},
		func(_ *captain.Command, args []string) error {
			return runner.Run(&params, args)
		},
	)
	cmd.SetAliases("run")
	return cmd
}
