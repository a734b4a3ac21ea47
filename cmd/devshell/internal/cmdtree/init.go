package cmdtree

import (
	"github.com/devshell-sh/cli/internal/captain"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/primer"
	"github.com/devshell-sh/cli/internal/runners/initialize"
)

func newInitCommand(prime *primer.Values) *captain.Command {
	runner := initialize.New(prime)

	params := initialize.Params{}

	return captain.NewCommand(
		"init",
		"",
		locale.T("init_description"),
		prime,
		[]*captain.Flag{
			{
				Name:        "path",
				Description: locale.T("flag_path_description"),
				Value:       &params.Path,
			},
			{
				Name:        "channel",
				Description: locale.T("flag_channel_description"),
				Value:       &params.Channel,
			},
		},
		[]*captain.Argument{
			{
				Name:        locale.T("arg_init_name"),
				Description: locale.T("arg_init_name_description"),
				Value:       &params.Name,
			},
		},
		func(_ *captain.Command, _ []string) error {
			return runner.Run(&params)
		},
	)
}
