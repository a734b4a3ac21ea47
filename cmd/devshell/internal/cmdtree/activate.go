package cmdtree

import (
	"github.com/devshell-sh/cli/internal/captain"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/primer"
	"github.com/devshell-sh/cli/internal/runners/activate"
)

func newActivateCommand(prime *primer.Values) *captain.Command {
	runner := activate.NewActivate(prime)

	params := activate.Params{}

	cmd := captain.NewCommand(
		"activate",
		locale.Tl("activate_title", "Activating Environment"),
		locale.T("activate_description"),
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
		[]*captain.Argument{},
		func(_ *captain.Command, _ []string) error {
			return runner.Run(&params)
		},
	)
	cmd.SetAliases("shell")
	return cmd
}
