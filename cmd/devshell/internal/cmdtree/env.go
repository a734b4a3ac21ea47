package cmdtree

import (
	"github.com/devshell-sh/cli/internal/captain"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/primer"
	"github.com/devshell-sh/cli/internal/runners/envcmd"
)

func newEnvCommand(prime *primer.Values) *captain.Command {
	runner := envcmd.New(prime)

	params := envcmd.Params{}

	return captain.NewCommand(
		"env",
		"",
		locale.T("env_description"),
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
			{
				Name:        "inherit",
				Description: locale.T("flag_inherit_description"),
				Value:       &params.Inherit,
			},
		},
		[]*captain.Argument{},
		func(_ *captain.Command, _ []string) error {
			return runner.Run(&params)
		},
	)
}
