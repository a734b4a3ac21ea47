package cmdtree

import (
	"github.com/devshell-sh/cli/internal/captain"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/primer"
	"github.com/devshell-sh/cli/internal/runners/check"
)

func newCheckCommand(prime *primer.Values) *captain.Command {
	runner := check.New(prime)

	params := check.Params{}

	return captain.NewCommand(
		"check",
		"",
		locale.T("check_description"),
		prime,
		[]*captain.Flag{
			{
				Name:        "path",
				Description: locale.T("flag_path_description"),
				Value:       &params.Path,
			},
		},
		[]*captain.Argument{},
		func(_ *captain.Command, _ []string) error {
			return runner.Run(&params)
		},
	)
}
