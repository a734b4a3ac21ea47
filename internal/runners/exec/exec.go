package exec

import (
	"github.com/devshell-sh/cli/internal/config"
	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/logging"
	"github.com/devshell-sh/cli/internal/osutils"
	"github.com/devshell-sh/cli/internal/output"
	"github.com/devshell-sh/cli/internal/primer"
	"github.com/devshell-sh/cli/internal/provision"
	"github.com/devshell-sh/cli/internal/session"
	"github.com/devshell-sh/cli/pkg/channel"
	"github.com/devshell-sh/cli/pkg/descriptor"
)

// Params are the arguments set by the exec command
type Params struct {
	Path string
}

type primeable interface {
	primer.Outputer
	primer.Configurer
}

// Exec runs a single command inside the descriptor's environment without
// spawning an interactive shell
type Exec struct {
	out output.Outputer
	cfg *config.Instance
}

func New(prime primeable) *Exec {
	return &Exec{
		out: prime.Output(),
		cfg: prime.Config(),
	}
}

func (e *Exec) Run(params *Params, args []string) error {
	if len(args) == 0 {
		return locale.NewInputError("err_exec_no_command", "")
	}

	var desc *descriptor.Descriptor
	var err error
	if params.Path != "" {
		desc, err = descriptor.FromPath(params.Path)
	} else {
		desc, err = descriptor.FromCwd()
	}
	if err != nil {
		return err
	}

	request, err := desc.Evaluate()
	if err != nil {
		return err
	}

	history, err := channel.NewHistory()
	if err != nil {
		return errs.Wrap(err, "Could not open snapshot history")
	}

	sess := session.New(request, desc.Dir(), channel.NewResolver(e.cfg), provision.New(e.cfg), history)

	env, err := sess.Env(true)
	if err != nil {
		return err
	}

	logging.Debug("Executing command in environment %s: %v", desc.Name(), args)

	code, _, err := osutils.ExecuteAndPipeStd(args[0], args[1:], osutils.EnvMapToSlice(env))
	if err != nil {
		return errs.WrapExitCode(
			locale.WrapError(err, "err_exec_failed", "", args[0]),
			code,
		)
	}

	return nil
}
