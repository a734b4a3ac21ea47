package activate

import (
	"github.com/devshell-sh/cli/internal/captain"
	"github.com/devshell-sh/cli/internal/config"
	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/logging"
	"github.com/devshell-sh/cli/internal/output"
	"github.com/devshell-sh/cli/internal/primer"
	"github.com/devshell-sh/cli/internal/provision"
	"github.com/devshell-sh/cli/internal/session"
	"github.com/devshell-sh/cli/internal/subshell"
	"github.com/devshell-sh/cli/pkg/channel"
	"github.com/devshell-sh/cli/pkg/descriptor"
)

// Params are the arguments set by the activate command
type Params struct {
	Path    string
	Channel captain.ChannelFlag
}

type primeable interface {
	primer.Outputer
	primer.Configurer
	primer.Subsheller
}

// Activate spawns a shell with the descriptor's environment applied
type Activate struct {
	out      output.Outputer
	cfg      *config.Instance
	subshell subshell.SubShell
}

func NewActivate(prime primeable) *Activate {
	return &Activate{
		out:      prime.Output(),
		cfg:      prime.Config(),
		subshell: prime.Subshell(),
	}
}

func (a *Activate) Run(params *Params) error {
	logging.Debug("Activate %v", params.Path)

	if session.IsActivated() {
		return locale.NewInputError("err_already_activated", "")
	}

	if a.subshell == nil {
		return locale.NewInputError("err_no_shell", "")
	}

	desc, err := descriptorFrom(params.Path)
	if err != nil {
		return err
	}

	if params.Channel.Name() != "" {
		desc.SetChannelOverride(channel.Ref{Name: params.Channel.Name(), Pin: params.Channel.Pin()})
	}

	request, err := desc.Evaluate()
	if err != nil {
		return err
	}

	history, err := channel.NewHistory()
	if err != nil {
		return errs.Wrap(err, "Could not open snapshot history")
	}

	sess := session.New(request, desc.Dir(), channel.NewResolver(a.cfg), provision.New(a.cfg), history)

	env, err := sess.Env(true)
	if err != nil {
		return err
	}

	if previous, drifted := sess.Drift(); drifted {
		a.out.Notice(locale.Tr("notice_channel_drift", request.Channel.Name, previous.SnapshotID, sess.Snapshot().SnapshotID))
	}

	if err := a.subshell.SetEnv(env); err != nil {
		return err
	}

	a.out.Notice(locale.Tr("activate_notice_activated", desc.Name(), sess.Snapshot().String()))

	if err := a.subshell.Activate(desc.Dir(), a.out); err != nil {
		return locale.WrapError(err, "err_activate_subshell", "")
	}

	// Block until the shell exits
	if err := <-a.subshell.Errors(); err != nil {
		return locale.WrapError(err, "err_subshell_exit", "")
	}

	a.out.Notice(locale.Tr("activate_notice_deactivated", desc.Name()))
	return nil
}

func descriptorFrom(path string) (*descriptor.Descriptor, error) {
	if path != "" {
		return descriptor.FromPath(path)
	}
	return descriptor.FromCwd()
}
