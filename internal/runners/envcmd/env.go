package envcmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/devshell-sh/cli/internal/captain"
	"github.com/devshell-sh/cli/internal/config"
	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/output"
	"github.com/devshell-sh/cli/internal/primer"
	"github.com/devshell-sh/cli/internal/provision"
	"github.com/devshell-sh/cli/internal/session"
	"github.com/devshell-sh/cli/pkg/channel"
	"github.com/devshell-sh/cli/pkg/descriptor"
)

// Params are the arguments set by the env command
type Params struct {
	Path    string
	Inherit bool
	Channel captain.ChannelFlag
}

type primeable interface {
	primer.Outputer
	primer.Configurer
}

// Env assembles the descriptor's environment and prints it, without
// launching a shell. This is what editor and CI integrations consume.
type Env struct {
	out output.Outputer
	cfg *config.Instance
}

func New(prime primeable) *Env {
	return &Env{
		out: prime.Output(),
		cfg: prime.Config(),
	}
}

// envOutput prints as KEY=VALUE lines in plain mode and as a map in JSON mode
type envOutput map[string]string

func (e envOutput) MarshalOutput(format output.Format) interface{} {
	if format == output.JSONFormatName {
		return map[string]string(e)
	}

	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s=%s", k, e[k]))
	}
	return strings.Join(lines, "\n")
}

func (e *Env) Run(params *Params) error {
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

	sess := session.New(request, desc.Dir(), channel.NewResolver(e.cfg), provision.New(e.cfg), history)

	env, err := sess.Env(params.Inherit)
	if err != nil {
		return err
	}

	if previous, drifted := sess.Drift(); drifted {
		e.out.Notice(locale.Tr("notice_channel_drift", request.Channel.Name, previous.SnapshotID, sess.Snapshot().SnapshotID))
	}

	e.out.Print(envOutput(env))
	return nil
}
