package check

import (
	"strings"

	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/output"
	"github.com/devshell-sh/cli/internal/primer"
	"github.com/devshell-sh/cli/pkg/descriptor"
)

// Params are the arguments set by the check command
type Params struct {
	Path string
}

type primeable interface {
	primer.Outputer
}

// Check validates the descriptor governing the given directory and reports
// the environment request it evaluates to, without provisioning anything
type Check struct {
	out output.Outputer
}

func New(prime primeable) *Check {
	return &Check{
		out: prime.Output(),
	}
}

// result is the printable summary of an evaluated descriptor
type result struct {
	Name    string   `json:"name"`
	Path    string   `json:"path"`
	Channel string   `json:"channel"`
	Tools   []string `json:"tools"`
	Vars    []string `json:"vars"`
}

func (r *result) MarshalOutput(format output.Format) interface{} {
	if format == output.JSONFormatName {
		return r
	}

	lines := []string{
		locale.Tr("check_descriptor_ok", r.Name, r.Path),
		locale.Tr("check_channel", r.Channel),
		locale.Tr("check_tools", strings.Join(r.Tools, ", ")),
	}
	if len(r.Vars) > 0 {
		lines = append(lines, locale.Tr("check_vars", strings.Join(r.Vars, ", ")))
	}
	return strings.Join(lines, "\n")
}

func (c *Check) Run(params *Params) error {
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

	res := &result{
		Name:    request.Name,
		Path:    desc.Path(),
		Channel: request.Channel.String(),
		Tools:   request.ToolNames(),
	}
	for _, varReq := range request.Vars {
		res.Vars = append(res.Vars, varReq.Name)
	}

	c.out.Print(res)
	return nil
}
