package primer

import (
	"github.com/devshell-sh/cli/internal/config"
	"github.com/devshell-sh/cli/internal/output"
	"github.com/devshell-sh/cli/internal/subshell"
	"github.com/devshell-sh/cli/pkg/descriptor"
)

// Values is our primer, an ambient dependency bundle handed to every runner.
type Values struct {
	descriptor *descriptor.Descriptor
	output     output.Outputer
	subshell   subshell.SubShell
	cfg        *config.Instance
}

func New(values ...interface{}) *Values {
	result := &Values{}
	for _, v := range values {
		switch typed := v.(type) {
		case *descriptor.Descriptor:
			result.descriptor = typed
		case output.Outputer:
			result.output = typed
		case subshell.SubShell:
			result.subshell = typed
		case *config.Instance:
			result.cfg = typed
		}
	}
	return result
}

type Descriptorer interface {
	Descriptor() *descriptor.Descriptor
}

// Descriptor returns the evaluated environment descriptor, if one was found.
func (v *Values) Descriptor() *descriptor.Descriptor {
	return v.descriptor
}

// SetDescriptor is for runners that locate or create a descriptor themselves.
func (v *Values) SetDescriptor(d *descriptor.Descriptor) {
	v.descriptor = d
}

type Outputer interface {
	Output() output.Outputer
}

func (v *Values) Output() output.Outputer {
	return v.output
}

type Subsheller interface {
	Subshell() subshell.SubShell
}

func (v *Values) Subshell() subshell.SubShell {
	return v.subshell
}

type Configurer interface {
	Config() *config.Instance
}

func (v *Values) Config() *config.Instance {
	return v.cfg
}
