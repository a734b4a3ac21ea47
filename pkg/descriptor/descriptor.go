package descriptor

import (
	"os"
	"strings"

	"github.com/devshell-sh/cli/internal/constants"
	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/pkg/channel"
	"github.com/devshell-sh/cli/pkg/descriptorfile"
)

// Descriptor wraps a parsed descriptor file and evaluates it into environment
// requests. The descriptor itself stays mutable (the channel can be
// overridden), the evaluated request does not.
type Descriptor struct {
	file            *descriptorfile.DescriptorFile
	channelOverride *channel.Ref
}

// New creates a descriptor from a parsed descriptor file
func New(file *descriptorfile.DescriptorFile) *Descriptor {
	return &Descriptor{file: file}
}

// FromCwd parses and wraps the descriptor file governing the current working directory
func FromCwd() (*Descriptor, error) {
	file, err := descriptorfile.FromCwd()
	if err != nil {
		return nil, err
	}
	return New(file), nil
}

// FromPath parses and wraps the descriptor file governing the given directory
func FromPath(dir string) (*Descriptor, error) {
	file, err := descriptorfile.FromPath(dir)
	if err != nil {
		return nil, err
	}
	return New(file), nil
}

// Source returns the parsed descriptor file backing this descriptor
func (d *Descriptor) Source() *descriptorfile.DescriptorFile {
	return d.file
}

// Name returns the environment name declared in the descriptor file
func (d *Descriptor) Name() string {
	return d.file.Name
}

// Path returns the path of the descriptor file
func (d *Descriptor) Path() string {
	return d.file.Path()
}

// Dir returns the directory the descriptor file lives in
func (d *Descriptor) Dir() string {
	return d.file.Dir()
}

// SetChannelOverride replaces the descriptor's channel reference for the
// lifetime of this invocation. The descriptor file on disk is not modified,
// and the tool set and environment variables are unaffected.
func (d *Descriptor) SetChannelOverride(ref channel.Ref) {
	d.channelOverride = &ref
}

// Channel returns the effective channel reference, honoring (in order) the
// override set on this descriptor, the channel env var and the descriptor
// file itself.
func (d *Descriptor) Channel() channel.Ref {
	if d.channelOverride != nil {
		return *d.channelOverride
	}
	if env := os.Getenv(constants.ChannelEnvVarName); env != "" {
		return ParseChannelRef(env)
	}
	return ParseChannelRef(d.file.Channel)
}

// ParseChannelRef parses a channel reference of the form name or name@pin
func ParseChannelRef(value string) channel.Ref {
	name, pin, _ := strings.Cut(value, "@")
	return channel.Ref{Name: name, Pin: pin}
}

// Evaluate produces the environment request described by this descriptor.
// Evaluation is pure: it reads nothing beyond the descriptor and performs no
// provisioning. Repeated calls yield equal requests as long as the channel
// override is unchanged.
func (d *Descriptor) Evaluate() (*EnvironmentRequest, error) {
	req := &EnvironmentRequest{
		Name:    d.file.Name,
		Channel: d.Channel(),
	}

	toolSet := map[string]bool{}
	for _, tool := range d.file.Tools {
		req.Tools = append(req.Tools, ToolRequest{
			Name:    tool.Name,
			Version: tool.Version,
		})
		toolSet[tool.Name] = true
	}

	for _, envVar := range d.file.Env {
		values := envVar.AllValues()
		if len(values) == 0 {
			return nil, locale.NewInputError("err_var_no_value", "", envVar.Name)
		}

		for _, value := range values {
			if err := validateReferences(envVar.Name, value, toolSet); err != nil {
				return nil, err
			}
		}

		req.Vars = append(req.Vars, VariableRequest{
			Name:      envVar.Name,
			Values:    append([]string(nil), values...),
			Join:      envVar.Join,
			Separator: envVar.Separator,
		})
	}

	return req, nil
}

// validateReferences statically checks every attribute expression in the
// given value: the category must be known, the referenced tool must be part
// of the tool set and the attribute must exist. A variable that references a
// tool missing from the tool set is a dangling reference and fatal.
func validateReferences(varName, value string, toolSet map[string]bool) error {
	for _, ref := range ParseReferences(value) {
		if ref.Category != ToolsCategory {
			return locale.NewInputError("err_ref_unknown_category", "", varName, ref.Category)
		}
		if !toolSet[ref.Name] {
			return locale.NewInputError("err_ref_dangling", "", varName, ref.Name)
		}
		if !knownToolAttrs[ref.Attribute] {
			return locale.NewInputError("err_ref_unknown_attr", "", varName, ref.Attribute, ref.Name)
		}
	}
	return nil
}

// Validate re-checks the descriptor without producing a request
func (d *Descriptor) Validate() error {
	if err := d.file.Validate(); err != nil {
		return err
	}
	if _, err := d.Evaluate(); err != nil {
		return errs.Wrap(err, "Descriptor does not evaluate")
	}
	return nil
}
