package descriptorfile

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/imdario/mergo"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v2"

	"github.com/devshell-sh/cli/internal/constants"
	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/fileutils"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/logging"
)

// nameRx constrains tool and environment variable names declared in the descriptor file.
// Dots are not allowed as `${tools.<name>.<attr>}` references could not address them.
var nameRx = regexp.MustCompile(`^[\w][\w-]*$`)

// DescriptorFile is the top level structure of a devshell.yaml file. It
// declares the tool set, the environment variables and the base environment
// channel that together describe a development environment.
type DescriptorFile struct {
	Name    string    `yaml:"name"`
	Channel string    `yaml:"channel,omitempty"`
	Tools   []*Tool   `yaml:"tools"`
	Env     []*EnvVar `yaml:"env,omitempty"`

	path string // "private"
}

// Tool is a single entry of the descriptor's tool set. In yaml it can be
// given as a plain string (just the tool name) or as a map with name and
// version fields.
type Tool struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Version string `yaml:"version,omitempty" mapstructure:"version"`
}

func (t *Tool) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err == nil {
		t.Name = name
		return nil
	}

	var raw map[string]interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	return decodeLoose(raw, t)
}

// EnvVar is a single environment variable declaration. The value field holds
// a literal string or an attribute expression like ${tools.<name>.<attr>}.
// Multi-value variables can use values together with a join directive.
type EnvVar struct {
	Name      string   `yaml:"name" mapstructure:"name"`
	Value     string   `yaml:"value,omitempty" mapstructure:"value"`
	Values    []string `yaml:"values,omitempty" mapstructure:"values"`
	Join      string   `yaml:"join,omitempty" mapstructure:"join"`
	Separator string   `yaml:"separator,omitempty" mapstructure:"separator"`
}

func (e *EnvVar) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw map[string]interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	return decodeLoose(raw, e)
}

// decodeLoose maps loosely typed yaml data onto the given struct, coercing
// scalars to slices where needed
func decodeLoose(raw map[string]interface{}, target interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errs.Wrap(err, "Could not construct decoder")
	}
	if err := dec.Decode(raw); err != nil {
		return errs.Wrap(err, "Could not decode descriptor entry")
	}
	return nil
}

// AllValues returns the declared values of the variable, regardless of
// whether the singular or plural form was used
func (e *EnvVar) AllValues() []string {
	if len(e.Values) > 0 {
		return e.Values
	}
	if e.Value != "" {
		return []string{e.Value}
	}
	return nil
}

// Parse reads a descriptor file from the given path, merges in any local
// overrides and validates that the result is well formed.
func Parse(configFilepath string) (*DescriptorFile, error) {
	if !fileutils.FileExists(configFilepath) {
		return nil, locale.NewInputError("err_no_descriptor", "", configFilepath)
	}

	dat, err := fileutils.ReadFile(configFilepath)
	if err != nil {
		return nil, errs.Wrap(err, "Could not read descriptor file at %s", configFilepath)
	}

	descriptor := &DescriptorFile{}
	if err := yaml.Unmarshal(dat, descriptor); err != nil {
		return nil, locale.WrapInputError(err, "err_descriptor_parse", "", configFilepath)
	}
	descriptor.path = configFilepath

	if err := descriptor.mergeLocalOverrides(); err != nil {
		return nil, err
	}

	if descriptor.Channel == "" {
		descriptor.Channel = constants.DefaultChannel
	}

	if err := descriptor.Validate(); err != nil {
		return nil, err
	}

	return descriptor, nil
}

// mergeLocalOverrides merges a devshell.local.yaml next to the descriptor
// file into the descriptor. Local values win over committed ones.
func (d *DescriptorFile) mergeLocalOverrides() error {
	localPath := filepath.Join(filepath.Dir(d.path), constants.LocalOverrideFileName)
	if !fileutils.FileExists(localPath) {
		return nil
	}

	logging.Debug("Merging local overrides from %s", localPath)

	dat, err := fileutils.ReadFile(localPath)
	if err != nil {
		return errs.Wrap(err, "Could not read local override file at %s", localPath)
	}

	local := &DescriptorFile{}
	if err := yaml.Unmarshal(dat, local); err != nil {
		return locale.WrapInputError(err, "err_descriptor_parse", "", localPath)
	}

	if err := mergo.Merge(d, local, mergo.WithOverride, mergo.WithAppendSlice); err != nil {
		return errs.Wrap(err, "Could not merge local overrides")
	}

	return nil
}

// Validate enforces that the descriptor is well formed: named, no duplicate
// or malformed tool names, no duplicate or malformed variable names, and no
// variable declaring both a singular and plural value.
func (d *DescriptorFile) Validate() error {
	if d.Name == "" {
		return locale.NewInputError("err_descriptor_no_name", "", d.path)
	}

	seenTools := map[string]bool{}
	for _, tool := range d.Tools {
		if tool.Name == "" || !nameRx.MatchString(tool.Name) {
			return locale.NewInputError("err_descriptor_invalid_tool", "", tool.Name)
		}
		if seenTools[tool.Name] {
			return locale.NewInputError("err_descriptor_duplicate_tool", "", tool.Name)
		}
		seenTools[tool.Name] = true
	}

	seenVars := map[string]bool{}
	for _, envVar := range d.Env {
		if envVar.Name == "" || !nameRx.MatchString(envVar.Name) {
			return locale.NewInputError("err_descriptor_invalid_var", "", envVar.Name)
		}
		if seenVars[envVar.Name] {
			return locale.NewInputError("err_descriptor_duplicate_var", "", envVar.Name)
		}
		if envVar.Value != "" && len(envVar.Values) > 0 {
			return locale.NewInputError("err_descriptor_var_value_conflict", "", envVar.Name)
		}
		seenVars[envVar.Name] = true
	}

	return nil
}

// Path returns the path to the descriptor file
func (d *DescriptorFile) Path() string {
	return d.path
}

// SetPath sets the path of the descriptor file, this is done manually after
// constructing a descriptor that was not parsed from disk
func (d *DescriptorFile) SetPath(path string) {
	d.path = path
}

// Dir returns the directory the descriptor file lives in
func (d *DescriptorFile) Dir() string {
	return filepath.Dir(d.path)
}

// Save saves the descriptor file to its path
func (d *DescriptorFile) Save() error {
	dat, err := yaml.Marshal(d)
	if err != nil {
		return errs.Wrap(err, "Could not marshal descriptor file")
	}

	if err := fileutils.WriteFile(d.path, dat); err != nil {
		return errs.Wrap(err, "Could not write descriptor file to %s", d.path)
	}

	return nil
}

// GetDescriptorFilePath returns the path of the descriptor file that governs
// the given directory, walking up the directory tree until one is found.
func GetDescriptorFilePath(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", errs.Wrap(err, "Could not resolve directory %s", dir)
	}

	path, err := fileutils.FindFileInPath(absDir, constants.ConfigFileName)
	if err != nil {
		return "", locale.WrapInputError(err, "err_no_descriptor", "", absDir)
	}
	return path, nil
}

// FromCwd parses the descriptor file governing the current working directory
func FromCwd() (*DescriptorFile, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errs.Wrap(err, "Could not determine working directory")
	}
	return FromPath(cwd)
}

// FromPath parses the descriptor file governing the given directory
func FromPath(dir string) (*DescriptorFile, error) {
	path, err := GetDescriptorFilePath(dir)
	if err != nil {
		return nil, err
	}
	return Parse(path)
}

// ToolNames returns the names of the descriptor's tool set, in declaration order
func (d *DescriptorFile) ToolNames() []string {
	names := make([]string, 0, len(d.Tools))
	for _, tool := range d.Tools {
		names = append(names, tool.Name)
	}
	return names
}

// HasTool returns whether the tool set names the given tool
func (d *DescriptorFile) HasTool(name string) bool {
	for _, tool := range d.Tools {
		if strings.EqualFold(tool.Name, name) {
			return true
		}
	}
	return false
}
