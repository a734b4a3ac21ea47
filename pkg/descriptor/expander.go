package descriptor

import (
	"regexp"
	"strings"

	"github.com/devshell-sh/cli/internal/constants"
	"github.com/devshell-sh/cli/internal/locale"
)

// ToolsCategory is the reference category addressing provisioned tool attributes
const ToolsCategory = "tools"

// knownToolAttrs are the attributes a tool exposes once provisioned
var knownToolAttrs = map[string]bool{
	"root":    true,
	"bin":     true,
	"src":     true,
	"version": true,
}

// refRx matches attribute expressions of the form ${category.name.attribute}
var refRx = regexp.MustCompile(`\$\{(\w+)\.([\w-]+)\.(\w+)\}`)

// Reference is a parsed attribute expression
type Reference struct {
	Category  string
	Name      string
	Attribute string
	Raw       string
}

// ParseReferences returns all attribute expressions found in the given value
func ParseReferences(value string) []Reference {
	var refs []Reference
	for _, match := range refRx.FindAllStringSubmatch(value, -1) {
		refs = append(refs, Reference{
			Category:  match[1],
			Name:      match[2],
			Attribute: match[3],
			Raw:       match[0],
		})
	}
	return refs
}

// ExpanderFunc obtains the value a reference expands to
type ExpanderFunc func(ref Reference) (string, error)

// Expansion resolves attribute expressions in variable values. Expanders are
// registered per category; unlike the descriptor itself an expansion is only
// meaningful after provisioning, when tool attributes have values.
type Expansion struct {
	expanders map[string]ExpanderFunc
}

// NewExpansion returns an expansion with no registered categories
func NewExpansion() *Expansion {
	return &Expansion{expanders: map[string]ExpanderFunc{}}
}

// Register makes the given category expandable
func (e *Expansion) Register(category string, fn ExpanderFunc) {
	e.expanders[category] = fn
}

// ToolAttributes maps tool name to attribute name to the value reported by
// the provisioning backend
type ToolAttributes map[string]map[string]string

// NewToolExpansion returns an expansion that resolves ${tools.*.*} references
// against the given provisioned attributes
func NewToolExpansion(attrs ToolAttributes) *Expansion {
	expansion := NewExpansion()
	expansion.Register(ToolsCategory, func(ref Reference) (string, error) {
		toolAttrs, ok := attrs[ref.Name]
		if !ok {
			return "", locale.NewError("err_ref_unprovisioned", "", ref.Name)
		}
		value, ok := toolAttrs[ref.Attribute]
		if !ok || value == "" {
			return "", locale.NewError("err_ref_attr_empty", "", ref.Attribute, ref.Name)
		}
		return value, nil
	})
	return expansion
}

// Apply expands all references in the given value, re-scanning until no
// references remain or the depth limit is hit
func (e *Expansion) Apply(value string) (string, error) {
	return e.applyWithMaxDepth(value, constants.ExpanderMaxDepth)
}

func (e *Expansion) applyWithMaxDepth(value string, depth int) (string, error) {
	if depth < 0 {
		return "", locale.NewError("err_expand_recursion", "", value)
	}

	refs := ParseReferences(value)
	if len(refs) == 0 {
		return value, nil
	}

	expanded := value
	for _, ref := range refs {
		fn, ok := e.expanders[ref.Category]
		if !ok {
			return "", locale.NewError("err_ref_unknown_category", "", ref.Raw, ref.Category)
		}
		replacement, err := fn(ref)
		if err != nil {
			return "", err
		}
		expanded = strings.Replace(expanded, ref.Raw, replacement, 1)
	}

	return e.applyWithMaxDepth(expanded, depth-1)
}
