package descriptor

import (
	"github.com/devshell-sh/cli/pkg/channel"
)

// EnvironmentRequest is the evaluated form of a descriptor: the complete,
// self-contained description of what an environment should contain. Once
// returned by Evaluate it is treated as immutable; consumers must not modify
// it.
type EnvironmentRequest struct {
	Name    string
	Channel channel.Ref
	Tools   []ToolRequest
	Vars    []VariableRequest
}

// ToolRequest names a single tool to provision, with an optional version
// constraint
type ToolRequest struct {
	Name    string
	Version string
}

// VariableRequest is a single environment variable to set, with its raw
// (unexpanded) values
type VariableRequest struct {
	Name      string
	Values    []string
	Join      string
	Separator string
}

// ToolNames returns the names of all requested tools, in declaration order
func (r *EnvironmentRequest) ToolNames() []string {
	names := make([]string, 0, len(r.Tools))
	for _, tool := range r.Tools {
		names = append(names, tool.Name)
	}
	return names
}

// HasTool returns whether the request names the given tool
func (r *EnvironmentRequest) HasTool(name string) bool {
	for _, tool := range r.Tools {
		if tool.Name == name {
			return true
		}
	}
	return false
}
