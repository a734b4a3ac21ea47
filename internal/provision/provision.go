package provision

import (
	"path/filepath"

	"github.com/devshell-sh/cli/pkg/channel"
	"github.com/devshell-sh/cli/pkg/descriptor"
	"github.com/devshell-sh/cli/pkg/envdef"
)

// Provisioner obtains the requested tools from a channel snapshot and reports
// where they landed. How tools are fetched, built or cached is entirely the
// backend's business; we only consume its report.
type Provisioner interface {
	Provision(snapshot *channel.Snapshot, tools []descriptor.ToolRequest) (*Report, error)
}

// Report is what a provisioner returns for a successful run
type Report struct {
	Tools []ToolResult `json:"tools"`
}

// ToolResult describes a single provisioned tool
type ToolResult struct {
	Name       string                        `json:"name"`
	Version    string                        `json:"version"`
	InstallDir string                        `json:"installdir"`
	Attributes map[string]string             `json:"attributes"`
	Env        *envdef.EnvironmentDefinition `json:"env"`
}

// resolutionFailure is a per-tool failure reported by the backend
type resolutionFailure struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
}

// ToolAttributes collects the attribute values of all provisioned tools for
// use in variable expansion. Attributes the backend did not report are
// derived from the install dir.
func (r *Report) ToolAttributes() descriptor.ToolAttributes {
	attrs := descriptor.ToolAttributes{}
	for _, tool := range r.Tools {
		toolAttrs := map[string]string{}
		for k, v := range tool.Attributes {
			toolAttrs[k] = v
		}
		if toolAttrs["root"] == "" {
			toolAttrs["root"] = tool.InstallDir
		}
		if toolAttrs["bin"] == "" {
			toolAttrs["bin"] = filepath.Join(tool.InstallDir, "bin")
		}
		if toolAttrs["version"] == "" {
			toolAttrs["version"] = tool.Version
		}
		attrs[tool.Name] = toolAttrs
	}
	return attrs
}

// Result returns the result for the named tool, or nil
func (r *Report) Result(name string) *ToolResult {
	for i := range r.Tools {
		if r.Tools[i].Name == name {
			return &r.Tools[i]
		}
	}
	return nil
}
