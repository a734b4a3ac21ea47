package session

import (
	"os"

	"github.com/google/uuid"

	"github.com/devshell-sh/cli/internal/constants"
	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/logging"
	"github.com/devshell-sh/cli/internal/provision"
	"github.com/devshell-sh/cli/pkg/channel"
	"github.com/devshell-sh/cli/pkg/descriptor"
	"github.com/devshell-sh/cli/pkg/envdef"
)

// Resolver resolves a channel reference into a snapshot
type Resolver interface {
	Resolve(ref channel.Ref) (*channel.Snapshot, error)
}

// Session realizes an environment request: it resolves the channel once,
// provisions the tool set and assembles the final environment. The
// environment is computed a single time and cached; every consumer of the
// session sees the same result.
type Session struct {
	activationID string
	dir          string
	request      *descriptor.EnvironmentRequest
	resolver     Resolver
	provisioner  provision.Provisioner
	history      *channel.History

	snapshot *channel.Snapshot
	previous *channel.Snapshot
	merged   []envdef.EnvironmentVariable
	built    bool
}

// New prepares a session for the given request. The dir argument is the
// directory the descriptor governs; it ends up in the activation guard
// variable.
func New(request *descriptor.EnvironmentRequest, dir string, resolver Resolver, provisioner provision.Provisioner, history *channel.History) *Session {
	return &Session{
		activationID: uuid.New().String(),
		dir:          dir,
		request:      request,
		resolver:     resolver,
		provisioner:  provisioner,
		history:      history,
	}
}

// ActivationID uniquely identifies this activation
func (s *Session) ActivationID() string {
	return s.activationID
}

// Snapshot returns the channel snapshot this session resolved to. Returns
// nil before the environment has been built.
func (s *Session) Snapshot() *channel.Snapshot {
	return s.snapshot
}

// Drift returns the snapshot the channel previously resolved to, if the
// channel head has moved since then. A floating channel reference cannot
// guarantee reproducibility; this is how we surface that to the user.
func (s *Session) Drift() (*channel.Snapshot, bool) {
	if s.previous == nil || s.snapshot == nil {
		return nil, false
	}
	if s.previous.SnapshotID == s.snapshot.SnapshotID {
		return nil, false
	}
	return s.previous, true
}

// Env returns the fully assembled environment for this session. The first
// call resolves, provisions and merges; subsequent calls return the cached
// result. If inherit is true the OS environment is joined in per the merge
// directives.
func (s *Session) Env(inherit bool) (map[string]string, error) {
	if !s.built {
		if err := s.build(); err != nil {
			return nil, err
		}
	}

	lookupEnv := os.LookupEnv
	if !inherit {
		lookupEnv = func(_ string) (string, bool) { return "", false }
	}

	definition := &envdef.EnvironmentDefinition{Env: s.merged}
	env, err := definition.GetEnvBasedOn(lookupEnv)
	if err != nil {
		return nil, wrapConflict(err)
	}

	env[constants.ActivatedEnvVarName] = s.dir
	env[constants.ActivatedIDEnvVarName] = s.activationID
	return env, nil
}

func (s *Session) build() error {
	snapshot, err := s.resolver.Resolve(s.request.Channel)
	if err != nil {
		return err
	}
	s.snapshot = snapshot

	if s.history != nil && s.request.Channel.IsFloating() {
		previous, err := s.history.Record(snapshot)
		if err != nil {
			// history is advisory, never fatal
			logging.Warning("Could not record channel snapshot: %s", errs.JoinMessage(err))
		}
		s.previous = previous
	}

	report, err := s.provisioner.Provision(snapshot, s.request.Tools)
	if err != nil {
		return err
	}

	merged, err := s.mergeEnvironment(report)
	if err != nil {
		return err
	}
	s.merged = merged
	s.built = true

	return nil
}

// mergeEnvironment folds the per-tool environment definitions and the
// descriptor's own variables into a single definition. Tools are merged in
// declaration order; descriptor variables are merged last so their join
// directives apply. Any unmergeable variable is fatal.
func (s *Session) mergeEnvironment(report *provision.Report) ([]envdef.EnvironmentVariable, error) {
	combined := &envdef.EnvironmentDefinition{}

	for _, toolName := range s.request.ToolNames() {
		result := report.Result(toolName)
		if result == nil {
			return nil, locale.NewError("err_provision_missing_tool", "", toolName)
		}
		if result.Env == nil {
			continue
		}

		var err error
		combined, err = combined.Merge(result.Env)
		if err != nil {
			return nil, wrapConflict(err)
		}
	}

	expansion := descriptor.NewToolExpansion(report.ToolAttributes())
	declared, err := s.expandVars(expansion)
	if err != nil {
		return nil, err
	}

	combined, err = combined.Merge(&envdef.EnvironmentDefinition{Env: declared})
	if err != nil {
		return nil, wrapConflict(err)
	}

	return combined.Env, nil
}

// expandVars resolves all attribute expressions in the descriptor's variable
// values and converts them into environment definitions
func (s *Session) expandVars(expansion *descriptor.Expansion) ([]envdef.EnvironmentVariable, error) {
	var result []envdef.EnvironmentVariable
	for _, varReq := range s.request.Vars {
		values := make([]string, 0, len(varReq.Values))
		for _, raw := range varReq.Values {
			expanded, err := expansion.Apply(raw)
			if err != nil {
				return nil, locale.WrapError(err, "err_var_expand", "", varReq.Name)
			}
			values = append(values, expanded)
		}

		join, err := parseJoin(varReq)
		if err != nil {
			return nil, err
		}

		separator := varReq.Separator
		if separator == "" {
			separator = ":"
		}

		result = append(result, envdef.EnvironmentVariable{
			Name:      varReq.Name,
			Values:    values,
			Join:      join,
			Inherit:   false,
			Separator: separator,
		})
	}
	return result, nil
}

// parseJoin maps the descriptor's join directive onto the envdef join
// strategy. Single-value variables default to disallowed, multi-value ones
// to prepend.
func parseJoin(varReq descriptor.VariableRequest) (envdef.VariableJoin, error) {
	if varReq.Join == "" {
		if len(varReq.Values) > 1 {
			return envdef.Prepend, nil
		}
		return envdef.Disallowed, nil
	}

	var join envdef.VariableJoin
	if err := join.UnmarshalText([]byte(varReq.Join)); err != nil {
		return join, locale.WrapInputError(err, "err_var_join", "", varReq.Name, varReq.Join)
	}
	return join, nil
}

// wrapConflict gives envdef conflicts a user-facing message naming the variable
func wrapConflict(err error) error {
	var conflict *envdef.ConflictError
	if errs.Matches(err, &conflict) {
		return locale.WrapError(err, "err_env_conflict", "", conflict.VariableName, conflict.ValueA, conflict.ValueB)
	}
	return err
}

// IsActivated returns whether the current process already runs inside an
// activated environment
func IsActivated() bool {
	return os.Getenv(constants.ActivatedEnvVarName) != ""
}
