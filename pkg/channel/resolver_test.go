package channel

import (
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devshell-sh/cli/internal/constants"
	"github.com/devshell-sh/cli/internal/locale"
	configMediator "github.com/devshell-sh/cli/internal/mediators/config"
)

type testConfig map[string]string

func (c testConfig) GetString(key string) string {
	return c[key]
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	t.Setenv(constants.ChannelIndexBaseURLEnvVarName, "")

	r := NewResolver(testConfig{ConfigKeyIndexURL: "http://index.test"})
	httpmock.ActivateNonDefault(r.client.HTTPClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return r
}

func TestResolveFloating(t *testing.T) {
	r := newTestResolver(t)
	httpmock.RegisterResponder("GET", "http://index.test/channels/stable/latest",
		httpmock.NewStringResponder(200, `{"name": "stable", "snapshot_id": "a1b2c3", "created_at": "2026-01-05T12:00:00Z"}`))

	snapshot, err := r.Resolve(Ref{Name: "stable"})
	require.NoError(t, err)
	assert.Equal(t, "stable", snapshot.Channel)
	assert.Equal(t, "a1b2c3", snapshot.SnapshotID)
}

func TestResolveMemoized(t *testing.T) {
	r := newTestResolver(t)
	httpmock.RegisterResponder("GET", "http://index.test/channels/stable/latest",
		httpmock.NewStringResponder(200, `{"name": "stable", "snapshot_id": "a1b2c3"}`))

	first, err := r.Resolve(Ref{Name: "stable"})
	require.NoError(t, err)
	second, err := r.Resolve(Ref{Name: "stable"})
	require.NoError(t, err)

	assert.Equal(t, first, second, "one invocation only ever sees one snapshot per channel")
	assert.Equal(t, 1, httpmock.GetTotalCallCount(), "the index is only consulted once")
}

func TestResolvePinned(t *testing.T) {
	r := newTestResolver(t)

	snapshot, err := r.Resolve(Ref{Name: "stable", Pin: "pinned123"})
	require.NoError(t, err)
	assert.Equal(t, "pinned123", snapshot.SnapshotID)
	assert.Equal(t, 0, httpmock.GetTotalCallCount(), "pinned references never hit the index")
}

func TestResolveEmptyName(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.Resolve(Ref{})
	require.Error(t, err)
	assert.True(t, locale.IsInputError(err))
}

func TestResolveNotFound(t *testing.T) {
	r := newTestResolver(t)
	httpmock.RegisterResponder("GET", "http://index.test/channels/ghost/latest",
		httpmock.NewStringResponder(404, `{"error": "no such channel"}`))

	_, err := r.Resolve(Ref{Name: "ghost"})
	require.Error(t, err)
	assert.True(t, locale.IsInputError(err))
	assert.Contains(t, locale.JoinedErrorMessage(err), "ghost")
}

func TestResolveUnexpectedStatus(t *testing.T) {
	r := newTestResolver(t)
	httpmock.RegisterResponder("GET", "http://index.test/channels/stable/latest",
		httpmock.NewStringResponder(403, ``))

	_, err := r.Resolve(Ref{Name: "stable"})
	require.Error(t, err)
	assert.False(t, locale.IsInputError(err))
}

func TestResolveNoSnapshot(t *testing.T) {
	r := newTestResolver(t)
	httpmock.RegisterResponder("GET", "http://index.test/channels/fresh/latest",
		httpmock.NewStringResponder(200, `{"name": "fresh", "snapshot_id": ""}`))

	_, err := r.Resolve(Ref{Name: "fresh"})
	require.Error(t, err)
}

func TestIndexURLOptionRegistered(t *testing.T) {
	opt := configMediator.GetOption(ConfigKeyIndexURL)
	require.True(t, configMediator.KnownOption(opt))
	assert.Equal(t, configMediator.String, opt.Type)
	assert.Equal(t, constants.DefaultChannelIndexBaseURL, opt.Default)
}

func TestRef(t *testing.T) {
	assert.True(t, Ref{Name: "stable"}.IsFloating())
	assert.False(t, Ref{Name: "stable", Pin: "abc"}.IsFloating())
	assert.Equal(t, "stable", Ref{Name: "stable"}.String())
	assert.Equal(t, "stable@abc", Ref{Name: "stable", Pin: "abc"}.String())
}
