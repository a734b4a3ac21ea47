package channel

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	gocache "github.com/patrickmn/go-cache"

	"github.com/devshell-sh/cli/internal/constants"
	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/logging"
	configMediator "github.com/devshell-sh/cli/internal/mediators/config"
)

// Configurable defines the subset of our config instance that this package needs
type Configurable interface {
	GetString(string) string
}

// ConfigKeyIndexURL is the config key under which a user can point us at a
// different channel index
const ConfigKeyIndexURL = "channel.index.url"

func init() {
	configMediator.RegisterOption(configMediator.Option{
		Name:    ConfigKeyIndexURL,
		Type:    configMediator.String,
		Default: constants.DefaultChannelIndexBaseURL,
	})
}

// Resolver resolves channel references against the channel index. Results
// are memoized for the lifetime of the resolver, so a single invocation only
// ever sees one snapshot per channel.
type Resolver struct {
	baseURL string
	client  *retryablehttp.Client
	memo    *gocache.Cache
}

// indexResponse is the wire format of the channel index's latest-snapshot endpoint
type indexResponse struct {
	Name       string    `json:"name"`
	SnapshotID string    `json:"snapshot_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewResolver constructs a resolver against the configured channel index
func NewResolver(cfg Configurable) *Resolver {
	baseURL := os.Getenv(constants.ChannelIndexBaseURLEnvVarName)
	if baseURL == "" {
		baseURL = cfg.GetString(ConfigKeyIndexURL)
	}
	if baseURL == "" {
		baseURL = constants.DefaultChannelIndexBaseURL
	}

	client := retryablehttp.NewClient()
	client.HTTPClient = cleanhttp.DefaultClient()
	client.RetryMax = 3
	client.Logger = nil

	return &Resolver{
		baseURL: baseURL,
		client:  client,
		memo:    gocache.New(gocache.NoExpiration, gocache.NoExpiration),
	}
}

// Resolve turns a channel reference into a snapshot. Pinned references
// resolve without consulting the index. Floating references hit the index
// once per invocation; repeated calls return the memoized snapshot.
func (r *Resolver) Resolve(ref Ref) (*Snapshot, error) {
	if ref.Name == "" {
		return nil, locale.NewInputError("err_channel_empty", "")
	}

	if !ref.IsFloating() {
		return &Snapshot{
			Channel:    ref.Name,
			SnapshotID: ref.Pin,
			ResolvedAt: time.Now(),
		}, nil
	}

	if cached, ok := r.memo.Get(ref.Name); ok {
		return cached.(*Snapshot), nil
	}

	snapshot, err := r.fetchLatest(ref.Name)
	if err != nil {
		return nil, err
	}

	r.memo.Set(ref.Name, snapshot, gocache.NoExpiration)
	return snapshot, nil
}

func (r *Resolver) fetchLatest(name string) (*Snapshot, error) {
	endpoint := fmt.Sprintf("%s/channels/%s/latest", r.baseURL, url.PathEscape(name))
	logging.Debug("Resolving channel %s via %s", name, endpoint)

	resp, err := r.client.Get(endpoint)
	if err != nil {
		return nil, locale.WrapError(err, "err_channel_index_unreachable", "", name)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// handled below
	case http.StatusNotFound:
		return nil, locale.NewInputError("err_channel_not_found", "", name)
	default:
		return nil, locale.NewError("err_channel_index_status", "", name, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(err, "Could not read channel index response")
	}

	var payload indexResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errs.Wrap(err, "Could not unmarshal channel index response for %s", name)
	}

	if payload.SnapshotID == "" {
		return nil, locale.NewError("err_channel_no_snapshot", "", name)
	}

	return &Snapshot{
		Channel:    name,
		SnapshotID: payload.SnapshotID,
		ResolvedAt: time.Now(),
	}, nil
}
