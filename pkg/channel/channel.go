package channel

import (
	"fmt"
	"time"
)

// Ref addresses a base environment channel. A Ref with an empty Pin is
// floating: every resolution may yield a different snapshot of the channel.
type Ref struct {
	Name string `json:"name"`
	Pin  string `json:"pin,omitempty"`
}

// NewRef returns a floating reference to the named channel
func NewRef(name string) Ref {
	return Ref{Name: name}
}

// IsFloating returns whether the reference tracks the channel head rather
// than a pinned snapshot
func (r Ref) IsFloating() bool {
	return r.Pin == ""
}

func (r Ref) String() string {
	if r.Pin == "" {
		return r.Name
	}
	return fmt.Sprintf("%s@%s", r.Name, r.Pin)
}

// Snapshot is the result of resolving a channel reference at a point in time.
// All tool resolutions during a single invocation are served from one
// snapshot.
type Snapshot struct {
	Channel    string    `json:"channel"`
	SnapshotID string    `json:"snapshot_id"`
	ResolvedAt time.Time `json:"resolved_at"`
}

func (s *Snapshot) String() string {
	return fmt.Sprintf("%s@%s", s.Channel, s.SnapshotID)
}
