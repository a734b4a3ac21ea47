package channel

import (
	"encoding/json"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/devshell-sh/cli/internal/constants"
	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/fileutils"
	"github.com/devshell-sh/cli/internal/installation/storage"
)

// historyLimit caps how many resolutions we keep per history file
const historyLimit = 50

// History records the snapshots that floating channel references resolved to
// over time. It exists so we can tell the user when the channel head moved
// underneath them, since a floating reference gives no reproducibility
// guarantee on its own.
type History struct {
	path string
	lock *flock.Flock
}

// NewHistory returns the snapshot history stored in our appdata dir
func NewHistory() (*History, error) {
	appData, err := storage.AppDataPath()
	if err != nil {
		return nil, errs.Wrap(err, "Could not detect appdata dir")
	}
	return NewHistoryAt(filepath.Join(appData, constants.SnapshotHistoryFileName)), nil
}

// NewHistoryAt returns a snapshot history stored at the given path
func NewHistoryAt(path string) *History {
	return &History{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Record appends the given snapshot to the history and returns the previous
// snapshot recorded for the same channel, if any. Callers compare the two to
// detect drift. The history file is guarded with a file lock as multiple
// invocations can run concurrently.
func (h *History) Record(snapshot *Snapshot) (previous *Snapshot, rerr error) {
	if err := h.lock.Lock(); err != nil {
		return nil, errs.Wrap(err, "Could not lock snapshot history at %s", h.path)
	}
	defer func() {
		if err := h.lock.Unlock(); err != nil && rerr == nil {
			rerr = errs.Wrap(err, "Could not unlock snapshot history at %s", h.path)
		}
	}()

	entries, err := h.read()
	if err != nil {
		return nil, err
	}

	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Channel == snapshot.Channel {
			prev := entries[i]
			previous = &prev
			break
		}
	}

	// Recording the same snapshot again would just produce noise
	if previous != nil && previous.SnapshotID == snapshot.SnapshotID {
		return previous, nil
	}

	entries = append(entries, *snapshot)
	if len(entries) > historyLimit {
		entries = entries[len(entries)-historyLimit:]
	}

	if err := h.write(entries); err != nil {
		return nil, err
	}

	return previous, nil
}

// Last returns the most recent snapshot recorded for the given channel, or
// nil if the channel was never resolved before
func (h *History) Last(channelName string) (_ *Snapshot, rerr error) {
	if err := h.lock.RLock(); err != nil {
		return nil, errs.Wrap(err, "Could not lock snapshot history at %s", h.path)
	}
	defer func() {
		if err := h.lock.Unlock(); err != nil && rerr == nil {
			rerr = errs.Wrap(err, "Could not unlock snapshot history at %s", h.path)
		}
	}()

	entries, err := h.read()
	if err != nil {
		return nil, err
	}

	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Channel == channelName {
			entry := entries[i]
			return &entry, nil
		}
	}
	return nil, nil
}

func (h *History) read() ([]Snapshot, error) {
	if !fileutils.FileExists(h.path) {
		return nil, nil
	}

	dat, err := fileutils.ReadFile(h.path)
	if err != nil {
		return nil, errs.Wrap(err, "Could not read snapshot history at %s", h.path)
	}

	var entries []Snapshot
	if err := json.Unmarshal(dat, &entries); err != nil {
		return nil, errs.Wrap(err, "Could not unmarshal snapshot history at %s", h.path)
	}
	return entries, nil
}

func (h *History) write(entries []Snapshot) error {
	dat, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errs.Wrap(err, "Could not marshal snapshot history")
	}

	if err := fileutils.WriteFile(h.path, dat); err != nil {
		return errs.Wrap(err, "Could not write snapshot history at %s", h.path)
	}
	return nil
}
