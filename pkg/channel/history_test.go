package channel

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHistory(t *testing.T) *History {
	t.Helper()
	return NewHistoryAt(filepath.Join(t.TempDir(), "snapshots.json"))
}

func snapshotAt(channelName, id string) *Snapshot {
	return &Snapshot{Channel: channelName, SnapshotID: id, ResolvedAt: time.Now()}
}

func TestHistoryRecordFirst(t *testing.T) {
	h := testHistory(t)

	previous, err := h.Record(snapshotAt("stable", "aaa"))
	require.NoError(t, err)
	assert.Nil(t, previous, "a channel resolved for the first time has no previous snapshot")
}

func TestHistoryRecordDrift(t *testing.T) {
	h := testHistory(t)

	_, err := h.Record(snapshotAt("stable", "aaa"))
	require.NoError(t, err)

	previous, err := h.Record(snapshotAt("stable", "bbb"))
	require.NoError(t, err)
	require.NotNil(t, previous)
	assert.Equal(t, "aaa", previous.SnapshotID)
}

func TestHistoryRecordSameSnapshot(t *testing.T) {
	h := testHistory(t)

	_, err := h.Record(snapshotAt("stable", "aaa"))
	require.NoError(t, err)
	previous, err := h.Record(snapshotAt("stable", "aaa"))
	require.NoError(t, err)
	require.NotNil(t, previous)
	assert.Equal(t, "aaa", previous.SnapshotID)

	last, err := h.Last("stable")
	require.NoError(t, err)
	assert.Equal(t, "aaa", last.SnapshotID)
}

func TestHistoryChannelsAreIndependent(t *testing.T) {
	h := testHistory(t)

	_, err := h.Record(snapshotAt("stable", "aaa"))
	require.NoError(t, err)

	previous, err := h.Record(snapshotAt("nightly", "zzz"))
	require.NoError(t, err)
	assert.Nil(t, previous, "snapshots of other channels do not count as previous")

	last, err := h.Last("stable")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "aaa", last.SnapshotID)
}

func TestHistoryLastUnknownChannel(t *testing.T) {
	h := testHistory(t)

	last, err := h.Last("never-resolved")
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestHistorySurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.json")

	h := NewHistoryAt(path)
	_, err := h.Record(snapshotAt("stable", "aaa"))
	require.NoError(t, err)

	reopened := NewHistoryAt(path)
	last, err := reopened.Last("stable")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "aaa", last.SnapshotID)
}
