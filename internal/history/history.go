// Package history keeps undo/redo snapshots of edited buildings and stores
// editing sessions.
package history

import "encoding/json"

// DefaultLimit is the number of snapshots kept per building.
const DefaultLimit = 20

// Log is a bounded list of serialized building snapshots with a cursor.
// Index points at the snapshot matching the current building, or -1 when
// the log is empty.
type Log struct {
	Entries []json.RawMessage `json:"entries"`
	Index   int               `json:"index"`
	Limit   int               `json:"limit"`
}

// NewLog returns an empty log holding at most limit snapshots. A
// non-positive limit uses DefaultLimit.
func NewLog(limit int) *Log {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Log{Entries: []json.RawMessage{}, Index: -1, Limit: limit}
}

// Push records a new snapshot. Snapshots after the cursor are discarded.
// When the log is full the oldest snapshot is dropped.
func (l *Log) Push(snapshot []byte) {
	if l.Limit <= 0 {
		l.Limit = DefaultLimit
	}
	l.Entries = l.Entries[:l.Index+1]
	l.Entries = append(l.Entries, append(json.RawMessage(nil), snapshot...))
	if len(l.Entries) > l.Limit {
		l.Entries = l.Entries[1:]
	} else {
		l.Index++
	}
}

// CanUndo reports whether an earlier snapshot exists.
func (l *Log) CanUndo() bool {
	return l.Index > 0
}

// CanRedo reports whether an undone snapshot can be restored.
func (l *Log) CanRedo() bool {
	return l.Index < len(l.Entries)-1
}

// Undo moves the cursor back and returns the snapshot to restore.
func (l *Log) Undo() ([]byte, bool) {
	if !l.CanUndo() {
		return nil, false
	}
	l.Index--
	return l.Entries[l.Index], true
}

// Redo moves the cursor forward and returns the snapshot to restore.
func (l *Log) Redo() ([]byte, bool) {
	if !l.CanRedo() {
		return nil, false
	}
	l.Index++
	return l.Entries[l.Index], true
}

// Current returns the snapshot at the cursor.
func (l *Log) Current() ([]byte, bool) {
	if l.Index < 0 || l.Index >= len(l.Entries) {
		return nil, false
	}
	return l.Entries[l.Index], true
}

// Len returns the number of stored snapshots.
func (l *Log) Len() int {
	return len(l.Entries)
}
