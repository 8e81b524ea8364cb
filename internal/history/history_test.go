package history_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tomaszchojnowski/heatcalc/internal/history"
	"github.com/tomaszchojnowski/heatcalc/pkg/climate"
)

func snap(n int) []byte {
	return []byte(fmt.Sprintf(`{"n":%d}`, n))
}

func TestLogUndoRedo(t *testing.T) {
	l := history.NewLog(0)
	require.Equal(t, history.DefaultLimit, l.Limit)
	require.False(t, l.CanUndo())
	require.False(t, l.CanRedo())

	l.Push(snap(1))
	require.False(t, l.CanUndo(), "a single snapshot cannot be undone")
	l.Push(snap(2))
	l.Push(snap(3))
	require.Equal(t, 2, l.Index)

	got, ok := l.Undo()
	require.True(t, ok)
	require.JSONEq(t, `{"n":2}`, string(got))
	require.True(t, l.CanRedo())

	got, ok = l.Undo()
	require.True(t, ok)
	require.JSONEq(t, `{"n":1}`, string(got))
	_, ok = l.Undo()
	require.False(t, ok)

	got, ok = l.Redo()
	require.True(t, ok)
	require.JSONEq(t, `{"n":2}`, string(got))

	// A new edit drops the redo tail.
	l.Push(snap(4))
	require.False(t, l.CanRedo())
	require.Equal(t, 3, l.Len())
	cur, _ := l.Current()
	require.JSONEq(t, `{"n":4}`, string(cur))
}

func TestLogLimit(t *testing.T) {
	l := history.NewLog(3)
	for i := 1; i <= 5; i++ {
		l.Push(snap(i))
	}
	require.Equal(t, 3, l.Len())
	require.Equal(t, 2, l.Index)

	first := l.Entries[0]
	require.JSONEq(t, `{"n":3}`, string(first))

	l.Undo()
	l.Undo()
	require.False(t, l.CanUndo())
}

func TestLogCopiesSnapshot(t *testing.T) {
	l := history.NewLog(5)
	b := snap(1)
	l.Push(b)
	b[5] = '9'
	cur, _ := l.Current()
	require.JSONEq(t, `{"n":1}`, string(cur))
}

func newSession(id string) *history.Session {
	s := &history.Session{
		ID:            id,
		Postcode:      "SW1A 1AA",
		Conditions:    climate.DefaultConditions(),
		IncludeGrants: true,
		History:       history.NewLog(history.DefaultLimit),
		UpdatedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	s.History.Push(snap(1))
	return s
}

func testStore(t *testing.T, store history.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, history.ErrNotFound)

	s := newSession("bldg_1")
	require.NoError(t, store.Put(ctx, s))

	got, err := store.Get(ctx, "bldg_1")
	require.NoError(t, err)
	require.Equal(t, s.Postcode, got.Postcode)
	require.Equal(t, s.Conditions, got.Conditions)
	require.True(t, got.UpdatedAt.Equal(s.UpdatedAt))
	cur, ok := got.Building()
	require.True(t, ok)
	require.JSONEq(t, `{"n":1}`, string(cur))

	// Loaded sessions are copies.
	got.History.Push(snap(2))
	again, err := store.Get(ctx, "bldg_1")
	require.NoError(t, err)
	require.Equal(t, 1, again.History.Len())

	require.NoError(t, store.Put(ctx, got))
	again, err = store.Get(ctx, "bldg_1")
	require.NoError(t, err)
	require.Equal(t, 2, again.History.Len())
	require.True(t, again.History.CanUndo())

	require.NoError(t, store.Delete(ctx, "bldg_1"))
	_, err = store.Get(ctx, "bldg_1")
	require.ErrorIs(t, err, history.ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, history.NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	kv := newFakeKVStore()
	testStore(t, history.NewRedisStore(kv, time.Hour))
}

func TestRedisStoreKeysAndTTL(t *testing.T) {
	kv := newFakeKVStore()
	store := history.NewRedisStore(kv, time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, newSession("abc")))
	require.Equal(t, []string{history.KeyPrefix + "abc"}, kv.keys())

	time.Sleep(5 * time.Millisecond)
	_, err := store.Get(ctx, "abc")
	require.ErrorIs(t, err, history.ErrNotFound)
}

func TestRedisStoreCorruptSession(t *testing.T) {
	kv := newFakeKVStore()
	require.NoError(t, kv.Set(context.Background(), history.KeyPrefix+"bad", "{", 0))
	_, err := history.NewRedisStore(kv, 0).Get(context.Background(), "bad")
	require.Error(t, err)
	require.NotErrorIs(t, err, history.ErrNotFound)
}
