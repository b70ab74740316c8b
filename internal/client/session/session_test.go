package session

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteStore_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore(openTestDB(t))

	st, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, st.SignedIn())

	exp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	want := State{Email: "ann@example.com", AccessToken: "a", AccessExpiresAt: exp, RefreshToken: "r"}
	require.NoError(t, store.Save(ctx, want))
	require.NoError(t, store.Save(ctx, want)) // upsert

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Email, got.Email)
	assert.Equal(t, want.RefreshToken, got.RefreshToken)
	assert.True(t, exp.Equal(got.AccessExpiresAt))

	require.NoError(t, store.Clear(ctx))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, State{}, got)
}

func TestSession_InitRestoresPersistedState(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	first := New(NewSQLiteStore(db))
	require.NoError(t, first.Init(ctx))
	require.NoError(t, first.Set(ctx, State{Email: "ann@example.com", AccessToken: "a", RefreshToken: "r"}))
	first.Close()

	second := New(NewSQLiteStore(db))
	require.NoError(t, second.Init(ctx))
	assert.Equal(t, "ann@example.com", second.Current().Email)
	assert.True(t, second.Current().SignedIn())
}

func TestSession_SubscribeAndUnsubscribe(t *testing.T) {
	ctx := context.Background()
	s := New(NewSQLiteStore(openTestDB(t)))
	require.NoError(t, s.Init(ctx))

	var seen []string
	unsubscribe := s.Subscribe(func(st State) { seen = append(seen, st.Email) })

	require.NoError(t, s.Set(ctx, State{Email: "a@x.io", AccessToken: "t"}))
	require.NoError(t, s.Clear(ctx))
	unsubscribe()
	require.NoError(t, s.Set(ctx, State{Email: "b@x.io", AccessToken: "t"}))

	assert.Equal(t, []string{"a@x.io", ""}, seen)
	assert.Equal(t, "b@x.io", s.Current().Email)
}

func TestSession_CloseDropsListeners(t *testing.T) {
	ctx := context.Background()
	s := New(NewSQLiteStore(openTestDB(t)))

	calls := 0
	s.Subscribe(func(State) { calls++ })
	s.Close()
	s.Subscribe(func(State) { calls++ })

	require.NoError(t, s.Set(ctx, State{Email: "a@x.io", AccessToken: "t"}))
	assert.Zero(t, calls)
	assert.Equal(t, "a@x.io", s.Current().Email)
}

type failingStore struct{}

func (failingStore) Load(context.Context) (State, error) { return State{}, errors.New("disk gone") }
func (failingStore) Save(context.Context, State) error   { return errors.New("disk gone") }
func (failingStore) Clear(context.Context) error         { return errors.New("disk gone") }

func TestSession_StoreErrorsKeepState(t *testing.T) {
	ctx := context.Background()
	s := New(failingStore{})

	require.Error(t, s.Init(ctx))

	notified := false
	s.Subscribe(func(State) { notified = true })
	require.Error(t, s.Set(ctx, State{Email: "a@x.io"}))
	assert.False(t, notified)
	assert.Equal(t, State{}, s.Current())
}
