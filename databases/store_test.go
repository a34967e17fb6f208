package databases_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/prosecution-case-api/databases"
)

type failingBackend struct {
	*databases.MemoryBackend
	err error
}

func (f failingBackend) Put(ctx context.Context, collection, id string, record databases.Record) error {
	return f.err
}

// slowLoadBackend reads the collection on its nth Load, then holds the result
// until release is closed
type slowLoadBackend struct {
	*databases.MemoryBackend
	holdLoad int
	entered  chan struct{}
	release  chan struct{}

	mu    sync.Mutex
	loads int
}

func newSlowLoadBackend(holdLoad int) *slowLoadBackend {
	return &slowLoadBackend{
		MemoryBackend: databases.NewMemoryBackend(),
		holdLoad:      holdLoad,
		entered:       make(chan struct{}),
		release:       make(chan struct{}),
	}
}

func (b *slowLoadBackend) Load(ctx context.Context, collection string) (databases.Snapshot, error) {
	snap, err := b.MemoryBackend.Load(ctx, collection)
	b.mu.Lock()
	b.loads++
	n := b.loads
	b.mu.Unlock()
	if n == b.holdLoad {
		close(b.entered)
		<-b.release
	}
	return snap, err
}

type latestView struct {
	mu   sync.Mutex
	snap databases.Snapshot
}

func (v *latestView) set(snap databases.Snapshot) {
	v.mu.Lock()
	v.snap = snap
	v.mu.Unlock()
}

func (v *latestView) get() databases.Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snap
}

func newMemoryStore(t *testing.T) databases.RecordStore {
	t.Helper()
	s, err := databases.NewStore(context.Background(), databases.NewMemoryBackend(), databases.NewLocalNotifier())
	require.NoError(t, err)
	return s
}

func TestStore_SubscribeDeliversCurrentSnapshot(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()
	require.NoError(t, s.PutRecord(ctx, databases.CasesCollection, "c1", databases.Record{"caseNumber": "PS01-123"}))

	var got []databases.Snapshot
	unsubscribe, err := s.Subscribe(ctx, databases.CasesCollection, func(snap databases.Snapshot) {
		got = append(got, snap)
	})
	require.NoError(t, err)
	defer unsubscribe()

	require.Len(t, got, 1)
	assert.Equal(t, "PS01-123", got[0]["c1"]["caseNumber"])
}

func TestStore_EmptyCollectionYieldsEmptySnapshot(t *testing.T) {
	s := newMemoryStore(t)

	var got databases.Snapshot
	unsubscribe, err := s.Subscribe(context.Background(), databases.AlertsCollection, func(snap databases.Snapshot) {
		got = snap
	})
	require.NoError(t, err)
	defer unsubscribe()

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStore_WritesProduceNewSnapshots(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()

	var latest databases.Snapshot
	calls := 0
	unsubscribe, err := s.Subscribe(ctx, databases.CasesCollection, func(snap databases.Snapshot) {
		latest = snap
		calls++
	})
	require.NoError(t, err)
	defer unsubscribe()

	require.NoError(t, s.PutRecord(ctx, databases.CasesCollection, "c1", databases.Record{
		"status":    "received",
		"updatedAt": "2024-01-01T00:00:00Z",
		"history":   []interface{}{map[string]interface{}{"action": "created"}},
	}))
	require.NoError(t, s.PatchRecord(ctx, databases.CasesCollection, "c1", databases.Record{
		"status":    "assigned",
		"updatedAt": "2024-01-02T00:00:00Z",
	}))

	assert.Equal(t, 3, calls)
	rec := latest["c1"]
	assert.Equal(t, "assigned", rec["status"])
	assert.Equal(t, "2024-01-02T00:00:00Z", rec["updatedAt"])
	assert.Len(t, rec["history"], 1)
}

func TestStore_OtherCollectionsAreNotNotified(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()

	calls := 0
	unsubscribe, err := s.Subscribe(ctx, databases.PrisonersCollection, func(snap databases.Snapshot) {
		calls++
	})
	require.NoError(t, err)
	defer unsubscribe()

	require.NoError(t, s.PutRecord(ctx, databases.CasesCollection, "c1", databases.Record{}))
	assert.Equal(t, 1, calls)
}

func TestStore_UnsubscribeStopsDelivery(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()

	calls := 0
	unsubscribe, err := s.Subscribe(ctx, databases.CasesCollection, func(snap databases.Snapshot) {
		calls++
	})
	require.NoError(t, err)
	unsubscribe()

	require.NoError(t, s.PutRecord(ctx, databases.CasesCollection, "c1", databases.Record{}))
	assert.Equal(t, 1, calls)
}

func TestStore_SubscribersGetIndependentCopies(t *testing.T) {
	s := newMemoryStore(t)
	ctx := context.Background()

	var a, b databases.Snapshot
	ua, err := s.Subscribe(ctx, databases.CasesCollection, func(snap databases.Snapshot) { a = snap })
	require.NoError(t, err)
	defer ua()
	ub, err := s.Subscribe(ctx, databases.CasesCollection, func(snap databases.Snapshot) { b = snap })
	require.NoError(t, err)
	defer ub()

	require.NoError(t, s.PutRecord(ctx, databases.CasesCollection, "c1", databases.Record{"status": "draft"}))
	a["c1"]["status"] = "mutated"

	assert.Equal(t, "draft", b["c1"]["status"])
}

func TestStore_PutErrorIsReturnedWithoutNotifying(t *testing.T) {
	backend := failingBackend{MemoryBackend: databases.NewMemoryBackend(), err: errors.New("disk full")}
	s, err := databases.NewStore(context.Background(), backend, databases.NewLocalNotifier())
	require.NoError(t, err)

	calls := 0
	unsubscribe, err := s.Subscribe(context.Background(), databases.CasesCollection, func(snap databases.Snapshot) {
		calls++
	})
	require.NoError(t, err)
	defer unsubscribe()

	err = s.PutRecord(context.Background(), databases.CasesCollection, "c1", databases.Record{})
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, 1, calls)
}

func TestMemoryBackend_PatchCreatesMissingRecord(t *testing.T) {
	m := databases.NewMemoryBackend()
	ctx := context.Background()

	require.NoError(t, m.Patch(ctx, databases.AlertsCollection, "a1", databases.Record{"isRead": true}))

	snap, err := m.Load(ctx, databases.AlertsCollection)
	require.NoError(t, err)
	assert.Equal(t, databases.Record{"isRead": true}, snap["a1"])
}

func TestNormalize(t *testing.T) {
	type doc struct {
		Load int `json:"load"`
	}
	rec, err := databases.Normalize(doc{Load: 3})
	require.NoError(t, err)
	assert.Equal(t, float64(3), rec["load"])
}

func TestStore_OverlappingWritesEndOnNewestSnapshot(t *testing.T) {
	// load 1 is the subscription, load 2 the refresh after the first write
	backend := newSlowLoadBackend(2)
	ctx := context.Background()
	s, err := databases.NewStore(ctx, backend, databases.NewLocalNotifier())
	require.NoError(t, err)

	view := &latestView{}
	unsubscribe, err := s.Subscribe(ctx, databases.PrisonersCollection, view.set)
	require.NoError(t, err)
	defer unsubscribe()

	done := make(chan error)
	go func() {
		done <- s.PutRecord(ctx, databases.PrisonersCollection, "p1", databases.Record{"fullName": "Abebe Kebede"})
	}()
	<-backend.entered

	require.NoError(t, s.PutRecord(ctx, databases.PrisonersCollection, "p2", databases.Record{"fullName": "Hana Tesfaye"}))
	close(backend.release)
	require.NoError(t, <-done)

	stored, err := backend.MemoryBackend.Load(ctx, databases.PrisonersCollection)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
	assert.Equal(t, stored, view.get())
}

func TestStore_WriteDuringSubscribeIsNotLost(t *testing.T) {
	backend := newSlowLoadBackend(1)
	ctx := context.Background()
	s, err := databases.NewStore(ctx, backend, databases.NewLocalNotifier())
	require.NoError(t, err)

	view := &latestView{}
	subscribed := make(chan error)
	go func() {
		_, err := s.Subscribe(ctx, databases.AlertsCollection, view.set)
		subscribed <- err
	}()
	<-backend.entered

	require.NoError(t, s.PutRecord(ctx, databases.AlertsCollection, "a1", databases.Record{"title": "new prisoner"}))
	close(backend.release)
	require.NoError(t, <-subscribed)

	got := view.get()
	require.Len(t, got, 1)
	assert.Equal(t, "new prisoner", got["a1"]["title"])
}
