package databases

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Logical collections kept in the record store
const (
	CasesCollection     = "cases"
	PrisonersCollection = "prisoners"
	AlertsCollection    = "alerts"
	UsersCollection     = "users"
)

// Record is a flat, JSON-compatible document. Arrays of objects (history, visitors)
// are embedded directly.
type Record map[string]interface{}

// Snapshot is the full content of one collection keyed by record id
type Snapshot map[string]Record

// RecordStore is the only way the rest of the service talks to persistence.
//
// Every snapshot handed to a subscriber replaces the subscriber's previous view of
// that collection. A write is not visible through its return value, only through
// the next snapshot. Concurrent writers are not reconciled: the last write wins.
type RecordStore interface {
	Subscribe(ctx context.Context, collection string, onSnapshot func(Snapshot)) (unsubscribe func(), err error)
	PutRecord(ctx context.Context, collection, id string, record Record) error
	PatchRecord(ctx context.Context, collection, id string, patch Record) error
}

// Backend persists records for a store
type Backend interface {
	Load(ctx context.Context, collection string) (Snapshot, error)
	Put(ctx context.Context, collection, id string, record Record) error
	Patch(ctx context.Context, collection, id string, patch Record) error
}

// Notifier tells every store instance which collection changed
type Notifier interface {
	Publish(ctx context.Context, collection string) error
	Listen(ctx context.Context, onChange func(collection string)) error
}

type subscriber struct {
	collection string
	fn         func(Snapshot)
	// seen is the sequence of the last snapshot delivered, guarded by the
	// collection's delivery lock
	seen uint64
}

// feed orders the loads of one collection. Every load takes the next sequence
// before reading the backend, so a higher sequence has seen every write a lower
// one has. Deliveries of an older sequence than a subscriber has seen are dropped.
type feed struct {
	mu  sync.Mutex
	seq uint64
}

type store struct {
	backend  Backend
	notifier Notifier

	mu     sync.Mutex
	nextID int
	subs   map[int]*subscriber
	feeds  map[string]*feed
}

// NewStore composes a backend and a notifier into a RecordStore. The notifier
// listener lives as long as ctx.
//
// Subscriber callbacks run while the collection's delivery lock is held and must
// not write to the same collection synchronously.
func NewStore(ctx context.Context, backend Backend, notifier Notifier) (RecordStore, error) {
	s := &store{
		backend:  backend,
		notifier: notifier,
		subs:     make(map[int]*subscriber),
		feeds:    make(map[string]*feed),
	}
	if err := notifier.Listen(ctx, s.refresh); err != nil {
		return nil, err
	}
	return s, nil
}

// next hands out the sequence for a load that is about to start
func (s *store) next(collection string) (*feed, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.feeds[collection]
	if !ok {
		f = &feed{}
		s.feeds[collection] = f
	}
	f.seq++
	return f, f.seq
}

func (s *store) Subscribe(ctx context.Context, collection string, onSnapshot func(Snapshot)) (func(), error) {
	// register first so a write landing during the initial load still reaches us
	sub := &subscriber{collection: collection, fn: onSnapshot}
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = sub
	s.mu.Unlock()

	unsubscribe := func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}

	f, seq := s.next(collection)
	snapshot, err := s.backend.Load(ctx, collection)
	if err != nil {
		unsubscribe()
		return nil, err
	}

	f.mu.Lock()
	if seq > sub.seen {
		sub.seen = seq
		onSnapshot(snapshot)
	}
	f.mu.Unlock()

	return unsubscribe, nil
}

func (s *store) PutRecord(ctx context.Context, collection, id string, record Record) error {
	if err := s.backend.Put(ctx, collection, id, record); err != nil {
		return err
	}
	return s.notifier.Publish(ctx, collection)
}

func (s *store) PatchRecord(ctx context.Context, collection, id string, patch Record) error {
	if err := s.backend.Patch(ctx, collection, id, patch); err != nil {
		return err
	}
	return s.notifier.Publish(ctx, collection)
}

// refresh reloads a whole collection and hands each subscriber its own copy,
// unless the subscriber already holds a newer load
func (s *store) refresh(collection string) {
	f, seq := s.next(collection)

	s.mu.Lock()
	var subs []*subscriber
	for _, sub := range s.subs {
		if sub.collection == collection {
			subs = append(subs, sub)
		}
	}
	s.mu.Unlock()
	if len(subs) == 0 {
		return
	}

	snapshot, err := s.backend.Load(context.Background(), collection)
	if err != nil {
		zap.S().Errorw("failed to reload collection", "collection", collection, "error", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	delivered := 0
	for _, sub := range subs {
		if seq <= sub.seen {
			continue
		}
		sub.seen = seq
		snap := snapshot
		if delivered > 0 {
			snap = snapshot.Clone()
		}
		delivered++
		sub.fn(snap)
	}
	if delivered < len(subs) {
		zap.S().Debugw("dropped stale snapshot", "collection", collection, "seq", seq)
	}
}

// Clone deep-copies a snapshot
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for id, rec := range s {
		out[id] = rec.Clone()
	}
	return out
}

// Clone deep-copies a record through its JSON form
func (r Record) Clone() Record {
	out, err := Normalize(r)
	if err != nil {
		return Record{}
	}
	return out
}

// Normalize converts any JSON-marshalable value into a Record, so numbers,
// nested objects and arrays look the same whichever backend produced them.
func Normalize(v interface{}) (Record, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := Record{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// merge applies a shallow patch on top of a record
func merge(base, patch Record) Record {
	out := make(Record, len(base)+len(patch))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}
