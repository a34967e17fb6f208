package casework

import (
	"context"
	"sync"

	"github.com/linesmerrill/prosecution-case-api/databases"
)

// Observer keeps the latest decoded copy of every collection. Each snapshot
// replaces the matching slice; nothing is merged locally.
type Observer struct {
	mu           sync.RWMutex
	state        Collections
	unsubscribes []func()
}

// NewObserver subscribes to cases, prisoners, alerts and users. An empty users
// collection falls back to the static user list.
func NewObserver(ctx context.Context, store databases.RecordStore) (*Observer, error) {
	o := &Observer{state: Collections{Users: StaticUsers()}}

	subscriptions := map[string]func(databases.Snapshot){
		databases.CasesCollection: func(snap databases.Snapshot) {
			cases := DecodeCases(snap)
			o.mu.Lock()
			o.state.Cases = cases
			o.mu.Unlock()
		},
		databases.PrisonersCollection: func(snap databases.Snapshot) {
			prisoners := DecodePrisoners(snap)
			o.mu.Lock()
			o.state.Prisoners = prisoners
			o.mu.Unlock()
		},
		databases.AlertsCollection: func(snap databases.Snapshot) {
			alerts := DecodeAlerts(snap)
			o.mu.Lock()
			o.state.Alerts = alerts
			o.mu.Unlock()
		},
		databases.UsersCollection: func(snap databases.Snapshot) {
			users := DecodeUsers(snap)
			if len(users) == 0 {
				users = StaticUsers()
			}
			o.mu.Lock()
			o.state.Users = users
			o.mu.Unlock()
		},
	}

	for collection, fn := range subscriptions {
		unsubscribe, err := store.Subscribe(ctx, collection, fn)
		if err != nil {
			o.Close()
			return nil, err
		}
		o.unsubscribes = append(o.unsubscribes, unsubscribe)
	}
	return o, nil
}

// Current returns the latest collections
func (o *Observer) Current() Collections {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// Close drops every subscription
func (o *Observer) Close() {
	for _, unsubscribe := range o.unsubscribes {
		unsubscribe()
	}
	o.unsubscribes = nil
}
