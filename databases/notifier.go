package databases

import (
	"context"
	"sync"
)

// LocalNotifier fans change events out to listeners in the same process.
// Publish runs the listeners before it returns.
type LocalNotifier struct {
	mu        sync.RWMutex
	listeners []func(string)
}

// NewLocalNotifier returns an in-process notifier
func NewLocalNotifier() *LocalNotifier {
	return &LocalNotifier{}
}

// Publish calls every listener with the changed collection
func (n *LocalNotifier) Publish(ctx context.Context, collection string) error {
	n.mu.RLock()
	listeners := make([]func(string), len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.RUnlock()

	for _, fn := range listeners {
		fn(collection)
	}
	return nil
}

// Listen registers a listener
func (n *LocalNotifier) Listen(ctx context.Context, onChange func(collection string)) error {
	n.mu.Lock()
	n.listeners = append(n.listeners, onChange)
	n.mu.Unlock()
	return nil
}
