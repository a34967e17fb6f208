package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/linesmerrill/prosecution-case-api/config"
	"github.com/linesmerrill/prosecution-case-api/databases"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// streamable lists the collections a client may subscribe to
var streamable = map[string]bool{
	databases.CasesCollection:     true,
	databases.PrisonersCollection: true,
	databases.AlertsCollection:    true,
}

// Stream pushes full collection snapshots over a websocket
type Stream struct {
	Store databases.RecordStore
}

// SnapshotMessage is one frame on the stream
type SnapshotMessage struct {
	Event      string             `json:"event"`
	Collection string             `json:"collection"`
	Records    databases.Snapshot `json:"records"`
}

// StreamHandler upgrades the request and sends the collection's current snapshot,
// then a new one after every change, until the client goes away
func (s Stream) StreamHandler(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]
	if !streamable[collection] {
		config.ErrorStatus("failed to open stream", http.StatusNotFound, w, fmt.Errorf("unknown collection %q", collection))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade error", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// only the latest snapshot matters, so a slow client skips intermediate ones
	updates := make(chan databases.Snapshot, 1)
	unsubscribe, err := s.Store.Subscribe(ctx, collection, func(snap databases.Snapshot) {
		for {
			select {
			case updates <- snap:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	if err != nil {
		zap.S().Errorw("failed to subscribe stream", "collection", collection, "error", err)
		return
	}
	defer unsubscribe()
	zap.S().Infow("stream connected", "collection", collection, "remote", r.RemoteAddr)

	// Keep connection alive until the client closes it
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			zap.S().Infow("stream disconnected", "collection", collection, "remote", r.RemoteAddr)
			return
		case snap := <-updates:
			msg := SnapshotMessage{Event: "snapshot", Collection: collection, Records: snap}
			if err := conn.WriteJSON(msg); err != nil {
				zap.S().Warnw("failed to send snapshot", "collection", collection, "error", err)
				return
			}
		}
	}
}
