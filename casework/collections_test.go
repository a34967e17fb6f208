package casework_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/prosecution-case-api/casework"
	"github.com/linesmerrill/prosecution-case-api/databases"
	"github.com/linesmerrill/prosecution-case-api/models"
)

func TestDecodeAlerts_NewestFirst(t *testing.T) {
	snap := databases.Snapshot{
		"a": {"id": "a", "createdAt": "2024-03-01T10:00:00Z", "type": "info"},
		"b": {"id": "b", "createdAt": "2024-03-05T10:00:00Z", "type": "urgent"},
		"c": {"id": "c", "createdAt": "2024-03-03T10:00:00Z", "type": "warning"},
	}

	alerts := casework.DecodeAlerts(snap)

	require.Len(t, alerts, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{alerts[0].ID, alerts[1].ID, alerts[2].ID})
	assert.Equal(t, models.AlertUrgent, alerts[0].Type)
}

func TestDecodeCases_SkipsUnreadableRecords(t *testing.T) {
	snap := databases.Snapshot{
		"ok":  {"id": "ok", "suspectName": "Dawit", "suspectAge": float64(30)},
		"bad": {"id": "bad", "suspectAge": "thirty"},
	}

	cases := casework.DecodeCases(snap)

	require.Len(t, cases, 1)
	assert.Equal(t, 30, cases[0].SuspectAge)
}

func TestDecodeUsers_Sorted(t *testing.T) {
	users := casework.DecodeUsers(databases.Snapshot{
		"b": {"id": "b", "role": "admin"},
		"a": {"id": "a", "role": "police"},
	})

	require.Len(t, users, 2)
	assert.Equal(t, "a", users[0].ID)
}

func TestObserver_ReplacesOnEverySnapshot(t *testing.T) {
	ctx := context.Background()
	backend := databases.NewMemoryBackend()
	store, err := databases.NewStore(ctx, backend, databases.NewLocalNotifier())
	require.NoError(t, err)
	require.NoError(t, store.PutRecord(ctx, databases.CasesCollection, "c1", databases.Record{"id": "c1"}))

	observer, err := casework.NewObserver(ctx, store)
	require.NoError(t, err)
	defer observer.Close()

	first := observer.Current()
	require.Len(t, first.Cases, 1)
	assert.Len(t, first.Users, len(casework.StaticUsers()))

	require.NoError(t, store.PutRecord(ctx, databases.CasesCollection, "c2", databases.Record{"id": "c2"}))

	assert.Len(t, first.Cases, 1)
	assert.Len(t, observer.Current().Cases, 2)
}

func TestObserver_CloseStopsUpdates(t *testing.T) {
	ctx := context.Background()
	store, err := databases.NewStore(ctx, databases.NewMemoryBackend(), databases.NewLocalNotifier())
	require.NoError(t, err)
	observer, err := casework.NewObserver(ctx, store)
	require.NoError(t, err)

	observer.Close()
	require.NoError(t, store.PutRecord(ctx, databases.CasesCollection, "c1", databases.Record{"id": "c1"}))

	assert.Empty(t, observer.Current().Cases)
}
