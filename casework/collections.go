package casework

import (
	"encoding/json"
	"sort"

	"go.uber.org/zap"

	"github.com/linesmerrill/prosecution-case-api/databases"
	"github.com/linesmerrill/prosecution-case-api/models"
)

// Collections is one consistent read of everything the office tracks. Slices are
// replaced wholesale on every snapshot and must not be modified by readers.
type Collections struct {
	Cases     []models.Case
	Prisoners []models.Prisoner
	Alerts    []models.Alert
	Users     []models.User
}

func decodeSnapshot[T any](collection string, snap databases.Snapshot) []T {
	out := make([]T, 0, len(snap))
	for id, rec := range snap {
		b, err := json.Marshal(rec)
		if err != nil {
			zap.S().Warnw("skipping unreadable record", "collection", collection, "id", id, "error", err)
			continue
		}
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			zap.S().Warnw("skipping unreadable record", "collection", collection, "id", id, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

// DecodeCases turns a cases snapshot into cases, newest first
func DecodeCases(snap databases.Snapshot) []models.Case {
	cases := decodeSnapshot[models.Case](databases.CasesCollection, snap)
	sort.Slice(cases, func(i, j int) bool {
		return newer(cases[i].CreatedAt, cases[j].CreatedAt, cases[i].ID, cases[j].ID)
	})
	return cases
}

// DecodePrisoners turns a prisoners snapshot into prisoners, newest first
func DecodePrisoners(snap databases.Snapshot) []models.Prisoner {
	prisoners := decodeSnapshot[models.Prisoner](databases.PrisonersCollection, snap)
	sort.Slice(prisoners, func(i, j int) bool {
		return newer(prisoners[i].CreatedAt, prisoners[j].CreatedAt, prisoners[i].ID, prisoners[j].ID)
	})
	return prisoners
}

// DecodeAlerts turns an alerts snapshot into alerts, newest first
func DecodeAlerts(snap databases.Snapshot) []models.Alert {
	alerts := decodeSnapshot[models.Alert](databases.AlertsCollection, snap)
	sort.Slice(alerts, func(i, j int) bool {
		return newer(alerts[i].CreatedAt, alerts[j].CreatedAt, alerts[i].ID, alerts[j].ID)
	})
	return alerts
}

// DecodeUsers turns a users snapshot into users ordered by id
func DecodeUsers(snap databases.Snapshot) []models.User {
	users := decodeSnapshot[models.User](databases.UsersCollection, snap)
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

func newer(a, b, idA, idB string) bool {
	ta, okA := ParseDate(a)
	tb, okB := ParseDate(b)
	switch {
	case okA && okB && !ta.Equal(tb):
		return ta.After(tb)
	case okA != okB:
		return okA
	}
	return idA < idB
}
