package casework

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Business key prefixes
const (
	CaseNumberPrefix = "C"
	PrisonerIDPrefix = "PRN"
)

// DefaultStation is used when neither the form nor the actor names a station
const DefaultStation = "station-1"

// Intn returns a random number in [0, n)
type Intn func(n int) int

// StationCode shortens "station-3" to "PS03"
func StationCode(station string) string {
	return strings.Replace(station, "station-", "PS0", 1)
}

func businessKey(prefix, station string, now time.Time, intn Intn) string {
	return fmt.Sprintf("%s-%d-%s-%d", prefix, now.Year(), StationCode(station), intn(900)+100)
}

// GenerateCaseNumber returns C-<year>-<station code>-<100..999>. The suffix is random,
// so two cases can collide.
func GenerateCaseNumber(station string, now time.Time, intn Intn) string {
	return businessKey(CaseNumberPrefix, station, now, intn)
}

// GeneratePrisonerID returns PRN-<year>-<station code>-<100..999>, with the same
// collision caveat as case numbers.
func GeneratePrisonerID(station string, now time.Time, intn Intn) string {
	return businessKey(PrisonerIDPrefix, station, now, intn)
}

// NewRecordID returns a fresh store key
func NewRecordID() string {
	return uuid.NewString()
}
