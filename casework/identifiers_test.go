package casework_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/linesmerrill/prosecution-case-api/casework"
)

func TestGenerateCaseNumber(t *testing.T) {
	got := casework.GenerateCaseNumber("station-3", testNow, func(n int) int {
		assert.Equal(t, 900, n)
		return 0
	})
	assert.Equal(t, "C-2024-PS03-100", got)

	got = casework.GenerateCaseNumber("station-7", testNow, func(n int) int { return n - 1 })
	assert.Equal(t, "C-2024-PS07-999", got)
}

func TestGeneratePrisonerID(t *testing.T) {
	got := casework.GeneratePrisonerID("station-1", testNow, func(int) int { return 411 })
	assert.Equal(t, "PRN-2024-PS01-511", got)
}

func TestGeneratePrisonerID_RandomSuffixRange(t *testing.T) {
	assert.Regexp(t, `^PRN-2024-PS05-[1-9][0-9]{2}$`, casework.GeneratePrisonerID("station-5", testNow, cyclingIntn()))
}

func cyclingIntn() casework.Intn {
	i := 0
	return func(n int) int {
		i = (i + 337) % n
		return i
	}
}

func TestStationCode(t *testing.T) {
	assert.Equal(t, "PS04", casework.StationCode("station-4"))
	assert.Equal(t, "central", casework.StationCode("central"))
}

func TestNewRecordID(t *testing.T) {
	id := casework.NewRecordID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, casework.NewRecordID())
}

func TestStationName(t *testing.T) {
	assert.Equal(t, "Piassa", casework.StationName("station-3"))
	assert.Equal(t, "station-9", casework.StationName("station-9"))
}
