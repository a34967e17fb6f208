package casework

import (
	"github.com/linesmerrill/prosecution-case-api/models"
)

// DefaultProsecutorCode takes any case the preference table does not place
const DefaultProsecutorCode = "PROS-07"

// crimePreferences maps a crime type to prosecutor codes in order of preference
var crimePreferences = map[string][]string{
	models.CrimeMurder:  {"PROS-01"},
	models.CrimeAssault: {"PROS-01"},
	models.CrimeTheft:   {"PROS-02"},
	models.CrimeRobbery: {"PROS-02", "PROS-01"},
	models.CrimeFraud:   {"PROS-03"},
	models.CrimeDrug:    {"PROS-04"},
}

// PreferredProsecutors returns the preference list for a crime type, which may be empty
func PreferredProsecutors(crimeType string) []string {
	return crimePreferences[crimeType]
}

// Recommend suggests a prosecutor code for a case. The first preferred prosecutor
// who exists and is available wins; otherwise the default code. When the default is
// itself at capacity the least loaded available prosecutor is returned instead, and
// only when nobody is available does the overloaded default come back.
func Recommend(c models.Case, prosecutors []models.User, cases []models.Case) string {
	known := make(map[string]bool, len(prosecutors))
	for _, p := range prosecutors {
		known[p.ProsecutorID] = true
	}

	for _, code := range crimePreferences[c.CrimeType] {
		if known[code] && IsAvailable(ProsecutorLoad(cases, code)) {
			return code
		}
	}

	if IsAvailable(ProsecutorLoad(cases, DefaultProsecutorCode)) {
		return DefaultProsecutorCode
	}

	best, bestLoad := "", MaxActiveLoad
	for _, p := range prosecutors {
		load := ProsecutorLoad(cases, p.ProsecutorID)
		if IsAvailable(load) && load < bestLoad {
			best, bestLoad = p.ProsecutorID, load
		}
	}
	if best == "" {
		return DefaultProsecutorCode
	}
	return best
}

// Workload summarizes one prosecutor for the assignment board and reports
type Workload struct {
	ProsecutorID   string `json:"prosecutorId"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	TotalCases     int    `json:"totalCases"`
	ActiveLoad     int    `json:"activeLoad"`
	MaxCases       int    `json:"maxCases"`
	Available      bool   `json:"available"`
	Level          string `json:"level"`
}

// LoadLevel buckets an active load into normal, elevated and high
func LoadLevel(load int) string {
	switch {
	case load >= 20:
		return "high"
	case load >= 15:
		return "elevated"
	}
	return "normal"
}

// Workloads computes a Workload for every prosecutor
func Workloads(users []models.User, cases []models.Case) []Workload {
	var out []Workload
	for _, p := range Prosecutors(users) {
		load := ProsecutorLoad(cases, p.ProsecutorID)
		out = append(out, Workload{
			ProsecutorID:   p.ProsecutorID,
			Name:           p.Name,
			Specialization: p.Specialization,
			TotalCases:     len(ProsecutorCases(cases, p.ProsecutorID)),
			ActiveLoad:     load,
			MaxCases:       p.MaxCases,
			Available:      IsAvailable(load),
			Level:          LoadLevel(load),
		})
	}
	return out
}
