package casework

import (
	"fmt"
	"time"

	"github.com/linesmerrill/prosecution-case-api/models"
)

// SeedSet is the demo data written by the admin seed operation
type SeedSet struct {
	Users     []models.User
	Cases     []models.Case
	Prisoners []models.Prisoner
	Alerts    []models.Alert
}

var prosecutorRoster = []struct {
	code, name, specialization string
}{
	{"PROS-01", "Pros. Fikadu Alemayehu", "Peace and security crimes"},
	{"PROS-02", "Pros. Minista Getachew", "Property crimes and theft"},
	{"PROS-03", "Pros. Adisu Hailemichael", "Corruption and financial crimes"},
	{"PROS-04", "Pros. Samson Tesfaye", "Narcotics"},
	{"PROS-05", "Pros. Wendwesen Demse", "Cybercrime"},
	{"PROS-06", "Pros. Birhan Eshetu", "Domestic and juvenile matters"},
	{"PROS-07", "Pros. Amha Takalign", "General assault"},
}

// StaticUsers is the fixed user list logins are checked against
func StaticUsers() []models.User {
	var users []models.User
	for i, s := range Stations {
		users = append(users, models.User{
			ID:       fmt.Sprintf("police-%d", i+1),
			Email:    fmt.Sprintf("police%d@police.gov.et", i+1),
			Name:     fmt.Sprintf("Officer %s", s.Name),
			Role:     models.RolePolice,
			Station:  s.ID,
			MaxCases: 0,
		})
	}
	for i, p := range prosecutorRoster {
		users = append(users, models.User{
			ID:             fmt.Sprintf("prosecutor-%d", i+1),
			Email:          fmt.Sprintf("pros%02d@prosecution.gov.et", i+1),
			Name:           p.name,
			Role:           models.RoleProsecutor,
			ProsecutorID:   p.code,
			Specialization: p.specialization,
			MaxCases:       MaxActiveLoad,
		})
	}
	users = append(users,
		models.User{
			ID:       "teamleader-1",
			Email:    "teamleader@prosecution.gov.et",
			Name:     "Tigist Worku",
			Role:     models.RoleTeamLeader,
			MaxCases: 0,
		},
		models.User{
			ID:       "admin-1",
			Email:    "admin@prosecution.gov.et",
			Name:     "System Administrator",
			Role:     models.RoleAdmin,
			MaxCases: 0,
		},
	)
	return users
}

// SeedData builds demo records with dates relative to now, so the dashboard shows
// urgent cases and caseless prisoners right after seeding.
func SeedData(now time.Time) SeedSet {
	date := func(offsetDays int) string { return Today(now.AddDate(0, 0, offsetDays)) }
	ts := func(offsetDays int) string { return Timestamp(now.AddDate(0, 0, offsetDays)) }
	year := now.Year()
	created := func(offset int, user string) []models.HistoryEntry {
		return []models.HistoryEntry{{Date: date(offset), Action: "created", User: user, Details: "case created"}}
	}

	cases := []models.Case{
		{
			ID: "case-1", CaseNumber: fmt.Sprintf("C-%d-PS01-142", year),
			SuspectName: "Dawit Mekonnen", SuspectAge: 29, SuspectGender: "male",
			CrimeType: models.CrimeTheft, CrimeDescription: "Shop break-in near the market", CrimeLevel: "moderate",
			Station: "station-1", PoliceOfficer: "Officer Jal Meda", ArrestDate: date(-6),
			Status: models.StatusSentToProsecution, SentToProsecutionDate: date(-5), CurrentStep: 1,
			CustodyType: models.CustodyRTD,
			CreatedAt: ts(-6), UpdatedAt: ts(-5), CreatedBy: "police-1",
			History: created(-6, "Officer Jal Meda"),
		},
		{
			ID: "case-2", CaseNumber: fmt.Sprintf("C-%d-PS02-517", year),
			SuspectName: "Meron Tadesse", SuspectAge: 34, SuspectGender: "female",
			CrimeType: models.CrimeFraud, CrimeDescription: "Forged land registration documents", CrimeLevel: "serious",
			Station: "station-2", PoliceOfficer: "Officer Arat Kilo", ArrestDate: date(-20),
			Status: models.StatusInvestigating, SentToProsecutionDate: date(-18), CurrentStep: 3,
			AssignedProsecutorID: "PROS-03", AssignedProsecutorName: "Pros. Adisu Hailemichael",
			CustodyType: models.CustodyTOB,
			CreatedAt: ts(-20), UpdatedAt: ts(-10), CreatedBy: "police-2",
			History: append(created(-20, "Officer Arat Kilo"),
				models.HistoryEntry{Date: date(-15), Action: string(ActionAssign), User: "Tigist Worku", Details: "sent to prosecutor"},
				models.HistoryEntry{Date: date(-10), Action: string(ActionInvestigate), User: "Pros. Adisu Hailemichael", Details: "investigation started"},
			),
		},
		{
			ID: "case-3", CaseNumber: fmt.Sprintf("C-%d-PS03-808", year),
			SuspectName: "Yonas Bekele", SuspectAge: 41, SuspectGender: "male",
			CrimeType: models.CrimeMurder, CrimeDescription: "Fatal stabbing during a dispute", CrimeLevel: "serious",
			Station: "station-3", PoliceOfficer: "Officer Piassa", ArrestDate: date(-12),
			Status: models.StatusArticle38, SentToProsecutionDate: date(-11), CurrentStep: 4,
			AssignedProsecutorID: "PROS-01", AssignedProsecutorName: "Pros. Fikadu Alemayehu",
			Article38Date: date(-4), Article38Deadline: date(3), Article38Reason: "Awaiting forensic report",
			CustodyType: models.CustodyRTD, PrisonerID: fmt.Sprintf("PRN-%d-PS03-311", year),
			CreatedAt: ts(-12), UpdatedAt: ts(-4), CreatedBy: "police-3",
			History: append(created(-12, "Officer Piassa"),
				models.HistoryEntry{Date: date(-9), Action: string(ActionAssign), User: "Tigist Worku", Details: "sent to prosecutor"},
				models.HistoryEntry{Date: date(-4), Action: string(ActionArticle38), User: "Pros. Fikadu Alemayehu", Details: "article 38: Awaiting forensic report"},
			),
		},
		{
			ID: "case-4", CaseNumber: fmt.Sprintf("C-%d-PS04-233", year),
			SuspectName: "Hanna Girma", SuspectAge: 23, SuspectGender: "female",
			CrimeType: models.CrimeDrug, CrimeDescription: "Possession with intent to sell", CrimeLevel: "moderate",
			Station: "station-4", PoliceOfficer: "Officer Ras Desta", ArrestDate: date(-40),
			Status: models.StatusSentToCourt, SentToProsecutionDate: date(-38), CurrentStep: 5,
			AssignedProsecutorID: "PROS-04", AssignedProsecutorName: "Pros. Samson Tesfaye",
			ChargeType: "Drug trafficking", CourtDate: date(-2), CustodyType: models.CustodyRTD,
			Article38Deadline: date(10),
			CreatedAt: ts(-40), UpdatedAt: ts(-2), CreatedBy: "police-4",
			History: append(created(-40, "Officer Ras Desta"),
				models.HistoryEntry{Date: date(-30), Action: string(ActionCharge), User: "Pros. Samson Tesfaye", Details: "formal charge: Drug trafficking"},
				models.HistoryEntry{Date: date(-2), Action: string(ActionCourt), User: "Pros. Samson Tesfaye", Details: "sent to court"},
			),
		},
		{
			ID: "case-5", CaseNumber: fmt.Sprintf("C-%d-PS05-964", year),
			SuspectName: "Kebede Alemu", SuspectAge: 37, SuspectGender: "male",
			CrimeType: models.CrimeAssault, CrimeDescription: "Bar fight causing injury", CrimeLevel: "minor",
			Station: "station-5", PoliceOfficer: "Officer Atkilt Tera", ArrestDate: date(-90), ReleaseDate: date(-60),
			Status: models.StatusCompleted, SentToProsecutionDate: date(-88), CurrentStep: 7,
			AssignedProsecutorID: "PROS-07", AssignedProsecutorName: "Pros. Amha Takalign",
			CustodyType: models.CustodyTOB, CourtDecision: "Fined",
			CreatedAt: ts(-90), UpdatedAt: ts(-30), CreatedBy: "police-5",
			History: append(created(-90, "Officer Atkilt Tera"),
				models.HistoryEntry{Date: date(-30), Action: string(ActionComplete), User: "Pros. Amha Takalign", Details: "case completed"},
			),
		},
		{
			ID: "case-6", CaseNumber: fmt.Sprintf("C-%d-PS06-405", year),
			SuspectName: "Selam Haile", SuspectAge: 19, SuspectGender: "female",
			CrimeType: models.CrimeRobbery, CrimeDescription: "Phone snatching with threat", CrimeLevel: "moderate",
			Station: "station-6", PoliceOfficer: "Officer Memrya", ArrestDate: date(-3),
			Status: models.StatusReceived, SentToProsecutionDate: date(-2), CurrentStep: 1,
			CustodyType: models.CustodyRTD,
			CreatedAt: ts(-3), UpdatedAt: ts(-2), CreatedBy: "police-6",
			History: created(-3, "Officer Memrya"),
		},
	}

	prisoners := []models.Prisoner{
		{
			ID: "prisoner-1", PrisonerID: fmt.Sprintf("PRN-%d-PS03-311", year),
			FullName: "Yonas Bekele", Gender: "male", Age: 41, ArrestDate: date(-12),
			ArrestingStation: "station-3", DetentionFacility: DefaultDetentionFacility, CellNumber: "B-12",
			Status: models.PrisonerInCustody, RelatedCaseID: "case-3",
			CreatedBy: "police-3", CreatedAt: ts(-12), Visitors: []models.VisitorLog{},
		},
		{
			ID: "prisoner-2", PrisonerID: fmt.Sprintf("PRN-%d-PS07-726", year),
			FullName: "Abebe Kebede", Alias: "Abi", Gender: "male", Age: 27, ArrestDate: date(-9),
			ArrestingStation: "station-7", DetentionFacility: DefaultDetentionFacility, CellNumber: "A-03",
			HealthNotes: "Asthma, needs inhaler",
			Status:      models.PrisonerInCustody,
			CreatedBy:   "police-7", CreatedAt: ts(-9),
			Visitors: []models.VisitorLog{
				{Date: date(-5), VisitorName: "Almaz Kebede", Relation: "mother"},
			},
		},
		{
			ID: "prisoner-3", PrisonerID: fmt.Sprintf("PRN-%d-PS01-158", year),
			FullName: "Tesfaye Lemma", Gender: "male", Age: 52, ArrestDate: date(-2),
			ArrestingStation: "station-1", DetentionFacility: DefaultDetentionFacility,
			Status:    models.PrisonerInCustody,
			CreatedBy: "police-1", CreatedAt: ts(-2), Visitors: []models.VisitorLog{},
		},
		{
			ID: "prisoner-4", PrisonerID: fmt.Sprintf("PRN-%d-PS05-880", year),
			FullName: "Kebede Alemu", Gender: "male", Age: 37, ArrestDate: date(-90),
			ArrestingStation: "station-5", DetentionFacility: DefaultDetentionFacility,
			Status: models.PrisonerReleased, ReleaseDate: date(-60), ReleaseReason: "Bail granted",
			CreatedBy: "police-5", CreatedAt: ts(-90), Visitors: []models.VisitorLog{},
		},
	}

	alerts := []models.Alert{
		OnPrisonerCreated(prisoners[1], "alert-1", now.AddDate(0, 0, -9)),
		OnPrisonerCreated(prisoners[2], "alert-2", now.AddDate(0, 0, -2)),
		DeadlineAlert(cases[2], "alert-3", now.AddDate(0, 0, -1)),
	}
	alerts[0].IsRead = true

	return SeedSet{
		Users:     StaticUsers(),
		Cases:     cases,
		Prisoners: prisoners,
		Alerts:    alerts,
	}
}
