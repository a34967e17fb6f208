package models

// CaseStatus is one of the nominal workflow labels. The order is not enforced.
type CaseStatus string

// Case statuses
const (
	StatusDraft             CaseStatus = "draft"
	StatusSentToProsecution CaseStatus = "sent_to_prosecution"
	StatusReceived          CaseStatus = "received"
	StatusAssigned          CaseStatus = "assigned"
	StatusInvestigating     CaseStatus = "investigating"
	StatusArticle38         CaseStatus = "article_38"
	StatusArticle42         CaseStatus = "article_42"
	StatusFormalCharge      CaseStatus = "formal_charge"
	StatusSentToCourt       CaseStatus = "sent_to_court"
	StatusCompleted         CaseStatus = "completed" // terminal
)

// CustodyType says whether the suspect is held (RTD) or out on bail (TOB)
type CustodyType string

// Custody types
const (
	CustodyRTD CustodyType = "RTD"
	CustodyTOB CustodyType = "TOB"
)

// Crime types used by the assignment preference table
const (
	CrimeMurder  = "murder"
	CrimeAssault = "assault"
	CrimeTheft   = "theft"
	CrimeRobbery = "robbery"
	CrimeFraud   = "fraud"
	CrimeDrug    = "drug"
	CrimeOther   = "other"
)

// Case holds the structure for the cases collection
type Case struct {
	ID         string `json:"id" bson:"id"`
	CaseNumber string `json:"caseNumber" bson:"caseNumber"`

	// Suspect
	SuspectName      string `json:"suspectName" bson:"suspectName"`
	SuspectAge       int    `json:"suspectAge" bson:"suspectAge"`
	SuspectGender    string `json:"suspectGender" bson:"suspectGender"`
	CrimeType        string `json:"crimeType" bson:"crimeType"`
	CrimeDescription string `json:"crimeDescription" bson:"crimeDescription"`
	CrimeLevel       string `json:"crimeLevel" bson:"crimeLevel"` // "minor", "moderate", "serious"

	// Police
	Station       string `json:"station" bson:"station"`
	PoliceOfficer string `json:"policeOfficer" bson:"policeOfficer"`
	ArrestDate    string `json:"arrestDate" bson:"arrestDate"`
	ReleaseDate   string `json:"releaseDate,omitempty" bson:"releaseDate,omitempty"`

	// Workflow; CurrentStep is a denormalized display position, not authoritative
	Status                CaseStatus `json:"status" bson:"status"`
	SentToProsecutionDate string     `json:"sentToProsecutionDate,omitempty" bson:"sentToProsecutionDate,omitempty"`
	CurrentStep           int        `json:"currentStep" bson:"currentStep"`

	// Assignment
	AssignedProsecutorID   string `json:"assignedProsecutorId,omitempty" bson:"assignedProsecutorId,omitempty"`
	AssignedProsecutorName string `json:"assignedProsecutorName,omitempty" bson:"assignedProsecutorName,omitempty"`

	// Article 38 / 42 / charge
	Article38Date     string      `json:"article38Date,omitempty" bson:"article38Date,omitempty"`
	Article38Deadline string      `json:"article38Deadline,omitempty" bson:"article38Deadline,omitempty"`
	Article38Reason   string      `json:"article38Reason,omitempty" bson:"article38Reason,omitempty"`
	Article42Reason   string      `json:"article42Reason,omitempty" bson:"article42Reason,omitempty"`
	ChargeType        string      `json:"chargeType,omitempty" bson:"chargeType,omitempty"`
	CustodyType       CustodyType `json:"custodyType,omitempty" bson:"custodyType,omitempty"`

	// Court
	CourtDate     string `json:"courtDate,omitempty" bson:"courtDate,omitempty"`
	CourtDecision string `json:"courtDecision,omitempty" bson:"courtDecision,omitempty"`

	// Business key of the linked prisoner (Prisoner.PrisonerID)
	PrisonerID string `json:"prisonerId,omitempty" bson:"prisonerId,omitempty"`

	// Audit trail
	CreatedAt string         `json:"createdAt" bson:"createdAt"`
	UpdatedAt string         `json:"updatedAt" bson:"updatedAt"`
	CreatedBy string         `json:"createdBy" bson:"createdBy"`
	History   []HistoryEntry `json:"history" bson:"history"`
}

// HistoryEntry records a single event in the case lifecycle
type HistoryEntry struct {
	Date    string `json:"date" bson:"date"`
	Action  string `json:"action" bson:"action"`
	User    string `json:"user" bson:"user"`
	Details string `json:"details" bson:"details"`
}

// CasePatch is a partial case update. Nil fields are left untouched by the store.
type CasePatch struct {
	CaseNumber             *string        `json:"caseNumber,omitempty"`
	SuspectName            *string        `json:"suspectName,omitempty"`
	SuspectAge             *int           `json:"suspectAge,omitempty"`
	SuspectGender          *string        `json:"suspectGender,omitempty"`
	CrimeType              *string        `json:"crimeType,omitempty"`
	CrimeDescription       *string        `json:"crimeDescription,omitempty"`
	CrimeLevel             *string        `json:"crimeLevel,omitempty"`
	Station                *string        `json:"station,omitempty"`
	PoliceOfficer          *string        `json:"policeOfficer,omitempty"`
	ArrestDate             *string        `json:"arrestDate,omitempty"`
	ReleaseDate            *string        `json:"releaseDate,omitempty"`
	Status                 *CaseStatus    `json:"status,omitempty"`
	SentToProsecutionDate  *string        `json:"sentToProsecutionDate,omitempty"`
	CurrentStep            *int           `json:"currentStep,omitempty"`
	AssignedProsecutorID   *string        `json:"assignedProsecutorId,omitempty"`
	AssignedProsecutorName *string        `json:"assignedProsecutorName,omitempty"`
	Article38Date          *string        `json:"article38Date,omitempty"`
	Article38Deadline      *string        `json:"article38Deadline,omitempty"`
	Article38Reason        *string        `json:"article38Reason,omitempty"`
	Article42Reason        *string        `json:"article42Reason,omitempty"`
	ChargeType             *string        `json:"chargeType,omitempty"`
	CustodyType            *CustodyType   `json:"custodyType,omitempty"`
	CourtDate              *string        `json:"courtDate,omitempty"`
	CourtDecision          *string        `json:"courtDecision,omitempty"`
	PrisonerID             *string        `json:"prisonerId,omitempty"`
	UpdatedAt              *string        `json:"updatedAt,omitempty"`
	History                []HistoryEntry `json:"history,omitempty"`
}

// CaseEdit holds the fields a user may correct directly. Workflow fields and the
// history only change through lifecycle actions.
type CaseEdit struct {
	SuspectName      *string      `json:"suspectName,omitempty"`
	SuspectAge       *int         `json:"suspectAge,omitempty"`
	SuspectGender    *string      `json:"suspectGender,omitempty"`
	CrimeType        *string      `json:"crimeType,omitempty"`
	CrimeDescription *string      `json:"crimeDescription,omitempty"`
	CrimeLevel       *string      `json:"crimeLevel,omitempty"`
	Station          *string      `json:"station,omitempty"`
	PoliceOfficer    *string      `json:"policeOfficer,omitempty"`
	ArrestDate       *string      `json:"arrestDate,omitempty"`
	ReleaseDate      *string      `json:"releaseDate,omitempty"`
	CustodyType      *CustodyType `json:"custodyType,omitempty"`
	CourtDate        *string      `json:"courtDate,omitempty"`
	CourtDecision    *string      `json:"courtDecision,omitempty"`
}

// Patch converts the edit into a store patch
func (e CaseEdit) Patch() CasePatch {
	return CasePatch{
		SuspectName:      e.SuspectName,
		SuspectAge:       e.SuspectAge,
		SuspectGender:    e.SuspectGender,
		CrimeType:        e.CrimeType,
		CrimeDescription: e.CrimeDescription,
		CrimeLevel:       e.CrimeLevel,
		Station:          e.Station,
		PoliceOfficer:    e.PoliceOfficer,
		ArrestDate:       e.ArrestDate,
		ReleaseDate:      e.ReleaseDate,
		CustodyType:      e.CustodyType,
		CourtDate:        e.CourtDate,
		CourtDecision:    e.CourtDecision,
	}
}
