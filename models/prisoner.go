package models

// PrisonerStatus is the custody state of a detained person
type PrisonerStatus string

// Prisoner statuses; RELEASED and TRANSFERRED are terminal
const (
	PrisonerInCustody   PrisonerStatus = "IN_CUSTODY"
	PrisonerReleased    PrisonerStatus = "RELEASED"
	PrisonerTransferred PrisonerStatus = "TRANSFERRED"
)

// Prisoner holds the structure for the prisoners collection
type Prisoner struct {
	ID                string         `json:"id" bson:"id"`
	PrisonerID        string         `json:"prisonerId" bson:"prisonerId"`
	FullName          string         `json:"fullName" bson:"fullName"`
	Alias             string         `json:"alias,omitempty" bson:"alias,omitempty"`
	Photo             string         `json:"photo,omitempty" bson:"photo,omitempty"`
	Gender            string         `json:"gender" bson:"gender"`
	Age               int            `json:"age" bson:"age"`
	ArrestDate        string         `json:"arrestDate" bson:"arrestDate"`
	ArrestingStation  string         `json:"arrestingStation" bson:"arrestingStation"`
	DetentionFacility string         `json:"detentionFacility" bson:"detentionFacility"`
	CellNumber        string         `json:"cellNumber,omitempty" bson:"cellNumber,omitempty"`
	HealthNotes       string         `json:"healthNotes,omitempty" bson:"healthNotes,omitempty"`
	Status            PrisonerStatus `json:"status" bson:"status"`
	RelatedCaseID     string         `json:"relatedCaseId,omitempty" bson:"relatedCaseId,omitempty"` // Case.ID
	ReleaseDate       string         `json:"releaseDate,omitempty" bson:"releaseDate,omitempty"`
	ReleaseReason     string         `json:"releaseReason,omitempty" bson:"releaseReason,omitempty"`
	TransferTo        string         `json:"transferTo,omitempty" bson:"transferTo,omitempty"`
	CreatedBy         string         `json:"createdBy" bson:"createdBy"`
	CreatedAt         string         `json:"createdAt" bson:"createdAt"`
	Visitors          []VisitorLog   `json:"visitors" bson:"visitors"`
}

// VisitorLog is one visit to a detained person
type VisitorLog struct {
	Date        string `json:"date" bson:"date"`
	VisitorName string `json:"visitorName" bson:"visitorName"`
	Relation    string `json:"relation" bson:"relation"`
	Notes       string `json:"notes,omitempty" bson:"notes,omitempty"`
}

// PrisonerPatch is a partial prisoner update
type PrisonerPatch struct {
	FullName          *string         `json:"fullName,omitempty"`
	Alias             *string         `json:"alias,omitempty"`
	Photo             *string         `json:"photo,omitempty"`
	Gender            *string         `json:"gender,omitempty"`
	Age               *int            `json:"age,omitempty"`
	DetentionFacility *string         `json:"detentionFacility,omitempty"`
	CellNumber        *string         `json:"cellNumber,omitempty"`
	HealthNotes       *string         `json:"healthNotes,omitempty"`
	Status            *PrisonerStatus `json:"status,omitempty"`
	RelatedCaseID     *string         `json:"relatedCaseId,omitempty"`
	ReleaseDate       *string         `json:"releaseDate,omitempty"`
	ReleaseReason     *string         `json:"releaseReason,omitempty"`
	TransferTo        *string         `json:"transferTo,omitempty"`
	Visitors          []VisitorLog    `json:"visitors,omitempty"`
}

// PrisonerEdit holds the descriptive fields a user may correct directly. Custody
// status, the case link and the visitor log have their own operations.
type PrisonerEdit struct {
	FullName          *string `json:"fullName,omitempty"`
	Alias             *string `json:"alias,omitempty"`
	Photo             *string `json:"photo,omitempty"`
	Gender            *string `json:"gender,omitempty"`
	Age               *int    `json:"age,omitempty"`
	DetentionFacility *string `json:"detentionFacility,omitempty"`
	CellNumber        *string `json:"cellNumber,omitempty"`
	HealthNotes       *string `json:"healthNotes,omitempty"`
}

// Patch converts the edit into a store patch
func (e PrisonerEdit) Patch() PrisonerPatch {
	return PrisonerPatch{
		FullName:          e.FullName,
		Alias:             e.Alias,
		Photo:             e.Photo,
		Gender:            e.Gender,
		Age:               e.Age,
		DetentionFacility: e.DetentionFacility,
		CellNumber:        e.CellNumber,
		HealthNotes:       e.HealthNotes,
	}
}
