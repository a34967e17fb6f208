package models

// AlertType ranks how loudly an alert should be shown
type AlertType string

// Alert types
const (
	AlertUrgent  AlertType = "urgent"
	AlertWarning AlertType = "warning"
	AlertInfo    AlertType = "info"
)

// Alert holds the structure for the alerts collection. Alerts are system generated
// and only ever mutated by the read toggle.
type Alert struct {
	ID                string    `json:"id" bson:"id"`
	Type              AlertType `json:"type" bson:"type"`
	Title             string    `json:"title" bson:"title"`
	Message           string    `json:"message" bson:"message"`
	RelatedCaseID     string    `json:"relatedCaseId,omitempty" bson:"relatedCaseId,omitempty"`         // Case.ID
	RelatedPrisonerID string    `json:"relatedPrisonerId,omitempty" bson:"relatedPrisonerId,omitempty"` // Prisoner.PrisonerID
	CreatedAt         string    `json:"createdAt" bson:"createdAt"`
	IsRead            bool      `json:"isRead" bson:"isRead"`
}
