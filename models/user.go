package models

// Role is the coarse permission bucket a user belongs to
type Role string

// Roles known to the office
const (
	RolePolice     Role = "police"
	RoleProsecutor Role = "prosecutor"
	RoleTeamLeader Role = "teamleader"
	RoleAdmin      Role = "admin"
)

// User holds the structure for the static users collection
type User struct {
	ID             string `json:"id" bson:"id"`
	Email          string `json:"email" bson:"email"`
	Name           string `json:"name" bson:"name"`
	Role           Role   `json:"role" bson:"role"`
	Station        string `json:"station,omitempty" bson:"station,omitempty"`               // police only
	ProsecutorID   string `json:"prosecutorId,omitempty" bson:"prosecutorId,omitempty"`     // prosecutors only, PROS-01..PROS-07
	Specialization string `json:"specialization,omitempty" bson:"specialization,omitempty"` // prosecutors only
	MaxCases       int    `json:"maxCases" bson:"maxCases"`
}
