package casework

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/prosecution-case-api/databases"
	"github.com/linesmerrill/prosecution-case-api/models"
)

// DefaultDetentionFacility is where new prisoners are held unless the form says otherwise
const DefaultDetentionFacility = "Addis Ababa Detention Center"

var (
	// ErrMissingField is returned when a create request lacks a required field
	ErrMissingField = errors.New("missing required field")
	// ErrPrisonerNotInCustody is returned when releasing or transferring a prisoner who already left
	ErrPrisonerNotInCustody = errors.New("prisoner is not in custody")
)

// Service turns user intents into store writes. It holds no case data itself:
// every call gets the collections the caller last observed and the acting user.
//
// Writes are fire and forget. A failed write is logged and the caller sees the
// old state on the next snapshot; only Seed reports write errors.
type Service struct {
	store databases.RecordStore
	Now   func() time.Time
	Intn  Intn
	NewID func() string
}

// NewService returns a Service writing to store
func NewService(store databases.RecordStore) *Service {
	return &Service{
		store: store,
		Now:   time.Now,
		Intn:  rand.Intn,
		NewID: NewRecordID,
	}
}

func (s *Service) put(ctx context.Context, collection, id string, v interface{}) error {
	rec, err := databases.Normalize(v)
	if err != nil {
		return err
	}
	return s.store.PutRecord(ctx, collection, id, rec)
}

func (s *Service) fireAndForgetPut(ctx context.Context, collection, id string, v interface{}) {
	if err := s.put(ctx, collection, id, v); err != nil {
		zap.S().Errorw("failed to write record", "collection", collection, "id", id, "error", err)
	}
}

func (s *Service) fireAndForgetPatch(ctx context.Context, collection, id string, v interface{}) {
	rec, err := databases.Normalize(v)
	if err == nil {
		err = s.store.PatchRecord(ctx, collection, id, rec)
	}
	if err != nil {
		zap.S().Errorw("failed to patch record", "collection", collection, "id", id, "error", err)
	}
}

// CreateCase registers a new case from a police form and returns what was written
func (s *Service) CreateCase(ctx context.Context, actor models.User, in models.Case) (models.Case, error) {
	if in.SuspectName == "" {
		return models.Case{}, fmt.Errorf("%w: suspectName", ErrMissingField)
	}
	now := s.Now()
	today := Today(now)

	c := in
	if c.Station == "" {
		c.Station = actor.Station
	}
	if c.Station == "" {
		c.Station = DefaultStation
	}
	c.ID = s.NewID()
	c.CaseNumber = GenerateCaseNumber(c.Station, now, s.Intn)

	// intake may only file a draft or send the case on; the rest of the
	// workflow belongs to lifecycle actions
	if c.Status != models.StatusDraft {
		c.Status = models.StatusSentToProsecution
	}
	c.SentToProsecutionDate = ""
	if c.Status == models.StatusSentToProsecution {
		c.SentToProsecutionDate = today
	}
	c.CurrentStep = 1
	c.AssignedProsecutorID = ""
	c.AssignedProsecutorName = ""
	c.Article38Date = ""
	c.Article38Deadline = ""
	c.Article38Reason = ""
	c.Article42Reason = ""
	c.ChargeType = ""
	c.CourtDate = ""
	c.CourtDecision = ""
	if c.PoliceOfficer == "" {
		c.PoliceOfficer = actor.Name
	}
	if c.ArrestDate == "" {
		c.ArrestDate = today
	}
	c.CreatedAt = Timestamp(now)
	c.UpdatedAt = c.CreatedAt
	c.CreatedBy = actor.ID
	c.History = []models.HistoryEntry{{
		Date:    today,
		Action:  "created",
		User:    actor.Name,
		Details: "case created",
	}}

	s.fireAndForgetPut(ctx, databases.CasesCollection, c.ID, c)
	zap.S().Infow("case created", "caseId", c.ID, "caseNumber", c.CaseNumber, "station", c.Station)
	return c, nil
}

// UpdateCase writes the editable fields of a case and stamps updatedAt. It reports
// false when the case is not in cols.
func (s *Service) UpdateCase(ctx context.Context, cols Collections, id string, edit models.CaseEdit) bool {
	if _, ok := FindCase(cols.Cases, id); !ok {
		return false
	}
	patch := edit.Patch()
	updatedAt := Timestamp(s.Now())
	patch.UpdatedAt = &updatedAt
	s.fireAndForgetPatch(ctx, databases.CasesCollection, id, patch)
	return true
}

// ApplyAction runs a workflow action on a case. A missing case is a silent no-op
// and yields a nil patch.
func (s *Service) ApplyAction(ctx context.Context, cols Collections, actor models.User, caseID string, kind ActionKind, payload ActionPayload) (*models.CasePatch, error) {
	c, ok := FindCase(cols.Cases, caseID)
	if !ok {
		return nil, nil
	}
	if kind == ActionAssign && payload.ProsecutorName == "" {
		if p, ok := FindProsecutor(cols.Users, payload.ProsecutorID); ok {
			payload.ProsecutorName = p.Name
		}
	}

	patch, err := ApplyAction(c, kind, actor.Name, payload, s.Now())
	if err != nil {
		return nil, err
	}
	s.fireAndForgetPatch(ctx, databases.CasesCollection, c.ID, patch)
	zap.S().Infow("case action applied", "caseId", c.ID, "action", kind, "user", actor.Name, "status", *patch.Status)
	return &patch, nil
}

// Assign hands a case to a prosecutor. An unknown case or prosecutor is a silent
// no-op and yields a nil patch.
func (s *Service) Assign(ctx context.Context, cols Collections, actor models.User, caseID, prosecutorID string) (*models.CasePatch, error) {
	if _, ok := FindCase(cols.Cases, caseID); !ok {
		return nil, nil
	}
	p, ok := FindProsecutor(cols.Users, prosecutorID)
	if !ok {
		return nil, nil
	}
	return s.ApplyAction(ctx, cols, actor, caseID, ActionAssign, ActionPayload{
		ProsecutorID:   p.ProsecutorID,
		ProsecutorName: p.Name,
	})
}

// CreatePrisoner registers a detained person and raises the matching info alert
func (s *Service) CreatePrisoner(ctx context.Context, actor models.User, in models.Prisoner) (models.Prisoner, models.Alert, error) {
	if in.FullName == "" {
		return models.Prisoner{}, models.Alert{}, fmt.Errorf("%w: fullName", ErrMissingField)
	}
	now := s.Now()

	p := in
	if p.ArrestingStation == "" {
		p.ArrestingStation = actor.Station
	}
	if p.ArrestingStation == "" {
		p.ArrestingStation = DefaultStation
	}
	p.ID = s.NewID()
	if p.PrisonerID == "" {
		p.PrisonerID = GeneratePrisonerID(p.ArrestingStation, now, s.Intn)
	}
	if p.DetentionFacility == "" {
		p.DetentionFacility = DefaultDetentionFacility
	}
	if p.ArrestDate == "" {
		p.ArrestDate = Today(now)
	}
	p.Status = models.PrisonerInCustody
	p.CreatedBy = actor.ID
	p.CreatedAt = Timestamp(now)
	p.Visitors = []models.VisitorLog{}

	s.fireAndForgetPut(ctx, databases.PrisonersCollection, p.ID, p)

	alert := OnPrisonerCreated(p, s.NewID(), now)
	s.fireAndForgetPut(ctx, databases.AlertsCollection, alert.ID, alert)

	zap.S().Infow("prisoner registered", "prisonerId", p.PrisonerID, "station", p.ArrestingStation)
	return p, alert, nil
}

// UpdatePrisoner writes the descriptive fields of a prisoner; false when the
// prisoner is not in cols
func (s *Service) UpdatePrisoner(ctx context.Context, cols Collections, id string, edit models.PrisonerEdit) bool {
	if _, ok := FindPrisoner(cols.Prisoners, id); !ok {
		return false
	}
	s.fireAndForgetPatch(ctx, databases.PrisonersCollection, id, edit.Patch())
	return true
}

// AddVisitor appends a visit to the prisoner's log
func (s *Service) AddVisitor(ctx context.Context, cols Collections, id string, visit models.VisitorLog) (bool, error) {
	if visit.VisitorName == "" {
		return false, fmt.Errorf("%w: visitorName", ErrMissingField)
	}
	p, ok := FindPrisoner(cols.Prisoners, id)
	if !ok {
		return false, nil
	}
	if visit.Date == "" {
		visit.Date = Today(s.Now())
	}
	visitors := make([]models.VisitorLog, 0, len(p.Visitors)+1)
	visitors = append(visitors, p.Visitors...)
	visitors = append(visitors, visit)

	s.fireAndForgetPatch(ctx, databases.PrisonersCollection, id, models.PrisonerPatch{Visitors: visitors})
	return true, nil
}

// ReleasePrisoner moves a held prisoner to RELEASED
func (s *Service) ReleasePrisoner(ctx context.Context, cols Collections, id, reason string) (bool, error) {
	p, ok := FindPrisoner(cols.Prisoners, id)
	if !ok {
		return false, nil
	}
	if p.Status != models.PrisonerInCustody {
		return false, ErrPrisonerNotInCustody
	}
	status := models.PrisonerReleased
	date := Today(s.Now())
	s.fireAndForgetPatch(ctx, databases.PrisonersCollection, id, models.PrisonerPatch{
		Status:        &status,
		ReleaseDate:   &date,
		ReleaseReason: &reason,
	})
	return true, nil
}

// TransferPrisoner moves a held prisoner to TRANSFERRED
func (s *Service) TransferPrisoner(ctx context.Context, cols Collections, id, to string) (bool, error) {
	if to == "" {
		return false, fmt.Errorf("%w: transferTo", ErrMissingField)
	}
	p, ok := FindPrisoner(cols.Prisoners, id)
	if !ok {
		return false, nil
	}
	if p.Status != models.PrisonerInCustody {
		return false, ErrPrisonerNotInCustody
	}
	status := models.PrisonerTransferred
	s.fireAndForgetPatch(ctx, databases.PrisonersCollection, id, models.PrisonerPatch{
		Status:     &status,
		TransferTo: &to,
	})
	return true, nil
}

// LinkCaseToPrisoner records the relation on both sides: the prisoner gets the
// case record id and the case gets the prisoner business id.
func (s *Service) LinkCaseToPrisoner(ctx context.Context, cols Collections, prisonerRecordID, caseID string) bool {
	p, ok := FindPrisoner(cols.Prisoners, prisonerRecordID)
	if !ok {
		return false
	}
	c, ok := FindCase(cols.Cases, caseID)
	if !ok {
		return false
	}

	s.fireAndForgetPatch(ctx, databases.PrisonersCollection, p.ID, models.PrisonerPatch{RelatedCaseID: &c.ID})

	updatedAt := Timestamp(s.Now())
	s.fireAndForgetPatch(ctx, databases.CasesCollection, c.ID, models.CasePatch{
		PrisonerID: &p.PrisonerID,
		UpdatedAt:  &updatedAt,
	})
	zap.S().Infow("case linked to prisoner", "caseId", c.ID, "prisonerId", p.PrisonerID)
	return true
}

// MarkAlertRead flips an alert to read; false when the alert is not in cols
func (s *Service) MarkAlertRead(ctx context.Context, cols Collections, id string) bool {
	if _, ok := FindAlert(cols.Alerts, id); !ok {
		return false
	}
	s.fireAndForgetPatch(ctx, databases.AlertsCollection, id, databases.Record{"isRead": true})
	return true
}

// CreateAlert writes a system alert
func (s *Service) CreateAlert(ctx context.Context, alert models.Alert) {
	s.fireAndForgetPut(ctx, databases.AlertsCollection, alert.ID, alert)
}

// Seed writes the demo users, cases, prisoners and alerts. Every record is
// attempted; failures come back joined into one error.
func (s *Service) Seed(ctx context.Context) error {
	set := SeedData(s.Now())
	var errs []error
	record := func(collection, id string, v interface{}) {
		if err := s.put(ctx, collection, id, v); err != nil {
			errs = append(errs, fmt.Errorf("%s/%s: %w", collection, id, err))
		}
	}

	for _, u := range set.Users {
		record(databases.UsersCollection, u.ID, u)
	}
	for _, c := range set.Cases {
		record(databases.CasesCollection, c.ID, c)
	}
	for _, p := range set.Prisoners {
		record(databases.PrisonersCollection, p.ID, p)
	}
	for _, a := range set.Alerts {
		record(databases.AlertsCollection, a.ID, a)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	zap.S().Infow("database seeded",
		"users", len(set.Users), "cases", len(set.Cases),
		"prisoners", len(set.Prisoners), "alerts", len(set.Alerts))
	return nil
}
