package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/linesmerrill/prosecution-case-api/casework"
	"github.com/linesmerrill/prosecution-case-api/models"
	templates "github.com/linesmerrill/prosecution-case-api/templates/html"
)

// jobTimeout bounds a single digest run
const jobTimeout = 5 * time.Minute

// State is the latest observed view of the store
type State interface {
	Current() casework.Collections
}

// Digest is what one run found and did
type Digest struct {
	GeneratedAt       string                      `json:"generatedAt"`
	UrgentCases       []casework.UrgentCase       `json:"urgentCases"`
	CaselessPrisoners []casework.CaselessPrisoner `json:"caselessPrisoners"`
	AlertsWritten     int                         `json:"alertsWritten"`
	Recipients        []string                    `json:"recipients"`
}

// Scheduler runs the daily digest for team leads
type Scheduler struct {
	cron    *cron.Cron
	State   State
	Service *casework.Service
	// Mailer may be nil, in which case the digest is only logged
	Mailer         Mailer
	Spec           string
	DeadlineAlerts bool
	Now            func() time.Time
}

// NewScheduler creates a new scheduler instance running in UTC
func NewScheduler(state State, svc *casework.Service, mailer Mailer, spec string, deadlineAlerts bool) *Scheduler {
	return &Scheduler{
		cron:           cron.New(cron.WithLocation(time.UTC)),
		State:          state,
		Service:        svc,
		Mailer:         mailer,
		Spec:           spec,
		DeadlineAlerts: deadlineAlerts,
		Now:            time.Now,
	}
}

// Start registers the digest job and begins the scheduler
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.Spec, s.runDigest); err != nil {
		zap.S().Errorw("failed to register digest job", "spec", s.Spec, "error", err)
		return err
	}
	s.cron.Start()
	zap.S().Infow("digest scheduler started", "spec", s.Spec, "deadlineAlerts", s.DeadlineAlerts)
	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("digest scheduler stopped")
}

func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	s.RunDigest(ctx)
}

// RunDigest collects urgent cases and caseless prisoners, writes missing deadline
// alerts when enabled, and mails the team leads
func (s *Scheduler) RunDigest(ctx context.Context) Digest {
	now := s.Now()
	cols := s.State.Current()

	urgent := casework.UrgentCases(cols.Cases, now)
	d := Digest{
		GeneratedAt:       casework.Timestamp(now),
		UrgentCases:       casework.WithDaysRemaining(urgent, now),
		CaselessPrisoners: casework.WithDaysInCustody(casework.CaselessPrisoners(cols.Prisoners), now),
	}

	if s.DeadlineAlerts {
		for _, c := range urgent {
			if casework.HasDeadlineAlert(cols.Alerts, c.ID) {
				continue
			}
			s.Service.CreateAlert(ctx, casework.DeadlineAlert(c, s.Service.NewID(), now))
			d.AlertsWritten++
		}
	}

	zap.S().Infow("digest computed",
		"urgentCases", len(d.UrgentCases),
		"caselessPrisoners", len(d.CaselessPrisoners),
		"alertsWritten", d.AlertsWritten)

	if s.Mailer == nil {
		return d
	}

	subject := fmt.Sprintf("Prosecution office digest %s", casework.Today(now))
	sections := digestSections(d)
	htmlContent := templates.RenderDigestEmail(subject, sections)
	plainText := templates.RenderDigestText(subject, sections)
	for _, u := range cols.Users {
		if u.Role != models.RoleTeamLeader && u.Role != models.RoleAdmin {
			continue
		}
		if err := s.Mailer.Send(u.Name, u.Email, subject, htmlContent, plainText); err != nil {
			zap.S().Errorw("failed to send digest email", "error", err, "to", u.Email)
			continue
		}
		d.Recipients = append(d.Recipients, u.Email)
	}
	return d
}

func digestSections(d Digest) []templates.DigestSection {
	urgent := templates.DigestSection{Title: "Urgent cases", Empty: "No case is within a week of its article 38 deadline."}
	for _, c := range d.UrgentCases {
		when := fmt.Sprintf("%d days left", c.DaysRemaining)
		if c.DaysRemaining < 0 {
			when = fmt.Sprintf("%d days overdue", -c.DaysRemaining)
		}
		urgent.Lines = append(urgent.Lines, fmt.Sprintf("%s %s (%s), deadline %s, %s",
			c.CaseNumber, c.SuspectName, casework.StationName(c.Station), c.Article38Deadline, when))
	}

	caseless := templates.DigestSection{Title: "Prisoners without a case", Empty: "Every prisoner in custody has a case."}
	for _, p := range d.CaselessPrisoners {
		caseless.Lines = append(caseless.Lines, fmt.Sprintf("%s %s at %s, %d days in custody",
			p.PrisonerID, p.FullName, p.DetentionFacility, p.DaysInCustody))
	}
	return []templates.DigestSection{urgent, caseless}
}
