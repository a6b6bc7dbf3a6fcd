package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/loopkit/loopchat/internal/contact"
	"github.com/loopkit/loopchat/internal/domain"
	"go.uber.org/zap"
)

// LeadStore is the persistence needed by lead capture
type LeadStore interface {
	GetBySession(sessionID string) (*domain.Lead, error)
	Insert(lead *domain.Lead) error
	Update(lead *domain.Lead) error
}

// SessionLinker attaches a captured lead to its session
type SessionLinker interface {
	AttachLead(sessionID, leadID string) error
}

// LeadJob carries the inputs for one lead-capture pass: the concatenated
// user-authored text of a session plus its ownership keys.
type LeadJob struct {
	WorkspaceID string
	AgentID     string
	SessionID   string
	Channel     string
	Text        string
}

// LeadCapture runs contact extraction and lead upsert off the response path.
// Jobs are handed to a background worker over a buffered channel; the chat
// relay never waits on a lead write and a failing write never fails a reply.
type LeadCapture struct {
	leads    LeadStore
	sessions SessionLinker
	logger   *zap.Logger
	jobs     chan LeadJob
	done     chan struct{}
}

// NewLeadCapture creates a lead capture service and starts its worker
func NewLeadCapture(leads LeadStore, sessions SessionLinker, logger *zap.Logger) *LeadCapture {
	s := &LeadCapture{
		leads:    leads,
		sessions: sessions,
		logger:   logger,
		jobs:     make(chan LeadJob, 64),
		done:     make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *LeadCapture) run() {
	defer close(s.done)
	for job := range s.jobs {
		if err := s.Upsert(job); err != nil {
			s.logger.Warn("lead capture failed",
				zap.String("session_id", job.SessionID),
				zap.Error(err),
			)
		}
	}
}

// Enqueue hands a job to the worker without blocking. When the queue is
// full the job is dropped: lead capture is best effort and a later turn of
// the same session will carry the same contact info again.
func (s *LeadCapture) Enqueue(job LeadJob) {
	if job.SessionID == "" {
		return
	}
	select {
	case s.jobs <- job:
	default:
		s.logger.Warn("lead capture queue full, dropping job",
			zap.String("session_id", job.SessionID))
	}
}

// Close stops accepting jobs and drains the queue
func (s *LeadCapture) Close() {
	close(s.jobs)
	<-s.done
}

// Upsert extracts contact info from the job text and creates or merges the
// session's lead. Idempotent: repeating the same inputs changes nothing
// beyond the first call, and an existing field is never overwritten with a
// blank.
func (s *LeadCapture) Upsert(job LeadJob) error {
	info := contact.Extract(job.Text)
	if info.Empty() {
		return nil
	}

	lead, err := s.leads.GetBySession(job.SessionID)
	if err != nil {
		return fmt.Errorf("lead lookup failed: %w", err)
	}

	if lead == nil {
		lead = &domain.Lead{
			ID:          uuid.New().String(),
			WorkspaceID: job.WorkspaceID,
			AgentID:     job.AgentID,
			SessionID:   job.SessionID,
			Email:       info.Email,
			Phone:       info.Phone,
			Channel:     job.Channel,
			Source:      domain.LeadSourceAutodetect,
		}
		if err := s.leads.Insert(lead); err != nil {
			return fmt.Errorf("lead insert failed: %w", err)
		}
		if err := s.sessions.AttachLead(job.SessionID, lead.ID); err != nil {
			return fmt.Errorf("session lead linkage failed: %w", err)
		}
		return nil
	}

	// Merge: fill only fields that are currently absent.
	changed := false
	if lead.Email == "" && info.Email != "" {
		lead.Email = info.Email
		changed = true
	}
	if lead.Phone == "" && info.Phone != "" {
		lead.Phone = info.Phone
		changed = true
	}
	if !changed {
		return nil
	}

	if err := s.leads.Update(lead); err != nil {
		return fmt.Errorf("lead update failed: %w", err)
	}
	return nil
}
