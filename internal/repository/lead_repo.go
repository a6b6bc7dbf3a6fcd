package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/loopkit/loopchat/internal/domain"
)

// LeadRepository handles lead persistence
type LeadRepository struct {
	db *DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// GetBySession retrieves the lead attached to a session, if any
func (r *LeadRepository) GetBySession(sessionID string) (*domain.Lead, error) {
	lead := &domain.Lead{}
	var email, phone sql.NullString

	err := r.db.QueryRow(`
		SELECT id, workspace_id, agent_id, session_id, email, phone, channel, source, created_at, updated_at
		FROM leads WHERE session_id = ?
	`, sessionID).Scan(&lead.ID, &lead.WorkspaceID, &lead.AgentID, &lead.SessionID,
		&email, &phone, &lead.Channel, &lead.Source, &lead.CreatedAt, &lead.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if email.Valid {
		lead.Email = email.String
	}
	if phone.Valid {
		lead.Phone = phone.String
	}

	return lead, nil
}

// Insert creates a new lead
func (r *LeadRepository) Insert(lead *domain.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	now := time.Now()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	_, err := r.db.Exec(`
		INSERT INTO leads (id, workspace_id, agent_id, session_id, email, phone, channel, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, lead.ID, lead.WorkspaceID, lead.AgentID, lead.SessionID,
		lead.Email, lead.Phone, lead.Channel, lead.Source, lead.CreatedAt, lead.UpdatedAt)

	return err
}

// Update persists merged contact fields and bumps updated_at
func (r *LeadRepository) Update(lead *domain.Lead) error {
	lead.UpdatedAt = time.Now()

	_, err := r.db.Exec(`
		UPDATE leads SET email = ?, phone = ?, updated_at = ? WHERE id = ?
	`, lead.Email, lead.Phone, lead.UpdatedAt, lead.ID)

	return err
}

// ListByAgent retrieves all leads captured for an agent
func (r *LeadRepository) ListByAgent(agentID string) ([]*domain.Lead, error) {
	rows, err := r.db.Query(`
		SELECT id, workspace_id, agent_id, session_id, email, phone, channel, source, created_at, updated_at
		FROM leads WHERE agent_id = ? ORDER BY created_at DESC
	`, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*domain.Lead
	for rows.Next() {
		lead := &domain.Lead{}
		var email, phone sql.NullString

		if err := rows.Scan(&lead.ID, &lead.WorkspaceID, &lead.AgentID, &lead.SessionID,
			&email, &phone, &lead.Channel, &lead.Source, &lead.CreatedAt, &lead.UpdatedAt); err != nil {
			return nil, err
		}

		if email.Valid {
			lead.Email = email.String
		}
		if phone.Valid {
			lead.Phone = phone.String
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

// Count returns the total number of leads
func (r *LeadRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM leads`).Scan(&count)
	return count, err
}
