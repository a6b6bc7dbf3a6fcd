package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/loopkit/loopchat/internal/domain"
)

// PersonaRepository handles persona persistence
type PersonaRepository struct {
	db *DB
}

// NewPersonaRepository creates a new persona repository
func NewPersonaRepository(db *DB) *PersonaRepository {
	return &PersonaRepository{db: db}
}

// Create creates a new persona
func (r *PersonaRepository) Create(persona *domain.Persona) error {
	if persona.ID == "" {
		persona.ID = uuid.New().String()
	}
	now := time.Now()
	persona.CreatedAt = now
	persona.UpdatedAt = now

	doNotDoJSON, _ := json.Marshal(persona.DoNotDo)

	_, err := r.db.Exec(`
		INSERT INTO personas (id, workspace_id, name, role, tone, style_notes, do_not_do, greeting_script, fallback_policy, escalation_rules, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, persona.ID, persona.WorkspaceID, persona.Name, persona.Role, persona.Tone,
		persona.StyleNotes, string(doNotDoJSON), persona.GreetingScript,
		persona.FallbackPolicy, persona.EscalationRules, persona.CreatedAt, persona.UpdatedAt)

	return err
}

// Get retrieves a persona by ID
func (r *PersonaRepository) Get(id string) (*domain.Persona, error) {
	persona := &domain.Persona{}
	var doNotDoJSON sql.NullString

	err := r.db.QueryRow(`
		SELECT id, workspace_id, name, role, tone, style_notes, do_not_do, greeting_script, fallback_policy, escalation_rules, created_at, updated_at
		FROM personas WHERE id = ?
	`, id).Scan(&persona.ID, &persona.WorkspaceID, &persona.Name, &persona.Role,
		&persona.Tone, &persona.StyleNotes, &doNotDoJSON, &persona.GreetingScript,
		&persona.FallbackPolicy, &persona.EscalationRules, &persona.CreatedAt, &persona.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if doNotDoJSON.Valid && doNotDoJSON.String != "" {
		json.Unmarshal([]byte(doNotDoJSON.String), &persona.DoNotDo)
	}

	return persona, nil
}

// List retrieves all personas
func (r *PersonaRepository) List() ([]*domain.Persona, error) {
	rows, err := r.db.Query(`
		SELECT id, workspace_id, name, role, tone, style_notes, do_not_do, greeting_script, fallback_policy, escalation_rules, created_at, updated_at
		FROM personas ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var personas []*domain.Persona
	for rows.Next() {
		persona := &domain.Persona{}
		var doNotDoJSON sql.NullString

		if err := rows.Scan(&persona.ID, &persona.WorkspaceID, &persona.Name, &persona.Role,
			&persona.Tone, &persona.StyleNotes, &doNotDoJSON, &persona.GreetingScript,
			&persona.FallbackPolicy, &persona.EscalationRules, &persona.CreatedAt, &persona.UpdatedAt); err != nil {
			return nil, err
		}

		if doNotDoJSON.Valid && doNotDoJSON.String != "" {
			json.Unmarshal([]byte(doNotDoJSON.String), &persona.DoNotDo)
		}
		personas = append(personas, persona)
	}

	return personas, rows.Err()
}

// Delete deletes a persona
func (r *PersonaRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM personas WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("persona not found: %s", id)
	}

	return nil
}

// Count returns the total number of personas
func (r *PersonaRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM personas`).Scan(&count)
	return count, err
}
