package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/loopkit/loopchat/internal/domain"
)

// AgentRepository handles agent persistence
type AgentRepository struct {
	db *DB
}

// NewAgentRepository creates a new agent repository
func NewAgentRepository(db *DB) *AgentRepository {
	return &AgentRepository{db: db}
}

// Create creates a new agent
func (r *AgentRepository) Create(agent *domain.Agent) error {
	if agent.ID == "" {
		agent.ID = uuid.New().String()
	}
	now := time.Now()
	agent.CreatedAt = now
	agent.UpdatedAt = now

	sourceIDsJSON, _ := json.Marshal(agent.KnowledgeSourceIDs)
	channelsJSON, _ := json.Marshal(agent.Channels)

	_, err := r.db.Exec(`
		INSERT INTO agents (id, workspace_id, name, persona_id, knowledge_source_ids, goals, business_domain, channels, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, agent.ID, agent.WorkspaceID, agent.Name, agent.PersonaID, string(sourceIDsJSON),
		agent.Goals, agent.BusinessDomain, string(channelsJSON), agent.CreatedAt, agent.UpdatedAt)

	return err
}

// Get retrieves an agent by ID
func (r *AgentRepository) Get(id string) (*domain.Agent, error) {
	agent := &domain.Agent{}
	var personaID sql.NullString
	var sourceIDsJSON, channelsJSON sql.NullString

	err := r.db.QueryRow(`
		SELECT id, workspace_id, name, persona_id, knowledge_source_ids, goals, business_domain, channels, created_at, updated_at
		FROM agents WHERE id = ?
	`, id).Scan(&agent.ID, &agent.WorkspaceID, &agent.Name, &personaID, &sourceIDsJSON,
		&agent.Goals, &agent.BusinessDomain, &channelsJSON, &agent.CreatedAt, &agent.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if personaID.Valid {
		agent.PersonaID = personaID.String
	}
	if sourceIDsJSON.Valid && sourceIDsJSON.String != "" {
		json.Unmarshal([]byte(sourceIDsJSON.String), &agent.KnowledgeSourceIDs)
	}
	if channelsJSON.Valid && channelsJSON.String != "" {
		json.Unmarshal([]byte(channelsJSON.String), &agent.Channels)
	}

	return agent, nil
}

// List retrieves all agents
func (r *AgentRepository) List() ([]*domain.Agent, error) {
	rows, err := r.db.Query(`
		SELECT id, workspace_id, name, persona_id, knowledge_source_ids, goals, business_domain, channels, created_at, updated_at
		FROM agents ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []*domain.Agent
	for rows.Next() {
		agent := &domain.Agent{}
		var personaID sql.NullString
		var sourceIDsJSON, channelsJSON sql.NullString

		if err := rows.Scan(&agent.ID, &agent.WorkspaceID, &agent.Name, &personaID, &sourceIDsJSON,
			&agent.Goals, &agent.BusinessDomain, &channelsJSON, &agent.CreatedAt, &agent.UpdatedAt); err != nil {
			return nil, err
		}

		if personaID.Valid {
			agent.PersonaID = personaID.String
		}
		if sourceIDsJSON.Valid && sourceIDsJSON.String != "" {
			json.Unmarshal([]byte(sourceIDsJSON.String), &agent.KnowledgeSourceIDs)
		}
		if channelsJSON.Valid && channelsJSON.String != "" {
			json.Unmarshal([]byte(channelsJSON.String), &agent.Channels)
		}
		agents = append(agents, agent)
	}

	return agents, rows.Err()
}

// Update updates an agent
func (r *AgentRepository) Update(agent *domain.Agent) error {
	agent.UpdatedAt = time.Now()
	sourceIDsJSON, _ := json.Marshal(agent.KnowledgeSourceIDs)
	channelsJSON, _ := json.Marshal(agent.Channels)

	result, err := r.db.Exec(`
		UPDATE agents SET name = ?, persona_id = ?, knowledge_source_ids = ?, goals = ?, business_domain = ?, channels = ?, updated_at = ?
		WHERE id = ?
	`, agent.Name, agent.PersonaID, string(sourceIDsJSON), agent.Goals,
		agent.BusinessDomain, string(channelsJSON), agent.UpdatedAt, agent.ID)

	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("agent not found: %s", agent.ID)
	}

	return nil
}

// Delete deletes an agent
func (r *AgentRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM agents WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("agent not found: %s", id)
	}

	return nil
}

// Count returns the total number of agents
func (r *AgentRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM agents`).Scan(&count)
	return count, err
}
