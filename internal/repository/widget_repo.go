package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/loopkit/loopchat/internal/domain"
)

// WidgetRepository handles widget config persistence
type WidgetRepository struct {
	db *DB
}

// NewWidgetRepository creates a new widget repository
func NewWidgetRepository(db *DB) *WidgetRepository {
	return &WidgetRepository{db: db}
}

// Get retrieves the widget config for an agent
func (r *WidgetRepository) Get(agentID string) (*domain.WidgetConfig, error) {
	config := &domain.WidgetConfig{}
	var domainsJSON string

	err := r.db.QueryRow(`
		SELECT agent_id, allowed_domains, enabled, theme, primary_color, position, welcome_message, placeholder, created_at, updated_at
		FROM widget_configs WHERE agent_id = ?
	`, agentID).Scan(&config.AgentID, &domainsJSON, &config.Enabled, &config.Theme,
		&config.PrimaryColor, &config.Position, &config.WelcomeMessage,
		&config.Placeholder, &config.CreatedAt, &config.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	json.Unmarshal([]byte(domainsJSON), &config.AllowedDomains)

	return config, nil
}

// Put inserts or replaces the widget config for an agent
func (r *WidgetRepository) Put(config *domain.WidgetConfig) error {
	now := time.Now()
	if config.CreatedAt.IsZero() {
		config.CreatedAt = now
	}
	config.UpdatedAt = now

	domainsJSON, _ := json.Marshal(config.AllowedDomains)

	_, err := r.db.Exec(`
		INSERT INTO widget_configs (agent_id, allowed_domains, enabled, theme, primary_color, position, welcome_message, placeholder, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(agent_id) DO UPDATE SET
			allowed_domains = excluded.allowed_domains,
			enabled = excluded.enabled,
			theme = excluded.theme,
			primary_color = excluded.primary_color,
			position = excluded.position,
			welcome_message = excluded.welcome_message,
			placeholder = excluded.placeholder,
			updated_at = excluded.updated_at
	`, config.AgentID, string(domainsJSON), config.Enabled, config.Theme,
		config.PrimaryColor, config.Position, config.WelcomeMessage,
		config.Placeholder, config.CreatedAt, config.UpdatedAt)

	return err
}
