package domain

import "time"

// WidgetConfig holds the public embed configuration for an agent.
// AllowedDomains is the origin allow-list consulted before any chat work;
// an empty list allows every origin (open by default, mirroring how
// existing embeds behave before a domain list is configured).
type WidgetConfig struct {
	AgentID        string    `json:"agent_id"`
	AllowedDomains []string  `json:"allowed_domains"`
	Enabled        bool      `json:"enabled"`
	Theme          string    `json:"theme"`
	PrimaryColor   string    `json:"primary_color"`
	Position       string    `json:"position"`
	WelcomeMessage string    `json:"welcome_message"`
	Placeholder    string    `json:"placeholder"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UpdateWidgetConfigRequest is the request to update a widget config
type UpdateWidgetConfigRequest struct {
	AllowedDomains []string `json:"allowed_domains,omitempty"`
	Enabled        *bool    `json:"enabled,omitempty"`
	Theme          string   `json:"theme,omitempty"`
	PrimaryColor   string   `json:"primary_color,omitempty"`
	Position       string   `json:"position,omitempty"`
	WelcomeMessage string   `json:"welcome_message,omitempty"`
	Placeholder    string   `json:"placeholder,omitempty"`
}

// DefaultWidgetConfig returns default widget configuration for an agent
func DefaultWidgetConfig(agentID string) WidgetConfig {
	return WidgetConfig{
		AgentID:        agentID,
		AllowedDomains: []string{},
		Enabled:        true,
		Theme:          "light",
		PrimaryColor:   "#3b82f6",
		Position:       "bottom-right",
		WelcomeMessage: "Hi! How can I help you?",
		Placeholder:    "Type a message...",
	}
}
