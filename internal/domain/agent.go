package domain

import "time"

// Agent represents a configured AI agent profile
type Agent struct {
	ID                 string    `json:"id"`
	WorkspaceID        string    `json:"workspace_id"`
	Name               string    `json:"name"`
	PersonaID          string    `json:"persona_id,omitempty"`
	KnowledgeSourceIDs []string  `json:"knowledge_source_ids"`
	Goals              string    `json:"goals,omitempty"`
	BusinessDomain     string    `json:"business_domain,omitempty"`
	Channels           []string  `json:"channels,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Persona tone constants
const (
	ToneProfessional = "professional"
	ToneFriendly     = "friendly"
	ToneCasual       = "casual"
	ToneFormal       = "formal"
)

// Fallback policy constants
const (
	FallbackApologize = "apologize"
	FallbackEscalate  = "escalate"
	FallbackRetry     = "retry"
	FallbackTransfer  = "transfer"
)

// Persona is a named behavioral configuration applied to an agent's responses.
// It is read once per response-generation pass and never mutated by the pipeline.
type Persona struct {
	ID              string    `json:"id"`
	WorkspaceID     string    `json:"workspace_id"`
	Name            string    `json:"name"`
	Role            string    `json:"role,omitempty"`
	Tone            string    `json:"tone"`
	StyleNotes      string    `json:"style_notes,omitempty"`
	DoNotDo         []string  `json:"do_not_do,omitempty"`
	GreetingScript  string    `json:"greeting_script,omitempty"`
	FallbackPolicy  string    `json:"fallback_policy"`
	EscalationRules string    `json:"escalation_rules,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateAgentRequest is the request to create an agent
type CreateAgentRequest struct {
	WorkspaceID        string   `json:"workspace_id" binding:"required"`
	Name               string   `json:"name" binding:"required"`
	PersonaID          string   `json:"persona_id,omitempty"`
	KnowledgeSourceIDs []string `json:"knowledge_source_ids,omitempty"`
	Goals              string   `json:"goals,omitempty"`
	BusinessDomain     string   `json:"business_domain,omitempty"`
	Channels           []string `json:"channels,omitempty"`
}

// UpdateAgentRequest is the request to update an agent
type UpdateAgentRequest struct {
	Name               string   `json:"name,omitempty"`
	PersonaID          *string  `json:"persona_id,omitempty"`
	KnowledgeSourceIDs []string `json:"knowledge_source_ids,omitempty"`
	Goals              string   `json:"goals,omitempty"`
	BusinessDomain     string   `json:"business_domain,omitempty"`
	Channels           []string `json:"channels,omitempty"`
}

// CreatePersonaRequest is the request to create a persona
type CreatePersonaRequest struct {
	WorkspaceID     string   `json:"workspace_id" binding:"required"`
	Name            string   `json:"name" binding:"required"`
	Role            string   `json:"role,omitempty"`
	Tone            string   `json:"tone,omitempty"`
	StyleNotes      string   `json:"style_notes,omitempty"`
	DoNotDo         []string `json:"do_not_do,omitempty"`
	GreetingScript  string   `json:"greeting_script,omitempty"`
	FallbackPolicy  string   `json:"fallback_policy,omitempty"`
	EscalationRules string   `json:"escalation_rules,omitempty"`
}
