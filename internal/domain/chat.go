package domain

import "time"

// Message role constants
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatSession represents a widget conversation
type ChatSession struct {
	ID           string    `json:"id"`
	AgentID      string    `json:"agent_id"`
	WorkspaceID  string    `json:"workspace_id"`
	LeadCaptured bool      `json:"lead_captured"`
	LeadID       string    `json:"lead_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Message represents a persisted chat message
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"` // user, assistant
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatMessage is a single conversation turn on the wire
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the request to generate a streamed reply
type ChatRequest struct {
	AgentID   string        `json:"agentId"`
	Messages  []ChatMessage `json:"messages"`
	SessionID string        `json:"sessionId,omitempty"`
}

// Stats represents system statistics
type Stats struct {
	TotalAgents   int `json:"total_agents"`
	TotalPersonas int `json:"total_personas"`
	TotalSources  int `json:"total_sources"`
	TotalLeads    int `json:"total_leads"`
	TotalChats    int `json:"total_chats"`
}
