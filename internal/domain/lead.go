package domain

import "time"

// LeadSourceAutodetect marks leads created from contact info detected in chat
const LeadSourceAutodetect = "chat_autodetect"

// Lead is a contact record associated with a conversation session.
// Created on the first detected contact info for a session; afterwards only
// merged additively (an existing field is never overwritten with a blank).
type Lead struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	AgentID     string    `json:"agent_id"`
	SessionID   string    `json:"session_id"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Channel     string    `json:"channel"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
