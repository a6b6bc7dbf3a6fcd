package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/loopkit/loopchat/internal/config"
	"github.com/loopkit/loopchat/internal/domain"
	"github.com/loopkit/loopchat/internal/knowledge"
	"github.com/loopkit/loopchat/internal/prompt"
	"go.uber.org/zap"
)

// ChannelWeb labels leads captured through the embedded widget
const ChannelWeb = "web"

// AgentStore loads agent configuration
type AgentStore interface {
	Get(id string) (*domain.Agent, error)
}

// PersonaStore loads persona configuration
type PersonaStore interface {
	Get(id string) (*domain.Persona, error)
}

// ChunkStore loads knowledge chunks for a set of sources
type ChunkStore interface {
	ChunksBySourceIDs(sourceIDs []string) ([]domain.KnowledgeChunk, error)
}

// WidgetStore loads widget configs
type WidgetStore interface {
	Get(agentID string) (*domain.WidgetConfig, error)
}

// SessionStore persists sessions and messages
type SessionStore interface {
	Get(id string) (*domain.ChatSession, error)
	Create(session *domain.ChatSession) error
	Touch(id string) error
	CreateMessage(message *domain.Message) error
}

// Streamer produces the upstream reply stream
type Streamer interface {
	StreamChat(ctx context.Context, system string, history []domain.ChatMessage) (io.ReadCloser, error)
}

// ChatReply is the result of a response pass: the session the conversation
// runs under and the upstream byte stream to relay verbatim.
type ChatReply struct {
	SessionID string
	Stream    io.ReadCloser
}

// ChatService orchestrates the conversation response pipeline
type ChatService struct {
	cfg      *config.Config
	agents   AgentStore
	personas PersonaStore
	chunks   ChunkStore
	widgets  WidgetStore
	sessions SessionStore
	leads    *LeadCapture
	upstream Streamer
	logger   *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(
	cfg *config.Config,
	agents AgentStore,
	personas PersonaStore,
	chunks ChunkStore,
	widgets WidgetStore,
	sessions SessionStore,
	leads *LeadCapture,
	upstream Streamer,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		cfg:      cfg,
		agents:   agents,
		personas: personas,
		chunks:   chunks,
		widgets:  widgets,
		sessions: sessions,
		leads:    leads,
		upstream: upstream,
		logger:   logger,
	}
}

// Respond runs the full pipeline for one request: validate, check the
// origin allow-list, retrieve configuration best-effort, hand lead capture
// to the background worker, rank knowledge, assemble the prompt, and open
// the upstream stream. Validation and access failures terminate with no
// side effects; retrieval failures degrade to an empty context.
func (s *ChatService) Respond(ctx context.Context, req *domain.ChatRequest, originHost string) (*ChatReply, error) {
	if req.AgentID == "" {
		return nil, fmt.Errorf("agentId is required: %w", domain.ErrInvalidRequest)
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("messages must not be empty: %w", domain.ErrInvalidRequest)
	}

	widget, err := s.widgets.Get(req.AgentID)
	if err != nil {
		// Treated as absent: the guard stays open rather than blocking chat
		// on a config read failure.
		s.logger.Warn("widget config load failed", zap.String("agent_id", req.AgentID), zap.Error(err))
		widget = nil
	}
	if widget != nil {
		if !widget.Enabled {
			return nil, fmt.Errorf("widget disabled for agent %s: %w", req.AgentID, domain.ErrAccessDenied)
		}
		if !OriginAllowed(originHost, widget.AllowedDomains) {
			return nil, fmt.Errorf("origin %q not allowed for agent %s: %w", originHost, req.AgentID, domain.ErrAccessDenied)
		}
	}

	agent, persona, chunks := s.retrieve(req.AgentID)

	sessionID := s.ensureSession(req, agent)

	// Lead capture runs off the response path; a slow or failing write can
	// never delay the reply.
	if s.leads != nil && sessionID != "" {
		job := LeadJob{
			SessionID: sessionID,
			AgentID:   req.AgentID,
			Channel:   ChannelWeb,
			Text:      userText(req.Messages),
		}
		if agent != nil {
			job.WorkspaceID = agent.WorkspaceID
		}
		s.leads.Enqueue(job)
	}

	retrieved := knowledge.Rank(latestUserTurn(req.Messages), chunks, s.cfg.Knowledge.TopK)
	system := prompt.Assemble(agent, persona, retrieved)

	stream, err := s.upstream.StreamChat(ctx, system, req.Messages)
	if err != nil {
		return nil, err
	}

	return &ChatReply{SessionID: sessionID, Stream: stream}, nil
}

// retrieve loads agent, persona, and knowledge chunks. Every failure and
// every dangling reference degrades to "absent"; retrieval is best effort.
func (s *ChatService) retrieve(agentID string) (*domain.Agent, *domain.Persona, []domain.KnowledgeChunk) {
	agent, err := s.agents.Get(agentID)
	if err != nil {
		s.logger.Warn("agent load failed", zap.String("agent_id", agentID), zap.Error(err))
		return nil, nil, nil
	}
	if agent == nil {
		return nil, nil, nil
	}

	var persona *domain.Persona
	if agent.PersonaID != "" {
		persona, err = s.personas.Get(agent.PersonaID)
		if err != nil {
			s.logger.Warn("persona load failed", zap.String("persona_id", agent.PersonaID), zap.Error(err))
			persona = nil
		}
	}

	var chunks []domain.KnowledgeChunk
	if len(agent.KnowledgeSourceIDs) > 0 {
		chunks, err = s.chunks.ChunksBySourceIDs(agent.KnowledgeSourceIDs)
		if err != nil {
			s.logger.Warn("knowledge load failed", zap.String("agent_id", agentID), zap.Error(err))
			chunks = nil
		}
	}

	return agent, persona, chunks
}

// ensureSession creates a session lazily when the widget supplied none and
// persists the latest user turn. Persistence failures are logged only.
func (s *ChatService) ensureSession(req *domain.ChatRequest, agent *domain.Agent) string {
	sessionID := req.SessionID
	if sessionID == "" {
		session := &domain.ChatSession{AgentID: req.AgentID}
		if agent != nil {
			session.WorkspaceID = agent.WorkspaceID
		}
		if err := s.sessions.Create(session); err != nil {
			s.logger.Warn("session create failed", zap.String("agent_id", req.AgentID), zap.Error(err))
			return ""
		}
		sessionID = session.ID
	} else if err := s.sessions.Touch(sessionID); err != nil {
		s.logger.Warn("session touch failed", zap.String("session_id", sessionID), zap.Error(err))
	}

	if turn := latestUserTurn(req.Messages); turn != "" {
		msg := &domain.Message{SessionID: sessionID, Role: domain.RoleUser, Content: turn}
		if err := s.sessions.CreateMessage(msg); err != nil {
			s.logger.Warn("message persist failed", zap.String("session_id", sessionID), zap.Error(err))
		}
	}

	return sessionID
}

// latestUserTurn returns the content of the last user-authored message
func latestUserTurn(messages []domain.ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == domain.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// userText concatenates all user-authored turns for contact extraction
func userText(messages []domain.ChatMessage) string {
	var b strings.Builder
	for _, m := range messages {
		if m.Role != domain.RoleUser {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.Content)
	}
	return b.String()
}
