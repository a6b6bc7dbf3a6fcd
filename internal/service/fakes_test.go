package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/loopkit/loopchat/internal/domain"
)

// In-memory store fakes standing in for the sqlite repositories.

type fakeLeadStore struct {
	mu      sync.Mutex
	bySess  map[string]*domain.Lead
	inserts int
	updates int
	failAll bool
}

func newFakeLeadStore() *fakeLeadStore {
	return &fakeLeadStore{bySess: make(map[string]*domain.Lead)}
}

func (f *fakeLeadStore) GetBySession(sessionID string) (*domain.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errors.New("store down")
	}
	lead, ok := f.bySess[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *lead
	return &copied, nil
}

func (f *fakeLeadStore) Insert(lead *domain.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errors.New("store down")
	}
	copied := *lead
	f.bySess[lead.SessionID] = &copied
	f.inserts++
	return nil
}

func (f *fakeLeadStore) Update(lead *domain.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errors.New("store down")
	}
	copied := *lead
	f.bySess[lead.SessionID] = &copied
	f.updates++
	return nil
}

func (f *fakeLeadStore) get(sessionID string) *domain.Lead {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bySess[sessionID]
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.ChatSession
	messages []*domain.Message
	attached map[string]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		sessions: make(map[string]*domain.ChatSession),
		attached: make(map[string]string),
	}
}

func (f *fakeSessionStore) Get(id string) (*domain.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[id], nil
}

func (f *fakeSessionStore) Create(session *domain.ChatSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionStore) Touch(id string) error { return nil }

func (f *fakeSessionStore) CreateMessage(message *domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeSessionStore) AttachLead(sessionID, leadID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attached[sessionID] = leadID
	return nil
}

type fakeAgentStore struct {
	agents map[string]*domain.Agent
	err    error
}

func (f *fakeAgentStore) Get(id string) (*domain.Agent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.agents[id], nil
}

type fakePersonaStore struct {
	personas map[string]*domain.Persona
}

func (f *fakePersonaStore) Get(id string) (*domain.Persona, error) {
	return f.personas[id], nil
}

type fakeChunkStore struct {
	chunks []domain.KnowledgeChunk
	err    error
}

func (f *fakeChunkStore) ChunksBySourceIDs(sourceIDs []string) ([]domain.KnowledgeChunk, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.chunks, nil
}

type fakeWidgetStore struct {
	configs map[string]*domain.WidgetConfig
}

func (f *fakeWidgetStore) Get(agentID string) (*domain.WidgetConfig, error) {
	if f.configs == nil {
		return nil, nil
	}
	return f.configs[agentID], nil
}

// fakeStreamer records the assembled system prompt and serves a canned body.
type fakeStreamer struct {
	mu      sync.Mutex
	system  string
	history []domain.ChatMessage
	body    string
	err     error
}

func (f *fakeStreamer) StreamChat(ctx context.Context, system string, history []domain.ChatMessage) (io.ReadCloser, error) {
	f.mu.Lock()
	f.system = system
	f.history = history
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func (f *fakeStreamer) lastSystem() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.system
}
