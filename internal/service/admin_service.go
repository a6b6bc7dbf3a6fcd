package service

import (
	"github.com/loopkit/loopchat/internal/domain"
	"github.com/loopkit/loopchat/internal/repository"
)

// AdminService handles the configuration surface that feeds the pipeline
type AdminService struct {
	agentRepo   *repository.AgentRepository
	personaRepo *repository.PersonaRepository
	widgetRepo  *repository.WidgetRepository
	leadRepo    *repository.LeadRepository
	sessionRepo *repository.SessionRepository
	ingest      *IngestService
}

// NewAdminService creates a new admin service
func NewAdminService(
	agentRepo *repository.AgentRepository,
	personaRepo *repository.PersonaRepository,
	widgetRepo *repository.WidgetRepository,
	leadRepo *repository.LeadRepository,
	sessionRepo *repository.SessionRepository,
	ingest *IngestService,
) *AdminService {
	return &AdminService{
		agentRepo:   agentRepo,
		personaRepo: personaRepo,
		widgetRepo:  widgetRepo,
		leadRepo:    leadRepo,
		sessionRepo: sessionRepo,
		ingest:      ingest,
	}
}

// Agent operations

func (s *AdminService) CreateAgent(req *domain.CreateAgentRequest) (*domain.Agent, error) {
	agent := &domain.Agent{
		WorkspaceID:        req.WorkspaceID,
		Name:               req.Name,
		PersonaID:          req.PersonaID,
		KnowledgeSourceIDs: req.KnowledgeSourceIDs,
		Goals:              req.Goals,
		BusinessDomain:     req.BusinessDomain,
		Channels:           req.Channels,
	}
	if agent.KnowledgeSourceIDs == nil {
		agent.KnowledgeSourceIDs = []string{}
	}
	if err := s.agentRepo.Create(agent); err != nil {
		return nil, err
	}
	return agent, nil
}

func (s *AdminService) GetAgent(id string) (*domain.Agent, error) {
	return s.agentRepo.Get(id)
}

func (s *AdminService) ListAgents() ([]*domain.Agent, error) {
	return s.agentRepo.List()
}

func (s *AdminService) UpdateAgent(id string, req *domain.UpdateAgentRequest) (*domain.Agent, error) {
	agent, err := s.agentRepo.Get(id)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != "" {
		agent.Name = req.Name
	}
	if req.PersonaID != nil {
		agent.PersonaID = *req.PersonaID
	}
	if req.KnowledgeSourceIDs != nil {
		agent.KnowledgeSourceIDs = req.KnowledgeSourceIDs
	}
	if req.Goals != "" {
		agent.Goals = req.Goals
	}
	if req.BusinessDomain != "" {
		agent.BusinessDomain = req.BusinessDomain
	}
	if req.Channels != nil {
		agent.Channels = req.Channels
	}

	if err := s.agentRepo.Update(agent); err != nil {
		return nil, err
	}
	return agent, nil
}

func (s *AdminService) DeleteAgent(id string) error {
	return s.agentRepo.Delete(id)
}

// Persona operations

func (s *AdminService) CreatePersona(req *domain.CreatePersonaRequest) (*domain.Persona, error) {
	persona := &domain.Persona{
		WorkspaceID:     req.WorkspaceID,
		Name:            req.Name,
		Role:            req.Role,
		Tone:            req.Tone,
		StyleNotes:      req.StyleNotes,
		DoNotDo:         req.DoNotDo,
		GreetingScript:  req.GreetingScript,
		FallbackPolicy:  req.FallbackPolicy,
		EscalationRules: req.EscalationRules,
	}
	if err := s.personaRepo.Create(persona); err != nil {
		return nil, err
	}
	return persona, nil
}

func (s *AdminService) GetPersona(id string) (*domain.Persona, error) {
	return s.personaRepo.Get(id)
}

func (s *AdminService) ListPersonas() ([]*domain.Persona, error) {
	return s.personaRepo.List()
}

func (s *AdminService) DeletePersona(id string) error {
	return s.personaRepo.Delete(id)
}

// Knowledge source operations (delegated to IngestService)

func (s *AdminService) CreateKnowledgeSource(req *domain.CreateKnowledgeSourceRequest) (*domain.KnowledgeSource, error) {
	return s.ingest.CreateSource(req)
}

func (s *AdminService) GetKnowledgeSource(id string) (*domain.KnowledgeSource, error) {
	return s.ingest.GetSource(id)
}

func (s *AdminService) ListKnowledgeSources() ([]*domain.KnowledgeSource, error) {
	return s.ingest.ListSources()
}

func (s *AdminService) UpdateKnowledgeSource(id string, req *domain.UpdateKnowledgeSourceRequest) (*domain.KnowledgeSource, error) {
	return s.ingest.UpdateSource(id, req)
}

func (s *AdminService) DeleteKnowledgeSource(id string) error {
	return s.ingest.DeleteSource(id)
}

// Widget config operations

func (s *AdminService) GetWidgetConfig(agentID string) (*domain.WidgetConfig, error) {
	config, err := s.widgetRepo.Get(agentID)
	if err != nil {
		return nil, err
	}
	if config == nil {
		defaults := domain.DefaultWidgetConfig(agentID)
		return &defaults, nil
	}
	return config, nil
}

func (s *AdminService) UpdateWidgetConfig(agentID string, req *domain.UpdateWidgetConfigRequest) (*domain.WidgetConfig, error) {
	config, err := s.GetWidgetConfig(agentID)
	if err != nil {
		return nil, err
	}

	if req.AllowedDomains != nil {
		config.AllowedDomains = req.AllowedDomains
	}
	if req.Enabled != nil {
		config.Enabled = *req.Enabled
	}
	if req.Theme != "" {
		config.Theme = req.Theme
	}
	if req.PrimaryColor != "" {
		config.PrimaryColor = req.PrimaryColor
	}
	if req.Position != "" {
		config.Position = req.Position
	}
	if req.WelcomeMessage != "" {
		config.WelcomeMessage = req.WelcomeMessage
	}
	if req.Placeholder != "" {
		config.Placeholder = req.Placeholder
	}

	if err := s.widgetRepo.Put(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Lead operations

func (s *AdminService) ListLeads(agentID string) ([]*domain.Lead, error) {
	return s.leadRepo.ListByAgent(agentID)
}

// GetStats returns system statistics
func (s *AdminService) GetStats() (*domain.Stats, error) {
	stats := &domain.Stats{}
	var err error

	if stats.TotalAgents, err = s.agentRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalPersonas, err = s.personaRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalSources, err = s.ingest.knowledgeRepo.CountSources(); err != nil {
		return nil, err
	}
	if stats.TotalLeads, err = s.leadRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalChats, err = s.sessionRepo.CountChats(); err != nil {
		return nil, err
	}

	return stats, nil
}
