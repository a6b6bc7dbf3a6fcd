package service

import (
	"github.com/loopkit/loopchat/internal/config"
	"github.com/loopkit/loopchat/internal/domain"
	"github.com/loopkit/loopchat/internal/knowledge"
	"github.com/loopkit/loopchat/internal/repository"
)

// IngestService manages knowledge sources. Chunks are derived state: they
// are regenerated from the raw text on every create and update, never
// edited on their own.
type IngestService struct {
	knowledgeRepo *repository.KnowledgeRepository
	cfg           *config.Config
}

// NewIngestService creates a new ingest service
func NewIngestService(knowledgeRepo *repository.KnowledgeRepository, cfg *config.Config) *IngestService {
	return &IngestService{
		knowledgeRepo: knowledgeRepo,
		cfg:           cfg,
	}
}

// CreateSource creates a knowledge source and chunks its text
func (s *IngestService) CreateSource(req *domain.CreateKnowledgeSourceRequest) (*domain.KnowledgeSource, error) {
	source := &domain.KnowledgeSource{
		WorkspaceID: req.WorkspaceID,
		Name:        req.Name,
		RawText:     req.RawText,
	}
	chunks := knowledge.Split(req.RawText, s.cfg.Knowledge.ChunkSize)

	if err := s.knowledgeRepo.CreateSource(source, chunks); err != nil {
		return nil, err
	}
	return source, nil
}

// GetSource retrieves a knowledge source
func (s *IngestService) GetSource(id string) (*domain.KnowledgeSource, error) {
	return s.knowledgeRepo.GetSource(id)
}

// ListSources lists all knowledge sources
func (s *IngestService) ListSources() ([]*domain.KnowledgeSource, error) {
	return s.knowledgeRepo.ListSources()
}

// UpdateSource updates a source, rechunking when its text changed
func (s *IngestService) UpdateSource(id string, req *domain.UpdateKnowledgeSourceRequest) (*domain.KnowledgeSource, error) {
	source, err := s.knowledgeRepo.GetSource(id)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != "" {
		source.Name = req.Name
	}
	if req.RawText != nil {
		source.RawText = *req.RawText
	}

	chunks := knowledge.Split(source.RawText, s.cfg.Knowledge.ChunkSize)
	if err := s.knowledgeRepo.UpdateSource(source, chunks); err != nil {
		return nil, err
	}
	return source, nil
}

// DeleteSource deletes a knowledge source and its chunks
func (s *IngestService) DeleteSource(id string) error {
	return s.knowledgeRepo.DeleteSource(id)
}
