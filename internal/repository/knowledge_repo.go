package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/loopkit/loopchat/internal/domain"
)

// KnowledgeRepository handles knowledge source and chunk persistence
type KnowledgeRepository struct {
	db *DB
}

// NewKnowledgeRepository creates a new knowledge repository
func NewKnowledgeRepository(db *DB) *KnowledgeRepository {
	return &KnowledgeRepository{db: db}
}

// CreateSource creates a knowledge source together with its chunks
func (r *KnowledgeRepository) CreateSource(source *domain.KnowledgeSource, chunks []domain.KnowledgeChunk) error {
	if source.ID == "" {
		source.ID = uuid.New().String()
	}
	now := time.Now()
	source.CreatedAt = now
	source.UpdatedAt = now
	source.ChunkCount = len(chunks)

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO knowledge_sources (id, workspace_id, name, raw_text, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, source.ID, source.WorkspaceID, source.Name, source.RawText, source.CreatedAt, source.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertChunks(tx, source.ID, chunks); err != nil {
		return err
	}

	return tx.Commit()
}

// GetSource retrieves a knowledge source by ID
func (r *KnowledgeRepository) GetSource(id string) (*domain.KnowledgeSource, error) {
	source := &domain.KnowledgeSource{}

	err := r.db.QueryRow(`
		SELECT s.id, s.workspace_id, s.name, s.raw_text, s.created_at, s.updated_at,
			(SELECT COUNT(*) FROM knowledge_chunks c WHERE c.source_id = s.id)
		FROM knowledge_sources s WHERE s.id = ?
	`, id).Scan(&source.ID, &source.WorkspaceID, &source.Name, &source.RawText,
		&source.CreatedAt, &source.UpdatedAt, &source.ChunkCount)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return source, nil
}

// ListSources retrieves all knowledge sources without their raw text
func (r *KnowledgeRepository) ListSources() ([]*domain.KnowledgeSource, error) {
	rows, err := r.db.Query(`
		SELECT s.id, s.workspace_id, s.name, s.created_at, s.updated_at,
			(SELECT COUNT(*) FROM knowledge_chunks c WHERE c.source_id = s.id)
		FROM knowledge_sources s ORDER BY s.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []*domain.KnowledgeSource
	for rows.Next() {
		source := &domain.KnowledgeSource{}
		if err := rows.Scan(&source.ID, &source.WorkspaceID, &source.Name,
			&source.CreatedAt, &source.UpdatedAt, &source.ChunkCount); err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}

	return sources, rows.Err()
}

// UpdateSource updates a source and replaces its chunk set atomically.
// Chunks are derived from raw text, so the old set is discarded wholesale.
func (r *KnowledgeRepository) UpdateSource(source *domain.KnowledgeSource, chunks []domain.KnowledgeChunk) error {
	source.UpdatedAt = time.Now()
	source.ChunkCount = len(chunks)

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE knowledge_sources SET name = ?, raw_text = ?, updated_at = ? WHERE id = ?
	`, source.Name, source.RawText, source.UpdatedAt, source.ID)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("knowledge source not found: %s", source.ID)
	}

	if _, err := tx.Exec(`DELETE FROM knowledge_chunks WHERE source_id = ?`, source.ID); err != nil {
		return err
	}
	if err := insertChunks(tx, source.ID, chunks); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteSource deletes a source and its chunks
func (r *KnowledgeRepository) DeleteSource(id string) error {
	result, err := r.db.Exec(`DELETE FROM knowledge_sources WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("knowledge source not found: %s", id)
	}

	return nil
}

// ChunksBySourceIDs retrieves all chunks belonging to the given sources in
// source, then index order. Unknown source ids contribute nothing.
func (r *KnowledgeRepository) ChunksBySourceIDs(sourceIDs []string) ([]domain.KnowledgeChunk, error) {
	if len(sourceIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(sourceIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(sourceIDs))
	for i, id := range sourceIDs {
		args[i] = id
	}

	rows, err := r.db.Query(`
		SELECT id, source_id, chunk_index, content
		FROM knowledge_chunks WHERE source_id IN (`+placeholders+`)
		ORDER BY source_id, chunk_index
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []domain.KnowledgeChunk
	for rows.Next() {
		var chunk domain.KnowledgeChunk
		if err := rows.Scan(&chunk.ID, &chunk.SourceID, &chunk.Index, &chunk.Content); err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}

	return chunks, rows.Err()
}

// CountSources returns the total number of knowledge sources
func (r *KnowledgeRepository) CountSources() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM knowledge_sources`).Scan(&count)
	return count, err
}

func insertChunks(tx *sql.Tx, sourceID string, chunks []domain.KnowledgeChunk) error {
	for i := range chunks {
		if chunks[i].ID == "" {
			chunks[i].ID = uuid.New().String()
		}
		chunks[i].SourceID = sourceID
		if _, err := tx.Exec(`
			INSERT INTO knowledge_chunks (id, source_id, chunk_index, content)
			VALUES (?, ?, ?, ?)
		`, chunks[i].ID, sourceID, chunks[i].Index, chunks[i].Content); err != nil {
			return err
		}
	}
	return nil
}
