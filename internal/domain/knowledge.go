package domain

import "time"

// KnowledgeSource represents a block of raw text owned by a workspace.
// Its chunks are derived and regenerated whenever RawText changes; the
// chunk set is never edited independently.
type KnowledgeSource struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Name        string    `json:"name"`
	RawText     string    `json:"raw_text"`
	ChunkCount  int       `json:"chunk_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// KnowledgeChunk is a fixed-size contiguous slice of a source's text, the
// unit of retrieval. Chunks of one source concatenated in Index order
// reconstruct the source's RawText exactly.
type KnowledgeChunk struct {
	ID       string `json:"id"`
	SourceID string `json:"source_id"`
	Index    int    `json:"index"`
	Content  string `json:"content"`
}

// CreateKnowledgeSourceRequest is the request to create a knowledge source
type CreateKnowledgeSourceRequest struct {
	WorkspaceID string `json:"workspace_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	RawText     string `json:"raw_text"`
}

// UpdateKnowledgeSourceRequest is the request to update a knowledge source
type UpdateKnowledgeSourceRequest struct {
	Name    string  `json:"name,omitempty"`
	RawText *string `json:"raw_text,omitempty"`
}
