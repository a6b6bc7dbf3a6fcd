package repository

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/loopkit/loopchat/internal/domain"
	"github.com/loopkit/loopchat/internal/knowledge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestKnowledgeRepository_ChunkRoundtrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewKnowledgeRepository(db)

	text := strings.Repeat("all about returns and refunds. ", 80)
	source := &domain.KnowledgeSource{WorkspaceID: "ws-1", Name: "faq", RawText: text}
	chunks := knowledge.Split(text, 500)

	require.NoError(t, repo.CreateSource(source, chunks))
	require.NotEmpty(t, source.ID)
	assert.Equal(t, len(chunks), source.ChunkCount)

	got, err := repo.ChunksBySourceIDs([]string{source.ID})
	require.NoError(t, err)
	require.Len(t, got, len(chunks))

	// Concatenation in index order reconstructs the raw text.
	var b strings.Builder
	for i, chunk := range got {
		assert.Equal(t, i, chunk.Index)
		assert.Equal(t, source.ID, chunk.SourceID)
		b.WriteString(chunk.Content)
	}
	assert.Equal(t, text, b.String())
}

func TestKnowledgeRepository_UpdateReplacesChunks(t *testing.T) {
	db := newTestDB(t)
	repo := NewKnowledgeRepository(db)

	source := &domain.KnowledgeSource{WorkspaceID: "ws-1", Name: "faq", RawText: "old text"}
	require.NoError(t, repo.CreateSource(source, knowledge.Split("old text", 500)))

	source.RawText = "entirely new text"
	require.NoError(t, repo.UpdateSource(source, knowledge.Split("entirely new text", 500)))

	got, err := repo.ChunksBySourceIDs([]string{source.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "entirely new text", got[0].Content)
}

func TestKnowledgeRepository_UnknownSourceIDsYieldNothing(t *testing.T) {
	db := newTestDB(t)
	repo := NewKnowledgeRepository(db)

	got, err := repo.ChunksBySourceIDs([]string{"nope"})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = repo.ChunksBySourceIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLeadRepository_InsertAndMerge(t *testing.T) {
	db := newTestDB(t)
	repo := NewLeadRepository(db)

	lead := &domain.Lead{
		WorkspaceID: "ws-1",
		AgentID:     "ag-1",
		SessionID:   "sess-1",
		Phone:       "+15551234567",
		Channel:     "web",
		Source:      domain.LeadSourceAutodetect,
	}
	require.NoError(t, repo.Insert(lead))

	got, err := repo.GetBySession("sess-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "+15551234567", got.Phone)
	assert.Equal(t, "", got.Email)

	got.Email = "a@b.com"
	require.NoError(t, repo.Update(got))

	merged, err := repo.GetBySession("sess-1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", merged.Email)
	assert.Equal(t, "+15551234567", merged.Phone)
	assert.True(t, merged.UpdatedAt.After(merged.CreatedAt) || merged.UpdatedAt.Equal(merged.CreatedAt))
}

func TestLeadRepository_MissingSession(t *testing.T) {
	db := newTestDB(t)
	repo := NewLeadRepository(db)

	got, err := repo.GetBySession("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepository_AttachLead(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)

	session := &domain.ChatSession{AgentID: "ag-1", WorkspaceID: "ws-1"}
	require.NoError(t, repo.Create(session))

	require.NoError(t, repo.AttachLead(session.ID, "lead-1"))

	got, err := repo.Get(session.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.LeadCaptured)
	assert.Equal(t, "lead-1", got.LeadID)
}

func TestWidgetRepository_PutIsUpsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewWidgetRepository(db)

	config := domain.DefaultWidgetConfig("ag-1")
	require.NoError(t, repo.Put(&config))

	config.AllowedDomains = []string{"example.com"}
	config.Enabled = false
	require.NoError(t, repo.Put(&config))

	got, err := repo.Get("ag-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"example.com"}, got.AllowedDomains)
	assert.False(t, got.Enabled)
}

func TestWidgetRepository_MissingConfig(t *testing.T) {
	db := newTestDB(t)
	repo := NewWidgetRepository(db)

	got, err := repo.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}
