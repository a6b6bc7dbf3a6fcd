package knowledge

import (
	"testing"

	"github.com/loopkit/loopchat/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunk(id, content string) domain.KnowledgeChunk {
	return domain.KnowledgeChunk{ID: id, Content: content}
}

func TestRank_KeywordOverlap(t *testing.T) {
	chunks := []domain.KnowledgeChunk{
		chunk("a", "Our refund policy covers all purchases within 30 days."),
		chunk("b", "Shipping takes 3-5 business days."),
		chunk("c", "Refund requests and shipping questions go to support."),
	}

	got := Rank("refund shipping", chunks, 3)
	require.Len(t, got, 3)
	// "c" matches both tokens, "a" and "b" one each (ties keep input order).
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "b", got[2].ID)
}

func TestRank_DropsZeroScores(t *testing.T) {
	chunks := []domain.KnowledgeChunk{
		chunk("a", "pricing plans start at ten dollars"),
		chunk("b", "completely unrelated content"),
	}

	got := Rank("pricing", chunks, 3)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestRank_NoMatchesReturnsEmpty(t *testing.T) {
	chunks := []domain.KnowledgeChunk{chunk("a", "nothing relevant here")}
	assert.Empty(t, Rank("quantum flux", chunks, 3))
}

func TestRank_CaseInsensitive(t *testing.T) {
	chunks := []domain.KnowledgeChunk{chunk("a", "RETURNS are accepted")}
	got := Rank("Returns", chunks, 3)
	require.Len(t, got, 1)
}

func TestRank_Deterministic(t *testing.T) {
	chunks := []domain.KnowledgeChunk{
		chunk("a", "alpha beta"),
		chunk("b", "alpha gamma"),
		chunk("c", "alpha delta"),
	}

	first := Rank("alpha", chunks, 3)
	second := Rank("alpha", chunks, 3)
	assert.Equal(t, first, second)

	// Equal scores keep original relative order.
	require.Len(t, first, 3)
	assert.Equal(t, "a", first[0].ID)
	assert.Equal(t, "b", first[1].ID)
	assert.Equal(t, "c", first[2].ID)
}

func TestRank_ZeroScoreChunkNeverChangesTopK(t *testing.T) {
	base := []domain.KnowledgeChunk{
		chunk("a", "billing and invoices"),
		chunk("b", "billing history"),
	}
	noise := append([]domain.KnowledgeChunk{chunk("x", "unrelated text")}, base...)

	assert.Equal(t, Rank("billing", base, 2), Rank("billing", noise, 2))
}

func TestRank_TruncatesToTopK(t *testing.T) {
	chunks := []domain.KnowledgeChunk{
		chunk("a", "support hours"),
		chunk("b", "support email"),
		chunk("c", "support phone"),
	}

	got := Rank("support", chunks, 2)
	assert.Len(t, got, 2)
}

func TestRank_DefaultTopK(t *testing.T) {
	var chunks []domain.KnowledgeChunk
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		chunks = append(chunks, chunk(id, "keyword"))
	}

	got := Rank("keyword", chunks, 0)
	assert.Len(t, got, DefaultTopK)
}
