package knowledge

import (
	"sort"
	"strings"

	"github.com/loopkit/loopchat/internal/domain"
)

// DefaultTopK is the number of chunks retrieved when none is configured.
const DefaultTopK = 3

// Rank scores chunks against a query by keyword overlap and returns the topK
// best matches. Both sides are lowercased; the query is tokenized on
// whitespace; a chunk's score is the number of query tokens that appear as
// substrings of its content. No stemming, no stop words: this is a cheap
// lexical heuristic, not semantic search. Zero-score chunks are dropped and
// ties keep the original chunk order. An empty result means "no relevant
// knowledge", not an error.
func Rank(query string, chunks []domain.KnowledgeChunk, topK int) []domain.KnowledgeChunk {
	if topK <= 0 {
		topK = DefaultTopK
	}

	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 || len(chunks) == 0 {
		return nil
	}

	type scored struct {
		chunk domain.KnowledgeChunk
		score int
	}

	var candidates []scored
	for _, chunk := range chunks {
		content := strings.ToLower(chunk.Content)
		score := 0
		for _, token := range tokens {
			if strings.Contains(content, token) {
				score++
			}
		}
		if score > 0 {
			candidates = append(candidates, scored{chunk: chunk, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	result := make([]domain.KnowledgeChunk, len(candidates))
	for i, c := range candidates {
		result[i] = c.chunk
	}
	return result
}
