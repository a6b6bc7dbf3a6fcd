package knowledge

import "github.com/loopkit/loopchat/internal/domain"

// DefaultChunkSize is the chunk boundary used when none is configured.
const DefaultChunkSize = 1000

// Split partitions text into fixed-size, position-indexed chunks. The split
// is a lossless partition: concatenating the returned chunks in index order
// reproduces text exactly, with the final chunk possibly shorter. Empty text
// yields no chunks. IDs and source linkage are left to the caller.
func Split(text string, size int) []domain.KnowledgeChunk {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if text == "" {
		return nil
	}

	runes := []rune(text)
	chunks := make([]domain.KnowledgeChunk, 0, (len(runes)+size-1)/size)
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, domain.KnowledgeChunk{
			Index:   len(chunks),
			Content: string(runes[i:end]),
		})
	}

	return chunks
}
