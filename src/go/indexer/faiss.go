// Package indexer implements the LexicalIndex and VectorStore persistence
// layers that sit behind the orchestrator.
package indexer

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/dillonfkhanna/multi-search/src/go/types"
)

// VectorStore persists EmbeddingRecords and answers nearest-neighbor
// queries, partitioned by EmbeddingType so title/summary/chunk vectors never
// compete against each other in a single ranked list. Implementations must
// be safe for concurrent use.
type VectorStore interface {
	// AddBatch inserts records; it never deduplicates against existing
	// rows for the same path (callers must DeleteByPath first on update).
	AddBatch(ctx context.Context, records []types.EmbeddingRecord) error

	// DeleteByPath removes every record for path across all partitions.
	// Deleting an absent path is a no-op, not an error.
	DeleteByPath(ctx context.Context, path string) error

	// Nearest returns up to k hits from the given partition ordered by
	// ascending distance (closer first). includeText controls whether
	// VectorHit.TextChunk is populated.
	Nearest(ctx context.Context, queryVector []float32, embeddingType types.EmbeddingType, k int, includeText bool) ([]types.VectorHit, error)

	// Stats reports the current size of the store.
	Stats() VectorStoreStats

	// Close releases resources held by the store.
	Close() error
}

// VectorStoreStats summarizes a VectorStore's contents.
type VectorStoreStats struct {
	TotalVectors int
	Dimension    int
}

// memoryPartitionEntry is one row of an in-memory partition.
type memoryPartitionEntry struct {
	path      string
	embedding []float32
	textChunk string
}

// MemoryVectorStore is the dependency-free default VectorStore: a flat,
// mutex-guarded, brute-force nearest-neighbor scan per partition. It is
// correct and simple, trading query latency for zero external dependencies;
// the cgo-backed RealVectorStore is faster at scale.
type MemoryVectorStore struct {
	mu         sync.RWMutex
	dimension  int
	partitions map[types.EmbeddingType][]memoryPartitionEntry
}

// NewMemoryVectorStore constructs an empty MemoryVectorStore at the given
// fixed dimension.
func NewMemoryVectorStore(dimension int) *MemoryVectorStore {
	return &MemoryVectorStore{
		dimension: dimension,
		partitions: map[types.EmbeddingType][]memoryPartitionEntry{
			types.EmbeddingTitle:   nil,
			types.EmbeddingSummary: nil,
			types.EmbeddingChunk:   nil,
		},
	}
}

func (s *MemoryVectorStore) AddBatch(ctx context.Context, records []types.EmbeddingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		if len(r.Embedding) != s.dimension {
			return types.NewError("indexer.AddBatch", types.InputInvalid,
				dimensionMismatch(s.dimension, len(r.Embedding)))
		}
		s.partitions[r.EmbeddingType] = append(s.partitions[r.EmbeddingType], memoryPartitionEntry{
			path:      r.DocumentPath,
			embedding: normalize(r.Embedding),
			textChunk: r.TextChunk,
		})
	}
	return nil
}

func (s *MemoryVectorStore) DeleteByPath(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for t, entries := range s.partitions {
		kept := entries[:0:0]
		for _, e := range entries {
			if e.path != path {
				kept = append(kept, e)
			}
		}
		s.partitions[t] = kept
	}
	return nil
}

func (s *MemoryVectorStore) Nearest(ctx context.Context, queryVector []float32, embeddingType types.EmbeddingType, k int, includeText bool) ([]types.VectorHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(queryVector) != s.dimension {
		return nil, types.NewError("indexer.Nearest", types.InputInvalid,
			dimensionMismatch(s.dimension, len(queryVector)))
	}

	query := normalize(queryVector)
	entries := s.partitions[embeddingType]
	hits := make([]types.VectorHit, 0, len(entries))
	for _, e := range entries {
		hit := types.VectorHit{
			DocumentPath: e.path,
			Distance:     l2Distance(query, e.embedding),
		}
		if includeText {
			hit.TextChunk = e.textChunk
		}
		hits = append(hits, hit)
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func (s *MemoryVectorStore) Stats() VectorStoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, entries := range s.partitions {
		total += len(entries)
	}
	return VectorStoreStats{TotalVectors: total, Dimension: s.dimension}
}

func (s *MemoryVectorStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partitions = map[types.EmbeddingType][]memoryPartitionEntry{}
	return nil
}

func normalize(v []float32) []float32 {
	var sumSquares float64
	for _, x := range v {
		sumSquares += float64(x) * float64(x)
	}
	norm := float32(math.Sqrt(sumSquares))
	if norm == 0 {
		return v
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

func l2Distance(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return float32(math.Sqrt(float64(sum)))
}

func dimensionMismatch(want, got int) error {
	return fmt.Errorf("vector dimension mismatch: expected %d, got %d", want, got)
}
