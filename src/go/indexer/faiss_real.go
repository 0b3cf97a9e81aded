//go:build cgo
// +build cgo

package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	faiss "github.com/DataIntelligenceCrew/go-faiss"

	"github.com/dillonfkhanna/multi-search/src/go/types"
)

// partition bundles one FAISS flat-L2 index with the path/text metadata
// FAISS itself does not store.
type partition struct {
	index     *faiss.IndexFlatL2
	nextID    int64
	pathByID  map[int64]string
	textByID  map[int64]string
	idsByPath map[string][]int64
}

// RealVectorStore is the FAISS-backed VectorStore, selected when the module
// is built with the cgo tag. It keeps one IndexFlatL2 per EmbeddingType so
// title/summary/chunk candidates are always searched within their own
// partition, and persists a JSON sidecar for the metadata FAISS can't carry.
type RealVectorStore struct {
	mu         sync.RWMutex
	dimension  int
	dataDir    string
	partitions map[types.EmbeddingType]*partition
}

type vectorStoreMetadata struct {
	Dimension int                                       `json:"dimension"`
	Paths     map[types.EmbeddingType]map[int64]string `json:"paths"`
	Texts     map[types.EmbeddingType]map[int64]string `json:"texts"`
}

// NewRealVectorStore opens (or creates) a FAISS-backed store rooted at
// dataDir. Each embedding type gets its own on-disk index file plus a
// shared metadata.json sidecar.
func NewRealVectorStore(dataDir string, dimension int) (*RealVectorStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, types.NewError("indexer.NewRealVectorStore", types.ResourceUnavailable, err)
	}

	s := &RealVectorStore{
		dimension:  dimension,
		dataDir:    dataDir,
		partitions: make(map[types.EmbeddingType]*partition),
	}
	for _, t := range []types.EmbeddingType{types.EmbeddingTitle, types.EmbeddingSummary, types.EmbeddingChunk} {
		idx, err := faiss.NewIndexFlatL2(dimension)
		if err != nil {
			return nil, types.NewError("indexer.NewRealVectorStore", types.ResourceUnavailable, err)
		}
		s.partitions[t] = &partition{
			index:     idx,
			pathByID:  make(map[int64]string),
			textByID:  make(map[int64]string),
			idsByPath: make(map[string][]int64),
		}
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, types.NewError("indexer.NewRealVectorStore", types.StoreFailure, err)
	}
	return s, nil
}

func (s *RealVectorStore) AddBatch(ctx context.Context, records []types.EmbeddingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		if len(r.Embedding) != s.dimension {
			return types.NewError("indexer.AddBatch", types.InputInvalid, dimensionMismatch(s.dimension, len(r.Embedding)))
		}
		p := s.partitions[r.EmbeddingType]
		id := p.nextID
		p.nextID++

		if err := p.index.AddWithIDs(r.Embedding, []int64{id}); err != nil {
			return types.NewError("indexer.AddBatch", types.StoreFailure, err)
		}
		p.pathByID[id] = r.DocumentPath
		p.textByID[id] = r.TextChunk
		p.idsByPath[r.DocumentPath] = append(p.idsByPath[r.DocumentPath], id)
	}
	return s.persist()
}

// DeleteByPath removes every vector for path. FAISS's IndexFlatL2 has no
// native delete, so each partition touched is rebuilt from its surviving
// rows.
func (s *RealVectorStore) DeleteByPath(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for t, p := range s.partitions {
		if _, ok := p.idsByPath[path]; !ok {
			continue
		}
		if err := s.rebuildPartition(p, path); err != nil {
			return types.NewError("indexer.DeleteByPath", types.StoreFailure, err)
		}
		_ = t
	}
	return s.persist()
}

func (s *RealVectorStore) rebuildPartition(p *partition, excludePath string) error {
	newIndex, err := faiss.NewIndexFlatL2(s.dimension)
	if err != nil {
		return err
	}

	newPathByID := make(map[int64]string)
	newTextByID := make(map[int64]string)
	newIdsByPath := make(map[string][]int64)
	var nextID int64

	total := p.index.Ntotal()
	for id := int64(0); id < total; id++ {
		path, ok := p.pathByID[id]
		if !ok || path == excludePath {
			continue
		}
		vec, err := p.index.Reconstruct(id)
		if err != nil {
			continue
		}
		newID := nextID
		nextID++
		if err := newIndex.AddWithIDs(vec, []int64{newID}); err != nil {
			return err
		}
		newPathByID[newID] = path
		newTextByID[newID] = p.textByID[id]
		newIdsByPath[path] = append(newIdsByPath[path], newID)
	}

	p.index.Delete()
	p.index = newIndex
	p.pathByID = newPathByID
	p.textByID = newTextByID
	p.idsByPath = newIdsByPath
	p.nextID = nextID
	return nil
}

func (s *RealVectorStore) Nearest(ctx context.Context, queryVector []float32, embeddingType types.EmbeddingType, k int, includeText bool) ([]types.VectorHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(queryVector) != s.dimension {
		return nil, types.NewError("indexer.Nearest", types.InputInvalid, dimensionMismatch(s.dimension, len(queryVector)))
	}

	p := s.partitions[embeddingType]
	if p.index.Ntotal() == 0 || k <= 0 {
		return nil, nil
	}

	distances, ids, err := p.index.Search(queryVector, int64(k))
	if err != nil {
		return nil, types.NewError("indexer.Nearest", types.StoreFailure, err)
	}

	hits := make([]types.VectorHit, 0, len(ids))
	for i, id := range ids {
		if id < 0 {
			continue
		}
		hit := types.VectorHit{
			DocumentPath: p.pathByID[id],
			Distance:     distances[i],
		}
		if includeText {
			hit.TextChunk = p.textByID[id]
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func (s *RealVectorStore) Stats() VectorStoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, p := range s.partitions {
		total += int(p.index.Ntotal())
	}
	return VectorStoreStats{TotalVectors: total, Dimension: s.dimension}
}

func (s *RealVectorStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.partitions {
		p.index.Delete()
	}
	return nil
}

func (s *RealVectorStore) metadataPath() string {
	return filepath.Join(s.dataDir, "metadata.json")
}

func (s *RealVectorStore) persist() error {
	meta := vectorStoreMetadata{
		Dimension: s.dimension,
		Paths:     make(map[types.EmbeddingType]map[int64]string),
		Texts:     make(map[types.EmbeddingType]map[int64]string),
	}
	for t, p := range s.partitions {
		meta.Paths[t] = p.pathByID
		meta.Texts[t] = p.textByID

		indexPath := filepath.Join(s.dataDir, string(t)+".faissindex")
		if err := faiss.WriteIndex(p.index, indexPath); err != nil {
			return fmt.Errorf("write %s index: %w", t, err)
		}
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	return os.WriteFile(s.metadataPath(), data, 0o644)
}

func (s *RealVectorStore) load() error {
	data, err := os.ReadFile(s.metadataPath())
	if err != nil {
		return err
	}
	var meta vectorStoreMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return fmt.Errorf("unmarshal metadata: %w", err)
	}

	for t, p := range s.partitions {
		indexPath := filepath.Join(s.dataDir, string(t)+".faissindex")
		if _, err := os.Stat(indexPath); err != nil {
			continue
		}
		idx, err := faiss.ReadIndexFlatL2(indexPath)
		if err != nil {
			return fmt.Errorf("read %s index: %w", t, err)
		}
		p.index.Delete()
		p.index = idx
		p.pathByID = meta.Paths[t]
		p.textByID = meta.Texts[t]
		p.idsByPath = make(map[string][]int64)
		for id, path := range p.pathByID {
			p.idsByPath[path] = append(p.idsByPath[path], id)
			if id >= p.nextID {
				p.nextID = id + 1
			}
		}
	}
	return nil
}
