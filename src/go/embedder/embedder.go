// Package embedder turns text into unit-length, fixed-dimension vectors and
// assembles the per-document embedding batch the orchestrator writes to the
// VectorStore.
package embedder

import (
	"context"
	"crypto/sha256"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/dillonfkhanna/multi-search/src/go/textanalysis"
	"github.com/dillonfkhanna/multi-search/src/go/types"
)

// Embedder produces a unit-length Float32[types.EmbeddingDimension] vector
// from text. Implementations must be safe for concurrent read-only Embed
// calls; an Embedder is constructed once and shared.
type Embedder interface {
	// Embed fails with an InputInvalid-kind error when text is empty after
	// trimming.
	Embed(ctx context.Context, text string) ([]float32, error)
	// Dimension returns the fixed vector width this embedder produces.
	Dimension() int
	// Model returns a human-readable model identifier.
	Model() string
	// Warmup loads model artifacts; idempotent, safe to skip (Embed calls
	// it lazily).
	Warmup(ctx context.Context) error
	// Close releases resources.
	Close() error
}

// EmbedderConfig configures an Embedder's construction.
type EmbedderConfig struct {
	Model     string        `yaml:"model"`
	Device    string        `yaml:"device"`
	CacheSize int           `yaml:"cache_size"`
	Timeout   time.Duration `yaml:"timeout"`
}

// DefaultEmbedderConfig mirrors the defaults a fresh install ships with.
func DefaultEmbedderConfig() EmbedderConfig {
	return EmbedderConfig{
		Model:     "sentence-transformers/all-MiniLM-L6-v2",
		Device:    "cpu",
		CacheSize: 10000,
		Timeout:   30 * time.Second,
	}
}

type cacheEntry struct {
	vector    []float32
	timestamp time.Time
}

// DeterministicEmbedder is the dependency-free default Embedder: it derives
// a unit-length vector from a SHA-256 seed of the input text, so callers get
// a stable, order-preserving stand-in for the real sentence-transformer
// model without linking ONNX Runtime. It is used whenever the module is
// built without the onnx tag.
type DeterministicEmbedder struct {
	mu        sync.RWMutex
	model     string
	dimension int
	cache     map[string]*cacheEntry
	maxCache  int
}

// NewDeterministicEmbedder constructs a DeterministicEmbedder.
func NewDeterministicEmbedder(cfg EmbedderConfig) *DeterministicEmbedder {
	return &DeterministicEmbedder{
		model:     cfg.Model + " (deterministic stand-in)",
		dimension: types.EmbeddingDimension,
		cache:     make(map[string]*cacheEntry),
		maxCache:  cfg.CacheSize,
	}
}

// NewDefaultEmbedder returns the Embedder used when no build tag selects a
// real model: a DeterministicEmbedder with default configuration.
func NewDefaultEmbedder() Embedder {
	return NewDeterministicEmbedder(DefaultEmbedderConfig())
}

func (e *DeterministicEmbedder) Dimension() int { return e.dimension }
func (e *DeterministicEmbedder) Model() string  { return e.model }

func (e *DeterministicEmbedder) Warmup(ctx context.Context) error { return nil }

func (e *DeterministicEmbedder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]*cacheEntry)
	return nil
}

func (e *DeterministicEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, types.NewError("embedder.Embed", types.InputInvalid, fmt.Errorf("cannot embed empty text"))
	}

	if v, ok := e.cached(trimmed); ok {
		return v, nil
	}

	sum := sha256.Sum256([]byte(trimmed))
	var seed int64
	for i := 0; i < 8; i++ {
		seed = (seed << 8) | int64(sum[i])
	}

	vector := make([]float32, e.dimension)
	rng := seed
	for i := range vector {
		rng = (rng*1103515245 + 12345) & 0x7fffffff
		value := float32(rng)/float32(0x7fffffff)*2 - 1
		vector[i] = value
	}
	vector = normalizeVector(vector)

	e.store(trimmed, vector)
	return vector, nil
}

func (e *DeterministicEmbedder) cached(key string) ([]float32, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	entry, ok := e.cache[key]
	if !ok {
		return nil, false
	}
	return entry.vector, true
}

func (e *DeterministicEmbedder) store(key string, vector []float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.cache) >= e.maxCache && e.maxCache > 0 {
		e.evictOldest()
	}
	e.cache[key] = &cacheEntry{vector: vector, timestamp: time.Now()}
}

func (e *DeterministicEmbedder) evictOldest() {
	var oldestKey string
	var oldestTime time.Time
	for k, v := range e.cache {
		if oldestKey == "" || v.timestamp.Before(oldestTime) {
			oldestKey, oldestTime = k, v.timestamp
		}
	}
	if oldestKey != "" {
		delete(e.cache, oldestKey)
	}
}

func normalizeVector(vector []float32) []float32 {
	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	norm := float32(math.Sqrt(sumSquares))
	if norm == 0 {
		return vector
	}
	out := make([]float32, len(vector))
	for i, v := range vector {
		out[i] = v / norm
	}
	return out
}

// BuildDocumentEmbeddings implements §4.3.1: given a document's title, body
// and path, produce the title/summary/chunk EmbeddingRecord batch. Empty
// title contributes no title record; empty summary contributes no summary
// record; empty chunks are skipped.
func BuildDocumentEmbeddings(ctx context.Context, e Embedder, title, body, path string) ([]types.EmbeddingRecord, error) {
	var records []types.EmbeddingRecord

	if trimmedTitle := strings.TrimSpace(title); trimmedTitle != "" {
		vec, err := e.Embed(ctx, title)
		if err != nil {
			return nil, fmt.Errorf("embed title: %w", err)
		}
		records = append(records, types.EmbeddingRecord{
			Embedding:     vec,
			TextChunk:     title,
			DocumentPath:  path,
			EmbeddingType: types.EmbeddingTitle,
		})
	}

	summary := textanalysis.Summarize(body)
	if strings.TrimSpace(summary) != "" {
		vec, err := e.Embed(ctx, summary)
		if err != nil {
			return nil, fmt.Errorf("embed summary: %w", err)
		}
		records = append(records, types.EmbeddingRecord{
			Embedding:     vec,
			TextChunk:     summary,
			DocumentPath:  path,
			EmbeddingType: types.EmbeddingSummary,
		})
	}

	for _, chunk := range textanalysis.Chunk(body) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		vec, err := e.Embed(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("embed chunk: %w", err)
		}
		records = append(records, types.EmbeddingRecord{
			Embedding:     vec,
			TextChunk:     chunk,
			DocumentPath:  path,
			EmbeddingType: types.EmbeddingChunk,
		})
	}

	return records, nil
}
