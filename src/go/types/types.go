package types

import "time"

// EmbeddingDimension is the fixed width of every vector produced by the
// Embedder and stored in the VectorStore. Changing it requires re-indexing;
// schemas carry no version tag.
const EmbeddingDimension = 384

// EmbeddingType tags which granularity of a document an EmbeddingRecord
// represents.
type EmbeddingType string

const (
	EmbeddingTitle   EmbeddingType = "title"
	EmbeddingSummary EmbeddingType = "summary"
	EmbeddingChunk   EmbeddingType = "chunk"
)

// RawDocument is the ingest-time input to Orchestrator.Index.
type RawDocument struct {
	Path         string    `json:"path"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	SourceType   string    `json:"source_type"`
	Author       string    `json:"author,omitempty"`
	ModifiedDate time.Time `json:"modified_date"`
}

// LexicalRecord is the record persisted in the LexicalIndex, one per path.
// Path is a primary key: at most one record per path.
type LexicalRecord struct {
	Path         string    `json:"path"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	SourceType   string    `json:"source_type"`
	Author       string    `json:"author,omitempty"`
	ModifiedDate time.Time `json:"modified_date"`
	ContentHash  string    `json:"content_hash"`
}

// EmbeddingRecord is one row persisted in the VectorStore; many per path.
// Embedding must be L2-normalized to unit length and EmbeddingDimension wide.
type EmbeddingRecord struct {
	Embedding     []float32     `json:"embedding"`
	TextChunk     string        `json:"text_chunk"`
	DocumentPath  string        `json:"document_path"`
	EmbeddingType EmbeddingType `json:"embedding_type"`
}

// KeywordHit is one result row from LexicalIndex.Search or LookupByPath.
// Score is BM25-like; higher is better.
type KeywordHit struct {
	Path         string    `json:"path"`
	Title        string    `json:"title"`
	SourceType   string    `json:"source_type"`
	ModifiedDate time.Time `json:"modified_date"`
	Score        float64   `json:"score"`
}

// VectorHit is one result row from VectorStore.Nearest. Distance is lower-is-
// closer; TextChunk is only populated when the caller requested it.
type VectorHit struct {
	DocumentPath string  `json:"document_path"`
	Distance     float32 `json:"distance"`
	TextChunk    string  `json:"text_chunk,omitempty"`
}

// CombinedScore is the query-time, in-memory fusion accumulator keyed by
// document path.
type CombinedScore struct {
	Title        string
	SourceType   string
	ModifiedDate time.Time
	RRFScore     float64
	BestChunk    string
}

// HybridSearchResult is one row of Orchestrator.HybridSearch's output.
type HybridSearchResult struct {
	Path              string    `json:"path"`
	Title             string    `json:"title"`
	SourceType        string    `json:"source_type"`
	ModifiedDate      time.Time `json:"modified_date"`
	FinalScore        float64   `json:"final_score"`
	BestMatchingChunk string    `json:"best_matching_chunk,omitempty"`
}
