package indexer

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/dillonfkhanna/multi-search/src/go/hasher"
	"github.com/dillonfkhanna/multi-search/src/go/types"
)

// resultCap is the maximum number of rows LexicalIndex.Search returns
// upstream of fusion. VectorStore.Nearest is bounded by its k argument
// instead.
const resultCap = 20

// LexicalIndex persists one LexicalRecord per path and answers BM25-ranked
// keyword queries over title, body and author. Path is a primary key.
// Implementations must be safe for concurrent use.
type LexicalIndex interface {
	// UpsertBatch inserts or replaces records, one commit per call.
	UpsertBatch(ctx context.Context, records []types.LexicalRecord) error

	// Update replaces the record at record.Path, or inserts it if absent.
	Update(ctx context.Context, record types.LexicalRecord) error

	// Delete removes the record at path. Deleting an absent path is a
	// no-op, not an error.
	Delete(ctx context.Context, path string) error

	// Search runs a BM25 ranked query over title, body and author,
	// matching only records that contain every query term, and returns
	// at most resultCap hits ordered by descending score.
	Search(ctx context.Context, query string) ([]types.KeywordHit, error)

	// LookupByPath returns the stored record for path, or ok=false if
	// absent.
	LookupByPath(ctx context.Context, path string) (types.LexicalRecord, bool, error)

	// Stats reports the current size of the index.
	Stats() LexicalIndexStats

	// Close releases resources held by the index.
	Close() error
}

// LexicalIndexStats summarizes a LexicalIndex's contents.
type LexicalIndexStats struct {
	TotalDocuments int
}

const bm25K1 = 1.2
const bm25B = 0.75

var tokenRe = regexp.MustCompile(`[a-zA-Z0-9]+`)

func tokenize(text string) []string {
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}

// MemoryLexicalIndex is the dependency-free default LexicalIndex: an
// in-memory BM25 scorer over title+body+author, keyed by path. It is the
// same scoring formula zoekt uses under the hood, hand-rolled here so the
// default build carries no CGO or native-library dependency.
type MemoryLexicalIndex struct {
	mu          sync.RWMutex
	records     map[string]types.LexicalRecord
	termFreqs   map[string]map[string]int // path -> term -> freq
	docFreqs    map[string]int            // term -> number of docs containing it
	totalLength int
}

// NewMemoryLexicalIndex constructs an empty MemoryLexicalIndex.
func NewMemoryLexicalIndex() *MemoryLexicalIndex {
	return &MemoryLexicalIndex{
		records:   make(map[string]types.LexicalRecord),
		termFreqs: make(map[string]map[string]int),
		docFreqs:  make(map[string]int),
	}
}

func (idx *MemoryLexicalIndex) UpsertBatch(ctx context.Context, records []types.LexicalRecord) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, r := range records {
		idx.upsertLocked(r)
	}
	return nil
}

func (idx *MemoryLexicalIndex) Update(ctx context.Context, record types.LexicalRecord) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.upsertLocked(record)
	return nil
}

func (idx *MemoryLexicalIndex) upsertLocked(r types.LexicalRecord) {
	if r.ContentHash == "" {
		r.ContentHash = hasher.Hash(r.Body)
	}
	idx.removeLocked(r.Path)

	idx.records[r.Path] = r
	terms := tokenize(r.Title + " " + r.Body + " " + r.Author)
	freqs := make(map[string]int, len(terms))
	for _, t := range terms {
		freqs[t]++
	}
	idx.termFreqs[r.Path] = freqs
	for t := range freqs {
		idx.docFreqs[t]++
	}
	idx.totalLength += len(terms)
}

func (idx *MemoryLexicalIndex) Delete(ctx context.Context, path string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.removeLocked(path)
	return nil
}

func (idx *MemoryLexicalIndex) removeLocked(path string) {
	freqs, ok := idx.termFreqs[path]
	if !ok {
		return
	}
	for t := range freqs {
		idx.docFreqs[t]--
		if idx.docFreqs[t] <= 0 {
			delete(idx.docFreqs, t)
		}
	}
	idx.totalLength -= docLength(freqs)
	delete(idx.termFreqs, path)
	delete(idx.records, path)
}

func docLength(freqs map[string]int) int {
	n := 0
	for _, f := range freqs {
		n += f
	}
	return n
}

func (idx *MemoryLexicalIndex) Search(ctx context.Context, query string) ([]types.KeywordHit, error) {
	return idx.searchTerms(ctx, dedupeTerms(tokenize(query)))
}

func (idx *MemoryLexicalIndex) searchTerms(ctx context.Context, queryTerms []string) ([]types.KeywordHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(queryTerms) == 0 || len(idx.records) == 0 {
		return nil, nil
	}

	totalDocs := float64(len(idx.records))
	avgDocLen := float64(idx.totalLength) / totalDocs

	type scored struct {
		path  string
		score float64
	}
	var results []scored
	for path, freqs := range idx.termFreqs {
		docLen := float64(docLength(freqs))
		var score float64
		for _, term := range queryTerms {
			tf := float64(freqs[term])
			if tf == 0 {
				// Every query term must appear in the record.
				score = 0
				break
			}
			df := float64(idx.docFreqs[term])
			if df == 0 {
				continue
			}
			idf := math.Log((totalDocs-df+0.5)/(df+0.5) + 1.0)
			tfComponent := (tf * (bm25K1 + 1)) / (tf + bm25K1*(1-bm25B+bm25B*(docLen/avgDocLen)))
			score += idf * tfComponent
		}
		if score > 0 {
			results = append(results, scored{path: path, score: score})
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].score > results[j].score })
	if len(results) > resultCap {
		results = results[:resultCap]
	}

	hits := make([]types.KeywordHit, len(results))
	for i, r := range results {
		rec := idx.records[r.path]
		hits[i] = types.KeywordHit{
			Path:         rec.Path,
			Title:        rec.Title,
			SourceType:   rec.SourceType,
			ModifiedDate: rec.ModifiedDate,
			Score:        r.score,
		}
	}
	return hits, nil
}

func (idx *MemoryLexicalIndex) LookupByPath(ctx context.Context, path string) (types.LexicalRecord, bool, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	rec, ok := idx.records[path]
	return rec, ok, nil
}

func (idx *MemoryLexicalIndex) Stats() LexicalIndexStats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return LexicalIndexStats{TotalDocuments: len(idx.records)}
}

func (idx *MemoryLexicalIndex) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.records = make(map[string]types.LexicalRecord)
	idx.termFreqs = make(map[string]map[string]int)
	idx.docFreqs = make(map[string]int)
	idx.totalLength = 0
	return nil
}

func dedupeTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
