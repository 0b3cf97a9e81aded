package orchestrator

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dillonfkhanna/multi-search/src/go/embedder"
	"github.com/dillonfkhanna/multi-search/src/go/indexer"
	"github.com/dillonfkhanna/multi-search/src/go/types"
)

func newTestOrchestrator() *Orchestrator {
	lex := indexer.NewMemoryLexicalIndex()
	vec := indexer.NewMemoryVectorStore(types.EmbeddingDimension)
	emb := embedder.NewDeterministicEmbedder(embedder.DefaultEmbedderConfig())
	return New(lex, vec, emb, DefaultFusionWeights())
}

func TestIndexAndSearchFindsDocument(t *testing.T) {
	o := newTestOrchestrator()
	ctx := context.Background()

	err := o.Index(ctx, types.RawDocument{
		Path:         "/notes/rust.md",
		Title:        "Rust Concurrency",
		Body:         "Rust provides fearless concurrency guarantees. It uses ownership to enforce memory safety. This is a longer document about systems programming and threads.",
		SourceType:   "note",
		ModifiedDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("Index returned error: %v", err)
	}

	results, err := o.HybridSearch(ctx, "concurrency")
	if err != nil {
		t.Fatalf("HybridSearch returned error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}
	if results[0].Path != "/notes/rust.md" {
		t.Errorf("expected top result to be /notes/rust.md, got %s", results[0].Path)
	}
}

func TestIndexRejectsEmptyPath(t *testing.T) {
	o := newTestOrchestrator()
	err := o.Index(context.Background(), types.RawDocument{Title: "x", Body: "y"})
	if err == nil {
		t.Fatal("expected error for empty path")
	}
	typedErr, ok := err.(*types.Error)
	if !ok || typedErr.Kind != types.InputInvalid {
		t.Fatalf("expected InputInvalid *types.Error, got %v", err)
	}
}

func TestIndexRejectsEmptyTitleAndBody(t *testing.T) {
	o := newTestOrchestrator()
	err := o.Index(context.Background(), types.RawDocument{Path: "/a.md"})
	if err == nil {
		t.Fatal("expected error for empty title and body")
	}
}

func TestIndexAllowsEmptyBodyWithTitleOnly(t *testing.T) {
	o := newTestOrchestrator()
	err := o.Index(context.Background(), types.RawDocument{Path: "/a.md", Title: "Just A Title"})
	if err != nil {
		t.Fatalf("expected no error for title-only document, got %v", err)
	}
}

func TestReindexingSamePathIsIdempotent(t *testing.T) {
	o := newTestOrchestrator()
	ctx := context.Background()
	doc := types.RawDocument{
		Path:         "/notes/a.md",
		Title:        "A Document",
		Body:         "Some searchable content appears here for testing idempotent reindexing behavior across multiple passes.",
		ModifiedDate: time.Now(),
	}
	for i := 0; i < 3; i++ {
		if err := o.Index(ctx, doc); err != nil {
			t.Fatalf("Index pass %d returned error: %v", i, err)
		}
	}

	results, err := o.HybridSearch(ctx, "searchable")
	if err != nil {
		t.Fatalf("HybridSearch returned error: %v", err)
	}
	count := 0
	for _, r := range results {
		if r.Path == "/notes/a.md" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one result for a reindexed path, got %d", count)
	}
}

func TestDeleteRemovesFromSearch(t *testing.T) {
	o := newTestOrchestrator()
	ctx := context.Background()
	o.Index(ctx, types.RawDocument{
		Path:         "/notes/b.md",
		Title:        "Deletable Document",
		Body:         "This document should disappear entirely after deletion is requested by the caller.",
		ModifiedDate: time.Now(),
	})

	if err := o.Delete(ctx, "/notes/b.md"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	results, err := o.HybridSearch(ctx, "deletable")
	if err != nil {
		t.Fatalf("HybridSearch returned error: %v", err)
	}
	for _, r := range results {
		if r.Path == "/notes/b.md" {
			t.Error("expected deleted document to be absent from search results")
		}
	}
}

func TestDeleteAbsentPathIsNoOp(t *testing.T) {
	o := newTestOrchestrator()
	if err := o.Delete(context.Background(), "/missing.md"); err != nil {
		t.Fatalf("expected no error deleting an absent path, got %v", err)
	}
}

func TestHybridSearchRejectsEmptyQuery(t *testing.T) {
	o := newTestOrchestrator()
	_, err := o.HybridSearch(context.Background(), "   ")
	if err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestHybridSearchResultsCappedAtTwenty(t *testing.T) {
	o := newTestOrchestrator()
	ctx := context.Background()
	for i := 0; i < 30; i++ {
		o.Index(ctx, types.RawDocument{
			Path:         fmt.Sprintf("/doc-%02d.md", i),
			Title:        "Shared Keyword Document",
			Body:         "Every document in this corpus shares the word keyword for ranking purposes in this test.",
			ModifiedDate: time.Now(),
		})
	}
	results, err := o.HybridSearch(ctx, "keyword")
	if err != nil {
		t.Fatalf("HybridSearch returned error: %v", err)
	}
	if len(results) > 20 {
		t.Errorf("expected at most 20 results, got %d", len(results))
	}
}

func TestCustomFusionWeightsChangeResultCap(t *testing.T) {
	lex := indexer.NewMemoryLexicalIndex()
	vec := indexer.NewMemoryVectorStore(types.EmbeddingDimension)
	emb := embedder.NewDeterministicEmbedder(embedder.DefaultEmbedderConfig())
	weights := DefaultFusionWeights()
	weights.ResultCap = 3
	o := New(lex, vec, emb, weights)

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		o.Index(ctx, types.RawDocument{
			Path:         fmt.Sprintf("/doc-%02d.md", i),
			Title:        "Shared Keyword Document",
			Body:         "Every document in this corpus shares the word keyword for ranking purposes in this test.",
			ModifiedDate: time.Now(),
		})
	}

	results, err := o.HybridSearch(ctx, "keyword")
	if err != nil {
		t.Fatalf("HybridSearch returned error: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected results capped at the configured ResultCap of 3, got %d", len(results))
	}
}

func TestNewFallsBackToDefaultFusionWeightsOnZeroValue(t *testing.T) {
	lex := indexer.NewMemoryLexicalIndex()
	vec := indexer.NewMemoryVectorStore(types.EmbeddingDimension)
	emb := embedder.NewDeterministicEmbedder(embedder.DefaultEmbedderConfig())
	o := New(lex, vec, emb, FusionWeights{})
	if o.fusion != DefaultFusionWeights() {
		t.Errorf("expected zero-value FusionWeights to fall back to defaults, got %+v", o.fusion)
	}
}

func TestRecencyBoundaries(t *testing.T) {
	now := time.Now()
	fresh := recency(now, now)
	if fresh != recencyCeil {
		t.Errorf("expected a document modified now to score %v, got %v", recencyCeil, fresh)
	}

	old := recency(now.Add(-10*365*24*time.Hour), now)
	if old != recencyFloor {
		t.Errorf("expected a very old document to clamp to the floor %v, got %v", recencyFloor, old)
	}
}

func TestRRFMonotonicDecay(t *testing.T) {
	w := DefaultFusionWeights()
	prev := w.rrf(0)
	for i := 1; i < 10; i++ {
		cur := w.rrf(i)
		if cur >= prev {
			t.Fatalf("expected rrf to strictly decrease with rank, rank %d: %v >= %v", i, cur, prev)
		}
		prev = cur
	}
	if got, want := w.rrf(0), 1.0/61.0; got != want {
		t.Errorf("expected rrf(0) = 1/61, got %v", got)
	}
}
