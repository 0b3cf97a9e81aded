package embedder

import (
	"context"
	"math"
	"testing"

	"github.com/dillonfkhanna/multi-search/src/go/types"
)

func TestDeterministicEmbedderDimension(t *testing.T) {
	e := NewDeterministicEmbedder(DefaultEmbedderConfig())
	defer e.Close()

	vec, err := e.Embed(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("Embed returned error: %v", err)
	}
	if len(vec) != types.EmbeddingDimension {
		t.Fatalf("expected dimension %d, got %d", types.EmbeddingDimension, len(vec))
	}
}

func TestDeterministicEmbedderUnitNorm(t *testing.T) {
	e := NewDeterministicEmbedder(DefaultEmbedderConfig())
	defer e.Close()

	vec, err := e.Embed(context.Background(), "the quick brown fox")
	if err != nil {
		t.Fatalf("Embed returned error: %v", err)
	}

	var sumSquares float64
	for _, v := range vec {
		sumSquares += float64(v) * float64(v)
	}
	norm := math.Sqrt(sumSquares)
	if math.Abs(norm-1.0) > 1e-5 {
		t.Errorf("expected unit norm within 1e-5, got %f", norm)
	}
}

func TestDeterministicEmbedderDeterministic(t *testing.T) {
	e := NewDeterministicEmbedder(DefaultEmbedderConfig())
	defer e.Close()

	ctx := context.Background()
	a, err := e.Embed(ctx, "repeatable text")
	if err != nil {
		t.Fatalf("Embed returned error: %v", err)
	}

	e2 := NewDeterministicEmbedder(DefaultEmbedderConfig())
	defer e2.Close()
	b, err := e2.Embed(ctx, "repeatable text")
	if err != nil {
		t.Fatalf("Embed returned error: %v", err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical vectors across instances at index %d: %f vs %f", i, a[i], b[i])
		}
	}
}

func TestDeterministicEmbedderRejectsEmptyText(t *testing.T) {
	e := NewDeterministicEmbedder(DefaultEmbedderConfig())
	defer e.Close()

	_, err := e.Embed(context.Background(), "   ")
	if err == nil {
		t.Fatal("expected error for empty text")
	}
	typedErr, ok := err.(*types.Error)
	if !ok {
		t.Fatalf("expected *types.Error, got %T", err)
	}
	if typedErr.Kind != types.InputInvalid {
		t.Errorf("expected InputInvalid, got %s", typedErr.Kind)
	}
}

func TestDeterministicEmbedderCaching(t *testing.T) {
	e := NewDeterministicEmbedder(DefaultEmbedderConfig())
	defer e.Close()

	ctx := context.Background()
	a, _ := e.Embed(ctx, "cache me")
	b, _ := e.Embed(ctx, "cache me")
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected cached vector to be identical at index %d", i)
		}
	}
}

func TestBuildDocumentEmbeddingsAllFields(t *testing.T) {
	e := NewDeterministicEmbedder(DefaultEmbedderConfig())
	defer e.Close()

	body := "Rust provides fearless concurrency guarantees for systems programming. " +
		"It uses ownership to enforce memory safety without a garbage collector. " +
		"Cats like naps in the sun. Dogs bark loudly outside in the yard. " +
		"The weather today is sunny and warm across the region."

	records, err := BuildDocumentEmbeddings(context.Background(), e, "Rust Concurrency", body, "/docs/rust.md")
	if err != nil {
		t.Fatalf("BuildDocumentEmbeddings returned error: %v", err)
	}

	var sawTitle, sawSummary, sawChunk bool
	for _, r := range records {
		if r.DocumentPath != "/docs/rust.md" {
			t.Errorf("expected document path to propagate, got %q", r.DocumentPath)
		}
		if len(r.Embedding) != types.EmbeddingDimension {
			t.Errorf("expected dimension %d, got %d", types.EmbeddingDimension, len(r.Embedding))
		}
		switch r.EmbeddingType {
		case types.EmbeddingTitle:
			sawTitle = true
		case types.EmbeddingSummary:
			sawSummary = true
		case types.EmbeddingChunk:
			sawChunk = true
		}
	}
	if !sawTitle {
		t.Error("expected a title record")
	}
	if !sawSummary {
		t.Error("expected a summary record")
	}
	if !sawChunk {
		t.Error("expected at least one chunk record")
	}
}

func TestBuildDocumentEmbeddingsEmptyTitleSkipped(t *testing.T) {
	e := NewDeterministicEmbedder(DefaultEmbedderConfig())
	defer e.Close()

	records, err := BuildDocumentEmbeddings(context.Background(), e, "", "Just a single short body.", "/docs/x.md")
	if err != nil {
		t.Fatalf("BuildDocumentEmbeddings returned error: %v", err)
	}
	for _, r := range records {
		if r.EmbeddingType == types.EmbeddingTitle {
			t.Error("expected no title record for an empty title")
		}
	}
}

func TestBuildDocumentEmbeddingsEmptyBody(t *testing.T) {
	e := NewDeterministicEmbedder(DefaultEmbedderConfig())
	defer e.Close()

	records, err := BuildDocumentEmbeddings(context.Background(), e, "Only A Title", "", "/docs/y.md")
	if err != nil {
		t.Fatalf("BuildDocumentEmbeddings returned error: %v", err)
	}
	if len(records) != 1 || records[0].EmbeddingType != types.EmbeddingTitle {
		t.Fatalf("expected exactly one title record for an empty body, got %+v", records)
	}
}
