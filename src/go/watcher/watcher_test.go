package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dillonfkhanna/multi-search/src/go/embedder"
	"github.com/dillonfkhanna/multi-search/src/go/indexer"
	"github.com/dillonfkhanna/multi-search/src/go/orchestrator"
	"github.com/dillonfkhanna/multi-search/src/go/types"
)

func newTestOrchestrator() *orchestrator.Orchestrator {
	lex := indexer.NewMemoryLexicalIndex()
	vec := indexer.NewMemoryVectorStore(types.EmbeddingDimension)
	emb := embedder.NewDeterministicEmbedder(embedder.DefaultEmbedderConfig())
	return orchestrator.New(lex, vec, emb, orchestrator.DefaultFusionWeights())
}

func TestWatcherIndexesNewFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "watcher-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	orch := newTestOrchestrator()
	w, err := New(orch, 50, "note", nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	if err := w.AddPath(tmpDir); err != nil {
		t.Fatalf("failed to add path: %v", err)
	}

	testFile := filepath.Join(tmpDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("Searchable Heading\n\nSome body content about watchers and filesystems."), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		results, err := orch.HybridSearch(ctx, "watchers")
		if err != nil {
			t.Fatalf("HybridSearch returned error: %v", err)
		}
		for _, r := range results {
			if r.Path == testFile {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("timed out waiting for watcher to index the new file")
}

func TestIgnorePatterns(t *testing.T) {
	orch := newTestOrchestrator()
	w, err := New(orch, 100, "note", nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Close()

	tests := []struct {
		path     string
		expected bool
	}{
		{"/path/to/.git/config", true},
		{"/path/to/node_modules/pkg", true},
		{"/path/to/file.tmp", true},
		{"/path/to/source.md", false},
	}

	for _, tt := range tests {
		got := w.shouldIgnore(tt.path)
		if got != tt.expected {
			t.Errorf("shouldIgnore(%s) = %v, want %v", tt.path, got, tt.expected)
		}
	}
}

func TestDefaultParserUsesFirstLineAsTitle(t *testing.T) {
	title, body, err := DefaultParser("/a.md", []byte("\n  My Title  \nrest of the body"))
	if err != nil {
		t.Fatalf("DefaultParser returned error: %v", err)
	}
	if title != "My Title" {
		t.Errorf("expected title %q, got %q", "My Title", title)
	}
	if body == "" {
		t.Error("expected non-empty body")
	}
}
