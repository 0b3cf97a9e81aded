package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dillonfkhanna/multi-search/src/go/embedder"
	"github.com/dillonfkhanna/multi-search/src/go/indexer"
	"github.com/dillonfkhanna/multi-search/src/go/orchestrator"
	"github.com/dillonfkhanna/multi-search/src/go/types"
	"github.com/dillonfkhanna/multi-search/src/go/watcher"
)

func newIntegrationOrchestrator() *orchestrator.Orchestrator {
	lex := indexer.NewMemoryLexicalIndex()
	vec := indexer.NewMemoryVectorStore(types.EmbeddingDimension)
	emb := embedder.NewDeterministicEmbedder(embedder.DefaultEmbedderConfig())
	return orchestrator.New(lex, vec, emb, orchestrator.DefaultFusionWeights())
}

// TestEndToEndSearch writes a small document tree to disk, indexes it the
// way the index CLI command does (parse with the default parser, then
// orchestrator.Index), and checks that hybrid search surfaces the right
// document for a handful of queries.
func TestEndToEndSearch(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "multi-search-test-*")
	require.NoError(t, err, "failed to create temp directory")
	defer os.RemoveAll(tmpDir)

	testFiles := map[string]string{
		"release-notes.md": "Release Notes v2.3\nThis release adds OAuth2 authentication support and fixes a memory leak in the indexer.",
		"onboarding.md":     "New Hire Onboarding\nEvery new engineer should read the architecture overview and set up their local OAuth2 credentials before day one.",
		"meeting.md":        "Weekly Sync Notes\nDiscussed the migration timeline and assigned the memory leak investigation to the platform team.",
	}
	for name, content := range testFiles {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "failed to write test file %s", name)
	}

	orch := newIntegrationOrchestrator()
	ctx := context.Background()

	for name := range testFiles {
		path := filepath.Join(tmpDir, name)
		content, err := os.ReadFile(path)
		require.NoError(t, err, "failed to read %s", name)
		title, body, err := watcher.DefaultParser(path, content)
		require.NoError(t, err, "failed to parse %s", name)
		err = orch.Index(ctx, types.RawDocument{
			Path:         path,
			Title:        title,
			Body:         body,
			SourceType:   "note",
			ModifiedDate: time.Now(),
		})
		require.NoError(t, err, "failed to index %s", name)
	}

	tests := []struct {
		name     string
		query    string
		wantPath string
	}{
		{name: "OAuth2 appears in two documents", query: "OAuth2 authentication", wantPath: "release-notes.md"},
		{name: "memory leak appears in two documents", query: "memory leak", wantPath: "release-notes.md"},
		{name: "onboarding specific term", query: "new hire architecture overview", wantPath: "onboarding.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := orch.HybridSearch(ctx, tt.query)
			require.NoError(t, err, "HybridSearch failed")
			require.NotEmpty(t, results, "expected at least one result for %q", tt.query)
			if !assert.Equal(t, tt.wantPath, filepath.Base(results[0].Path), "unexpected top result") {
				for _, r := range results {
					t.Logf("  - %s (score: %.4f)", r.Path, r.FinalScore)
				}
			}
		})
	}
}

// TestSearchStatusReflectsIndexedDocuments exercises orchestrator.Status,
// the data the /v1/indexStatus endpoint surfaces.
func TestSearchStatusReflectsIndexedDocuments(t *testing.T) {
	orch := newIntegrationOrchestrator()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := orch.Index(ctx, types.RawDocument{
			Path:         filepath.Join("/docs", "doc.md"),
			Title:        "Doc",
			Body:         "shared body content for status reporting test",
			ModifiedDate: time.Now(),
		})
		require.NoError(t, err, "Index failed")
	}

	status := orch.Status()
	assert.Equal(t, 1, status.LexicalDocuments, "expected reindexing the same path to leave exactly one lexical document")
	assert.Equal(t, types.EmbeddingDimension, status.VectorDimension)
}
