// Package orchestrator wires the LexicalIndex, VectorStore and Embedder
// together into the document lifecycle (index/update/delete) and the
// hybrid search query path.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dillonfkhanna/multi-search/src/go/embedder"
	"github.com/dillonfkhanna/multi-search/src/go/hasher"
	"github.com/dillonfkhanna/multi-search/src/go/indexer"
	"github.com/dillonfkhanna/multi-search/src/go/types"
)

// Orchestrator is the single entry point callers (CLI, HTTP API, MCP
// server, filesystem watcher) use to index documents and run hybrid
// searches. It holds no document state of its own; everything lives in the
// LexicalIndex and VectorStore it was constructed with.
type Orchestrator struct {
	lexical  indexer.LexicalIndex
	vectors  indexer.VectorStore
	embedder embedder.Embedder
	fusion   FusionWeights
}

// New constructs an Orchestrator over the given stores and embedder. None
// of the three may be nil. fusion controls the hybrid search ranking;
// passing a zero-value FusionWeights{} falls back to DefaultFusionWeights()
// so callers that don't care about tuning can't accidentally build an
// Orchestrator that divides by zero or returns zero results.
func New(lexical indexer.LexicalIndex, vectors indexer.VectorStore, emb embedder.Embedder, fusion FusionWeights) *Orchestrator {
	if fusion == (FusionWeights{}) {
		fusion = DefaultFusionWeights()
	}
	return &Orchestrator{lexical: lexical, vectors: vectors, embedder: emb, fusion: fusion}
}

// Index adds or replaces a document: the title/body/author go to the
// LexicalIndex, and title/summary/chunk embeddings go to the VectorStore.
// Indexing the same path twice is idempotent — the prior vectors are
// deleted before the new ones are added, so no duplicates accumulate.
func (o *Orchestrator) Index(ctx context.Context, doc types.RawDocument) error {
	if strings.TrimSpace(doc.Path) == "" {
		return types.NewError("orchestrator.Index", types.InputInvalid, fmt.Errorf("document path is required"))
	}
	if strings.TrimSpace(doc.Title) == "" && strings.TrimSpace(doc.Body) == "" {
		return types.NewError("orchestrator.Index", types.InputInvalid, fmt.Errorf("document must have a title or a body"))
	}

	records, err := embedder.BuildDocumentEmbeddings(ctx, o.embedder, doc.Title, doc.Body, doc.Path)
	if err != nil {
		return fmt.Errorf("build embeddings for %s: %w", doc.Path, err)
	}

	lexicalRecord := types.LexicalRecord{
		Path:         doc.Path,
		Title:        doc.Title,
		Body:         doc.Body,
		SourceType:   doc.SourceType,
		Author:       doc.Author,
		ModifiedDate: doc.ModifiedDate,
		ContentHash:  hasher.Hash(doc.Body),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := o.vectors.DeleteByPath(gctx, doc.Path); err != nil {
			return fmt.Errorf("clear prior vectors for %s: %w", doc.Path, err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := o.vectors.AddBatch(gctx, records); err != nil {
			return fmt.Errorf("add vectors for %s: %w", doc.Path, err)
		}
		return nil
	})
	g.Go(func() error {
		if err := o.lexical.Update(gctx, lexicalRecord); err != nil {
			return fmt.Errorf("upsert lexical record for %s: %w", doc.Path, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return types.NewError("orchestrator.Index", types.StoreFailure, err)
	}
	return nil
}

// IndexStatus summarizes the current size of both stores, returned to
// callers over the HTTP API's /v1/indexStatus endpoint.
type IndexStatus struct {
	LexicalDocuments int `json:"lexical_documents"`
	TotalVectors     int `json:"total_vectors"`
	VectorDimension  int `json:"vector_dimension"`
}

// Status reports the current size of the lexical index and vector store.
func (o *Orchestrator) Status() IndexStatus {
	lexStats := o.lexical.Stats()
	vecStats := o.vectors.Stats()
	return IndexStatus{
		LexicalDocuments: lexStats.TotalDocuments,
		TotalVectors:     vecStats.TotalVectors,
		VectorDimension:  vecStats.Dimension,
	}
}

// Update replaces the document at doc.Path. It is equivalent to Index.
func (o *Orchestrator) Update(ctx context.Context, doc types.RawDocument) error {
	return o.Index(ctx, doc)
}

// Delete removes every trace of path from both stores. Deleting an absent
// path is a no-op, not an error.
func (o *Orchestrator) Delete(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return types.NewError("orchestrator.Delete", types.InputInvalid, fmt.Errorf("path is required"))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return o.lexical.Delete(gctx, path) })
	g.Go(func() error { return o.vectors.DeleteByPath(gctx, path) })
	if err := g.Wait(); err != nil {
		return types.NewError("orchestrator.Delete", types.StoreFailure, err)
	}
	return nil
}
