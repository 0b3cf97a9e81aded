package orchestrator

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dillonfkhanna/multi-search/src/go/types"
)

const (
	recencyHalfLifeDays = 365.0
	recencyFloor        = 0.01
	recencyCeil         = 1.0

	// vectorPartitionDepth is the number of hits pulled from each vector
	// partition (title/summary/chunk) before fusion, fixed independently of
	// FusionWeights.ResultCap, which only bounds the final returned list.
	vectorPartitionDepth = 10
)

// FusionWeights are the tunables that control how keyword and vector hits
// are combined into a single ranked result list. DefaultFusionWeights
// matches the values this engine shipped with before the weights became
// operator-configurable; callers normally source these from
// config.Config.Fusion rather than constructing them by hand.
type FusionWeights struct {
	// RRFConstant is the Reciprocal Rank Fusion smoothing constant: rrf(rank) =
	// 1/(RRFConstant+rank+1), rank zero-indexed.
	RRFConstant float64

	KeywordBoost float64
	TitleBoost   float64
	SummaryBoost float64
	ChunkBoost   float64

	RecencyWeight float64
	RRFWeight     float64

	ResultCap int
}

// DefaultFusionWeights returns the weights this engine used before fusion
// tuning was exposed through config.Config.
func DefaultFusionWeights() FusionWeights {
	return FusionWeights{
		RRFConstant:   60.0,
		KeywordBoost:  1.2,
		TitleBoost:    1.1,
		SummaryBoost:  1.0,
		ChunkBoost:    1.0,
		RecencyWeight: 0.3,
		RRFWeight:     0.7,
		ResultCap:     20,
	}
}

func (w FusionWeights) rrf(rank int) float64 {
	return 1.0 / (w.RRFConstant + float64(rank) + 1.0)
}

// recency converts a document's age into a [recencyFloor, recencyCeil]
// decay score exp(-ageDays/365): 1.0 for a document modified now or in the
// future, about 0.37 at one year, and clamped to recencyFloor once the
// decay drops below it (after roughly 4.6 years).
func recency(modifiedDate time.Time, now time.Time) float64 {
	ageDays := now.Sub(modifiedDate).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	score := math.Exp(-ageDays / recencyHalfLifeDays)
	if score < recencyFloor {
		return recencyFloor
	}
	if score > recencyCeil {
		return recencyCeil
	}
	return score
}

// HybridSearch runs the lexical and vector searches concurrently, fuses
// them with boosted Reciprocal Rank Fusion plus a recency term, and returns
// at most o.fusion.ResultCap results ordered by descending final score.
func (o *Orchestrator) HybridSearch(ctx context.Context, query string) ([]types.HybridSearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, types.NewError("orchestrator.HybridSearch", types.InputInvalid, fmt.Errorf("query must not be empty"))
	}

	var lexicalHits []types.KeywordHit
	var queryVector []float32

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hits, err := o.lexical.Search(gctx, query)
		if err != nil {
			return fmt.Errorf("lexical search: %w", err)
		}
		lexicalHits = hits
		return nil
	})
	g.Go(func() error {
		vec, err := o.embedder.Embed(gctx, query)
		if err != nil {
			return fmt.Errorf("embed query: %w", err)
		}
		queryVector = vec
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, types.NewError("orchestrator.HybridSearch", types.TaskFailure, err)
	}

	var titleHits, summaryHits, chunkHits []types.VectorHit
	g2, gctx2 := errgroup.WithContext(ctx)
	g2.Go(func() error {
		hits, err := o.vectors.Nearest(gctx2, queryVector, types.EmbeddingTitle, vectorPartitionDepth, false)
		if err != nil {
			return fmt.Errorf("title vector search: %w", err)
		}
		titleHits = hits
		return nil
	})
	g2.Go(func() error {
		hits, err := o.vectors.Nearest(gctx2, queryVector, types.EmbeddingSummary, vectorPartitionDepth, false)
		if err != nil {
			return fmt.Errorf("summary vector search: %w", err)
		}
		summaryHits = hits
		return nil
	})
	g2.Go(func() error {
		hits, err := o.vectors.Nearest(gctx2, queryVector, types.EmbeddingChunk, vectorPartitionDepth, true)
		if err != nil {
			return fmt.Errorf("chunk vector search: %w", err)
		}
		chunkHits = hits
		return nil
	})
	if err := g2.Wait(); err != nil {
		return nil, types.NewError("orchestrator.HybridSearch", types.TaskFailure, err)
	}

	combined := make(map[string]*types.CombinedScore)

	addKeyword := func(path string, rank int) *types.CombinedScore {
		cs, ok := combined[path]
		if !ok {
			cs = &types.CombinedScore{}
			combined[path] = cs
		}
		cs.RRFScore += o.fusion.KeywordBoost * o.fusion.rrf(rank)
		return cs
	}
	for rank, hit := range lexicalHits {
		cs := addKeyword(hit.Path, rank)
		cs.Title = hit.Title
		cs.SourceType = hit.SourceType
		cs.ModifiedDate = hit.ModifiedDate
	}

	addVector := func(hits []types.VectorHit, boost float64, captureText bool) {
		for rank, hit := range hits {
			cs, ok := combined[hit.DocumentPath]
			if !ok {
				cs = &types.CombinedScore{}
				combined[hit.DocumentPath] = cs
			}
			cs.RRFScore += boost * o.fusion.rrf(rank)
			if captureText && hit.TextChunk != "" && cs.BestChunk == "" {
				cs.BestChunk = hit.TextChunk
			}
		}
	}
	addVector(titleHits, o.fusion.TitleBoost, false)
	addVector(summaryHits, o.fusion.SummaryBoost, false)
	addVector(chunkHits, o.fusion.ChunkBoost, true)

	now := time.Now()
	results := make([]types.HybridSearchResult, 0, len(combined))
	for path, cs := range combined {
		if cs.Title == "" && cs.ModifiedDate.IsZero() {
			rec, ok, err := o.lexical.LookupByPath(ctx, path)
			if err != nil {
				return nil, types.NewError("orchestrator.HybridSearch", types.StoreFailure, err)
			}
			if ok {
				cs.Title = rec.Title
				cs.SourceType = rec.SourceType
				cs.ModifiedDate = rec.ModifiedDate
			} else {
				// A path surfaced only via a vector hit with no lexical
				// record is an inconsistency between the two stores;
				// synthesize a placeholder rather than return empty metadata.
				cs.Title = "Document: " + filepath.Base(path)
				cs.SourceType = "Unknown"
				cs.ModifiedDate = time.Unix(0, 0).UTC()
			}
		}

		finalScore := o.fusion.RecencyWeight*recency(cs.ModifiedDate, now) + o.fusion.RRFWeight*cs.RRFScore
		results = append(results, types.HybridSearchResult{
			Path:              path,
			Title:             cs.Title,
			SourceType:        cs.SourceType,
			ModifiedDate:      cs.ModifiedDate,
			FinalScore:        finalScore,
			BestMatchingChunk: cs.BestChunk,
		})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].FinalScore > results[j].FinalScore })
	if len(results) > o.fusion.ResultCap {
		results = results[:o.fusion.ResultCap]
	}
	return results, nil
}
