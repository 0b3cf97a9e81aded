//go:build zoekt_query
// +build zoekt_query

package indexer

import (
	"context"

	"github.com/sourcegraph/zoekt/query"

	"github.com/dillonfkhanna/multi-search/src/go/types"
)

// RealLexicalIndex uses zoekt's query parser for term extraction while
// delegating storage and BM25 scoring to the same engine as
// MemoryLexicalIndex. A "quoted phrase" is parsed as one pattern, but its
// words are then scored as separate terms; word adjacency is not checked. It
// exists as a distinct type so the zoekt_query build tag exercises the real
// query.Parse dependency rather than the stdlib regexp tokenizer.
type RealLexicalIndex struct {
	*MemoryLexicalIndex
}

// NewRealLexicalIndex constructs a RealLexicalIndex with an empty store.
func NewRealLexicalIndex() *RealLexicalIndex {
	return &RealLexicalIndex{MemoryLexicalIndex: NewMemoryLexicalIndex()}
}

// Search parses query through zoekt's query.Parse, tokenizes every literal
// pattern it yields (a double-quoted phrase included) into words, and
// scores those words with the shared BM25 engine. If parsing fails, the raw
// query is tokenized instead.
func (r *RealLexicalIndex) Search(ctx context.Context, q string) ([]types.KeywordHit, error) {
	parsed, err := query.Parse(q)
	if err != nil {
		return r.searchTerms(ctx, dedupeTerms(tokenize(q)))
	}

	var words []string
	for _, phrase := range collectPatterns(parsed) {
		words = append(words, tokenize(phrase)...)
	}
	if len(words) == 0 {
		words = tokenize(q)
	}
	return r.searchTerms(ctx, dedupeTerms(words))
}

// collectPatterns walks a parsed zoekt query and flattens every literal
// substring/regexp pattern it contains, mirroring the type-switch the
// teacher's enhanced-BM25 scorer uses to interpret query.Q.
func collectPatterns(q query.Q) []string {
	switch v := q.(type) {
	case *query.Substring:
		return []string{v.Pattern}
	case *query.Regexp:
		return []string{v.Regexp.String()}
	case *query.And:
		var out []string
		for _, child := range v.Children {
			out = append(out, collectPatterns(child)...)
		}
		return out
	case *query.Or:
		var out []string
		for _, child := range v.Children {
			out = append(out, collectPatterns(child)...)
		}
		return out
	default:
		return nil
	}
}
