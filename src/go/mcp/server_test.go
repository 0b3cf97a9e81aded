package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dillonfkhanna/multi-search/src/go/embedder"
	"github.com/dillonfkhanna/multi-search/src/go/indexer"
	"github.com/dillonfkhanna/multi-search/src/go/orchestrator"
	"github.com/dillonfkhanna/multi-search/src/go/types"
)

func newTestServer(t *testing.T) *Server {
	lex := indexer.NewMemoryLexicalIndex()
	vec := indexer.NewMemoryVectorStore(types.EmbeddingDimension)
	emb := embedder.NewDeterministicEmbedder(embedder.DefaultEmbedderConfig())
	orch := orchestrator.New(lex, vec, emb, orchestrator.DefaultFusionWeights())

	err := orch.Index(context.Background(), types.RawDocument{
		Path:         "/notes/example.md",
		Title:        "Example Document",
		Body:         "This document discusses test functions and search engines in general terms.",
		SourceType:   "note",
		ModifiedDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to seed test document: %v", err)
	}
	return NewServer(orch)
}

func TestServerHandleToolsList(t *testing.T) {
	server := newTestServer(t)

	req := &Request{JSONRPC: "2.0", ID: 1, Method: "tools/list"}
	resp := server.handleRequest(context.Background(), req)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("expected result to be a map")
	}
	tools, ok := result["tools"].([]ToolDefinition)
	if !ok || len(tools) != 3 {
		t.Fatalf("expected 3 tools, got %+v", result["tools"])
	}
}

func TestServerHandleToolCallSearch(t *testing.T) {
	server := newTestServer(t)

	args, _ := json.Marshal(map[string]interface{}{"query": "test functions"})
	params, _ := json.Marshal(map[string]interface{}{"name": "search_documents", "arguments": args})

	req := &Request{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: params}
	resp := server.handleRequest(context.Background(), req)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	results, ok := resp.Result.([]types.HybridSearchResult)
	if !ok {
		t.Fatalf("expected []types.HybridSearchResult, got %T", resp.Result)
	}
	if len(results) == 0 {
		t.Error("expected at least one search result")
	}
}

func TestServerHandleToolCallIndexAndDelete(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	indexArgs, _ := json.Marshal(map[string]interface{}{
		"path": "/notes/new.md", "title": "New Doc", "body": "brand new content about databases",
	})
	indexParams, _ := json.Marshal(map[string]interface{}{"name": "index_document", "arguments": indexArgs})
	indexReq := &Request{JSONRPC: "2.0", ID: 2, Method: "tools/call", Params: indexParams}

	if resp := server.handleRequest(ctx, indexReq); resp.Error != nil {
		t.Fatalf("index tool call failed: %v", resp.Error)
	}

	searchResults, err := server.orch.HybridSearch(ctx, "databases")
	if err != nil {
		t.Fatalf("HybridSearch returned error: %v", err)
	}
	if len(searchResults) == 0 {
		t.Fatal("expected the newly indexed document to be searchable")
	}

	deleteArgs, _ := json.Marshal(map[string]interface{}{"path": "/notes/new.md"})
	deleteParams, _ := json.Marshal(map[string]interface{}{"name": "delete_document", "arguments": deleteArgs})
	deleteReq := &Request{JSONRPC: "2.0", ID: 3, Method: "tools/call", Params: deleteParams}

	if resp := server.handleRequest(ctx, deleteReq); resp.Error != nil {
		t.Fatalf("delete tool call failed: %v", resp.Error)
	}

	searchResults, err = server.orch.HybridSearch(ctx, "databases")
	if err != nil {
		t.Fatalf("HybridSearch returned error: %v", err)
	}
	for _, r := range searchResults {
		if r.Path == "/notes/new.md" {
			t.Error("expected deleted document to be gone")
		}
	}
}

func TestServerHandleToolCallUnknownTool(t *testing.T) {
	server := newTestServer(t)

	params, _ := json.Marshal(map[string]interface{}{"name": "nonexistent", "arguments": json.RawMessage(`{}`)})
	req := &Request{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: params}

	resp := server.handleRequest(context.Background(), req)
	if resp.Error == nil {
		t.Fatal("expected error for unknown tool")
	}
}

func TestServerRun(t *testing.T) {
	server := newTestServer(t)
	server.input = strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n")
	output := &bytes.Buffer{}
	server.output = output

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := server.Run(ctx)
	if err != nil && err != context.DeadlineExceeded {
		t.Fatalf("unexpected error: %v", err)
	}

	outputStr := output.String()
	if !strings.Contains(outputStr, "initialized") {
		t.Error("expected initialization notification")
	}
}
