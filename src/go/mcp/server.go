// Package mcp exposes the Orchestrator over a hand-rolled JSON-RPC
// 2.0 stdio protocol, the way an on-device agent drives this engine
// without a network port.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dillonfkhanna/multi-search/src/go/orchestrator"
	"github.com/dillonfkhanna/multi-search/src/go/types"
)

// Request represents an MCP JSON-RPC request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents an MCP JSON-RPC response.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents a JSON-RPC error.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Notification represents an MCP notification. NotificationID tags it for
// correlation in server-side logs; JSON-RPC notifications carry no
// response, so this is informational only.
type Notification struct {
	JSONRPC        string      `json:"jsonrpc"`
	Method         string      `json:"method"`
	Params         interface{} `json:"params,omitempty"`
	NotificationID string      `json:"notification_id"`
}

// ToolDefinition describes one callable tool.
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// Server implements the MCP stdio protocol over an Orchestrator, exposing
// search_documents, index_document, and delete_document as tools.
type Server struct {
	input   io.Reader
	output  io.Writer
	orch    *orchestrator.Orchestrator
	mu      sync.Mutex
	running bool
}

// NewServer creates a new MCP server over orch, reading requests from
// stdin and writing responses to stdout.
func NewServer(orch *orchestrator.Orchestrator) *Server {
	return NewServerWithIO(orch, os.Stdin, os.Stdout)
}

// NewServerWithIO creates an MCP server over orch using the given input
// and output streams instead of stdin/stdout, for embedding the protocol
// in a test harness or an alternate transport.
func NewServerWithIO(orch *orchestrator.Orchestrator, input io.Reader, output io.Writer) *Server {
	return &Server{
		input:  input,
		output: output,
		orch:   orch,
	}
}

// Run starts the MCP server, reading requests line by line from input until
// ctx is cancelled or input is exhausted.
func (s *Server) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.running = true
	s.mu.Unlock()

	scanner := bufio.NewScanner(s.input)
	encoder := json.NewEncoder(s.output)

	if err := s.sendInitNotification(encoder); err != nil {
		return fmt.Errorf("failed to send init notification: %w", err)
	}

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			continue
		}

		if resp := s.handleRequest(ctx, &req); resp != nil {
			if err := encoder.Encode(resp); err != nil {
				return fmt.Errorf("failed to encode response: %w", err)
			}
		}
	}

	return scanner.Err()
}

func (s *Server) sendInitNotification(encoder *json.Encoder) error {
	notification := Notification{
		JSONRPC: "2.0",
		Method:  "initialized",
		Params: map[string]interface{}{
			"protocolVersion": "1.0",
			"serverInfo": map[string]interface{}{
				"name":    "multi-search",
				"version": "0.1.0",
			},
		},
		NotificationID: uuid.NewString(),
	}
	return encoder.Encode(notification)
}

func (s *Server) handleRequest(ctx context.Context, req *Request) *Response {
	resp := &Response{JSONRPC: "2.0", ID: req.ID}

	switch req.Method {
	case "initialize":
		resp.Result = s.handleInitialize()
	case "tools/list":
		resp.Result = s.handleToolsList()
	case "tools/call":
		result, err := s.handleToolCall(ctx, req.Params)
		if err != nil {
			resp.Error = &Error{Code: -32603, Message: err.Error()}
		} else {
			resp.Result = result
		}
	default:
		resp.Error = &Error{Code: -32601, Message: "method not found"}
	}

	return resp
}

func (s *Server) handleInitialize() interface{} {
	return map[string]interface{}{
		"protocolVersion": "1.0",
		"capabilities":    map[string]interface{}{"tools": map[string]interface{}{}},
	}
}

func (s *Server) handleToolsList() interface{} {
	return map[string]interface{}{
		"tools": []ToolDefinition{
			{
				Name:        "search_documents",
				Description: "Hybrid lexical+semantic search over indexed documents",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"query": map[string]interface{}{"type": "string", "description": "Search query"},
					},
					"required": []string{"query"},
				},
			},
			{
				Name:        "index_document",
				Description: "Index or replace a document",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"path":        map[string]interface{}{"type": "string"},
						"title":       map[string]interface{}{"type": "string"},
						"body":        map[string]interface{}{"type": "string"},
						"source_type": map[string]interface{}{"type": "string"},
						"author":      map[string]interface{}{"type": "string"},
					},
					"required": []string{"path"},
				},
			},
			{
				Name:        "delete_document",
				Description: "Remove a document from the index",
				Parameters: map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{"path": map[string]interface{}{"type": "string"}},
					"required":   []string{"path"},
				},
			},
		},
	}
}

func (s *Server) handleToolCall(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var callParams struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(params, &callParams); err != nil {
		return nil, fmt.Errorf("invalid tool call params: %w", err)
	}

	switch callParams.Name {
	case "search_documents":
		return s.callSearch(ctx, callParams.Arguments)
	case "index_document":
		return s.callIndex(ctx, callParams.Arguments)
	case "delete_document":
		return s.callDelete(ctx, callParams.Arguments)
	default:
		return nil, fmt.Errorf("unknown tool: %s", callParams.Name)
	}
}

func (s *Server) callSearch(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid search arguments: %w", err)
	}
	return s.orch.HybridSearch(ctx, req.Query)
}

func (s *Server) callIndex(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var req struct {
		Path       string `json:"path"`
		Title      string `json:"title"`
		Body       string `json:"body"`
		SourceType string `json:"source_type"`
		Author     string `json:"author"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid index arguments: %w", err)
	}
	doc := types.RawDocument{
		Path:         req.Path,
		Title:        req.Title,
		Body:         req.Body,
		SourceType:   req.SourceType,
		Author:       req.Author,
		ModifiedDate: time.Now(),
	}
	if err := s.orch.Index(ctx, doc); err != nil {
		return nil, err
	}
	return map[string]interface{}{"path": req.Path, "indexed": true}, nil
}

func (s *Server) callDelete(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var req struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid delete arguments: %w", err)
	}
	if err := s.orch.Delete(ctx, req.Path); err != nil {
		return nil, err
	}
	return map[string]interface{}{"path": req.Path, "deleted": true}, nil
}
