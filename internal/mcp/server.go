// Package mcp exposes the analyzer over a stdio JSON-RPC 2.0 server in
// the MCP style: initialize, tools/list and tools/call, with results
// wrapped as text content blocks.
package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/saeedalam/repoprobe/internal/analyzer"
	"github.com/saeedalam/repoprobe/internal/repo"
	"github.com/saeedalam/repoprobe/internal/semantic"
	"github.com/saeedalam/repoprobe/internal/storage"
)

// Server is the stdio analyzer server.
type Server struct {
	analyzer *analyzer.Analyzer
	matcher  semantic.Matcher
	loader   *repo.Loader
	reports  *storage.ReportStore
	history  *storage.HistoryIndex
	tools    map[string]Tool
	order    []string // tool registration order for tools/list
}

// Tool couples a tool definition with its handler.
type Tool struct {
	Info    ToolInfo
	Handler func(params json.RawMessage) (interface{}, error)
}

// Request is a JSON-RPC request
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is a JSON-RPC response
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error is a JSON-RPC error
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// InitializeResult is the result of initialize
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
	Capabilities    Capabilities `json:"capabilities"`
}

// ServerInfo contains server information
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Capabilities contains server capabilities
type Capabilities struct {
	Tools *ToolsCapability `json:"tools,omitempty"`
}

// ToolsCapability contains tools capability
type ToolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

// ToolInfo describes a tool
type ToolInfo struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
}

// InputSchema describes tool input
type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties,omitempty"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes a property
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// NewServer creates the stdio server around an analyzer and its stores.
// The matcher is the same process-wide read-only instance the analyzer
// uses; standalone extract calls share it instead of rebuilding one.
func NewServer(a *analyzer.Analyzer, matcher semantic.Matcher, loader *repo.Loader, reports *storage.ReportStore, history *storage.HistoryIndex) *Server {
	s := &Server{
		analyzer: a,
		matcher:  matcher,
		loader:   loader,
		reports:  reports,
		history:  history,
		tools:    make(map[string]Tool),
	}
	s.registerTools()
	return s
}

func (s *Server) register(info ToolInfo, handler func(json.RawMessage) (interface{}, error)) {
	s.tools[info.Name] = Tool{Info: info, Handler: handler}
	s.order = append(s.order, info.Name)
}

// Run reads JSON-RPC requests from stdin until it closes. Stdout carries
// only protocol frames; diagnostics go to stderr.
func (s *Server) Run() {
	scanner := bufio.NewScanner(os.Stdin)
	// Increase buffer size for large messages
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		var req Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			fmt.Fprintf(os.Stderr, "Parse error: %v\n", err)
			continue
		}

		s.handleRequest(&req)
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Scanner error: %v\n", err)
	}

	if s.history != nil {
		s.history.Close()
	}
}

func (s *Server) handleRequest(req *Request) {
	switch req.Method {
	case "initialize":
		s.handleInitialize(req)
	case "initialized":
		// No response needed
	case "tools/list":
		s.handleToolsList(req)
	case "tools/call":
		s.handleToolsCall(req)
	default:
		s.sendError(req.ID, -32601, "Method not found", req.Method)
	}
}

func (s *Server) handleInitialize(req *Request) {
	result := InitializeResult{
		ProtocolVersion: "2024-11-05",
		ServerInfo: ServerInfo{
			Name:    "repoprobe",
			Version: "0.1.0",
		},
		Capabilities: Capabilities{
			Tools: &ToolsCapability{
				ListChanged: false,
			},
		},
	}
	s.sendResult(req.ID, result)
}

func (s *Server) handleToolsList(req *Request) {
	infos := make([]ToolInfo, 0, len(s.order))
	for _, name := range s.order {
		infos = append(infos, s.tools[name].Info)
	}
	s.sendResult(req.ID, map[string]interface{}{"tools": infos})
}

func (s *Server) handleToolsCall(req *Request) {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}

	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.sendError(req.ID, -32602, "Invalid params", err.Error())
		return
	}

	tool, ok := s.tools[params.Name]
	if !ok {
		s.sendError(req.ID, -32601, "Tool not found", params.Name)
		return
	}

	result, err := tool.Handler(params.Arguments)
	if err != nil {
		s.sendResult(req.ID, map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": fmt.Sprintf("Error: %v", err),
				},
			},
			"isError": true,
		})
		return
	}

	// Format result as text content
	resultJSON, _ := json.MarshalIndent(result, "", "  ")

	s.sendResult(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": string(resultJSON),
			},
		},
	})
}

func (s *Server) sendResult(id interface{}, result interface{}) {
	resp := Response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
	s.send(resp)
}

func (s *Server) sendError(id interface{}, code int, message string, data interface{}) {
	// Don't send error responses for notifications (null/nil ID)
	if id == nil {
		fmt.Fprintf(os.Stderr, "Error (no id): %s: %v\n", message, data)
		return
	}
	resp := Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
	s.send(resp)
}

func (s *Server) send(resp Response) {
	output, _ := json.Marshal(resp)
	fmt.Println(string(output))
}
