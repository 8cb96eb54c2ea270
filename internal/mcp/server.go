// Package mcp exposes the workflow compiler over the MCP protocol so agent
// tooling can drive the same pipeline as the form.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"agent-forge/backend/internal/projector"
	"agent-forge/backend/internal/services"
	"agent-forge/backend/pkg/models"
)

type Server struct {
	mcpServer *server.MCPServer
	svc       *services.WorkflowService
}

func NewServer(svc *services.WorkflowService) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			"Agent Forge",
			"1.0.0",
			server.WithToolCapabilities(true),
		),
		svc: svc,
	}

	s.registerTools()
	return s
}

func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"compile_workflow",
			mcp.WithDescription("Compile a raw workflow submission into SQL INSERT statements"),
			mcp.WithString("submission", mcp.Required(), mcp.Description("The raw submission as a JSON document")),
		),
		s.handleCompile,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"generate_state",
			mcp.WithDescription("Compile a raw workflow submission and generate its workflow state"),
			mcp.WithString("submission", mcp.Required(), mcp.Description("The raw submission as a JSON document")),
		),
		s.handleGenerateState,
	)
}

func (s *Server) handleCompile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sub, err := bindSubmission(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	compiled, err := s.svc.Compile(sub)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to compile: %v", err)), nil
	}

	return mcp.NewToolResultText(projector.SQL(compiled.Workflow, compiled.Blocks)), nil
}

func (s *Server) handleGenerateState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sub, err := bindSubmission(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.svc.GenerateState(ctx, sub)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to generate state: %v", err)), nil
	}

	jsonBytes, _ := json.Marshal(result)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func bindSubmission(request mcp.CallToolRequest) (models.RawSubmission, error) {
	var sub models.RawSubmission

	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return sub, fmt.Errorf("Invalid arguments type")
	}

	raw, ok := args["submission"].(string)
	if !ok || raw == "" {
		return sub, fmt.Errorf("Missing required parameter: submission")
	}

	if err := json.Unmarshal([]byte(raw), &sub); err != nil {
		return sub, fmt.Errorf("Invalid submission document: %v", err)
	}
	return sub, nil
}

func MountHTTPHandlers(mux *http.ServeMux, mcpServer *server.MCPServer) {
	sseServer := server.NewSSEServer(mcpServer, server.WithStaticBasePath("/mcp"))

	mux.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			sseServer.ServeHTTP(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	mux.HandleFunc("/mcp/sse", sseServer.ServeHTTP)
	mux.HandleFunc("/mcp/message", sseServer.ServeHTTP)
}
