package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/feliperussi/medwrite-server/internal/domain"
)

func (s *Server) registerToolRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTools",
		Method:      http.MethodGet,
		Path:        "/api/v1/tools",
		Summary:     "List tools",
		Description: "Returns all registered analysis tools with their parameter schemas",
		Tags:        []string{"Tools"},
	}, s.handleListTools)

	huma.Register(s.api, huma.Operation{
		OperationID: "executeTool",
		Method:      http.MethodPost,
		Path:        "/api/v1/tools",
		Summary:     "Execute tool",
		Description: "Executes a registered tool by name with free-form parameters",
		Tags:        []string{"Tools"},
	}, s.handleExecuteTool)
}

// === DTOs ===

// ListToolsResponse contains the registered tools.
type ListToolsResponse struct {
	Tools []domain.ToolInfo `json:"tools" doc:"Registered tools in registration order"`
	Count int               `json:"count" doc:"Number of registered tools"`
}

// ListToolsOutput wraps the list tools response for Huma.
type ListToolsOutput struct {
	Body ListToolsResponse
}

// ExecuteToolInput contains the tool name and parameters.
type ExecuteToolInput struct {
	Body struct {
		ToolName   string         `json:"tool_name" minLength:"1" doc:"Tool name"`
		Parameters map[string]any `json:"parameters,omitempty" doc:"Tool parameters, validated against the tool's schema"`
	}
}

// ExecuteToolResponse contains the tool execution result.
type ExecuteToolResponse struct {
	ToolName string `json:"tool_name" doc:"Name of the executed tool"`
	Result   any    `json:"result" doc:"Tool-specific result payload"`
}

// ExecuteToolOutput wraps the execution response for Huma.
type ExecuteToolOutput struct {
	Body ExecuteToolResponse
}

// === Handlers ===

func (s *Server) handleListTools(_ context.Context, _ *struct{}) (*ListToolsOutput, error) {
	infos := s.services.Tools.List()
	return &ListToolsOutput{
		Body: ListToolsResponse{
			Tools: infos,
			Count: len(infos),
		},
	}, nil
}

func (s *Server) handleExecuteTool(ctx context.Context, input *ExecuteToolInput) (*ExecuteToolOutput, error) {
	result, err := s.services.Tools.Execute(ctx, input.Body.ToolName, input.Body.Parameters)
	if err != nil {
		return nil, err
	}

	return &ExecuteToolOutput{
		Body: ExecuteToolResponse{
			ToolName: input.Body.ToolName,
			Result:   result,
		},
	}, nil
}
