package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/catalog"
)

// Handler turns MCP tool calls into service calls and formats the results.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

func (h *Handler) GetFitnessSchemaTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

type SearchExercisesInput struct {
	Search    string `json:"search,omitempty" jsonschema:"Case-insensitive substring of the exercise name"`
	Muscle    string `json:"muscle,omitempty" jsonschema:"Primary muscle name (e.g. chest, quadriceps)"`
	Equipment string `json:"equipment,omitempty" jsonschema:"Equipment substring (e.g. barbell, dumbbell)"`
}

func (h *Handler) SearchExercisesTool() func(context.Context, *mcp.CallToolRequest, SearchExercisesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SearchExercisesInput) (*mcp.CallToolResult, any, error) {
		list, err := h.service.SearchExercises(ctx, catalog.ExerciseFilter{
			Search:    strings.TrimSpace(in.Search),
			Muscle:    strings.TrimSpace(in.Muscle),
			Equipment: strings.TrimSpace(in.Equipment),
		})
		if err != nil {
			return errorResult("Error searching exercises: " + err.Error()), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}

type GetProgramInput struct {
	ProgramID string `json:"program_id" jsonschema:"Program id"`
}

func (h *Handler) GetProgramTool() func(context.Context, *mcp.CallToolRequest, GetProgramInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in GetProgramInput) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(in.ProgramID) == "" {
			return errorResult("program_id is required"), nil, nil
		}
		program, err := h.service.GetProgram(ctx, in.ProgramID)
		if err != nil {
			return errorResult("Error fetching program: " + err.Error()), nil, nil
		}
		return jsonResult(program), nil, nil
	}
}

type WorkoutSummaryInput struct {
	SessionID string `json:"session_id" jsonschema:"Workout session id"`
}

func (h *Handler) GetWorkoutSummaryTool() func(context.Context, *mcp.CallToolRequest, WorkoutSummaryInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in WorkoutSummaryInput) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(in.SessionID) == "" {
			return errorResult("session_id is required"), nil, nil
		}
		summary, err := h.service.GetWorkoutSummary(ctx, in.SessionID)
		if err != nil {
			return errorResult("Error summarizing workout: " + err.Error()), nil, nil
		}
		return jsonResult(summary), nil, nil
	}
}
