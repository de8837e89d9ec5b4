package mcp

import (
	"context"
	"errors"

	"github.com/claude/periodize/internal/engine"
	"github.com/claude/periodize/internal/microcycle"
	"github.com/claude/periodize/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

// blockItems leaves kind validation to the registry, which may be a custom
// file with kinds of its own.
var blockItems = map[string]any{"type": "string"}

// --- Tool definitions ---

var toolSimulateProgram = mcp.NewTool("simulate_program",
	mcp.WithDescription("Simulate a block program. Returns week intervals, retention curves per ability under the baseline and mini-block augmented models, mini-block markers, the schedule, the intensity profile and block transitions. Optionally includes the weekly microcycle."),
	mcp.WithArray("blocks", mcp.Required(), mcp.Description("Ordered block kinds as listed by list_blocks, e.g. [\"Strength\", \"Power\", \"Speed\"]"), mcp.Items(blockItems)),
	mcp.WithNumber("training_days", mcp.Description("Training days per week (3-6). Omit to skip the microcycle.")),
)

var toolBuildSchedule = mcp.NewTool("build_schedule",
	mcp.WithDescription("Lay a block program out as Gantt tasks: one main task per block, mini-blocks of the previous ability every other week, and a final peak week."),
	mcp.WithArray("blocks", mcp.Required(), mcp.Description("Ordered block kinds"), mcp.Items(blockItems)),
)

var toolComparePrograms = mcp.NewTool("compare_programs",
	mcp.WithDescription("Simulate several candidate programs side by side. Results keep the input order."),
	mcp.WithArray("programs", mcp.Required(), mcp.Description("List of programs, each an ordered list of block kinds"),
		mcp.Items(map[string]any{"type": "array", "items": blockItems})),
)

var toolListBlocks = mcp.NewTool("list_blocks",
	mcp.WithDescription("List block kinds with duration, target ability, intensity range, phases and exercises, plus every ability's residual window."),
)

var toolGetMicrocycle = mcp.NewTool("get_microcycle",
	mcp.WithDescription("Weekly training-day template with session type and load for each day."),
	mcp.WithNumber("training_days", mcp.Required(), mcp.Description("Training days per week (3-6)")),
)

// --- Tool handlers ---

func (h *handlers) simulateProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blocks, err := req.RequireStringSlice("blocks")
	if err != nil {
		return mcp.NewToolResultError("blocks parameter is required"), nil
	}

	resp, err := h.planner.Simulate(ctx, blocks, req.GetInt("training_days", 0))
	if err != nil {
		return h.toolError("simulate_program", err), nil
	}

	result, err := mcp.NewToolResultJSON(resp)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) buildSchedule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blocks, err := req.RequireStringSlice("blocks")
	if err != nil {
		return mcp.NewToolResultError("blocks parameter is required"), nil
	}

	resp, err := h.planner.Schedule(ctx, blocks)
	if err != nil {
		return h.toolError("build_schedule", err), nil
	}

	result, err := mcp.NewToolResultJSON(resp)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) comparePrograms(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Programs [][]string `json:"programs"`
	}
	if err := req.BindArguments(&args); err != nil || len(args.Programs) == 0 {
		return mcp.NewToolResultError("programs parameter is required"), nil
	}

	resp, err := h.planner.Compare(ctx, args.Programs)
	if err != nil {
		return h.toolError("compare_programs", err), nil
	}

	result, err := mcp.NewToolResultJSON(resp)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listBlocks(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := h.planner.Registry(ctx)
	if err != nil {
		return h.toolError("list_blocks", err), nil
	}

	result, err := mcp.NewToolResultJSON(resp)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMicrocycle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := req.GetInt("training_days", 0)
	if days == 0 {
		return mcp.NewToolResultError("training_days parameter is required"), nil
	}

	sessions, err := h.planner.Microcycle(ctx, days)
	if err != nil {
		return h.toolError("get_microcycle", err), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// toolError reports caller mistakes verbatim and logs everything else.
func (h *handlers) toolError(tool string, err error) *mcp.CallToolResult {
	if errors.Is(err, registry.ErrConfiguration) ||
		errors.Is(err, engine.ErrProgramTooLarge) ||
		errors.Is(err, microcycle.ErrInvalidTrainingDays) {
		return mcp.NewToolResultError(err.Error())
	}
	h.log.Error("mcp "+tool, "error", err)
	return mcp.NewToolResultError("simulation failed: " + err.Error())
}
