package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(p Planner, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("periodize", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Training periodization simulator. Build block programs from Strength, Power, Speed and Hypertrophy blocks, then inspect ability retention under the baseline and mini-block models, the block schedule, and the weekly microcycle."),
	)

	h := &handlers{planner: p, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolSimulateProgram, Handler: h.simulateProgram},
		server.ServerTool{Tool: toolBuildSchedule, Handler: h.buildSchedule},
		server.ServerTool{Tool: toolComparePrograms, Handler: h.comparePrograms},
		server.ServerTool{Tool: toolListBlocks, Handler: h.listBlocks},
		server.ServerTool{Tool: toolGetMicrocycle, Handler: h.getMicrocycle},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRegistry, Handler: h.registry},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	planner Planner
	log     *slog.Logger
}

// --- Resource definitions ---

var resRegistry = mcp.NewResource(
	"periodize://registry",
	"Block Registry",
	mcp.WithResourceDescription("Abilities with residual windows and mini-block constants, and block kinds with durations, intensity ranges and phases"),
	mcp.WithMIMEType("application/json"),
)
