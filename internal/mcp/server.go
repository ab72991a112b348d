// Package mcp exposes the training plan to MCP clients.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("clab", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("clab training plan server. Compute training paces, generate a periodised running, strength or hyrox plan, "+
			"read weeks and completion stats, tick sessions off and rearrange a week's calendar. Day names are French (Lundi to Dimanche)."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolComputePaces, Handler: h.computePaces},
		server.ServerTool{Tool: toolGeneratePlan, Handler: h.generatePlan},
		server.ServerTool{Tool: toolGetWeek, Handler: h.getWeek},
		server.ServerTool{Tool: toolGetStats, Handler: h.getStats},
		server.ServerTool{Tool: toolToggleSession, Handler: h.toggleSession},
		server.ServerTool{Tool: toolSwapDays, Handler: h.swapDays},
		server.ServerTool{Tool: toolResetWeekSchedule, Handler: h.resetWeekSchedule},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resPlan, Handler: h.plan},
		server.ServerResource{Resource: resStats, Handler: h.stats},
		server.ServerResource{Resource: resCatalog, Handler: h.catalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resPlan = mcp.NewResource(
	"clab://plan",
	"Training Plan",
	mcp.WithResourceDescription("The full generated plan: every week with its sessions and calendar"),
	mcp.WithMIMEType("application/json"),
)

var resStats = mcp.NewResource(
	"clab://stats",
	"Progress Stats",
	mcp.WithResourceDescription("Completion, weekly volume and load, and intensity distribution"),
	mcp.WithMIMEType("application/json"),
)

var resCatalog = mcp.NewResource(
	"clab://catalog",
	"Protocol Catalog",
	mcp.WithResourceDescription("Running protocols, gym splits per strength focus and hyrox workouts"),
	mcp.WithMIMEType("application/json"),
)
