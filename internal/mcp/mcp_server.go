// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/riskboard/core"
	"github.com/huangsam/riskboard/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Riskboard MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, session *core.Session) *server.MCPServer {
	s := server.NewMCPServer(
		"Riskboard Reporting Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		session: session,
	}

	// --- 1. Tool: get_chart ---
	s.AddTool(mcp.NewTool("get_chart",
		mcp.WithDescription("Compute one chart-ready summary from the loaded risk records."),
		mcp.WithString("chart_id", mcp.Description("Chart identifier, e.g. diseaseChart, riskChart, recordsOverTimeChart."), mcp.Required()),
	), h.handleGetChart)

	// --- 2. Tool: rank_members ---
	s.AddTool(mcp.NewTool("rank_members",
		mcp.WithDescription("Rank members with High Risk records by care priority."),
		mcp.WithString("filter", mcp.Description("Eligibility filter (all, multiple_diseases, single_disease). Defaults to 'all'."), mcp.Enum("all", "multiple_diseases", "single_disease")),
		mcp.WithString("sort", mcp.Description("Sort order (risk_desc, risk_asc, diseases_desc, diseases_asc). Defaults to 'risk_desc'."), mcp.Enum("risk_desc", "risk_asc", "diseases_desc", "diseases_asc")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleRankMembers)

	// --- 3. Tool: get_summary ---
	s.AddTool(mcp.NewTool("get_summary",
		mcp.WithDescription("Summarize the loaded records: totals, members, protocols, and activity split."),
	), h.handleGetSummary)

	// --- 4. Tool: filter_records ---
	s.AddTool(mcp.NewTool("filter_records",
		mcp.WithDescription("Set the free-text search and dropdown selections that scope every other tool."),
		mcp.WithString("text", mcp.Description("Free-text search matched against every record field.")),
		mcp.WithString("disease", mcp.Description("Exact disease protocol selection.")),
		mcp.WithString("risk", mcp.Description("Exact risk level selection."), mcp.Enum("High Risk", "Medium Risk", "Low Risk", "Unknown")),
	), h.handleFilterRecords)

	return s
}

// StartMCPServer starts the Riskboard MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, session *core.Session) error {
	s := NewMCPServer(baseCfg, session)
	return server.ServeStdio(s)
}
