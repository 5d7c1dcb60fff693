package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/riskboard/core"
	"github.com/huangsam/riskboard/internal/contract"
	"github.com/huangsam/riskboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	session *core.Session
}

func (h *toolHandler) handleGetChart(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := schema.ChartID(request.GetString("chart_id", ""))

	chart, ok := h.session.Chart(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown chart identifier: %s", id)), nil
	}

	payload := struct {
		ChartID schema.ChartID   `json:"chartId"`
		Title   string           `json:"title"`
		Data    schema.ChartData `json:"data"`
	}{
		ChartID: id,
		Title:   core.ChartDisplayName(id),
		Data:    chart,
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRankMembers(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := core.RankOptions{
		Filter: h.baseCfg.RankFilter,
		Sort:   h.baseCfg.RankSort,
		Limit:  h.baseCfg.ResultLimit,
	}

	if f := request.GetString("filter", ""); f != "" {
		filter := schema.RankFilter(f)
		if _, ok := schema.ValidRankFilters[filter]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid rank filter: %s", f)), nil
		}
		opts.Filter = filter
	}
	if s := request.GetString("sort", ""); s != "" {
		sortOrder := schema.RankSort(s)
		if _, ok := schema.ValidRankSorts[sortOrder]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid sort order: %s", s)), nil
		}
		opts.Sort = sortOrder
	}
	if l := request.GetInt("limit", 0); l > 0 {
		opts.Limit = l
	}

	members := h.session.Rank(opts)
	jsonData, _ := json.MarshalIndent(members, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSummary(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary := h.session.Summary()
	jsonData, _ := json.MarshalIndent(summary, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleFilterRecords(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	riskStr := request.GetString("risk", "")
	risk := schema.RiskRating(riskStr)
	if riskStr != "" {
		if _, ok := schema.ValidRiskRatings[risk]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid risk level: %s", riskStr)), nil
		}
	}

	h.session.SetTextSearch(request.GetString("text", ""))
	h.session.SetDiseaseFilter(request.GetString("disease", ""))
	h.session.SetRiskFilter(risk)

	payload := struct {
		FilteredCount int `json:"filteredCount"`
		TotalCount    int `json:"totalCount"`
	}{
		FilteredCount: len(h.session.FilteredRecords()),
		TotalCount:    h.session.RecordCount(),
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}
