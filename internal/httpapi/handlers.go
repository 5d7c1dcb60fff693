package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/huangsam/riskboard/core"
	"github.com/huangsam/riskboard/schema"
)

// chartResponse is one chart summary with its identity attached.
type chartResponse struct {
	ChartID schema.ChartID   `json:"chartId"`
	Title   string           `json:"title"`
	Data    schema.ChartData `json:"data"`
}

// filterStateResponse reports the active criteria and resulting view size.
type filterStateResponse struct {
	TextSearch    string               `json:"textSearch"`
	DiseaseFilter string               `json:"diseaseFilter"`
	RiskFilter    schema.RiskRating    `json:"riskFilter"`
	ChartFilters  []schema.ChartFilter `json:"chartFilters"`
	FilteredCount int                  `json:"filteredCount"`
	TotalCount    int                  `json:"totalCount"`
}

func (s *Server) filterState() filterStateResponse {
	criteria := s.session.Criteria()
	return filterStateResponse{
		TextSearch:    criteria.TextSearch,
		DiseaseFilter: criteria.DiseaseFilter,
		RiskFilter:    criteria.RiskFilter,
		ChartFilters:  criteria.ChartFilters,
		FilteredCount: len(s.session.FilteredRecords()),
		TotalCount:    s.session.RecordCount(),
	}
}

func (s *Server) handleChartCatalog(w http.ResponseWriter, _ *http.Request) {
	charts := make([]chartResponse, 0, len(schema.AllChartIDs))
	records := s.session.FilteredRecords()
	for _, id := range schema.AllChartIDs {
		chart, ok := core.BuildChart(id, records)
		if !ok {
			continue
		}
		charts = append(charts, chartResponse{
			ChartID: id,
			Title:   core.ChartDisplayName(id),
			Data:    chart,
		})
	}
	writeJSON(w, http.StatusOK, charts)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	id := schema.ChartID(r.PathValue("id"))
	chart, ok := s.session.Chart(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown chart identifier: %s", id))
		return
	}
	writeJSON(w, http.StatusOK, chartResponse{
		ChartID: id,
		Title:   core.ChartDisplayName(id),
		Data:    chart,
	})
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	opts := core.RankOptions{
		Filter: s.cfg.RankFilter,
		Sort:   s.cfg.RankSort,
		Limit:  s.cfg.ResultLimit,
	}

	query := r.URL.Query()
	if v := query.Get("filter"); v != "" {
		filter := schema.RankFilter(v)
		if _, ok := schema.ValidRankFilters[filter]; !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid rank filter: %s", v))
			return
		}
		opts.Filter = filter
	}
	if v := query.Get("sort"); v != "" {
		sortOrder := schema.RankSort(v)
		if _, ok := schema.ValidRankSorts[sortOrder]; !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid sort order: %s", v))
			return
		}
		opts.Sort = sortOrder
	}
	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit: %s", v))
			return
		}
		opts.Limit = limit
	}

	writeJSON(w, http.StatusOK, s.session.Rank(opts))
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Summary())
}

func (s *Server) handleFilterState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.filterState())
}

// setFilterRequest carries a resolved chart element back from the
// frontend to become a semantic filter.
type setFilterRequest struct {
	ChartID   schema.ChartID           `json:"chartId"`
	ChartType string                   `json:"chartType"`
	Element   *schema.ChartElementData `json:"element"`
}

func (s *Server) handleSetChartFilter(w http.ResponseWriter, r *http.Request) {
	var req setFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Element == nil {
		writeError(w, http.StatusBadRequest, "element is required")
		return
	}

	filter := core.BuildChartFilter(req.ChartID, req.ChartType, req.Element)
	if filter == nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("chart %s does not support filtering on this element", req.ChartID))
		return
	}

	s.session.SetChartFilter(*filter)
	s.session.CacheElement(req.ChartID, *req.Element)
	writeJSON(w, http.StatusOK, s.filterState())
}

func (s *Server) handleRemoveChartFilter(w http.ResponseWriter, r *http.Request) {
	chartID := schema.ChartID(r.PathValue("chartId"))
	if !s.session.RemoveChartFilter(chartID) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no active filter for chart: %s", chartID))
		return
	}
	writeJSON(w, http.StatusOK, s.filterState())
}

func (s *Server) handleClearChartFilters(w http.ResponseWriter, _ *http.Request) {
	s.session.ClearChartFilters()
	writeJSON(w, http.StatusOK, s.filterState())
}

// searchRequest carries the free-text and dropdown selections.
type searchRequest struct {
	Text    string `json:"text"`
	Disease string `json:"disease"`
	Risk    string `json:"risk"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	risk := schema.RiskRating(req.Risk)
	if req.Risk != "" {
		if _, ok := schema.ValidRiskRatings[risk]; !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid risk level: %s", req.Risk))
			return
		}
	}

	s.session.SetTextSearch(req.Text)
	s.session.SetDiseaseFilter(req.Disease)
	s.session.SetRiskFilter(risk)
	writeJSON(w, http.StatusOK, s.filterState())
}
