package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/huangsam/riskboard/core"
	"github.com/huangsam/riskboard/schema"
)

// resolveRequest carries a rendered chart's geometry and hit-test results
// so the server can identify the element under a canvas position. The
// renderer owns pixels; it ships the resolver's inputs over the wire.
type resolveRequest struct {
	Position schema.Point         `json:"position"`
	Geometry schema.ChartGeometry `json:"geometry"`

	// Elements holds per-dataset rendered element geometry.
	Elements [][]schema.ElementGeometry `json:"elements"`

	// Hits holds hit-test results keyed by interaction mode. Exact
	// containment results use the "<mode>+intersect" key.
	Hits map[string][]schema.HitElement `json:"hits"`
}

// wireChart adapts a resolve request into the resolver's chart surface,
// backed by the session's current data for the chart.
type wireChart struct {
	id   schema.ChartID
	data schema.ChartData
	req  *resolveRequest
}

func (c *wireChart) ID() schema.ChartID { return c.id }

func (c *wireChart) Data() schema.ChartData { return c.data }

func (c *wireChart) Geometry() schema.ChartGeometry { return c.req.Geometry }

func (c *wireChart) ElementsAt(_ schema.Point, mode schema.HitMode, intersect bool) []schema.HitElement {
	key := string(mode)
	if intersect {
		key += "+intersect"
	}
	return c.req.Hits[key]
}

func (c *wireChart) ElementGeometry(datasetIndex, index int) (schema.ElementGeometry, bool) {
	if datasetIndex < 0 || datasetIndex >= len(c.req.Elements) {
		return schema.ElementGeometry{}, false
	}
	row := c.req.Elements[datasetIndex]
	if index < 0 || index >= len(row) {
		return schema.ElementGeometry{}, false
	}
	return row[index], true
}

func (c *wireChart) DatasetCount() int { return len(c.req.Elements) }

func (c *wireChart) DatasetLen(datasetIndex int) int {
	if datasetIndex < 0 || datasetIndex >= len(c.req.Elements) {
		return 0
	}
	return len(c.req.Elements[datasetIndex])
}

// resolveResponse reports the resolved element and whether it came from
// this request or the chart's cached last element.
type resolveResponse struct {
	Element   schema.ChartElementData `json:"element"`
	FromCache bool                    `json:"fromCache"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	id := schema.ChartID(r.PathValue("chartId"))
	chart, ok := s.session.Chart(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown chart identifier: %s", id))
		return
	}

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	handle := &wireChart{id: id, data: chart, req: &req}
	if element := core.ResolveChartElement(handle, req.Position); element != nil {
		s.session.CacheElement(id, *element)
		writeJSON(w, http.StatusOK, resolveResponse{Element: *element})
		return
	}

	// Every strategy missed; fall back to the last element resolved on
	// this chart, if any.
	if cached, ok := s.session.CachedElement(id); ok {
		writeJSON(w, http.StatusOK, resolveResponse{Element: cached, FromCache: true})
		return
	}
	writeError(w, http.StatusNotFound, "no element at position")
}
