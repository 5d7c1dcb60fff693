package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/riskboard/core"
	"github.com/huangsam/riskboard/internal/contract"
	"github.com/huangsam/riskboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apiFixture() (*Server, *core.Session) {
	session := core.NewSession()
	session.ReplaceRecords([]schema.Record{
		{
			MemberID:        "M1",
			DependentCode:   "00",
			DiseaseProtocol: "Asthma",
			RiskRating:      schema.HighRisk,
			CalculationType: "Adherence",
			DateCalculated:  time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
			IsActive:        true,
		},
		{
			MemberID:        "M1",
			DependentCode:   "00",
			DiseaseProtocol: "COPD",
			RiskRating:      schema.MediumRisk,
			CalculationType: "Clinical",
			IsActive:        true,
		},
		{
			MemberID:        "M2",
			DependentCode:   "01",
			DiseaseProtocol: "Diabetes",
			RiskRating:      schema.HighRisk,
			CalculationType: "Adherence",
			IsActive:        true,
		},
	})
	cfg := &contract.Config{
		ResultLimit: contract.DefaultResultLimit,
		RankFilter:  schema.AllMembers,
		RankSort:    schema.RiskDesc,
	}
	return NewServer(session, cfg), session
}

func doRequest(t *testing.T, server *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)
	return rec
}

func decodeFilterState(t *testing.T, rec *httptest.ResponseRecorder) filterStateResponse {
	t.Helper()
	var state filterStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	return state
}

func TestChartCatalogEndpoint(t *testing.T) {
	server, _ := apiFixture()
	rec := doRequest(t, server, http.MethodGet, "/api/charts", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var charts []chartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &charts))
	assert.Len(t, charts, len(schema.AllChartIDs))
}

func TestChartEndpoint(t *testing.T) {
	server, _ := apiFixture()

	t.Run("known chart", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodGet, "/api/charts/diseaseChart", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp chartResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, schema.DiseaseChart, resp.ChartID)
		assert.Contains(t, resp.Data.Labels, "Asthma")
	})

	t.Run("unknown chart", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodGet, "/api/charts/bogusChart", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "unknown chart identifier")
	})
}

func TestRankEndpoint(t *testing.T) {
	server, _ := apiFixture()

	t.Run("defaults", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodGet, "/api/rank", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var members []schema.RankedMember
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &members))
		require.Len(t, members, 2)
		assert.Equal(t, 1, members[0].Rank)
	})

	t.Run("filter override", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodGet, "/api/rank?filter=multiple_diseases", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var members []schema.RankedMember
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &members))
		require.Len(t, members, 1)
		assert.Equal(t, "M1", members[0].MemberID)
	})

	t.Run("invalid filter", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodGet, "/api/rank?filter=everyone", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid sort", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodGet, "/api/rank?sort=upwards", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("limit applies", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodGet, "/api/rank?limit=1", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var members []schema.RankedMember
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &members))
		assert.Len(t, members, 1)
	})

	t.Run("invalid limit", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodGet, "/api/rank?limit=0", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSummaryEndpoint(t *testing.T) {
	server, _ := apiFixture()
	rec := doRequest(t, server, http.MethodGet, "/api/summary", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var summary schema.DataSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 3, summary.TotalRecords)
	assert.Equal(t, 2, summary.TotalMembers)
}

func TestSearchEndpoint(t *testing.T) {
	server, _ := apiFixture()

	t.Run("text search narrows the view", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodPost, "/api/search", searchRequest{Text: "diabetes"})
		assert.Equal(t, http.StatusOK, rec.Code)

		state := decodeFilterState(t, rec)
		assert.Equal(t, "diabetes", state.TextSearch)
		assert.Equal(t, 1, state.FilteredCount)
		assert.Equal(t, 3, state.TotalCount)
	})

	t.Run("invalid risk level", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodPost, "/api/search", searchRequest{Risk: "Extreme Risk"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid risk level")
	})

	t.Run("empty criteria restores full view", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodPost, "/api/search", searchRequest{})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 3, decodeFilterState(t, rec).FilteredCount)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader("{broken"))
		rec := httptest.NewRecorder()
		server.Routes().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestChartFilterEndpoints(t *testing.T) {
	server, _ := apiFixture()

	element := schema.ChartElementData{
		Label:       "Asthma",
		Value:       1,
		ElementType: schema.SliceElement,
	}

	t.Run("set filter", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodPost, "/api/filters", setFilterRequest{
			ChartID:   schema.DiseaseChart,
			ChartType: "pie",
			Element:   &element,
		})
		assert.Equal(t, http.StatusOK, rec.Code)

		state := decodeFilterState(t, rec)
		require.Len(t, state.ChartFilters, 1)
		assert.Equal(t, schema.DiseaseChart, state.ChartFilters[0].ChartID)
		assert.Equal(t, 1, state.FilteredCount)
	})

	t.Run("filter state reflects active filter", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodGet, "/api/filters", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeFilterState(t, rec).ChartFilters, 1)
	})

	t.Run("missing element", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodPost, "/api/filters", setFilterRequest{
			ChartID:   schema.DiseaseChart,
			ChartType: "pie",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "element is required")
	})

	t.Run("non-filterable chart", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodPost, "/api/filters", setFilterRequest{
			ChartID:   schema.MultipleDiseasesChart,
			ChartType: "bar",
			Element:   &element,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("remove filter", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodDelete, "/api/filters/diseaseChart", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		state := decodeFilterState(t, rec)
		assert.Empty(t, state.ChartFilters)
		assert.Equal(t, 3, state.FilteredCount)
	})

	t.Run("remove without active filter", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodDelete, "/api/filters/diseaseChart", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("clear all filters", func(t *testing.T) {
		setRec := doRequest(t, server, http.MethodPost, "/api/filters", setFilterRequest{
			ChartID:   schema.DiseaseChart,
			ChartType: "pie",
			Element:   &element,
		})
		require.Equal(t, http.StatusOK, setRec.Code)

		rec := doRequest(t, server, http.MethodDelete, "/api/filters", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decodeFilterState(t, rec).ChartFilters)
	})
}

func TestResolveEndpoint(t *testing.T) {
	server, _ := apiFixture()

	pieRequest := resolveRequest{
		Position: schema.Point{X: 100, Y: 40},
		Geometry: schema.ChartGeometry{Type: "pie", Center: schema.Point{X: 100, Y: 100}},
		Elements: [][]schema.ElementGeometry{{
			{X: 400, Y: 60, StartAngle: 0, EndAngle: 3},
			{X: 400, Y: 140, StartAngle: 3, EndAngle: 6.28},
		}},
		Hits: map[string][]schema.HitElement{},
	}

	t.Run("hit test result wins", func(t *testing.T) {
		req := pieRequest
		req.Hits = map[string][]schema.HitElement{
			"nearest+intersect": {{DatasetIndex: 0, Index: 1}},
		}
		rec := doRequest(t, server, http.MethodPost, "/api/resolve/diseaseChart", req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp resolveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Element.Index)
		assert.Equal(t, schema.SliceElement, resp.Element.ElementType)
		assert.False(t, resp.FromCache)
	})

	t.Run("geometry fallback resolves a slice", func(t *testing.T) {
		// Position at angle 3π/2 from the center lands in the second
		// slice's arc even with every hit test empty.
		rec := doRequest(t, server, http.MethodPost, "/api/resolve/diseaseChart", pieRequest)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp resolveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Element.Index)
	})

	t.Run("total miss falls back to cached element", func(t *testing.T) {
		req := resolveRequest{
			Position: schema.Point{X: 5000, Y: 5000},
			Geometry: schema.ChartGeometry{Type: "line"},
			Elements: [][]schema.ElementGeometry{{{X: 10, Y: 10}}},
			Hits:     map[string][]schema.HitElement{},
		}
		rec := doRequest(t, server, http.MethodPost, "/api/resolve/diseaseChart", req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp resolveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.FromCache)
	})

	t.Run("total miss without cache", func(t *testing.T) {
		req := resolveRequest{
			Position: schema.Point{X: 5000, Y: 5000},
			Geometry: schema.ChartGeometry{Type: "line"},
			Elements: [][]schema.ElementGeometry{{{X: 10, Y: 10}}},
			Hits:     map[string][]schema.HitElement{},
		}
		rec := doRequest(t, server, http.MethodPost, "/api/resolve/riskChart", req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown chart", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodPost, "/api/resolve/bogusChart", pieRequest)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCORSHeaders(t *testing.T) {
	server, _ := apiFixture()

	t.Run("headers on regular requests", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodGet, "/api/summary", nil)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		rec := doRequest(t, server, http.MethodOptions, "/api/filters", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
	})
}
