package core

import (
	"sync"

	"github.com/huangsam/riskboard/schema"
)

// Session owns one user's working state: the loaded records, the active
// filter criteria, and the per-chart element cache. All methods are safe
// for concurrent use.
//
// Filtering always re-evaluates against the complete record list, so
// removing one filter can never leave the view narrower than the
// remaining filters imply.
type Session struct {
	mu sync.RWMutex

	records []schema.Record

	textSearch    string
	diseaseFilter string
	riskFilter    schema.RiskRating

	filterOrder  []schema.ChartID
	chartFilters map[schema.ChartID]schema.ChartFilter

	lastElements map[schema.ChartID]schema.ChartElementData

	// generation fences concurrent loads so a slow stale load cannot
	// clobber a newer one
	generation uint64
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{
		chartFilters: make(map[schema.ChartID]schema.ChartFilter),
		lastElements: make(map[schema.ChartID]schema.ChartElementData),
	}
}

// ReplaceRecords swaps in a new record set and resets all filter state
// and cached elements, since they refer to data that no longer exists.
func (s *Session) ReplaceRecords(records []schema.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.replaceLocked(records)
}

// BeginLoad marks the start of an asynchronous load and returns its
// generation token for CompleteLoad.
func (s *Session) BeginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// CompleteLoad installs the records for a load started with BeginLoad.
// It reports false and changes nothing when a newer load has begun since.
func (s *Session) CompleteLoad(generation uint64, records []schema.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return false
	}
	s.replaceLocked(records)
	return true
}

func (s *Session) replaceLocked(records []schema.Record) {
	s.records = make([]schema.Record, len(records))
	copy(s.records, records)
	s.textSearch = ""
	s.diseaseFilter = ""
	s.riskFilter = ""
	s.filterOrder = nil
	s.chartFilters = make(map[schema.ChartID]schema.ChartFilter)
	s.lastElements = make(map[schema.ChartID]schema.ChartElementData)
}

// Records returns a copy of the complete record list.
func (s *Session) Records() []schema.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]schema.Record, len(s.records))
	copy(records, s.records)
	return records
}

// RecordCount returns the size of the complete record list.
func (s *Session) RecordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// SetTextSearch sets the free-text search term.
func (s *Session) SetTextSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.textSearch = term
}

// SetDiseaseFilter sets the exact-match disease dropdown selection.
func (s *Session) SetDiseaseFilter(disease string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diseaseFilter = disease
}

// SetRiskFilter sets the exact-match risk dropdown selection.
func (s *Session) SetRiskFilter(risk schema.RiskRating) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.riskFilter = risk
}

// SetChartFilter installs or replaces the filter for the filter's chart.
// Each chart holds at most one filter.
func (s *Session) SetChartFilter(filter schema.ChartFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.chartFilters[filter.ChartID]; !ok {
		s.filterOrder = append(s.filterOrder, filter.ChartID)
	}
	s.chartFilters[filter.ChartID] = filter
}

// RemoveChartFilter deletes the filter for one chart, reporting whether
// one existed.
func (s *Session) RemoveChartFilter(chartID schema.ChartID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.chartFilters[chartID]; !ok {
		return false
	}
	delete(s.chartFilters, chartID)
	for i, id := range s.filterOrder {
		if id == chartID {
			s.filterOrder = append(s.filterOrder[:i], s.filterOrder[i+1:]...)
			break
		}
	}
	return true
}

// ClearChartFilters removes every chart filter, leaving search and
// dropdown selections intact.
func (s *Session) ClearChartFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filterOrder = nil
	s.chartFilters = make(map[schema.ChartID]schema.ChartFilter)
}

// ChartFilters returns the active chart filters in activation order.
func (s *Session) ChartFilters() []schema.ChartFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chartFiltersLocked()
}

func (s *Session) chartFiltersLocked() []schema.ChartFilter {
	filters := make([]schema.ChartFilter, 0, len(s.filterOrder))
	for _, id := range s.filterOrder {
		filters = append(filters, s.chartFilters[id])
	}
	return filters
}

// Criteria returns a snapshot of the active filter criteria.
func (s *Session) Criteria() FilterCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterCriteria{
		TextSearch:    s.textSearch,
		DiseaseFilter: s.diseaseFilter,
		RiskFilter:    s.riskFilter,
		ChartFilters:  s.chartFiltersLocked(),
	}
}

// FilteredRecords evaluates the active criteria against the complete
// record list.
func (s *Session) FilteredRecords() []schema.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ApplyFilters(s.records, FilterCriteria{
		TextSearch:    s.textSearch,
		DiseaseFilter: s.diseaseFilter,
		RiskFilter:    s.riskFilter,
		ChartFilters:  s.chartFiltersLocked(),
	})
}

// Chart computes one chart over the filtered view. The boolean is false
// for identifiers outside the catalog.
func (s *Session) Chart(id schema.ChartID) (schema.ChartData, bool) {
	return BuildChart(id, s.FilteredRecords())
}

// Rank ranks high-risk members over the filtered view.
func (s *Session) Rank(opts RankOptions) []schema.RankedMember {
	return RankMembers(s.FilteredRecords(), opts)
}

// Summary summarizes the filtered view, active and inactive records
// alike.
func (s *Session) Summary() schema.DataSummary {
	return Summarize(s.FilteredRecords())
}

// CacheElement remembers the last resolved element for a chart, the
// fallback when a later interaction on the same chart resolves nothing.
func (s *Session) CacheElement(chartID schema.ChartID, element schema.ChartElementData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastElements[chartID] = element
}

// CachedElement returns the last resolved element for a chart.
func (s *Session) CachedElement(chartID schema.ChartID) (schema.ChartElementData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	element, ok := s.lastElements[chartID]
	return element, ok
}
