package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/riskboard/schema"
)

// unknownValue fills categorical fields that arrive empty, so grouping
// never splits on blank versus missing.
const unknownValue = "Unknown"

// rawRecord is the wire shape of one record. Booleans and dates arrive in
// several spellings depending on the export path, so both use flexible
// decoders.
type rawRecord struct {
	MemberID        string   `json:"memberId"`
	DependentCode   string   `json:"dependentCode"`
	DiseaseProtocol string   `json:"diseaseProtocol"`
	RiskRating      string   `json:"riskRating"`
	CalculationType string   `json:"riskCalculationType"`
	DateCalculated  flexDate `json:"dateCalculated"`
	IsActive        flexBool `json:"isActive"`
	StatusReason    string   `json:"activeStatusReason"`
	StatusSource    string   `json:"activeStatusSource"`
}

// normalize converts a raw record into the canonical schema record,
// defaulting absent categorical fields rather than dropping the row.
func (r *rawRecord) normalize() schema.Record {
	rec := schema.Record{
		MemberID:        strings.TrimSpace(r.MemberID),
		DependentCode:   strings.TrimSpace(r.DependentCode),
		DiseaseProtocol: strings.TrimSpace(r.DiseaseProtocol),
		RiskRating:      schema.RiskRating(strings.TrimSpace(r.RiskRating)),
		CalculationType: strings.TrimSpace(r.CalculationType),
		DateCalculated:  r.DateCalculated.Time,
		IsActive:        bool(r.IsActive),
		StatusReason:    strings.TrimSpace(r.StatusReason),
		StatusSource:    strings.TrimSpace(r.StatusSource),
	}
	if rec.DependentCode == "" {
		rec.DependentCode = "0"
	}
	if rec.DiseaseProtocol == "" {
		rec.DiseaseProtocol = unknownValue
	}
	if rec.RiskRating == "" {
		rec.RiskRating = schema.UnknownRisk
	}
	if rec.CalculationType == "" {
		rec.CalculationType = unknownValue
	}
	return rec
}

// DecodeJSON decodes a JSON array of records.
func DecodeJSON(r io.Reader) ([]schema.Record, error) {
	var raw []rawRecord
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode JSON records: %w", err)
	}

	records := make([]schema.Record, 0, len(raw))
	for i := range raw {
		records = append(records, raw[i].normalize())
	}
	return records, nil
}

// csvColumns maps recognized CSV header names, lowercased, to raw field
// setters. Both the dashboard export headers and the JSON field names are
// accepted.
var csvColumns = map[string]func(*rawRecord, string){
	"member number": func(r *rawRecord, v string) { r.MemberID = v },
	"memberid":      func(r *rawRecord, v string) { r.MemberID = v },

	"dependent code": func(r *rawRecord, v string) { r.DependentCode = v },
	"dependentcode":  func(r *rawRecord, v string) { r.DependentCode = v },

	"disease protocol name": func(r *rawRecord, v string) { r.DiseaseProtocol = v },
	"diseaseprotocol":       func(r *rawRecord, v string) { r.DiseaseProtocol = v },

	"risk rating name": func(r *rawRecord, v string) { r.RiskRating = v },
	"riskrating":       func(r *rawRecord, v string) { r.RiskRating = v },

	"risk calculation type name": func(r *rawRecord, v string) { r.CalculationType = v },
	"riskcalculationtype":        func(r *rawRecord, v string) { r.CalculationType = v },

	"date calculated": func(r *rawRecord, v string) { r.DateCalculated.set(v) },
	"datecalculated":  func(r *rawRecord, v string) { r.DateCalculated.set(v) },

	"is active": func(r *rawRecord, v string) { r.IsActive.set(v) },
	"isactive":  func(r *rawRecord, v string) { r.IsActive.set(v) },

	"active status reason": func(r *rawRecord, v string) { r.StatusReason = v },
	"activestatusreason":   func(r *rawRecord, v string) { r.StatusReason = v },

	"active status source": func(r *rawRecord, v string) { r.StatusSource = v },
	"activestatussource":   func(r *rawRecord, v string) { r.StatusSource = v },
}

// DecodeCSV decodes header-labeled CSV records. Unrecognized columns are
// ignored; short rows fail.
func DecodeCSV(r io.Reader) ([]schema.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	setters := make([]func(*rawRecord, string), len(header))
	matched := 0
	for i, name := range header {
		if setter, ok := csvColumns[strings.ToLower(strings.TrimSpace(name))]; ok {
			setters[i] = setter
			matched++
		}
	}
	if matched == 0 {
		return nil, fmt.Errorf("no recognized columns in CSV header: %v", header)
	}

	var records []schema.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		var raw rawRecord
		for i, value := range row {
			if i < len(setters) && setters[i] != nil {
				setters[i](&raw, value)
			}
		}
		records = append(records, raw.normalize())
	}
	return records, nil
}
