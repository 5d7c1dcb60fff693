package recstore

import (
	"encoding/json"
	"time"

	"github.com/huangsam/riskboard/schema"
)

// compactRecord is the persisted row payload. Key names are shortened to
// keep stored payloads small on constrained backends.
type compactRecord struct {
	MemberID        string `json:"mn"`
	DependentCode   string `json:"dc"`
	DiseaseProtocol string `json:"dpn"`
	RiskRating      string `json:"rrn"`
	CalculationType string `json:"rctn"`
	DateCalculated  string `json:"dt"`
	IsActive        bool   `json:"ia"`
	StatusReason    string `json:"asr,omitempty"`
	StatusSource    string `json:"ass,omitempty"`
}

// encodeRecord marshals one record into its compact payload.
func encodeRecord(r *schema.Record) (string, error) {
	compact := compactRecord{
		MemberID:        r.MemberID,
		DependentCode:   r.DependentCode,
		DiseaseProtocol: r.DiseaseProtocol,
		RiskRating:      string(r.RiskRating),
		CalculationType: r.CalculationType,
		IsActive:        r.IsActive,
		StatusReason:    r.StatusReason,
		StatusSource:    r.StatusSource,
	}
	if !r.DateCalculated.IsZero() {
		compact.DateCalculated = r.DateCalculated.Format(time.RFC3339)
	}

	payload, err := json.Marshal(compact)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// decodeRecord unmarshals one compact payload back into a record.
func decodeRecord(payload string) (schema.Record, error) {
	var compact compactRecord
	if err := json.Unmarshal([]byte(payload), &compact); err != nil {
		return schema.Record{}, err
	}

	record := schema.Record{
		MemberID:        compact.MemberID,
		DependentCode:   compact.DependentCode,
		DiseaseProtocol: compact.DiseaseProtocol,
		RiskRating:      schema.RiskRating(compact.RiskRating),
		CalculationType: compact.CalculationType,
		IsActive:        compact.IsActive,
		StatusReason:    compact.StatusReason,
		StatusSource:    compact.StatusSource,
	}
	if compact.DateCalculated != "" {
		if t, err := time.Parse(time.RFC3339, compact.DateCalculated); err == nil {
			record.DateCalculated = t
		}
	}
	return record, nil
}
