package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/huangsam/riskboard/schema"
	"github.com/stretchr/testify/assert"
)

func TestDecodeJSON(t *testing.T) {
	payload := `[
		{
			"memberId": " M100 ",
			"dependentCode": "02",
			"diseaseProtocol": "Asthma",
			"riskRating": "High Risk",
			"riskCalculationType": "Adherence",
			"dateCalculated": "2024-03-05T10:30:00Z",
			"isActive": true
		},
		{
			"memberId": "M200",
			"riskRating": "",
			"isActive": "yes"
		}
	]`

	records, err := DecodeJSON(strings.NewReader(payload))
	assert.NoError(t, err)
	assert.Len(t, records, 2)

	t.Run("fields trimmed and parsed", func(t *testing.T) {
		r := records[0]
		assert.Equal(t, "M100", r.MemberID)
		assert.Equal(t, "02", r.DependentCode)
		assert.Equal(t, schema.HighRisk, r.RiskRating)
		assert.Equal(t, time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC), r.DateCalculated)
		assert.True(t, r.IsActive)
	})

	t.Run("absent fields get defaults", func(t *testing.T) {
		r := records[1]
		assert.Equal(t, "0", r.DependentCode)
		assert.Equal(t, "Unknown", r.DiseaseProtocol)
		assert.Equal(t, schema.UnknownRisk, r.RiskRating)
		assert.Equal(t, "Unknown", r.CalculationType)
		assert.True(t, r.IsActive) // textual yes
		assert.False(t, r.HasDate())
	})
}

func TestDecodeJSONFlexibleActiveFlag(t *testing.T) {
	payload := `[
		{"memberId": "A", "isActive": true},
		{"memberId": "B", "isActive": 1},
		{"memberId": "C", "isActive": 0},
		{"memberId": "D", "isActive": "Active"},
		{"memberId": "E", "isActive": "no"}
	]`

	records, err := DecodeJSON(strings.NewReader(payload))
	assert.NoError(t, err)
	if assert.Len(t, records, 5) {
		assert.True(t, records[0].IsActive)
		assert.True(t, records[1].IsActive)
		assert.False(t, records[2].IsActive)
		assert.True(t, records[3].IsActive)
		assert.False(t, records[4].IsActive)
	}
}

func TestDecodeJSONSerialDate(t *testing.T) {
	// 45000 days from the spreadsheet epoch is 2023-03-15.
	payload := `[{"memberId": "A", "isActive": true, "dateCalculated": 45000}]`

	records, err := DecodeJSON(strings.NewReader(payload))
	assert.NoError(t, err)
	if assert.Len(t, records, 1) {
		assert.Equal(t, time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), records[0].DateCalculated)
	}
}

func TestDecodeJSONUnparseableDate(t *testing.T) {
	payload := `[{"memberId": "A", "isActive": true, "dateCalculated": "not a date"}]`

	records, err := DecodeJSON(strings.NewReader(payload))
	assert.NoError(t, err)
	if assert.Len(t, records, 1) {
		assert.False(t, records[0].HasDate())
	}
}

func TestDecodeJSONInvalidPayload(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`{"not": "an array"}`))
	assert.Error(t, err)
}

func TestDecodeCSVExportHeaders(t *testing.T) {
	payload := strings.Join([]string{
		"Member Number,Dependent Code,Disease Protocol Name,Risk Rating Name,Risk Calculation Type Name,Date Calculated,Is Active",
		"M100,02,Asthma,High Risk,Adherence,2024-03-05,true",
		"M200,,COPD,Low Risk,Clinical,,no",
	}, "\n")

	records, err := DecodeCSV(strings.NewReader(payload))
	assert.NoError(t, err)
	assert.Len(t, records, 2)

	r := records[0]
	assert.Equal(t, "M100", r.MemberID)
	assert.Equal(t, "Asthma", r.DiseaseProtocol)
	assert.Equal(t, schema.HighRisk, r.RiskRating)
	assert.True(t, r.IsActive)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), r.DateCalculated)

	assert.Equal(t, "0", records[1].DependentCode)
	assert.False(t, records[1].IsActive)
	assert.False(t, records[1].HasDate())
}

func TestDecodeCSVJSONStyleHeaders(t *testing.T) {
	payload := strings.Join([]string{
		"memberId,diseaseProtocol,riskRating,isActive",
		"M100,Asthma,High Risk,1",
	}, "\n")

	records, err := DecodeCSV(strings.NewReader(payload))
	assert.NoError(t, err)
	if assert.Len(t, records, 1) {
		assert.Equal(t, "M100", records[0].MemberID)
		assert.True(t, records[0].IsActive)
	}
}

func TestDecodeCSVUnrecognizedColumns(t *testing.T) {
	t.Run("extra columns ignored", func(t *testing.T) {
		payload := "memberId,favorite color,isActive\nM100,blue,true\n"
		records, err := DecodeCSV(strings.NewReader(payload))
		assert.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("no recognized columns fails", func(t *testing.T) {
		payload := "alpha,beta\n1,2\n"
		_, err := DecodeCSV(strings.NewReader(payload))
		assert.Error(t, err)
	})
}

func TestDecodeCSVEmptyBody(t *testing.T) {
	payload := "memberId,isActive\n"
	records, err := DecodeCSV(strings.NewReader(payload))
	assert.NoError(t, err)
	assert.Empty(t, records)
}
