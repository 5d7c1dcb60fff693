// Package parquet provides data structures and functions for exporting risk
// records and rankings to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/huangsam/riskboard/schema"
	"github.com/parquet-go/parquet-go"
)

// RiskRecord represents a single risk calculation record for export.
// This struct maps to the riskboard_records store payloads.
type RiskRecord struct {
	// MemberID is the scheme member number
	MemberID string `parquet:"member_id,snappy"`

	// DependentCode distinguishes dependents under one member number
	DependentCode string `parquet:"dependent_code,snappy"`

	// DiseaseProtocol is the disease protocol the record was calculated for
	DiseaseProtocol string `parquet:"disease_protocol,snappy"`

	// RiskRating is the assessed risk level
	RiskRating string `parquet:"risk_rating,snappy"`

	// CalculationType is the method used to calculate the rating
	CalculationType string `parquet:"calculation_type,snappy"`

	// DateCalculated is when the rating was computed (nullable)
	DateCalculated *time.Time `parquet:"date_calculated,optional,snappy"`

	// IsActive marks whether the record counts toward chart aggregations
	IsActive bool `parquet:"is_active,snappy"`

	// StatusReason explains an inactive status (nullable)
	StatusReason *string `parquet:"status_reason,optional,snappy"`

	// StatusSource names the system that set the status (nullable)
	StatusSource *string `parquet:"status_source,optional,snappy"`
}

// RankedMemberRow represents one ranked high-risk member for export.
type RankedMemberRow struct {
	// Rank is the 1-based position after sorting
	Rank int32 `parquet:"rank,snappy"`

	// MemberKey is the composite member-dependent identity
	MemberKey string `parquet:"member_key,snappy"`

	// Diseases is the pipe-joined distinct disease list
	Diseases string `parquet:"diseases,snappy"`

	// DiseaseCount is the number of distinct diseases
	DiseaseCount int32 `parquet:"disease_count,snappy"`

	// HighestRisk is the most severe risk level observed
	HighestRisk string `parquet:"highest_risk,snappy"`

	// PriorityScore is the computed care-priority score
	PriorityScore float64 `parquet:"priority_score,snappy"`

	// LatestDate is the most recent calculation date (nullable)
	LatestDate *time.Time `parquet:"latest_date,optional,snappy"`
}

// WriteRecordsParquet writes risk records to a Parquet file.
func WriteRecordsParquet(records []schema.Record, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the RiskRecord struct tags
	writer := parquet.NewGenericWriter[RiskRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(ConvertRecords(records)); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteRankedMembersParquet writes ranked members to a Parquet file.
func WriteRankedMembersParquet(members []schema.RankedMember, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the RankedMemberRow struct tags
	writer := parquet.NewGenericWriter[RankedMemberRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(ConvertRankedMembers(members)); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRecords converts schema.Record to RiskRecord for Parquet export.
func ConvertRecords(records []schema.Record) []RiskRecord {
	result := make([]RiskRecord, len(records))
	for i, record := range records {
		row := RiskRecord{
			MemberID:        record.MemberID,
			DependentCode:   record.DependentCode,
			DiseaseProtocol: record.DiseaseProtocol,
			RiskRating:      string(record.RiskRating),
			CalculationType: record.CalculationType,
			IsActive:        record.IsActive,
		}
		if !record.DateCalculated.IsZero() {
			date := record.DateCalculated
			row.DateCalculated = &date
		}
		if record.StatusReason != "" {
			reason := record.StatusReason
			row.StatusReason = &reason
		}
		if record.StatusSource != "" {
			source := record.StatusSource
			row.StatusSource = &source
		}
		result[i] = row
	}
	return result
}

// ConvertRankedMembers converts schema.RankedMember to RankedMemberRow for Parquet export.
func ConvertRankedMembers(members []schema.RankedMember) []RankedMemberRow {
	result := make([]RankedMemberRow, len(members))
	for i, member := range members {
		row := RankedMemberRow{
			Rank:          int32(member.Rank),
			MemberKey:     member.Key(),
			Diseases:      strings.Join(member.Diseases, "|"),
			DiseaseCount:  int32(member.DiseaseCount),
			HighestRisk:   string(member.HighestRisk),
			PriorityScore: member.PriorityScore,
		}
		if !member.LatestDate.IsZero() {
			date := member.LatestDate
			row.LatestDate = &date
		}
		result[i] = row
	}
	return result
}
