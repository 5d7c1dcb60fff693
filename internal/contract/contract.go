package contract

import (
	"context"

	"github.com/huangsam/riskboard/schema"
)

// RecordSource loads risk records from somewhere: a local CSV or JSON
// file, a remote endpoint, or a persistence backend.
type RecordSource interface {
	// Load fetches and decodes the full record list
	Load(ctx context.Context) ([]schema.Record, error)
}

// RecordStore persists records across sessions. Implementations cover
// the SQL backends plus a no-op backend for store-less runs.
type RecordStore interface {
	// SaveRecords replaces the stored record set
	SaveRecords(ctx context.Context, records []schema.Record) error

	// LoadRecords returns the stored record set
	LoadRecords(ctx context.Context) ([]schema.Record, error)

	// GetStatus reports backend connectivity and size information
	GetStatus(ctx context.Context) (schema.StoreStatus, error)

	// Clear deletes all stored records
	Clear(ctx context.Context) error

	// Close releases the underlying connection
	Close() error
}

// ChartHandle is a rendered chart as seen by the element resolver. The
// renderer owns pixels and hit testing; the resolver only walks this
// surface.
type ChartHandle interface {
	// ID returns the chart identifier
	ID() schema.ChartID

	// Data returns the labels and values the chart renders
	Data() schema.ChartData

	// Geometry describes the rendered chart for manual geometry search
	Geometry() schema.ChartGeometry

	// ElementsAt hit-tests a canvas position under the given interaction
	// mode, exact containment when intersect is true
	ElementsAt(pos schema.Point, mode schema.HitMode, intersect bool) []schema.HitElement

	// ElementGeometry returns the rendered geometry of one element, false
	// when the indices are out of range
	ElementGeometry(datasetIndex, index int) (schema.ElementGeometry, bool)

	// DatasetCount returns the number of rendered datasets
	DatasetCount() int

	// DatasetLen returns the element count of one rendered dataset
	DatasetLen(datasetIndex int) int
}
