package schema

import "time"

// StoreStatus reports the health and contents of the record store.
type StoreStatus struct {
	// Backend is the configured store backend name
	Backend DatabaseBackend `json:"backend"`

	// Connected reports whether a live database connection exists
	Connected bool `json:"connected"`

	// TotalRecords is the number of persisted records
	TotalRecords int `json:"totalRecords"`

	// LastSavedTime is when the dataset was last written
	LastSavedTime time.Time `json:"lastSavedTime,omitzero"`

	// TableSizeBytes is the approximate on-disk table size
	TableSizeBytes int64 `json:"tableSizeBytes"`
}
