// Package recstore persists risk records across sessions.
package recstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/riskboard/internal/contract"
	"github.com/huangsam/riskboard/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// recordsTable is the single table holding the persisted record set.
const recordsTable = "riskboard_records"

// RecordStoreImpl handles durable storage operations using various database backends.
type RecordStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
	connStr    string
}

var _ contract.RecordStore = &RecordStoreImpl{} // Compile-time check

// NewRecordStore initializes and returns a new RecordStore based on the backend type.
func NewRecordStore(backend schema.DatabaseBackend, connStr string) (contract.RecordStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetStoreDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for storage-less runs
		return &RecordStoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
			connStr:    connStr,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	// Ping to verify connection (skip for NoneBackend)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	// Create the table schema
	query := getCreateTableQuery(backend)
	if _, err := db.Exec(query); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", recordsTable, err)
	}

	return &RecordStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
	}, nil
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
// Row ids are assigned explicitly on save, so the column is portable across
// backends.
func getCreateTableQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id BIGINT PRIMARY KEY,
				payload TEXT NOT NULL,
				saved_at BIGINT NOT NULL
			);
		`, recordsTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id BIGINT PRIMARY KEY,
				payload TEXT NOT NULL,
				saved_at BIGINT NOT NULL
			);
		`, recordsTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id INTEGER PRIMARY KEY,
				payload TEXT NOT NULL,
				saved_at INTEGER NOT NULL
			);
		`, recordsTable)
	}
}

// getInsertQuery returns the row insert query with backend placeholders.
func (rs *RecordStoreImpl) getInsertQuery() string {
	switch rs.backend {
	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (record_id, payload, saved_at) VALUES ($1, $2, $3)`, recordsTable)
	default: // SQLite and MySQL
		return fmt.Sprintf(`INSERT INTO %s (record_id, payload, saved_at) VALUES (?, ?, ?)`, recordsTable)
	}
}

// SaveRecords replaces the stored record set atomically. A failed save is
// retried once after clearing the table, degrading to an empty store
// rather than failing outright when the backend runs out of space.
func (rs *RecordStoreImpl) SaveRecords(ctx context.Context, records []schema.Record) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	if err := rs.saveOnce(ctx, records); err != nil {
		contract.LogWarn("record save failed, clearing store and retrying", err)
		if clearErr := rs.Clear(ctx); clearErr != nil {
			return fmt.Errorf("failed to clear store after save error: %w", clearErr)
		}
		if retryErr := rs.saveOnce(ctx, records); retryErr != nil {
			return fmt.Errorf("failed to save records after retry: %w", retryErr)
		}
	}
	return nil
}

func (rs *RecordStoreImpl) saveOnce(ctx context.Context, records []schema.Record) error {
	tx, err := rs.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", recordsTable)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, rs.getInsertQuery())
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	savedAt := time.Now().Unix()
	for i := range records {
		payload, err := encodeRecord(&records[i])
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, i+1, payload, savedAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadRecords returns the stored record set in save order.
func (rs *RecordStoreImpl) LoadRecords(ctx context.Context) ([]schema.Record, error) {
	// Return empty set for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT payload FROM %s ORDER BY record_id", recordsTable)
	rows, err := rs.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.Record
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		record, err := decodeRecord(payload)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Clear deletes all stored records.
func (rs *RecordStoreImpl) Clear(ctx context.Context) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}
	_, err := rs.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", recordsTable))
	return err
}

// Close closes the underlying DB connection.
func (rs *RecordStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the record store.
func (rs *RecordStoreImpl) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   rs.backend,
		Connected: rs.db != nil,
	}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	// Get total records
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", recordsTable)
	row := rs.db.QueryRowContext(ctx, countQuery)
	if err := row.Scan(&status.TotalRecords); err != nil {
		return status, fmt.Errorf("failed to get total records: %w", err)
	}

	if status.TotalRecords == 0 {
		return status, nil
	}

	// Get last saved time
	lastQuery := fmt.Sprintf("SELECT MAX(saved_at) FROM %s", recordsTable)
	row = rs.db.QueryRowContext(ctx, lastQuery)
	var lastTs int64
	if err := row.Scan(&lastTs); err != nil {
		return status, fmt.Errorf("failed to get last saved time: %w", err)
	}
	status.LastSavedTime = time.Unix(lastTs, 0)

	// Estimate table size (approximate)
	switch rs.backend {
	case schema.SQLiteBackend:
		sizeQuery := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
		row = rs.db.QueryRowContext(ctx, sizeQuery)
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			// If pragma fails, skip size
			status.TableSizeBytes = 0
		}
	case schema.MySQLBackend:
		// Fallback rough estimate if information_schema query fails
		status.TableSizeBytes = int64(status.TotalRecords) * 200

		cfg, err := mysql.ParseDSN(rs.connStr)
		if err != nil || cfg.DBName == "" {
			break
		}
		sizeQuery := "SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?"
		row = rs.db.QueryRowContext(ctx, sizeQuery, cfg.DBName, recordsTable)
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			status.TableSizeBytes = int64(status.TotalRecords) * 200
		}
	case schema.PostgreSQLBackend:
		sizeQuery := "SELECT pg_total_relation_size($1)"
		row = rs.db.QueryRowContext(ctx, sizeQuery, recordsTable)
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			status.TableSizeBytes = int64(status.TotalRecords) * 200 // Fallback rough estimate
		}
	default:
		status.TableSizeBytes = int64(status.TotalRecords) * 200 // Rough estimate
	}

	return status, nil
}
