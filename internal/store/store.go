// Package store handles SQLite persistence of analytics reports.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/keybeat/keybeat/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for report data.
type Store struct {
	db *sql.DB
}

// Record is one persisted report with its queryable scalars lifted out of
// the JSON body.
type Record struct {
	ID              string
	CreatedAt       time.Time
	TextLength      int
	EventCount      int
	WPM             *float64
	Accuracy        *float64
	Consistency     *float64
	ValidationScore int
	Suspicious      bool
	Synthetic       bool
	Report          model.AnalyticsReport
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			text_length INTEGER NOT NULL,
			event_count INTEGER NOT NULL,
			wpm REAL,
			accuracy REAL,
			consistency REAL,
			validation_score INTEGER NOT NULL,
			suspicious INTEGER NOT NULL,
			synthetic INTEGER NOT NULL,
			report_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_reports_suspicious ON reports(suspicious);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertReport persists a completed report and returns its generated ID.
func (s *Store) InsertReport(ctx context.Context, rec Record) (string, error) {
	body, err := json.Marshal(rec.Report)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, created_at, text_length, event_count, wpm, accuracy, consistency, validation_score, suspicious, synthetic, report_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		createdAt.Format(time.RFC3339Nano),
		rec.TextLength,
		rec.EventCount,
		nullFloat(rec.WPM),
		nullFloat(rec.Accuracy),
		nullFloat(rec.Consistency),
		rec.ValidationScore,
		boolInt(rec.Suspicious),
		boolInt(rec.Synthetic),
		string(body),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListReports returns the most recent reports, newest first. A non-positive
// limit returns everything.
func (s *Store) ListReports(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT id, created_at, text_length, event_count, wpm, accuracy, consistency, validation_score, suspicious, synthetic, report_json
		FROM reports
		ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// GetReport fetches a single report by ID.
func (s *Store) GetReport(ctx context.Context, id string) (Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, text_length, event_count, wpm, accuracy, consistency, validation_score, suspicious, synthetic, report_json
		 FROM reports WHERE id = ?`, id)
	if err != nil {
		return Record{}, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Record{}, err
		}
		return Record{}, sql.ErrNoRows
	}
	return scanRecord(rows)
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	var createdAt, body string
	var wpm, accuracy, consistency sql.NullFloat64
	var suspicious, synthetic int
	if err := rows.Scan(&rec.ID, &createdAt, &rec.TextLength, &rec.EventCount, &wpm, &accuracy, &consistency, &rec.ValidationScore, &suspicious, &synthetic, &body); err != nil {
		return Record{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Record{}, err
	}
	rec.CreatedAt = parsed
	rec.WPM = fromNullFloat(wpm)
	rec.Accuracy = fromNullFloat(accuracy)
	rec.Consistency = fromNullFloat(consistency)
	rec.Suspicious = suspicious != 0
	rec.Synthetic = synthetic != 0
	if err := json.Unmarshal([]byte(body), &rec.Report); err != nil {
		return Record{}, fmt.Errorf("failed to decode report %s: %w", rec.ID, err)
	}
	return rec, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
