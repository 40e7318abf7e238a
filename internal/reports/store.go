// Package reports persists community-submitted invasive plant sightings.
package reports

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Report is one submitted sighting of an invasive plant.
type Report struct {
	ID             int64     `json:"id"`
	PlantName      string    `json:"plant_name"`
	ScientificName string    `json:"scientific_name,omitempty"`
	Description    string    `json:"description,omitempty"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	LocationName   string    `json:"location_name,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// StatusPending is the status assigned to newly submitted reports.
const StatusPending = "pending"

// Store is a SQLite-backed report store.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the report database at path. Use ":memory:" for
// an ephemeral store.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report database: %w", err)
	}
	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)

	if err := createTable(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize report database: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

func createTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS plant_reports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			plant_name TEXT NOT NULL,
			scientific_name TEXT,
			description TEXT,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			location_name TEXT,
			status TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);`
	_, err := db.Exec(query)
	return err
}

// Insert stores a new report and returns it with ID, status and timestamp set.
func (s *Store) Insert(ctx context.Context, r Report) (Report, error) {
	r.Status = StatusPending
	r.CreatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO plant_reports
			(plant_name, scientific_name, description, latitude, longitude, location_name, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.PlantName, r.ScientificName, r.Description,
		r.Latitude, r.Longitude, r.LocationName, r.Status, r.CreatedAt,
	)
	if err != nil {
		return Report{}, fmt.Errorf("failed to insert report: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Report{}, fmt.Errorf("failed to read report id: %w", err)
	}
	r.ID = id

	s.logger.InfoContext(ctx, "report stored",
		slog.Int64("id", r.ID),
		slog.String("plant", r.PlantName),
	)

	return r, nil
}

// List returns up to limit reports, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, plant_name, scientific_name, description, latitude, longitude, location_name, status, created_at
		FROM plant_reports
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := make([]Report, 0, limit)
	for rows.Next() {
		var r Report
		if err := rows.Scan(
			&r.ID, &r.PlantName, &r.ScientificName, &r.Description,
			&r.Latitude, &r.Longitude, &r.LocationName, &r.Status, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reports: %w", err)
	}

	return reports, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
