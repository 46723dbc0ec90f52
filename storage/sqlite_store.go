package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"flight-tracker/models"
)

const timeLayout = "2006-01-02 15:04:05"

// SQLiteStore persists searches and flights in a local SQLite file.
// This is the default backend.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database file at path, runs schema
// migrations, and returns a ready-to-use store. Intermediate directories are
// created automatically.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("sqlite: create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// A single connection keeps the foreign_keys pragma in effect for every
	// statement and sidesteps writer contention on the file.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS flight_searches (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			search_date    TEXT NOT NULL,
			origin         TEXT NOT NULL,
			destination    TEXT NOT NULL,
			departure_date TEXT,
			return_date    TEXT
		);

		CREATE TABLE IF NOT EXISTS flights (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			search_id        INTEGER NOT NULL REFERENCES flight_searches(id) ON DELETE CASCADE,
			price            REAL,
			airline          TEXT NOT NULL DEFAULT '',
			departure_time   TEXT NOT NULL DEFAULT '',
			arrival_time     TEXT NOT NULL DEFAULT '',
			duration_minutes INTEGER NOT NULL DEFAULT 0,
			stops            TEXT NOT NULL DEFAULT 'unknown',
			raw_text         TEXT NOT NULL CHECK (raw_text <> '')
		);

		CREATE INDEX IF NOT EXISTS idx_searches_route ON flight_searches(origin, destination, search_date);
		CREATE INDEX IF NOT EXISTS idx_flights_search ON flights(search_id);
	`)
	return err
}

// CreateSearch inserts one search row and returns the populated record.
func (s *SQLiteStore) CreateSearch(origin, destination, departureDate, returnDate string) (*models.SearchRecord, error) {
	now := time.Now().UTC()
	res, err := s.db.Exec(`
		INSERT INTO flight_searches (search_date, origin, destination, departure_date, return_date)
		VALUES (?, ?, ?, ?, ?)
	`, now.Format(timeLayout), origin, destination, nullString(departureDate), nullString(returnDate))
	if err != nil {
		return nil, fmt.Errorf("sqlite: insert search: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("sqlite: search id: %w", err)
	}

	return &models.SearchRecord{
		ID:            id,
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departureDate,
		ReturnDate:    returnDate,
		SearchedAt:    now,
	}, nil
}

// SaveFlights writes all records under searchID in a single transaction.
// On any failure the transaction rolls back and the now-flightless search
// row is removed, so a failed save leaves nothing behind.
func (s *SQLiteStore) SaveFlights(searchID int64, records []*models.FlightRecord) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO flights (search_id, price, airline, departure_time, arrival_time, duration_minutes, stops, raw_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(
			searchID, nullPrice(r.Price), r.Airline, r.DepartureTime,
			r.ArrivalTime, r.DurationMinutes, string(r.Stops), r.RawText,
		); err != nil {
			// Release the connection before dropSearch needs it: the pool
			// holds a single connection and the open transaction owns it.
			_ = stmt.Close()
			_ = tx.Rollback()
			s.dropSearch(searchID)
			return 0, fmt.Errorf("sqlite: insert flight %d: %w", r.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		s.dropSearch(searchID)
		return 0, fmt.Errorf("sqlite: commit: %w", err)
	}
	return len(records), nil
}

// dropSearch removes a search whose flights failed to persist, so no
// zero-flight search rows survive a failed save. Best effort.
func (s *SQLiteStore) dropSearch(searchID int64) {
	_, _ = s.db.Exec(`DELETE FROM flight_searches WHERE id = ?`, searchID)
}

// PriceHistory aggregates per-day price stats for a route. Unpriced flights
// never contribute; days without a single priced flight are omitted.
func (s *SQLiteStore) PriceHistory(origin, destination string, windowDays int) ([]*models.PriceHistoryPoint, error) {
	rows, err := s.db.Query(`
		SELECT DATE(fs.search_date) AS day,
		       MIN(f.price), AVG(f.price), MAX(f.price)
		FROM flight_searches fs
		JOIN flights f ON f.search_id = fs.id
		WHERE fs.origin = ? AND fs.destination = ?
			AND fs.search_date >= datetime('now', ?)
			AND f.price IS NOT NULL
		GROUP BY DATE(fs.search_date)
		ORDER BY day
	`, origin, destination, fmt.Sprintf("-%d days", windowDays))
	if err != nil {
		return nil, fmt.Errorf("sqlite: price history: %w", err)
	}
	defer rows.Close()

	var points []*models.PriceHistoryPoint
	for rows.Next() {
		p := &models.PriceHistoryPoint{}
		if err := rows.Scan(&p.Date, &p.MinPrice, &p.AvgPrice, &p.MaxPrice); err != nil {
			return nil, fmt.Errorf("sqlite: scan history row: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// nullPrice maps the "no price parsed" zero value to SQL NULL so that
// aggregation queries can skip it.
func nullPrice(price float64) interface{} {
	if price > 0 {
		return price
	}
	return nil
}

func nullString(v string) interface{} {
	if v != "" {
		return v
	}
	return nil
}
