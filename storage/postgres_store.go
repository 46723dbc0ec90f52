package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"flight-tracker/models"
)

// PostgresStore persists searches and flights in PostgreSQL. Selected via
// STORAGE_BACKEND=postgres for deployments with a shared database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use store.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS flight_searches (
			id             SERIAL PRIMARY KEY,
			search_date    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			origin         TEXT NOT NULL,
			destination    TEXT NOT NULL,
			departure_date DATE,
			return_date    DATE
		);

		CREATE TABLE IF NOT EXISTS flights (
			id               SERIAL PRIMARY KEY,
			search_id        INTEGER NOT NULL REFERENCES flight_searches(id) ON DELETE CASCADE,
			price            NUMERIC(10,2),
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
func (s *PostgresStore) CreateSearch(origin, destination, departureDate, returnDate string) (*models.SearchRecord, error) {
	var id int64
	var searchedAt time.Time
	err := s.db.QueryRow(`
		INSERT INTO flight_searches (origin, destination, departure_date, return_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, search_date
	`, origin, destination, nullString(departureDate), nullString(returnDate)).Scan(&id, &searchedAt)
	if err != nil {
		return nil, fmt.Errorf("postgres: insert search: %w", err)
	}

	return &models.SearchRecord{
		ID:            id,
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departureDate,
		ReturnDate:    returnDate,
		SearchedAt:    searchedAt,
	}, nil
}

// SaveFlights writes all records under searchID in a single transaction.
// On any failure the transaction rolls back and the search row is removed.
func (s *PostgresStore) SaveFlights(searchID int64, records []*models.FlightRecord) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO flights (search_id, price, airline, departure_time, arrival_time, duration_minutes, stops, raw_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return 0, fmt.Errorf("postgres: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(
			searchID, nullPrice(r.Price), r.Airline, r.DepartureTime,
			r.ArrivalTime, r.DurationMinutes, string(r.Stops), r.RawText,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			s.dropSearch(searchID)
			return 0, fmt.Errorf("postgres: insert flight %d: %w", r.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		s.dropSearch(searchID)
		return 0, fmt.Errorf("postgres: commit: %w", err)
	}
	return len(records), nil
}

func (s *PostgresStore) dropSearch(searchID int64) {
	_, _ = s.db.Exec(`DELETE FROM flight_searches WHERE id = $1`, searchID)
}

// PriceHistory aggregates per-day price stats for a route.
func (s *PostgresStore) PriceHistory(origin, destination string, windowDays int) ([]*models.PriceHistoryPoint, error) {
	rows, err := s.db.Query(`
		SELECT TO_CHAR(fs.search_date::date, 'YYYY-MM-DD') AS day,
		       MIN(f.price), AVG(f.price), MAX(f.price)
		FROM flight_searches fs
		JOIN flights f ON f.search_id = fs.id
		WHERE fs.origin = $1 AND fs.destination = $2
			AND fs.search_date >= NOW() - make_interval(days => $3)
			AND f.price IS NOT NULL
		GROUP BY fs.search_date::date
		ORDER BY fs.search_date::date
	`, origin, destination, windowDays)
	if err != nil {
		return nil, fmt.Errorf("postgres: price history: %w", err)
	}
	defer rows.Close()

	var points []*models.PriceHistoryPoint
	for rows.Next() {
		p := &models.PriceHistoryPoint{}
		if err := rows.Scan(&p.Date, &p.MinPrice, &p.AvgPrice, &p.MaxPrice); err != nil {
			return nil, fmt.Errorf("postgres: scan history row: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
