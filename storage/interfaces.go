package storage

import "flight-tracker/models"

// FlightStore is the interface any persistence backend must satisfy.
type FlightStore interface {
	// CreateSearch records one search run and returns it with its
	// generated identifier and timestamp assigned.
	CreateSearch(origin, destination, departureDate, returnDate string) (*models.SearchRecord, error)
	// SaveFlights persists all records under one search atomically. Either
	// every record is written and the count returned, or none are.
	SaveFlights(searchID int64, records []*models.FlightRecord) (int, error)
	// PriceHistory aggregates min/avg/max price per calendar day for a
	// route over the last windowDays days, ascending by date. Days with no
	// priced flights are omitted.
	PriceHistory(origin, destination string, windowDays int) ([]*models.PriceHistoryPoint, error)
	Close() error
}

// RawRecordWriter is the interface for exporting unprocessed extraction
// output before it is persisted.
type RawRecordWriter interface {
	WriteRaw(search *models.SearchRecord, records []*models.FlightRecord) error
	Close() error
}
