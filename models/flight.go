package models

import "time"

// Element is one candidate DOM element captured by the automation layer.
// Only the attributes the selector strategies match on are retained.
type Element struct {
	Tag          string
	Classes      string // raw class attribute
	Role         string // role attribute (inherited from a role="list" parent for li)
	JSController string // jscontroller attribute
	DataVed      string // data-ved tracking attribute
	Text         string // rendered text content
}

// Snapshot is a point-in-time, read-only capture of the rendered results
// page. The extraction pipeline borrows it for one call and never mutates it.
type Snapshot struct {
	URL        string
	CapturedAt time.Time
	Elements   []Element
}

// StopClass classifies how many stops a flight has.
type StopClass string

const (
	Nonstop       StopClass = "nonstop"
	OneStop       StopClass = "1 stop"
	TwoStops      StopClass = "2 stops"
	MultipleStops StopClass = "multiple stops"
	StopsUnknown  StopClass = "unknown"
)

// FlightRecord is one parsed listing. Every field except RawText and Index is
// best-effort: a zero value means the field could not be parsed, which is
// expected and not an error. Prices are strictly positive, so Price == 0
// means "no price found".
type FlightRecord struct {
	Index           int // 1-based position within the matched element set
	Price           float64
	Airline         string
	DepartureTime   string // local clock time, e.g. "6:00 AM"
	ArrivalTime     string
	DurationMinutes int
	Stops           StopClass
	RawText         string // source of truth, never empty
}

// SearchRecord is one persisted search run. Immutable after creation.
type SearchRecord struct {
	ID            int64
	Origin        string
	Destination   string
	DepartureDate string // ISO date, "" when not specified
	ReturnDate    string
	SearchedAt    time.Time
}

// PriceHistoryPoint is one row of the per-day price aggregation for a route.
// Derived at query time, never stored.
type PriceHistoryPoint struct {
	Date     string // calendar day, YYYY-MM-DD
	MinPrice float64
	AvgPrice float64
	MaxPrice float64
}

// RouteReport holds the computed analytics over one extraction run.
type RouteReport struct {
	Origin        string
	Destination   string
	TotalFlights  int
	PricedFlights int
	AveragePrice  float64
	MinPrice      float64
	MaxPrice      float64
	Cheapest      *FlightRecord
	ByAirline     map[string]int
	ByStops       map[StopClass]int
}
