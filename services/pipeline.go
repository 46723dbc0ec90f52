package services

import (
	"strings"

	"flight-tracker/models"
	"flight-tracker/utils"
)

const (
	// maxListings bounds how many matched elements are parsed per run.
	maxListings = 10
	// maxFallbackMatches bounds the whole-page price scan.
	maxFallbackMatches = 20
	// maxFallbackTextLen filters out oversized blocks in fallback mode —
	// whole sections of page chrome also contain currency markers.
	maxFallbackTextLen = 200
)

// Pipeline turns a snapshot into an ordered sequence of flight records.
// It holds no state between calls and never fails: the worst case is an
// empty result.
type Pipeline struct {
	logger   *utils.Logger
	resolver *Resolver
}

// NewPipeline creates a Pipeline with the default selector strategies.
func NewPipeline(logger *utils.Logger) *Pipeline {
	return &Pipeline{logger: logger, resolver: NewResolver(logger)}
}

// Extract parses all listings out of snapshot. When the resolver finds a
// listing container, up to maxListings elements are fully parsed; otherwise
// the degraded fallback scans every element for a currency marker and emits
// price-only records. Output order always follows snapshot order and
// repeated calls on the same snapshot yield identical results.
func (p *Pipeline) Extract(snapshot *models.Snapshot) []*models.FlightRecord {
	elements, ok := p.resolver.Resolve(snapshot)
	if !ok {
		p.logger.Warn("[extract] No selector strategy validated — falling back to whole-page price scan")
		return p.fallbackScan(snapshot)
	}

	if len(elements) > maxListings {
		elements = elements[:maxListings]
	}

	records := make([]*models.FlightRecord, 0, len(elements))
	for i, el := range elements {
		rec := buildRecord(el.Text, i+1)
		if rec == nil {
			p.logger.Debug("[extract] Element %d has neither price nor duration — dropped as noise", i+1)
			continue
		}
		records = append(records, rec)
	}

	p.logger.Info("[extract] Parsed %d flight records from %d listing elements", len(records), len(elements))
	return records
}

// buildRecord parses one listing block. A record is only kept when at least
// one of price or duration parsed; blocks with neither are presumed to be
// non-listing text that slipped past the resolver's validation.
func buildRecord(text string, index int) *models.FlightRecord {
	price := ExtractPrice(text)
	duration := ExtractDuration(text)
	if price == 0 && duration == 0 {
		return nil
	}

	departure, arrival := ExtractTimes(text)
	return &models.FlightRecord{
		Index:           index,
		Price:           price,
		Airline:         ExtractAirline(text),
		DepartureTime:   departure,
		ArrivalTime:     arrival,
		DurationMinutes: duration,
		Stops:           ExtractStops(text),
		RawText:         strings.TrimSpace(text),
	}
}

// fallbackScan is the degraded mode: every element with a currency marker
// becomes a price-only record. Structure is traded for coverage — all
// fields besides price, raw text and index stay unknown.
func (p *Pipeline) fallbackScan(snapshot *models.Snapshot) []*models.FlightRecord {
	var records []*models.FlightRecord
	matches := 0
	for _, el := range snapshot.Elements {
		if !hasCurrencyMarker(el.Text) {
			continue
		}
		matches++
		if matches > maxFallbackMatches {
			break
		}
		if len(el.Text) >= maxFallbackTextLen {
			continue
		}
		records = append(records, &models.FlightRecord{
			Index:   matches,
			Price:   ExtractPrice(el.Text),
			Stops:   models.StopsUnknown,
			RawText: strings.TrimSpace(el.Text),
		})
	}

	p.logger.Info("[extract] Fallback scan produced %d price-only records", len(records))
	return records
}
