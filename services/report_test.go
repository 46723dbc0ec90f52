package services

import (
	"testing"

	"flight-tracker/models"
)

func sampleRecords() []*models.FlightRecord {
	return []*models.FlightRecord{
		{Index: 1, Price: 450, Airline: "Delta", DurationMinutes: 330, Stops: models.Nonstop, RawText: "a"},
		{Index: 2, Price: 320, Airline: "United", DurationMinutes: 505, Stops: models.OneStop, RawText: "b"},
		{Index: 3, Price: 510, Airline: "Delta", DurationMinutes: 372, Stops: models.Nonstop, RawText: "c"},
		{Index: 4, Price: 0, Airline: "", DurationMinutes: 300, Stops: models.StopsUnknown, RawText: "d"},
	}
}

func TestReportCounts(t *testing.T) {
	svc := NewReportService(newTestLogger())
	r := svc.Generate("JFK", "LAX", sampleRecords())
	if r.TotalFlights != 4 {
		t.Errorf("TotalFlights: got %d, want 4", r.TotalFlights)
	}
	if r.PricedFlights != 3 {
		t.Errorf("PricedFlights: got %d, want 3", r.PricedFlights)
	}
}

func TestReportPrices(t *testing.T) {
	svc := NewReportService(newTestLogger())
	r := svc.Generate("JFK", "LAX", sampleRecords())
	if r.MinPrice != 320 {
		t.Errorf("MinPrice: got %.2f, want 320", r.MinPrice)
	}
	if r.MaxPrice != 510 {
		t.Errorf("MaxPrice: got %.2f, want 510", r.MaxPrice)
	}
	wantAvg := 426.67
	if r.AveragePrice != wantAvg {
		t.Errorf("AveragePrice: got %.2f, want %.2f", r.AveragePrice, wantAvg)
	}
}

func TestReportCheapest(t *testing.T) {
	svc := NewReportService(newTestLogger())
	r := svc.Generate("JFK", "LAX", sampleRecords())
	if r.Cheapest == nil {
		t.Fatal("Cheapest should not be nil")
	}
	if r.Cheapest.Index != 2 {
		t.Errorf("Cheapest: got record %d, want record 2", r.Cheapest.Index)
	}
}

func TestReportGrouping(t *testing.T) {
	svc := NewReportService(newTestLogger())
	r := svc.Generate("JFK", "LAX", sampleRecords())
	if r.ByAirline["Delta"] != 2 {
		t.Errorf("Delta count: got %d, want 2", r.ByAirline["Delta"])
	}
	if r.ByAirline["United"] != 1 {
		t.Errorf("United count: got %d, want 1", r.ByAirline["United"])
	}
	if r.ByStops[models.Nonstop] != 2 {
		t.Errorf("Nonstop count: got %d, want 2", r.ByStops[models.Nonstop])
	}
}

func TestReportEmptyInput(t *testing.T) {
	svc := NewReportService(newTestLogger())
	r := svc.Generate("JFK", "LAX", nil)
	if r.TotalFlights != 0 || r.Cheapest != nil {
		t.Error("empty input should produce an empty report")
	}
}
