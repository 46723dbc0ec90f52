package services

import (
	"testing"

	"flight-tracker/models"
)

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"$450 round trip", 450},
		{"$1,200", 1200},
		{"$1,200.50", 1200.50},
		{"from €89 one way", 89},
		{"Great deal: $99.99!", 99.99},
		{"no price here", 0},
		{"$", 0},
		{"call 1-800-FLY", 0},
		{"", 0},
	}

	for _, tt := range tests {
		got := ExtractPrice(tt.text)
		if got != tt.want {
			t.Errorf("ExtractPrice(%q) = %.2f; want %.2f", tt.text, got, tt.want)
		}
	}
}

func TestExtractTimes(t *testing.T) {
	tests := []struct {
		text    string
		wantDep string
		wantArr string
	}{
		{"6:00 AM – 2:30 PM", "6:00 AM", "2:30 PM"},
		{"departs 11:45pm arrives 7:05am", "11:45 PM", "7:05 AM"},
		{"6:00 AM 2:30 PM 9:15 PM", "6:00 AM", "2:30 PM"}, // extra tokens ignored
		{"6:00 AM only", "", ""},
		{"no times at all", "", ""},
	}

	for _, tt := range tests {
		dep, arr := ExtractTimes(tt.text)
		if dep != tt.wantDep || arr != tt.wantArr {
			t.Errorf("ExtractTimes(%q) = (%q, %q); want (%q, %q)",
				tt.text, dep, arr, tt.wantDep, tt.wantArr)
		}
	}
}

func TestExtractDuration(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"5 hr 30 min", 330},
		{"5h 30m", 330},
		{"2 hr", 120},
		{"12h", 720},
		{"45 min", 0}, // hours are required
		{"", 0},
		{"Delta Nonstop $450 5 hr", 300},
	}

	for _, tt := range tests {
		got := ExtractDuration(tt.text)
		if got != tt.want {
			t.Errorf("ExtractDuration(%q) = %d; want %d", tt.text, got, tt.want)
		}
	}
}

func TestExtractAirline(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Delta Air Lines · Nonstop", "Delta"},
		{"operated by SkyWest", ""}, // regional carriers outside the list miss
		{"Delta and United codeshare", "United"}, // list order wins, not text position
		{"", ""},
	}

	for _, tt := range tests {
		got := ExtractAirline(tt.text)
		if got != tt.want {
			t.Errorf("ExtractAirline(%q) = %q; want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractStops(t *testing.T) {
	tests := []struct {
		text string
		want models.StopClass
	}{
		{"Nonstop", models.Nonstop},
		{"NONSTOP FLIGHT", models.Nonstop},
		{"1 stop in DEN", models.OneStop},
		{"2 stops", models.TwoStops},
		{"3 stops total", models.MultipleStops},
		{"Nonstop (was 1 stop)", models.Nonstop}, // first rule wins
		{"6h 15m Delta", models.StopsUnknown},
		{"", models.StopsUnknown},
	}

	for _, tt := range tests {
		got := ExtractStops(tt.text)
		if got != tt.want {
			t.Errorf("ExtractStops(%q) = %q; want %q", tt.text, got, tt.want)
		}
	}
}

// Field extraction must not care where in the block each field sits.
func TestFieldsFromCombinedBlock(t *testing.T) {
	text := "$450 6:00 AM 2:30 PM 5 hr 30 min Delta Nonstop"

	if got := ExtractPrice(text); got != 450 {
		t.Errorf("price: got %.2f, want 450", got)
	}
	dep, arr := ExtractTimes(text)
	if dep != "6:00 AM" || arr != "2:30 PM" {
		t.Errorf("times: got (%q, %q), want (6:00 AM, 2:30 PM)", dep, arr)
	}
	if got := ExtractDuration(text); got != 330 {
		t.Errorf("duration: got %d, want 330", got)
	}
	if got := ExtractAirline(text); got != "Delta" {
		t.Errorf("airline: got %q, want Delta", got)
	}
	if got := ExtractStops(text); got != models.Nonstop {
		t.Errorf("stops: got %q, want nonstop", got)
	}
}
