package services

import (
	"regexp"
	"strconv"
	"strings"

	"flight-tracker/models"
)

var (
	// clockRegexp captures clock-time tokens like "6:00 AM" or "11:45pm"
	clockRegexp = regexp.MustCompile(`(?i)\b(\d{1,2}:\d{2})\s*(AM|PM)`)
	// durationRegexp captures "5 hr 30 min", "5h 30m", "2 hr" — hours required
	durationRegexp = regexp.MustCompile(`(?i)\b(\d+)\s*(?:hr|h)\b(?:\s*(\d+)\s*(?:min|m)\b)?`)
)

// currencyMarkers are the symbols a monetary amount can follow,
// in the order they are searched for.
var currencyMarkers = []string{"$", "€", "£"}

// knownAirlines is the fixed carrier list. Order matters: the first name
// found anywhere in the text wins, regardless of its position.
var knownAirlines = []string{
	"United", "American", "Delta", "Southwest", "JetBlue",
	"Alaska", "Spirit", "Frontier", "Hawaiian",
}

// ExtractPrice returns the numeric amount following the first currency
// marker in text, or 0 when no parseable amount is present.
func ExtractPrice(text string) float64 {
	pos, after := -1, -1
	for _, marker := range currencyMarkers {
		if i := strings.Index(text, marker); i >= 0 && (pos < 0 || i < pos) {
			pos = i
			after = i + len(marker)
		}
	}
	if pos < 0 {
		return 0
	}

	var digits strings.Builder
	seenDot := false
	for _, r := range text[after:] {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
			continue
		}
		// thousands separators and one decimal point may interleave digits
		if r == ',' && digits.Len() > 0 && !seenDot {
			continue
		}
		if r == '.' && digits.Len() > 0 && !seenDot {
			digits.WriteRune(r)
			seenDot = true
			continue
		}
		break
	}
	if digits.Len() == 0 {
		return 0
	}

	amount, err := strconv.ParseFloat(strings.TrimSuffix(digits.String(), "."), 64)
	if err != nil {
		return 0
	}
	return amount
}

// ExtractTimes returns the first two clock-time tokens as departure and
// arrival. Additional tokens (layovers) are ignored. Fewer than two tokens
// means the pair could not be determined and both results are empty.
func ExtractTimes(text string) (departure, arrival string) {
	matches := clockRegexp.FindAllStringSubmatch(text, 2)
	if len(matches) < 2 {
		return "", ""
	}
	return formatClock(matches[0]), formatClock(matches[1])
}

func formatClock(m []string) string {
	return m[1] + " " + strings.ToUpper(m[2])
}

// ExtractDuration returns the total flight duration in minutes parsed from
// patterns like "5 hr 30 min" or "5h 30m". Hours are required; minutes
// default to 0. Returns 0 when no duration is present.
func ExtractDuration(text string) int {
	m := durationRegexp.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	minutes := 0
	if m[2] != "" {
		minutes, _ = strconv.Atoi(m[2])
	}
	return hours*60 + minutes
}

// ExtractAirline returns the first known carrier name contained in text,
// searched in list order. An empty result is expected for carriers outside
// the known list.
func ExtractAirline(text string) string {
	for _, airline := range knownAirlines {
		if strings.Contains(text, airline) {
			return airline
		}
	}
	return ""
}

// ExtractStops classifies the stop count. Rules are checked in priority
// order and only the first match applies.
func ExtractStops(text string) models.StopClass {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "nonstop"):
		return models.Nonstop
	case strings.Contains(lower, "1 stop"):
		return models.OneStop
	case strings.Contains(lower, "2 stop"):
		return models.TwoStops
	case strings.Contains(lower, "stop"):
		return models.MultipleStops
	default:
		return models.StopsUnknown
	}
}

func hasCurrencyMarker(text string) bool {
	for _, marker := range currencyMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// hasTemporalMarker reports whether text carries a clock time or an
// hour-duration token. Used to validate that matched elements are genuine
// flight listings rather than ads or navigation chrome.
func hasTemporalMarker(text string) bool {
	return clockRegexp.MatchString(text) || durationRegexp.MatchString(text)
}
