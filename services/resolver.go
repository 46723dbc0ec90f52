package services

import (
	"strings"

	"flight-tracker/models"
	"flight-tracker/utils"
)

// SelectorStrategy is one named way of locating listing elements within a
// snapshot. Strategies are stateless and evaluated in fixed priority order.
type SelectorStrategy struct {
	Name  string
	Match func(models.Element) bool
}

// DefaultStrategies returns the fixed strategy list for Google Flights
// result pages, highest priority first. The obfuscated class and controller
// names rotate across page versions, which is why there are several.
func DefaultStrategies() []SelectorStrategy {
	return []SelectorStrategy{
		{Name: "result-list-item", Match: func(e models.Element) bool {
			return e.Tag == "li" && strings.Contains(e.Classes, "pIav2d")
		}},
		{Name: "itinerary-controller", Match: func(e models.Element) bool {
			return e.Tag == "div" && strings.Contains(e.JSController, "xKXaIb")
		}},
		{Name: "itinerary-card", Match: func(e models.Element) bool {
			return e.Tag == "div" && strings.Contains(e.Classes, "yR1fYc")
		}},
		{Name: "generic-list-item", Match: func(e models.Element) bool {
			return e.Tag == "li" && e.Role == "listitem"
		}},
		{Name: "tracked-div", Match: func(e models.Element) bool {
			return e.Tag == "div" && e.DataVed != ""
		}},
	}
}

// Resolver applies an ordered strategy list to a snapshot and returns the
// first strategy's matches that actually look like flight listings.
type Resolver struct {
	logger     *utils.Logger
	strategies []SelectorStrategy
}

// NewResolver creates a Resolver with the default strategy list.
func NewResolver(logger *utils.Logger) *Resolver {
	return &Resolver{logger: logger, strategies: DefaultStrategies()}
}

// NewResolverWithStrategies creates a Resolver with a custom strategy list.
func NewResolverWithStrategies(logger *utils.Logger, strategies []SelectorStrategy) *Resolver {
	return &Resolver{logger: logger, strategies: strategies}
}

// Resolve tries each strategy strictly in order and returns the full matched
// element set of the first one that validates, preserving snapshot order.
// ok is false when no strategy wins; the caller is expected to fall back to
// whole-snapshot scanning.
func (r *Resolver) Resolve(snapshot *models.Snapshot) (matched []models.Element, ok bool) {
	for _, strategy := range r.strategies {
		var candidates []models.Element
		for _, el := range snapshot.Elements {
			if strategy.Match(el) {
				candidates = append(candidates, el)
			}
		}
		if len(candidates) == 0 {
			continue
		}

		if !looksLikeListings(candidates) {
			r.logger.Debug("[resolver] Strategy %q matched %d elements but none look like listings — skipping",
				strategy.Name, len(candidates))
			continue
		}

		r.logger.Info("[resolver] Strategy %q matched %d listing elements", strategy.Name, len(candidates))
		return candidates, true
	}
	return nil, false
}

// looksLikeListings validates a candidate set by text shape: at least one of
// the first three elements must carry both a currency marker and a temporal
// marker. This rejects selectors that match ads or navigation chrome.
func looksLikeListings(candidates []models.Element) bool {
	probe := candidates
	if len(probe) > 3 {
		probe = probe[:3]
	}
	for _, el := range probe {
		if hasCurrencyMarker(el.Text) && hasTemporalMarker(el.Text) {
			return true
		}
	}
	return false
}
