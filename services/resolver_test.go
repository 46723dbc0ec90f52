package services

import (
	"testing"

	"flight-tracker/models"
	"flight-tracker/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger() }

func listingItem(text string) models.Element {
	return models.Element{Tag: "li", Classes: "pIav2d Xr6uab", Text: text}
}

func trackedDiv(text string) models.Element {
	return models.Element{Tag: "div", DataVed: "2ahUKEw", Text: text}
}

func snapshotOf(elements ...models.Element) *models.Snapshot {
	return &models.Snapshot{Elements: elements}
}

const validListingText = "$450 6:00 AM – 2:30 PM 5 hr 30 min Delta Nonstop"

func TestResolverFindsListings(t *testing.T) {
	r := NewResolver(newTestLogger())
	snap := snapshotOf(
		listingItem(validListingText),
		listingItem("$320 7:15 AM – 3:40 PM 8 hr 25 min United 1 stop"),
	)

	matched, ok := r.Resolve(snap)
	if !ok {
		t.Fatal("expected a strategy to win")
	}
	if len(matched) != 2 {
		t.Errorf("matched: got %d elements, want 2", len(matched))
	}
}

func TestResolverFirstStrategyWins(t *testing.T) {
	r := NewResolver(newTestLogger())
	// Both the list-item and card strategies would validate; the matched
	// set must come from the higher-priority list-item strategy only.
	snap := snapshotOf(
		models.Element{Tag: "div", Classes: "yR1fYc", Text: validListingText},
		listingItem(validListingText),
		models.Element{Tag: "div", Classes: "yR1fYc", Text: validListingText},
	)

	matched, ok := r.Resolve(snap)
	if !ok {
		t.Fatal("expected a strategy to win")
	}
	if len(matched) != 1 || matched[0].Tag != "li" {
		t.Errorf("expected only the single li match, got %d elements", len(matched))
	}
}

func TestResolverRejectsNavigationChrome(t *testing.T) {
	r := NewResolver(newTestLogger())
	// A nav menu matches the generic list-item strategy structurally but
	// carries no currency or temporal markers.
	snap := snapshotOf(
		models.Element{Tag: "li", Role: "listitem", Text: "Home"},
		models.Element{Tag: "li", Role: "listitem", Text: "Flights"},
		models.Element{Tag: "li", Role: "listitem", Text: "Hotels"},
		models.Element{Tag: "li", Role: "listitem", Text: "Vacation rentals"},
	)

	if _, ok := r.Resolve(snap); ok {
		t.Error("navigation menu should not validate as flight listings")
	}
}

func TestResolverValidatesOnlyFirstThreeMatches(t *testing.T) {
	r := NewResolver(newTestLogger())
	snap := snapshotOf(
		listingItem("Sort by price"),
		listingItem("Filter: airlines"),
		listingItem("Filter: stops"),
		listingItem(validListingText), // valid, but past the probe window
	)

	if _, ok := r.Resolve(snap); ok {
		t.Error("strategy should be rejected when none of its first three matches validate")
	}
}

func TestResolverFallsThroughToLowerPriority(t *testing.T) {
	r := NewResolver(newTestLogger())
	snap := snapshotOf(
		listingItem("Sign in to see saved trips"), // matches strategy 1, fails validation
		trackedDiv(validListingText),
		trackedDiv("$510 9:00 PM – 6:12 AM 6 hr 12 min JetBlue Nonstop"),
	)

	matched, ok := r.Resolve(snap)
	if !ok {
		t.Fatal("expected the tracked-div strategy to win")
	}
	if len(matched) != 2 || matched[0].Tag != "div" {
		t.Errorf("expected 2 div matches, got %d", len(matched))
	}
}

func TestResolverEmptySnapshot(t *testing.T) {
	r := NewResolver(newTestLogger())
	if _, ok := r.Resolve(snapshotOf()); ok {
		t.Error("empty snapshot should resolve to not found")
	}
}

func TestResolverCustomStrategies(t *testing.T) {
	// A page revision can be handled by swapping in a new strategy list
	// without touching the resolver.
	strategies := []SelectorStrategy{
		{Name: "revised-card", Match: func(e models.Element) bool {
			return e.Tag == "div" && e.Classes == "fp-card"
		}},
	}
	r := NewResolverWithStrategies(newTestLogger(), strategies)

	snap := snapshotOf(
		listingItem(validListingText), // default strategies must not apply
		models.Element{Tag: "div", Classes: "fp-card", Text: validListingText},
	)

	matched, ok := r.Resolve(snap)
	if !ok {
		t.Fatal("expected the custom strategy to win")
	}
	if len(matched) != 1 || matched[0].Classes != "fp-card" {
		t.Errorf("expected only the fp-card div, got %+v", matched)
	}
}

func TestResolverDeterministic(t *testing.T) {
	r := NewResolver(newTestLogger())
	snap := snapshotOf(
		listingItem(validListingText),
		listingItem("$280 5 hr Spirit 1 stop 8:00 AM 1:00 PM"),
	)

	first, ok1 := r.Resolve(snap)
	second, ok2 := r.Resolve(snap)
	if ok1 != ok2 || len(first) != len(second) {
		t.Fatal("Resolve must be deterministic for an identical snapshot")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("element %d differs between runs", i)
		}
	}
}
