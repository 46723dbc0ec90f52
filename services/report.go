package services

import (
	"fmt"
	"sort"
	"strings"

	"flight-tracker/models"
	"flight-tracker/utils"
)

type ReportService struct {
	logger *utils.Logger
}

func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

func (s *ReportService) Generate(origin, destination string, records []*models.FlightRecord) *models.RouteReport {
	report := &models.RouteReport{
		Origin:      origin,
		Destination: destination,
		ByAirline:   make(map[string]int),
		ByStops:     make(map[models.StopClass]int),
	}

	if len(records) == 0 {
		return report
	}

	report.TotalFlights = len(records)

	var priced []*models.FlightRecord
	for _, r := range records {
		if r.Price > 0 {
			priced = append(priced, r)
		}
		if r.Airline != "" {
			report.ByAirline[r.Airline]++
		}
		report.ByStops[r.Stops]++
	}

	// Price stats (only records with a parsed price)
	if len(priced) > 0 {
		report.PricedFlights = len(priced)
		report.MinPrice = priced[0].Price
		report.MaxPrice = priced[0].Price
		report.Cheapest = priced[0]
		var total float64
		for _, r := range priced {
			total += r.Price
			if r.Price < report.MinPrice {
				report.MinPrice = r.Price
				report.Cheapest = r
			}
			if r.Price > report.MaxPrice {
				report.MaxPrice = r.Price
			}
		}
		report.AveragePrice = round2(total / float64(len(priced)))
	}

	return report
}

func (s *ReportService) Print(r *models.RouteReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  ✈️  FLIGHT SEARCH RESULTS — %s → %s\033[0m\n", r.Origin, r.Destination)
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Flights extracted : \033[1m%d\033[0m\n", r.TotalFlights)
	fmt.Printf("  With price        : \033[1m%d\033[0m\n", r.PricedFlights)
	fmt.Println()

	// Price Stats
	fmt.Printf("\033[1;33m  Price Statistics\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.PricedFlights > 0 {
		fmt.Printf("  Average price : \033[1;32m$%.2f\033[0m\n", r.AveragePrice)
		fmt.Printf("  Minimum price : \033[1;32m$%.2f\033[0m\n", r.MinPrice)
		fmt.Printf("  Maximum price : \033[1;32m$%.2f\033[0m\n", r.MaxPrice)
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	// Cheapest flight
	if r.Cheapest != nil {
		fmt.Printf("\033[1;33m  Cheapest Flight\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  Price    : \033[1;32m$%.2f\033[0m\n", r.Cheapest.Price)
		if r.Cheapest.Airline != "" {
			fmt.Printf("  Airline  : %s\n", r.Cheapest.Airline)
		}
		if r.Cheapest.DepartureTime != "" {
			fmt.Printf("  Times    : %s – %s\n", r.Cheapest.DepartureTime, r.Cheapest.ArrivalTime)
		}
		if r.Cheapest.DurationMinutes > 0 {
			fmt.Printf("  Duration : %dh %dm\n", r.Cheapest.DurationMinutes/60, r.Cheapest.DurationMinutes%60)
		}
		fmt.Printf("  Stops    : %s\n", r.Cheapest.Stops)
		fmt.Println()
	}

	// Flights by airline
	fmt.Printf("\033[1;33m  Flights by Airline\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ByAirline) == 0 {
		fmt.Printf("  No recognised carriers\n")
	} else {
		type airlineCount struct {
			airline string
			count   int
		}
		var counts []airlineCount
		for airline, cnt := range r.ByAirline {
			counts = append(counts, airlineCount{airline, cnt})
		}
		sort.Slice(counts, func(i, j int) bool {
			return counts[i].count > counts[j].count
		})
		for _, ac := range counts {
			bar := strings.Repeat("█", ac.count)
			fmt.Printf("  %-14s %s (%d)\n", ac.airline, bar, ac.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

// PrintHistory renders the per-day price aggregation for a route.
func (s *ReportService) PrintHistory(origin, destination string, points []*models.PriceHistoryPoint) {
	thin := strings.Repeat("─", 54)

	fmt.Printf("\033[1;33m  Price History — %s → %s\033[0m\n", origin, destination)
	fmt.Printf("  %s\n", thin)
	if len(points) == 0 {
		fmt.Printf("  No price history recorded yet\n\n")
		return
	}

	fmt.Printf("  %-12s %10s %10s %10s\n", "Date", "Min", "Avg", "Max")
	for _, p := range points {
		fmt.Printf("  %-12s \033[1;32m%10.2f\033[0m %10.2f \033[1;31m%10.2f\033[0m\n",
			p.Date, p.MinPrice, p.AvgPrice, p.MaxPrice)
	}
	fmt.Println()
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
