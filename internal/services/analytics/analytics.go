// Package analytics derives dashboard aggregates from a vehicle's fuel
// entries. Every function takes the entries the API serves: descending
// by creation time, most recent first. Nothing here is persisted; all
// aggregates are recomputed on demand and all functions are safe on
// empty or single-element input.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"fuel_sense/internal/models"
)

const (
	monthKeyFormat = "2006-01"

	movingAvgWindow = 5
	movingAvgPoints = 30
	monthlyGroups   = 12
	trendSampleSize = 10
)

// MonthlySummary is one calendar month of fill-up activity.
type MonthlySummary struct {
	Month            string  `json:"month"` // "2025-07"
	TotalCost        float64 `json:"total_cost"`
	TotalDistance    float64 `json:"total_distance"`
	TotalFuel        float64 `json:"total_fuel"`
	AvgEfficiency    float64 `json:"avg_efficiency"`
	AvgPricePerLiter float64 `json:"avg_price_per_liter"`
	CostPerKm        float64 `json:"cost_per_km"`
	EntryCount       int     `json:"entry_count"`
}

// MonthlyRollup groups entries by calendar month and keeps the most
// recent 12 groups, sorted ascending by month key.
func MonthlyRollup(entries []models.FuelEntry) []MonthlySummary {
	groups := make(map[string][]models.FuelEntry)
	for _, e := range entries {
		key := e.CreatedAt.Format(monthKeyFormat)
		groups[key] = append(groups[key], e)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > monthlyGroups {
		keys = keys[len(keys)-monthlyGroups:]
	}

	out := make([]MonthlySummary, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		s := MonthlySummary{Month: k, EntryCount: len(g)}
		var priceSum float64
		for _, e := range g {
			s.TotalCost += e.AmountPaid
			s.TotalDistance += e.Distance
			s.TotalFuel += e.FuelUsed
			priceSum += e.PricePerLiter
		}
		if s.TotalFuel > 0 {
			s.AvgEfficiency = s.TotalDistance / s.TotalFuel
		}
		s.AvgPricePerLiter = priceSum / float64(len(g))
		if s.TotalDistance > 0 {
			s.CostPerKm = s.TotalCost / s.TotalDistance
		}
		out = append(out, s)
	}
	return out
}

// PricePoint is one smoothed point of the petrol price series.
type PricePoint struct {
	Date    time.Time `json:"date"`
	Price   float64   `json:"price"`
	Average float64   `json:"average"`
}

// PriceMovingAverage smooths price-per-liter over a trailing window of
// up to 5 entries (the entry itself plus the 4 before it in time),
// returned in chronological order, capped at the last 30 points.
func PriceMovingAverage(entries []models.FuelEntry) []PricePoint {
	points := make([]PricePoint, 0, len(entries))
	for i, e := range entries {
		end := i + movingAvgWindow
		if end > len(entries) {
			end = len(entries)
		}
		var sum float64
		for _, w := range entries[i:end] {
			sum += w.PricePerLiter
		}
		points = append(points, PricePoint{
			Date:    e.CreatedAt,
			Price:   e.PricePerLiter,
			Average: sum / float64(end-i),
		})
	}

	// Input is most-recent-first; charts want chronological.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	if len(points) > movingAvgPoints {
		points = points[len(points)-movingAvgPoints:]
	}
	return points
}

// Trend compares the 10 most recent entries against the 10 before them.
type Trend struct {
	EfficiencyPct float64 `json:"efficiency_pct"`
	CostPct       float64 `json:"cost_pct"`
}

// Trends reports the percentage change of average efficiency and average
// fill-up cost between the recent and the previous sample. With no older
// sample both trends are 0.
func Trends(entries []models.FuelEntry) Trend {
	recent := entries
	if len(recent) > trendSampleSize {
		recent = recent[:trendSampleSize]
	}
	var older []models.FuelEntry
	if len(entries) > trendSampleSize {
		older = entries[trendSampleSize:]
		if len(older) > trendSampleSize {
			older = older[:trendSampleSize]
		}
	}
	if len(older) == 0 {
		return Trend{}
	}

	return Trend{
		EfficiencyPct: percentChange(meanEfficiency(recent), meanEfficiency(older)),
		CostPct:       percentChange(meanAmount(recent), meanAmount(older)),
	}
}

// Projection sums spending and distance over a trailing window.
type Projection struct {
	Cost     float64 `json:"cost"`
	Distance float64 `json:"distance"`
}

// ProjectLast30Days totals cost and distance for entries within the last
// 30 days of now.
func ProjectLast30Days(entries []models.FuelEntry, now time.Time) Projection {
	cutoff := now.AddDate(0, 0, -30)
	var p Projection
	for _, e := range entries {
		if e.CreatedAt.After(cutoff) {
			p.Cost += e.AmountPaid
			p.Distance += e.Distance
		}
	}
	return p
}

// SavingsOpportunity reports how far current average efficiency sits
// below the best efficiency ever recorded, as a percentage of the best.
// Entries with zero efficiency (first fill-ups, bad data) are ignored.
func SavingsOpportunity(entries []models.FuelEntry) float64 {
	var best, sum float64
	var n int
	for _, e := range entries {
		if e.Efficiency <= 0 {
			continue
		}
		if e.Efficiency > best {
			best = e.Efficiency
		}
		sum += e.Efficiency
		n++
	}
	if best == 0 || n == 0 {
		return 0
	}
	current := sum / float64(n)
	return (best - current) / best * 100
}

// RefuelPrediction estimates when the next fill-up is due from the
// regularity of past refuel intervals.
type RefuelPrediction struct {
	AvgDaysBetweenRefuels float64 `json:"avg_days_between_refuels"`
	DaysSinceLast         float64 `json:"days_since_last"`
	EstimatedDaysToRefuel float64 `json:"estimated_days_to_refuel"`
	AvgDistancePerDay     float64 `json:"avg_distance_per_day"`
	Confidence            string  `json:"confidence"` // "high", "medium", "low"
}

// PredictRefuel needs at least 3 entries; ok is false otherwise.
// Confidence comes from the coefficient of variation of the gaps:
// regular habits predict well, erratic ones do not.
func PredictRefuel(entries []models.FuelEntry, now time.Time) (RefuelPrediction, bool) {
	if len(entries) < 3 {
		return RefuelPrediction{}, false
	}

	asc := make([]models.FuelEntry, len(entries))
	copy(asc, entries)
	sort.Slice(asc, func(i, j int) bool { return asc[i].CreatedAt.Before(asc[j].CreatedAt) })

	gaps := make([]float64, 0, len(asc)-1)
	var totalDistance float64
	for i, e := range asc {
		totalDistance += e.Distance
		if i > 0 {
			gaps = append(gaps, e.CreatedAt.Sub(asc[i-1].CreatedAt).Hours()/24)
		}
	}

	avgGap := mean(gaps)
	p := RefuelPrediction{
		AvgDaysBetweenRefuels: avgGap,
		DaysSinceLast:         now.Sub(asc[len(asc)-1].CreatedAt).Hours() / 24,
		Confidence:            "low",
	}
	p.EstimatedDaysToRefuel = math.Max(0, avgGap-p.DaysSinceLast)

	if span := asc[len(asc)-1].CreatedAt.Sub(asc[0].CreatedAt).Hours() / 24; span > 0 {
		p.AvgDistancePerDay = totalDistance / span
	}

	if avgGap > 0 {
		cv := stddev(gaps) / avgGap
		switch {
		case cv < 0.3 && len(gaps) >= 5:
			p.Confidence = "high"
		case cv < 0.5 && len(gaps) >= 3:
			p.Confidence = "medium"
		}
	}
	return p, true
}

// Alert flags an unusual month of spending or efficiency.
type Alert struct {
	Severity string `json:"severity"` // "danger", "warning", "info"
	Message  string `json:"message"`
}

// SpendingAlerts compares the latest month against the mean of all
// prior months, so a spike is measured against a baseline it has not
// inflated. Fewer than 2 monthly groups yields no alerts.
func SpendingAlerts(entries []models.FuelEntry) []Alert {
	months := MonthlyRollup(entries)
	if len(months) < 2 {
		return nil
	}

	latest := months[len(months)-1]
	prior := months[:len(months)-1]

	var costSum float64
	for _, m := range prior {
		costSum += m.TotalCost
	}
	avgCost := costSum / float64(len(prior))

	var alerts []Alert
	if avgCost > 0 {
		overPct := (latest.TotalCost - avgCost) / avgCost * 100
		switch {
		case latest.TotalCost > avgCost*1.5:
			alerts = append(alerts, Alert{
				Severity: "danger",
				Message:  fmt.Sprintf("Fuel spending this month is %.0f%% above your monthly average", overPct),
			})
		case latest.TotalCost > avgCost*1.2:
			alerts = append(alerts, Alert{
				Severity: "warning",
				Message:  fmt.Sprintf("Fuel spending this month is %.0f%% above your monthly average", overPct),
			})
		case latest.TotalCost < avgCost*0.7:
			alerts = append(alerts, Alert{
				Severity: "info",
				Message:  "Fuel spending this month is well below your monthly average",
			})
		}
	}

	var effSum float64
	var effCount int
	for _, m := range prior {
		if m.AvgEfficiency > 0 {
			effSum += m.AvgEfficiency
			effCount++
		}
	}
	if effCount > 0 {
		avgEff := effSum / float64(effCount)
		if latest.AvgEfficiency > 0 && latest.AvgEfficiency < avgEff*0.9 {
			alerts = append(alerts, Alert{
				Severity: "warning",
				Message:  fmt.Sprintf("Efficiency this month (%.1f km/l) is below your usual %.1f km/l", latest.AvgEfficiency, avgEff),
			})
		}
	}
	return alerts
}

// WeekdaySummary aggregates fill-ups by day of week.
type WeekdaySummary struct {
	Day           string  `json:"day"`
	TotalCost     float64 `json:"total_cost"`
	TotalDistance float64 `json:"total_distance"`
	TotalFuel     float64 `json:"total_fuel"`
	AvgEfficiency float64 `json:"avg_efficiency"`
	EntryCount    int     `json:"entry_count"`
}

// DayOfWeekRollup aggregates by weekday, Sunday through Saturday,
// returning only days that have entries.
func DayOfWeekRollup(entries []models.FuelEntry) []WeekdaySummary {
	byDay := make(map[time.Weekday]*WeekdaySummary)
	for _, e := range entries {
		wd := e.CreatedAt.Weekday()
		s, ok := byDay[wd]
		if !ok {
			s = &WeekdaySummary{Day: wd.String()}
			byDay[wd] = s
		}
		s.TotalCost += e.AmountPaid
		s.TotalDistance += e.Distance
		s.TotalFuel += e.FuelUsed
		s.EntryCount++
	}

	out := make([]WeekdaySummary, 0, len(byDay))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if s, ok := byDay[wd]; ok {
			if s.TotalFuel > 0 {
				s.AvgEfficiency = s.TotalDistance / s.TotalFuel
			}
			out = append(out, *s)
		}
	}
	return out
}

// DistanceBucket counts entries whose fill-to-fill distance falls in a
// fixed range.
type DistanceBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

var distanceBucketLabels = []string{
	"0-100km", "100-200km", "200-300km", "300-400km", "400-500km", "500+ km",
}

// DistanceHistogram buckets entries into fixed 100km ranges, with
// everything at or beyond 500km in the last bucket. All buckets are
// always present.
func DistanceHistogram(entries []models.FuelEntry) []DistanceBucket {
	counts := make([]int, len(distanceBucketLabels))
	for _, e := range entries {
		// NaN and negative distances land in the first bucket; the
		// float-to-int conversion only runs on values known to be in
		// [0, 500).
		d := e.Distance
		if math.IsNaN(d) || d < 0 {
			d = 0
		}
		idx := len(counts) - 1
		if d < 500 {
			idx = int(d / 100)
		}
		counts[idx]++
	}
	out := make([]DistanceBucket, len(counts))
	for i, label := range distanceBucketLabels {
		out[i] = DistanceBucket{Label: label, Count: counts[i]}
	}
	return out
}

// SeasonalSummary aggregates fill-ups by calendar month name across all
// years, exposing seasonal habits (monsoon mileage, winter efficiency).
type SeasonalSummary struct {
	Month         string  `json:"month"`
	TotalCost     float64 `json:"total_cost"`
	TotalDistance float64 `json:"total_distance"`
	TotalFuel     float64 `json:"total_fuel"`
	AvgEfficiency float64 `json:"avg_efficiency"`
	EntryCount    int     `json:"entry_count"`
}

// SeasonalRollup aggregates by month name, January through December,
// returning only months that have entries.
func SeasonalRollup(entries []models.FuelEntry) []SeasonalSummary {
	byMonth := make(map[time.Month]*SeasonalSummary)
	for _, e := range entries {
		m := e.CreatedAt.Month()
		s, ok := byMonth[m]
		if !ok {
			s = &SeasonalSummary{Month: m.String()}
			byMonth[m] = s
		}
		s.TotalCost += e.AmountPaid
		s.TotalDistance += e.Distance
		s.TotalFuel += e.FuelUsed
		s.EntryCount++
	}

	out := make([]SeasonalSummary, 0, len(byMonth))
	for m := time.January; m <= time.December; m++ {
		if s, ok := byMonth[m]; ok {
			if s.TotalFuel > 0 {
				s.AvgEfficiency = s.TotalDistance / s.TotalFuel
			}
			out = append(out, *s)
		}
	}
	return out
}

// YearlySummary aggregates one calendar year.
type YearlySummary struct {
	Year          int     `json:"year"`
	TotalCost     float64 `json:"total_cost"`
	TotalDistance float64 `json:"total_distance"`
	TotalFuel     float64 `json:"total_fuel"`
	AvgEfficiency float64 `json:"avg_efficiency"`
	CostPerKm     float64 `json:"cost_per_km"`
	EntryCount    int     `json:"entry_count"`
}

// YearlyRollup aggregates by calendar year, ascending.
func YearlyRollup(entries []models.FuelEntry) []YearlySummary {
	byYear := make(map[int]*YearlySummary)
	for _, e := range entries {
		y := e.CreatedAt.Year()
		s, ok := byYear[y]
		if !ok {
			s = &YearlySummary{Year: y}
			byYear[y] = s
		}
		s.TotalCost += e.AmountPaid
		s.TotalDistance += e.Distance
		s.TotalFuel += e.FuelUsed
		s.EntryCount++
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]YearlySummary, 0, len(years))
	for _, y := range years {
		s := byYear[y]
		if s.TotalFuel > 0 {
			s.AvgEfficiency = s.TotalDistance / s.TotalFuel
		}
		if s.TotalDistance > 0 {
			s.CostPerKm = s.TotalCost / s.TotalDistance
		}
		out = append(out, *s)
	}
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		ss += (x - m) * (x - m)
	}
	return math.Sqrt(ss / float64(len(xs)))
}

func meanEfficiency(entries []models.FuelEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	var sum float64
	for _, e := range entries {
		sum += e.Efficiency
	}
	return sum / float64(len(entries))
}

func meanAmount(entries []models.FuelEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	var sum float64
	for _, e := range entries {
		sum += e.AmountPaid
	}
	return sum / float64(len(entries))
}

func percentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
