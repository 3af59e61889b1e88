package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fuel_sense/internal/models"
)

// entryAt builds a fuel entry created at ts. Tests fill only the fields
// the aggregation under test reads.
func entryAt(ts time.Time, e models.FuelEntry) models.FuelEntry {
	e.Model = gorm.Model{CreatedAt: ts}
	return e
}

func TestMonthlyRollupConservesTotals(t *testing.T) {
	may := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	june := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)
	entries := []models.FuelEntry{
		entryAt(june, models.FuelEntry{AmountPaid: 840, Distance: 150, FuelUsed: 8, PricePerLiter: 105}),
		entryAt(may, models.FuelEntry{AmountPaid: 750, Distance: 100, FuelUsed: 7.5, PricePerLiter: 100}),
		entryAt(may, models.FuelEntry{AmountPaid: 500, Distance: 0, FuelUsed: 5, PricePerLiter: 100}),
	}

	months := MonthlyRollup(entries)
	require.Len(t, months, 2)

	// Ascending by month key.
	assert.Equal(t, "2025-05", months[0].Month)
	assert.Equal(t, "2025-06", months[1].Month)

	var total float64
	for _, m := range months {
		total += m.TotalCost
	}
	assert.InDelta(t, 500+750+840, total, 1e-9)

	assert.Equal(t, 2, months[0].EntryCount)
	assert.InDelta(t, 100.0, months[0].AvgPricePerLiter, 1e-9)
	assert.InDelta(t, 100.0/12.5, months[0].AvgEfficiency, 1e-9)
	assert.InDelta(t, 1250.0/100.0, months[0].CostPerKm, 1e-9)
}

func TestMonthlyRollupKeepsMostRecent12(t *testing.T) {
	var entries []models.FuelEntry
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 14; i++ {
		entries = append(entries, entryAt(start.AddDate(0, i, 0), models.FuelEntry{AmountPaid: 100}))
	}

	months := MonthlyRollup(entries)
	require.Len(t, months, 12)
	assert.Equal(t, "2024-03", months[0].Month)
	assert.Equal(t, "2025-02", months[11].Month)
}

func TestPriceMovingAverageSingleEntry(t *testing.T) {
	now := time.Now()
	points := PriceMovingAverage([]models.FuelEntry{
		entryAt(now, models.FuelEntry{PricePerLiter: 104.5}),
	})
	require.Len(t, points, 1)
	assert.Equal(t, 104.5, points[0].Price)
	assert.Equal(t, 104.5, points[0].Average)
}

func TestPriceMovingAverageWindowAndOrder(t *testing.T) {
	now := time.Now()
	// Most recent first: 10 today, 20 yesterday, 30 the day before.
	entries := []models.FuelEntry{
		entryAt(now, models.FuelEntry{PricePerLiter: 10}),
		entryAt(now.AddDate(0, 0, -1), models.FuelEntry{PricePerLiter: 20}),
		entryAt(now.AddDate(0, 0, -2), models.FuelEntry{PricePerLiter: 30}),
	}

	points := PriceMovingAverage(entries)
	require.Len(t, points, 3)

	// Output is chronological: oldest first.
	assert.Equal(t, 30.0, points[0].Price)
	assert.Equal(t, 30.0, points[0].Average) // only itself in the trailing window
	assert.Equal(t, 20.0, points[1].Price)
	assert.Equal(t, 25.0, points[1].Average)
	assert.Equal(t, 10.0, points[2].Price)
	assert.Equal(t, 20.0, points[2].Average)
}

func TestPriceMovingAverageCapsAt30Points(t *testing.T) {
	now := time.Now()
	var entries []models.FuelEntry
	for i := 0; i < 45; i++ {
		entries = append(entries, entryAt(now.AddDate(0, 0, -i), models.FuelEntry{PricePerLiter: 100}))
	}
	assert.Len(t, PriceMovingAverage(entries), 30)
}

func TestTrendsWithoutOlderSample(t *testing.T) {
	now := time.Now()
	var entries []models.FuelEntry
	for i := 0; i < 8; i++ {
		entries = append(entries, entryAt(now.AddDate(0, 0, -i), models.FuelEntry{Efficiency: 12, AmountPaid: 100}))
	}
	assert.Equal(t, Trend{}, Trends(entries))
}

func TestTrendsRecentVersusPrevious(t *testing.T) {
	now := time.Now()
	var entries []models.FuelEntry
	for i := 0; i < 10; i++ { // recent sample
		entries = append(entries, entryAt(now.AddDate(0, 0, -i), models.FuelEntry{Efficiency: 12, AmountPaid: 110}))
	}
	for i := 10; i < 20; i++ { // previous sample
		entries = append(entries, entryAt(now.AddDate(0, 0, -i), models.FuelEntry{Efficiency: 10, AmountPaid: 100}))
	}

	tr := Trends(entries)
	assert.InDelta(t, 20.0, tr.EfficiencyPct, 1e-9)
	assert.InDelta(t, 10.0, tr.CostPct, 1e-9)
}

func TestProjectLast30Days(t *testing.T) {
	now := time.Now()
	entries := []models.FuelEntry{
		entryAt(now.AddDate(0, 0, -5), models.FuelEntry{AmountPaid: 500, Distance: 100}),
		entryAt(now.AddDate(0, 0, -20), models.FuelEntry{AmountPaid: 600, Distance: 150}),
		entryAt(now.AddDate(0, 0, -45), models.FuelEntry{AmountPaid: 999, Distance: 999}),
	}

	p := ProjectLast30Days(entries, now)
	assert.InDelta(t, 1100.0, p.Cost, 1e-9)
	assert.InDelta(t, 250.0, p.Distance, 1e-9)
}

func TestSavingsOpportunity(t *testing.T) {
	now := time.Now()
	entries := []models.FuelEntry{
		entryAt(now, models.FuelEntry{Efficiency: 20}),
		entryAt(now, models.FuelEntry{Efficiency: 10}),
		entryAt(now, models.FuelEntry{Efficiency: 0}), // first fill-up, ignored
	}
	// best 20, current avg 15 -> 25% headroom
	assert.InDelta(t, 25.0, SavingsOpportunity(entries), 1e-9)

	assert.Equal(t, 0.0, SavingsOpportunity(nil))
}

func TestPredictRefuelWeeklyPattern(t *testing.T) {
	now := time.Date(2025, 6, 29, 9, 0, 0, 0, time.UTC)
	entries := []models.FuelEntry{
		entryAt(now, models.FuelEntry{Distance: 70}),
		entryAt(now.AddDate(0, 0, -7), models.FuelEntry{Distance: 70}),
		entryAt(now.AddDate(0, 0, -14), models.FuelEntry{Distance: 70}),
	}

	p, ok := PredictRefuel(entries, now)
	require.True(t, ok)
	assert.InDelta(t, 7.0, p.AvgDaysBetweenRefuels, 1e-9)
	assert.InDelta(t, 0.0, p.DaysSinceLast, 1e-9)
	assert.InDelta(t, 7.0, p.EstimatedDaysToRefuel, 1e-9)
	assert.InDelta(t, 15.0, p.AvgDistancePerDay, 1e-9)
	// Two gaps can never be "high" confidence (needs 5 regular gaps).
	assert.NotEqual(t, "high", p.Confidence)
	assert.Equal(t, "low", p.Confidence)
}

func TestPredictRefuelConfidenceLevels(t *testing.T) {
	now := time.Date(2025, 6, 29, 9, 0, 0, 0, time.UTC)

	weekly := func(n int) []models.FuelEntry {
		var entries []models.FuelEntry
		for i := 0; i < n; i++ {
			entries = append(entries, entryAt(now.AddDate(0, 0, -7*i), models.FuelEntry{Distance: 70}))
		}
		return entries
	}

	p, ok := PredictRefuel(weekly(5), now) // 4 perfectly regular gaps
	require.True(t, ok)
	assert.Equal(t, "medium", p.Confidence)

	p, ok = PredictRefuel(weekly(7), now) // 6 gaps
	require.True(t, ok)
	assert.Equal(t, "high", p.Confidence)
}

func TestPredictRefuelNeedsThreeEntries(t *testing.T) {
	now := time.Now()
	_, ok := PredictRefuel([]models.FuelEntry{
		entryAt(now, models.FuelEntry{}),
		entryAt(now.AddDate(0, 0, -7), models.FuelEntry{}),
	}, now)
	assert.False(t, ok)
}

func monthOfCost(year int, month time.Month, amount float64) models.FuelEntry {
	return entryAt(time.Date(year, month, 10, 0, 0, 0, 0, time.UTC), models.FuelEntry{AmountPaid: amount})
}

func TestSpendingAlertWarning(t *testing.T) {
	// 130 is 30% over the prior-months mean of 100: over 20%, under 50%.
	entries := []models.FuelEntry{
		monthOfCost(2025, time.March, 130),
		monthOfCost(2025, time.February, 100),
		monthOfCost(2025, time.January, 100),
	}

	alerts := SpendingAlerts(entries)
	require.Len(t, alerts, 1)
	assert.Equal(t, "warning", alerts[0].Severity)
}

func TestSpendingAlertDanger(t *testing.T) {
	// 200 doubles the prior-months mean of 100, well past the 50% line.
	// The latest month must not dilute its own baseline.
	entries := []models.FuelEntry{
		monthOfCost(2025, time.March, 200),
		monthOfCost(2025, time.February, 100),
		monthOfCost(2025, time.January, 100),
	}

	alerts := SpendingAlerts(entries)
	require.Len(t, alerts, 1)
	assert.Equal(t, "danger", alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "100%")
}

func TestSpendingAlertBelowAverage(t *testing.T) {
	entries := []models.FuelEntry{
		monthOfCost(2025, time.March, 10),
		monthOfCost(2025, time.February, 100),
		monthOfCost(2025, time.January, 100),
	}

	alerts := SpendingAlerts(entries)
	require.Len(t, alerts, 1)
	assert.Equal(t, "info", alerts[0].Severity)
}

func TestSpendingAlertEfficiencyDrop(t *testing.T) {
	month := func(m time.Month, distance, fuel float64) models.FuelEntry {
		return entryAt(time.Date(2025, m, 10, 0, 0, 0, 0, time.UTC), models.FuelEntry{
			AmountPaid: 500, Distance: distance, FuelUsed: fuel,
		})
	}
	entries := []models.FuelEntry{
		month(time.March, 100, 10), // 10 km/l, usual is ~13.3
		month(time.February, 150, 10),
		month(time.January, 150, 10),
	}

	alerts := SpendingAlerts(entries)
	require.Len(t, alerts, 1)
	assert.Equal(t, "warning", alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "Efficiency")
}

func TestSpendingAlertsNeedTwoMonths(t *testing.T) {
	assert.Nil(t, SpendingAlerts([]models.FuelEntry{monthOfCost(2025, time.March, 100)}))
	assert.Nil(t, SpendingAlerts(nil))
}

func TestDistanceHistogramBuckets(t *testing.T) {
	now := time.Now()
	var entries []models.FuelEntry
	for _, d := range []float64{50, 150, 150, 550} {
		entries = append(entries, entryAt(now, models.FuelEntry{Distance: d}))
	}

	buckets := DistanceHistogram(entries)
	require.Len(t, buckets, 6)

	counts := make(map[string]int)
	for _, b := range buckets {
		counts[b.Label] = b.Count
	}
	assert.Equal(t, 1, counts["0-100km"])
	assert.Equal(t, 2, counts["100-200km"])
	assert.Equal(t, 0, counts["200-300km"])
	assert.Equal(t, 1, counts["500+ km"])
}

func TestDistanceHistogramDegenerateDistances(t *testing.T) {
	now := time.Now()
	var entries []models.FuelEntry
	for _, d := range []float64{math.NaN(), -40, math.Inf(1), 1e18} {
		entries = append(entries, entryAt(now, models.FuelEntry{Distance: d}))
	}

	buckets := DistanceHistogram(entries)
	require.Len(t, buckets, 6)
	// NaN and negative land in the first bucket, infinite and huge in
	// the last.
	assert.Equal(t, 2, buckets[0].Count)
	assert.Equal(t, 2, buckets[5].Count)
}

func TestDayOfWeekRollup(t *testing.T) {
	monday := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	entries := []models.FuelEntry{
		entryAt(monday, models.FuelEntry{AmountPaid: 100, Distance: 100, FuelUsed: 8}),
		entryAt(monday.AddDate(0, 0, 7), models.FuelEntry{AmountPaid: 200, Distance: 140, FuelUsed: 8}),
		entryAt(monday.AddDate(0, 0, 2), models.FuelEntry{AmountPaid: 50, Distance: 60, FuelUsed: 4}), // Wednesday
	}

	days := DayOfWeekRollup(entries)
	require.Len(t, days, 2)
	assert.Equal(t, "Monday", days[0].Day)
	assert.Equal(t, 2, days[0].EntryCount)
	assert.InDelta(t, 240.0/16.0, days[0].AvgEfficiency, 1e-9)
	assert.Equal(t, "Wednesday", days[1].Day)
}

func TestSeasonalRollupAcrossYears(t *testing.T) {
	entries := []models.FuelEntry{
		entryAt(time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC), models.FuelEntry{AmountPaid: 100}),
		entryAt(time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC), models.FuelEntry{AmountPaid: 200}),
		entryAt(time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC), models.FuelEntry{AmountPaid: 50}),
	}

	seasons := SeasonalRollup(entries)
	require.Len(t, seasons, 2)
	assert.Equal(t, "January", seasons[0].Month)
	assert.Equal(t, "July", seasons[1].Month)
	assert.InDelta(t, 300.0, seasons[1].TotalCost, 1e-9)
	assert.Equal(t, 2, seasons[1].EntryCount)
}

func TestYearlyRollup(t *testing.T) {
	entries := []models.FuelEntry{
		entryAt(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), models.FuelEntry{AmountPaid: 300, Distance: 150, FuelUsed: 10}),
		entryAt(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), models.FuelEntry{AmountPaid: 100, Distance: 100, FuelUsed: 10}),
	}

	years := YearlyRollup(entries)
	require.Len(t, years, 2)
	assert.Equal(t, 2024, years[0].Year)
	assert.Equal(t, 2025, years[1].Year)
	assert.InDelta(t, 15.0, years[1].AvgEfficiency, 1e-9)
	assert.InDelta(t, 2.0, years[1].CostPerKm, 1e-9)
}

func TestAggregationsSafeOnEmptyInput(t *testing.T) {
	assert.Empty(t, MonthlyRollup(nil))
	assert.Empty(t, PriceMovingAverage(nil))
	assert.Equal(t, Trend{}, Trends(nil))
	assert.Equal(t, Projection{}, ProjectLast30Days(nil, time.Now()))
	assert.Equal(t, 0.0, SavingsOpportunity(nil))
	assert.Empty(t, DayOfWeekRollup(nil))
	assert.Empty(t, SeasonalRollup(nil))
	assert.Empty(t, YearlyRollup(nil))

	buckets := DistanceHistogram(nil)
	require.Len(t, buckets, 6)
	for _, b := range buckets {
		assert.Zero(t, b.Count)
	}
}
