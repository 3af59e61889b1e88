package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fuel_sense/internal/services/analytics"
)

// GetAnalyticsSummary serves the dashboard aggregates for one vehicle:
// monthly rollup, smoothed price series, trends, 30-day totals and the
// savings-opportunity figure.
func GetAnalyticsSummary(c *gin.Context) {
	vehicle, ok := ownedVehicle(c, c.Param("id"))
	if !ok {
		return
	}

	entries, err := loadEntries(vehicle.ID, maxEntriesLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"monthly":             analytics.MonthlyRollup(entries),
		"price_moving_avg":    analytics.PriceMovingAverage(entries),
		"trends":              analytics.Trends(entries),
		"last_30_days":        analytics.ProjectLast30Days(entries, time.Now()),
		"savings_opportunity": analytics.SavingsOpportunity(entries),
	})
}

// GetRefuelPrediction estimates the next fill-up. Fewer than 3 entries
// means there is nothing to predict from.
func GetRefuelPrediction(c *gin.Context) {
	vehicle, ok := ownedVehicle(c, c.Param("id"))
	if !ok {
		return
	}

	entries, err := loadEntries(vehicle.ID, maxEntriesLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching entries"})
		return
	}

	prediction, ok := analytics.PredictRefuel(entries, time.Now())
	if !ok {
		c.JSON(http.StatusOK, gin.H{"prediction": nil, "message": "Not enough entries to predict"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"prediction": prediction})
}

func GetSpendingAlerts(c *gin.Context) {
	vehicle, ok := ownedVehicle(c, c.Param("id"))
	if !ok {
		return
	}

	entries, err := loadEntries(vehicle.ID, maxEntriesLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching entries"})
		return
	}

	alerts := analytics.SpendingAlerts(entries)
	if alerts == nil {
		alerts = []analytics.Alert{}
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// GetUsagePatterns serves the grouped views: day-of-week, distance
// histogram, seasonal and yearly rollups.
func GetUsagePatterns(c *gin.Context) {
	vehicle, ok := ownedVehicle(c, c.Param("id"))
	if !ok {
		return
	}

	entries, err := loadEntries(vehicle.ID, maxEntriesLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"day_of_week":        analytics.DayOfWeekRollup(entries),
		"distance_histogram": analytics.DistanceHistogram(entries),
		"seasonal":           analytics.SeasonalRollup(entries),
		"yearly":             analytics.YearlyRollup(entries),
	})
}
