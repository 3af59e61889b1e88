package controllers

import (
	"encoding/binary"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fuel_sense/internal/config"
	"fuel_sense/internal/models"
	"fuel_sense/internal/services/fuelcalc"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// entryRules is the configurable odometer validation. Rollback rejection
// is off unless FUEL_REJECT_ROLLBACK=true; odometer swaps and resets are
// a real thing and historically were never rejected.
var entryRules = fuelcalc.Rules{RejectRollback: os.Getenv("FUEL_REJECT_ROLLBACK") == "true"}

// maxEntriesLimit caps how many entries an analytics/list call reads.
const maxEntriesLimit = 200

// FuelEntryResponse mirrors models.FuelEntry with the fill-up location
// as a GeoJSON string for JSON output.
type FuelEntryResponse struct {
	ID            uint           `json:"ID"`
	CreatedAt     time.Time      `json:"CreatedAt"`
	UpdatedAt     time.Time      `json:"UpdatedAt"`
	DeletedAt     gorm.DeletedAt `json:"DeletedAt,omitempty"`
	VehicleID     uint           `json:"vehicle_id"`
	Odometer      float64        `json:"odometer"`
	PricePerLiter float64        `json:"price_per_liter"`
	AmountPaid    float64        `json:"amount_paid"`
	Distance      float64        `json:"distance"`
	FuelUsed      float64        `json:"fuel_used"`
	Efficiency    float64        `json:"efficiency"`
	Location      string         `json:"location,omitempty"` // GeoJSON point
}

func toFuelEntryResponse(e models.FuelEntry) FuelEntryResponse {
	jsonLoc, _ := convertWKBToGeoJSON(e.Location)
	return FuelEntryResponse{
		ID:            e.ID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
		DeletedAt:     e.DeletedAt,
		VehicleID:     e.VehicleID,
		Odometer:      e.Odometer,
		PricePerLiter: e.PricePerLiter,
		AmountPaid:    e.AmountPaid,
		Distance:      e.Distance,
		FuelUsed:      e.FuelUsed,
		Efficiency:    e.Efficiency,
		Location:      jsonLoc,
	}
}

// parseAndConvertGeometry parses a GeoJSON string into a geom.T and returns WKB bytes
func parseAndConvertGeometry(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	err := gjson.Unmarshal([]byte(raw), &g)
	if err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// convertWKBToGeoJSON converts WKB bytes into a GeoJSON string
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CreateFuelEntry logs a fill-up for a vehicle. Distance, fuel used and
// efficiency are computed here from the previous entry's odometer;
// clients may supply an explicit distance only for a vehicle's first
// entry (or imported history).
func CreateFuelEntry(c *gin.Context) {
	vehicle, ok := ownedVehicle(c, c.Param("id"))
	if !ok {
		return
	}

	var input struct {
		Odometer      float64  `json:"odometer" binding:"required"`
		PricePerLiter float64  `json:"price_per_liter" binding:"required"`
		AmountPaid    float64  `json:"amount_paid" binding:"required"`
		Distance      *float64 `json:"distance"`
		Location      string   `json:"location"` // optional GeoJSON point
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry input: " + err.Error()})
		return
	}

	wkbLoc, err := parseAndConvertGeometry(input.Location)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location: " + err.Error()})
		return
	}

	entry, err := addFuelEntry(vehicle.ID, input.Odometer, input.PricePerLiter, input.AmountPaid, input.Distance, wkbLoc)
	if err != nil {
		if errors.Is(err, errOdometerRollback) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logrus.WithError(err).Error("CreateFuelEntry: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": toFuelEntryResponse(entry)})
}

var errOdometerRollback = errors.New("odometer rollback rejected")

// addFuelEntry is the standard add-entry operation, shared by the HTTP
// handler, the CSV importer and the sync drain. A nil distance means
// "derive from the previous entry".
func addFuelEntry(vehicleID uint, odometer, price, amount float64, distance *float64, location []byte) (models.FuelEntry, error) {
	var d fuelcalc.Derived
	switch {
	case distance != nil:
		d = fuelcalc.ComputeWithDistance(*distance, price, amount)
	default:
		prevOdo := -1.0
		var prev models.FuelEntry
		err := config.DB.Where("vehicle_id = ?", vehicleID).
			Order("created_at desc").Order("id desc").First(&prev).Error
		if err == nil {
			prevOdo = prev.Odometer
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.FuelEntry{}, err
		}
		if err := entryRules.Validate(prevOdo, odometer); err != nil {
			return models.FuelEntry{}, errors.Join(errOdometerRollback, err)
		}
		d = fuelcalc.Compute(prevOdo, odometer, price, amount)
	}

	entry := models.FuelEntry{
		VehicleID:     vehicleID,
		Odometer:      odometer,
		PricePerLiter: price,
		AmountPaid:    amount,
		Distance:      d.Distance,
		FuelUsed:      d.FuelUsed,
		Efficiency:    d.Efficiency,
		Location:      location,
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		return models.FuelEntry{}, err
	}
	return entry, nil
}

// ListFuelEntries returns a vehicle's entries, most recent first,
// capped at 200 by default.
func ListFuelEntries(c *gin.Context) {
	vehicle, ok := ownedVehicle(c, c.Param("id"))
	if !ok {
		return
	}

	limit := maxEntriesLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= maxEntriesLimit {
			limit = n
		}
	}

	entries, err := loadEntries(vehicle.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching entries"})
		return
	}

	responses := make([]FuelEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, toFuelEntryResponse(e))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// loadEntries fetches a vehicle's entries descending by creation time.
func loadEntries(vehicleID uint, limit int) ([]models.FuelEntry, error) {
	var entries []models.FuelEntry
	err := config.DB.Where("vehicle_id = ?", vehicleID).
		Order("created_at desc").Order("id desc").
		Limit(limit).Find(&entries).Error
	return entries, err
}

// UpdateFuelEntry edits a fill-up's raw inputs and recomputes the
// derived fields against the entry chronologically before it.
func UpdateFuelEntry(c *gin.Context) {
	entry, ok := ownedEntry(c, c.Param("id"))
	if !ok {
		return
	}

	var input struct {
		Odometer      *float64 `json:"odometer"`
		PricePerLiter *float64 `json:"price_per_liter"`
		AmountPaid    *float64 `json:"amount_paid"`
		Distance      *float64 `json:"distance"`
		Location      *string  `json:"location"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update"})
		return
	}

	if input.Odometer != nil {
		entry.Odometer = *input.Odometer
	}
	if input.PricePerLiter != nil {
		entry.PricePerLiter = *input.PricePerLiter
	}
	if input.AmountPaid != nil {
		entry.AmountPaid = *input.AmountPaid
	}
	if input.Location != nil {
		wkbLoc, err := parseAndConvertGeometry(*input.Location)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location: " + err.Error()})
			return
		}
		entry.Location = wkbLoc
	}

	// Previous entry for this vehicle, by creation time.
	prevOdo := -1.0
	var prev models.FuelEntry
	err := config.DB.Where("vehicle_id = ? AND created_at < ?", entry.VehicleID, entry.CreatedAt).
		Order("created_at desc").Order("id desc").First(&prev).Error
	if err == nil {
		prevOdo = prev.Odometer
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var d fuelcalc.Derived
	if input.Distance != nil {
		d = fuelcalc.ComputeWithDistance(*input.Distance, entry.PricePerLiter, entry.AmountPaid)
	} else {
		d = fuelcalc.Compute(prevOdo, entry.Odometer, entry.PricePerLiter, entry.AmountPaid)
	}
	entry.Distance = d.Distance
	entry.FuelUsed = d.FuelUsed
	entry.Efficiency = d.Efficiency

	if err := config.DB.Save(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": toFuelEntryResponse(entry)})
}

func DeleteFuelEntry(c *gin.Context) {
	entry, ok := ownedEntry(c, c.Param("id"))
	if !ok {
		return
	}
	if err := config.DB.Delete(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}

// ownedEntry loads a fuel entry and verifies the caller owns its vehicle.
func ownedEntry(c *gin.Context, idParam string) (models.FuelEntry, bool) {
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry ID"})
		return models.FuelEntry{}, false
	}

	var entry models.FuelEntry
	if err := config.DB.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return models.FuelEntry{}, false
	}

	var vehicle models.Vehicle
	if err := config.DB.Where("id = ? AND user_id = ?", entry.VehicleID, currentUserID(c)).First(&vehicle).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return models.FuelEntry{}, false
	}
	return entry, true
}
