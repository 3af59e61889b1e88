package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"fuel_sense/internal/config"
	"fuel_sense/internal/models"
	"fuel_sense/internal/services/fuelcsv"
	"fuel_sense/internal/services/notify"
)

// gormTransferStore adapts the database to fuelcsv.Store, scoped to the
// importing user so vehicles created mid-import land on their account.
type gormTransferStore struct {
	userID uint
}

func (s *gormTransferStore) Vehicles() ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := config.DB.Where("user_id = ?", s.userID).Find(&vehicles).Error
	return vehicles, err
}

func (s *gormTransferStore) CreateVehicle(name, vtype string) (models.Vehicle, error) {
	vehicle := models.Vehicle{UserID: s.userID, Name: name, Type: vtype}
	err := config.DB.Create(&vehicle).Error
	return vehicle, err
}

func (s *gormTransferStore) CreateEntry(vehicleID uint, odometer, price, amount, distance float64) error {
	_, err := addFuelEntry(vehicleID, odometer, price, amount, &distance, nil)
	return err
}

// ExportVehicleCSV streams one vehicle's history in the app's CSV format.
func ExportVehicleCSV(c *gin.Context) {
	vehicle, ok := ownedVehicle(c, c.Param("id"))
	if !ok {
		return
	}

	entries, err := loadEntries(vehicle.ID, maxEntriesLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching entries"})
		return
	}

	var buf bytes.Buffer
	if err := fuelcsv.ExportVehicle(&buf, vehicle, entries, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed: " + err.Error()})
		return
	}

	filename := fmt.Sprintf("%s_fuel_history_%s.csv", vehicle.Name, time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// ExportAllCSV streams every vehicle's entries in the multi-vehicle
// variant (leading Vehicle column, no metadata header).
func ExportAllCSV(c *gin.Context) {
	store := &gormTransferStore{userID: currentUserID(c)}
	vehicles, err := store.Vehicles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching vehicles"})
		return
	}

	entriesByVehicle := make(map[uint][]models.FuelEntry, len(vehicles))
	for _, v := range vehicles {
		entries, err := loadEntries(v.ID, maxEntriesLimit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching entries"})
			return
		}
		entriesByVehicle[v.ID] = entries
	}

	var buf bytes.Buffer
	if err := fuelcsv.ExportAll(&buf, vehicles, entriesByVehicle); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed: " + err.Error()})
		return
	}

	filename := fmt.Sprintf("fuel_history_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// ImportCSV replays an export (either variant) from the request body.
func ImportCSV(c *gin.Context) {
	importer := &fuelcsv.Importer{
		Store:    &gormTransferStore{userID: currentUserID(c)},
		Notifier: notify.LogNotifier{},
	}

	result, err := importer.Import(c.Request.Body)
	if err != nil {
		logrus.WithError(err).Warn("ImportCSV: import aborted")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "partial": result})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// ExportVehicleExcel renders one vehicle's history as a styled XLSX
// workbook for users who want it in a spreadsheet.
func ExportVehicleExcel(c *gin.Context) {
	vehicle, ok := ownedVehicle(c, c.Param("id"))
	if !ok {
		return
	}

	entries, err := loadEntries(vehicle.ID, maxEntriesLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching entries"})
		return
	}

	f, err := buildExcelWorkbook(vehicle, entries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate Excel file"})
		return
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		return
	}

	filename := fmt.Sprintf("%s_fuel_history_%s.xlsx", vehicle.Name, time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buffer.Bytes())
}

func buildExcelWorkbook(vehicle models.Vehicle, entries []models.FuelEntry) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Sheet1"

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s Fuel History", vehicle.Name))
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	f.SetRowHeight(sheet, 1, 30)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	headers := []string{"Date", "Odometer", "Fuel Amount", "Petrol Price", "Distance", "Fuel Used", "Efficiency (km/l)"}
	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 4)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, e := range entries {
		values := []interface{}{
			e.CreatedAt.Format("2006-01-02"),
			e.Odometer,
			e.AmountPaid,
			e.PricePerLiter,
			e.Distance,
			e.FuelUsed,
			e.Efficiency,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+5)
			f.SetCellValue(sheet, cell, v)
		}
	}
	return f, nil
}
