package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fuel_sense/internal/config"
	"fuel_sense/internal/models"
)

// CreateServiceRecord logs a maintenance event for a vehicle.
func CreateServiceRecord(c *gin.Context) {
	vehicle, ok := ownedVehicle(c, c.Param("id"))
	if !ok {
		return
	}

	var input struct {
		Date           time.Time  `json:"date" binding:"required"`
		Type           string     `json:"type" binding:"required"`
		Description    string     `json:"description"`
		Cost           float64    `json:"cost"`
		Mileage        float64    `json:"mileage"`
		NextDueDate    *time.Time `json:"next_due_date"`
		NextDueMileage float64    `json:"next_due_mileage"`
		Provider       string     `json:"provider"`
		Notes          string     `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service input: " + err.Error()})
		return
	}

	record := models.ServiceRecord{
		VehicleID:      vehicle.ID,
		Date:           input.Date,
		Type:           input.Type,
		Description:    input.Description,
		Cost:           input.Cost,
		Mileage:        input.Mileage,
		NextDueDate:    input.NextDueDate,
		NextDueMileage: input.NextDueMileage,
		Provider:       input.Provider,
		Notes:          input.Notes,
	}
	if err := config.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service record: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"service_record": record})
}

// ListServiceRecords returns a vehicle's maintenance history, most
// recent first.
func ListServiceRecords(c *gin.Context) {
	vehicle, ok := ownedVehicle(c, c.Param("id"))
	if !ok {
		return
	}

	var records []models.ServiceRecord
	if err := config.DB.Where("vehicle_id = ?", vehicle.ID).
		Order("date desc").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching service records"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}

func UpdateServiceRecord(c *gin.Context) {
	record, ok := ownedServiceRecord(c, c.Param("id"))
	if !ok {
		return
	}

	var input struct {
		Date           *time.Time `json:"date"`
		Type           *string    `json:"type"`
		Description    *string    `json:"description"`
		Cost           *float64   `json:"cost"`
		Mileage        *float64   `json:"mileage"`
		NextDueDate    *time.Time `json:"next_due_date"`
		NextDueMileage *float64   `json:"next_due_mileage"`
		Provider       *string    `json:"provider"`
		Notes          *string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update"})
		return
	}

	if input.Date != nil {
		record.Date = *input.Date
	}
	if input.Type != nil {
		record.Type = *input.Type
	}
	if input.Description != nil {
		record.Description = *input.Description
	}
	if input.Cost != nil {
		record.Cost = *input.Cost
	}
	if input.Mileage != nil {
		record.Mileage = *input.Mileage
	}
	if input.NextDueDate != nil {
		record.NextDueDate = input.NextDueDate
	}
	if input.NextDueMileage != nil {
		record.NextDueMileage = *input.NextDueMileage
	}
	if input.Provider != nil {
		record.Provider = *input.Provider
	}
	if input.Notes != nil {
		record.Notes = *input.Notes
	}

	if err := config.DB.Save(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"service_record": record})
}

func DeleteServiceRecord(c *gin.Context) {
	record, ok := ownedServiceRecord(c, c.Param("id"))
	if !ok {
		return
	}
	if err := config.DB.Delete(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service record: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service record deleted"})
}

func ownedServiceRecord(c *gin.Context, idParam string) (models.ServiceRecord, bool) {
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service record ID"})
		return models.ServiceRecord{}, false
	}

	var record models.ServiceRecord
	if err := config.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service record not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return models.ServiceRecord{}, false
	}

	var vehicle models.Vehicle
	if err := config.DB.Where("id = ? AND user_id = ?", record.VehicleID, currentUserID(c)).First(&vehicle).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service record not found"})
		return models.ServiceRecord{}, false
	}
	return record, true
}
