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

// CreateVehicle registers a new vehicle for the authenticated user.
func CreateVehicle(c *gin.Context) {
	var input struct {
		Name  string `json:"name" binding:"required"`
		Type  string `json:"type"`
		Make  string `json:"make"`
		Model string `json:"model"`
		Year  int    `json:"year"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle input: " + err.Error()})
		return
	}

	if input.Type != "car" && input.Type != "bike" {
		input.Type = "car"
	}

	vehicle := models.Vehicle{
		UserID: currentUserID(c),
		Name:   input.Name,
		Type:   input.Type,
		Make:   input.Make,
		VModel: input.Model,
		Year:   input.Year,
	}
	if err := config.DB.Create(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

// ListVehicles returns all vehicles owned by the authenticated user.
func ListVehicles(c *gin.Context) {
	var vehicles []models.Vehicle
	if err := config.DB.Where("user_id = ?", currentUserID(c)).Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching vehicles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

func GetVehicle(c *gin.Context) {
	vehicle, ok := ownedVehicle(c, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// UpdateVehicle applies a partial update, including the document expiry
// dates (insurance / registration / PUC).
func UpdateVehicle(c *gin.Context) {
	vehicle, ok := ownedVehicle(c, c.Param("id"))
	if !ok {
		return
	}

	var input struct {
		Name               *string    `json:"name"`
		Type               *string    `json:"type"`
		Make               *string    `json:"make"`
		Model              *string    `json:"model"`
		Year               *int       `json:"year"`
		InsuranceExpiry    *time.Time `json:"insurance_expiry"`
		RegistrationExpiry *time.Time `json:"registration_expiry"`
		PucExpiry          *time.Time `json:"puc_expiry"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update"})
		return
	}

	if input.Name != nil {
		vehicle.Name = *input.Name
	}
	if input.Type != nil && (*input.Type == "car" || *input.Type == "bike") {
		vehicle.Type = *input.Type
	}
	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.Model != nil {
		vehicle.VModel = *input.Model
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.InsuranceExpiry != nil {
		vehicle.InsuranceExpiry = input.InsuranceExpiry
	}
	if input.RegistrationExpiry != nil {
		vehicle.RegistrationExpiry = input.RegistrationExpiry
	}
	if input.PucExpiry != nil {
		vehicle.PucExpiry = input.PucExpiry
	}

	if err := config.DB.Save(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// DeleteVehicle removes a vehicle along with its entries and records.
func DeleteVehicle(c *gin.Context) {
	vehicle, ok := ownedVehicle(c, c.Param("id"))
	if !ok {
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	if err := tx.Where("vehicle_id = ?", vehicle.ID).Delete(&models.FuelEntry{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entries: " + err.Error()})
		return
	}
	if err := tx.Where("vehicle_id = ?", vehicle.ID).Delete(&models.ServiceRecord{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service records: " + err.Error()})
		return
	}
	if err := tx.Delete(&vehicle).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle: " + err.Error()})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
}

// currentUserID pulls the authenticated user id out of the JWT claims.
func currentUserID(c *gin.Context) uint {
	return uint(c.MustGet("user_id").(float64))
}

// ownedVehicle loads a vehicle and checks it belongs to the caller.
// On failure it writes the error response and returns ok=false.
func ownedVehicle(c *gin.Context, idParam string) (models.Vehicle, bool) {
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return models.Vehicle{}, false
	}

	var vehicle models.Vehicle
	err = config.DB.Where("id = ? AND user_id = ?", id, currentUserID(c)).First(&vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return models.Vehicle{}, false
	}
	return vehicle, true
}
