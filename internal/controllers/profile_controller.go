package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fuel_sense/internal/config"
	"fuel_sense/internal/models"
)

// GetDefaultVehicle returns the user's default vehicle id, or "" when
// none has been chosen yet.
func GetDefaultVehicle(c *gin.Context) {
	var pref models.UserPreference
	err := config.DB.Where("user_id = ?", currentUserID(c)).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"default_vehicle_id": ""})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching preference"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"default_vehicle_id": pref.DefaultVehicleID})
}

// SetDefaultVehicle stores the default vehicle preference. The vehicle
// must belong to the caller.
func SetDefaultVehicle(c *gin.Context) {
	var input struct {
		VehicleID uint `json:"vehicle_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	var vehicle models.Vehicle
	if err := config.DB.Where("id = ? AND user_id = ?", input.VehicleID, userID).First(&vehicle).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	var pref models.UserPreference
	err := config.DB.Where("user_id = ?", userID).First(&pref).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		pref = models.UserPreference{UserID: userID, DefaultVehicleID: input.VehicleID}
		err = config.DB.Create(&pref).Error
	case err == nil:
		pref.DefaultVehicleID = input.VehicleID
		err = config.DB.Save(&pref).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save preference: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"default_vehicle_id": pref.DefaultVehicleID})
}
