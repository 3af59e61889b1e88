// internal/models/vehicle.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type Vehicle struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"index"`
	Name   string `json:"name"`
	Type   string `json:"type" gorm:"default:car"` // "car" or "bike"
	Make   string `json:"make"`
	VModel string `json:"model" gorm:"column:vehicle_model"`
	Year   int    `json:"year"`

	// Document expiry dates; nil when the user has not recorded them.
	InsuranceExpiry    *time.Time `json:"insurance_expiry"`
	RegistrationExpiry *time.Time `json:"registration_expiry"`
	PucExpiry          *time.Time `json:"puc_expiry"`

	FuelEntries    []FuelEntry     `gorm:"foreignKey:VehicleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"fuel_entries,omitempty"`
	ServiceRecords []ServiceRecord `gorm:"foreignKey:VehicleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service_records,omitempty"`
}
