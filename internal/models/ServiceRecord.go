// internal/models/service_record.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// ServiceRecord is a maintenance event tied to a vehicle. Pure
// record-keeping, no computed fields.
type ServiceRecord struct {
	gorm.Model
	VehicleID   uint      `json:"vehicle_id" gorm:"index"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"` // "oil_change", "general_service", ...
	Description string    `json:"description"`

	Cost           float64    `json:"cost"`
	Mileage        float64    `json:"mileage"`
	NextDueDate    *time.Time `json:"next_due_date"`
	NextDueMileage float64    `json:"next_due_mileage"`
	Provider       string     `json:"provider"`
	Notes          string     `json:"notes"`
}
