package models

import (
	"gorm.io/gorm"
)

// FuelEntry is one fill-up. Distance, FuelUsed and Efficiency are derived
// from the raw inputs on every create/update, never supplied directly.
type FuelEntry struct {
	gorm.Model
	VehicleID     uint    `json:"vehicle_id" gorm:"index"`
	Odometer      float64 `json:"odometer"`        // km
	PricePerLiter float64 `json:"price_per_liter"` // currency per liter
	AmountPaid    float64 `json:"amount_paid"`     // currency
	Distance      float64 `json:"distance"`        // km since previous entry
	FuelUsed      float64 `json:"fuel_used"`       // liters
	Efficiency    float64 `json:"efficiency"`      // km per liter

	// Optional fill-up location stored as WKB (point); API speaks GeoJSON.
	Location []byte `gorm:"type:bytea" json:"-"`
}
