package models

import "gorm.io/gorm"

// UserPreference holds per-user settings. The default vehicle lives here
// rather than on the vehicle itself.
type UserPreference struct {
	gorm.Model
	UserID           uint `json:"user_id" gorm:"uniqueIndex"`
	DefaultVehicleID uint `json:"default_vehicle_id"`
}
