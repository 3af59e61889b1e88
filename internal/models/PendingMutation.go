package models

import "gorm.io/gorm"

// PendingMutation is one queued offline mutation awaiting replay.
// Ref is the client-generated UUID used to deduplicate re-submissions.
type PendingMutation struct {
	gorm.Model
	Ref      string `json:"ref" gorm:"uniqueIndex"`
	UserID   uint   `json:"user_id" gorm:"index"`
	Kind     string `json:"kind"` // "add_entry", "add_vehicle", "add_service"
	Payload  []byte `json:"payload" gorm:"type:bytea"`
	Attempts int    `json:"attempts"`
}
