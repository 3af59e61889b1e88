package outbox

import (
	"gorm.io/gorm"

	"fuel_sense/internal/models"
)

// GormStore keeps the queue in the pending_mutations table.
type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) Append(m models.PendingMutation) error {
	return s.DB.Create(&m).Error
}

func (s *GormStore) PeekAll(userID uint) ([]models.PendingMutation, error) {
	var pending []models.PendingMutation
	err := s.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&pending).Error
	return pending, err
}

func (s *GormStore) Remove(id uint) error {
	return s.DB.Unscoped().Delete(&models.PendingMutation{}, id).Error
}

func (s *GormStore) BumpAttempts(id uint) error {
	return s.DB.Model(&models.PendingMutation{}).Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}
