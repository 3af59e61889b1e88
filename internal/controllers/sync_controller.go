package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"fuel_sense/internal/config"
	"fuel_sense/internal/models"
	"fuel_sense/internal/services/outbox"
)

// EnqueueMutations accepts mutations a client captured while offline and
// appends them to the durable queue. Each mutation carries a client
// UUID ref; re-submitting the same ref is a no-op, which makes the
// endpoint safe to call again after a flaky upload.
func EnqueueMutations(c *gin.Context) {
	var input struct {
		Mutations []struct {
			Ref     string          `json:"ref"`
			Kind    string          `json:"kind" binding:"required"`
			Payload json.RawMessage `json:"payload" binding:"required"`
		} `json:"mutations" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	store := &outbox.GormStore{DB: config.DB}

	queued, duplicates := 0, 0
	for _, m := range input.Mutations {
		switch m.Kind {
		case outbox.KindAddEntry, outbox.KindAddVehicle, outbox.KindAddService:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown mutation kind %q", m.Kind)})
			return
		}

		ref := m.Ref
		if ref == "" {
			ref = uuid.NewString()
		}
		err := store.Append(models.PendingMutation{
			Ref:     ref,
			UserID:  userID,
			Kind:    m.Kind,
			Payload: m.Payload,
		})
		if err != nil {
			if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
				duplicates++
				continue
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue mutation: " + err.Error()})
			return
		}
		queued++
	}

	c.JSON(http.StatusAccepted, gin.H{"queued": queued, "duplicates": duplicates})
}

// DrainMutations replays the caller's queued mutations against the real
// tables. Retries are bounded; a mutation that failed 3 times is dropped.
func DrainMutations(c *gin.Context) {
	userID := currentUserID(c)
	drainer := outbox.NewDrainer(&outbox.GormStore{DB: config.DB}, func(m models.PendingMutation) error {
		return applyMutation(userID, m)
	})

	report, err := drainer.Drain(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Drain failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// applyMutation dispatches one queued mutation to the matching create
// operation, re-checking vehicle ownership at apply time.
func applyMutation(userID uint, m models.PendingMutation) error {
	switch m.Kind {
	case outbox.KindAddVehicle:
		var p struct {
			Name string `json:"name"`
			Type string `json:"type"`
		}
		if err := outbox.DecodePayload(m, &p); err != nil {
			return err
		}
		if p.Name == "" {
			return fmt.Errorf("vehicle name missing")
		}
		if p.Type != "car" && p.Type != "bike" {
			p.Type = "car"
		}
		vehicle := models.Vehicle{UserID: userID, Name: p.Name, Type: p.Type}
		return config.DB.Create(&vehicle).Error

	case outbox.KindAddEntry:
		var p struct {
			VehicleID     uint     `json:"vehicle_id"`
			Odometer      float64  `json:"odometer"`
			PricePerLiter float64  `json:"price_per_liter"`
			AmountPaid    float64  `json:"amount_paid"`
			Distance      *float64 `json:"distance"`
		}
		if err := outbox.DecodePayload(m, &p); err != nil {
			return err
		}
		if err := vehicleBelongsTo(userID, p.VehicleID); err != nil {
			return err
		}
		_, err := addFuelEntry(p.VehicleID, p.Odometer, p.PricePerLiter, p.AmountPaid, p.Distance, nil)
		return err

	case outbox.KindAddService:
		var p struct {
			VehicleID   uint      `json:"vehicle_id"`
			Date        time.Time `json:"date"`
			Type        string    `json:"type"`
			Description string    `json:"description"`
			Cost        float64   `json:"cost"`
			Mileage     float64   `json:"mileage"`
		}
		if err := outbox.DecodePayload(m, &p); err != nil {
			return err
		}
		if err := vehicleBelongsTo(userID, p.VehicleID); err != nil {
			return err
		}
		record := models.ServiceRecord{
			VehicleID:   p.VehicleID,
			Date:        p.Date,
			Type:        p.Type,
			Description: p.Description,
			Cost:        p.Cost,
			Mileage:     p.Mileage,
		}
		return config.DB.Create(&record).Error
	}
	return fmt.Errorf("unknown mutation kind %q", m.Kind)
}

func vehicleBelongsTo(userID, vehicleID uint) error {
	var vehicle models.Vehicle
	if err := config.DB.Where("id = ? AND user_id = ?", vehicleID, userID).First(&vehicle).Error; err != nil {
		return fmt.Errorf("vehicle %d not found", vehicleID)
	}
	return nil
}
