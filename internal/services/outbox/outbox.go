// Package outbox is the durable queue for mutations a client captured
// while offline. The queue abstraction is deliberately storage-agnostic:
// Store is the only thing that touches a database, and the drain policy
// (bounded retries, drop on exhaustion) is explicit configuration.
package outbox

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"fuel_sense/internal/models"
)

// DefaultMaxAttempts matches the original client's retry cap.
const DefaultMaxAttempts = 3

// Mutation kinds the drain knows how to apply.
const (
	KindAddEntry   = "add_entry"
	KindAddVehicle = "add_vehicle"
	KindAddService = "add_service"
)

// Store persists queued mutations.
type Store interface {
	Append(m models.PendingMutation) error
	PeekAll(userID uint) ([]models.PendingMutation, error)
	Remove(id uint) error
	BumpAttempts(id uint) error
}

// Applier applies one mutation to the real backend. A nil error removes
// the mutation from the queue.
type Applier func(m models.PendingMutation) error

// DrainReport summarizes one drain pass.
type DrainReport struct {
	Applied int `json:"applied"`
	Retried int `json:"retried"`
	Dropped int `json:"dropped"`
}

// Drainer replays queued mutations in order. A mutation that keeps
// failing is retried on later passes until it has been attempted
// MaxAttempts times, then dropped.
type Drainer struct {
	Store       Store
	Apply       Applier
	MaxAttempts int
}

func NewDrainer(store Store, apply Applier) *Drainer {
	return &Drainer{Store: store, Apply: apply, MaxAttempts: DefaultMaxAttempts}
}

// Drain applies every queued mutation for one user.
func (d *Drainer) Drain(userID uint) (DrainReport, error) {
	var report DrainReport

	pending, err := d.Store.PeekAll(userID)
	if err != nil {
		return report, err
	}

	for _, m := range pending {
		if err := d.Apply(m); err == nil {
			if err := d.Store.Remove(m.ID); err != nil {
				return report, err
			}
			report.Applied++
			continue
		} else {
			logrus.WithError(err).WithFields(logrus.Fields{
				"ref":      m.Ref,
				"kind":     m.Kind,
				"attempts": m.Attempts + 1,
			}).Warn("queued mutation failed")
		}

		if m.Attempts+1 >= d.MaxAttempts {
			if err := d.Store.Remove(m.ID); err != nil {
				return report, err
			}
			report.Dropped++
			continue
		}
		if err := d.Store.BumpAttempts(m.ID); err != nil {
			return report, err
		}
		report.Retried++
	}
	return report, nil
}

// DecodePayload unmarshals a mutation payload into dst.
func DecodePayload(m models.PendingMutation, dst interface{}) error {
	return json.Unmarshal(m.Payload, dst)
}
