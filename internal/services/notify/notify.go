// Package notify replaces the original app's global toast dispatcher
// with an explicit interface callers receive, plus a small pub/sub hub
// with a real subscribe/unsubscribe lifecycle.
package notify

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is one user-visible message.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier is passed explicitly to anything that wants to surface a
// message to the user.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a plain function to the Notifier interface.
type Func func(n Notification)

func (f Func) Notify(n Notification) { f(n) }

// LogNotifier writes notifications to the application log. It is the
// default sink when no UI channel is attached.
type LogNotifier struct{}

func (LogNotifier) Notify(n Notification) {
	logrus.WithField("level", string(n.Level)).Info(n.Message)
}

// Hub fans notifications out to subscribers. Subscribe returns an
// unsubscribe func; holding the returned func is the subscription's
// lifetime.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]Notifier
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]Notifier)}
}

func (h *Hub) Subscribe(n Notifier) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.subs[id] = n
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

func (h *Hub) Notify(n Notification) {
	h.mu.Lock()
	subs := make([]Notifier, 0, len(h.subs))
	for _, s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	for _, s := range subs {
		s.Notify(n)
	}
}
