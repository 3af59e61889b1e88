package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHubFanOut(t *testing.T) {
	hub := NewHub()

	var first, second []Notification
	unsubFirst := hub.Subscribe(Func(func(n Notification) { first = append(first, n) }))
	hub.Subscribe(Func(func(n Notification) { second = append(second, n) }))

	hub.Notify(Notification{Level: LevelInfo, Message: "hello"})
	assert.Len(t, first, 1)
	assert.Len(t, second, 1)

	unsubFirst()
	hub.Notify(Notification{Level: LevelError, Message: "again"})
	assert.Len(t, first, 1)
	assert.Len(t, second, 2)
	assert.Equal(t, LevelError, second[1].Level)
}

func TestHubUnsubscribeIsIdempotent(t *testing.T) {
	hub := NewHub()

	var got []Notification
	unsub := hub.Subscribe(Func(func(n Notification) { got = append(got, n) }))
	unsub()
	unsub()

	hub.Notify(Notification{Level: LevelSuccess, Message: "nobody home"})
	assert.Empty(t, got)
}

func TestFuncAdapter(t *testing.T) {
	var got Notification
	var n Notifier = Func(func(x Notification) { got = x })
	n.Notify(Notification{Level: LevelSuccess, Message: "ok"})
	assert.Equal(t, "ok", got.Message)
}
