package service

import (
	"testing"
	"time"

	"ALH_backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNotifier_OneAtATime(t *testing.T) {
	notifier := NewNotifier()
	userID := uuid.New()

	first := &model.UserBadge{UserID: userID, BadgeID: "primeiro_passo"}
	second := &model.UserBadge{UserID: userID, BadgeID: "questionador"}

	notifier.Enqueue(userID, first)
	notifier.Enqueue(userID, second)
	assert.Equal(t, 2, notifier.Pending(userID))

	// The head stays visible until it is acknowledged.
	head, ok := notifier.Peek(userID)
	assert.True(t, ok)
	assert.Equal(t, "primeiro_passo", head.BadgeID)

	head, ok = notifier.Peek(userID)
	assert.True(t, ok)
	assert.Equal(t, "primeiro_passo", head.BadgeID)

	assert.True(t, notifier.Ack(userID, "primeiro_passo"))

	head, ok = notifier.Peek(userID)
	assert.True(t, ok)
	assert.Equal(t, "questionador", head.BadgeID)

	assert.True(t, notifier.Ack(userID, "questionador"))
	assert.Equal(t, 0, notifier.Pending(userID))

	_, ok = notifier.Peek(userID)
	assert.False(t, ok)
}

func TestNotifier_StaleAckIsRejected(t *testing.T) {
	notifier := NewNotifier()
	userID := uuid.New()

	notifier.Enqueue(userID, &model.UserBadge{UserID: userID, BadgeID: "coletor"})

	assert.False(t, notifier.Ack(userID, "primeiro_passo"))
	assert.Equal(t, 1, notifier.Pending(userID))

	assert.True(t, notifier.Ack(userID, "coletor"))
	assert.False(t, notifier.Ack(userID, "coletor"))
}

func TestNotifier_QueuesAreIsolatedPerUser(t *testing.T) {
	notifier := NewNotifier()
	alice := uuid.New()
	bob := uuid.New()

	notifier.Enqueue(alice, &model.UserBadge{UserID: alice, BadgeID: "criador"})

	assert.Equal(t, 1, notifier.Pending(alice))
	assert.Equal(t, 0, notifier.Pending(bob))

	_, ok := notifier.Peek(bob)
	assert.False(t, ok)
}

func TestNotifier_SignalFiresOnEnqueue(t *testing.T) {
	notifier := NewNotifier()
	userID := uuid.New()

	signal := notifier.Signal(userID)

	notifier.Enqueue(userID, &model.UserBadge{UserID: userID, BadgeID: "inspirado"})

	select {
	case <-signal:
	case <-time.After(time.Second):
		t.Fatal("expected signal after enqueue")
	}

	// Coalescing: many enqueues collapse into at most one pending signal.
	notifier.Enqueue(userID, &model.UserBadge{UserID: userID, BadgeID: "coletor"})
	notifier.Enqueue(userID, &model.UserBadge{UserID: userID, BadgeID: "criador"})

	select {
	case <-signal:
	case <-time.After(time.Second):
		t.Fatal("expected signal after enqueue")
	}
	select {
	case <-signal:
		t.Fatal("signal should coalesce")
	default:
	}
}
