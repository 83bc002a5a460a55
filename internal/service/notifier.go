package service

import (
	"sync"

	"ALH_backend/internal/model"

	"github.com/google/uuid"
)

// Notifier holds the transient per-user queues of badge notifications still
// waiting to be shown. Awards are appended by the evaluation pass and
// drained one at a time by the websocket route: the head stays queued until
// the client acknowledges it, so exactly one notification is visible at a
// time, in award order. Nothing here survives a restart — the award records
// do, so lost notifications are never re-shown and never re-awarded.
type Notifier struct {
	mu      sync.Mutex
	queues  map[uuid.UUID][]*model.UserBadge
	signals map[uuid.UUID]chan struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{
		queues:  make(map[uuid.UUID][]*model.UserBadge),
		signals: make(map[uuid.UUID]chan struct{}),
	}
}

func (n *Notifier) Enqueue(userID uuid.UUID, award *model.UserBadge) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.queues[userID] = append(n.queues[userID], award)

	select {
	case n.signal(userID) <- struct{}{}:
	default:
	}
}

// Peek returns the notification currently up for display, without removing
// it.
func (n *Notifier) Peek(userID uuid.UUID) (*model.UserBadge, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	q := n.queues[userID]
	if len(q) == 0 {
		return nil, false
	}
	return q[0], true
}

// Ack confirms the head notification was displayed and advances the queue.
// The badge ID must match the head so a stale ack cannot skip an award.
func (n *Notifier) Ack(userID uuid.UUID, badgeID string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	q := n.queues[userID]
	if len(q) == 0 || q[0].BadgeID != badgeID {
		return false
	}

	n.queues[userID] = q[1:]
	return true
}

func (n *Notifier) Pending(userID uuid.UUID) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.queues[userID])
}

// Signal returns a channel that receives after new notifications are
// enqueued for the user. The channel is buffered and coalescing.
func (n *Notifier) Signal(userID uuid.UUID) <-chan struct{} {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.signal(userID)
}

func (n *Notifier) signal(userID uuid.UUID) chan struct{} {
	ch, ok := n.signals[userID]
	if !ok {
		ch = make(chan struct{}, 1)
		n.signals[userID] = ch
	}
	return ch
}
