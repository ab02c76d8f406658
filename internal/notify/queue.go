// Package notify implements the ephemeral notification queue. Expiry policy
// (the duration on a notification) is separated from expiry execution (a
// Scheduler), so the queue itself stays synchronous and testable.
package notify

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
	"sync"
	"time"

	"dolist-cli/internal/model"
)

// DefaultDuration is applied when a notification carries no duration.
const DefaultDuration = 5 * time.Second

// Scheduler runs fn once after d and returns a best-effort cancel func.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler executes expiries on real timers.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

type Queue struct {
	mu      sync.Mutex
	sched   Scheduler
	items   []model.Notification
	cancels map[string]func()
}

// New returns a queue using sched for auto-dismiss. A nil sched means real
// timers.
func New(sched Scheduler) *Queue {
	if sched == nil {
		sched = TimerScheduler{}
	}
	return &Queue{sched: sched, cancels: map[string]func(){}}
}

// Add appends n, assigning an id if absent. Unless the notification is
// persistent or carries an explicit zero duration, a one-shot expiry is
// scheduled that removes this exact notification by id. An unspecified
// (nil) duration gets DefaultDuration.
func (q *Queue) Add(n model.Notification) model.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	if strings.TrimSpace(n.ID) == "" {
		n.ID = newNoteID()
	}
	q.items = append(q.items, n)

	d := DefaultDuration
	if n.Duration != nil {
		d = *n.Duration
	}
	if n.Persistent || d <= 0 {
		return n
	}
	id := n.ID
	q.cancels[id] = q.sched.AfterFunc(d, func() { q.Remove(id) })
	return n
}

// Remove drops the notification by id. Removing an already-removed or
// unknown id is a no-op, which also makes a late timer firing harmless.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if cancel, ok := q.cancels[id]; ok {
		delete(q.cancels, id)
		cancel()
	}
	for i := range q.items {
		if q.items[i].ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// Clear empties the list. Pending timers are left to fire as no-ops.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
	q.cancels = map[string]func(){}
}

// List returns a copy of the current notifications in arrival order.
func (q *Queue) List() []model.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]model.Notification, len(q.items))
	copy(out, q.items)
	return out
}

func newNoteID() string {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "note-0"
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return "note-" + strings.ToLower(enc.EncodeToString(b[:]))
}
