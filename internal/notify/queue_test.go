package notify

import (
	"testing"
	"time"

	"dolist-cli/internal/model"
)

// manualScheduler records scheduled expiries and fires them on demand,
// keeping the tests deterministic.
type manualScheduler struct {
	entries []*manualEntry
}

type manualEntry struct {
	d         time.Duration
	fn        func()
	cancelled bool
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) func() {
	e := &manualEntry{d: d, fn: fn}
	s.entries = append(s.entries, e)
	return func() { e.cancelled = true }
}

func (s *manualScheduler) fireAll() {
	for _, e := range s.entries {
		if !e.cancelled {
			e.fn()
		}
	}
}

func TestQueue_AddAssignsIDAndSchedulesDefault(t *testing.T) {
	t.Parallel()

	sched := &manualScheduler{}
	q := New(sched)

	n := q.Add(model.Notification{Kind: model.NotifySuccess, Title: "Saved"})
	if n.ID == "" {
		t.Fatalf("id not assigned")
	}
	if len(sched.entries) != 1 {
		t.Fatalf("expected one scheduled expiry, got %d", len(sched.entries))
	}
	if sched.entries[0].d != DefaultDuration {
		t.Fatalf("duration = %v, want %v", sched.entries[0].d, DefaultDuration)
	}
	if got := q.List(); len(got) != 1 || got[0].ID != n.ID {
		t.Fatalf("list: %+v", got)
	}
}

func TestQueue_ExplicitDurationUsed(t *testing.T) {
	t.Parallel()

	sched := &manualScheduler{}
	q := New(sched)

	d := 30 * time.Second
	q.Add(model.Notification{Kind: model.NotifyInfo, Title: "Slow", Duration: &d})
	if len(sched.entries) != 1 || sched.entries[0].d != d {
		t.Fatalf("entries: %+v", sched.entries)
	}
}

func TestQueue_PersistentAndZeroDurationNeverScheduled(t *testing.T) {
	t.Parallel()

	sched := &manualScheduler{}
	q := New(sched)

	q.Add(model.Notification{Kind: model.NotifyError, Title: "Sticky", Persistent: true})
	zero := time.Duration(0)
	q.Add(model.Notification{Kind: model.NotifyError, Title: "Zero", Duration: &zero})

	if len(sched.entries) != 0 {
		t.Fatalf("persistent/zero notifications must not schedule expiry: %+v", sched.entries)
	}
	if got := q.List(); len(got) != 2 {
		t.Fatalf("list: %+v", got)
	}

	// They survive every expiry pass.
	sched.fireAll()
	if got := q.List(); len(got) != 2 {
		t.Fatalf("persistent notifications expired: %+v", got)
	}
}

func TestQueue_ExpiryRemovesExactNotification(t *testing.T) {
	t.Parallel()

	sched := &manualScheduler{}
	q := New(sched)

	a := q.Add(model.Notification{Kind: model.NotifySuccess, Title: "A"})
	q.Add(model.Notification{Kind: model.NotifySuccess, Title: "B", Persistent: true})

	sched.fireAll()
	got := q.List()
	if len(got) != 1 || got[0].Title != "B" {
		t.Fatalf("expected only B to remain, got %+v", got)
	}
	if got[0].ID == a.ID {
		t.Fatalf("wrong notification expired")
	}
}

func TestQueue_RemoveIsIdempotentAndCancelsTimer(t *testing.T) {
	t.Parallel()

	sched := &manualScheduler{}
	q := New(sched)

	n := q.Add(model.Notification{Kind: model.NotifySuccess, Title: "A"})
	q.Remove(n.ID)
	if len(q.List()) != 0 {
		t.Fatalf("not removed")
	}
	if !sched.entries[0].cancelled {
		t.Fatalf("pending timer not cancelled on manual remove")
	}

	// Second remove and a late timer fire are both harmless.
	q.Remove(n.ID)
	sched.fireAll()
	if len(q.List()) != 0 {
		t.Fatalf("list grew: %+v", q.List())
	}
}

func TestQueue_Clear(t *testing.T) {
	t.Parallel()

	sched := &manualScheduler{}
	q := New(sched)
	q.Add(model.Notification{Kind: model.NotifySuccess, Title: "A"})
	q.Add(model.Notification{Kind: model.NotifySuccess, Title: "B"})

	q.Clear()
	if len(q.List()) != 0 {
		t.Fatalf("clear left items: %+v", q.List())
	}
	// Late fires after Clear are no-ops.
	sched.fireAll()
	if len(q.List()) != 0 {
		t.Fatalf("late fire resurrected items: %+v", q.List())
	}
}

func TestQueue_ListReturnsCopy(t *testing.T) {
	t.Parallel()

	q := New(&manualScheduler{})
	q.Add(model.Notification{Kind: model.NotifySuccess, Title: "A"})

	got := q.List()
	got[0].Title = "Mutated"
	if q.List()[0].Title != "A" {
		t.Fatalf("List aliases internal storage")
	}
}

func TestQueue_PreservesArrivalOrder(t *testing.T) {
	t.Parallel()

	q := New(&manualScheduler{})
	for _, title := range []string{"first", "second", "third"} {
		q.Add(model.Notification{Kind: model.NotifyInfo, Title: title})
	}
	got := q.List()
	if got[0].Title != "first" || got[1].Title != "second" || got[2].Title != "third" {
		t.Fatalf("order: %+v", got)
	}
}
