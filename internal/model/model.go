package model

import (
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists all priorities in rank order (lowest first).
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Rank returns the fixed ordering low(1) < medium(2) < high(3) < urgent(4).
// Unknown values rank 0, below every valid priority.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	default:
		return 0
	}
}

func (p Priority) Valid() bool { return p.Rank() > 0 }

type Item struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	CategoryID  string     `json:"categoryId"`
	Due         *time.Time `json:"due,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// HasTag reports exact tag membership.
func (it Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// FilterSpec is the active set of narrowing criteria. A zero value for any
// field imposes no constraint.
type FilterSpec struct {
	Status     StatusFilter `json:"status"`
	Priority   Priority     `json:"priority,omitempty"`
	CategoryID string       `json:"categoryId,omitempty"`
	Search     string       `json:"search,omitempty"`
	Tag        string       `json:"tag,omitempty"`
}

func DefaultFilter() FilterSpec {
	return FilterSpec{Status: StatusAll}
}

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyWarning NotificationKind = "warning"
	NotifyInfo    NotificationKind = "info"
)

// Notification is a transient user-facing message emitted by mutations.
// Notifications are never persisted.
//
// Duration is nil when unspecified (the queue applies its default); an
// explicit zero (or Persistent) suppresses auto-dismiss entirely.
type Notification struct {
	ID         string           `json:"id,omitempty"`
	Kind       NotificationKind `json:"kind"`
	Title      string           `json:"title"`
	Body       string           `json:"body,omitempty"`
	Duration   *time.Duration   `json:"duration,omitempty"`
	Persistent bool             `json:"persistent,omitempty"`
}

// ExportDoc is the self-describing export/import document.
type ExportDoc struct {
	ExportedAt time.Time  `json:"exportedAt"`
	Items      []Item     `json:"items"`
	Categories []Category `json:"categories"`
}

// NormalizeTags trims, drops empties, and collapses duplicates while
// preserving first-seen order.
func NormalizeTags(tags []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p.Valid() {
		return p, true
	}
	return "", false
}

func ParseStatusFilter(s string) (StatusFilter, bool) {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case StatusAll:
		return StatusAll, true
	case StatusActive:
		return StatusActive, true
	case StatusCompleted:
		return StatusCompleted, true
	default:
		return "", false
	}
}
