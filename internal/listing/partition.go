// Package listing holds the pure logic behind every listing page: splitting
// shows into past and upcoming around a reference instant, grouping venues by
// area, matching names, and assembling detail views.
//
// Nothing in this package touches the store or reads the clock. Callers pass
// "now" in, which keeps every function deterministic and testable.
package listing

import (
	"fmt"
	"strings"
	"time"

	"github.com/sakif/gigboard/internal/apperror"
	"github.com/sakif/gigboard/internal/model"
)

// Boundary decides which side a show starting exactly at "now" falls on.
type Boundary int

const (
	// PastInclusive classifies start == now as past: upcoming means
	// strictly after now. This is the default.
	PastInclusive Boundary = iota
	// UpcomingInclusive classifies start == now as upcoming.
	UpcomingInclusive
)

func (b Boundary) String() string {
	switch b {
	case PastInclusive:
		return "past_inclusive"
	case UpcomingInclusive:
		return "upcoming_inclusive"
	default:
		return fmt.Sprintf("Boundary(%d)", int(b))
	}
}

// ParseBoundary reads the names produced by String. The empty string selects
// the default.
func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "past_inclusive":
		return PastInclusive, nil
	case "upcoming_inclusive":
		return UpcomingInclusive, nil
	default:
		return PastInclusive, fmt.Errorf("listing: unknown show boundary %q", s)
	}
}

// Upcoming reports whether an event starting at start is upcoming at now.
func (b Boundary) Upcoming(start, now time.Time) bool {
	if b == UpcomingInclusive {
		return !start.Before(now)
	}
	return start.After(now)
}

// Window is a collection split around a reference instant. Both slices are
// always non-nil so they encode as [] rather than null.
type Window[T any] struct {
	Past          []T `json:"past"`
	Upcoming      []T `json:"upcoming"`
	PastCount     int `json:"past_count"`
	UpcomingCount int `json:"upcoming_count"`
}

// PartitionBy splits items into past and upcoming relative to now.
//
// Relative order inside each side is the input order, and items is never
// modified. An item with a zero start time is a malformed record: the whole
// call fails with a validation error instead of guessing a side for it.
func PartitionBy[T any](now time.Time, items []T, startOf func(T) time.Time, b Boundary) (Window[T], error) {
	w := Window[T]{
		Past:     make([]T, 0, len(items)),
		Upcoming: make([]T, 0, len(items)),
	}

	for i, item := range items {
		start := startOf(item)
		if start.IsZero() {
			return Window[T]{}, apperror.ValidationFailed("start_time",
				fmt.Sprintf("show at position %d has no start time", i))
		}
		if b.Upcoming(start, now) {
			w.Upcoming = append(w.Upcoming, item)
		} else {
			w.Past = append(w.Past, item)
		}
	}

	w.PastCount = len(w.Past)
	w.UpcomingCount = len(w.Upcoming)
	return w, nil
}

// PartitionShows is PartitionBy over shows keyed on StartTime.
func PartitionShows(now time.Time, shows []model.Show, b Boundary) (Window[model.Show], error) {
	return PartitionBy(now, shows, showStart, b)
}

func showStart(s model.Show) time.Time { return s.StartTime }
