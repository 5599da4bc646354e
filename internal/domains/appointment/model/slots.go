package model

import (
	"agenda/shared/constant"
	"fmt"
	"slices"
	"time"
)

// Window is a free stretch of a working day, as HH:MM bounds.
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SlotQuery describes the working day searched for free time.
type SlotQuery struct {
	BusinessID string
	Date       string
	Open       string
	Close      string
	Duration   int
	Step       int
}

type span struct {
	start, end time.Time
}

// FreeWindows subtracts the live appointments of the business on q.Date from
// the [Open, Close) working day.
func FreeWindows(q SlotQuery, existing []Appointment) ([]Window, error) {
	open, closing, err := q.bounds()
	if err != nil {
		return nil, err
	}

	free := make([]Window, 0)
	cur := open

	for _, busy := range busySpans(q, existing, open, closing) {
		if busy.start.After(cur) {
			free = append(free, window(cur, busy.start))
		}

		if busy.end.After(cur) {
			cur = busy.end
		}
	}

	if cur.Before(closing) {
		free = append(free, window(cur, closing))
	}

	return free, nil
}

// FreeSlots lists the start times, every q.Step minutes from Open, at which an
// appointment of q.Duration minutes fits without conflict before Close.
func FreeSlots(q SlotQuery, existing []Appointment) ([]string, error) {
	if q.Duration <= 0 || q.Step <= 0 {
		return nil, fmt.Errorf("duration and step must be positive, got %d and %d", q.Duration, q.Step)
	}

	open, closing, err := q.bounds()
	if err != nil {
		return nil, err
	}

	busy := busySpans(q, existing, open, closing)
	length := time.Duration(q.Duration) * time.Minute
	step := time.Duration(q.Step) * time.Minute
	slots := make([]string, 0)

	for start := open; !start.Add(length).After(closing); start = start.Add(step) {
		end := start.Add(length)

		taken := slices.ContainsFunc(busy, func(b span) bool {
			return start.Before(b.end) && end.After(b.start)
		})

		if !taken {
			slots = append(slots, start.Format(constant.ClockFormat))
		}
	}

	return slots, nil
}

func (q SlotQuery) bounds() (open, closing time.Time, err error) {
	open, err = time.Parse(constant.DayTimeFormat, q.Date+" "+q.Open)
	if err != nil {
		return open, closing, fmt.Errorf("invalid opening time %q: %w", q.Open, err)
	}

	closing, err = time.Parse(constant.DayTimeFormat, q.Date+" "+q.Close)
	if err != nil {
		return open, closing, fmt.Errorf("invalid closing time %q: %w", q.Close, err)
	}

	if !closing.After(open) {
		return open, closing, fmt.Errorf("closing time %s is not after opening time %s", q.Close, q.Open)
	}

	return open, closing, nil
}

// busySpans returns the merged busy intervals clipped to [open, closing).
func busySpans(q SlotQuery, existing []Appointment, open, closing time.Time) []span {
	spans := make([]span, 0, len(existing))

	for _, apt := range existing {
		if apt.BusinessID != q.BusinessID || apt.Date != q.Date || apt.Cancelled() {
			continue
		}

		start, end, err := apt.Interval()
		if err != nil || !end.After(open) || !start.Before(closing) {
			continue
		}

		spans = append(spans, span{start: maxTime(start, open), end: minTime(end, closing)})
	}

	slices.SortFunc(spans, func(a, b span) int { return a.start.Compare(b.start) })

	merged := make([]span, 0, len(spans))

	for _, s := range spans {
		if n := len(merged); n > 0 && !s.start.After(merged[n-1].end) {
			merged[n-1].end = maxTime(merged[n-1].end, s.end)

			continue
		}

		merged = append(merged, s)
	}

	return merged
}

func window(start, end time.Time) Window {
	return Window{Start: start.Format(constant.ClockFormat), End: end.Format(constant.ClockFormat)}
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}

	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}

	return b
}
