package model

// HasTimeConflict reports whether candidate overlaps any live appointment of
// the same business on the same date. The appointment with excludeID is
// skipped so an update never collides with itself. Intervals are half-open:
// back-to-back appointments do not conflict. Cancelled appointments occupy
// no time, and entries whose schedule cannot be parsed are ignored.
func HasTimeConflict(candidate Appointment, existing []Appointment, excludeID string) bool {
	if candidate.Cancelled() {
		return false
	}

	newStart, newEnd, err := candidate.Interval()
	if err != nil {
		return false
	}

	for _, apt := range existing {
		if excludeID != "" && apt.ID == excludeID {
			continue
		}

		if apt.BusinessID != candidate.BusinessID || apt.Date != candidate.Date || apt.Cancelled() {
			continue
		}

		start, end, err := apt.Interval()
		if err != nil {
			continue
		}

		if newStart.Before(end) && newEnd.After(start) {
			return true
		}
	}

	return false
}
