package timezone_test

import (
	"agenda/shared/timezone"
	"testing"
	"time"
)

func TestTimezoneInit(t *testing.T) {
	if timezone.Now().IsZero() {
		t.Error("Now() returned zero time")
	}

	if timezone.GetLocation() == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	if _, err := time.Parse("2006-01-02", today); err != nil {
		t.Errorf("Today() returned %q which is not a calendar day: %v", today, err)
	}

	if today != timezone.Now().Format("2006-01-02") {
		t.Errorf("Today() = %s does not match Now()", today)
	}
}

func TestNormalize(t *testing.T) {
	before := time.Now()
	got := timezone.Normalize(time.Time{})

	if got.Before(before.Add(-time.Second)) {
		t.Errorf("expected zero timestamp to normalize to now, got %v", got)
	}

	stamp := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	normalized := timezone.Normalize(stamp)

	if !normalized.Equal(stamp) {
		t.Errorf("expected %v to keep its instant, got %v", stamp, normalized)
	}

	if normalized.Location() != timezone.GetLocation() {
		t.Errorf("expected location %v, got %v", timezone.GetLocation(), normalized.Location())
	}
}

func TestTimezoneFormat(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	if timezone.Format(testTime, "2006-01-02 15:04:05 MST") == "" {
		t.Error("Format() returned empty string")
	}

	parsed, err := timezone.Parse("2006-01-02", "2024-01-01")
	if err != nil {
		t.Errorf("Parse() failed: %v", err)
	}

	if parsed.IsZero() {
		t.Error("Parse() returned a zero time")
	}
}

func TestClock(t *testing.T) {
	tests := map[string]string{
		"9:00":  "09:00",
		"09:00": "09:00",
		"23:59": "23:59",
		"0:5":   "0:5",
		"25:00": "25:00",
		"":      "",
	}

	for in, want := range tests {
		if got := timezone.Clock(in); got != want {
			t.Errorf("Clock(%q) = %q, want %q", in, got, want)
		}
	}
}
