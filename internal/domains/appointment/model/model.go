package model

import (
	"agenda/shared/constant"
	"agenda/shared/model"
	"agenda/shared/timezone"
	"cmp"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	EntityName = "appointment"

	FieldID         = "id"
	FieldBusinessID = "businessId"
	FieldDate       = "date"
	FieldTime       = "time"
	FieldDuration   = "duration"
	FieldClient     = "client"
	FieldService    = "service"
	FieldEmployee   = "employee"
	FieldStatus     = "status"
	FieldNotes      = "notes"
)

// MaxDuration caps a single appointment at one day, in minutes.
const MaxDuration = 24 * 60

var ErrInvalidDuration = errors.New("appointment duration is out of range")

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransition reports whether an appointment in s may move to next.
// Staying in the same status is always allowed.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}

	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

type Client struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type ServiceRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type EmployeeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Appointment struct {
	ID         string       `json:"id,omitempty"`
	BusinessID string       `json:"businessId"`
	Date       string       `json:"date"`
	Time       string       `json:"time"`
	Duration   int          `json:"duration"`
	Client     Client       `json:"client"`
	Service    *ServiceRef  `json:"service,omitempty"`
	Employee   *EmployeeRef `json:"employee,omitempty"`
	Status     Status       `json:"status"`
	Notes      string       `json:"notes,omitempty"`
	model.Metadata
}

// Interval returns the half-open [start, end) occupied by the appointment.
// Date and time are combined as a naive timestamp without zone conversion.
func (a Appointment) Interval() (start, end time.Time, err error) {
	start, err = time.Parse(constant.DayTimeFormat, a.Date+" "+a.Time)
	if err != nil {
		return start, end, fmt.Errorf("invalid appointment schedule %q %q: %w", a.Date, a.Time, err)
	}

	if a.Duration <= 0 || a.Duration > MaxDuration {
		return start, end, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, a.Duration)
	}

	return start, start.Add(time.Duration(a.Duration) * time.Minute), nil
}

// Normalize pads the time of day and moves the timestamps into the app
// timezone.
func (a *Appointment) Normalize() {
	a.Time = timezone.Clock(a.Time)
	a.Metadata.Normalize()
}

func (a Appointment) Cancelled() bool {
	return a.Status == StatusCancelled
}

// Compare orders appointments by date, then time of day.
func Compare(a, b Appointment) int {
	if c := strings.Compare(a.Date, b.Date); c != 0 {
		return c
	}

	if c := strings.Compare(a.Time, b.Time); c != 0 {
		return c
	}

	return cmp.Compare(a.ID, b.ID)
}

func ID(a Appointment) string {
	return a.ID
}
