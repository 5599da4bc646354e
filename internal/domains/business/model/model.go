package model

import (
	"agenda/shared/constant"
	"agenda/shared/model"
	"cmp"
	"fmt"
	"strings"
	"time"
)

const (
	EntityName = "business"

	FieldID           = "id"
	FieldName         = "name"
	FieldBusinessType = "businessType"
	FieldAddress      = "address"
	FieldPhone        = "phone"
	FieldEmail        = "email"
	FieldDescription  = "description"
	FieldOpeningHours = "openingHours"
	FieldServices     = "services"
	FieldEmployees    = "employees"
	FieldConfig       = "config"
	FieldStatus       = "status"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// OpeningHours is keyed by lowercase English weekday name.
type OpeningHours map[string]DayHours

// On returns the hours for the weekday of an ISO date. A missing weekday
// reads as closed.
func (h OpeningHours) On(date string) (DayHours, error) {
	day, err := time.Parse(constant.DayFormat, date)
	if err != nil {
		return DayHours{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	hours, ok := h[Weekday(day)]
	if !ok {
		return DayHours{Closed: true}, nil
	}

	return hours, nil
}

func Weekday(day time.Time) string {
	return strings.ToLower(day.Weekday().String())
}

type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

type Employee struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Role        string   `json:"role,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
	Photo       string   `json:"photo"`
}

type Config struct {
	Color              string `json:"color,omitempty"`
	AllowOnlineBooking bool   `json:"allowOnlineBooking"`
	RequiresDeposit    bool   `json:"requiresDeposit"`
	CancellationPolicy string `json:"cancellationPolicy,omitempty"`
}

type Business struct {
	ID           string       `json:"id,omitempty"`
	Name         string       `json:"name"`
	BusinessType Type         `json:"businessType"`
	Address      string       `json:"address,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Email        string       `json:"email,omitempty"`
	Description  string       `json:"description,omitempty"`
	OpeningHours OpeningHours `json:"openingHours,omitempty"`
	Services     []Service    `json:"services"`
	Employees    []Employee   `json:"employees"`
	Config       Config       `json:"config"`
	Status       Status       `json:"status"`
	model.Metadata
}

func (b Business) Active() bool {
	return b.Status == StatusActive
}

func (b Business) Service(id string) (Service, bool) {
	for _, svc := range b.Services {
		if svc.ID == id {
			return svc, true
		}
	}

	return Service{}, false
}

// Employee returns the employee with id and its position in Employees.
func (b Business) Employee(id string) (Employee, int, bool) {
	for i, emp := range b.Employees {
		if emp.ID == id {
			return emp, i, true
		}
	}

	return Employee{}, -1, false
}

// AppointmentDuration is the service's duration when the business offers it,
// otherwise the default of the business type.
func (b Business) AppointmentDuration(serviceID string) int {
	if svc, ok := b.Service(serviceID); ok && svc.Duration > 0 {
		return svc.Duration
	}

	if cfg, ok := LookupType(b.BusinessType); ok {
		return cfg.DefaultDuration
	}

	return 0
}

// Compare orders businesses by name, case-insensitively.
func Compare(a, b Business) int {
	if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
		return c
	}

	return cmp.Compare(a.ID, b.ID)
}

func ID(b Business) string {
	return b.ID
}
