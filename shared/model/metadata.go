package model

import (
	"agenda/shared/timezone"
	"time"
)

const (
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Metadata carries the server-assigned document timestamps.
type Metadata struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Normalize moves both timestamps into the app timezone. A missing createdAt
// (server timestamp not yet resolved) becomes the current time.
func (m *Metadata) Normalize() {
	m.CreatedAt = timezone.Normalize(m.CreatedAt)

	if !m.UpdatedAt.IsZero() {
		m.UpdatedAt = timezone.ToAppTime(m.UpdatedAt)
	}
}

// Touch stamps a local write before the store echoes the resolved server time.
func (m *Metadata) Touch(created bool) {
	now := timezone.Now()

	if created {
		m.CreatedAt = now
	}

	m.UpdatedAt = now
}
