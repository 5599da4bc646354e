package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"agenda/internal/domains/appointment/model"
)

func TestHasTimeConflict(t *testing.T) {
	existing := []model.Appointment{
		{ID: "1", BusinessID: "b1", Date: "2024-01-10", Time: "10:00", Duration: 30, Status: model.StatusPending},
		{ID: "2", BusinessID: "b1", Date: "2024-01-10", Time: "12:00", Duration: 60, Status: model.StatusCancelled},
		{ID: "3", BusinessID: "b1", Date: "2024-01-10", Time: "not-a-time", Duration: 60, Status: model.StatusPending},
		{ID: "4", BusinessID: "b2", Date: "2024-01-10", Time: "15:00", Duration: 60, Status: model.StatusConfirmed},
	}

	tests := []struct {
		name      string
		candidate model.Appointment
		excludeID string
		want      bool
	}{
		{
			name:      "adjacent after existing",
			candidate: model.Appointment{BusinessID: "b1", Date: "2024-01-10", Time: "10:30", Duration: 15},
			want:      false,
		},
		{
			name:      "adjacent before existing",
			candidate: model.Appointment{BusinessID: "b1", Date: "2024-01-10", Time: "09:30", Duration: 30},
			want:      false,
		},
		{
			name:      "overlap",
			candidate: model.Appointment{BusinessID: "b1", Date: "2024-01-10", Time: "10:15", Duration: 30},
			want:      true,
		},
		{
			name:      "contains existing",
			candidate: model.Appointment{BusinessID: "b1", Date: "2024-01-10", Time: "09:00", Duration: 120},
			want:      true,
		},
		{
			name:      "excluded self",
			candidate: model.Appointment{BusinessID: "b1", Date: "2024-01-10", Time: "10:15", Duration: 30},
			excludeID: "1",
			want:      false,
		},
		{
			name:      "different date",
			candidate: model.Appointment{BusinessID: "b1", Date: "2024-01-11", Time: "10:00", Duration: 30},
			want:      false,
		},
		{
			name:      "cancelled existing occupies nothing",
			candidate: model.Appointment{BusinessID: "b1", Date: "2024-01-10", Time: "12:30", Duration: 30},
			want:      false,
		},
		{
			name:      "other business",
			candidate: model.Appointment{BusinessID: "b1", Date: "2024-01-10", Time: "15:00", Duration: 30},
			want:      false,
		},
		{
			name:      "same slot in other business",
			candidate: model.Appointment{BusinessID: "b2", Date: "2024-01-10", Time: "15:30", Duration: 30},
			want:      true,
		},
		{
			name: "cancelled candidate",
			candidate: model.Appointment{
				BusinessID: "b1", Date: "2024-01-10", Time: "10:00", Duration: 30, Status: model.StatusCancelled,
			},
			want: false,
		},
		{
			name:      "unparseable candidate",
			candidate: model.Appointment{BusinessID: "b1", Date: "2024-01-10", Time: "ten", Duration: 30},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.HasTimeConflict(tt.candidate, existing, tt.excludeID))
		})
	}
}

func TestHasTimeConflict_EmptyLedger(t *testing.T) {
	candidate := model.Appointment{BusinessID: "b1", Date: "2024-01-10", Time: "10:00", Duration: 30}

	assert.False(t, model.HasTimeConflict(candidate, nil, ""))
}
