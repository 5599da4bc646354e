package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agenda/internal/domains/appointment/model"
)

var day = []model.Appointment{
	{ID: "1", BusinessID: "b1", Date: "2024-01-10", Time: "09:30", Duration: 30, Status: model.StatusConfirmed},
	{ID: "2", BusinessID: "b1", Date: "2024-01-10", Time: "09:45", Duration: 30, Status: model.StatusPending},
	{ID: "3", BusinessID: "b1", Date: "2024-01-10", Time: "11:00", Duration: 60, Status: model.StatusCancelled},
	{ID: "4", BusinessID: "b2", Date: "2024-01-10", Time: "09:00", Duration: 180, Status: model.StatusPending},
	{ID: "5", BusinessID: "b1", Date: "2024-01-10", Time: "11:30", Duration: 60, Status: model.StatusPending},
}

func TestFreeWindows(t *testing.T) {
	q := model.SlotQuery{BusinessID: "b1", Date: "2024-01-10", Open: "09:00", Close: "12:00"}

	free, err := model.FreeWindows(q, day)
	require.NoError(t, err)

	assert.Equal(t, []model.Window{
		{Start: "09:00", End: "09:30"},
		{Start: "10:15", End: "11:30"},
	}, free)
}

func TestFreeWindows_EmptyDay(t *testing.T) {
	q := model.SlotQuery{BusinessID: "b3", Date: "2024-01-10", Open: "09:00", Close: "12:00"}

	free, err := model.FreeWindows(q, day)
	require.NoError(t, err)

	assert.Equal(t, []model.Window{{Start: "09:00", End: "12:00"}}, free)
}

func TestFreeSlots(t *testing.T) {
	q := model.SlotQuery{BusinessID: "b1", Date: "2024-01-10", Open: "09:00", Close: "12:00", Duration: 30, Step: 15}

	slots, err := model.FreeSlots(q, day)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:15", "10:30", "10:45", "11:00"}, slots)

	for _, slot := range slots {
		candidate := model.Appointment{BusinessID: "b1", Date: "2024-01-10", Time: slot, Duration: 30}
		assert.False(t, model.HasTimeConflict(candidate, day, ""), slot)
	}
}

func TestFreeSlots_InvalidQuery(t *testing.T) {
	tests := []struct {
		name string
		q    model.SlotQuery
	}{
		{
			name: "zero duration",
			q:    model.SlotQuery{Date: "2024-01-10", Open: "09:00", Close: "12:00", Step: 15},
		},
		{
			name: "zero step",
			q:    model.SlotQuery{Date: "2024-01-10", Open: "09:00", Close: "12:00", Duration: 30},
		},
		{
			name: "closing before opening",
			q:    model.SlotQuery{Date: "2024-01-10", Open: "12:00", Close: "09:00", Duration: 30, Step: 15},
		},
		{
			name: "bad opening",
			q:    model.SlotQuery{Date: "2024-01-10", Open: "9am", Close: "12:00", Duration: 30, Step: 15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.FreeSlots(tt.q, day)
			assert.Error(t, err)
		})
	}
}
