package dto_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agenda/internal/domains/appointment/model"
	"agenda/internal/domains/appointment/model/dto"
	gDto "agenda/shared/dto"
	"agenda/shared/validator"
)

func ptr[T any](v T) *T {
	return &v
}

func TestCreateAppointmentRequest_ToModel(t *testing.T) {
	req := dto.CreateAppointmentRequest{
		BusinessID: "b1",
		Date:       "2024-01-10",
		Time:       "10:00",
		Duration:   30,
		Client:     dto.ClientRequest{Name: "Juan", Phone: "+52 55 1111-2222"},
		Service:    &dto.ServiceRequest{ID: "srv-1", Name: "Corte", Price: 200},
	}

	apt := req.ToModel()

	assert.Equal(t, model.StatusPending, apt.Status)
	assert.Equal(t, "b1", apt.BusinessID)
	assert.Equal(t, "Juan", apt.Client.Name)
	require.NotNil(t, apt.Service)
	assert.Equal(t, "srv-1", apt.Service.ID)
	assert.Nil(t, apt.Employee)
	assert.False(t, apt.CreatedAt.IsZero())
	assert.Empty(t, apt.ID)

	req.Status = "confirmed"
	assert.Equal(t, model.StatusConfirmed, req.ToModel().Status)
}

func TestCreateAppointmentRequest_Validation(t *testing.T) {
	valid := func() dto.CreateAppointmentRequest {
		return dto.CreateAppointmentRequest{
			BusinessID: "b1",
			Date:       "2024-01-10",
			Time:       "10:00",
			Duration:   30,
			Client:     dto.ClientRequest{Name: "Juan", Phone: "555"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *dto.CreateAppointmentRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*dto.CreateAppointmentRequest) {}},
		{name: "missing duration is filled later", mutate: func(r *dto.CreateAppointmentRequest) { r.Duration = 0 }},
		{name: "negative duration", mutate: func(r *dto.CreateAppointmentRequest) { r.Duration = -15 }, wantErr: true},
		{name: "bad date", mutate: func(r *dto.CreateAppointmentRequest) { r.Date = "10/01/2024" }, wantErr: true},
		{name: "bad time", mutate: func(r *dto.CreateAppointmentRequest) { r.Time = "10am" }, wantErr: true},
		{name: "missing client", mutate: func(r *dto.CreateAppointmentRequest) { r.Client = dto.ClientRequest{} }, wantErr: true},
		{name: "bad email", mutate: func(r *dto.CreateAppointmentRequest) { r.Client.Email = "nope" }, wantErr: true},
		{name: "bad status", mutate: func(r *dto.CreateAppointmentRequest) { r.Status = "done" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateAppointmentRequest(t *testing.T) {
	cur := model.Appointment{
		ID:         "a1",
		BusinessID: "b1",
		Date:       "2024-01-10",
		Time:       "10:00",
		Duration:   30,
		Status:     model.StatusPending,
		Notes:      "first visit",
	}

	t.Run("notes only", func(t *testing.T) {
		req := dto.UpdateAppointmentRequest{Notes: ptr("window seat")}

		assert.False(t, req.Reschedules(cur))
		assert.Equal(t, map[string]any{model.FieldNotes: "window seat"}, req.Fields())

		merged := req.Apply(cur)
		assert.Equal(t, "window seat", merged.Notes)
		assert.Equal(t, cur.Time, merged.Time)
		assert.False(t, merged.UpdatedAt.IsZero())
	})

	t.Run("same date and time", func(t *testing.T) {
		req := dto.UpdateAppointmentRequest{Date: ptr(cur.Date), Time: ptr(cur.Time)}

		assert.False(t, req.Reschedules(cur))
	})

	t.Run("new time", func(t *testing.T) {
		req := dto.UpdateAppointmentRequest{Time: ptr("11:00")}

		assert.True(t, req.Reschedules(cur))
		assert.Equal(t, "11:00", req.Apply(cur).Time)
	})

	t.Run("longer duration", func(t *testing.T) {
		req := dto.UpdateAppointmentRequest{Duration: ptr(60)}

		assert.True(t, req.Reschedules(cur))
		assert.Equal(t, 60, req.Fields()[model.FieldDuration])
	})

	t.Run("status", func(t *testing.T) {
		req := dto.StatusUpdate(model.StatusConfirmed)

		assert.Equal(t, model.StatusConfirmed, req.Apply(cur).Status)
		assert.Equal(t, "confirmed", req.Fields()[model.FieldStatus])
	})

	t.Run("zero duration rejected", func(t *testing.T) {
		req := dto.UpdateAppointmentRequest{Duration: ptr(0)}

		assert.Error(t, validator.ValidateStruct(&req))
	})
}

func TestAppointmentResponse_FromModel(t *testing.T) {
	apt := model.Appointment{
		ID:         "a1",
		BusinessID: "b1",
		Date:       "2024-01-10",
		Time:       "10:00",
		Duration:   30,
		Employee:   &model.EmployeeRef{ID: "emp-1", Name: "Carlos"},
		Status:     model.StatusConfirmed,
	}
	apt.Touch(true)

	var res dto.AppointmentResponse
	res.FromModel(apt)

	assert.Equal(t, "a1", res.ID)
	assert.Equal(t, "confirmed", res.Status)
	assert.Equal(t, "Carlos", res.Employee.Name)
	assert.NotEmpty(t, res.CreatedAt)
}

func TestGetAppointmentsResponse_FromModels(t *testing.T) {
	models := make([]model.Appointment, 25)
	for i := range models {
		models[i].ID = string(rune('a' + i))
	}

	var res dto.GetAppointmentsResponse
	res.FromModels(models, gDto.QueryParams{Page: 3, Limit: 10})

	assert.Equal(t, 25, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
	require.Len(t, res.Items, 5)
	assert.Equal(t, models[20].ID, res.Items[0].ID)
}

func TestNewStats(t *testing.T) {
	appointments := []model.Appointment{
		{Status: model.StatusConfirmed, Date: "2024-01-10"},
		{Status: model.StatusPending, Date: "2024-01-10"},
		{Status: model.StatusPending, Date: "2024-01-11"},
		{Status: model.StatusCancelled, Date: "2024-01-12"},
	}

	stats := dto.NewStats(appointments, "2024-01-10")

	assert.Equal(t, dto.Stats{Total: 4, Confirmed: 1, Pending: 2, Cancelled: 1, Today: 2}, stats)
	assert.LessOrEqual(t, stats.Confirmed+stats.Pending+stats.Cancelled, stats.Total)
}

func TestAppointmentFilter(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/appointments?business_id=b1&start_date=2024-01-10&end_date=2024-01-12&status=pending", nil)

	var filter dto.AppointmentFilter
	filter.FromRequest(r)

	require.NoError(t, validator.ValidateStruct(&filter))

	tests := []struct {
		name string
		apt  model.Appointment
		want bool
	}{
		{"range start inclusive", model.Appointment{BusinessID: "b1", Date: "2024-01-10", Status: model.StatusPending}, true},
		{"range end inclusive", model.Appointment{BusinessID: "b1", Date: "2024-01-12", Status: model.StatusPending}, true},
		{"after range", model.Appointment{BusinessID: "b1", Date: "2024-01-13", Status: model.StatusPending}, false},
		{"before range", model.Appointment{BusinessID: "b1", Date: "2024-01-09", Status: model.StatusPending}, false},
		{"other business", model.Appointment{BusinessID: "b2", Date: "2024-01-11", Status: model.StatusPending}, false},
		{"other status", model.Appointment{BusinessID: "b1", Date: "2024-01-11", Status: model.StatusConfirmed}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filter.Match(tt.apt))
		})
	}
}

func TestAppointmentFilter_HalfRange(t *testing.T) {
	filter := dto.AppointmentFilter{StartDate: "2024-01-10"}

	require.NoError(t, validator.ValidateStruct(&filter))
	assert.True(t, filter.Match(model.Appointment{Date: "2030-01-01"}))
	assert.False(t, filter.Match(model.Appointment{Date: "2024-01-09"}))

	filter.StartDate = "01/10/2024"
	assert.Error(t, validator.ValidateStruct(&filter))
}
