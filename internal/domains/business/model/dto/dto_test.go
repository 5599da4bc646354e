package dto_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agenda/internal/domains/business/model"
	"agenda/internal/domains/business/model/dto"
	gDto "agenda/shared/dto"
	"agenda/shared/validator"
)

func ptr[T any](v T) *T {
	return &v
}

func validCreate() dto.CreateBusinessRequest {
	return dto.CreateBusinessRequest{
		Name:         "Barbería El Clásico",
		BusinessType: "barberia",
		Email:        "contacto@barberiaelclasico.com",
		OpeningHours: map[string]dto.DayHoursRequest{
			"monday": {Open: "09:00", Close: "20:00"},
		},
		Services: []dto.ServiceRequest{
			{ID: "srv-1", Name: "Corte de Cabello", Duration: 30, Price: 200},
			{Name: "Barba", Duration: 20, Price: 150},
		},
		Employees: []dto.EmployeeRequest{{Name: "Carlos Rodríguez", Role: "Barbero Senior"}},
		Config:    dto.ConfigRequest{Color: "#2C3E50", AllowOnlineBooking: true},
	}
}

func TestCreateBusinessRequest_ToModel(t *testing.T) {
	req := validCreate()

	biz := req.ToModel()

	assert.Equal(t, model.StatusActive, biz.Status)
	assert.Equal(t, model.TypeBarberia, biz.BusinessType)
	assert.Equal(t, "srv-1", biz.Services[0].ID)
	assert.NotEmpty(t, biz.Services[1].ID)
	assert.NotEmpty(t, biz.Employees[0].ID)
	assert.Equal(t, "20:00", biz.OpeningHours["monday"].Close)
	assert.True(t, biz.Config.AllowOnlineBooking)
	assert.False(t, biz.CreatedAt.IsZero())
}

func TestCreateBusinessRequest_ToModel_PadsOpeningHours(t *testing.T) {
	req := validCreate()
	req.OpeningHours["tuesday"] = dto.DayHoursRequest{Open: "9:00", Close: "18:30"}

	require.NoError(t, validator.ValidateStruct(&req))

	biz := req.ToModel()
	assert.Equal(t, model.DayHours{Open: "09:00", Close: "18:30"}, biz.OpeningHours["tuesday"])

	update := dto.UpdateBusinessRequest{OpeningHours: &map[string]dto.DayHoursRequest{
		"saturday": {Open: "8:00", Close: "14:00"},
	}}

	next := update.Apply(biz)
	assert.Equal(t, "08:00", next.OpeningHours["saturday"].Open)
}

func TestCreateBusinessRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *dto.CreateBusinessRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*dto.CreateBusinessRequest) {}},
		{name: "missing name", mutate: func(r *dto.CreateBusinessRequest) { r.Name = "" }, wantErr: true},
		{name: "missing type", mutate: func(r *dto.CreateBusinessRequest) { r.BusinessType = "" }, wantErr: true},
		{name: "bad color", mutate: func(r *dto.CreateBusinessRequest) { r.Config.Color = "blue" }, wantErr: true},
		{
			name:    "bad weekday",
			mutate:  func(r *dto.CreateBusinessRequest) { r.OpeningHours["lunes"] = dto.DayHoursRequest{Closed: true} },
			wantErr: true,
		},
		{
			name:    "bad opening time",
			mutate:  func(r *dto.CreateBusinessRequest) { r.OpeningHours["monday"] = dto.DayHoursRequest{Open: "9am"} },
			wantErr: true,
		},
		{name: "service without duration", mutate: func(r *dto.CreateBusinessRequest) { r.Services[0].Duration = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
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

func TestUpdateBusinessRequest(t *testing.T) {
	create := validCreate()
	cur := create.ToModel()
	cur.ID = "b1"

	req := dto.UpdateBusinessRequest{
		Name:   ptr("El Clásico"),
		Status: ptr("inactive"),
	}

	require.NoError(t, validator.ValidateStruct(&req))

	next := req.Apply(cur)
	assert.Equal(t, "El Clásico", next.Name)
	assert.Equal(t, model.StatusInactive, next.Status)
	assert.Equal(t, cur.Services, next.Services)

	fields := req.Fields(next)
	assert.Len(t, fields, 2)
	assert.Equal(t, "El Clásico", fields[model.FieldName])
	assert.Equal(t, model.StatusInactive, fields[model.FieldStatus])

	bad := dto.UpdateBusinessRequest{Status: ptr("closed")}
	assert.Error(t, validator.ValidateStruct(&bad))
}

func TestGetBusinessesResponse_FromModels(t *testing.T) {
	models := []model.Business{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	var res dto.GetBusinessesResponse
	res.FromModels(models, gDto.QueryParams{Page: 1, Limit: 2})

	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Items, 2)
}

func TestBusinessFilter(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/businesses?business_type=spa&active=true", nil)

	var filter dto.BusinessFilter
	filter.FromRequest(r)

	assert.True(t, filter.Match(model.Business{BusinessType: model.TypeSpa, Status: model.StatusActive}))
	assert.False(t, filter.Match(model.Business{BusinessType: model.TypeSpa, Status: model.StatusInactive}))
	assert.False(t, filter.Match(model.Business{BusinessType: model.TypeGym, Status: model.StatusActive}))

	empty := dto.BusinessFilter{}
	assert.True(t, empty.Match(model.Business{}))
}
