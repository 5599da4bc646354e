package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agenda/internal/domains/business/model"
)

func TestTypes(t *testing.T) {
	types := model.Types()
	require.Len(t, types, 8)
	assert.Equal(t, model.TypeBarberia, types[0])

	durations := map[model.Type]int{
		model.TypeBarberia:    30,
		model.TypePeluqueria:  45,
		model.TypeSpa:         60,
		model.TypeTatuajes:    120,
		model.TypeClinica:     30,
		model.TypeDental:      45,
		model.TypeGym:         60,
		model.TypeVeterinaria: 30,
	}

	for _, typ := range types {
		cfg, ok := model.LookupType(typ)
		require.True(t, ok, typ)

		assert.Equal(t, durations[typ], cfg.DefaultDuration, typ)
		assert.NotEmpty(t, cfg.Name)
		assert.NotEmpty(t, cfg.Icon)
		assert.NotEmpty(t, cfg.Services)
	}
}

func TestLookupType_Immutable(t *testing.T) {
	cfg, ok := model.LookupType(model.TypeSpa)
	require.True(t, ok)

	cfg.Services[0] = "changed"
	model.Types()[0] = model.TypeGym

	again, _ := model.LookupType(model.TypeSpa)
	assert.Equal(t, "Masaje", again.Services[0])
	assert.Equal(t, model.TypeBarberia, model.Types()[0])
}

func TestType_Valid(t *testing.T) {
	assert.True(t, model.TypeDental.Valid())
	assert.False(t, model.Type("restaurant").Valid())
}

func TestOpeningHours_On(t *testing.T) {
	hours := model.OpeningHours{
		"wednesday": {Open: "09:00", Close: "20:00"},
		"sunday":    {Open: "11:00", Close: "18:00", Closed: true},
	}

	wed, err := hours.On("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, model.DayHours{Open: "09:00", Close: "20:00"}, wed)

	sun, err := hours.On("2024-01-14")
	require.NoError(t, err)
	assert.True(t, sun.Closed)

	mon, err := hours.On("2024-01-08")
	require.NoError(t, err)
	assert.True(t, mon.Closed)

	_, err = hours.On("not-a-date")
	assert.Error(t, err)
}

func TestBusiness_AppointmentDuration(t *testing.T) {
	biz := model.Business{
		BusinessType: model.TypeSpa,
		Services: []model.Service{
			{ID: "srv-1", Name: "Masaje", Duration: 90},
			{ID: "srv-2", Name: "Consulta"},
		},
	}

	assert.Equal(t, 90, biz.AppointmentDuration("srv-1"))
	assert.Equal(t, 60, biz.AppointmentDuration("srv-2"))
	assert.Equal(t, 60, biz.AppointmentDuration(""))

	biz.BusinessType = "unknown"
	assert.Zero(t, biz.AppointmentDuration(""))
}

func TestBusiness_Employee(t *testing.T) {
	biz := model.Business{Employees: []model.Employee{{ID: "emp-1"}, {ID: "emp-2"}}}

	emp, idx, ok := biz.Employee("emp-2")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "emp-2", emp.ID)

	_, idx, ok = biz.Employee("emp-9")
	assert.False(t, ok)
	assert.Equal(t, -1, idx)
}

func TestCompare(t *testing.T) {
	a := model.Business{ID: "1", Name: "barbería"}
	b := model.Business{ID: "2", Name: "Spa Serenity"}

	assert.Negative(t, model.Compare(a, b))
	assert.Positive(t, model.Compare(b, a))
}
