package business_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "agenda/infras/otel/mocks"
	appointmentMocks "agenda/internal/domains/appointment/mocks"
	appointmentDto "agenda/internal/domains/appointment/model/dto"
	"agenda/internal/domains/business/mocks"
	"agenda/internal/domains/business/model/dto"
	"agenda/internal/handlers/business"
	"agenda/shared/failure"
)

type fixture struct {
	directory *mocks.MockDirectory
	ledger    *appointmentMocks.MockLedger
	router    http.Handler
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	directory := mocks.NewMockDirectory(ctrl)
	ledger := appointmentMocks.NewMockLedger(ctrl)

	handler := business.New(directory, ledger, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return fixture{directory: directory, ledger: ledger, router: router}
}

func (f fixture) serve(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()

	f.router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_CreateBusiness(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := newFixture(t)

		f.directory.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(dto.BusinessResponse{ID: "b1", Name: "Spa Serenity", Status: "active"}, nil)

		rec := f.serve(http.MethodPost, "/businesses", `{"name":"Spa Serenity","businessType":"spa"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"b1"`)
	})

	t.Run("unknown type", func(t *testing.T) {
		f := newFixture(t)

		f.directory.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(dto.BusinessResponse{}, failure.BadRequestFromString(`unknown business type "mecanica"`))

		rec := f.serve(http.MethodPost, "/businesses", `{"name":"Taller","businessType":"mecanica"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid opening hours", func(t *testing.T) {
		f := newFixture(t)

		rec := f.serve(http.MethodPost, "/businesses",
			`{"name":"Spa","businessType":"spa","openingHours":{"lunes":{"open":"09:00","close":"18:00"}}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_GetBusinesses(t *testing.T) {
	f := newFixture(t)
	active := true

	f.directory.EXPECT().
		List(gomock.Any(), gomock.Any(), dto.BusinessFilter{BusinessType: "spa", Active: &active}).
		Return(dto.GetBusinessesResponse{Items: []dto.BusinessResponse{{ID: "b2"}}, TotalPage: 1, TotalData: 1}, nil)

	rec := f.serve(http.MethodGet, "/businesses?business_type=spa&active=true", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalData":1`)
}

func TestHandler_Types(t *testing.T) {
	f := newFixture(t)

	f.directory.EXPECT().Types().Return([]dto.TypeResponse{{Type: "barberia"}})
	f.directory.EXPECT().TypeConfig("mecanica").Return(dto.TypeResponse{}, failure.NotFound("business type not found"))

	rec := f.serve(http.MethodGet, "/businesses/types", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.serve(http.MethodGet, "/businesses/types/mecanica", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Current(t *testing.T) {
	f := newFixture(t)

	gomock.InOrder(
		f.directory.EXPECT().Current().Return(dto.BusinessResponse{}, false),
		f.directory.EXPECT().SetCurrent("b1").Return(nil),
		f.directory.EXPECT().Current().Return(dto.BusinessResponse{ID: "b1"}, true),
	)

	rec := f.serve(http.MethodGet, "/businesses/current", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.serve(http.MethodPut, "/businesses/current", `{"id":"b1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.serve(http.MethodGet, "/businesses/current", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"b1"`)
}

func TestHandler_StatsAndAvailability(t *testing.T) {
	f := newFixture(t)

	f.directory.EXPECT().Get(gomock.Any(), "b1").Return(dto.BusinessResponse{ID: "b1"}, nil)
	f.directory.EXPECT().Get(gomock.Any(), "missing").Return(dto.BusinessResponse{}, failure.NotFound("business not found"))
	f.ledger.EXPECT().StatsForBusiness("b1").Return(appointmentDto.Stats{Total: 2, Pending: 2})
	f.ledger.EXPECT().Availability(gomock.Any(), "b1", "2024-01-10", "srv-1").
		Return(appointmentDto.AvailabilityResponse{BusinessID: "b1", Date: "2024-01-10", Slots: []string{"09:00"}}, nil)

	rec := f.serve(http.MethodGet, "/businesses/b1/stats", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pending":2`)

	rec = f.serve(http.MethodGet, "/businesses/missing/stats", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.serve(http.MethodGet, "/businesses/b1/availability?date=2024-01-10&service_id=srv-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":["09:00"]`)

	rec = f.serve(http.MethodGet, "/businesses/b1/availability?date=10/01/2024", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UploadEmployeePhoto(t *testing.T) {
	f := newFixture(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="file"; filename="carlos.png"`)
	h.Set("Content-Type", "image/png")

	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	f.directory.EXPECT().
		UploadEmployeePhoto(gomock.Any(), "b1", "emp-1", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_, _, _ any, _ multipart.File, header *multipart.FileHeader) (dto.BusinessResponse, error) {
			assert.Equal(t, "carlos.png", header.Filename)
			assert.Equal(t, "image/png", header.Header.Get("Content-Type"))

			return dto.BusinessResponse{ID: "b1"}, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/businesses/b1/employees/emp-1/photo", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.serve(http.MethodPost, "/businesses/b1/employees/emp-1/photo", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
