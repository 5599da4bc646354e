package service_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"agenda/config"
	"agenda/infras/docstore"
	docstoreMocks "agenda/infras/docstore/mocks"
	"agenda/infras/kafka"
	kafkaMocks "agenda/infras/kafka/mocks"
	"agenda/infras/otel/mocks"
	"agenda/internal/domains/appointment/model"
	"agenda/internal/domains/appointment/model/dto"
	"agenda/internal/domains/appointment/repository"
	"agenda/internal/domains/appointment/service"
	businessModel "agenda/internal/domains/business/model"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	"agenda/shared/timezone"
)

const collection = "appointments"

type directoryStub map[string]businessModel.Business

func (d directoryStub) Lookup(id string) (businessModel.Business, bool) {
	biz, ok := d[id]

	return biz, ok
}

var directory = directoryStub{
	"b1": {
		ID:           "b1",
		Name:         "Barbería El Clásico",
		BusinessType: businessModel.TypeBarberia,
		OpeningHours: businessModel.OpeningHours{
			"wednesday": {Open: "09:00", Close: "12:00"},
			"sunday":    {Open: "10:00", Close: "15:00", Closed: true},
		},
		Services: []businessModel.Service{{ID: "srv-3", Name: "Corte + Barba", Duration: 45}},
		Status:   businessModel.StatusActive,
	},
	"b2": {ID: "b2", Name: "Spa Serenity", BusinessType: businessModel.TypeSpa},
}

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Store.Collections.Appointments = collection
	cfg.Kafka.Topics.AppointmentEvents = "appointment-events"
	cfg.App.Booking.SlotStepMinutes = 30

	return cfg
}

type fixture struct {
	store  *docstore.Memory
	kafka  *kafkaMocks.MockClient
	ledger service.Ledger
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	cfg := newConfig()
	store := docstore.NewMemory()
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	otel := mocks.NewOtel()

	ledger := service.New(repository.New(store, cfg, otel), directory, mockKafka, cfg, otel)
	require.NoError(t, ledger.Subscribe(context.Background()))

	t.Cleanup(ledger.Unsubscribe)

	return fixture{store: store, kafka: mockKafka, ledger: ledger}
}

func (f fixture) expectEvent(eventType model.EventType) {
	f.kafka.EXPECT().
		SendMessages(gomock.Any(), "appointment-events", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			if len(messages) != 1 || messages[0].Headers[model.HeaderEventType] != string(eventType) {
				return errors.New("unexpected event")
			}

			return nil
		})
}

func request(businessID, date, clock string, duration int) dto.CreateAppointmentRequest {
	return dto.CreateAppointmentRequest{
		BusinessID: businessID,
		Date:       date,
		Time:       clock,
		Duration:   duration,
		Client:     dto.ClientRequest{Name: "Juan Pérez", Phone: "+52 55 1111-2222"},
	}
}

func (f fixture) create(t *testing.T, req dto.CreateAppointmentRequest) dto.AppointmentResponse {
	t.Helper()

	f.expectEvent(model.EventCreated)

	res, err := f.ledger.Create(context.Background(), req)
	require.NoError(t, err)

	return res
}

func TestLedger_Create(t *testing.T) {
	f := newFixture(t)
	existing := f.create(t, request("b1", "2024-01-10", "10:00", 30))

	assert.NotEmpty(t, existing.ID)
	assert.Equal(t, "pending", existing.Status)
	assert.NotEmpty(t, existing.CreatedAt)

	tests := []struct {
		name      string
		req       dto.CreateAppointmentRequest
		setupMock func()
		check     func(t *testing.T, err error)
	}{
		{
			name:      "adjacent slot",
			req:       request("b1", "2024-01-10", "10:30", 15),
			setupMock: func() { f.expectEvent(model.EventCreated) },
			check:     func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name:      "overlapping slot",
			req:       request("b1", "2024-01-10", "10:15", 30),
			setupMock: func() {},
			check:     func(t *testing.T, err error) { assert.True(t, failure.IsConflict(err)) },
		},
		{
			name:      "same slot in another business",
			req:       request("b2", "2024-01-10", "10:00", 30),
			setupMock: func() { f.expectEvent(model.EventCreated) },
			check:     func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name:      "missing business",
			req:       request("", "2024-01-10", "18:00", 30),
			setupMock: func() {},
			check:     func(t *testing.T, err error) { assert.True(t, failure.IsValidation(err)) },
		},
		{
			name:      "invalid time",
			req:       request("b1", "2024-01-10", "6pm", 30),
			setupMock: func() {},
			check:     func(t *testing.T, err error) { assert.True(t, failure.IsValidation(err)) },
		},
		{
			name:      "duration that would wrap around the clock",
			req:       request("b1", "2024-01-10", "09:00", math.MaxInt64/60),
			setupMock: func() {},
			check:     func(t *testing.T, err error) { assert.True(t, failure.IsValidation(err)) },
		},
		{
			name:      "duration longer than a day",
			req:       request("b1", "2024-01-10", "09:00", model.MaxDuration+1),
			setupMock: func() {},
			check:     func(t *testing.T, err error) { assert.True(t, failure.IsValidation(err)) },
		},
		{
			name:      "unknown business without duration",
			req:       request("b9", "2024-01-10", "18:00", 0),
			setupMock: func() {},
			check:     func(t *testing.T, err error) { assert.True(t, failure.IsValidation(err)) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			_, err := f.ledger.Create(context.Background(), tt.req)
			tt.check(t, err)
		})
	}

	assert.Equal(t, 3, f.ledger.Count())
}

func TestLedger_Create_DefaultDuration(t *testing.T) {
	f := newFixture(t)

	req := request("b1", "2024-01-10", "10:00", 0)
	req.Service = &dto.ServiceRequest{ID: "srv-3", Name: "Corte + Barba", Price: 320}
	assert.Equal(t, 45, f.create(t, req).Duration)

	assert.Equal(t, 60, f.create(t, request("b2", "2024-01-10", "10:00", 0)).Duration)
}

func TestLedger_Create_NoRemoteCallOnRejection(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := docstoreMocks.NewMockStore(ctrl)
	otel := mocks.NewOtel()
	cfg := newConfig()

	existing := docstore.Document{
		ID: "a1",
		Fields: docstore.Fields{
			"businessId": "b1", "date": "2024-01-10", "time": "10:00", "duration": 30, "status": "pending",
		},
	}

	store.EXPECT().
		Subscribe(gomock.Any(), collection, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, onSnapshot func([]docstore.Document), _ func(error)) (docstore.Unsubscribe, error) {
			onSnapshot([]docstore.Document{existing})

			return func() {}, nil
		})

	ledger := service.New(repository.New(store, cfg, otel), directory, kafkaMocks.NewMockClient(ctrl), cfg, otel)
	require.NoError(t, ledger.Subscribe(context.Background()))

	_, err := ledger.Create(context.Background(), request("", "2024-01-10", "12:00", 30))
	require.True(t, failure.IsValidation(err))

	_, err = ledger.Create(context.Background(), request("b1", "2024-01-10", "10:15", 30))
	require.True(t, failure.IsConflict(err))

	assert.Equal(t, err, ledger.State().Err)
}

func TestLedger_RemoteErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := docstoreMocks.NewMockStore(ctrl)
	otel := mocks.NewOtel()
	cfg := newConfig()
	boom := errors.New("deadline exceeded")

	store.EXPECT().
		Subscribe(gomock.Any(), collection, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, onSnapshot func([]docstore.Document), _ func(error)) (docstore.Unsubscribe, error) {
			onSnapshot([]docstore.Document{{
				ID:     "a1",
				Fields: docstore.Fields{"businessId": "b1", "date": "2024-01-10", "time": "10:00", "duration": 30, "status": "pending"},
			}})

			return func() {}, nil
		})

	ledger := service.New(repository.New(store, cfg, otel), directory, kafkaMocks.NewMockClient(ctrl), cfg, otel)
	require.NoError(t, ledger.Subscribe(context.Background()))

	store.EXPECT().Insert(gomock.Any(), collection, gomock.Any()).Return("", boom)

	_, err := ledger.Create(context.Background(), request("b1", "2024-01-10", "11:00", 30))
	require.True(t, failure.IsRemote(err))
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, ledger.State().Err, boom)

	store.EXPECT().Patch(gomock.Any(), collection, "a1", gomock.Any()).Return(docstore.ErrNotFound)

	_, err = ledger.Confirm(context.Background(), "a1")
	require.True(t, failure.IsNotFound(err))

	_, err = ledger.Get(context.Background(), "a1")
	assert.True(t, failure.IsNotFound(err), "vanished documents leave the cache")
}

func TestLedger_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.create(t, request("b1", "2024-01-10", "10:00", 30))
	second := f.create(t, request("b1", "2024-01-10", "11:00", 30))

	notes := "prefers short cut"
	onTop := "10:00"
	later := "12:00"
	longer := 90

	t.Run("notes only skips the conflict check", func(t *testing.T) {
		f.expectEvent(model.EventUpdated)

		res, err := f.ledger.Update(ctx, first.ID, dto.UpdateAppointmentRequest{Notes: &notes})
		require.NoError(t, err)
		assert.Equal(t, notes, res.Notes)
	})

	t.Run("move onto another appointment", func(t *testing.T) {
		_, err := f.ledger.Update(ctx, second.ID, dto.UpdateAppointmentRequest{Time: &onTop})
		assert.True(t, failure.IsConflict(err))
	})

	t.Run("grow into the next appointment", func(t *testing.T) {
		_, err := f.ledger.Update(ctx, first.ID, dto.UpdateAppointmentRequest{Duration: &longer})
		assert.True(t, failure.IsConflict(err))
	})

	t.Run("move to a free slot", func(t *testing.T) {
		f.expectEvent(model.EventUpdated)

		res, err := f.ledger.Update(ctx, second.ID, dto.UpdateAppointmentRequest{Time: &later})
		require.NoError(t, err)
		assert.Equal(t, later, res.Time)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.ledger.Update(ctx, "missing", dto.UpdateAppointmentRequest{Notes: &notes})
		assert.True(t, failure.IsNotFound(err))
	})

	got, err := f.ledger.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, notes, got.Notes)
	assert.Equal(t, "10:00", got.Time)
}

func TestLedger_Update_DurationBounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt := f.create(t, request("b1", "2024-01-10", "10:00", 30))

	for _, duration := range []int{0, -15, model.MaxDuration + 1, math.MaxInt64 / 60} {
		_, err := f.ledger.Update(ctx, apt.ID, dto.UpdateAppointmentRequest{Duration: &duration})
		assert.True(t, failure.IsValidation(err), "duration %d", duration)
	}

	got, err := f.ledger.Get(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, got.Duration)
}

func TestLedger_ClockPadding(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.create(t, request("b1", "2024-01-10", "10:00", 30))
	early := f.create(t, request("b1", "2024-01-10", "9:00", 30))
	assert.Equal(t, "09:00", early.Time)

	_, err := f.ledger.Create(ctx, request("b1", "2024-01-10", "9:45", 30))
	assert.True(t, failure.IsConflict(err), "9:45 overlaps the 10:00 booking")

	// written by another client without padding
	_, err = f.store.Insert(ctx, collection, docstore.Fields{
		"businessId": "b1", "date": "2024-01-10", "time": "8:00", "duration": 30, "status": "pending",
	})
	require.NoError(t, err)

	f.expectEvent(model.EventUpdated)

	moved := "7:30"
	res, err := f.ledger.Update(ctx, early.ID, dto.UpdateAppointmentRequest{Time: &moved})
	require.NoError(t, err)
	assert.Equal(t, "07:30", res.Time)

	var times []string
	for _, apt := range f.ledger.OnDate("2024-01-10") {
		times = append(times, apt.Time)
	}

	assert.Equal(t, []string{"07:30", "08:00", "10:00"}, times)
}

func TestLedger_StatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt := f.create(t, request("b1", "2024-01-10", "10:00", 30))

	f.expectEvent(model.EventConfirmed)

	res, err := f.ledger.Confirm(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", res.Status)

	f.expectEvent(model.EventCancelled)

	res, err = f.ledger.Cancel(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", res.Status)

	_, err = f.ledger.Confirm(ctx, apt.ID)
	assert.True(t, failure.IsValidation(err), "cancelled is terminal")

	// a cancelled appointment frees its slot
	f.create(t, request("b1", "2024-01-10", "10:00", 30))
}

func TestLedger_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	apt := f.create(t, request("b1", "2024-01-10", "10:00", 30))

	f.expectEvent(model.EventDeleted)
	require.NoError(t, f.ledger.Delete(ctx, apt.ID))
	assert.Zero(t, f.ledger.Count())

	err := f.ledger.Delete(ctx, apt.ID)
	assert.True(t, failure.IsNotFound(err))
}

func TestLedger_SubscribeOnce(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ledger.Subscribe(context.Background()))
	require.NoError(t, f.ledger.Subscribe(context.Background()))

	assert.Equal(t, 1, f.store.Subscribers(collection))

	f.ledger.Unsubscribe()
	f.ledger.Unsubscribe()

	assert.Zero(t, f.store.Subscribers(collection))
	assert.False(t, f.ledger.Live())
}

func TestLedger_SubscriptionError(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("permission denied")

	f.store.Fail(collection, boom)

	state := f.ledger.State()
	assert.False(t, state.Active)
	require.ErrorIs(t, state.Err, boom)

	require.NoError(t, f.ledger.Subscribe(context.Background()))
	assert.True(t, f.ledger.Live())
}

func TestLedger_MirrorsRemoteWrites(t *testing.T) {
	f := newFixture(t)

	_, err := f.store.Insert(context.Background(), collection, docstore.Fields{
		"businessId": "b1",
		"date":       "2024-01-10",
		"time":       "09:00",
		"duration":   30,
		"status":     "confirmed",
		"createdAt":  docstore.ServerTimestamp,
	})
	require.NoError(t, err)

	items := f.ledger.State().Items
	require.Len(t, items, 1)
	assert.False(t, items[0].CreatedAt.IsZero())

	assert.True(t, f.ledger.HasConflict(model.Appointment{BusinessID: "b1", Date: "2024-01-10", Time: "09:15", Duration: 15}, ""))
}

func TestLedger_Views(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := timezone.Today()

	f.create(t, request("b1", "2024-01-12", "10:00", 30))
	a := f.create(t, request("b1", "2024-01-10", "11:00", 30))
	f.create(t, request("b1", "2024-01-10", "09:00", 30))
	f.create(t, request("b2", "2024-01-11", "09:00", 60))
	f.create(t, request("b2", today, "08:00", 60))

	f.expectEvent(model.EventConfirmed)
	_, err := f.ledger.Confirm(ctx, a.ID)
	require.NoError(t, err)

	onDate := f.ledger.OnDate("2024-01-10")
	require.Len(t, onDate, 2)
	assert.Equal(t, "09:00", onDate[0].Time, "sorted by time")

	inRange := f.ledger.InRange("2024-01-10", "2024-01-12")
	assert.Len(t, inRange, 4, "range is inclusive")

	assert.Len(t, f.ledger.ForBusiness("b2"), 2)
	assert.Len(t, f.ledger.Today(), 1)

	counts := f.ledger.CountByStatus()
	assert.Equal(t, 1, counts[model.StatusConfirmed])
	assert.Equal(t, 4, counts[model.StatusPending])

	stats := f.ledger.StatsForBusiness("b1")
	assert.Equal(t, dto.Stats{Total: 3, Confirmed: 1, Pending: 2}, stats)
	assert.LessOrEqual(t, stats.Confirmed+stats.Pending+stats.Cancelled, stats.Total)

	all := f.ledger.Stats()
	assert.Equal(t, 5, all.Total)
	assert.Equal(t, 1, all.Today)

	list, err := f.ledger.List(ctx, gDto.QueryParams{Page: 1, Limit: 2}, dto.AppointmentFilter{BusinessID: "b1"})
	require.NoError(t, err)
	assert.Equal(t, 3, list.TotalData)
	assert.Equal(t, 2, list.TotalPage)
	assert.Equal(t, "2024-01-10", list.Items[0].Date)

	_, err = f.ledger.List(ctx, gDto.QueryParams{}, dto.AppointmentFilter{Status: "done"})
	assert.True(t, failure.IsValidation(err))
}

func TestLedger_Availability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.create(t, request("b1", "2024-01-10", "10:00", 30))

	res, err := f.ledger.Availability(ctx, "b1", "2024-01-10", "")
	require.NoError(t, err)

	assert.Equal(t, 30, res.Duration)
	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, res.Slots)
	assert.Equal(t, []model.Window{{Start: "09:00", End: "10:00"}, {Start: "10:30", End: "12:00"}}, res.Free)

	closed, err := f.ledger.Availability(ctx, "b1", "2024-01-14", "")
	require.NoError(t, err)
	assert.True(t, closed.Closed)
	assert.Empty(t, closed.Slots)

	_, err = f.ledger.Availability(ctx, "b9", "2024-01-10", "")
	assert.True(t, failure.IsNotFound(err))

	_, err = f.ledger.Availability(ctx, "b1", "10-01-2024", "")
	assert.True(t, failure.IsValidation(err))
}

func TestLedger_Watch(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := f.ledger.Watch(ctx)
	<-updates

	f.create(t, request("b1", "2024-01-10", "10:00", 30))

	state := <-updates
	assert.Len(t, state.Items, 1)
}
