package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"agenda/config"
	"agenda/infras/docstore"
	"agenda/infras/kafka"
	"agenda/infras/otel"
	"agenda/internal/domains/appointment/model"
	"agenda/internal/domains/appointment/model/dto"
	"agenda/internal/domains/appointment/repository"
	businessModel "agenda/internal/domains/business/model"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	"agenda/shared/mirror"
	"agenda/shared/timezone"
	"agenda/shared/validator"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	collectionName  = "appointments"
	defaultSlotStep = 15

	msgNotFound = "appointment not found"
	msgConflict = "an appointment already exists at that time"
)

// Directory is the part of the business directory the ledger reads.
type Directory interface {
	Lookup(id string) (businessModel.Business, bool)
}

// Ledger owns the mirrored appointment collection and mediates every write
// through the conflict check.
type Ledger interface {
	Subscribe(ctx context.Context) error
	Unsubscribe()
	Live() bool

	Create(ctx context.Context, req dto.CreateAppointmentRequest) (dto.AppointmentResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateAppointmentRequest) (dto.AppointmentResponse, error)
	Delete(ctx context.Context, id string) error
	Confirm(ctx context.Context, id string) (dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id string) (dto.AppointmentResponse, error)

	Get(ctx context.Context, id string) (dto.AppointmentResponse, error)
	List(ctx context.Context, params gDto.QueryParams, filter dto.AppointmentFilter) (dto.GetAppointmentsResponse, error)
	Count() int
	CountByStatus() map[model.Status]int
	OnDate(date string) []dto.AppointmentResponse
	Today() []dto.AppointmentResponse
	InRange(startDate, endDate string) []dto.AppointmentResponse
	ForBusiness(businessID string) []dto.AppointmentResponse
	Stats() dto.Stats
	StatsForBusiness(businessID string) dto.Stats
	HasConflict(candidate model.Appointment, excludeID string) bool
	Availability(ctx context.Context, businessID, date, serviceID string) (dto.AvailabilityResponse, error)

	State() mirror.State[model.Appointment]
	Watch(ctx context.Context) <-chan mirror.State[model.Appointment]
}

type serviceImpl struct {
	repo      repository.Appointment
	directory Directory
	kafka     kafka.Client
	cfg       *config.Config
	otel      otel.Otel

	mirror  *mirror.Mirror[model.Appointment]
	writeMu sync.Mutex
}

func New(repo repository.Appointment, directory Directory, kafka kafka.Client, cfg *config.Config, otel otel.Otel) Ledger {
	return &serviceImpl{
		repo:      repo,
		directory: directory,
		kafka:     kafka,
		cfg:       cfg,
		otel:      otel,
		mirror:    mirror.New[model.Appointment](collectionName, repo, model.ID, model.Compare),
	}
}

func (s *serviceImpl) Subscribe(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Subscribe")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.mirror.Subscribe(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to appointments: %w", failure.Remote(err))
	}

	return nil
}

func (s *serviceImpl) Unsubscribe() {
	s.mirror.Unsubscribe()
}

func (s *serviceImpl) Live() bool {
	return s.mirror.Live()
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAppointmentRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.BusinessID == constant.Empty {
		return res, s.reject(failure.BadRequestFromString("businessId is required"))
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, s.reject(err)
	}

	apt := req.ToModel()

	if apt.Duration == 0 {
		if apt.Duration = s.defaultDuration(apt); apt.Duration == 0 {
			return res, s.reject(failure.BadRequestFromString("duration is required"))
		}
	}

	if _, _, err = apt.Interval(); err != nil {
		return res, s.reject(failure.BadRequest(err))
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if model.HasTimeConflict(apt, s.mirror.Items(), constant.Empty) {
		return res, s.reject(failure.Conflict(msgConflict))
	}

	id, err := s.repo.Insert(ctx, apt)
	if err != nil {
		log.Error().Err(err).Msg("failed to create appointment")

		return res, s.reject(fmt.Errorf("failed to create appointment: %w", failure.Remote(err)))
	}

	apt.ID = id

	if stored, ok := s.mirror.Find(id); ok {
		apt = stored
	} else {
		s.mirror.Apply(apt)
	}

	s.mirror.Succeed()
	s.publish(ctx, model.EventCreated, apt)

	res.FromModel(apt)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateAppointmentRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, s.reject(err)
	}

	req.Normalize()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur, ok := s.mirror.Find(id)
	if !ok {
		return res, s.reject(failure.NotFound(msgNotFound))
	}

	next := req.Apply(cur)

	if !cur.Status.CanTransition(next.Status) {
		return res, s.reject(failure.BadRequestFromString(
			fmt.Sprintf("cannot change appointment status from %s to %s", cur.Status, next.Status)))
	}

	if req.Reschedules(cur) {
		if _, _, err = next.Interval(); err != nil {
			return res, s.reject(failure.BadRequest(err))
		}

		if model.HasTimeConflict(next, s.mirror.Items(), id) {
			return res, s.reject(failure.Conflict(msgConflict))
		}
	}

	if err = s.repo.Patch(ctx, id, req.Fields()); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update appointment")

		if errors.Is(err, docstore.ErrNotFound) {
			s.mirror.Remove(id)

			return res, s.reject(failure.NotFound(msgNotFound))
		}

		return res, s.reject(fmt.Errorf("failed to update appointment: %w", failure.Remote(err)))
	}

	s.mirror.Apply(next)
	s.mirror.Succeed()
	s.publish(ctx, model.EventFor(cur.Status, next.Status), next)

	res.FromModel(next)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur, known := s.mirror.Find(id)

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete appointment")

		if errors.Is(err, docstore.ErrNotFound) {
			s.mirror.Remove(id)

			return s.reject(failure.NotFound(msgNotFound))
		}

		return s.reject(fmt.Errorf("failed to delete appointment: %w", failure.Remote(err)))
	}

	s.mirror.Remove(id)
	s.mirror.Succeed()

	if !known {
		cur = model.Appointment{ID: id}
	}

	s.publish(ctx, model.EventDeleted, cur)

	return nil
}

func (s *serviceImpl) Confirm(ctx context.Context, id string) (dto.AppointmentResponse, error) {
	return s.Update(ctx, id, dto.StatusUpdate(model.StatusConfirmed))
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (dto.AppointmentResponse, error) {
	return s.Update(ctx, id, dto.StatusUpdate(model.StatusCancelled))
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	apt, ok := s.mirror.Find(id)
	if !ok {
		return res, failure.NotFound(msgNotFound) // nolint:wrapcheck
	}

	res.FromModel(apt)

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams, filter dto.AppointmentFilter) (res dto.GetAppointmentsResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&filter); err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModels(s.mirror.Filter(filter.Match), params)

	return res, nil
}

func (s *serviceImpl) Count() int {
	return len(s.mirror.Items())
}

func (s *serviceImpl) CountByStatus() map[model.Status]int {
	counts := map[model.Status]int{
		model.StatusPending:   0,
		model.StatusConfirmed: 0,
		model.StatusCancelled: 0,
	}

	for _, apt := range s.mirror.Items() {
		counts[apt.Status]++
	}

	return counts
}

func (s *serviceImpl) OnDate(date string) []dto.AppointmentResponse {
	return dto.FromModels(s.mirror.Filter(func(apt model.Appointment) bool { return apt.Date == date }))
}

func (s *serviceImpl) Today() []dto.AppointmentResponse {
	return s.OnDate(timezone.Today())
}

func (s *serviceImpl) InRange(startDate, endDate string) []dto.AppointmentResponse {
	filter := dto.AppointmentFilter{StartDate: startDate, EndDate: endDate}

	return dto.FromModels(s.mirror.Filter(filter.Match))
}

func (s *serviceImpl) ForBusiness(businessID string) []dto.AppointmentResponse {
	return dto.FromModels(s.forBusiness(businessID))
}

func (s *serviceImpl) forBusiness(businessID string) []model.Appointment {
	return s.mirror.Filter(func(apt model.Appointment) bool { return apt.BusinessID == businessID })
}

func (s *serviceImpl) Stats() dto.Stats {
	return dto.NewStats(s.mirror.Items(), timezone.Today())
}

func (s *serviceImpl) StatsForBusiness(businessID string) dto.Stats {
	return dto.NewStats(s.forBusiness(businessID), timezone.Today())
}

func (s *serviceImpl) HasConflict(candidate model.Appointment, excludeID string) bool {
	return model.HasTimeConflict(candidate, s.mirror.Items(), excludeID)
}

func (s *serviceImpl) Availability(ctx context.Context, businessID, date, serviceID string) (res dto.AvailabilityResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateVar(date, "required,datetime=2006-01-02"); err != nil {
		return res, err //nolint:wrapcheck
	}

	biz, ok := s.directory.Lookup(businessID)
	if !ok {
		return res, failure.NotFound("business not found") // nolint:wrapcheck
	}

	duration := biz.AppointmentDuration(serviceID)

	hours, err := biz.OpeningHours.On(date)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if hours.Closed {
		return dto.ClosedDay(businessID, date, duration), nil
	}

	step := s.cfg.App.Booking.SlotStepMinutes
	if step <= 0 {
		step = defaultSlotStep
	}

	query := model.SlotQuery{
		BusinessID: businessID,
		Date:       date,
		Open:       hours.Open,
		Close:      hours.Close,
		Duration:   duration,
		Step:       step,
	}

	items := s.mirror.Items()

	free, err := model.FreeWindows(query, items)
	if err != nil {
		log.Error().Err(err).Str("business", businessID).Msg("invalid opening hours")

		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	slots, err := model.FreeSlots(query, items)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	return dto.AvailabilityResponse{
		BusinessID: businessID,
		Date:       date,
		Open:       hours.Open,
		Close:      hours.Close,
		Duration:   duration,
		Free:       free,
		Slots:      slots,
	}, nil
}

func (s *serviceImpl) State() mirror.State[model.Appointment] {
	return s.mirror.State()
}

func (s *serviceImpl) Watch(ctx context.Context) <-chan mirror.State[model.Appointment] {
	return s.mirror.Watch(ctx)
}

// reject records err as the ledger's last error and returns it.
func (s *serviceImpl) reject(err error) error {
	s.mirror.Fail(err)

	return err
}

func (s *serviceImpl) defaultDuration(apt model.Appointment) int {
	biz, ok := s.directory.Lookup(apt.BusinessID)
	if !ok {
		return 0
	}

	serviceID := constant.Empty
	if apt.Service != nil {
		serviceID = apt.Service.ID
	}

	return biz.AppointmentDuration(serviceID)
}

func (s *serviceImpl) publish(ctx context.Context, eventType model.EventType, apt model.Appointment) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()

	scope.SetAttribute("event.type", string(eventType))

	event := dto.AppointmentEvent{
		Type:       string(eventType),
		OccurredAt: timezone.Now().Format(constant.DateFormat),
	}
	event.Appointment.FromModel(apt)

	msg := kafka.Message{
		Key:     apt.BusinessID,
		Value:   event,
		Headers: map[string]string{model.HeaderEventType: string(eventType)},
	}

	if err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.AppointmentEvents, msg); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("event", string(eventType)).Str("id", apt.ID).Msg("failed to publish appointment event")
	}
}
