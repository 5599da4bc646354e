package dto

import (
	"agenda/internal/domains/appointment/model"
	"agenda/shared"
	gDto "agenda/shared/dto"
	"agenda/shared/mirror"
	"agenda/shared/timezone"
	"net/http"
)

const (
	QueryParamBusinessID = "business_id"
	QueryParamDate       = "date"
	QueryParamStatus     = "status"
	QueryParamStartDate  = "start_date"
	QueryParamEndDate    = "end_date"
)

type ClientRequest struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Phone string `json:"phone" validate:"required,max=20"`
	Email string `json:"email" validate:"omitempty,email,max=100"`
}

func (c ClientRequest) toModel() model.Client {
	return model.Client{Name: c.Name, Phone: c.Phone, Email: c.Email}
}

type ServiceRequest struct {
	ID    string  `json:"id"    validate:"required"`
	Name  string  `json:"name"  validate:"required,max=100"`
	Price float64 `json:"price" validate:"gte=0"`
}

func (s *ServiceRequest) toModel() *model.ServiceRef {
	if s == nil {
		return nil
	}

	return &model.ServiceRef{ID: s.ID, Name: s.Name, Price: s.Price}
}

type EmployeeRequest struct {
	ID   string `json:"id"   validate:"required"`
	Name string `json:"name" validate:"required,max=100"`
}

func (e *EmployeeRequest) toModel() *model.EmployeeRef {
	if e == nil {
		return nil
	}

	return &model.EmployeeRef{ID: e.ID, Name: e.Name}
}

// CreateAppointmentRequest is checked for businessId by the ledger before the
// struct rules run. A zero duration is filled from the business.
type CreateAppointmentRequest struct {
	BusinessID string           `json:"businessId"`
	Date       string           `json:"date"               validate:"required,datetime=2006-01-02"`
	Time       string           `json:"time"               validate:"required,datetime=15:04"`
	Duration   int              `json:"duration"           validate:"omitempty,gt=0,lte=1440"`
	Client     ClientRequest    `json:"client"             validate:"required"`
	Service    *ServiceRequest  `json:"service,omitempty"  validate:"omitempty"`
	Employee   *EmployeeRequest `json:"employee,omitempty" validate:"omitempty"`
	Status     string           `json:"status"             validate:"omitempty,oneof=pending confirmed cancelled"`
	Notes      string           `json:"notes"              validate:"omitempty,max=500"`
}

func (c *CreateAppointmentRequest) ToModel() model.Appointment {
	status := model.Status(c.Status)
	if status == "" {
		status = model.StatusPending
	}

	apt := model.Appointment{
		BusinessID: c.BusinessID,
		Date:       c.Date,
		Time:       timezone.Clock(c.Time),
		Duration:   c.Duration,
		Client:     c.Client.toModel(),
		Service:    c.Service.toModel(),
		Employee:   c.Employee.toModel(),
		Status:     status,
		Notes:      c.Notes,
	}
	apt.Touch(true)

	return apt
}

// UpdateAppointmentRequest is a partial update; nil fields are left untouched.
type UpdateAppointmentRequest struct {
	Date     *string          `json:"date,omitempty"     validate:"omitempty,datetime=2006-01-02"`
	Time     *string          `json:"time,omitempty"     validate:"omitempty,datetime=15:04"`
	Duration *int             `json:"duration,omitempty" validate:"omitempty,gt=0,lte=1440"`
	Client   *ClientRequest   `json:"client,omitempty"   validate:"omitempty"`
	Service  *ServiceRequest  `json:"service,omitempty"  validate:"omitempty"`
	Employee *EmployeeRequest `json:"employee,omitempty" validate:"omitempty"`
	Status   *string          `json:"status,omitempty"   validate:"omitempty,oneof=pending confirmed cancelled"`
	Notes    *string          `json:"notes,omitempty"    validate:"omitempty,max=500"`
}

// Normalize pads a requested time of day to HH:MM.
func (u *UpdateAppointmentRequest) Normalize() {
	if u.Time != nil {
		clock := timezone.Clock(*u.Time)
		u.Time = &clock
	}
}

// Apply returns cur with the requested changes merged in.
func (u *UpdateAppointmentRequest) Apply(cur model.Appointment) model.Appointment {
	if u.Date != nil {
		cur.Date = *u.Date
	}

	if u.Time != nil {
		cur.Time = *u.Time
	}

	if u.Duration != nil {
		cur.Duration = *u.Duration
	}

	if u.Client != nil {
		cur.Client = u.Client.toModel()
	}

	if u.Service != nil {
		cur.Service = u.Service.toModel()
	}

	if u.Employee != nil {
		cur.Employee = u.Employee.toModel()
	}

	if u.Status != nil {
		cur.Status = model.Status(*u.Status)
	}

	if u.Notes != nil {
		cur.Notes = *u.Notes
	}

	cur.Touch(false)

	return cur
}

// Fields lists the document fields the request changes.
func (u *UpdateAppointmentRequest) Fields() map[string]any {
	fields := map[string]any{}

	if u.Date != nil {
		fields[model.FieldDate] = *u.Date
	}

	if u.Time != nil {
		fields[model.FieldTime] = *u.Time
	}

	if u.Duration != nil {
		fields[model.FieldDuration] = *u.Duration
	}

	if u.Client != nil {
		fields[model.FieldClient] = u.Client.toModel()
	}

	if u.Service != nil {
		fields[model.FieldService] = u.Service.toModel()
	}

	if u.Employee != nil {
		fields[model.FieldEmployee] = u.Employee.toModel()
	}

	if u.Status != nil {
		fields[model.FieldStatus] = *u.Status
	}

	if u.Notes != nil {
		fields[model.FieldNotes] = *u.Notes
	}

	return fields
}

// Reschedules reports whether applying the request moves or resizes cur.
func (u *UpdateAppointmentRequest) Reschedules(cur model.Appointment) bool {
	return (u.Date != nil && *u.Date != cur.Date) ||
		(u.Time != nil && *u.Time != cur.Time) ||
		(u.Duration != nil && *u.Duration != cur.Duration)
}

func StatusUpdate(status model.Status) UpdateAppointmentRequest {
	value := string(status)

	return UpdateAppointmentRequest{Status: &value}
}

type AppointmentResponse struct {
	ID         string             `json:"id"`
	BusinessID string             `json:"businessId"`
	Date       string             `json:"date"`
	Time       string             `json:"time"`
	Duration   int                `json:"duration"`
	Client     model.Client       `json:"client"`
	Service    *model.ServiceRef  `json:"service,omitempty"`
	Employee   *model.EmployeeRef `json:"employee,omitempty"`
	Status     string             `json:"status"`
	Notes      string             `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *AppointmentResponse) FromModel(model model.Appointment) {
	r.ID = model.ID
	r.BusinessID = model.BusinessID
	r.Date = model.Date
	r.Time = model.Time
	r.Duration = model.Duration
	r.Client = model.Client
	r.Service = model.Service
	r.Employee = model.Employee
	r.Status = string(model.Status)
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Appointment) []AppointmentResponse {
	res := make([]AppointmentResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type GetAppointmentsResponse struct {
	Items     []AppointmentResponse `json:"items"`
	TotalPage int                   `json:"totalPage"`
	TotalData int                   `json:"totalData"`
}

// FromModels fills one page of models as selected by params.
func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, params gDto.QueryParams) {
	start, end := params.Window(len(models))

	r.TotalData = len(models)
	r.TotalPage = shared.CalculateTotalPage(len(models), params.Limit)
	r.Items = FromModels(models[start:end])
}

type Stats struct {
	Total     int `json:"total"`
	Confirmed int `json:"confirmed"`
	Pending   int `json:"pending"`
	Cancelled int `json:"cancelled"`
	Today     int `json:"today"`
}

// NewStats aggregates appointments against the given calendar day.
func NewStats(appointments []model.Appointment, today string) Stats {
	stats := Stats{Total: len(appointments)}

	for _, apt := range appointments {
		switch apt.Status {
		case model.StatusConfirmed:
			stats.Confirmed++
		case model.StatusPending:
			stats.Pending++
		case model.StatusCancelled:
			stats.Cancelled++
		}

		if apt.Date == today {
			stats.Today++
		}
	}

	return stats
}

type AppointmentFilter struct {
	BusinessID string `json:"business_id"`
	Date       string `json:"date"       validate:"omitempty,datetime=2006-01-02"`
	Status     string `json:"status"     validate:"omitempty,oneof=pending confirmed cancelled"`
	StartDate  string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `json:"end_date"   validate:"omitempty,datetime=2006-01-02"`
}

func (f *AppointmentFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.BusinessID = query.Get(QueryParamBusinessID)
	f.Date = query.Get(QueryParamDate)
	f.Status = query.Get(QueryParamStatus)
	f.StartDate = query.Get(QueryParamStartDate)
	f.EndDate = query.Get(QueryParamEndDate)
}

// Match reports whether apt passes every set criterion. The date range is
// inclusive on both ends, either end may be left open, and ISO dates compare
// as strings.
func (f *AppointmentFilter) Match(apt model.Appointment) bool {
	switch {
	case f.BusinessID != "" && apt.BusinessID != f.BusinessID:
		return false
	case f.Date != "" && apt.Date != f.Date:
		return false
	case f.Status != "" && string(apt.Status) != f.Status:
		return false
	case f.StartDate != "" && apt.Date < f.StartDate:
		return false
	case f.EndDate != "" && apt.Date > f.EndDate:
		return false
	}

	return true
}

type AvailabilityResponse struct {
	BusinessID string         `json:"businessId"`
	Date       string         `json:"date"`
	Closed     bool           `json:"closed"`
	Open       string         `json:"open,omitempty"`
	Close      string         `json:"close,omitempty"`
	Duration   int            `json:"duration"`
	Free       []model.Window `json:"free"`
	Slots      []string       `json:"slots"`
}

func ClosedDay(businessID, date string, duration int) AvailabilityResponse {
	return AvailabilityResponse{
		BusinessID: businessID,
		Date:       date,
		Closed:     true,
		Duration:   duration,
		Free:       []model.Window{},
		Slots:      []string{},
	}
}

// AppointmentEvent is the payload published for every lifecycle change.
type AppointmentEvent struct {
	Type        string              `json:"type"`
	OccurredAt  string              `json:"occurredAt"`
	Appointment AppointmentResponse `json:"appointment"`
}

// StreamFrame is one push on the appointment stream: the full sorted list
// plus the subscription status.
type StreamFrame struct {
	Items   []AppointmentResponse `json:"items"`
	Loading bool                  `json:"loading"`
	Active  bool                  `json:"active"`
	Error   string                `json:"error,omitempty"`
}

func (f *StreamFrame) FromState(state mirror.State[model.Appointment]) {
	f.Items = FromModels(state.Items)
	f.Loading = state.Loading
	f.Active = state.Active

	if state.Err != nil {
		f.Error = state.Err.Error()
	}
}
