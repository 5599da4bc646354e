package dto

import (
	"agenda/internal/domains/business/model"
	"agenda/shared"
	gDto "agenda/shared/dto"
	"agenda/shared/timezone"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
)

const (
	QueryParamBusinessType = "business_type"
	QueryParamActive       = "active"
	QueryParamDate         = "date"
	QueryParamServiceID    = "service_id"
)

type DayHoursRequest struct {
	Open   string `json:"open"   validate:"omitempty,datetime=15:04"`
	Close  string `json:"close"  validate:"omitempty,datetime=15:04"`
	Closed bool   `json:"closed"`
}

type ServiceRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"        validate:"required,max=100"`
	Duration    int     `json:"duration"    validate:"gt=0"`
	Price       float64 `json:"price"       validate:"gte=0"`
	Description string  `json:"description" validate:"omitempty,max=500"`
}

type EmployeeRequest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"        validate:"required,max=100"`
	Role        string   `json:"role"        validate:"omitempty,max=100"`
	Specialties []string `json:"specialties"`
	Photo       string   `json:"photo"       validate:"omitempty,url"`
}

type ConfigRequest struct {
	Color              string `json:"color"              validate:"omitempty,hexcolor"`
	AllowOnlineBooking bool   `json:"allowOnlineBooking"`
	RequiresDeposit    bool   `json:"requiresDeposit"`
	CancellationPolicy string `json:"cancellationPolicy" validate:"omitempty,max=500"`
}

type CreateBusinessRequest struct {
	Name         string                     `json:"name"         validate:"required,max=100"`
	BusinessType string                     `json:"businessType" validate:"required"`
	Address      string                     `json:"address"      validate:"omitempty,max=200"`
	Phone        string                     `json:"phone"        validate:"omitempty,max=30"`
	Email        string                     `json:"email"        validate:"omitempty,email"`
	Description  string                     `json:"description"  validate:"omitempty,max=1000"`
	OpeningHours map[string]DayHoursRequest `json:"openingHours" validate:"omitempty,dive,keys,oneof=monday tuesday wednesday thursday friday saturday sunday,endkeys"`
	Services     []ServiceRequest           `json:"services"     validate:"omitempty,dive"`
	Employees    []EmployeeRequest          `json:"employees"    validate:"omitempty,dive"`
	Config       ConfigRequest              `json:"config"`
}

// ToModel builds an active business. Services and employees without an id
// get a generated one.
func (c *CreateBusinessRequest) ToModel() model.Business {
	biz := model.Business{
		Name:         c.Name,
		BusinessType: model.Type(c.BusinessType),
		Address:      c.Address,
		Phone:        c.Phone,
		Email:        c.Email,
		Description:  c.Description,
		OpeningHours: hoursToModel(c.OpeningHours),
		Services:     servicesToModel(c.Services),
		Employees:    employeesToModel(c.Employees),
		Config:       c.Config.toModel(),
		Status:       model.StatusActive,
	}
	biz.Touch(true)

	return biz
}

func (c ConfigRequest) toModel() model.Config {
	return model.Config{
		Color:              c.Color,
		AllowOnlineBooking: c.AllowOnlineBooking,
		RequiresDeposit:    c.RequiresDeposit,
		CancellationPolicy: c.CancellationPolicy,
	}
}

func hoursToModel(hours map[string]DayHoursRequest) model.OpeningHours {
	if hours == nil {
		return nil
	}

	out := make(model.OpeningHours, len(hours))
	for day, h := range hours {
		out[day] = model.DayHours{Open: timezone.Clock(h.Open), Close: timezone.Clock(h.Close), Closed: h.Closed}
	}

	return out
}

func servicesToModel(services []ServiceRequest) []model.Service {
	out := make([]model.Service, len(services))

	for i, svc := range services {
		out[i] = model.Service{
			ID:          orNewID(svc.ID),
			Name:        svc.Name,
			Duration:    svc.Duration,
			Price:       svc.Price,
			Description: svc.Description,
		}
	}

	return out
}

func employeesToModel(employees []EmployeeRequest) []model.Employee {
	out := make([]model.Employee, len(employees))

	for i, emp := range employees {
		out[i] = model.Employee{
			ID:          orNewID(emp.ID),
			Name:        emp.Name,
			Role:        emp.Role,
			Specialties: emp.Specialties,
			Photo:       emp.Photo,
		}
	}

	return out
}

func orNewID(id string) string {
	if id == "" {
		return uuid.NewString()
	}

	return id
}

// UpdateBusinessRequest is a partial update; nil fields are left untouched.
// Lists and maps replace the stored value as a whole.
type UpdateBusinessRequest struct {
	Name         *string                     `json:"name,omitempty"         validate:"omitempty,max=100"`
	BusinessType *string                     `json:"businessType,omitempty" validate:"omitempty"`
	Address      *string                     `json:"address,omitempty"      validate:"omitempty,max=200"`
	Phone        *string                     `json:"phone,omitempty"        validate:"omitempty,max=30"`
	Email        *string                     `json:"email,omitempty"        validate:"omitempty,email"`
	Description  *string                     `json:"description,omitempty"  validate:"omitempty,max=1000"`
	OpeningHours *map[string]DayHoursRequest `json:"openingHours,omitempty" validate:"omitempty,dive,keys,oneof=monday tuesday wednesday thursday friday saturday sunday,endkeys"`
	Services     *[]ServiceRequest           `json:"services,omitempty"     validate:"omitempty,dive"`
	Employees    *[]EmployeeRequest          `json:"employees,omitempty"    validate:"omitempty,dive"`
	Config       *ConfigRequest              `json:"config,omitempty"       validate:"omitempty"`
	Status       *string                     `json:"status,omitempty"       validate:"omitempty,oneof=active inactive"`
}

// Apply returns cur with the requested changes merged in.
func (u *UpdateBusinessRequest) Apply(cur model.Business) model.Business {
	if u.Name != nil {
		cur.Name = *u.Name
	}

	if u.BusinessType != nil {
		cur.BusinessType = model.Type(*u.BusinessType)
	}

	if u.Address != nil {
		cur.Address = *u.Address
	}

	if u.Phone != nil {
		cur.Phone = *u.Phone
	}

	if u.Email != nil {
		cur.Email = *u.Email
	}

	if u.Description != nil {
		cur.Description = *u.Description
	}

	if u.OpeningHours != nil {
		cur.OpeningHours = hoursToModel(*u.OpeningHours)
	}

	if u.Services != nil {
		cur.Services = servicesToModel(*u.Services)
	}

	if u.Employees != nil {
		cur.Employees = employeesToModel(*u.Employees)
	}

	if u.Config != nil {
		cur.Config = u.Config.toModel()
	}

	if u.Status != nil {
		cur.Status = model.Status(*u.Status)
	}

	cur.Touch(false)

	return cur
}

// Fields lists the document fields the request touches, valued from next.
func (u *UpdateBusinessRequest) Fields(next model.Business) map[string]any {
	fields := map[string]any{}

	set := func(provided bool, field string, value any) {
		if provided {
			fields[field] = value
		}
	}

	set(u.Name != nil, model.FieldName, next.Name)
	set(u.BusinessType != nil, model.FieldBusinessType, next.BusinessType)
	set(u.Address != nil, model.FieldAddress, next.Address)
	set(u.Phone != nil, model.FieldPhone, next.Phone)
	set(u.Email != nil, model.FieldEmail, next.Email)
	set(u.Description != nil, model.FieldDescription, next.Description)
	set(u.OpeningHours != nil, model.FieldOpeningHours, next.OpeningHours)
	set(u.Services != nil, model.FieldServices, next.Services)
	set(u.Employees != nil, model.FieldEmployees, next.Employees)
	set(u.Config != nil, model.FieldConfig, next.Config)
	set(u.Status != nil, model.FieldStatus, next.Status)

	return fields
}

type BusinessResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	BusinessType string             `json:"businessType"`
	Address      string             `json:"address,omitempty"`
	Phone        string             `json:"phone,omitempty"`
	Email        string             `json:"email,omitempty"`
	Description  string             `json:"description,omitempty"`
	OpeningHours model.OpeningHours `json:"openingHours,omitempty"`
	Services     []model.Service    `json:"services"`
	Employees    []model.Employee   `json:"employees"`
	Config       model.Config       `json:"config"`
	Status       string             `json:"status"`
	gDto.Metadata
}

func (r *BusinessResponse) FromModel(model model.Business) {
	r.ID = model.ID
	r.Name = model.Name
	r.BusinessType = string(model.BusinessType)
	r.Address = model.Address
	r.Phone = model.Phone
	r.Email = model.Email
	r.Description = model.Description
	r.OpeningHours = model.OpeningHours
	r.Services = model.Services
	r.Employees = model.Employees
	r.Config = model.Config
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Business) []BusinessResponse {
	res := make([]BusinessResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type GetBusinessesResponse struct {
	Items     []BusinessResponse `json:"items"`
	TotalPage int                `json:"totalPage"`
	TotalData int                `json:"totalData"`
}

// FromModels fills one page of models as selected by params.
func (r *GetBusinessesResponse) FromModels(models []model.Business, params gDto.QueryParams) {
	start, end := params.Window(len(models))

	r.TotalData = len(models)
	r.TotalPage = shared.CalculateTotalPage(len(models), params.Limit)
	r.Items = FromModels(models[start:end])
}

type TypeResponse struct {
	Type string `json:"type"`
	model.TypeConfig
}

type BusinessFilter struct {
	BusinessType string `json:"business_type"`
	Active       *bool  `json:"active"`
}

func (f *BusinessFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.BusinessType = query.Get(QueryParamBusinessType)
	f.Active = shared.ConvertStringToBool(query.Get(QueryParamActive))
}

func (f *BusinessFilter) Match(biz model.Business) bool {
	if f.BusinessType != "" && string(biz.BusinessType) != f.BusinessType {
		return false
	}

	if f.Active != nil && biz.Active() != *f.Active {
		return false
	}

	return true
}

type SetCurrentRequest struct {
	ID string `json:"id"`
}

type EmployeePhotoRequest struct {
	File *multipart.FileHeader `json:"file" validate:"required,mimetypes=image/jpeg image/png image/webp,maxfilesize=5"`
}
