package business

import (
	"agenda/infras/otel"
	appointmentService "agenda/internal/domains/appointment/service"
	"agenda/internal/domains/business/model/dto"
	"agenda/internal/domains/business/service"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	"agenda/shared/validator"
	"agenda/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Directory
	ledger  appointmentService.Ledger
	otel    otel.Otel
}

func New(service service.Directory, ledger appointmentService.Ledger, otel otel.Otel) Handler {
	return Handler{
		service: service,
		ledger:  ledger,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/businesses", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBusiness)
		routerGroup.Get("/", handler.GetBusinesses)
		routerGroup.Get("/types", handler.GetTypes)
		routerGroup.Get("/types/{type}", handler.GetType)
		routerGroup.Get("/current", handler.GetCurrent)
		routerGroup.Put("/current", handler.SetCurrent)
		routerGroup.Get("/{id}", handler.GetBusinessByID)
		routerGroup.Patch("/{id}", handler.UpdateBusiness)
		routerGroup.Delete("/{id}", handler.DeleteBusiness)
		routerGroup.Get("/{id}/stats", handler.GetStats)
		routerGroup.Get("/{id}/availability", handler.GetAvailability)
		routerGroup.Post("/{id}/employees/{employeeId}/photo", handler.UploadEmployeePhoto)
	})
}

// CreateBusiness registers a business.
// @Summary Create a business
// @Description Register a business of one of the supported types. New businesses are active.
// @Tags Business
// @Accept json
// @Produce json
// @Param request body dto.CreateBusinessRequest true "Business details"
// @Success 201 {object} response.Data[dto.BusinessResponse]
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/businesses [post]
func (handler *Handler) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBusiness")
	defer scope.End()

	var req dto.CreateBusinessRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create business")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Business created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetBusinesses lists businesses sorted by name.
// @Summary Get all businesses
// @Tags Business
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param business_type query string false "Filter by type"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetBusinessesResponse]
// @Failure 400 {object} response.Error
// @Router /v1/businesses [get]
func (handler *Handler) GetBusinesses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBusinesses")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.BusinessFilter{}
	filter.FromRequest(r)

	businesses, err := handler.service.List(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get businesses")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, businesses)
}

// GetTypes returns the business type catalogue.
// @Summary Business types
// @Tags Business
// @Produce json
// @Success 200 {object} response.Data[[]dto.TypeResponse]
// @Router /v1/businesses/types [get]
func (handler *Handler) GetTypes(w http.ResponseWriter, _ *http.Request) {
	response.WithJSON(w, http.StatusOK, handler.service.Types())
}

// @Summary Business type
// @Tags Business
// @Produce json
// @Param type path string true "Business type"
// @Success 200 {object} response.Data[dto.TypeResponse]
// @Failure 404 {object} response.Error
// @Router /v1/businesses/types/{type} [get]
func (handler *Handler) GetType(w http.ResponseWriter, r *http.Request) {
	res, err := handler.service.TypeConfig(chi.URLParam(r, constant.RequestParamType))
	if err != nil {
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetCurrent returns the selected business.
// @Summary Current business
// @Tags Business
// @Produce json
// @Success 200 {object} response.Data[dto.BusinessResponse]
// @Failure 404 {object} response.Error
// @Router /v1/businesses/current [get]
func (handler *Handler) GetCurrent(w http.ResponseWriter, _ *http.Request) {
	res, ok := handler.service.Current()
	if !ok {
		response.WithError(w, failure.NotFound("no business selected"))

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SetCurrent selects the business to work with. An empty id clears it.
// @Summary Select current business
// @Tags Business
// @Accept json
// @Produce json
// @Param request body dto.SetCurrentRequest true "Business to select"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/businesses/current [put]
func (handler *Handler) SetCurrent(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetCurrent")
	defer scope.End()

	var req dto.SetCurrentRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := handler.service.SetCurrent(req.ID); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Current business updated")
}

// @Summary Get a business by ID
// @Tags Business
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} response.Data[dto.BusinessResponse]
// @Failure 404 {object} response.Error
// @Router /v1/businesses/{id} [get]
func (handler *Handler) GetBusinessByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBusinessByID")
	defer scope.End()

	business, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get business by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, business)
}

// UpdateBusiness applies a partial update.
// @Summary Update a business
// @Tags Business
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param request body dto.UpdateBusinessRequest true "Fields to change"
// @Success 200 {object} response.Data[dto.BusinessResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/businesses/{id} [patch]
func (handler *Handler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBusiness")
	defer scope.End()

	var req dto.UpdateBusinessRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Update(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update business")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Business updated successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// @Summary Delete a business
// @Tags Business
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/businesses/{id} [delete]
func (handler *Handler) DeleteBusiness(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBusiness")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete business")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Business deleted successfully")

	response.WithMessage(w, http.StatusOK, "Business deleted successfully")
}

// GetStats aggregates the appointments of one business.
// @Summary Business appointment statistics
// @Tags Business
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} response.Data[map[string]int] "Totals by status and for today"
// @Failure 404 {object} response.Error
// @Router /v1/businesses/{id}/stats [get]
func (handler *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStats")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if _, err := handler.service.Get(ctx, id); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, handler.ledger.StatsForBusiness(id))
}

// GetAvailability lists the free slots of a business on a date.
// @Summary Business availability
// @Description Free windows and bookable start times within the opening hours of the date.
// @Tags Business
// @Produce json
// @Param id path string true "Business ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param service_id query string false "Service whose duration sizes the slots"
// @Success 200 {object} response.Data[object] "Free windows and slots"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/businesses/{id}/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	query := r.URL.Query()
	date := query.Get(dto.QueryParamDate)

	if err := validator.ValidateVar(date, "required,datetime=2006-01-02"); err != nil {
		scope.TraceError(err)
		response.WithError(w, failure.BadRequestFromString("date must be a valid date (YYYY-MM-DD)"))

		return
	}

	res, err := handler.ledger.Availability(ctx, chi.URLParam(r, constant.RequestParamID), date, query.Get(dto.QueryParamServiceID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to compute availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UploadEmployeePhoto replaces the photo of an employee.
// @Summary Upload employee photo
// @Tags Business
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Business ID"
// @Param employeeId path string true "Employee ID"
// @Param file formData file true "JPEG, PNG or WebP, at most 5 MB"
// @Success 200 {object} response.Data[dto.BusinessResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/businesses/{id}/employees/{employeeId}/photo [post]
func (handler *Handler) UploadEmployeePhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadEmployeePhoto")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, failure.BadRequestFromString("file is required"))

		return
	}
	defer file.Close()

	res, err := handler.service.UploadEmployeePhoto(ctx,
		chi.URLParam(r, constant.RequestParamID),
		chi.URLParam(r, constant.RequestParamEmployeeID),
		file, fileHeader)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload employee photo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Employee photo uploaded successfully")

	response.WithJSON(w, http.StatusOK, res)
}
