package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"agenda/config"
	"agenda/infras/docstore"
	"agenda/infras/otel"
	"agenda/infras/s3"
	"agenda/internal/domains/business/model"
	"agenda/internal/domains/business/model/dto"
	"agenda/internal/domains/business/repository"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	"agenda/shared/mirror"
	"agenda/shared/validator"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	collectionName = "businesses"

	msgNotFound         = "business not found"
	msgEmployeeNotFound = "employee not found"
)

type Directory interface {
	Subscribe(ctx context.Context) error
	Unsubscribe()
	Live() bool

	Create(ctx context.Context, req dto.CreateBusinessRequest) (dto.BusinessResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateBusinessRequest) (dto.BusinessResponse, error)
	Delete(ctx context.Context, id string) error
	UploadEmployeePhoto(ctx context.Context, businessID, employeeID string, file multipart.File, header *multipart.FileHeader) (dto.BusinessResponse, error)

	Get(ctx context.Context, id string) (dto.BusinessResponse, error)
	Lookup(id string) (model.Business, bool)
	List(ctx context.Context, params gDto.QueryParams, filter dto.BusinessFilter) (dto.GetBusinessesResponse, error)
	ByType(businessType string) []dto.BusinessResponse
	Active() []dto.BusinessResponse
	Types() []dto.TypeResponse
	TypeConfig(businessType string) (dto.TypeResponse, error)

	SetCurrent(id string) error
	Current() (dto.BusinessResponse, bool)

	State() mirror.State[model.Business]
	Watch(ctx context.Context) <-chan mirror.State[model.Business]
}

type serviceImpl struct {
	repo repository.Business
	s3   s3.S3
	cfg  *config.Config
	otel otel.Otel

	mirror  *mirror.Mirror[model.Business]
	writeMu sync.Mutex

	currentMu sync.RWMutex
	currentID string
}

func New(repo repository.Business, s3 s3.S3, cfg *config.Config, otel otel.Otel) Directory {
	return &serviceImpl{
		repo:   repo,
		s3:     s3,
		cfg:    cfg,
		otel:   otel,
		mirror: mirror.New[model.Business](collectionName, repo, model.ID, model.Compare),
	}
}

func (s *serviceImpl) Subscribe(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Subscribe")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.mirror.Subscribe(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to businesses: %w", failure.Remote(err))
	}

	return nil
}

func (s *serviceImpl) Unsubscribe() {
	s.mirror.Unsubscribe()
}

func (s *serviceImpl) Live() bool {
	return s.mirror.Live()
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBusinessRequest) (res dto.BusinessResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, s.reject(err)
	}

	if err = validateType(req.BusinessType); err != nil {
		return res, s.reject(err)
	}

	biz := req.ToModel()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	id, err := s.repo.Insert(ctx, biz)
	if err != nil {
		log.Error().Err(err).Msg("failed to create business")

		return res, s.reject(fmt.Errorf("failed to create business: %w", failure.Remote(err)))
	}

	biz.ID = id

	if stored, ok := s.mirror.Find(id); ok {
		biz = stored
	} else {
		s.mirror.Apply(biz)
	}

	s.mirror.Succeed()
	res.FromModel(biz)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateBusinessRequest) (res dto.BusinessResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, s.reject(err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur, ok := s.mirror.Find(id)
	if !ok {
		return res, s.reject(failure.NotFound(msgNotFound))
	}

	if req.BusinessType != nil && model.Type(*req.BusinessType) != cur.BusinessType {
		if err = validateType(*req.BusinessType); err != nil {
			return res, s.reject(err)
		}
	}

	next := req.Apply(cur)

	if err = s.patch(ctx, id, req.Fields(next)); err != nil {
		return res, err
	}

	s.mirror.Apply(next)
	s.mirror.Succeed()
	res.FromModel(next)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete business")

		if errors.Is(err, docstore.ErrNotFound) {
			s.mirror.Remove(id)

			return s.reject(failure.NotFound(msgNotFound))
		}

		return s.reject(fmt.Errorf("failed to delete business: %w", failure.Remote(err)))
	}

	s.mirror.Remove(id)
	s.mirror.Succeed()

	return nil
}

// UploadEmployeePhoto stores the picture and points the employee at it. The
// previous picture is removed once the business is updated.
func (s *serviceImpl) UploadEmployeePhoto(ctx context.Context, businessID, employeeID string, file multipart.File, header *multipart.FileHeader) (res dto.BusinessResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadEmployeePhoto")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req := dto.EmployeePhotoRequest{File: header}
	if err = validator.ValidateStruct(&req); err != nil {
		return res, s.reject(err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur, ok := s.mirror.Find(businessID)
	if !ok {
		return res, s.reject(failure.NotFound(msgNotFound))
	}

	employee, idx, ok := cur.Employee(employeeID)
	if !ok {
		return res, s.reject(failure.NotFound(msgEmployeeNotFound))
	}

	bucketName := s.cfg.External.S3.BucketName
	directory := path.Join(model.EntityName, businessID, model.FieldEmployees)
	fileName := employeeID + "-" + uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))

	url, err := s.s3.UploadFile(ctx, bucketName, directory, file, header, fileName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload employee photo")

		return res, s.reject(fmt.Errorf("failed to upload employee photo: %w", failure.Remote(err)))
	}

	next := cur
	next.Employees = slices.Clone(cur.Employees)
	next.Employees[idx].Photo = url
	next.Touch(false)

	if err = s.patch(ctx, businessID, map[string]any{model.FieldEmployees: next.Employees}); err != nil {
		if delErr := s.s3.DeleteFile(ctx, bucketName, path.Join(directory, fileName)); delErr != nil {
			log.Error().Err(delErr).Msg("failed to remove orphaned employee photo")
		}

		return res, err
	}

	s.mirror.Apply(next)
	s.mirror.Succeed()

	if employee.Photo != constant.Empty {
		if oldObject := s.s3.GetObjectNameFromURL(bucketName, employee.Photo); oldObject != constant.Empty {
			if err := s.s3.DeleteFile(context.WithoutCancel(ctx), bucketName, oldObject); err != nil {
				log.Error().Err(err).Msg("failed to delete previous employee photo")
			}
		}
	}

	res.FromModel(next)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BusinessResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	biz, ok := s.mirror.Find(id)
	if !ok {
		return res, failure.NotFound(msgNotFound) // nolint:wrapcheck
	}

	res.FromModel(biz)

	return res, nil
}

func (s *serviceImpl) Lookup(id string) (model.Business, bool) {
	return s.mirror.Find(id)
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams, filter dto.BusinessFilter) (res dto.GetBusinessesResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if filter.BusinessType != constant.Empty {
		if err = validateType(filter.BusinessType); err != nil {
			return res, err
		}
	}

	res.FromModels(s.mirror.Filter(filter.Match), params)

	return res, nil
}

func (s *serviceImpl) ByType(businessType string) []dto.BusinessResponse {
	return dto.FromModels(s.mirror.Filter(func(biz model.Business) bool {
		return string(biz.BusinessType) == businessType
	}))
}

func (s *serviceImpl) Active() []dto.BusinessResponse {
	return dto.FromModels(s.mirror.Filter(model.Business.Active))
}

func (s *serviceImpl) Types() []dto.TypeResponse {
	types := model.Types()
	res := make([]dto.TypeResponse, 0, len(types))

	for _, t := range types {
		cfg, _ := model.LookupType(t)
		res = append(res, dto.TypeResponse{Type: string(t), TypeConfig: cfg})
	}

	return res
}

func (s *serviceImpl) TypeConfig(businessType string) (dto.TypeResponse, error) {
	cfg, ok := model.LookupType(model.Type(businessType))
	if !ok {
		return dto.TypeResponse{}, failure.NotFound("business type not found") // nolint:wrapcheck
	}

	return dto.TypeResponse{Type: businessType, TypeConfig: cfg}, nil
}

// SetCurrent selects the business the caller is working with. An empty id
// clears the selection.
func (s *serviceImpl) SetCurrent(id string) error {
	if id != constant.Empty {
		if _, ok := s.mirror.Find(id); !ok {
			return failure.NotFound(msgNotFound) // nolint:wrapcheck
		}
	}

	s.currentMu.Lock()
	s.currentID = id
	s.currentMu.Unlock()

	return nil
}

// Current returns the selected business as currently cached. A selection
// whose business was deleted reads as none.
func (s *serviceImpl) Current() (res dto.BusinessResponse, ok bool) {
	s.currentMu.RLock()
	id := s.currentID
	s.currentMu.RUnlock()

	if id == constant.Empty {
		return res, false
	}

	biz, ok := s.mirror.Find(id)
	if !ok {
		return res, false
	}

	res.FromModel(biz)

	return res, true
}

func (s *serviceImpl) State() mirror.State[model.Business] {
	return s.mirror.State()
}

func (s *serviceImpl) Watch(ctx context.Context) <-chan mirror.State[model.Business] {
	return s.mirror.Watch(ctx)
}

func (s *serviceImpl) patch(ctx context.Context, id string, fields map[string]any) error {
	if err := s.repo.Patch(ctx, id, fields); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update business")

		if errors.Is(err, docstore.ErrNotFound) {
			s.mirror.Remove(id)

			return s.reject(failure.NotFound(msgNotFound))
		}

		return s.reject(fmt.Errorf("failed to update business: %w", failure.Remote(err)))
	}

	return nil
}

func (s *serviceImpl) reject(err error) error {
	s.mirror.Fail(err)

	return err
}

func validateType(businessType string) error {
	if !model.Type(businessType).Valid() {
		return failure.BadRequestFromString(fmt.Sprintf("unknown business type %q", businessType)) // nolint:wrapcheck
	}

	return nil
}
