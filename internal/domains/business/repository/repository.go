package repository

import (
	"agenda/config"
	"agenda/infras/docstore"
	"agenda/infras/otel"
	"agenda/internal/domains/business/model"
	"agenda/shared/collection"
	"context"
)

type Business interface {
	Subscribe(ctx context.Context, onSnapshot func([]model.Business), onError func(error)) (docstore.Unsubscribe, error)
	Insert(ctx context.Context, model model.Business) (string, error)
	Patch(ctx context.Context, id string, changes map[string]any) error
	Delete(ctx context.Context, id string) error
}

type repositoryImpl struct {
	collection.Collection[model.Business]
}

func New(store docstore.Store, cfg *config.Config, otel otel.Otel) Business {
	return &repositoryImpl{
		Collection: collection.NewCollection(model.EntityName, cfg.Store.Collections.Businesses, store, otel, decode),
	}
}

func decode(doc docstore.Document) (model.Business, error) {
	var biz model.Business
	if err := doc.Decode(&biz); err != nil {
		return biz, err //nolint:wrapcheck
	}

	biz.ID = doc.ID
	biz.Normalize()

	return biz, nil
}
