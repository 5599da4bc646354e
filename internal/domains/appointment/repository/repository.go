package repository

import (
	"agenda/config"
	"agenda/infras/docstore"
	"agenda/infras/otel"
	"agenda/internal/domains/appointment/model"
	"agenda/shared/collection"
	"context"
)

type Appointment interface {
	Subscribe(ctx context.Context, onSnapshot func([]model.Appointment), onError func(error)) (docstore.Unsubscribe, error)
	Insert(ctx context.Context, model model.Appointment) (string, error)
	Patch(ctx context.Context, id string, changes map[string]any) error
	Delete(ctx context.Context, id string) error
}

type repositoryImpl struct {
	collection.Collection[model.Appointment]
}

func New(store docstore.Store, cfg *config.Config, otel otel.Otel) Appointment {
	return &repositoryImpl{
		Collection: collection.NewCollection(model.EntityName, cfg.Store.Collections.Appointments, store, otel, decode),
	}
}

func decode(doc docstore.Document) (model.Appointment, error) {
	var apt model.Appointment
	if err := doc.Decode(&apt); err != nil {
		return apt, err //nolint:wrapcheck
	}

	apt.ID = doc.ID
	apt.Normalize()

	return apt, nil
}
