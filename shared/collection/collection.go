package collection

import (
	"agenda/infras/docstore"
	"agenda/infras/otel"
	"agenda/shared/constant"
	"agenda/shared/model"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const fieldID = "id"

// Collection is a document-store accessor for values of type T, encoded
// through their JSON form. Snapshot documents that fail to decode are
// skipped.
type Collection[T any] struct {
	store      docstore.Store
	otel       otel.Otel
	collection string
	entitas    string
	decode     func(docstore.Document) (T, error)
}

func NewCollection[T any](entitasName, collection string, store docstore.Store, otl otel.Otel, decode func(docstore.Document) (T, error)) Collection[T] {
	return Collection[T]{
		store:      store,
		otel:       otl,
		collection: collection,
		entitas:    entitasName,
		decode:     decode,
	}
}

func (repo *Collection[T]) scopeName(operation string) string {
	return fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entitas, operation)
}

func (repo *Collection[T]) Subscribe(ctx context.Context, onSnapshot func([]T), onError func(error)) (docstore.Unsubscribe, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("Subscribe"))
	defer scope.End()

	unsub, err := repo.store.Subscribe(ctx, repo.collection, func(docs []docstore.Document) {
		onSnapshot(repo.decodeAll(docs))
	}, onError)
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to subscribe (%s): %w", repo.entitas, err)
	}

	return unsub, nil
}

func (repo *Collection[T]) decodeAll(docs []docstore.Document) []T {
	items := make([]T, 0, len(docs))

	for _, doc := range docs {
		item, err := repo.decode(doc)
		if err != nil {
			log.Warn().Err(err).Str("collection", repo.collection).Str("id", doc.ID).Msg("skipping undecodable document")

			continue
		}

		items = append(items, item)
	}

	return items
}

// Insert stores value as a new document. Its id is assigned by the store and
// both timestamps are resolved at commit.
func (repo *Collection[T]) Insert(ctx context.Context, value T) (string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("Insert"))
	defer scope.End()

	fields, err := docstore.Encode(value)
	if err != nil {
		scope.TraceError(err)

		return "", fmt.Errorf("failed to encode data (%s): %w", repo.entitas, err)
	}

	delete(fields, fieldID)
	fields[model.FieldCreatedAt] = docstore.ServerTimestamp
	fields[model.FieldUpdatedAt] = docstore.ServerTimestamp

	id, err := repo.store.Insert(ctx, repo.collection, fields)
	if err != nil {
		scope.TraceError(err)

		return "", fmt.Errorf("failed to insert data (%s): %w", repo.entitas, err)
	}

	scope.SetAttribute(constant.OtelDocumentAttributeKey, id)

	return id, nil
}

// Patch merges changes into the document and touches updatedAt.
func (repo *Collection[T]) Patch(ctx context.Context, id string, changes map[string]any) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("Patch"))
	defer scope.End()

	scope.SetAttribute(constant.OtelDocumentAttributeKey, id)

	fields, err := docstore.Encode(changes)
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to encode data (%s): %w", repo.entitas, err)
	}

	delete(fields, fieldID)
	fields[model.FieldUpdatedAt] = docstore.ServerTimestamp

	if err = repo.store.Patch(ctx, repo.collection, id, fields); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", repo.entitas, err)
	}

	return nil
}

func (repo *Collection[T]) Delete(ctx context.Context, id string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.scopeName("Delete"))
	defer scope.End()

	scope.SetAttribute(constant.OtelDocumentAttributeKey, id)

	if err := repo.store.Delete(ctx, repo.collection, id); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to delete data (%s): %w", repo.entitas, err)
	}

	return nil
}
