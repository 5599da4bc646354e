package docstore

import (
	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/shared/constant"
	"agenda/shared/dto"
	"agenda/shared/repository"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	tableDocuments   = "documents"
	entityDocument   = "document"
	fieldID          = "id"
	fieldCollection  = "collection"
	fieldCreatedAt   = "created_at"
	queryPatchFields = `UPDATE documents SET data = data || CAST(:patch AS jsonb), updated_at = :updated_at ` +
		`WHERE collection = :collection AND id = :id`
)

type documentRow struct {
	Collection string         `db:"collection"`
	ID         string         `db:"id"`
	Data       types.JSONText `db:"data"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (r documentRow) toDocument() (Document, error) {
	fields := Fields{}
	if err := r.Data.Unmarshal(&fields); err != nil {
		return Document{}, fmt.Errorf("failed to decode document %s: %w", r.ID, err)
	}

	return Document{
		ID:         r.ID,
		Fields:     fields,
		CreateTime: r.CreatedAt,
		UpdateTime: r.UpdatedAt,
	}, nil
}

// Postgres keeps documents as JSONB rows and announces every commit on a
// Redis channel per collection. Subscribers re-read the collection on each
// announcement.
type Postgres struct {
	repo   repository.Repository[documentRow]
	redis  *goRedis.Client
	prefix string
	otel   otel.Otel
}

func NewPostgres(db *postgres.Connection, client *goRedis.Client, channelPrefix string, otel otel.Otel) *Postgres {
	return &Postgres{
		repo:   repository.NewRepository[documentRow](entityDocument, tableDocuments, fieldID, db, otel),
		redis:  client,
		prefix: channelPrefix,
		otel:   otel,
	}
}

func (p *Postgres) channel(collection string) string {
	return p.prefix + ":" + collection
}

func documentFilter(collection, id string) dto.FilterGroup {
	filters := []any{
		dto.Filter{Field: fieldCollection, Value: collection, Operator: dto.FilterOperatorEq},
	}

	if id != "" {
		filters = append(filters, dto.Filter{Field: fieldID, Value: id, Operator: dto.FilterOperatorEq})
	}

	return dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd, Filters: filters}
}

func (p *Postgres) Subscribe(ctx context.Context, collection string, onSnapshot func([]Document), onError func(error)) (_ Unsubscribe, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelDocstoreScopeName, constant.OtelDocstoreScopeName+".Subscribe")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelCollectionAttributeKey, collection)

	feedCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	pubsub := p.redis.Subscribe(feedCtx, p.channel(collection))

	if _, err = pubsub.Receive(ctx); err != nil {
		cancel()
		_ = pubsub.Close()

		return nil, fmt.Errorf("failed to subscribe to %s changes: %w", collection, err)
	}

	docs, err := p.load(ctx, collection)
	if err != nil {
		cancel()
		_ = pubsub.Close()

		return nil, err
	}

	onSnapshot(docs)

	go p.listen(feedCtx, collection, pubsub, onSnapshot, onError)

	var once sync.Once

	return func() {
		once.Do(func() {
			cancel()

			if err := pubsub.Close(); err != nil {
				log.Debug().Err(err).Str("collection", collection).Msg("change feed already closed")
			}
		})
	}, nil
}

func (p *Postgres) listen(ctx context.Context, collection string, pubsub *goRedis.PubSub, onSnapshot func([]Document), onError func(error)) {
	changes := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				if ctx.Err() == nil {
					onError(ErrFeedClosed)
				}

				return
			}

			drain(changes)

			docs, err := p.load(ctx, collection)
			if err != nil {
				if ctx.Err() == nil {
					onError(err)
				}

				return
			}

			onSnapshot(docs)
		}
	}
}

// drain discards queued notifications; one reload covers all of them.
func drain(changes <-chan *goRedis.Message) {
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (p *Postgres) load(ctx context.Context, collection string) ([]Document, error) {
	rows, err := p.repo.GetAll(ctx, dto.QueryParams{SortBy: fieldCreatedAt, SortDir: dto.SortDirAsc}, documentFilter(collection, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", collection, err)
	}

	docs := make([]Document, 0, len(rows))

	for _, row := range rows {
		doc, err := row.toDocument()
		if err != nil {
			return nil, err
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

func (p *Postgres) Insert(ctx context.Context, collection string, fields Fields) (id string, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelDocstoreScopeName, constant.OtelDocstoreScopeName+".Insert")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := time.Now().UTC()
	id = uuid.NewString()

	data, err := json.Marshal(Resolve(fields, now))
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}

	scope.SetAttributes(map[string]any{
		constant.OtelCollectionAttributeKey: collection,
		constant.OtelDocumentAttributeKey:   id,
	})

	err = p.repo.Insert(ctx, documentRow{
		Collection: collection,
		ID:         id,
		Data:       types.JSONText(data),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}

	p.announce(ctx, collection, id)

	return id, nil
}

func (p *Postgres) Patch(ctx context.Context, collection, id string, fields Fields) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelDocstoreScopeName, constant.OtelDocstoreScopeName+".Patch")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		constant.OtelCollectionAttributeKey: collection,
		constant.OtelDocumentAttributeKey:   id,
	})

	now := time.Now().UTC()

	data, err := json.Marshal(Resolve(fields, now))
	if err != nil {
		return fmt.Errorf("failed to encode patch: %w", err)
	}

	affected, err := p.repo.Execute(ctx, queryPatchFields, map[string]any{
		"patch":      string(data),
		"updated_at": now,
		"collection": collection,
		"id":         id,
	})
	if err != nil {
		return fmt.Errorf("failed to patch %s/%s: %w", collection, id, err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	p.announce(ctx, collection, id)

	return nil
}

func (p *Postgres) Delete(ctx context.Context, collection, id string) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelDocstoreScopeName, constant.OtelDocstoreScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		constant.OtelCollectionAttributeKey: collection,
		constant.OtelDocumentAttributeKey:   id,
	})

	filter := documentFilter(collection, id)

	exist, err := p.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to look up %s/%s: %w", collection, id, err)
	}

	if !exist {
		return ErrNotFound
	}

	if err = p.repo.Delete(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}

	p.announce(ctx, collection, id)

	return nil
}

// announce publishes the change after commit. A lost announcement delays
// subscribers until the next change but never fails the write.
func (p *Postgres) announce(ctx context.Context, collection, id string) {
	if err := p.redis.Publish(context.WithoutCancel(ctx), p.channel(collection), id).Err(); err != nil {
		log.Error().Err(err).Str("collection", collection).Str("id", id).Msg("failed to announce document change")
	}
}
