// Package docstore is the realtime document collaborator the ledgers mirror:
// named collections of schemaless documents with change subscriptions.
package docstore

//go:generate go run go.uber.org/mock/mockgen -source=./docstore.go -destination=./mocks/docstore_mock.go -package=mocks

import (
	"agenda/config"
	"agenda/infras/otel"
	"agenda/infras/postgres"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotFound   = errors.New("document not found")
	ErrFeedClosed = errors.New("change feed closed")
)

// Fields is the top-level content of a document.
type Fields map[string]any

type serverValue string

// ServerTimestamp is a write-only field value replaced by the store's commit time.
const ServerTimestamp serverValue = "server-timestamp"

// Unsubscribe releases a subscription. Calling it more than once is safe.
type Unsubscribe func()

type Document struct {
	ID         string
	Fields     Fields
	CreateTime time.Time
	UpdateTime time.Time
}

// Decode unmarshals the document fields into v.
func (d Document) Decode(v any) error {
	raw, err := json.Marshal(d.Fields)
	if err != nil {
		return fmt.Errorf("failed to marshal document %s: %w", d.ID, err)
	}

	if err = json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", d.ID, err)
	}

	return nil
}

// Encode converts v into document fields through its JSON form.
func Encode(v any) (Fields, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	fields := Fields{}
	if err = json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	return fields, nil
}

// Resolve returns a copy of fields with every ServerTimestamp replaced by now.
func Resolve(fields Fields, now time.Time) Fields {
	resolved := maps.Clone(fields)
	if resolved == nil {
		resolved = Fields{}
	}

	for key, value := range resolved {
		if v, ok := value.(serverValue); ok && v == ServerTimestamp {
			resolved[key] = now
		}
	}

	return resolved
}

// Store is implemented by every backend. onSnapshot receives the full
// collection once on subscribe and again after each committed change;
// onError fires at most once, after which the subscription is dead.
type Store interface {
	Subscribe(ctx context.Context, collection string, onSnapshot func([]Document), onError func(error)) (Unsubscribe, error)
	Insert(ctx context.Context, collection string, fields Fields) (id string, err error)
	Patch(ctx context.Context, collection, id string, fields Fields) error
	Delete(ctx context.Context, collection, id string) error
}

// New selects the backend configured by STORE_DRIVER.
func New(cfg *config.Config, client *goRedis.Client, otel otel.Otel) Store {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		return NewPostgres(postgres.New(cfg), client, cfg.Store.ChannelPrefix, otel)
	case config.StoreDriverMemory, "":
		log.Warn().Msg("Using in-memory document store, data is lost on restart")

		return NewMemory()
	default:
		log.Fatal().Str("driver", cfg.Store.Driver).Msg("Unknown document store driver")

		return nil
	}
}
