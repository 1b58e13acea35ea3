// Package bunstore adapts go-repository-bun repositories to the typed
// callbacks of an admin Resource.
package bunstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-admin/internal/logging"
	"github.com/goliatone/go-admin/pkg/adminerrors"
	"github.com/goliatone/go-admin/pkg/interfaces"
)

var (
	ErrNilDB            = errors.New("bunstore: db is required")
	ErrResourceRequired = errors.New("bunstore: resource name is required")
	ErrMissingHandlers  = errors.New("bunstore: GetID and SetID handlers are required")
)

// Handlers tell the store how to read and write the identity of a model.
type Handlers[T any] struct {
	GetID func(*T) uuid.UUID
	SetID func(*T, uuid.UUID)

	// Identifier names the natural key column. Defaults to "id".
	Identifier      string
	IdentifierValue func(*T) string
}

// Option configures a Store.
type Option func(*options)

type options struct {
	cacheService cache.CacheService
	serializer   cache.KeySerializer
	newID        func() uuid.UUID
	logger       interfaces.Logger
	orderBy      string
}

// WithCache decorates the repository with go-repository-cache. Both values
// are required for caching to be enabled.
func WithCache(service cache.CacheService, serializer cache.KeySerializer) Option {
	return func(o *options) {
		o.cacheService = service
		o.serializer = serializer
	}
}

// WithIDGenerator overrides uuid.New for records created without an ID.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithLoggerProvider routes store logs through the admin.store module.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *options) {
		o.logger = logging.StoreLogger(provider)
	}
}

// WithOrder sets the order expression applied to List, for example
// "?TableAlias.name ASC".
func WithOrder(expr string) Option {
	return func(o *options) {
		o.orderBy = strings.TrimSpace(expr)
	}
}

// Store is a typed repository for one admin resource.
type Store[T any] struct {
	resource string
	db       *bun.DB
	repo     repository.Repository[*T]
	handlers Handlers[T]
	newID    func() uuid.UUID
	orderBy  string
	logger   interfaces.Logger
}

// New builds a Store for the model T backed by db.
func New[T any](db *bun.DB, resource string, handlers Handlers[T], opts ...Option) (*Store[T], error) {
	if db == nil {
		return nil, ErrNilDB
	}
	resource = strings.TrimSpace(resource)
	if resource == "" {
		return nil, ErrResourceRequired
	}
	if handlers.GetID == nil || handlers.SetID == nil {
		return nil, ErrMissingHandlers
	}

	cfg := options{
		newID:  uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	base := newRepository(db, handlers)
	if cfg.cacheService != nil && cfg.serializer != nil {
		base = repositorycache.New(base, cfg.cacheService, cfg.serializer)
	}

	return &Store[T]{
		resource: resource,
		db:       db,
		repo:     base,
		handlers: handlers,
		newID:    cfg.newID,
		orderBy:  cfg.orderBy,
		logger:   logging.WithFields(cfg.logger, map[string]any{"resource": resource}),
	}, nil
}

// MustNew is New that panics on error.
func MustNew[T any](db *bun.DB, resource string, handlers Handlers[T], opts ...Option) *Store[T] {
	store, err := New(db, resource, handlers, opts...)
	if err != nil {
		panic(err)
	}
	return store
}

func newRepository[T any](db *bun.DB, handlers Handlers[T]) repository.Repository[*T] {
	identifier := strings.TrimSpace(handlers.Identifier)
	identifierValue := handlers.IdentifierValue
	if identifier == "" || identifierValue == nil {
		identifier = "id"
		identifierValue = func(record *T) string { return handlers.GetID(record).String() }
	}
	return repository.MustNewRepository(db, repository.ModelHandlers[*T]{
		NewRecord:          func() *T { return new(T) },
		GetID:              handlers.GetID,
		SetID:              handlers.SetID,
		GetIdentifier:      func() string { return identifier },
		GetIdentifierValue: identifierValue,
	})
}

// Resource returns the resource name the store reports errors under.
func (s *Store[T]) Resource() string {
	return s.resource
}

// EnsureTable creates the model table when it does not exist.
func (s *Store[T]) EnsureTable(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*T)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("bunstore: create table for %s: %w", s.resource, err)
	}
	return nil
}

// List returns every record, ordered by WithOrder when set.
func (s *Store[T]) List(ctx context.Context) ([]*T, error) {
	order := s.orderBy
	records, total, err := s.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		if order == "" {
			return q
		}
		return q.OrderExpr(order)
	}))
	if err != nil {
		return nil, s.mapError(err, "list", "")
	}
	s.logger.Debug("store.list", "count", len(records), "total", total)
	return records, nil
}

// Get returns the record with the given id or an admin NotFound error.
func (s *Store[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	if id == uuid.Nil {
		return nil, adminerrors.NotFound(s.resource, id.String())
	}
	record, err := s.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, s.mapError(err, "get", id.String())
	}
	return record, nil
}

// Create inserts record, assigning a fresh id when it has none.
func (s *Store[T]) Create(ctx context.Context, record *T) (*T, error) {
	if record == nil {
		record = new(T)
	}
	if s.handlers.GetID(record) == uuid.Nil {
		s.handlers.SetID(record, s.newID())
	}
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, s.mapError(err, "create", s.handlers.GetID(record).String())
	}
	s.logger.Debug("store.create", "id", s.handlers.GetID(created).String())
	return created, nil
}

func (s *Store[T]) mapError(err error, operation, key string) error {
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return adminerrors.NotFound(s.resource, key)
	}
	s.logger.Error("store operation failed", "operation", operation, "error", err)
	return adminerrors.Internal(err, fmt.Sprintf("%s: %s failed", s.resource, operation)).
		WithTextCode(adminerrors.TextCodeStoreFailed).
		WithMetadata(map[string]any{
			"resource":  s.resource,
			"operation": operation,
		})
}

// List adapts s to a Resource list callback for the context type C.
func List[C, T any](s *Store[T]) func(context.Context, C) ([]*T, error) {
	return func(ctx context.Context, _ C) ([]*T, error) {
		return s.List(ctx)
	}
}

// Get adapts s to a Resource get callback for the context type C.
func Get[C, T any](s *Store[T]) func(context.Context, C, uuid.UUID) (*T, error) {
	return func(ctx context.Context, _ C, id uuid.UUID) (*T, error) {
		return s.Get(ctx, id)
	}
}

// Create adapts s to a Resource create callback whose input is the model
// value decoded from the assembled form.
func Create[C, T any](s *Store[T]) func(context.Context, C, T) (*T, error) {
	return func(ctx context.Context, _ C, input T) (*T, error) {
		record := input
		return s.Create(ctx, &record)
	}
}
