package main

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	admin "github.com/goliatone/go-admin"
	"github.com/goliatone/go-admin/fields"
	"github.com/goliatone/go-admin/internal/identity"
	"github.com/goliatone/go-admin/pkg/adminerrors"
	"github.com/goliatone/go-admin/store/bunstore"

	_ "github.com/mattn/go-sqlite3"
)

const memoryDSN = "file:admin_demo?mode=memory&cache=shared"

// appContext is shared by every demo resource.
type appContext struct {
	members *memberStore
}

type member struct {
	ID      uint32 `json:"id" admin:"readonly,label=ID"`
	Name    string `json:"name"`
	IsAdult bool   `json:"is_adult"`
}

type newMember struct {
	Name    string `json:"name"`
	IsAdult bool   `json:"is_adult"`
}

type memberStore struct {
	mu     sync.RWMutex
	items  []member
	nextID uint32
}

func newMemberStore(seed ...newMember) *memberStore {
	s := &memberStore{}
	for _, item := range seed {
		s.add(item)
	}
	return s
}

func (s *memberStore) add(input newMember) member {
	s.nextID++
	item := member{ID: s.nextID, Name: input.Name, IsAdult: input.IsAdult}
	s.items = append(s.items, item)
	return item
}

func listMembers(_ context.Context, c appContext) ([]member, error) {
	c.members.mu.RLock()
	defer c.members.mu.RUnlock()
	out := make([]member, len(c.members.items))
	copy(out, c.members.items)
	return out, nil
}

func getMember(_ context.Context, c appContext, id uint32) (member, error) {
	c.members.mu.RLock()
	defer c.members.mu.RUnlock()
	for _, item := range c.members.items {
		if item.ID == id {
			return item, nil
		}
	}
	return member{}, adminerrors.NotFound("members", strconv.FormatUint(uint64(id), 10))
}

func createMember(_ context.Context, c appContext, input newMember) (member, error) {
	c.members.mu.Lock()
	defer c.members.mu.Unlock()
	return c.members.add(input), nil
}

type note struct {
	bun.BaseModel `bun:"table:admin_notes,alias:n"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Title     string    `bun:"title,notnull" json:"title"`
	Body      string    `bun:"body" json:"body"`
	Priority  string    `bun:"priority,notnull" json:"priority"`
	Pinned    bool      `bun:"pinned,notnull" json:"pinned"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"-"`
}

var noteHandlers = bunstore.Handlers[note]{
	GetID: func(n *note) uuid.UUID { return n.ID },
	SetID: func(n *note, id uuid.UUID) { n.ID = id },
}

var priorities = []fields.Choice{
	{Value: "low", Label: "Low"},
	{Value: "normal", Label: "Normal"},
	{Value: "high", Label: "High"},
}

func membersResource() admin.Resource[appContext, uint32, member, newMember] {
	return admin.Resource[appContext, uint32, member, newMember]{
		Name:         "Members",
		IDFieldID:    "id",
		List:         listMembers,
		Get:          getMember,
		Create:       createMember,
		FieldConfigs: fields.MustFromStruct[member](),
	}
}

func notesResource(store *bunstore.Store[note]) admin.Resource[appContext, uuid.UUID, *note, note] {
	return admin.Resource[appContext, uuid.UUID, *note, note]{
		Name:      "Notes",
		IDFieldID: "id",
		List:      bunstore.List[appContext](store),
		Get:       bunstore.Get[appContext](store),
		Create:    bunstore.Create[appContext](store),
		FieldConfigs: []fields.FieldConfig{
			fields.Text("id", "ID", true),
			fields.Text("title", "Title", false, fields.WithHelpText("Shown in listings")),
			fields.Markdown("body", "Body", false, fields.Optional()),
			fields.Select("priority", "Priority", false, priorities),
			fields.Boolean("pinned", "Pinned", false),
		},
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{"type": "string", "minLength": 1, "maxLength": 120},
			},
		},
	}
}

// openNotes connects the notes table according to the storage config. The
// memory driver uses a private in-memory sqlite database.
func openNotes(ctx context.Context, cfg admin.Config, a *admin.Admin[appContext]) (*bunstore.Store[note], *bun.DB, error) {
	dsn := memoryDSN
	if strings.EqualFold(strings.TrimSpace(cfg.Storage.Driver), "sqlite3") {
		dsn = cfg.Storage.DSN
	}
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)

	opts := []bunstore.Option{
		bunstore.WithLoggerProvider(a.LoggerProvider()),
		bunstore.WithOrder("?TableAlias.created_at ASC"),
	}
	if cfg.Storage.Cache {
		cacheSvc, err := repocache.NewCacheService(repocache.DefaultConfig())
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("cache service: %w", err)
		}
		opts = append(opts, bunstore.WithCache(cacheSvc, repocache.NewDefaultKeySerializer()))
	}

	store, err := bunstore.New(db, "notes", noteHandlers, opts...)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if err := store.EnsureTable(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if err := seedNotes(ctx, store); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return store, db, nil
}

func seedNotes(ctx context.Context, store *bunstore.Store[note]) error {
	welcome := note{
		ID:       identity.ItemUUID("notes", "welcome"),
		Title:    "Welcome",
		Body:     "Items created here are stored in **sqlite**.",
		Priority: "normal",
		Pinned:   true,
	}
	_, err := store.Get(ctx, welcome.ID)
	if err == nil {
		return nil
	}
	if !adminerrors.IsNotFound(err) {
		return err
	}
	_, err = store.Create(ctx, &welcome)
	return err
}
