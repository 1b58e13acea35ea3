package admin_test

import (
	"context"
	"errors"
	"strconv"
	"sync"

	admin "github.com/goliatone/go-admin"
	"github.com/goliatone/go-admin/fields"
	"github.com/goliatone/go-admin/pkg/adminerrors"
)

type person struct {
	ID      uint32 `json:"id"`
	Name    string `json:"name"`
	IsAdult bool   `json:"is_adult"`
}

type newPerson struct {
	Name    string `json:"name"`
	IsAdult bool   `json:"is_adult"`
}

// people is an in-memory collaborator guarded by a mutex.
type people struct {
	mu        sync.Mutex
	items     []person
	nextID    uint32
	failWith  error
	lastInput *newPerson
}

type appContext struct {
	people *people
}

func newPeople(seed ...person) *people {
	p := &people{}
	for _, item := range seed {
		p.items = append(p.items, item)
		if item.ID > p.nextID {
			p.nextID = item.ID
		}
	}
	return p
}

func (p *people) list(context.Context, appContext) ([]person, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return nil, p.failWith
	}
	out := make([]person, len(p.items))
	copy(out, p.items)
	return out, nil
}

func (p *people) get(_ context.Context, _ appContext, id uint32) (person, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return person{}, p.failWith
	}
	for _, item := range p.items {
		if item.ID == id {
			return item, nil
		}
	}
	return person{}, adminerrors.NotFound("people", strconv.FormatUint(uint64(id), 10))
}

func (p *people) create(_ context.Context, _ appContext, input newPerson) (person, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastInput = &input
	if p.failWith != nil {
		return person{}, p.failWith
	}
	p.nextID++
	item := person{ID: p.nextID, Name: input.Name, IsAdult: input.IsAdult}
	p.items = append(p.items, item)
	return item, nil
}

func personFields() []fields.FieldConfig {
	return []fields.FieldConfig{
		fields.Number("id", "ID", true),
		fields.Text("name", "Name", false),
		fields.Boolean("is_adult", "", false),
	}
}

func peopleResource(p *people) admin.Resource[appContext, uint32, person, newPerson] {
	return admin.Resource[appContext, uint32, person, newPerson]{
		Name:         "People",
		IDFieldID:    "id",
		List:         p.list,
		Get:          p.get,
		Create:       p.create,
		FieldConfigs: personFields(),
	}
}

func newTestAdmin(p *people, opts ...admin.Option) *admin.Admin[appContext] {
	a := admin.MustNew(appContext{people: p}, opts...)
	a.MustRegister(peopleResource(p))
	return a
}

var errBackend = errors.New("backend unavailable")
