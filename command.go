package admin

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-admin/internal/commands"
	"github.com/goliatone/go-admin/internal/logging"
)

const createItemMessageType = "admin.resource.create"

// CreateItemCommand asks the registry to create an item of Resource from an
// urlencoded Form body. OnCreated, when set, receives the created item.
type CreateItemCommand struct {
	Resource  string            `json:"resource"`
	Form      []byte            `json:"form"`
	OnCreated func(item Object) `json:"-"`
}

// Type implements command.Message.
func (CreateItemCommand) Type() string { return createItemMessageType }

// Validate checks the command before it reaches the registry.
func (m CreateItemCommand) Validate() error {
	errs := validation.Errors{}
	resource := strings.TrimSpace(m.Resource)
	if resource == "" {
		errs["resource"] = validation.NewError("admin.resource.create.resource_required", "resource is required")
	} else if !slug.IsValid(resource) {
		errs["resource"] = validation.NewError("admin.resource.create.resource_invalid", "resource must be a valid path")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateItemHandler executes CreateItemCommand against an Admin.
type CreateItemHandler[C any] struct {
	inner *commands.Handler[CreateItemCommand]
}

// NewCreateItemHandler wires a handler to a. The timeout comes from the
// Commands section of the Admin configuration.
func NewCreateItemHandler[C any](a *Admin[C]) *CreateItemHandler[C] {
	exec := func(ctx context.Context, msg CreateItemCommand) error {
		created, err := a.Create(ctx, strings.TrimSpace(msg.Resource), msg.Form)
		if err != nil {
			return err
		}
		if msg.OnCreated != nil {
			msg.OnCreated(created)
		}
		return nil
	}

	return &CreateItemHandler[C]{
		inner: commands.NewHandler[CreateItemCommand](exec,
			commands.WithLogger[CreateItemCommand](logging.CommandsLogger(a.provider)),
			commands.WithOperation[CreateItemCommand]("resource.create"),
			commands.WithTimeout[CreateItemCommand](a.config.Commands.Timeout),
		),
	}
}

// Execute satisfies command.Commander[CreateItemCommand].
func (h *CreateItemHandler[C]) Execute(ctx context.Context, msg CreateItemCommand) error {
	if h == nil || h.inner == nil {
		return ErrNilCreateHandler
	}
	return h.inner.Execute(ctx, msg)
}
