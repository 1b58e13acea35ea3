// Package admin registers strongly typed CRUD resources and exposes them
// through one uniform JSON surface that a generic HTTP or UI layer can drive
// without knowing the concrete item, identifier or input types.
package admin

import (
	"context"
	"fmt"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-admin/internal/links"
	"github.com/goliatone/go-admin/internal/logging"
	"github.com/goliatone/go-admin/internal/logging/gologger"
	"github.com/goliatone/go-admin/internal/theming"
	"github.com/goliatone/go-admin/pkg/adminerrors"
	"github.com/goliatone/go-admin/pkg/interfaces"
)

// Theme is the resolved admin theme.
type Theme = theming.Theme

// Option configures an Admin.
type Option func(*options)

type options struct {
	config         Config
	loggerProvider interfaces.LoggerProvider
	manifests      []*gotheme.Manifest
	titleOverride  *string
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithTitle sets the panel title.
func WithTitle(title string) Option {
	return func(o *options) {
		o.titleOverride = &title
	}
}

// WithLoggerProvider supplies the provider module loggers are taken from.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *options) {
		o.loggerProvider = provider
	}
}

// WithThemeManifests registers additional go-theme manifests the configured
// theme name can select.
func WithThemeManifests(manifests ...*gotheme.Manifest) Option {
	return func(o *options) {
		o.manifests = append(o.manifests, manifests...)
	}
}

// Admin is the registry of erased resources sharing the context C.
type Admin[C any] struct {
	config   Config
	context  C
	theme    Theme
	links    *links.Builder
	provider interfaces.LoggerProvider
	logger   interfaces.Logger

	mu        sync.RWMutex
	resources []*JSONResource[C]
	byPath    map[string]*JSONResource[C]
	frozen    bool
}

// New builds an Admin around the application context c.
func New[C any](c C, opts ...Option) (*Admin[C], error) {
	o := options{config: DefaultConfig()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.titleOverride != nil {
		o.config.Title = *o.titleOverride
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}
	if o.loggerProvider == nil && strings.EqualFold(strings.TrimSpace(o.config.Logging.Provider), "gologger") {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     o.config.Logging.Level,
			Format:    o.config.Logging.Format,
			AddSource: o.config.Logging.AddSource,
			Focus:     o.config.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		o.loggerProvider = provider
	}

	theme, err := theming.Resolve(theming.Config{
		Name:    o.config.Theme.Name,
		Variant: o.config.Theme.Variant,
		Tokens:  o.config.Theme.Tokens,
	}, o.manifests...)
	if err != nil {
		return nil, err
	}

	a := &Admin[C]{
		config:   o.config,
		context:  c,
		theme:    theme,
		links:    links.New(o.config.Origin, o.config.BasePath),
		provider: o.loggerProvider,
		logger:   logging.RegistryLogger(o.loggerProvider),
		byPath:   map[string]*JSONResource[C]{},
	}
	return a, nil
}

// MustNew is New that panics on error.
func MustNew[C any](c C, opts ...Option) *Admin[C] {
	a, err := New(c, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Register erases r and appends it to the registry.
func (a *Admin[C]) Register(r Erasable[C]) error {
	if r == nil {
		return ErrNilResource
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.frozen {
		return ErrRegistryFrozen
	}

	jr, err := r.Erase()
	if err != nil {
		a.logger.Error("resource.register", "error", err)
		return err
	}
	if _, exists := a.byPath[jr.path]; exists {
		a.logger.Error("resource.register", "resource", jr.path, "error", ErrDuplicatePath)
		return fmt.Errorf("%w: %s", ErrDuplicatePath, jr.path)
	}

	jr.withLogger(logging.ResourceLogger(a.provider))
	a.resources = append(a.resources, jr)
	a.byPath[jr.path] = jr
	a.logger.Info("resource.registered", "resource", jr.path, "fields", len(jr.fieldConfigs))
	return nil
}

// MustRegister is Register that panics on error.
func (a *Admin[C]) MustRegister(r Erasable[C]) {
	if err := a.Register(r); err != nil {
		panic(err)
	}
}

// Freeze seals the registry. Call it before serving requests.
func (a *Admin[C]) Freeze() {
	a.mu.Lock()
	a.frozen = true
	a.mu.Unlock()
}

// Frozen reports whether Freeze was called.
func (a *Admin[C]) Frozen() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.frozen
}

// Resources returns the registered resources in registration order.
func (a *Admin[C]) Resources() []*JSONResource[C] {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*JSONResource[C], len(a.resources))
	copy(out, a.resources)
	return out
}

// Resource looks up a resource by path.
func (a *Admin[C]) Resource(path string) (*JSONResource[C], error) {
	path = strings.TrimSpace(path)
	a.mu.RLock()
	jr, ok := a.byPath[path]
	a.mu.RUnlock()
	if !ok {
		return nil, adminerrors.NotFound(path, "")
	}
	return jr, nil
}

// List lists the items of the resource at path.
func (a *Admin[C]) List(ctx context.Context, path string) ([]Object, error) {
	jr, err := a.Resource(path)
	if err != nil {
		return nil, err
	}
	return jr.List(ctx, a.context)
}

// Get returns one item of the resource at path.
func (a *Admin[C]) Get(ctx context.Context, path, id string) (Object, error) {
	jr, err := a.Resource(path)
	if err != nil {
		return nil, err
	}
	return jr.Get(ctx, a.context, id)
}

// Create creates an item of the resource at path from a form body.
func (a *Admin[C]) Create(ctx context.Context, path string, form []byte) (Object, error) {
	jr, err := a.Resource(path)
	if err != nil {
		return nil, err
	}
	return jr.Create(ctx, a.context, form)
}

// Title returns the panel title.
func (a *Admin[C]) Title() string { return a.config.Title }

// Config returns the configuration the Admin was built with.
func (a *Admin[C]) Config() Config { return a.config }

// Theme returns the resolved theme.
func (a *Admin[C]) Theme() Theme { return a.theme }

// Context returns the shared application context.
func (a *Admin[C]) Context() C { return a.context }

// LoggerProvider returns the configured logger provider, which may be nil.
func (a *Admin[C]) LoggerProvider() interfaces.LoggerProvider { return a.provider }

// DashboardURL returns the admin landing URL.
func (a *Admin[C]) DashboardURL() (string, error) { return a.links.Dashboard() }

// ListURL returns the URL listing the resource at path.
func (a *Admin[C]) ListURL(path string) (string, error) { return a.links.List(path) }

// CreateURL returns the URL of the create form of the resource at path.
func (a *Admin[C]) CreateURL(path string) (string, error) { return a.links.Create(path) }

// ItemURL returns the URL of one item of the resource at path.
func (a *Admin[C]) ItemURL(path, id string) (string, error) { return a.links.Item(path, id) }
