// Package links builds the admin URLs for resource pages through a go-urlkit
// route manager.
package links

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

const (
	GroupName = "admin"

	RouteDashboard = "dashboard"
	RouteList      = "list"
	RouteCreate    = "create"
	RouteItem      = "item"

	ParamResource = "resource"
	ParamID       = "id"
)

// Builder resolves admin routes.
type Builder struct {
	manager *urlkit.RouteManager
}

// Config returns the urlkit configuration for the admin routes mounted under
// basePath. origin is prepended verbatim and may be empty.
func Config(origin, basePath string) *urlkit.Config {
	base := NormalizeBasePath(basePath)
	return &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    GroupName,
				BaseURL: strings.TrimRight(strings.TrimSpace(origin), "/"),
				Paths: map[string]string{
					RouteDashboard: base + "/",
					RouteList:      base + "/:resource",
					RouteCreate:    base + "/:resource/create",
					RouteItem:      base + "/:resource/:id",
				},
			},
		},
	}
}

// New builds a Builder for the admin routes under basePath.
func New(origin, basePath string) *Builder {
	return &Builder{manager: urlkit.NewRouteManager(Config(origin, basePath))}
}

// Dashboard returns the admin landing URL.
func (b *Builder) Dashboard() (string, error) {
	return b.build(RouteDashboard, nil)
}

// List returns the URL listing the items of resource.
func (b *Builder) List(resource string) (string, error) {
	return b.build(RouteList, map[string]any{ParamResource: resource})
}

// Create returns the URL of the create form of resource.
func (b *Builder) Create(resource string) (string, error) {
	return b.build(RouteCreate, map[string]any{ParamResource: resource})
}

// Item returns the URL of one item of resource.
func (b *Builder) Item(resource, id string) (string, error) {
	return b.build(RouteItem, map[string]any{ParamResource: resource, ParamID: id})
}

func (b *Builder) build(route string, params map[string]any) (string, error) {
	if b == nil || b.manager == nil {
		return "", fmt.Errorf("links: route manager not configured")
	}
	group, err := lookupGroup(b.manager, GroupName)
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, route)
	if err != nil {
		return "", err
	}
	for key, value := range params {
		builder.WithParam(key, value)
	}
	return builder.Build()
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("links: route %q not found: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("links: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, nil
}

// NormalizeBasePath trims slashes and whitespace and returns "" or "/segment[/...]".
func NormalizeBasePath(basePath string) string {
	trimmed := strings.Trim(strings.TrimSpace(basePath), "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}
