package api

import (
	"fmt"

	urlkit "github.com/goliatone/go-urlkit"
)

// Route names within the backend group.
const (
	routeGroup = "backend"

	RouteInstanceList   = "instances.list"
	RouteInstanceCreate = "instances.create"
	RouteInstanceUpdate = "instances.update"
	RouteInstanceDelete = "instances.delete"
	RouteLayoutGet      = "layouts.get"
	RouteLayoutUpdate   = "layouts.update"
	RouteComponentList  = "components.list"
	RouteComponentNew   = "components.create"
	RouteComponentSave  = "components.update"
	RouteMediaFolders   = "media.folders"
	RouteMediaFiles     = "media.files"
)

// Routes resolves backend endpoint URLs through a go-urlkit RouteManager.
type Routes struct {
	manager *urlkit.RouteManager
}

// NewRoutes builds the route table for the backend API rooted at baseURL.
func NewRoutes(baseURL string) *Routes {
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    routeGroup,
				BaseURL: baseURL,
				Paths: map[string]string{
					RouteInstanceList:   "/api/pages/:pageId/instances",
					RouteInstanceCreate: "/api/pages/:pageId/instances",
					RouteInstanceUpdate: "/api/pages/:pageId/instances/:id",
					RouteInstanceDelete: "/api/pages/:pageId/instances/:id",
					RouteLayoutGet:      "/api/layouts/:id",
					RouteLayoutUpdate:   "/api/layouts/:id",
					RouteComponentList:  "/api/components",
					RouteComponentNew:   "/api/components",
					RouteComponentSave:  "/api/components/:id",
					RouteMediaFolders:   "/api/media/folders",
					RouteMediaFiles:     "/api/media/files",
				},
			},
		},
	})
	return &Routes{manager: manager}
}

// URL resolves a named route with path params and optional query values.
func (r *Routes) URL(route string, params map[string]any, query map[string]string) (string, error) {
	group, err := r.group()
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, route)
	if err != nil {
		return "", err
	}
	for key, val := range params {
		builder.WithParam(key, val)
	}
	for key, val := range query {
		builder.WithQuery(key, val)
	}
	return builder.Build()
}

func (r *Routes) group() (group *urlkit.Group, err error) {
	if r == nil || r.manager == nil {
		return nil, fmt.Errorf("api: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("api: route group %q not found", routeGroup)
		}
	}()
	group = r.manager.Group(routeGroup)
	return group, err
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("api: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("api: route %q not found", route)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}
