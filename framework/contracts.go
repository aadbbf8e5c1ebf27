package framework

import (
	"context"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
)

type EmptyParams struct{}

type ParamsParser[P interface{}] func(path string) (P, bool)

type PageLoader[C interface{}, P interface{}, VM interface{}] func(
	ctx context.Context,
	appCtx C,
	r *http.Request,
	params P,
) (VM, error)

type PageRenderer[VM interface{}] func(view VM) templ.Component

type LayoutRenderer[VM interface{}] func(view VM, child templ.Component) templ.Component

type PageModule[C interface{}, P interface{}, VM interface{}] struct {
	Pattern     string
	ParseParams ParamsParser[P]
	Load        PageLoader[C, P, VM]
	Render      PageRenderer[VM]
	Layouts     []LayoutRenderer[VM]
}

type LiveStateParser[S interface{}] func(r *http.Request) (S, error)

type LiveLoader[C interface{}, P interface{}, S interface{}, VM interface{}] func(
	ctx context.Context,
	appCtx C,
	r *http.Request,
	params P,
	state S,
) (VM, error)

// LiveModule re-renders one fragment of a page and streams it as a patch
// targeting SelectorID.
type LiveModule[C interface{}, P interface{}, S interface{}, VM interface{}] struct {
	Pattern     string
	SelectorID  string
	ParseParams ParamsParser[P]
	ParseState  LiveStateParser[S]
	Load        LiveLoader[C, P, S, VM]
	Render      PageRenderer[VM]
}

type RuntimeContext[C interface{}] interface {
	AppContext() C
	IsPartialRequest(r *http.Request) bool
	RenderPage(r *http.Request, w http.ResponseWriter, component templ.Component) error
	PatchLive(w http.ResponseWriter, r *http.Request, selectorID string, component templ.Component) error
	IsNotFound(err error) bool
	RespondNotFound(w http.ResponseWriter, r *http.Request, notFoundContext NotFoundContext)
	RespondBadRequest(w http.ResponseWriter, message string)
	RespondServerError(w http.ResponseWriter, err error)
}

type NotFoundSource string

const (
	NotFoundSourcePageLoad       NotFoundSource = "page_load"
	NotFoundSourceLiveLoad       NotFoundSource = "live_load"
	NotFoundSourceUnmatchedRoute NotFoundSource = "unmatched_route"
)

type NotFoundContext struct {
	RequestPath         string
	MatchedRoutePattern string
	Source              NotFoundSource
}

type RouteHandler[C interface{}] interface {
	TryServePage(runtime RuntimeContext[C], w http.ResponseWriter, r *http.Request) bool
	TryServeLive(runtime RuntimeContext[C], w http.ResponseWriter, r *http.Request) bool
}

type PageOnlyRouteHandler[C interface{}, P interface{}, VM interface{}] struct {
	Page PageModule[C, P, VM]
}

func (h PageOnlyRouteHandler[C, P, VM]) TryServePage(
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
) bool {
	return servePageModule(runtime, w, r, h.Page)
}

func (PageOnlyRouteHandler[C, P, VM]) TryServeLive(RuntimeContext[C], http.ResponseWriter, *http.Request) bool {
	return false
}

type PageRouteHandler[C interface{}, P interface{}, S interface{}, VM interface{}] struct {
	Page PageModule[C, P, VM]
	Live LiveModule[C, P, S, VM]
}

func (h PageRouteHandler[C, P, S, VM]) TryServePage(
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
) bool {
	return servePageModule(runtime, w, r, h.Page)
}

func (h PageRouteHandler[C, P, S, VM]) TryServeLive(
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
) bool {
	return serveLiveModule(runtime, w, r, h.Live)
}

func applyLayouts[VM interface{}](
	layouts []LayoutRenderer[VM],
	view VM,
	child templ.Component,
) templ.Component {
	wrapped := child
	for idx := len(layouts) - 1; idx >= 0; idx-- {
		wrapped = layouts[idx](view, wrapped)
	}
	return wrapped
}

func servePageModule[C interface{}, P interface{}, VM interface{}](
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
	module PageModule[C, P, VM],
) bool {
	if module.ParseParams == nil || module.Load == nil || module.Render == nil {
		return false
	}
	params, ok := module.ParseParams(r.URL.Path)
	if !ok {
		return false
	}

	view, err := module.Load(r.Context(), runtime.AppContext(), r, params)
	if err != nil {
		handleLoadError(runtime, w, r, err, module.Pattern, NotFoundSourcePageLoad)
		return true
	}

	component := module.Render(view)
	if !runtime.IsPartialRequest(r) {
		component = applyLayouts(module.Layouts, view, component)
	}
	if err := runtime.RenderPage(r, w, component); err != nil {
		runtime.RespondServerError(w, fmt.Errorf("render route %q: %w", module.Pattern, err))
	}
	return true
}

func serveLiveModule[C interface{}, P interface{}, S interface{}, VM interface{}](
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
	module LiveModule[C, P, S, VM],
) bool {
	if module.ParseParams == nil || module.Load == nil || module.Render == nil {
		return false
	}
	params, ok := module.ParseParams(r.URL.Path)
	if !ok {
		return false
	}

	var state S
	if module.ParseState != nil {
		parsed, err := module.ParseState(r)
		if err != nil {
			runtime.RespondBadRequest(w, "invalid live state")
			return true
		}
		state = parsed
	}

	view, err := module.Load(r.Context(), runtime.AppContext(), r, params, state)
	if err != nil {
		handleLoadError(runtime, w, r, err, module.Pattern, NotFoundSourceLiveLoad)
		return true
	}

	if err := runtime.PatchLive(w, r, module.SelectorID, module.Render(view)); err != nil {
		runtime.RespondServerError(w, fmt.Errorf("patch live route %q: %w", module.Pattern, err))
	}
	return true
}

func handleLoadError[C interface{}](
	runtime RuntimeContext[C],
	w http.ResponseWriter,
	r *http.Request,
	err error,
	routePattern string,
	source NotFoundSource,
) {
	if runtime.IsNotFound(err) {
		runtime.RespondNotFound(w, r, NotFoundContext{
			RequestPath:         r.URL.Path,
			MatchedRoutePattern: routePattern,
			Source:              source,
		})
		return
	}

	runtime.RespondServerError(w, fmt.Errorf("load route %q: %w", routePattern, err))
}

// MatchPaths returns a parser accepting any of the given paths, with or
// without a trailing slash.
func MatchPaths(paths ...string) ParamsParser[EmptyParams] {
	allowed := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		allowed[trimTrailingSlash(path)] = struct{}{}
	}

	return func(path string) (EmptyParams, bool) {
		_, ok := allowed[trimTrailingSlash(path)]
		return EmptyParams{}, ok
	}
}

func trimTrailingSlash(path string) string {
	for len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	if path == "" {
		return "/"
	}
	return path
}
