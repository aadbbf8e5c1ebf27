package appcore

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"gamecatalog/framework"
	"gamecatalog/internal/apiclient"
	"gamecatalog/internal/gameitems"
	"github.com/starfederation/datastar-go/datastar"
)

const liveSuffix = "/live"

// LoadGameItemsPage fetches the catalog once and pairs it with the request
// path. Fetch and decode failures are returned as-is for the router to
// handle.
func LoadGameItemsPage(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	_ framework.EmptyParams,
) (PageData, error) {
	pathname := r.URL.Path

	fetcher, err := apiFetcher(appCtx)
	if err != nil {
		return PageData{}, err
	}

	items, err := apiclient.FetchJSON[[]gameitems.GameItem](ctx, fetcher, gameitems.ResourcePath)
	if err != nil {
		return PageData{}, fmt.Errorf("load game items: %w", err)
	}
	if items == nil {
		items = []gameitems.GameItem{}
	}

	return PageData{GameItems: items, Pathname: pathname}, nil
}

func LoadGameItemsLivePage(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	params framework.EmptyParams,
	state LiveState,
) (PageData, error) {
	view, err := LoadGameItemsPage(ctx, appCtx, r, params)
	if err != nil {
		return PageData{}, err
	}

	view.Pathname = state.Pathname
	return view, nil
}

// ParseGameItemsLiveState reads datastar signals. Without signals the page
// path is derived from the live endpoint path.
func ParseGameItemsLiveState(r *http.Request) (LiveState, error) {
	fallback := LiveState{Pathname: pagePathForLive(r.URL.Path)}

	state, err := readDatastarState(r, fallback)
	if err != nil {
		return LiveState{}, err
	}

	state.Pathname = strings.TrimSpace(state.Pathname)
	if !strings.HasPrefix(state.Pathname, "/") {
		state.Pathname = fallback.Pathname
	}
	return state, nil
}

func readDatastarState[T interface{}](r *http.Request, fallback T) (T, error) {
	if r.Method == http.MethodGet && strings.TrimSpace(r.URL.Query().Get(datastar.DatastarKey)) == "" {
		return fallback, nil
	}

	parsed := fallback
	if err := datastar.ReadSignals(r, &parsed); err != nil {
		return fallback, err
	}

	return parsed, nil
}

func pagePathForLive(path string) string {
	trimmed := strings.TrimSuffix(strings.TrimRight(path, "/"), liveSuffix)
	if trimmed == "" {
		return "/"
	}
	return trimmed
}

// LivePath returns the live endpoint that refreshes the page at pathname.
func LivePath(pathname string) string {
	return strings.TrimRight(pathname, "/") + liveSuffix
}
