package web

import (
	"fmt"
	"net/http"
	"strings"

	"gamecatalog/framework/httpserver"
	"gamecatalog/internal/apiclient"
	"gamecatalog/internal/config"
	"gamecatalog/internal/gameitems"
	"gamecatalog/internal/web/appcore"
	"gamecatalog/internal/web/pages"
	"github.com/rs/zerolog"
)

type Deps struct {
	Fetcher apiclient.Fetcher
	// API serves /api/game-items from this process when set.
	API    http.Handler
	Logger zerolog.Logger
}

func NewHandler(cfg config.Config, deps Deps) (http.Handler, error) {
	p := pages.New(pages.Options{RootURL: cfg.RootURL})

	cachePolicies := httpserver.DefaultCachePolicies()
	if strings.TrimSpace(cfg.CacheLiveNavigation) != "" {
		cachePolicies.LiveNavigation = cfg.CacheLiveNavigation
	}
	// The catalog changes underneath the page, so pages are not cached by
	// shared caches.
	cachePolicies.HTML = "no-cache"
	cachePolicies.Live = "no-store"
	cachePolicies.Error = "no-store"

	var mounts []httpserver.Mount
	if deps.API != nil {
		mounts = append(mounts, httpserver.Mount{Pattern: gameitems.ResourcePath, Handler: deps.API})
	}

	logger := deps.Logger
	handler, err := httpserver.New(httpserver.Config[*appcore.Context]{
		AppContext:   appcore.NewContext(deps.Fetcher),
		Handlers:     Handlers(p),
		NotFoundPage: p.NotFound,
		Static: httpserver.StaticMount{
			URLPrefix: "/static/",
			Dir:       cfg.StaticDir,
		},
		Mounts:        mounts,
		CachePolicies: cachePolicies,
		LogServerError: func(err error) {
			logger.Error().Err(err).Bool("upstream", apiclient.IsUpstreamError(err)).Msg("page request failed")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create http handler: %w", err)
	}

	return handler, nil
}
