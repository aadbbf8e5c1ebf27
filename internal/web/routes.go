package web

import (
	"gamecatalog/framework"
	"gamecatalog/internal/web/appcore"
	"gamecatalog/internal/web/pages"
)

var (
	gameItemsPagePaths = []string{"/", "/dashboard"}
	gameItemsLivePaths = []string{"/live", "/dashboard/live"}
)

// Handlers lists every route served by the page engine.
func Handlers(p *pages.Pages) []framework.RouteHandler[*appcore.Context] {
	return []framework.RouteHandler[*appcore.Context]{
		framework.PageRouteHandler[*appcore.Context, framework.EmptyParams, appcore.LiveState, appcore.PageData]{
			Page: framework.PageModule[*appcore.Context, framework.EmptyParams, appcore.PageData]{
				Pattern:     "/dashboard",
				ParseParams: framework.MatchPaths(gameItemsPagePaths...),
				Load:        appcore.LoadGameItemsPage,
				Render:      p.GameItems,
				Layouts:     []framework.LayoutRenderer[appcore.PageData]{p.Layout},
			},
			Live: framework.LiveModule[*appcore.Context, framework.EmptyParams, appcore.LiveState, appcore.PageData]{
				Pattern:     "/dashboard/live",
				SelectorID:  pages.GameItemsSelectorID,
				ParseParams: framework.MatchPaths(gameItemsLivePaths...),
				ParseState:  appcore.ParseGameItemsLiveState,
				Load:        appcore.LoadGameItemsLivePage,
				Render:      p.GameItemsList,
			},
		},
	}
}
