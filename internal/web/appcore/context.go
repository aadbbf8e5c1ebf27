package appcore

import (
	"errors"

	"gamecatalog/internal/apiclient"
)

var errFetcherUnavailable = errors.New("api fetcher unavailable")

// Context is shared by every loader. It holds only the fetch capability;
// loaders keep no state between requests.
type Context struct {
	fetcher apiclient.Fetcher
}

func NewContext(fetcher apiclient.Fetcher) *Context {
	return &Context{fetcher: fetcher}
}

func apiFetcher(appCtx *Context) (apiclient.Fetcher, error) {
	if appCtx == nil || appCtx.fetcher == nil {
		return nil, errFetcherUnavailable
	}
	return appCtx.fetcher, nil
}
