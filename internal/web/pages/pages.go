package pages

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"gamecatalog/framework"
	"gamecatalog/internal/gameitems"
	"gamecatalog/internal/markdown"
	"gamecatalog/internal/web/appcore"
	"github.com/a-h/templ"
)

const (
	GameItemsSelectorID = "game-items"
	defaultSiteName     = "Game Catalog"
	datastarScriptURL   = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"
)

type Options struct {
	SiteName string
	RootURL  string
}

type Pages struct {
	siteName string
	markdown markdown.Options
}

func New(opts Options) *Pages {
	siteName := strings.TrimSpace(opts.SiteName)
	if siteName == "" {
		siteName = defaultSiteName
	}

	return &Pages{
		siteName: siteName,
		markdown: markdown.Options{RootURL: opts.RootURL},
	}
}

// Layout wraps a page body in the document shell and navigation.
func (p *Pages) Layout(view appcore.PageData, child templ.Component) templ.Component {
	return p.document(view.PageTitle(), view.NavLinks(), child)
}

func (p *Pages) document(title string, links []appcore.NavLink, child templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}
		out.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		out.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		out.raw(`<title>`)
		out.text(title + " :: " + p.siteName)
		out.raw(`</title><style>`)
		out.raw(string(markdown.ChromaCSS()))
		out.raw(`</style><link rel="stylesheet" href="/static/catalog.css">`)
		out.raw(`<script type="module" src="` + datastarScriptURL + `"></script></head><body>`)
		p.writeNav(out, links)
		out.raw(`<main>`)
		out.render(ctx, child)
		out.raw(`</main></body></html>`)
		return out.err
	})
}

func (p *Pages) writeNav(out *htmlWriter, links []appcore.NavLink) {
	out.raw(`<nav><a class="brand" href="/">`)
	out.text(p.siteName)
	out.raw(`</a><ul>`)
	for _, link := range links {
		out.raw(`<li><a href="`)
		out.text(link.Href)
		out.raw(`"`)
		if link.Current {
			out.raw(` aria-current="page" class="current"`)
		}
		out.raw(`>`)
		out.text(link.Label)
		out.raw(`</a></li>`)
	}
	out.raw(`</ul></nav>`)
}

// GameItems renders the page body: heading, refresh control and the list.
func (p *Pages) GameItems(view appcore.PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}
		out.raw(`<section class="game-items-page"><header><h1>Game items</h1>`)
		out.raw(`<button type="button" data-on:click="@get(&#39;`)
		out.text(appcore.LivePath(view.Pathname))
		out.raw(`&#39;)">Refresh</button></header>`)
		out.render(ctx, p.GameItemsList(view))
		out.raw(`</section>`)
		return out.err
	})
}

// GameItemsList is the fragment patched by live refreshes.
func (p *Pages) GameItemsList(view appcore.PageData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}
		signals, err := json.Marshal(appcore.LiveState{Pathname: view.Pathname})
		if err != nil {
			return err
		}

		out.raw(`<div id="` + GameItemsSelectorID + `" data-signals="`)
		out.text(string(signals))
		out.raw(`">`)
		if len(view.GameItems) == 0 {
			out.raw(`<p class="empty">No game items yet.</p></div>`)
			return out.err
		}

		out.raw(`<p class="count">`)
		out.text(itemCountLabel(len(view.GameItems)))
		out.raw(`</p><ul class="game-items">`)
		for _, item := range view.GameItems {
			p.writeItem(out, item)
		}
		out.raw(`</ul></div>`)
		return out.err
	})
}

func (p *Pages) writeItem(out *htmlWriter, item gameitems.GameItem) {
	out.raw(`<li class="game-item"`)
	if id := item.ID(); id != "" {
		out.raw(` data-item-id="`)
		out.text(id)
		out.raw(`"`)
	}
	out.raw(`>`)

	if !item.IsRecord() {
		out.raw(`<code class="raw">`)
		out.text(string(item.Raw()))
		out.raw(`</code></li>`)
		return
	}

	out.raw(`<h2>`)
	if name := item.Name(); name != "" {
		out.text(name)
	} else {
		out.text("Untitled item")
	}
	out.raw(`</h2>`)
	if description := markdown.ToHTML(item.Description(), p.markdown); description != "" {
		out.raw(`<div class="description">`)
		out.raw(string(description))
		out.raw(`</div>`)
	}
	out.raw(`</li>`)
}

// NotFound renders a standalone page for unmatched routes.
func (p *Pages) NotFound(notFoundContext framework.NotFoundContext) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}
		out.raw(`<section class="not-found"><h1>Page not found</h1><p>Nothing lives at <code>`)
		out.text(notFoundContext.RequestPath)
		out.raw(`</code>.</p><p><a href="/dashboard">Back to the dashboard</a></p></section>`)
		return out.err
	})
	links := appcore.PageData{Pathname: notFoundContext.RequestPath}.NavLinks()
	return p.document("Not found", links, body)
}

func itemCountLabel(count int) string {
	if count == 1 {
		return "1 item"
	}
	return strconv.Itoa(count) + " items"
}

// htmlWriter keeps the first write error so templates read linearly.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text escapes s for element content and quoted attribute values.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) render(ctx context.Context, component templ.Component) {
	if h.err != nil || component == nil {
		return
	}
	h.err = component.Render(ctx, h.w)
}
