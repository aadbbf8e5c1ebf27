package appcore

import "gamecatalog/internal/gameitems"

// PageData is handed to the page templates for one request and then dropped.
type PageData struct {
	GameItems []gameitems.GameItem `json:"gameItems"`
	Pathname  string               `json:"pathname"`
}

type LiveState struct {
	Pathname string `json:"pathname"`
}

type NavLink struct {
	Href    string
	Label   string
	Current bool
}

var navLinks = []NavLink{
	{Href: "/", Label: "Home"},
	{Href: "/dashboard", Label: "Dashboard"},
}

// NavLinks marks the link matching the current path.
func (p PageData) NavLinks() []NavLink {
	links := make([]NavLink, len(navLinks))
	for idx, link := range navLinks {
		link.Current = link.Href == p.Pathname
		links[idx] = link
	}
	return links
}

func (p PageData) PageTitle() string {
	for _, link := range p.NavLinks() {
		if link.Current {
			return link.Label
		}
	}
	return "Game items"
}
