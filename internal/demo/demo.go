// Package demo supplies the route table served by the wayfind demo
// host. The views render plain HTML strings; they exist to exercise the
// router, not to be an application.
package demo

import (
	"fmt"
	"html"
	"strings"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Routes returns the demo route table.
func Routes() router.Table {
	return router.Table{
		{Pattern: "/", View: Home},
		{Pattern: "/users/:id", View: UserShow},
		{Pattern: "/docs/*", View: Docs},
		{Pattern: "/about", View: About},
	}
}

// Home renders the landing view with links into the other routes.
func Home(router.Props) string {
	var b strings.Builder
	b.WriteString("<h1>wayfind demo</h1><ul>")
	for _, href := range []string{"/users/42", "/docs/guide/start", "/about", "/about#team"} {
		b.WriteString("<li>")
		b.WriteString(router.LinkHTML(href, href))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// UserShow renders a user page from the captured :id segment.
func UserShow(p router.Props) string {
	tab := p.Query.Get("tab")
	if tab == "" {
		tab = "profile"
	}
	return fmt.Sprintf("<h1>user %s</h1><p>tab: %s</p>",
		html.EscapeString(p.Params["id"]), html.EscapeString(tab))
}

// Docs renders the documentation catch-all.
func Docs(router.Props) string {
	return "<h1>docs</h1>" + router.LinkHTML("/", "home")
}

// About renders the about page with a scroll target for "#team".
func About(p router.Props) string {
	return `<h1>about</h1><section id="team">the team</section>`
}

// NotFound is the fallback view.
func NotFound(router.Props) string {
	return "<h1>404</h1>" + router.LinkHTML("/", "back home")
}
