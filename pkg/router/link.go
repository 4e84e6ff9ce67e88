package router

import (
	"html"
	"strings"
)

// Attr is a single HTML attribute emitted by the link helpers.
type Attr struct {
	Key   string
	Value string
}

// Link returns the attributes for an anchor that navigates client-side.
// The host intercepts activations of elements carrying data-link and
// calls Navigate instead of letting a full page load happen.
func Link(href string) []Attr {
	return []Attr{
		{Key: "href", Value: href},
		{Key: "data-link", Value: "true"},
	}
}

// ActiveLink is Link plus an active-class marker. The host applies
// activeClass when the current path matches href; exact controls
// whether the match must be exact or may be a prefix.
func ActiveLink(href, activeClass string, exact bool) []Attr {
	attrs := append(Link(href), Attr{Key: "data-active-class", Value: activeClass})
	if exact {
		attrs = append(attrs, Attr{Key: "data-active-exact", Value: "true"})
	}
	return attrs
}

// NavLink is ActiveLink with common defaults: the "active" class on an
// exact path match.
func NavLink(href string) []Attr {
	return ActiveLink(href, "active", true)
}

// LinkHTML renders a complete anchor element with the Link attributes.
// Convenience for string-rendering views.
func LinkHTML(href, text string) string {
	var b strings.Builder
	b.WriteString("<a")
	for _, attr := range Link(href) {
		b.WriteString(" ")
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attr.Value))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(html.EscapeString(text))
	b.WriteString("</a>")
	return b.String()
}
