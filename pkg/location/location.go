// Package location turns raw browser location components into the
// normalized form the router matches against.
//
// The package never returns an error from the parse path: malformed
// query strings decode best-effort and an unparseable fragment is the
// empty string. Navigation-path validation (the only place a caller can
// hand us something actively dangerous, like a full URL) is the one
// surface with sentinel errors.
package location

import (
	"errors"
	"net/url"
	"strings"
)

// Location is the normalized form of a browser location.
type Location struct {
	// Path is the canonical path, always rooted and without a trailing
	// slash (except for "/" itself).
	Path string

	// Query holds the decoded query parameters.
	Query Values

	// Fragment is the decoded hash fragment without the leading "#".
	// Empty means no fragment.
	Fragment string

	// Canonicalized reports that Path differs from the raw input, so the
	// caller should rewrite the visible URL in place (replace, not push)
	// before resolving routes against it.
	Canonicalized bool
}

// Navigation path validation errors.
var (
	ErrAbsoluteURL = errors.New("navigation path must be relative")
	ErrNotRooted   = errors.New("navigation path must start with /")
)

// Parse normalizes the three raw location components.
func Parse(rawPath, rawQuery, rawHash string) Location {
	path, changed := CanonicalPath(rawPath)
	return Location{
		Path:          path,
		Query:         ParseQuery(rawQuery),
		Fragment:      ParseFragment(rawHash),
		Canonicalized: changed,
	}
}

// CanonicalPath normalizes a raw path and reports whether it changed.
//
// Transformations applied:
//   - empty input becomes "/"
//   - a missing leading slash is added
//   - runs of slashes collapse to one
//   - "." segments are dropped, ".." segments pop their parent
//   - a single trailing slash is stripped (except for "/" itself)
//
// A ".." that would climb above the root degrades the whole path to "/"
// rather than failing; the router has nothing sensible to match against
// an escaping path anyway.
func CanonicalPath(raw string) (string, bool) {
	if raw == "" {
		return "/", true
	}

	path := raw
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}

	if strings.Contains(path, ".") {
		segments := strings.Split(path[1:], "/")
		kept := make([]string, 0, len(segments))
		for _, seg := range segments {
			switch seg {
			case ".":
				// drop
			case "..":
				if len(kept) == 0 {
					return "/", true
				}
				kept = kept[:len(kept)-1]
			default:
				kept = append(kept, seg)
			}
		}
		path = "/" + strings.Join(kept, "/")
	}

	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}

	return path, path != raw
}

// ParseFragment strips one leading "#" and percent-decodes the rest.
// An undecodable fragment yields "".
func ParseFragment(rawHash string) string {
	frag := strings.TrimPrefix(rawHash, "#")
	if frag == "" {
		return ""
	}
	decoded, err := url.PathUnescape(frag)
	if err != nil {
		return ""
	}
	return decoded
}

// SplitPathAndQuery splits a URL-ish string into path and query
// components. The query is returned without the leading "?".
func SplitPathAndQuery(input string) (path, query string) {
	path, query, _ = strings.Cut(input, "?")
	return path, query
}

// NormalizeNavPath validates and canonicalizes a navigation target.
// Absolute URLs are rejected to keep a stray href from turning a
// client-side navigation into an open redirect.
func NormalizeNavPath(path string) (string, error) {
	if strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "//") {
		return "", ErrAbsoluteURL
	}
	if !strings.HasPrefix(path, "/") {
		return "", ErrNotRooted
	}

	rawPath, query := SplitPathAndQuery(path)
	canonical, _ := CanonicalPath(rawPath)
	if query != "" {
		return canonical + "?" + query, nil
	}
	return canonical, nil
}
