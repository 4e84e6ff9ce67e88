package router

import "strings"

// Match evaluates the table in declaration order against a canonical
// path and returns the first structural match. Later patterns that
// would also match are never consulted; there is no specificity score.
func Match(path string, table Table) (MatchResult, bool) {
	for _, route := range table {
		if params, ok := matchPattern(route.Pattern, path); ok {
			return MatchResult{
				Pattern: route.Pattern,
				View:    route.View,
				Params:  params,
			}, true
		}
	}
	return MatchResult{}, false
}

// matchPattern applies the rule for the pattern's shape:
//
//  1. Root "/" matches only the root path.
//  2. A pattern with ":name" segments matches segment-wise with equal
//     segment counts, capturing dynamic values.
//  3. A trailing "/*" matches its base exactly or any path below it.
//  4. Anything else matches character-equal, tolerating one trailing
//     "/" on the pattern.
func matchPattern(pattern, path string) (map[string]string, bool) {
	switch {
	case pattern == "/":
		return nil, path == "/"

	case isDynamic(pattern):
		return matchDynamic(pattern, path)

	case strings.HasSuffix(pattern, "/*"):
		base := strings.TrimSuffix(pattern, "/*")
		if !strings.HasPrefix(path, base) {
			return nil, false
		}
		// "/docs/*" covers "/docs" and "/docs/a/b" but not
		// "/documentation": the next character must be a boundary.
		if len(path) == len(base) || path[len(base)] == '/' {
			return nil, true
		}
		return nil, false

	default:
		if strings.HasSuffix(pattern, "/") {
			return nil, path == strings.TrimSuffix(pattern, "/")
		}
		return nil, path == pattern
	}
}

// matchDynamic matches a pattern containing ":name" segments.
// Both sides split into non-empty "/"-delimited segments; counts must
// be equal. Captured values are the raw path segments.
func matchDynamic(pattern, path string) (map[string]string, bool) {
	patSegs := splitSegments(pattern)
	pathSegs := splitSegments(path)
	if len(patSegs) != len(pathSegs) {
		return nil, false
	}

	params := make(map[string]string)
	for i, seg := range patSegs {
		if strings.HasPrefix(seg, ":") {
			params[seg[1:]] = pathSegs[i]
			continue
		}
		if seg != pathSegs[i] {
			return nil, false
		}
	}
	return params, true
}

// isDynamic reports whether any segment of the pattern is a ":name"
// dynamic segment.
func isDynamic(pattern string) bool {
	for _, seg := range splitSegments(pattern) {
		if strings.HasPrefix(seg, ":") {
			return true
		}
	}
	return false
}

// splitSegments splits a path into its non-empty segments.
func splitSegments(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
