package location

import "net/url"

// Values holds decoded query parameters.
// Each key maps to the values it appeared with, in order of appearance.
type Values map[string][]string

// Get returns the first value for the key, or "" if the key is absent.
func (v Values) Get(key string) string {
	if vs, ok := v[key]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// All returns every value recorded for the key, in appearance order.
func (v Values) All(key string) []string {
	return v[key]
}

// Has reports whether the key appeared in the query string at all.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// add appends a value, preserving the order duplicates arrived in.
func (v Values) add(key, value string) {
	v[key] = append(v[key], value)
}

// Encode serializes the values back into query-string form.
// Keys are emitted in sorted order, values in appearance order.
func (v Values) Encode() string {
	return url.Values(v).Encode()
}

// ParseQuery decodes a raw query string into Values.
// A leading "?" is tolerated. Decoding is best-effort: a key or value
// with a broken percent-escape is kept in its raw form rather than
// dropped, and parsing never fails.
func ParseQuery(rawQuery string) Values {
	values := make(Values)

	if len(rawQuery) > 0 && rawQuery[0] == '?' {
		rawQuery = rawQuery[1:]
	}
	if rawQuery == "" {
		return values
	}

	for _, pair := range splitPairs(rawQuery) {
		key, value, _ := cutPair(pair)
		if key == "" {
			continue
		}
		values.add(decodeComponent(key), decodeComponent(value))
	}

	return values
}

// splitPairs splits a query string on "&" and ";" separators.
func splitPairs(raw string) []string {
	var pairs []string
	start := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] == '&' || raw[i] == ';' {
			if i > start {
				pairs = append(pairs, raw[start:i])
			}
			start = i + 1
		}
	}
	if start < len(raw) {
		pairs = append(pairs, raw[start:])
	}
	return pairs
}

// cutPair splits "key=value" at the first "=".
// A pair with no "=" yields the key with an empty value.
func cutPair(pair string) (key, value string, found bool) {
	for i := 0; i < len(pair); i++ {
		if pair[i] == '=' {
			return pair[:i], pair[i+1:], true
		}
	}
	return pair, "", false
}

// decodeComponent percent-decodes a query component.
// "+" is treated as a space. If the escape sequence is malformed the
// raw input is returned unchanged.
func decodeComponent(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
