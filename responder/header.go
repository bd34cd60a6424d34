package responder

import (
	"net/http"
	"sort"
	"strings"
)

// Field is a single header name/value pair.
type Field struct {
	Name  string
	Value string
}

// Header is an ordered collection of header fields. Names are
// compared case-insensitively, values are kept as received.
type Header []Field

// Get returns the value of the first field matching name.
func (h Header) Get(name string) (string, bool) {
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}

	return "", false
}

// Has reports whether a field matching name is present.
func (h Header) Has(name string) bool {
	_, ok := h.Get(name)
	return ok
}

// Without returns a copy of h that omits every field whose name
// matches one of names. The relative order of the remaining fields
// is preserved.
func (h Header) Without(names ...string) Header {
	out := make(Header, 0, len(h))

	for _, f := range h {
		if matchesAny(f.Name, names) {
			continue
		}
		out = append(out, f)
	}

	return out
}

// HTTP converts the collection into a http.Header. Keys are
// canonicalized by net/http, values keep their order per key.
func (h Header) HTTP() http.Header {
	out := make(http.Header, len(h))
	for _, f := range h {
		out.Add(f.Name, f.Value)
	}
	return out
}

// FromHTTP converts a http.Header into an ordered collection.
//
// http.Header does not retain the order of distinct names, so keys
// are emitted in sorted order to keep the result deterministic.
// Values of a repeated name keep the order they were received in.
func FromHTTP(src http.Header) Header {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Header, 0, len(src))
	for _, k := range keys {
		for _, v := range src[k] {
			out = append(out, Field{Name: k, Value: v})
		}
	}

	return out
}

func matchesAny(name string, names []string) bool {
	for _, n := range names {
		if strings.EqualFold(name, n) {
			return true
		}
	}
	return false
}
