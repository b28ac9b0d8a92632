package request

import "strings"

// header is one parsed header field, preserving the name as received
// on the wire (for display / re-serialization) alongside its
// lowercased form (for fast case-insensitive comparisons).
type header struct {
	name     string
	nameLow  string
	value    string
}

// Headers is an ordered multi-insertion mapping from header name to
// header value. Lookups are case-insensitive; insertion order is
// preserved for serialization and for Values() iteration, matching the
// data model's requirement that two header names differing only in
// case are duplicates for uniqueness checks.
type Headers struct {
	items []header
}

// NewHeaders returns an empty Headers ready for use.
func NewHeaders() *Headers {
	return &Headers{}
}

// Add appends a (name, value) pair, preserving any existing entries
// under the same or differently-cased name.
func (h *Headers) Add(name, value string) {
	h.items = append(h.items, header{name: name, nameLow: strings.ToLower(name), value: value})
}

// Get returns the first value stored under name (case-insensitive), and
// whether any value was found.
func (h *Headers) Get(name string) (string, bool) {
	low := strings.ToLower(name)
	for _, it := range h.items {
		if it.nameLow == low {
			return it.value, true
		}
	}
	return "", false
}

// Values returns every value stored under name, in insertion order.
func (h *Headers) Values(name string) []string {
	low := strings.ToLower(name)
	var out []string
	for _, it := range h.items {
		if it.nameLow == low {
			out = append(out, it.value)
		}
	}
	return out
}

// Count returns how many entries are stored under name.
func (h *Headers) Count(name string) int {
	low := strings.ToLower(name)
	n := 0
	for _, it := range h.items {
		if it.nameLow == low {
			n++
		}
	}
	return n
}

// Len returns the total number of header fields (not distinct names).
func (h *Headers) Len() int { return len(h.items) }

// Range calls fn for every header field in insertion order. It stops
// early if fn returns false.
func (h *Headers) Range(fn func(name, value string) bool) {
	for _, it := range h.items {
		if !fn(it.name, it.value) {
			return
		}
	}
}
