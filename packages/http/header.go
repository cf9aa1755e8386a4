package http

import "strings"

// HeaderEntry is a single name/value pair of a Header.
type HeaderEntry struct {
	Name  string
	Value string
}

// Header is a multi-map of header names to values that keeps insertion order.
// Names are stored exactly as given.
type Header struct {
	entries []HeaderEntry
}

// NewHeader builds a Header from name/value pairs. A trailing name without a
// value is ignored.
func NewHeader(pairs ...string) Header {
	var h Header
	for i := 0; i+1 < len(pairs); i += 2 {
		h.Add(pairs[i], pairs[i+1])
	}
	return h
}

// Add appends a value for name.
func (h *Header) Add(name, value string) {
	h.entries = append(h.entries, HeaderEntry{Name: name, Value: value})
}

// Set replaces every value stored under name with value. The new entry takes
// the position of the first existing one, or is appended.
func (h *Header) Set(name, value string) {
	idx := -1
	kept := make([]HeaderEntry, 0, len(h.entries))
	for _, e := range h.entries {
		if e.Name == name {
			if idx < 0 {
				idx = len(kept)
				kept = append(kept, HeaderEntry{Name: name, Value: value})
			}
			continue
		}
		kept = append(kept, e)
	}
	h.entries = kept
	if idx < 0 {
		h.Add(name, value)
	}
}

// Del removes every value stored under name.
func (h *Header) Del(name string) {
	kept := make([]HeaderEntry, 0, len(h.entries))
	for _, e := range h.entries {
		if e.Name != name {
			kept = append(kept, e)
		}
	}
	h.entries = kept
}

// Get returns the first value whose name matches case-insensitively.
func (h Header) Get(name string) string {
	for _, e := range h.entries {
		if strings.EqualFold(e.Name, name) {
			return e.Value
		}
	}
	return ""
}

// Values returns all values whose name matches case-insensitively.
func (h Header) Values(name string) []string {
	var out []string
	for _, e := range h.entries {
		if strings.EqualFold(e.Name, name) {
			out = append(out, e.Value)
		}
	}
	return out
}

// Entries returns a copy of the entries in insertion order.
func (h Header) Entries() []HeaderEntry {
	return append([]HeaderEntry(nil), h.entries...)
}

func (h Header) Len() int {
	return len(h.entries)
}

func (h Header) Clone() Header {
	return Header{entries: h.Entries()}
}
