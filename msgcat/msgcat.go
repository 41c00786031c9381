// Package msgcat holds the closed, numbered message taxonomies used by the
// response envelope: error codes in the 10000 range and success codes in the
// 20000 range. Every entry is registered once at package initialization and
// looked up by numeric code; there is no reflection involved.
package msgcat

import (
	"fmt"
	"strconv"
)

// Category groups messages by the concern that produces them.
type Category string

const (
	CategoryDatabase   Category = "database"
	CategoryValidation Category = "validation"
	CategoryBusiness   Category = "business"
	CategoryAuth       Category = "auth"
	CategoryExternal   Category = "external"
	CategoryFile       Category = "file"
	CategorySystem     Category = "system"
	CategorySuccess    Category = "success"
)

// Message is a single catalog entry: a stable numeric code plus its display
// string, independent of whatever runtime error triggered it.
type Message struct {
	Code     int
	Text     string
	Category Category
}

// CodeString returns the numeric code in its wire form, e.g. "10101".
func (m Message) CodeString() string {
	return strconv.Itoa(m.Code)
}

func (m Message) String() string {
	return fmt.Sprintf("%d: %s", m.Code, m.Text)
}

// catalog maps every registered code to its entry.
var catalog = make(map[int]Message) //nolint:gochecknoglobals // built once at init, read-only afterwards

func register(code int, text string, cat Category) Message {
	if _, dup := catalog[code]; dup {
		panic(fmt.Sprintf("msgcat: duplicate code %d", code))
	}
	m := Message{Code: code, Text: text, Category: cat}
	catalog[code] = m
	return m
}

// Lookup returns the catalog entry for a code.
func Lookup(code int) (Message, bool) {
	m, ok := catalog[code]
	return m, ok
}

// All returns a copy of the full catalog. Intended for diagnostics and tests.
func All() map[int]Message {
	out := make(map[int]Message, len(catalog))
	for k, v := range catalog {
		out[k] = v
	}
	return out
}
