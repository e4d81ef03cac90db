package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Item is an opaque search hit as returned by the provider.
// The core only reads it for display and passes it through unchanged.
type Item map[string]any

// ID returns the provider object id, falling back to an "id" field
func (it Item) ID() string {
	if v, ok := it["objectID"]; ok {
		return stringify(v)
	}
	if v, ok := it["id"]; ok {
		return stringify(v)
	}
	return ""
}

// Name returns the display name of the hit
func (it Item) Name() string {
	if v, ok := it["name"]; ok {
		return stringify(v)
	}
	return ""
}

// Price returns the price as text when the hit carries a numeric
// or numeric-string price
func (it Item) Price() (string, bool) {
	v, ok := it["price"]
	if !ok || v == nil {
		return "", false
	}

	var text string
	switch p := v.(type) {
	case json.Number:
		text = p.String()
	case float64:
		text = strconv.FormatFloat(p, 'f', -1, 64)
	case float32:
		text = strconv.FormatFloat(float64(p), 'f', -1, 32)
	case int:
		text = strconv.Itoa(p)
	case int64:
		text = strconv.FormatInt(p, 10)
	case string:
		text = strings.TrimSpace(p)
	default:
		return "", false
	}

	if text == "" {
		return "", false
	}
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return "", false
	}
	return text, true
}

// HighlightedName returns the provider's highlight markup for the name
// attribute (matched words wrapped in <em> tags), if present
func (it Item) HighlightedName() (string, bool) {
	hr, ok := it["_highlightResult"].(map[string]any)
	if !ok {
		return "", false
	}
	name, ok := hr["name"].(map[string]any)
	if !ok {
		return "", false
	}
	value, ok := name["value"].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}

// ResultSet is one category's hits for one query.
// A new set replaces the previous one wholesale.
type ResultSet struct {
	Category string
	Query    string
	Items    []Item
	Err      error // provider failure; Items is empty when set
}

// Len returns the number of items in the set
func (rs ResultSet) Len() int {
	return len(rs.Items)
}

// Selection is a confirmed pick: the unmodified item and the name of
// the category whose result set contained it
type Selection struct {
	Item     Item
	Category string
}
