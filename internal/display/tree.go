// Package display navigates the vendor's untyped "display tree" JSON.
//
// The tree is a UI-rendering structure of the shape
// pillars[].sections[].items[], where every item carries a "type"
// discriminator and a type-specific "content" payload. The upstream
// contract is an internal mobile-app API that changes without notice,
// so every accessor here tolerates missing keys, missing arrays and
// wrong types at any node and degrades to "not found" instead of
// failing.
package display

// Item is a single entry of a section's items list.
type Item map[string]any

// Type returns the item's discriminator tag, or "" when absent.
func (it Item) Type() string {
	s, _ := AsString(it["type"])
	return s
}

// Content returns the item's variant payload, or nil when absent.
func (it Item) Content() map[string]any {
	return AsMap(it["content"])
}

// AsMap returns v as an object, or nil when it is not one.
func AsMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// AsSlice returns v as an array, or nil when it is not one.
func AsSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// AsString returns v as a string.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsNumber returns v as a float64. JSON numbers decode to float64, so
// no other numeric types are considered.
func AsNumber(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// Dig follows a key path through nested objects, returning nil as
// soon as any step is missing or not an object.
func Dig(node any, keys ...string) any {
	cur := node
	for _, k := range keys {
		m := AsMap(cur)
		if m == nil {
			return nil
		}
		cur = m[k]
	}
	return cur
}

// String digs a key path and returns the string leaf.
func String(node any, keys ...string) (string, bool) {
	return AsString(Dig(node, keys...))
}

// Number digs a key path and returns the numeric leaf.
func Number(node any, keys ...string) (float64, bool) {
	return AsNumber(Dig(node, keys...))
}

// Pillars returns the tree's pillar objects.
func Pillars(tree map[string]any) []map[string]any {
	var out []map[string]any
	for _, p := range AsSlice(tree["pillars"]) {
		if m := AsMap(p); m != nil {
			out = append(out, m)
		}
	}
	return out
}

// PillarItems flattens sections[].items[] of every pillar whose type
// matches pillarType. An empty pillarType matches all pillars.
func PillarItems(tree map[string]any, pillarType string) []Item {
	var out []Item
	for _, p := range Pillars(tree) {
		if pillarType != "" {
			if typ, _ := AsString(p["type"]); typ != pillarType {
				continue
			}
		}
		for _, s := range AsSlice(p["sections"]) {
			for _, it := range AsSlice(AsMap(s)["items"]) {
				if m := AsMap(it); m != nil {
					out = append(out, Item(m))
				}
			}
		}
	}
	return out
}

// Items flattens the items of every pillar.
func Items(tree map[string]any) []Item {
	return PillarItems(tree, "")
}

// FindFirst returns the first item with the given discriminator.
func FindFirst(items []Item, itemType string) (Item, bool) {
	for _, it := range items {
		if it.Type() == itemType {
			return it, true
		}
	}
	return nil, false
}

// FindAll returns every item with the given discriminator.
func FindAll(items []Item, itemType string) []Item {
	var out []Item
	for _, it := range items {
		if it.Type() == itemType {
			out = append(out, it)
		}
	}
	return out
}

// FindTyped searches node recursively, depth first, for the first
// object whose "type" tag matches itemType. Items nest arbitrarily
// deep inside card content, so this is the only way to locate a
// nested card without assuming the surrounding shape.
func FindTyped(node any, itemType string) (Item, bool) {
	switch v := node.(type) {
	case map[string]any:
		if typ, _ := AsString(v["type"]); typ == itemType {
			return Item(v), true
		}
		for _, child := range v {
			if found, ok := FindTyped(child, itemType); ok {
				return found, true
			}
		}
	case []any:
		for _, child := range v {
			if found, ok := FindTyped(child, itemType); ok {
				return found, true
			}
		}
	}
	return nil, false
}
