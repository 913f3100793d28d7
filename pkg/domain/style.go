package domain

import (
	"sort"
	"strings"
	"unicode"
)

const (
	// AutoStyle resolves to the value a property holds once the pending state change is applied.
	AutoStyle = "*"
	// PreStyle resolves to the value a property held right before the state change was applied.
	PreStyle = "!"
)

// StyleMap maps CSS property names (kebab-case) to values.
type StyleMap map[string]string

// NewStyleMap builds a StyleMap, normalizing property names.
func NewStyleMap(values map[string]string) StyleMap {
	s := make(StyleMap, len(values))
	for k, v := range values {
		s[NormalizeProperty(k)] = strings.TrimSpace(v)
	}
	return s
}

// Clone returns a shallow copy. A nil map clones to an empty map.
func (s StyleMap) Clone() StyleMap {
	out := make(StyleMap, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge returns a copy of s overlaid with other.
func (s StyleMap) Merge(other StyleMap) StyleMap {
	out := s.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Fill copies the entries of other whose keys are absent from s, in place.
func (s StyleMap) Fill(other StyleMap) {
	for k, v := range other {
		if _, ok := s[k]; !ok {
			s[k] = v
		}
	}
}

// Keys returns the property names in sorted order.
func (s StyleMap) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Concrete returns the entries that are not wildcard tokens.
func (s StyleMap) Concrete() StyleMap {
	out := make(StyleMap, len(s))
	for k, v := range s {
		if !IsWildcard(v) {
			out[k] = v
		}
	}
	return out
}

// Equal reports whether both maps hold the same entries.
func (s StyleMap) Equal(other StyleMap) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// String renders the map as an inline style declaration list, sorted by property.
func (s StyleMap) String() string {
	var b strings.Builder
	for i, k := range s.Keys() {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(s[k])
		b.WriteString(";")
	}
	return b.String()
}

// IsWildcard reports whether v is one of the wildcard tokens.
func IsWildcard(v string) bool {
	return v == AutoStyle || v == PreStyle
}

// NormalizeProperty converts camelCase property names (lineHeight) to CSS kebab-case
// (line-height). Custom properties (--foo) and already kebab-cased names pass through.
func NormalizeProperty(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "--") {
		return name
	}
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
