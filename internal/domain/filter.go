package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Selection is the set of checked values per filter. A nil slice selects
// everything; an empty non-nil slice selects nothing.
type Selection struct {
	Types          []string `json:"types"`
	Constellations []string `json:"constellations"`
	Seasons        []string `json:"seasons"`
}

// SelectAll is the selection a fresh dashboard starts with.
var SelectAll = Selection{}

// Key is a canonical string for the selection, stable under reordering.
func (s Selection) Key() string {
	return strings.Join([]string{setKey(s.Types), setKey(s.Constellations), setKey(s.Seasons)}, "|")
}

func setKey(values []string) string {
	if values == nil {
		return "*"
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	return fmt.Sprintf("%d:%s", len(sorted), strings.Join(sorted, "\x1f"))
}

type matcher map[string]struct{}

func newMatcher(values []string) matcher {
	if values == nil {
		return nil
	}
	m := make(matcher, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

func (m matcher) match(v string) bool {
	if m == nil {
		return true
	}
	_, ok := m[v]
	return ok
}

// Filter returns the objects whose type, constellation and season are all
// selected. Order is preserved.
func Filter(objects []CelestialObject, sel Selection) []CelestialObject {
	types := newMatcher(sel.Types)
	constellations := newMatcher(sel.Constellations)
	seasons := newMatcher(sel.Seasons)

	out := make([]CelestialObject, 0, len(objects))
	for _, o := range objects {
		if types.match(o.ObjectType) && constellations.match(o.Constellation) && seasons.match(o.Season) {
			out = append(out, o)
		}
	}
	return out
}

// CategoryTypes is the object-type labels present for one category.
type CategoryTypes struct {
	Category Category `json:"category"`
	Types    []string `json:"types"`
}

// FilterOptions are the distinct values offered by the dashboard checklists.
type FilterOptions struct {
	// ObjectTypes is ordered by category, then alphabetically.
	ObjectTypes           []string        `json:"object_types"`
	ObjectTypesByCategory []CategoryTypes `json:"object_types_by_category"`
	Constellations        []string        `json:"constellations"`
	Seasons               []string        `json:"seasons"`
}

// BuildFilterOptions collects the distinct non-blank values of objects.
// Categories without any label are omitted.
func BuildFilterOptions(objects []CelestialObject, styles *StyleTable) FilterOptions {
	types := distinct(objects, func(o CelestialObject) string { return o.ObjectType })

	grouped := make(map[Category][]string)
	for _, t := range types {
		c := styles.Classify(t)
		grouped[c] = append(grouped[c], t)
	}

	opts := FilterOptions{
		ObjectTypes:           []string{},
		ObjectTypesByCategory: []CategoryTypes{},
		Constellations:        distinct(objects, func(o CelestialObject) string { return o.Constellation }),
		Seasons:               distinct(objects, func(o CelestialObject) string { return o.Season }),
	}
	for _, c := range styles.Categories() {
		labels, ok := grouped[c]
		if !ok {
			continue
		}
		opts.ObjectTypes = append(opts.ObjectTypes, labels...)
		opts.ObjectTypesByCategory = append(opts.ObjectTypesByCategory, CategoryTypes{Category: c, Types: labels})
	}
	return opts
}

func distinct(objects []CelestialObject, field func(CelestialObject) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, o := range objects {
		v := field(o)
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// CountSummary is the status line shown above the chart.
func CountSummary(shown, total int) string {
	return fmt.Sprintf("Showing %d of %d objects", shown, total)
}
