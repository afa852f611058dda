package chart

import (
	"cmp"
	"slices"
	"strings"

	"github.com/couchcryptid/messier-skychart/internal/domain"
)

// Count is the number of objects sharing one value.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CountByType tallies objects per type, most common first.
func CountByType(objects []domain.CelestialObject) []Count {
	return countBy(objects, func(o domain.CelestialObject) string { return o.ObjectType })
}

// CountByConstellation tallies objects per constellation, most common first.
func CountByConstellation(objects []domain.CelestialObject) []Count {
	return countBy(objects, func(o domain.CelestialObject) string { return o.Constellation })
}

// countBy skips blank values. Ties are broken alphabetically.
func countBy(objects []domain.CelestialObject, field func(domain.CelestialObject) string) []Count {
	tally := make(map[string]int)
	for _, o := range objects {
		v := field(o)
		if strings.TrimSpace(v) == "" {
			continue
		}
		tally[v]++
	}
	out := make([]Count, 0, len(tally))
	for v, n := range tally {
		out = append(out, Count{Value: v, Count: n})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return out
}
