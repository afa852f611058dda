package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Category is a display grouping of object-type labels.
type Category string

const (
	Galaxy  Category = "Galaxy"
	Nebula  Category = "Nebula"
	Cluster Category = "Cluster"
	Other   Category = "Other"
)

// StyleDescriptor is the marker style for one object-type label.
type StyleDescriptor struct {
	Symbol   string   `json:"symbol"`
	Color    string   `json:"color"`
	Size     int      `json:"size"`
	Category Category `json:"category"`
}

// Variant overrides the base symbol and/or color of a category for a single
// label. Empty fields fall back to the category base.
type Variant struct {
	Symbol string
	Color  string
}

// CategorySpec describes one category: its base style, the keywords that
// select it, and per-label variants keyed case-insensitively.
type CategorySpec struct {
	Name     Category
	Symbol   string
	Color    string
	Keywords []string
	Variants map[string]Variant
}

// StyleSpec is the input to NewStyleTable. Categories are matched in order.
type StyleSpec struct {
	Categories []CategorySpec
	// Default is the category for labels no keyword matches. Empty means the
	// last category.
	Default Category
	// MarkerSize applies to every classified label. Zero means 8.
	MarkerSize int
	// Blank is the style for an empty label. Zero value means the built-in
	// grey circle.
	Blank StyleDescriptor
}

var ErrInvalidStyleSpec = errors.New("invalid style spec")

type categoryRule struct {
	name     Category
	symbol   string
	color    string
	keywords []string
	variants map[string]Variant
}

// StyleTable classifies object-type labels and resolves their marker style.
// It is immutable once built and safe for concurrent use.
type StyleTable struct {
	rules    []categoryRule
	byName   map[Category]int
	fallback Category
	size     int
	blank    StyleDescriptor
	known    map[string]StyleDescriptor
}

// NewStyleTable validates spec and builds a table. Styles for the known
// labels are computed up front.
func NewStyleTable(spec StyleSpec, known ...string) (*StyleTable, error) {
	if len(spec.Categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalidStyleSpec)
	}

	t := &StyleTable{
		rules:  make([]categoryRule, 0, len(spec.Categories)),
		byName: make(map[Category]int, len(spec.Categories)),
		size:   spec.MarkerSize,
		blank:  spec.Blank,
	}

	for _, c := range spec.Categories {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: category without a name", ErrInvalidStyleSpec)
		}
		if _, dup := t.byName[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidStyleSpec, c.Name)
		}
		if c.Symbol == "" || c.Color == "" {
			return nil, fmt.Errorf("%w: category %q needs a symbol and a color", ErrInvalidStyleSpec, c.Name)
		}

		rule := categoryRule{
			name:     c.Name,
			symbol:   c.Symbol,
			color:    c.Color,
			variants: make(map[string]Variant, len(c.Variants)),
		}
		for _, kw := range c.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				rule.keywords = append(rule.keywords, kw)
			}
		}
		for label, v := range c.Variants {
			rule.variants[strings.ToLower(strings.TrimSpace(label))] = v
		}

		t.byName[c.Name] = len(t.rules)
		t.rules = append(t.rules, rule)
	}

	t.fallback = spec.Default
	if t.fallback == "" {
		t.fallback = t.rules[len(t.rules)-1].name
	}
	if _, ok := t.byName[t.fallback]; !ok {
		return nil, fmt.Errorf("%w: default category %q is not defined", ErrInvalidStyleSpec, t.fallback)
	}

	if t.size <= 0 {
		t.size = 8
	}
	if t.blank == (StyleDescriptor{}) {
		t.blank = StyleDescriptor{Symbol: "circle", Color: "#BDC3C7", Size: 6, Category: t.fallback}
	}

	t.known = make(map[string]StyleDescriptor, len(known))
	for _, label := range known {
		t.known[label] = t.compute(label)
	}
	return t, nil
}

// Categories returns the category names in match order.
func (t *StyleTable) Categories() []Category {
	out := make([]Category, len(t.rules))
	for i, r := range t.rules {
		out[i] = r.name
	}
	return out
}

// Classify returns the first category whose keyword is a case-insensitive
// substring of label, or the default category.
func (t *StyleTable) Classify(label string) Category {
	lower := strings.ToLower(label)
	for _, r := range t.rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.name
			}
		}
	}
	return t.fallback
}

// Style returns the marker style for label.
func (t *StyleTable) Style(label string) StyleDescriptor {
	if strings.TrimSpace(label) == "" {
		return t.blank
	}
	if s, ok := t.known[label]; ok {
		return s
	}
	return t.compute(label)
}

func (t *StyleTable) compute(label string) StyleDescriptor {
	category := t.Classify(label)
	rule := t.rules[t.byName[category]]

	style := StyleDescriptor{
		Symbol:   rule.symbol,
		Color:    rule.color,
		Size:     t.size,
		Category: category,
	}
	if v, ok := rule.variants[strings.ToLower(label)]; ok {
		if v.Symbol != "" {
			style.Symbol = v.Symbol
		}
		if v.Color != "" {
			style.Color = v.Color
		}
	}
	return style
}

// KnownObjectTypes are the labels used by the Messier catalog export.
var KnownObjectTypes = []string{
	"Supernova remnant",
	"Globular cluster",
	"Open cluster",
	"Nebula with cluster",
	"H II region nebula with cluster",
	"Milky Way star cloud",
	"Planetary nebula",
	"Spiral galaxy",
	"Dwarf elliptical galaxy",
	"Optical Double",
	"H II region nebula",
	"H II region nebula (part of the Orion Nebula)",
	"Elliptical galaxy",
	"Barred Spiral galaxy",
	"Asterism",
	"Diffuse nebula",
	"Starburst galaxy",
	"Lenticular galaxy",
}

// DefaultStyleSpec returns the built-in categories and variants.
//
// Some variants can never apply: "supernova remnant" sits under Nebula but
// the label classifies as Other. They are kept so that a custom keyword list
// that does route the label there picks them up.
func DefaultStyleSpec() StyleSpec {
	return StyleSpec{
		Categories: []CategorySpec{
			{
				Name: Galaxy, Symbol: "circle", Color: "#FF6B6B",
				Keywords: []string{"galaxy"},
				Variants: map[string]Variant{
					"spiral galaxy":           {Symbol: "circle", Color: "#FF6B6B"},
					"elliptical galaxy":       {Symbol: "circle-open", Color: "#FF8E8E"},
					"dwarf elliptical galaxy": {Symbol: "circle-dot", Color: "#FFB1B1"},
					"barred spiral galaxy":    {Symbol: "circle-cross", Color: "#FF4848"},
					"lenticular galaxy":       {Symbol: "circle-x", Color: "#FFA0A0"},
					"starburst galaxy":        {Symbol: "circle", Color: "#FF2525"},
				},
			},
			{
				Name: Nebula, Symbol: "square", Color: "#DDA0DD",
				Keywords: []string{"nebula"},
				Variants: map[string]Variant{
					"planetary nebula":    {Symbol: "square", Color: "#DDA0DD"},
					"h ii region nebula":  {Symbol: "square-open", Color: "#E6B3E6"},
					"diffuse nebula":      {Symbol: "square-dot", Color: "#F0C6F0"},
					"nebula with cluster": {Symbol: "square-cross", Color: "#D187D1"},
					"supernova remnant":   {Symbol: "triangle-up", Color: "#C66EC6"},
				},
			},
			{
				Name: Cluster, Symbol: "star", Color: "#96CEB4",
				Keywords: []string{"cluster", "cloud"},
				Variants: map[string]Variant{
					"globular cluster":     {Symbol: "star", Color: "#96CEB4"},
					"open cluster":         {Symbol: "star-open", Color: "#A8D4C1"},
					"milky way star cloud": {Symbol: "star-dot", Color: "#BCDACF"},
				},
			},
			{
				Name: Other, Symbol: "diamond", Color: "#FFEAA7",
				Variants: map[string]Variant{
					"optical double": {Symbol: "diamond", Color: "#FFEAA7"},
					"asterism":       {Symbol: "diamond-open", Color: "#FFE074"},
				},
			},
		},
		Default:    Other,
		MarkerSize: 8,
		Blank:      StyleDescriptor{Symbol: "circle", Color: "#BDC3C7", Size: 6, Category: Other},
	}
}

// DefaultStyleTable builds the built-in table with the catalog labels
// precomputed.
func DefaultStyleTable() *StyleTable {
	t, err := NewStyleTable(DefaultStyleSpec(), KnownObjectTypes...)
	if err != nil {
		panic(err)
	}
	return t
}
