package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleTable_Classify(t *testing.T) {
	table := DefaultStyleTable()

	tests := []struct {
		label string
		want  Category
	}{
		{"Spiral galaxy", Galaxy},
		{"Barred Spiral galaxy", Galaxy},
		{"GALAXY", Galaxy},
		{"Planetary nebula", Nebula},
		{"Nebula with cluster", Nebula},
		{"H II region nebula with cluster", Nebula},
		{"H II region nebula (part of the Orion Nebula)", Nebula},
		{"Globular cluster", Cluster},
		{"Milky Way star cloud", Cluster},
		{"Supernova remnant", Other},
		{"Optical Double", Other},
		{"Asterism", Other},
		{"Quasar", Other},
		{"", Other},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Classify(tt.label))
		})
	}
}

func TestStyleTable_Style(t *testing.T) {
	table := DefaultStyleTable()

	tests := []struct {
		label string
		want  StyleDescriptor
	}{
		{"Spiral galaxy", StyleDescriptor{Symbol: "circle", Color: "#FF6B6B", Size: 8, Category: Galaxy}},
		{"Elliptical galaxy", StyleDescriptor{Symbol: "circle-open", Color: "#FF8E8E", Size: 8, Category: Galaxy}},
		{"barred spiral GALAXY", StyleDescriptor{Symbol: "circle-cross", Color: "#FF4848", Size: 8, Category: Galaxy}},
		{"H II region nebula", StyleDescriptor{Symbol: "square-open", Color: "#E6B3E6", Size: 8, Category: Nebula}},
		{"H II region nebula with cluster", StyleDescriptor{Symbol: "square", Color: "#DDA0DD", Size: 8, Category: Nebula}},
		{"Open cluster", StyleDescriptor{Symbol: "star-open", Color: "#A8D4C1", Size: 8, Category: Cluster}},
		{"Asterism", StyleDescriptor{Symbol: "diamond-open", Color: "#FFE074", Size: 8, Category: Other}},
		// The Nebula variant is unreachable: the label classifies as Other.
		{"Supernova remnant", StyleDescriptor{Symbol: "diamond", Color: "#FFEAA7", Size: 8, Category: Other}},
		{"Ring galaxy", StyleDescriptor{Symbol: "circle", Color: "#FF6B6B", Size: 8, Category: Galaxy}},
		{"", StyleDescriptor{Symbol: "circle", Color: "#BDC3C7", Size: 6, Category: Other}},
		{"  ", StyleDescriptor{Symbol: "circle", Color: "#BDC3C7", Size: 6, Category: Other}},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Style(tt.label))
		})
	}
}

func TestStyleTable_KnownLabelsMatchComputed(t *testing.T) {
	precomputed := DefaultStyleTable()
	bare, err := NewStyleTable(DefaultStyleSpec())
	require.NoError(t, err)

	for _, label := range KnownObjectTypes {
		assert.Equal(t, bare.Style(label), precomputed.Style(label), label)
	}
}

func TestStyleTable_Categories(t *testing.T) {
	assert.Equal(t, []Category{Galaxy, Nebula, Cluster, Other}, DefaultStyleTable().Categories())
}

func TestNewStyleTable(t *testing.T) {
	base := CategorySpec{Name: "Stars", Symbol: "star", Color: "#FFFFFF", Keywords: []string{"star"}}

	t.Run("defaults applied", func(t *testing.T) {
		table, err := NewStyleTable(StyleSpec{Categories: []CategorySpec{
			base,
			{Name: "Misc", Symbol: "x", Color: "#000000"},
		}})
		require.NoError(t, err)
		assert.Equal(t, Category("Misc"), table.Classify("comet"))
		assert.Equal(t, 8, table.Style("double star").Size)
		assert.Equal(t, StyleDescriptor{Symbol: "circle", Color: "#BDC3C7", Size: 6, Category: "Misc"}, table.Style(""))
	})

	t.Run("variant overrides one field", func(t *testing.T) {
		c := base
		c.Variants = map[string]Variant{"Double Star": {Color: "#ABCDEF"}}
		table, err := NewStyleTable(StyleSpec{Categories: []CategorySpec{c}, MarkerSize: 10})
		require.NoError(t, err)

		got := table.Style("double star")
		assert.Equal(t, "star", got.Symbol)
		assert.Equal(t, "#ABCDEF", got.Color)
		assert.Equal(t, 10, got.Size)
	})

	t.Run("keyword order across categories", func(t *testing.T) {
		table, err := NewStyleTable(StyleSpec{Categories: []CategorySpec{
			{Name: "A", Symbol: "a", Color: "#1", Keywords: []string{"cluster"}},
			{Name: "B", Symbol: "b", Color: "#2", Keywords: []string{"nebula"}},
		}})
		require.NoError(t, err)
		assert.Equal(t, Category("A"), table.Classify("Nebula with cluster"))
	})

	errCases := []struct {
		name string
		spec StyleSpec
	}{
		{"no categories", StyleSpec{}},
		{"unnamed category", StyleSpec{Categories: []CategorySpec{{Symbol: "x", Color: "#1"}}}},
		{"duplicate category", StyleSpec{Categories: []CategorySpec{base, base}}},
		{"missing color", StyleSpec{Categories: []CategorySpec{{Name: "A", Symbol: "x"}}}},
		{"unknown default", StyleSpec{Categories: []CategorySpec{base}, Default: "Nope"}},
	}
	for _, tt := range errCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStyleTable(tt.spec)
			assert.ErrorIs(t, err, ErrInvalidStyleSpec)
		})
	}
}
