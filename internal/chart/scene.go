package chart

import (
	"fmt"
	"slices"
	"strings"

	"github.com/couchcryptid/messier-skychart/internal/domain"
)

// LayerKind identifies one of the chart's drawing layers.
type LayerKind string

// Layers are drawn in declaration order.
const (
	LayerConstellationLines  LayerKind = "constellation_lines"
	LayerBrightStars         LayerKind = "bright_stars"
	LayerConstellationLabels LayerKind = "constellation_labels"
	LayerObjects             LayerKind = "objects"
)

const (
	starHoverTemplate = "<b>%{customdata[0]}</b><br>Constellation: %{customdata[1]}<br>" +
		"RA: %{x:.1f}°<br>Dec: %{y:.1f}°<br>Mag: %{customdata[2]:.1f}<extra></extra>"
	labelHoverTemplate  = "%{customdata}<extra></extra>"
	objectHoverTemplate = "<b>%{text}</b><br>" +
		"Name: %{customdata[0]}<br>" +
		"Type: %{customdata[1]}<br>" +
		"Constellation: %{customdata[2]}<br>" +
		"Magnitude: %{customdata[3]}<br>" +
		"Distance: %{customdata[4]} kly<br>" +
		"Best Viewing: %{customdata[5]}<br>" +
		"RA: %{x:.1f}°<br>Dec: %{y:.1f}°<extra></extra>"
)

// Layer is a group of traces of the same kind.
type Layer struct {
	Kind   LayerKind
	Traces []Trace
}

// Scene is an assembled chart before flattening into a Figure.
type Scene struct {
	Layers []Layer
	Layout Layout
}

// Figure flattens the layers, bottom layer first.
func (s Scene) Figure() Figure {
	var n int
	for _, l := range s.Layers {
		n += len(l.Traces)
	}
	data := make([]Trace, 0, n)
	for _, l := range s.Layers {
		data = append(data, l.Traces...)
	}
	return Figure{Data: data, Layout: s.Layout}
}

// Layer returns the layer of the given kind, if it was drawn.
func (s Scene) Layer(kind LayerKind) (Layer, bool) {
	for _, l := range s.Layers {
		if l.Kind == kind {
			return l, true
		}
	}
	return Layer{}, false
}

// Options are the display toggles. Bright stars are always drawn; only their
// labels can be hidden.
type Options struct {
	ShowStarLabels          bool `json:"show_star_labels"`
	ShowConstellationLines  bool `json:"show_constellation_lines"`
	ShowConstellationLabels bool `json:"show_constellation_labels"`
}

// DefaultOptions turns every overlay on.
func DefaultOptions() Options {
	return Options{ShowStarLabels: true, ShowConstellationLines: true, ShowConstellationLabels: true}
}

func (o Options) key() string {
	return fmt.Sprintf("%t,%t,%t", o.ShowStarLabels, o.ShowConstellationLines, o.ShowConstellationLabels)
}

// Assembler turns catalog objects and the reference overlays into a Scene.
// It holds no mutable state and is safe for concurrent use.
type Assembler struct {
	styles   *domain.StyleTable
	theme    Theme
	patterns []domain.ConstellationPattern
	stars    []domain.BrightStar
}

// NewAssembler creates an assembler using the built-in reference data and
// the default theme.
func NewAssembler(styles *domain.StyleTable) *Assembler {
	return &Assembler{
		styles:   styles,
		theme:    DefaultTheme(),
		patterns: domain.Constellations(),
		stars:    domain.BrightStars(),
	}
}

// WithTheme returns a copy of a using theme t.
func (a *Assembler) WithTheme(t Theme) *Assembler {
	cp := *a
	cp.theme = t
	return &cp
}

// Build assembles the scene for objects, which are expected to be already
// filtered. Objects without valid coordinates or without a type are skipped.
func (a *Assembler) Build(objects []domain.CelestialObject, opts Options) Scene {
	var layers []Layer
	if opts.ShowConstellationLines {
		layers = append(layers, Layer{Kind: LayerConstellationLines, Traces: a.lineTraces()})
	}
	layers = append(layers, Layer{Kind: LayerBrightStars, Traces: []Trace{a.starTrace(opts.ShowStarLabels)}})
	if opts.ShowConstellationLabels {
		layers = append(layers, Layer{Kind: LayerConstellationLabels, Traces: []Trace{a.labelTrace()}})
	}
	layers = append(layers, Layer{Kind: LayerObjects, Traces: a.objectTraces(objects)})

	return Scene{Layers: layers, Layout: a.theme.layout()}
}

func (a *Assembler) lineTraces() []Trace {
	var traces []Trace
	for _, p := range a.patterns {
		for _, seg := range p.Lines {
			t := Trace{
				Type:      "scatter",
				Name:      p.Name + " lines",
				Mode:      "lines",
				X:         make([]float64, len(seg)),
				Y:         make([]float64, len(seg)),
				Line:      &Line{Color: a.theme.ConstellationLine, Width: 1},
				HoverInfo: "skip",
			}
			for i, pt := range seg {
				t.X[i], t.Y[i] = pt.RA, pt.Dec
			}
			traces = append(traces, t)
		}
	}
	return traces
}

func (a *Assembler) starTrace(labels bool) Trace {
	t := Trace{
		Type:          "scatter",
		Name:          "Bright Stars",
		Mode:          "markers",
		X:             make([]float64, len(a.stars)),
		Y:             make([]float64, len(a.stars)),
		Marker:        &Marker{Size: 4, Color: a.theme.Star, Symbol: "star"},
		HoverTemplate: starHoverTemplate,
	}
	data := make([][]any, len(a.stars))
	for i, s := range a.stars {
		t.X[i], t.Y[i] = s.RA, s.Dec
		data[i] = []any{s.Name, s.Constellation, s.Magnitude}
	}
	t.CustomData = data

	if labels {
		t.Mode = "markers+text"
		t.Text = make([]string, len(a.stars))
		for i, s := range a.stars {
			t.Text[i] = s.Name
		}
		t.TextPosition = "top center"
		t.TextFont = &Font{Size: 6, Color: a.theme.Star}
	}
	return t
}

func (a *Assembler) labelTrace() Trace {
	t := Trace{
		Type:          "scatter",
		Name:          "Constellation Labels",
		Mode:          "text",
		X:             make([]float64, len(a.patterns)),
		Y:             make([]float64, len(a.patterns)),
		Text:          make([]string, len(a.patterns)),
		TextPosition:  "middle center",
		TextFont:      &Font{Size: 12, Color: a.theme.ConstellationLabel, Family: a.theme.LabelFamily},
		HoverTemplate: labelHoverTemplate,
	}
	hover := make([]string, len(a.patterns))
	for i, p := range a.patterns {
		t.X[i], t.Y[i] = p.LabelPos.RA, p.LabelPos.Dec
		t.Text[i] = p.Name
		hover[i] = fmt.Sprintf("<b>%s</b><br>%d Messier objects", p.Name, p.MessierCount())
	}
	t.CustomData = hover
	return t
}

// objectTraces emits one trace per object type, grouped by category in the
// style table's order and sorted by type within a category.
func (a *Assembler) objectTraces(objects []domain.CelestialObject) []Trace {
	byType := make(map[string][]domain.CelestialObject)
	for _, o := range objects {
		if !o.Coords.Valid || strings.TrimSpace(o.ObjectType) == "" {
			continue
		}
		byType[o.ObjectType] = append(byType[o.ObjectType], o)
	}

	byCategory := make(map[domain.Category][]string)
	for label := range byType {
		c := a.styles.Classify(label)
		byCategory[c] = append(byCategory[c], label)
	}

	var traces []Trace
	for _, c := range a.styles.Categories() {
		labels := byCategory[c]
		slices.Sort(labels)
		for _, label := range labels {
			traces = append(traces, a.objectTrace(label, c, byType[label]))
		}
	}
	return traces
}

func (a *Assembler) objectTrace(label string, c domain.Category, objects []domain.CelestialObject) Trace {
	style := a.styles.Style(label)
	t := Trace{
		Type:         "scatter",
		Name:         label,
		Mode:         "markers+text",
		X:            make([]float64, len(objects)),
		Y:            make([]float64, len(objects)),
		Text:         make([]string, len(objects)),
		TextPosition: "top center",
		TextFont:     &Font{Size: 8, Color: a.theme.Text},
		Marker: &Marker{
			Size:   style.Size,
			Color:  style.Color,
			Symbol: style.Symbol,
			Line:   &Line{Color: "white", Width: 1},
		},
		HoverTemplate:    objectHoverTemplate,
		ShowLegend:       true,
		LegendGroup:      string(c),
		LegendGroupTitle: &LegendGroupTitle{Text: string(c)},
	}
	data := make([][]any, len(objects))
	for i, o := range objects {
		t.X[i], t.Y[i] = o.Coords.RA, o.Coords.Dec
		t.Text[i] = o.MessierID
		data[i] = []any{o.CommonName, o.ObjectType, o.Constellation, optional(o.Magnitude), optional(o.DistanceKly), o.Season}
	}
	t.CustomData = data
	return t
}

// optional maps a missing value to JSON null.
func optional(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
