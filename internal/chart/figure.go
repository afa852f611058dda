package chart

// Figure is a Plotly figure document: the JSON accepted by Plotly.react.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is a scatter trace. Only the attributes the chart uses are modelled.
type Trace struct {
	Type             string            `json:"type"`
	Name             string            `json:"name"`
	Mode             string            `json:"mode"`
	X                []float64         `json:"x"`
	Y                []float64         `json:"y"`
	Text             []string          `json:"text,omitempty"`
	TextPosition     string            `json:"textposition,omitempty"`
	TextFont         *Font             `json:"textfont,omitempty"`
	Marker           *Marker           `json:"marker,omitempty"`
	Line             *Line             `json:"line,omitempty"`
	HoverInfo        string            `json:"hoverinfo,omitempty"`
	HoverTemplate    string            `json:"hovertemplate,omitempty"`
	CustomData       any               `json:"customdata,omitempty"`
	ShowLegend       bool              `json:"showlegend"`
	LegendGroup      string            `json:"legendgroup,omitempty"`
	LegendGroupTitle *LegendGroupTitle `json:"legendgrouptitle,omitempty"`
}

type Marker struct {
	Size   int    `json:"size"`
	Color  string `json:"color"`
	Symbol string `json:"symbol"`
	Line   *Line  `json:"line,omitempty"`
}

type Line struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

type Font struct {
	Size   int    `json:"size,omitempty"`
	Color  string `json:"color,omitempty"`
	Family string `json:"family,omitempty"`
}

type LegendGroupTitle struct {
	Text string `json:"text"`
}

type Title struct {
	Text string `json:"text"`
}

type Axis struct {
	Title     Title      `json:"title"`
	Range     [2]float64 `json:"range"`
	DTick     float64    `json:"dtick"`
	ShowGrid  bool       `json:"showgrid"`
	GridColor string     `json:"gridcolor"`
}

type Legend struct {
	YAnchor string  `json:"yanchor"`
	Y       float64 `json:"y"`
	XAnchor string  `json:"xanchor"`
	X       float64 `json:"x"`
}

type Layout struct {
	Title        Title  `json:"title"`
	XAxis        Axis   `json:"xaxis"`
	YAxis        Axis   `json:"yaxis"`
	PlotBGColor  string `json:"plot_bgcolor"`
	PaperBGColor string `json:"paper_bgcolor"`
	Font         Font   `json:"font"`
	Legend       Legend `json:"legend"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}
