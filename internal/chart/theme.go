package chart

// Theme holds the colours, fonts and axis settings of the chart.
type Theme struct {
	Background string
	Paper      string
	Font       string
	Grid       string
	Star       string
	Text       string
	Width      int
	Height     int

	// RARange is reversed so that east is on the left, as on a sky map.
	RARange  [2]float64
	DecRange [2]float64
	RATick   float64
	DecTick  float64

	ConstellationLine  string
	ConstellationLabel string
	LabelFamily        string
}

// DefaultTheme is the dark sky theme.
func DefaultTheme() Theme {
	return Theme{
		Background: "#0B1426",
		Paper:      "#0B1426",
		Font:       "white",
		Grid:       "rgba(128,128,128,0.3)",
		Star:       "lightgray",
		Text:       "white",
		Width:      1200,
		Height:     800,

		RARange:  [2]float64{360, 0},
		DecRange: [2]float64{-90, 90},
		RATick:   30,
		DecTick:  30,

		ConstellationLine:  "rgba(128, 128, 128, 0.4)",
		ConstellationLabel: "rgba(200, 200, 200, 0.8)",
		LabelFamily:        "Arial Black",
	}
}

func (t Theme) layout() Layout {
	return Layout{
		Title: Title{Text: "Interactive Messier Sky Chart"},
		XAxis: Axis{
			Title:     Title{Text: "Right Ascension (degrees)"},
			Range:     t.RARange,
			DTick:     t.RATick,
			ShowGrid:  true,
			GridColor: t.Grid,
		},
		YAxis: Axis{
			Title:     Title{Text: "Declination (degrees)"},
			Range:     t.DecRange,
			DTick:     t.DecTick,
			ShowGrid:  true,
			GridColor: t.Grid,
		},
		PlotBGColor:  t.Background,
		PaperBGColor: t.Paper,
		Font:         Font{Color: t.Font},
		Legend:       Legend{YAnchor: "top", Y: 0.99, XAnchor: "left", X: 1.01},
		Width:        t.Width,
		Height:       t.Height,
	}
}
