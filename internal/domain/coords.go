package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Axis names the coordinate a ParseError refers to.
type Axis string

const (
	AxisRA  Axis = "ra"
	AxisDec Axis = "dec"
)

var (
	ErrEmptyCoordinate     = errors.New("empty coordinate")
	ErrMalformedCoordinate = errors.New("malformed coordinate")
	ErrCoordinateRange     = errors.New("coordinate out of range")
)

// ParseError describes coordinate text that could not be converted.
type ParseError struct {
	Axis  Axis
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Axis, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

const unicodeMinus = "−"

var (
	// raGlyphs turns "05h 34m 31.9s" into space separated components.
	raGlyphs = strings.NewReplacer("h", " ", "m", " ", "s", " ")

	// numericSeparators covers the fallback forms "05:34:31.9" and "05 34 31.9".
	numericSeparators = strings.NewReplacer(":", " ")

	decGlyphs = strings.NewReplacer(
		"°", " ", "′", " ", "″", " ",
		"'", " ", "\"", " ",
		"d", " ", "m", " ", "s", " ",
		":", " ",
	)
)

// ParseRA converts right ascension text to decimal degrees in [0,360).
func ParseRA(s string) (float64, error) {
	text := strings.ToLower(strings.TrimSpace(s))
	if text == "" {
		return 0, &ParseError{Axis: AxisRA, Input: s, Err: ErrEmptyCoordinate}
	}

	var fields []string
	if strings.Contains(text, "h") && strings.Contains(text, "m") {
		fields = strings.Fields(raGlyphs.Replace(text))
	} else {
		fields = strings.Fields(numericSeparators.Replace(text))
	}

	parts, err := sexagesimal(fields)
	if err != nil {
		return 0, &ParseError{Axis: AxisRA, Input: s, Err: err}
	}
	if parts[0] >= 24 {
		return 0, &ParseError{Axis: AxisRA, Input: s, Err: ErrCoordinateRange}
	}

	hours := parts[0] + parts[1]/60 + parts[2]/3600
	return hours * 15, nil
}

// ParseDec converts declination text to signed decimal degrees in [-90,90].
func ParseDec(s string) (float64, error) {
	text := strings.ToLower(strings.TrimSpace(s))
	if text == "" {
		return 0, &ParseError{Axis: AxisDec, Input: s, Err: ErrEmptyCoordinate}
	}

	sign := 1.0
	switch {
	case strings.HasPrefix(text, unicodeMinus):
		sign = -1
		text = text[len(unicodeMinus):]
	case strings.HasPrefix(text, "-"):
		sign = -1
		text = text[1:]
	case strings.HasPrefix(text, "+"):
		text = text[1:]
	}

	parts, err := sexagesimal(strings.Fields(decGlyphs.Replace(text)))
	if err != nil {
		return 0, &ParseError{Axis: AxisDec, Input: s, Err: err}
	}

	deg := parts[0] + parts[1]/60 + parts[2]/3600
	if deg > 90 {
		return 0, &ParseError{Axis: AxisDec, Input: s, Err: ErrCoordinateRange}
	}
	if deg == 0 {
		return 0, nil
	}
	return sign * deg, nil
}

// sexagesimal parses one to three unsigned components. Missing trailing
// components are zero.
func sexagesimal(fields []string) ([3]float64, error) {
	var parts [3]float64
	if len(fields) == 0 || len(fields) > 3 {
		return parts, ErrMalformedCoordinate
	}
	for i, f := range fields {
		if strings.HasPrefix(f, "-") || strings.HasPrefix(f, "+") {
			return parts, ErrMalformedCoordinate
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return parts, ErrMalformedCoordinate
		}
		parts[i] = v
	}
	if parts[1] >= 60 || parts[2] >= 60 {
		return parts, ErrCoordinateRange
	}
	return parts, nil
}

// FormatRA renders decimal degrees as "HHh MMm SS.Ss", rounded to a tenth
// of a second of time.
func FormatRA(deg float64) string {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}

	const tenthsPerHour = 36000
	tenths := int64(math.Round(deg / 15 * tenthsPerHour))
	tenths %= 24 * tenthsPerHour

	h := tenths / tenthsPerHour
	rem := tenths % tenthsPerHour
	m := rem / 600
	t := rem % 600
	return fmt.Sprintf("%02dh %02dm %02d.%ds", h, m, t/10, t%10)
}

// FormatDec renders decimal degrees as "+DD° MM′ SS.S″", rounded to a tenth
// of an arcsecond.
func FormatDec(deg float64) string {
	sign := '+'
	if deg < 0 {
		sign = '-'
		deg = -deg
	}

	const tenthsPerDegree = 36000
	tenths := int64(math.Round(deg * tenthsPerDegree))

	d := tenths / tenthsPerDegree
	rem := tenths % tenthsPerDegree
	m := rem / 600
	t := rem % 600
	return fmt.Sprintf("%c%02d° %02d′ %02d.%d″", sign, d, m, t/10, t%10)
}
