// Package styles loads marker style tables from TOML, YAML or JSON files.
package styles

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/messier-skychart/internal/domain"
)

var ErrUnknownFormat = errors.New("unknown style file format")

type variantFile struct {
	Symbol string `toml:"symbol" yaml:"symbol" json:"symbol"`
	Color  string `toml:"color" yaml:"color" json:"color"`
}

type categoryFile struct {
	Name     string                 `toml:"name" yaml:"name" json:"name"`
	Symbol   string                 `toml:"symbol" yaml:"symbol" json:"symbol"`
	Color    string                 `toml:"color" yaml:"color" json:"color"`
	Keywords []string               `toml:"keywords" yaml:"keywords" json:"keywords"`
	Variants map[string]variantFile `toml:"variants" yaml:"variants" json:"variants"`
}

type blankFile struct {
	Symbol string `toml:"symbol" yaml:"symbol" json:"symbol"`
	Color  string `toml:"color" yaml:"color" json:"color"`
	Size   int    `toml:"size" yaml:"size" json:"size"`
}

// File is the on-disk layout of a style table.
type File struct {
	Default    string         `toml:"default" yaml:"default" json:"default"`
	MarkerSize int            `toml:"marker_size" yaml:"marker_size" json:"marker_size"`
	Blank      *blankFile     `toml:"blank" yaml:"blank" json:"blank"`
	Categories []categoryFile `toml:"categories" yaml:"categories" json:"categories"`
}

// LoadFile reads path and builds a StyleTable with the catalog labels
// precomputed.
func LoadFile(path string) (*domain.StyleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read style file: %w", err)
	}
	spec, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	table, err := domain.NewStyleTable(spec, domain.KnownObjectTypes...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Parse decodes a style file. ext is the file extension used as a format
// hint; when empty the format is detected from the content.
func Parse(data []byte, ext string) (domain.StyleSpec, error) {
	format := strings.TrimPrefix(strings.ToLower(ext), ".")
	if format == "yml" {
		format = "yaml"
	}
	if format == "" {
		format = sniff(data)
	}

	var f File
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return domain.StyleSpec{}, fmt.Errorf("parse style toml: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return domain.StyleSpec{}, fmt.Errorf("parse style yaml: %w", err)
		}
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return domain.StyleSpec{}, fmt.Errorf("parse style json: %w", err)
		}
	default:
		return domain.StyleSpec{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return f.spec(), nil
}

// sniff guesses the format: JSON starts with a brace, TOML has an array of
// tables or a key = value line, anything else is YAML.
func sniff(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("{")) {
		return "json"
	}
	for _, line := range strings.Split(string(trimmed), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			return "toml"
		}
		key, _, found := strings.Cut(line, "=")
		if found && !strings.ContainsAny(key, ":\"'") {
			return "toml"
		}
		return "yaml"
	}
	return "yaml"
}

func (f File) spec() domain.StyleSpec {
	spec := domain.StyleSpec{
		Default:    domain.Category(f.Default),
		MarkerSize: f.MarkerSize,
	}
	if f.Blank != nil {
		spec.Blank = domain.StyleDescriptor{
			Symbol: f.Blank.Symbol,
			Color:  f.Blank.Color,
			Size:   f.Blank.Size,
		}
	}
	for _, c := range f.Categories {
		cs := domain.CategorySpec{
			Name:     domain.Category(c.Name),
			Symbol:   c.Symbol,
			Color:    c.Color,
			Keywords: c.Keywords,
			Variants: make(map[string]domain.Variant, len(c.Variants)),
		}
		for label, v := range c.Variants {
			cs.Variants[label] = domain.Variant{Symbol: v.Symbol, Color: v.Color}
		}
		spec.Categories = append(spec.Categories, cs)
	}
	if spec.Blank != (domain.StyleDescriptor{}) {
		spec.Blank.Category = spec.Default
		if spec.Blank.Category == "" && len(spec.Categories) > 0 {
			spec.Blank.Category = spec.Categories[len(spec.Categories)-1].Name
		}
		if spec.Blank.Size == 0 {
			spec.Blank.Size = 6
		}
	}
	return spec
}
