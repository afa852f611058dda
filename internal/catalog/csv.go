package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/couchcryptid/messier-skychart/internal/domain"
)

// Column headers of the Messier catalog export.
const (
	ColNumber        = "Number"
	ColMessier       = "Messier number"
	ColNGCIC         = "NGC/IC number"
	ColCommonName    = "Common name"
	ColObjectType    = "Object type"
	ColDistance      = "Distance (kly)"
	ColConstellation = "Constellation"
	ColMagnitude     = "Apparent magnitude"
	ColRA            = "Right ascension"
	ColDec           = "Declination"
	ColSeason        = "Best Viewing"
)

// Columns is the export column order, used when writing CSV.
var Columns = []string{
	ColNumber, ColMessier, ColNGCIC, ColCommonName, ColObjectType, ColDistance,
	ColConstellation, ColMagnitude, ColRA, ColDec, ColSeason,
}

var requiredColumns = []string{ColMessier, ColRA, ColDec}

var ErrMissingColumn = errors.New("missing required column")

const utf8BOM = "\uFEFF"

// ReadCSV decodes a catalog export. Columns are matched by header name,
// case-insensitively and in any order; unknown columns are ignored. Rows with
// the wrong number of fields are skipped with a warning.
func ReadCSV(r io.Reader, logger *slog.Logger) ([]domain.CelestialObject, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read header: %w", io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := indexHeader(header)
	for _, col := range requiredColumns {
		if _, ok := idx[normalizeHeader(col)]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	var objects []domain.CelestialObject
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				logger.Warn("skipping unreadable csv row", "line", perr.Line, "error", perr.Err)
				continue
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}

		if len(record) != len(header) {
			line, _ := cr.FieldPos(0)
			logger.Warn("skipping csv row with wrong field count",
				"line", line,
				"fields", len(record),
				"want", len(header),
			)
			continue
		}

		objects = append(objects, decodeRow(record, idx))
	}
	return objects, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, utf8BOM)))
}

func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

func decodeRow(record []string, idx map[string]int) domain.CelestialObject {
	field := func(col string) string {
		i, ok := idx[normalizeHeader(col)]
		if !ok {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	o := domain.CelestialObject{
		MessierID:     field(ColMessier),
		NGCIC:         trimIntegral(field(ColNGCIC)),
		CommonName:    field(ColCommonName),
		ObjectType:    field(ColObjectType),
		Constellation: field(ColConstellation),
		Magnitude:     parseOptionalFloat(field(ColMagnitude)),
		DistanceKly:   parseOptionalFloat(field(ColDistance)),
		Season:        field(ColSeason),
		RAText:        field(ColRA),
		DecText:       field(ColDec),
	}
	if n := parseOptionalFloat(field(ColNumber)); n != nil {
		o.Number = int(*n)
	}
	return o
}

// parseOptionalFloat returns nil for blank or non-numeric cells. Thousands
// separators are tolerated.
func parseOptionalFloat(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// trimIntegral drops a ".0" suffix that spreadsheet exports add to ids.
func trimIntegral(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// WriteCSV encodes objects in the export column order followed by the derived
// columns.
func WriteCSV(w io.Writer, objects []domain.CelestialObject, styles *domain.StyleTable) error {
	cw := csv.NewWriter(w)
	header := append(append([]string{}, Columns...), "RA (deg)", "Dec (deg)", "Category")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, o := range objects {
		ra, dec := "", ""
		if o.Coords.Valid {
			ra = strconv.FormatFloat(o.Coords.RA, 'f', 4, 64)
			dec = strconv.FormatFloat(o.Coords.Dec, 'f', 4, 64)
		}
		row := []string{
			strconv.Itoa(o.Number),
			o.MessierID,
			o.NGCIC,
			o.CommonName,
			o.ObjectType,
			formatOptional(o.DistanceKly),
			o.Constellation,
			formatOptional(o.Magnitude),
			o.RAText,
			o.DecText,
			o.Season,
			ra,
			dec,
			string(styles.Style(o.ObjectType).Category),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", o.MessierID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
