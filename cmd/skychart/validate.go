package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/messier-skychart/internal/catalog"
	"github.com/couchcryptid/messier-skychart/internal/domain"
)

// errValidationFailed is returned after the report has been printed.
var errValidationFailed = errors.New("validation failed")

var messierIDPattern = regexp.MustCompile(`^M(\d{1,3})$`)

// phase tracks the findings of one validation check. Advisory phases are
// reported but do not fail the run.
type phase struct {
	name     string
	advisory bool
	errors   []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate CSV",
		Short: "Check a catalog CSV and report rows with unusable coordinates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			styles, err := loadStyles(mustString(cmd, "styles"), slog.New(slog.DiscardHandler))
			if err != nil {
				return err
			}
			return runValidate(cmd.OutOrStdout(), args[0], styles)
		},
	}
	cmd.Flags().String("styles", "", "style table file (toml, yaml or json)")
	return cmd
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func runValidate(out io.Writer, path string, styles *domain.StyleTable) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	objects, err := catalog.ReadCSV(f, slog.New(slog.DiscardHandler))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	fmt.Fprintln(out, "=== Messier Catalog Validation ===")
	fmt.Fprintf(out, "File: %s\n\n", path)

	phases := []*phase{
		validateCoordinates(objects),
		validateIdentifiers(objects),
		validateObjectTypes(objects, styles),
	}

	failed := false
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		switch {
		case p.passed():
		case p.advisory:
			status = fmt.Sprintf("\033[33mWARN (%d findings)\033[0m", len(p.errors))
		default:
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			failed = true
		}
		fmt.Fprintf(out, "  %-30s %s\n", p.name, status)
	}
	fmt.Fprintf(out, "\nRows: %d\n", len(objects))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for _, e := range p.errors {
			fmt.Fprintf(out, "  %s\n", e)
		}
	}

	if failed {
		return errValidationFailed
	}
	return nil
}

func validateCoordinates(objects []domain.CelestialObject) *phase {
	p := &phase{name: "Coordinates"}
	for _, o := range objects {
		if _, err := o.WithCoordinates(); err != nil {
			p.errorf("%s: %s", label(o), strings.ReplaceAll(err.Error(), "\n", "; "))
		}
	}
	return p
}

func validateIdentifiers(objects []domain.CelestialObject) *phase {
	p := &phase{name: "Identifiers", advisory: true}
	seen := make(map[string]bool, len(objects))
	for i, o := range objects {
		m := messierIDPattern.FindStringSubmatch(o.MessierID)
		if m == nil {
			p.errorf("row %d: malformed Messier id %q", i+1, o.MessierID)
			continue
		}
		if seen[o.MessierID] {
			p.errorf("%s: duplicate id", o.MessierID)
		}
		seen[o.MessierID] = true
		if n, _ := strconv.Atoi(m[1]); o.Number != 0 && n != o.Number {
			p.errorf("%s: number column says %d", o.MessierID, o.Number)
		}
	}
	return p
}

func validateObjectTypes(objects []domain.CelestialObject, styles *domain.StyleTable) *phase {
	p := &phase{name: "Object types", advisory: true}
	for _, o := range objects {
		if strings.TrimSpace(o.ObjectType) == "" {
			p.errorf("%s: no object type, will not be drawn", label(o))
			continue
		}
		if !known(o.ObjectType) {
			p.errorf("%s: unlisted type %q classified as %s", label(o), o.ObjectType, styles.Classify(o.ObjectType))
		}
	}
	return p
}

func known(objectType string) bool {
	for _, t := range domain.KnownObjectTypes {
		if strings.EqualFold(t, objectType) {
			return true
		}
	}
	return false
}

func label(o domain.CelestialObject) string {
	if o.MessierID != "" {
		return o.MessierID
	}
	return fmt.Sprintf("#%d", o.Number)
}
