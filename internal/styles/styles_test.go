package styles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/messier-skychart/internal/domain"
)

func TestLoadFile_Formats(t *testing.T) {
	for _, name := range []string{"styles.toml", "styles.yaml", "styles.json"} {
		t.Run(name, func(t *testing.T) {
			table, err := LoadFile(filepath.Join("testdata", name))
			require.NoError(t, err)

			assert.Equal(t, []domain.Category{"Galaxy", "Other"}, table.Categories())
			assert.Equal(t,
				domain.StyleDescriptor{Symbol: "circle-cross", Color: "#FF0000", Size: 10, Category: "Galaxy"},
				table.Style("Barred Spiral galaxy"))
			assert.Equal(t,
				domain.StyleDescriptor{Symbol: "diamond", Color: "#00FF00", Size: 10, Category: "Other"},
				table.Style("Globular cluster"))
			assert.Equal(t,
				domain.StyleDescriptor{Symbol: "x", Color: "#777777", Size: 6, Category: "Other"},
				table.Style(""))
		})
	}
}

func TestParse_SniffsFormat(t *testing.T) {
	for _, name := range []string{"styles.toml", "styles.yaml", "styles.json"} {
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join("testdata", name))
			require.NoError(t, err)

			spec, err := Parse(data, "")
			require.NoError(t, err)
			require.Len(t, spec.Categories, 2)
			assert.Equal(t, domain.Category("Galaxy"), spec.Categories[0].Name)
			assert.Equal(t, []string{"galaxy"}, spec.Categories[0].Keywords)
		})
	}
}

func TestSniff(t *testing.T) {
	assert.Equal(t, "json", sniff([]byte("  {\"a\": 1}")))
	assert.Equal(t, "toml", sniff([]byte("# comment\n[[categories]]\n")))
	assert.Equal(t, "toml", sniff([]byte("default = \"Other\"\n")))
	assert.Equal(t, "yaml", sniff([]byte("default: Other\n")))
	assert.Equal(t, "yaml", sniff([]byte("note: \"a = b\"\n")))
	assert.Equal(t, "yaml", sniff(nil))
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("x"), ".ini")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Parse([]byte("[[categories]\n"), ".toml")
	assert.ErrorContains(t, err, "parse style toml")

	_, err = Parse([]byte(`{"categories": [], "colour": "red"}`), ".json")
	assert.ErrorContains(t, err, "parse style json")
}

func TestLoadFile_InvalidSpec(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "duplicate.yaml"))
	require.ErrorIs(t, err, domain.ErrInvalidStyleSpec)
	assert.Contains(t, err.Error(), "duplicate.yaml")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
