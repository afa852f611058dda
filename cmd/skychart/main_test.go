package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "Number,Messier number,NGC/IC number,Common name,Object type,Distance (kly),Constellation,Apparent magnitude,Right ascension,Declination,Best Viewing\n"

func writeCSV(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "messier.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+strings.Join(rows, "\n")+"\n"), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestValidate_Pass(t *testing.T) {
	path := writeCSV(t,
		"1,M1,1952,Crab Nebula,Supernova remnant,6.5,Taurus,8.4,05h 34m 31.9s,+22° 00′ 52″,winter",
		"42,M42,1976,Orion Nebula,H II region nebula,1.3,Orion,4.0,05h 35m 17.3s,−05° 23′ 28″,winter",
	)

	out, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Coordinates")
	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "Rows: 2")
	assert.NotContains(t, out, "FAIL")
}

func TestValidate_InvalidCoordinatesFail(t *testing.T) {
	path := writeCSV(t,
		"1,M1,1952,Crab Nebula,Supernova remnant,6.5,Taurus,8.4,05h 34m 31.9s,+22° 00′ 52″,winter",
		"2,M2,7089,,Globular cluster,33,Aquarius,6.3,25h 00m 00s,north,autumn",
	)

	out, err := execute(t, "validate", path)
	require.ErrorIs(t, err, errValidationFailed)
	assert.Contains(t, out, "FAIL (1 errors)")
	assert.Contains(t, out, "M2:")
}

func TestValidate_AdvisoryFindingsDoNotFail(t *testing.T) {
	path := writeCSV(t,
		"1,M1,1952,Crab Nebula,,6.5,Taurus,8.4,05h 34m 31.9s,+22° 00′ 52″,winter",
		"1,M1,1952,Crab Nebula,Comet,6.5,Taurus,8.4,05h 34m 31.9s,+22° 00′ 52″,winter",
	)

	out, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "duplicate id")
	assert.Contains(t, out, `unlisted type "Comet"`)
}

func TestValidate_MissingFile(t *testing.T) {
	_, err := execute(t, "validate", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open catalog")
}

func TestExport_JSONFromFile(t *testing.T) {
	path := writeCSV(t,
		"31,M31,224,Andromeda Galaxy,Spiral galaxy,2540,Andromeda,3.4,00h 42m 44.3s,+41° 16′ 09″,autumn",
	)

	out, err := execute(t, "export", "--csv", path, "--no-sample")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "M31", records[0]["messier_id"])
	assert.Equal(t, "Galaxy", records[0]["category"])
	coords, ok := records[0]["coordinates"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 10.6845, coords["ra"], 1e-3)
}

func TestExport_CSVFallsBackToSample(t *testing.T) {
	out, err := execute(t, "export", "--csv", filepath.Join(t.TempDir(), "missing.csv"), "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines[0], "RA (deg)")
	assert.Len(t, lines, 11)
}

func TestExport_NoSources(t *testing.T) {
	_, err := execute(t, "export", "--csv", filepath.Join(t.TempDir(), "missing.csv"), "--no-sample")
	require.Error(t, err)
}

func TestExport_BadFormat(t *testing.T) {
	_, err := execute(t, "export", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
