package converter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/config"
	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/report"
	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/types"
	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/xlsxwriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const exampleINI = `[db]
host = localhost
port = 5432
[cache]
host = 127.0.0.1
`

const exampleCSV = "Section,host,port\r\ndb,localhost,5432\r\ncache,127.0.0.1,\r\n"

func setup(t *testing.T, input []byte) *config.MainConfig {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.InputFile = filepath.Join(dir, "preprocess.ini")
	cfg.OutputFile = filepath.Join(dir, "output.csv")
	require.NoError(t, os.WriteFile(cfg.InputFile, input, 0o644))
	return cfg
}

func TestRun_Example(t *testing.T) {
	cfg := setup(t, []byte(exampleINI))
	rec := report.NewRecorder()

	result := New(cfg, rec).Run()

	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.Equal(t, "utf-8", result.Encoding)
	assert.Equal(t, cfg.OutputFile, result.OutputFile)
	assert.Equal(t, 2, result.Stats.Sections)
	assert.Equal(t, 2, result.Stats.UniqueKeys)
	assert.Equal(t, 3, result.Stats.Rows)
	assert.Equal(t, 3, result.Stats.Columns)

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, exampleCSV, string(data))

	assert.True(t, rec.Contains("info", "Wrote 3 rows x 3 columns"))
}

func TestRun_Idempotent(t *testing.T) {
	cfg := setup(t, []byte("[z]\nb = 2\na = 1\n[y]\nc = \"q, r\"\n"))

	first := New(cfg, nil).Run()
	require.NoError(t, first.Error)
	firstData, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	second := New(cfg, nil).Run()
	require.NoError(t, second.Error)
	secondData, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	assert.Equal(t, firstData, secondData)
	assert.Equal(t, "Section,a,b,c\r\nz,1,2,\r\ny,,,\"\"\"q, r\"\"\"\r\n", string(firstData))
}

func TestRun_Windows1252(t *testing.T) {
	raw, err := charmap.Windows1252.NewEncoder().Bytes([]byte("[shop]\nname = Café\nprice = 5€\n"))
	require.NoError(t, err)
	cfg := setup(t, raw)

	result := New(cfg, nil).Run()

	require.NoError(t, result.Error)
	assert.Equal(t, "windows-1252", result.Encoding)
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, "Section,name,price\r\nshop,Café,5€\r\n", string(data))
}

func TestRun_RawValues(t *testing.T) {
	cfg := setup(t, []byte("[a]\ncmd = `ls`\n- = dash\nk = first\n  second\n\n  third\n"))
	rec := report.NewRecorder()

	result := New(cfg, rec).Run()

	require.NoError(t, result.Error)
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, "Section,-,cmd,k\r\na,dash,`ls`,\"first\nsecond\n\nthird\"\r\n", string(data))
	assert.True(t, rec.Contains("warn", "value spans multiple lines"))
}

func TestRun_ShapeProperty(t *testing.T) {
	input := strings.Join([]string{
		"[one]", "k1 = a", "k2 = b",
		"[two]", "k3 = c",
		"[three]", "k1 = d", "k4 = e", "k5 = f",
		"[four]",
	}, "\n")
	cfg := setup(t, []byte(input))

	result := New(cfg, nil).Run()

	require.NoError(t, result.Error)
	assert.Equal(t, 4+1, result.Stats.Rows)
	assert.Equal(t, 5+1, result.Stats.Columns)

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\r\n"), "\r\n")
	require.Len(t, lines, 5)
	for _, line := range lines {
		assert.Equal(t, 6, len(strings.Split(line, ",")), line)
	}
	assert.Equal(t, "Section,k1,k2,k3,k4,k5", lines[0])
}

func TestRun_UnreadableWritesNothing(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"zero-byte file", nil},
		{"no section headers", []byte("host = x\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := setup(t, tt.input)
			cfg.XLSXFile = filepath.Join(filepath.Dir(cfg.OutputFile), "output.xlsx")

			result := New(cfg, nil).Run()

			require.Error(t, result.Error)
			assert.False(t, result.Success)
			assert.True(t, errors.Is(result.Error, types.ErrUnreadableConfig))
			assert.NoFileExists(t, cfg.OutputFile)
			assert.NoFileExists(t, cfg.XLSXFile)
		})
	}
}

func TestRun_AllowEmpty(t *testing.T) {
	cfg := setup(t, nil)
	cfg.AllowEmpty = true

	result := New(cfg, nil).Run()

	require.NoError(t, result.Error)
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, "Section\r\n", string(data))
}

func TestRun_NotFound(t *testing.T) {
	cfg := config.Default()
	cfg.InputFile = filepath.Join(t.TempDir(), "missing.ini")
	cfg.OutputFile = filepath.Join(t.TempDir(), "output.csv")

	result := New(cfg, nil).Run()

	assert.True(t, errors.Is(result.Error, types.ErrNotFound))
	assert.NoFileExists(t, cfg.OutputFile)
}

func TestRun_WriteError(t *testing.T) {
	cfg := setup(t, []byte(exampleINI))
	blocker := filepath.Join(filepath.Dir(cfg.OutputFile), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	cfg.OutputFile = filepath.Join(blocker, "output.csv")

	result := New(cfg, nil).Run()

	assert.True(t, errors.Is(result.Error, types.ErrWrite))
	assert.Empty(t, result.OutputFile)
}

func TestRun_XLSX(t *testing.T) {
	cfg := setup(t, []byte(exampleINI))
	cfg.XLSXFile = filepath.Join(filepath.Dir(cfg.OutputFile), "output.xlsx")

	result := New(cfg, nil).Run()

	require.NoError(t, result.Error)
	assert.Equal(t, cfg.XLSXFile, result.XLSXFile)

	rows, err := xlsxwriter.ReadRows(cfg.XLSXFile, cfg.SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Section", "host", "port"},
		{"db", "localhost", "5432"},
		{"cache", "127.0.0.1"},
	}, rows)
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.ini")
	output := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(input, []byte(exampleINI), 0o644))

	require.NoError(t, Convert(input, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, exampleCSV, string(data))

	err = Convert(input, input)
	assert.True(t, types.IsKind(err, types.KindConfig))
}

func TestResultSummary(t *testing.T) {
	result := Result{
		Encoding:   "latin-1",
		Lossy:      true,
		OutputFile: "output.csv",
		Stats:      ProcessingStats{Sections: 2, UniqueKeys: 3, Rows: 3, Columns: 4},
	}

	lines := result.Summary()

	assert.Contains(t, lines, "Encoding used: latin-1 (lossy)")
	assert.Contains(t, lines, "Unique keys:   3")
	assert.Contains(t, lines, "CSV output:    output.csv (3 rows x 4 columns)")
}
