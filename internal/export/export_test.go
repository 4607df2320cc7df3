package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/lehigh-university-libraries/geopicker/internal/models"
	"github.com/lehigh-university-libraries/geopicker/internal/storage"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var fixedNow = time.Date(2024, 3, 5, 14, 7, 9, 0, time.Local)

// newTestJob returns a job over fresh image and data directories
func newTestJob(t *testing.T) (*Job, string, string) {
	t.Helper()
	imgDir := t.TempDir()
	dataDir := t.TempDir()
	job := NewJob(imgDir, dataDir, storage.NewSelectionStore(dataDir))
	job.Now = func() time.Time { return fixedNow }
	return job, imgDir, dataDir
}

func writeSidecar(t *testing.T, imgDir, imagePath, text string) {
	t.Helper()
	path := filepath.Join(imgDir, filepath.FromSlash(SidecarPath(imagePath)))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
}

func saveSelections(t *testing.T, job *Job, pairs ...string) {
	t.Helper()
	selections := models.NewSelections()
	for i := 0; i+1 < len(pairs); i += 2 {
		selections.Set(pairs[i], pairs[i+1])
	}
	require.NoError(t, job.Selections.Save(selections))
}

func TestSearchResult(t *testing.T) {
	tests := []struct {
		name      string
		imagePath string
		expected  string
		wantErr   bool
	}{
		{name: "numbered folder", imagePath: "cat1/5.item/profile_geo.png", expected: "item"},
		{name: "extra dots", imagePath: "cat1/5.item.v2/profile_geo.png", expected: "item"},
		{name: "no item folder", imagePath: "profile_geo.png", wantErr: true},
		{name: "no dot in folder", imagePath: "cat1/item/profile_geo.png", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SearchResult(tt.imagePath)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, models.ErrParse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSidecarPath(t *testing.T) {
	assert.Equal(t, "cat1/5.item/profile_geo.txt", SidecarPath("cat1/5.item/profile_geo.png"))
}

func TestRows(t *testing.T) {
	job, imgDir, _ := newTestJob(t)
	writeSidecar(t, imgDir, "cat1/5.item/profile_geo.png", "  hello\n")

	selections := models.NewSelections()
	selections.Set("A", "cat1/5.item/profile_geo.png")

	rows, err := job.Rows(selections)
	require.NoError(t, err)
	assert.Equal(t, []models.ExportRow{
		{Name: "A", SearchResult: "item", ProfileGeo: "hello"},
	}, rows)
}

func TestRun_WritesSpreadsheet(t *testing.T) {
	job, imgDir, dataDir := newTestJob(t)
	writeSidecar(t, imgDir, "zeta/2.harbour/profile_geo.png", "north")
	writeSidecar(t, imgDir, "alpha/7.coast/profile_geo.png", "south")
	saveSelections(t, job,
		"zeta", "zeta/2.harbour/profile_geo.png",
		"alpha", "alpha/7.coast/profile_geo.png",
	)

	result, err := job.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)

	expectedPath := filepath.Join(dataDir, "selections_20240305_140709.xlsx")
	require.Equal(t, []string{expectedPath}, result.Files)

	f, err := excelize.OpenFile(expectedPath)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"name", "search-result", "profile_geo"},
		{"zeta", "harbour", "north"},
		{"alpha", "coast", "south"},
	}, got)
}

func TestRun_MissingSidecarAborts(t *testing.T) {
	job, imgDir, dataDir := newTestJob(t)
	writeSidecar(t, imgDir, "A/1.foo/profile_geo.png", "ok")
	saveSelections(t, job,
		"A", "A/1.foo/profile_geo.png",
		"B", "B/2.bar/profile_geo.png",
	)

	_, err := job.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrFilesystem))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	matches, err := filepath.Glob(filepath.Join(dataDir, "selections_*"))
	require.NoError(t, err)
	assert.Empty(t, matches, "no partial spreadsheet should be written")
}

func TestRun_OversizedSidecarAborts(t *testing.T) {
	job, imgDir, dataDir := newTestJob(t)
	writeSidecar(t, imgDir, "A/1.foo/profile_geo.png", strings.Repeat("x", excelize.TotalCellChars+1))
	saveSelections(t, job, "A", "A/1.foo/profile_geo.png")

	_, err := job.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrParse))

	matches, err := filepath.Glob(filepath.Join(dataDir, "selections_*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRun_SidecarAtCellLimit(t *testing.T) {
	job, imgDir, dataDir := newTestJob(t)
	writeSidecar(t, imgDir, "A/1.foo/profile_geo.png", strings.Repeat("é", excelize.TotalCellChars))
	saveSelections(t, job, "A", "A/1.foo/profile_geo.png")

	_, err := job.Run()
	require.NoError(t, err)

	f, err := excelize.OpenFile(filepath.Join(dataDir, "selections_20240305_140709.xlsx"))
	require.NoError(t, err)
	defer f.Close()
	value, err := f.GetCellValue(SheetName, "C2")
	require.NoError(t, err)
	assert.Equal(t, excelize.TotalCellChars, utf8.RuneCountInString(value))
}

func TestRun_Parquet(t *testing.T) {
	job, imgDir, dataDir := newTestJob(t)
	job.Parquet = true
	writeSidecar(t, imgDir, "A/3.pier/profile_geo.png", "east")
	saveSelections(t, job, "A", "A/3.pier/profile_geo.png")

	result, err := job.Run()
	require.NoError(t, err)
	parquetPath := filepath.Join(dataDir, "selections_20240305_140709.parquet")
	assert.Contains(t, result.Files, parquetPath)

	rows, err := parquet.ReadFile[models.ExportRow](parquetPath)
	require.NoError(t, err)
	assert.Equal(t, []models.ExportRow{{Name: "A", SearchResult: "pier", ProfileGeo: "east"}}, rows)
}

func TestRun_NoSelections(t *testing.T) {
	job, _, _ := newTestJob(t)

	result, err := job.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, result.Rows)
	require.Len(t, result.Files, 1)
	assert.FileExists(t, result.Files[0])
}
