package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lehigh-university-libraries/geopicker/internal/models"
	"github.com/lehigh-university-libraries/geopicker/internal/storage"
	"github.com/xuri/excelize/v2"
)

// TimestampLayout formats the export file name suffix, YYYYMMDD_HHMMSS
const TimestampLayout = "20060102_150405"

// Job turns the current selections into a timestamped spreadsheet in the data directory
type Job struct {
	ImgDir     string
	DataDir    string
	Selections *storage.SelectionStore
	// Parquet also writes a .parquet copy of the rows
	Parquet bool
	Now     func() time.Time
}

// Result lists the files one export run produced
type Result struct {
	Rows  int
	Files []string
}

func NewJob(imgDir, dataDir string, selections *storage.SelectionStore) *Job {
	return &Job{
		ImgDir:     imgDir,
		DataDir:    dataDir,
		Selections: selections,
		Now:        time.Now,
	}
}

// Run builds every row before writing anything, so a missing or oversized
// sidecar aborts the export without leaving a partial spreadsheet behind.
func (j *Job) Run() (*Result, error) {
	selections, err := j.Selections.Load()
	if err != nil {
		return nil, err
	}

	rows, err := j.Rows(selections)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(j.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	stem := "selections_" + j.now().Format(TimestampLayout)
	result := &Result{Rows: len(rows)}

	xlsxPath := filepath.Join(j.DataDir, stem+".xlsx")
	if err := WriteXLSX(xlsxPath, rows); err != nil {
		return nil, err
	}
	result.Files = append(result.Files, xlsxPath)

	if j.Parquet {
		parquetPath := filepath.Join(j.DataDir, stem+".parquet")
		if err := WriteParquet(parquetPath, rows); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, parquetPath)
	}

	slog.Info("Selections exported", "rows", result.Rows, "files", result.Files)
	return result, nil
}

// Rows derives one export row per selection, in selection order
func (j *Job) Rows(selections *models.Selections) ([]models.ExportRow, error) {
	rows := make([]models.ExportRow, 0, selections.Len())

	var rowErr error
	selections.Each(func(category, imagePath string) bool {
		token, err := SearchResult(imagePath)
		if err != nil {
			rowErr = err
			return false
		}

		text, err := j.readSidecar(imagePath)
		if err != nil {
			rowErr = err
			return false
		}

		rows = append(rows, models.ExportRow{
			Name:         category,
			SearchResult: token,
			ProfileGeo:   text,
		})
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return rows, nil
}

// SidecarPath swaps the image extension for the sidecar text extension
func SidecarPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + models.SidecarExt
}

func (j *Job) readSidecar(imagePath string) (string, error) {
	sidecar := filepath.Join(j.ImgDir, filepath.FromSlash(SidecarPath(imagePath)))
	data, err := os.ReadFile(sidecar)
	if err != nil {
		return "", models.FilesystemError("read sidecar", sidecar, err)
	}
	text := strings.TrimSpace(string(data))
	if n := utf8.RuneCountInString(text); n > excelize.TotalCellChars {
		return "", models.ParseErrorf(sidecar, "sidecar has %d characters, a spreadsheet cell holds at most %d", n, excelize.TotalCellChars)
	}
	return text, nil
}

// SearchResult extracts the token after the first dot of the item folder,
// "harbour/5.item/profile_geo.png" -> "item". Item folders are expected to be
// named {number}.{token}.
func SearchResult(imagePath string) (string, error) {
	parts := strings.Split(filepath.ToSlash(imagePath), "/")
	if len(parts) < 2 {
		return "", models.ParseErrorf(imagePath, "image path has no item folder")
	}

	segments := strings.Split(parts[1], ".")
	if len(segments) < 2 {
		return "", models.ParseErrorf(imagePath, "item folder %q has no search-result segment", parts[1])
	}
	return segments[1], nil
}

func (j *Job) now() time.Time {
	if j.Now == nil {
		return time.Now()
	}
	return j.Now()
}
