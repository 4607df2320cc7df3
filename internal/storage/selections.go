package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lehigh-university-libraries/geopicker/internal/models"
)

// SelectionsFile is the name of the selections document inside the data directory
const SelectionsFile = "selections.json"

// SelectionStore reads and writes the selections document.
//
// Callers load, mutate and save without any lock; two concurrent
// read-modify-write sequences lose whichever update is saved first.
type SelectionStore struct {
	path string
}

func NewSelectionStore(dataDir string) *SelectionStore {
	return &SelectionStore{
		path: filepath.Join(dataDir, SelectionsFile),
	}
}

func (s *SelectionStore) Path() string {
	return s.path
}

// Load returns an empty mapping when the file does not exist yet
func (s *SelectionStore) Load() (*models.Selections, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.NewSelections(), nil
	}
	if err != nil {
		return nil, models.StorageError("read", s.path, err)
	}

	selections := models.NewSelections()
	if err := json.Unmarshal(data, selections); err != nil {
		return nil, models.StorageError("parse", s.path, err)
	}

	slog.Debug("Loaded selections", "path", s.path, "count", selections.Len())
	return selections, nil
}

// Save replaces the whole document with the given mapping
func (s *SelectionStore) Save(selections *models.Selections) error {
	data, err := encodeSelections(selections)
	if err != nil {
		return models.StorageError("encode", s.path, err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return models.StorageError("write", s.path, err)
	}

	slog.Debug("Saved selections", "path", s.path, "count", selections.Len())
	return nil
}

func encodeSelections(selections *models.Selections) ([]byte, error) {
	raw, err := selections.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
