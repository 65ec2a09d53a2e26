package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportJSON loads a legacy JSON data file ({"metadata": ..., "processos":
// [...]}) into the store, replacing the current snapshot. Returns the
// number of cases imported.
func (s *Store) ImportJSON(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("store: import %s: %w", path, err)
	}
	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("store: import %s: parse: %w", path, err)
	}
	snap := &Snapshot{Meta: file.Metadata, Cases: file.Processos}
	if err := s.SaveSnapshot(snap); err != nil {
		return 0, fmt.Errorf("store: import %s: %w", path, err)
	}
	return len(file.Processos), nil
}
