package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/brasslaw/vigia/internal/models"
)

// snapshotFile is the on-disk JSON shape shared by backups and legacy
// data files.
type snapshotFile struct {
	Metadata  models.StoreMeta `json:"metadata"`
	Processos []models.Case    `json:"processos"`
}

// WriteBackup exports the snapshot to a dated JSON file in the report
// directory and returns its base name. One backup per day: a same-day
// rerun overwrites it.
func (s *Store) WriteBackup(snap *Snapshot) (string, error) {
	name := fmt.Sprintf("vigia_processos_backup_%s.json", time.Now().Format("2006-01-02"))
	if err := s.writeJSON(name, snapshotFile{Metadata: snap.Meta, Processos: snap.Cases}); err != nil {
		return "", fmt.Errorf("store: write backup: %w", err)
	}
	return name, nil
}

// WriteReport writes a dated run report to the report directory and
// returns its base name.
func (s *Store) WriteReport(report interface{}) (string, error) {
	name := fmt.Sprintf("relatorio_atualizacao_%s.json", time.Now().Format("2006-01-02"))
	if err := s.writeJSON(name, report); err != nil {
		return "", fmt.Errorf("store: write report: %w", err)
	}
	return name, nil
}

func (s *Store) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.reportDir, name), data, 0o644)
}
