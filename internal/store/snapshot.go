package store

import (
	"errors"
	"fmt"

	"github.com/brasslaw/vigia/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound reports a lookup for a case that is not in the store.
var ErrNotFound = errors.New("store: case not found")

// Snapshot is the full contents of the case store at one instant.
type Snapshot struct {
	Meta  models.StoreMeta
	Cases []models.Case
}

// LoadSnapshot reads the metadata row and all cases, ordered by id.
func (s *Store) LoadSnapshot() (*Snapshot, error) {
	var snap Snapshot
	if err := s.db.First(&snap.Meta).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("store: load metadata: %w", err)
	}
	if err := s.db.Order("id").Find(&snap.Cases).Error; err != nil {
		return nil, fmt.Errorf("store: load cases: %w", err)
	}
	return &snap, nil
}

// SaveSnapshot writes all cases and the metadata row in one transaction.
// Readers see either the previous snapshot or the new one, never a mix.
func (s *Store) SaveSnapshot(snap *Snapshot) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range snap.Cases {
			if err := tx.Save(&snap.Cases[i]).Error; err != nil {
				return fmt.Errorf("save case #%d: %w", snap.Cases[i].ID, err)
			}
		}
		snap.Meta.ID = 1
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&snap.Meta).Error; err != nil {
			return fmt.Errorf("save metadata: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store: save snapshot: %w", err)
	}
	return nil
}

// GetCase returns one case by id, or ErrNotFound.
func (s *Store) GetCase(id int) (*models.Case, error) {
	var c models.Case
	if err := s.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: get case #%d: %w", id, err)
	}
	return &c, nil
}
