package store

import (
	"errors"
	"fmt"

	"github.com/brasslaw/vigia/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoadCommCache reads every cache entry with its communications in feed
// order, keyed by case id.
func (s *Store) LoadCommCache() (map[int]models.CommEntry, error) {
	var entries []models.CommEntry
	if err := s.db.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("store: load comm cache: %w", err)
	}
	cache := make(map[int]models.CommEntry, len(entries))
	for _, e := range entries {
		comms, err := s.caseComms(e.CaseID)
		if err != nil {
			return nil, err
		}
		e.Comunicacoes = comms
		cache[e.CaseID] = e
	}
	return cache, nil
}

// GetCommEntry returns the cache entry for one case, or ErrNotFound when
// the case has never been queried.
func (s *Store) GetCommEntry(caseID int) (*models.CommEntry, error) {
	var e models.CommEntry
	if err := s.db.First(&e, "case_id = ?", caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: get comm entry #%d: %w", caseID, err)
	}
	comms, err := s.caseComms(caseID)
	if err != nil {
		return nil, err
	}
	e.Comunicacoes = comms
	return &e, nil
}

// ReplaceComms swaps a case's cached communications for a fresh feed
// result and upserts its header in one transaction.
func (s *Store) ReplaceComms(entry models.CommEntry, comms []models.Communication) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("case_id = ?", entry.CaseID).Delete(&models.Communication{}).Error; err != nil {
			return err
		}
		for i := range comms {
			comms[i].CaseID = entry.CaseID
			comms[i].Position = i
			if err := tx.Create(&comms[i]).Error; err != nil {
				return err
			}
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry).Error
	})
	if err != nil {
		return fmt.Errorf("store: replace comms #%d: %w", entry.CaseID, err)
	}
	return nil
}

// TouchComms records a verification that brought no new communications.
// An existing entry keeps its communications and only advances the
// timestamp; a case never seen before gets an empty placeholder entry.
func (s *Store) TouchComms(entry models.CommEntry) error {
	res := s.db.Model(&models.CommEntry{}).
		Where("case_id = ?", entry.CaseID).
		Update("ultima_verificacao", entry.UltimaVerificacao)
	if res.Error != nil {
		return fmt.Errorf("store: touch comms #%d: %w", entry.CaseID, res.Error)
	}
	if res.RowsAffected == 0 {
		entry.TotalComunicacoes = 0
		if err := s.db.Create(&entry).Error; err != nil {
			return fmt.Errorf("store: create comm placeholder #%d: %w", entry.CaseID, err)
		}
	}
	return nil
}

func (s *Store) caseComms(caseID int) ([]models.Communication, error) {
	var comms []models.Communication
	if err := s.db.Where("case_id = ?", caseID).Order("position").Find(&comms).Error; err != nil {
		return nil, fmt.Errorf("store: load comms #%d: %w", caseID, err)
	}
	return comms, nil
}
