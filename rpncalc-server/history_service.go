package main

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"rpncalc-go/model"
)

// SaveHistoryEntry inserts entry, or folds it into the existing row for
// the same expression: the hit count goes up and a forgotten row is
// revived. entry is updated to mirror the stored row.
func SaveHistoryEntry(entry *model.HistoryEntry) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		var existing model.HistoryEntry
		err := tx.Unscoped().Where("`expression_hash` = ?", entry.ExpressionHash).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(entry).Error
		}
		if err != nil {
			return err
		}
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
		entry.Hits = existing.Hits + 1
		return tx.Unscoped().Model(&existing).Updates(map[string]interface{}{
			"result":           entry.Result,
			"error":            entry.Error,
			"hits":             entry.Hits,
			"last_access":      entry.LastAccess,
			"expired_duration": entry.ExpiredDuration,
			"deleted":          0,
		}).Error
	})
}

// FindHistory returns up to limit live entries, most recently used first.
func FindHistory(limit int) ([]*model.HistoryEntry, error) {
	var items []*model.HistoryEntry
	if err := DB.Model(&model.HistoryEntry{}).
		Order("`last_access` desc, `id` desc").
		Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func FindHistoryByHash(expressionHash string) (*model.HistoryEntry, error) {
	var entry model.HistoryEntry
	if err := DB.Where("`expression_hash` = ?", expressionHash).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ForgetExpression soft-deletes the entry with the given hash. It reports
// whether a live entry was found.
func ForgetExpression(expressionHash string) (bool, error) {
	res := DB.Where("`expression_hash` = ?", expressionHash).Delete(&model.HistoryEntry{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindCleanableWithLimit returns entries that expired before now or were
// forgotten.
func FindCleanableWithLimit(now time.Time, limit int) ([]*model.HistoryEntry, error) {
	var items []*model.HistoryEntry
	if err := DB.Unscoped().Model(&model.HistoryEntry{}).
		Where("`deleted` = 1 OR `last_access` + `expired_duration` < ?", now.Unix()).
		Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// PurgeEntries removes the rows with the given ids for good.
func PurgeEntries(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := DB.Unscoped().Delete(&model.HistoryEntry{}, ids)
	return res.RowsAffected, res.Error
}
