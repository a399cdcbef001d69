package model

import (
	"encoding/hex"
	"math"
	"time"

	"github.com/zeebo/blake3"
	"gorm.io/plugin/soft_delete"

	"rpncalc-go/rpn"
)

// DefaultExpiredDuration is how long an entry lives after its last use.
const DefaultExpiredDuration = 24 * time.Hour

type HistoryEntry struct {
	ID int64 `json:"id" gorm:"primarykey"`
	// normalized expression, tokens joined by a single space
	Expression string `json:"expression"`
	// blake3 of Expression /* index_hash,UNIQUE */
	ExpressionHash string `json:"expression_hash" gorm:"uniqueIndex:idx_expression_hash"`
	// last result; NULL when the evaluation failed or produced NaN, which
	// sqlite cannot store
	Result *float64 `json:"result"`
	// last error message
	Error string `json:"error,omitempty"`
	Hits  int64  `json:"hits" gorm:"default:1"`
	// unix seconds
	CreatedAt  int64 `json:"created_at" gorm:"autoCreateTime:false"`
	LastAccess int64 `json:"last_access" gorm:"index:idx_last_access"`
	// seconds
	ExpiredDuration int64 `json:"expired_duration"`
	/* 0 false 1 true */
	Deleted soft_delete.DeletedAt `json:"-" gorm:"softDelete:flag;default:0"`
}

func (HistoryEntry) TableName() string {
	return "history_entry"
}

// Value returns the stored result, mapping NULL back to NaN for entries
// that did not fail.
func (e *HistoryEntry) Value() float64 {
	if e.Result == nil {
		return math.NaN()
	}
	return *e.Result
}

// Expired reports whether the entry outlived its expiry at now.
func (e *HistoryEntry) Expired(now time.Time) bool {
	return e.LastAccess+e.ExpiredDuration < now.Unix()
}

// NewHistoryEntry builds a fresh entry for one evaluation of expr.
func NewHistoryEntry(expr string, result float64, evalErr error, ttl time.Duration, now time.Time) *HistoryEntry {
	norm := rpn.Normalize(expr)
	entry := &HistoryEntry{
		Expression:      norm,
		ExpressionHash:  ExpressionHash(norm),
		Hits:            1,
		CreatedAt:       now.Unix(),
		LastAccess:      now.Unix(),
		ExpiredDuration: int64(ttl / time.Second),
	}
	if evalErr != nil {
		entry.Error = evalErr.Error()
	} else if !math.IsNaN(result) {
		entry.Result = &result
	}
	return entry
}

// ExpressionHash identifies an expression independent of its spacing.
func ExpressionHash(expr string) string {
	h := blake3.New()
	h.WriteString(rpn.Normalize(expr))
	return hex.EncodeToString(h.Sum(nil))
}

// HistoryTableDDL creates the history table for writers that do not go
// through gorm. It matches what AutoMigrate produces for HistoryEntry.
const HistoryTableDDL = "CREATE TABLE IF NOT EXISTS `history_entry` (" +
	"`id` INTEGER PRIMARY KEY AUTOINCREMENT, `expression` TEXT, `expression_hash` TEXT, " +
	"`result` REAL, `error` TEXT, `hits` INTEGER DEFAULT 1, `created_at` INTEGER, " +
	"`last_access` INTEGER, `expired_duration` INTEGER, `deleted` INTEGER DEFAULT 0);"

const HistoryIndexDDL = "CREATE UNIQUE INDEX IF NOT EXISTS `idx_expression_hash` ON `history_entry` (`expression_hash`);"
