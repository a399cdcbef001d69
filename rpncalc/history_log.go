package main

import (
	"errors"
	"math"
	"os"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"rpncalc-go/model"
)

// HistoryLog appends evaluations to the history database shared with
// rpncalc-server and lists them back for "-t history".
type HistoryLog struct {
	conn       *sqlite.Conn
	stmtRecord *sqlite.Stmt
	stmtRecent *sqlite.Stmt
	ttl        time.Duration
}

type HistoryRow struct {
	Expression string
	Result     float64
	Error      string
	Hits       int64
	LastAccess time.Time
}

func OpenHistoryLog(dbPath string, ttl time.Duration) (*HistoryLog, error) {
	needCreateTable := false
	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		needCreateTable = true
	} else if err != nil {
		return nil, err
	}
	flag := sqlite.OpenReadWrite
	if needCreateTable {
		flag |= sqlite.OpenCreate
	}
	conn, err := sqlite.OpenConn(dbPath, flag)
	if err != nil {
		return nil, err
	}
	log := &HistoryLog{conn: conn, ttl: ttl}
	if err := log.prepare(); err != nil {
		conn.Close()
		return nil, err
	}
	return log, nil
}

func (this *HistoryLog) prepare() (err error) {
	// The server may have created the file without the table, so the DDL
	// runs on every open.
	if err = sqlitex.ExecuteTransient(this.conn, model.HistoryTableDDL, nil); err != nil {
		return err
	}
	if err = sqlitex.ExecuteTransient(this.conn, model.HistoryIndexDDL, nil); err != nil {
		return err
	}
	this.stmtRecord, err = this.conn.Prepare("INSERT INTO history_entry (`expression`, `expression_hash`, `result`, `error`, " +
		"`hits`, `created_at`, `last_access`, `expired_duration`, `deleted`) VALUES" +
		" ($expression, $expression_hash, $result, $error, 1, $now, $now, $expired_duration, 0)" +
		" ON CONFLICT (`expression_hash`) DO UPDATE SET `result` = excluded.`result`, `error` = excluded.`error`," +
		" `hits` = `hits` + 1, `last_access` = excluded.`last_access`," +
		" `expired_duration` = excluded.`expired_duration`, `deleted` = 0;")
	if err != nil {
		return err
	}
	this.stmtRecent, err = this.conn.Prepare("SELECT `expression`, `result`, `error`, `hits`, `last_access` FROM history_entry " +
		"WHERE `deleted` = 0 ORDER BY `last_access` DESC, `id` DESC LIMIT $limit;")
	return err
}

func (this *HistoryLog) Close() error {
	return this.conn.Close()
}

// Record stores one evaluation of expr. A repeated expression bumps the
// hit count of its existing row.
func (this *HistoryLog) Record(expr string, result float64, evalErr error) error {
	defer METRIC_RECORD("history").Stop()
	defer this.stmtRecord.Reset()
	entry := model.NewHistoryEntry(expr, result, evalErr, this.ttl, time.Now())
	this.stmtRecord.SetText("$expression", entry.Expression)
	this.stmtRecord.SetText("$expression_hash", entry.ExpressionHash)
	if entry.Result != nil {
		this.stmtRecord.SetFloat("$result", *entry.Result)
	} else {
		this.stmtRecord.SetNull("$result")
	}
	this.stmtRecord.SetText("$error", entry.Error)
	this.stmtRecord.SetInt64("$now", entry.LastAccess)
	this.stmtRecord.SetInt64("$expired_duration", entry.ExpiredDuration)
	_, err := this.stmtRecord.Step()
	return err
}

// Recent returns up to limit rows, most recently used first.
func (this *HistoryLog) Recent(limit int) ([]HistoryRow, error) {
	defer this.stmtRecent.Reset()
	this.stmtRecent.SetInt64("$limit", int64(limit))
	var rows []HistoryRow
	for {
		hasRow, err := this.stmtRecent.Step()
		if err != nil {
			return nil, err
		}
		if !hasRow {
			break
		}
		result := math.NaN()
		if this.stmtRecent.ColumnType(1) != sqlite.TypeNull {
			result = this.stmtRecent.GetFloat("result")
		}
		rows = append(rows, HistoryRow{
			Expression: this.stmtRecent.GetText("expression"),
			Result:     result,
			Error:      this.stmtRecent.GetText("error"),
			Hits:       this.stmtRecent.GetInt64("hits"),
			LastAccess: time.Unix(this.stmtRecent.GetInt64("last_access"), 0),
		})
	}
	return rows, nil
}
