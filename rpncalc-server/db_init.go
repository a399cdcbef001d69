package main

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rpncalc-go/model"
)

var DB *gorm.DB = nil

func migrate() error {
	return DB.AutoMigrate(&model.HistoryEntry{})
}

func OpenDb(dbPath string) (err error) {
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	// one writer; also keeps ":memory:" databases on a single connection
	sqlDB.SetMaxOpenConns(1)
	err = migrate()
	return
}

func CloseDb() (err error) {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	err = sqlDB.Close()
	DB = nil
	return
}
