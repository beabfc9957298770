package database

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inkwell-labs/lorekeeper/internal/kvstore"
)

// Initialize opens the sqlite database at dbPath and migrates the schema.
// The returned handle is passed explicitly to the components that need it.
func Initialize(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connected successfully")

	if err := db.AutoMigrate(&kvstore.Entry{}); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")
	return db, nil
}
