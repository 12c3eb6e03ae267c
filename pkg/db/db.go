package db

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"rag-chat/internal/model"
)

// Init opens the relational database and migrates the schema. The partial
// unique indexes declared on the models (active-partition uniqueness) are
// created here as part of AutoMigrate.
func Init(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}

	log.Println("Database connected and migrated successfully")
	return gdb, nil
}

// Migrate creates or updates the tables for all registered models.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&model.User{}, &model.Group{}, &model.Membership{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
