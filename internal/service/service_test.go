package service

import (
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rag-chat/pkg/config"
	"rag-chat/pkg/db"
)

func TestMain(m *testing.M) {
	if err := config.InitTest(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return gdb
}

func strPtr(s string) *string {
	return &s
}
