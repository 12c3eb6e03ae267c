package repository

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rag-chat/internal/model"
	"rag-chat/pkg/db"
)

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

func createTestUser(t *testing.T, repo *UserRepository, name, email string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: email, Password: "hashed-password"}
	if err := repo.Create(user); err != nil {
		t.Fatalf("Failed to create test user %q: %v", name, err)
	}
	return user
}

func createTestGroup(t *testing.T, repo *GroupRepository, name string) *model.Group {
	t.Helper()
	group := &model.Group{Name: name}
	if err := repo.Create(group); err != nil {
		t.Fatalf("Failed to create test group %q: %v", name, err)
	}
	return group
}
