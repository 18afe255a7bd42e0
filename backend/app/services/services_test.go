package services

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/models"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/repo"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/storage"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Build{}, &models.Download{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestBuildService(t *testing.T) (*BuildService, *storage.Store) {
	t.Helper()
	db := openTestDB(t)
	store, err := storage.New(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	svc := NewBuildService(repo.NewBuildRepository(db), repo.NewDownloadRepository(db), store, zerolog.Nop())
	return svc, store
}
