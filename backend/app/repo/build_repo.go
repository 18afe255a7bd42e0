package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/models"
)

type BuildRepository struct{ db *gorm.DB }

func NewBuildRepository(db *gorm.DB) *BuildRepository { return &BuildRepository{db: db} }

func (r *BuildRepository) Create(b *models.Build) error { return r.db.Create(b).Error }

// ListAll returns every build, newest upload first.
func (r *BuildRepository) ListAll() ([]models.Build, error) {
	var out []models.Build
	err := r.db.Order("upload_time DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *BuildRepository) FindByID(id uint) (*models.Build, error) {
	var b models.Build
	err := r.db.First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Resolve finds the build for an exact (printer_type, sub_type, make, version)
// key. Version match is plain string equality against the stored build number.
// When several rows share the key the most recently uploaded wins, with id as
// the tie-break for same-second uploads. Returns (nil, nil) when no row
// matches.
func (r *BuildRepository) Resolve(printerType, subType, mke, version string) (*models.Build, error) {
	var b models.Build
	err := r.db.
		Where("printer_type = ? AND sub_type = ? AND make = ? AND version = ?", printerType, subType, mke, version).
		Order("upload_time DESC, id DESC").
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// FindByTarget returns all builds for a device profile, newest first.
func (r *BuildRepository) FindByTarget(printerType, subType, mke string) ([]models.Build, error) {
	var out []models.Build
	err := r.db.
		Where("printer_type = ? AND sub_type = ? AND make = ?", printerType, subType, mke).
		Order("upload_time DESC, id DESC").
		Find(&out).Error
	return out, err
}

// DeleteByID removes the row. Returns (false, nil) when the id does not exist.
func (r *BuildRepository) DeleteByID(id uint) (bool, error) {
	res := r.db.Delete(&models.Build{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
