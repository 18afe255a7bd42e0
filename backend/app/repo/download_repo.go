package repo

import (
	"gorm.io/gorm"

	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/models"
)

type DownloadRepository struct{ db *gorm.DB }

func NewDownloadRepository(db *gorm.DB) *DownloadRepository { return &DownloadRepository{db: db} }

func (r *DownloadRepository) Create(d *models.Download) error { return r.db.Create(d).Error }

func (r *DownloadRepository) LatestByBuild(buildID uint, limit int) ([]models.Download, error) {
	if limit <= 0 {
		limit = 1
	}
	var out []models.Download
	err := r.db.Where("build_id = ?", buildID).Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}
