package models

import "time"

// Download is an append-only record of one device download attempt.
type Download struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PrinterID    *uint     `gorm:"index" json:"printer_id"`
	BuildID      *uint     `gorm:"index" json:"build_id"`
	DownloadTime time.Time `gorm:"autoCreateTime" json:"download_time"`
	Status       string    `gorm:"size:32;default:initiated" json:"status"`
	ErrorMessage string    `gorm:"size:1024" json:"error_message"`
}

func (Download) TableName() string { return "Downloads" }

const (
	DownloadInitiated = "initiated"
	DownloadSuccess   = "success"
	DownloadFailed    = "failed"
)
