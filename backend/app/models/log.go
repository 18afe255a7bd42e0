package models

import "time"

// Log is an append-only operational row keyed to a printer. Reserved schema
// alongside Printers; migrated, not yet written by any endpoint.
type Log struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`
	PrinterID *uint     `gorm:"index" json:"printer_id"`
	Message   string    `gorm:"size:1024" json:"message"`
	Level     string    `gorm:"size:16;default:INFO" json:"level"`
}

func (Log) TableName() string { return "Logs" }
