package models

import "time"

// PrinterType and Printer are reserved schema: migrated so that fleet
// registration can land without a schema change, but no current endpoint
// writes to them.

type PrinterType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;size:191;not null" json:"name"`
	Description string `gorm:"size:1024" json:"description"`
}

func (PrinterType) TableName() string { return "PrinterTypes" }

type Printer struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	TypeID    uint       `gorm:"not null;index" json:"type_id"`
	IPAddress string     `gorm:"size:64" json:"ip_address"`
	Location  string     `gorm:"size:255" json:"location"`
	Status    string     `gorm:"size:32;default:offline" json:"status"`
	LastSeen  *time.Time `json:"last_seen"`
}

func (Printer) TableName() string { return "Printers" }
