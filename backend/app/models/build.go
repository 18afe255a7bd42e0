package models

// Build is one uploaded firmware archive plus its device-targeting metadata.
//
// UploadTime is stored as a "YYYY-MM-DD HH:MM:SS" string stamped in a fixed
// IST offset at insert, matching the historical rows already in production
// databases. The format orders lexicographically, so recency queries sort on
// the raw column. Size is the archive size pre-formatted as a decimal-MB
// string for direct display.
type Build struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Version     string `gorm:"size:191;index:idx_builds_target,priority:4" json:"version"`
	Description string `gorm:"size:1024" json:"description"`
	UploadedBy  string `gorm:"size:191" json:"uploaded_by"`
	UploadTime  string `gorm:"size:32;index" json:"upload_time"`
	FilePath    string `gorm:"size:512" json:"file_path"`
	PrinterType string `gorm:"size:191;index:idx_builds_target,priority:1" json:"printer_type"`
	SubType     string `gorm:"size:191;index:idx_builds_target,priority:2" json:"sub_type"`
	Size        string `gorm:"size:32" json:"size"`
	Make        string `gorm:"size:191;index:idx_builds_target,priority:3" json:"make"`
}

func (Build) TableName() string { return "Builds" }
