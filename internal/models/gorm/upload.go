package gorm

import "time"

// Upload is the audit record written after every ingestion run.
type Upload struct {
	ID          uint   `gorm:"primaryKey"`
	Filename    string `gorm:"not null"`
	Format      string `gorm:"not null"`
	TargetTable string
	RowsWritten int
	RowsSkipped int
	CreatedAt   time.Time
}

func (Upload) TableName() string {
	return "uploads"
}
