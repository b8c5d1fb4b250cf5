package models

import "time"

type UploadedFile struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	AbstractID uint      `json:"abstract_id" gorm:"not null;index"`
	FileName   string    `json:"file_name" gorm:"not null"`
	FilePath   string    `json:"file_path" gorm:"not null"`
	FileSize   int64     `json:"file_size"`
	CreatedAt  time.Time `json:"created_at"`
}
