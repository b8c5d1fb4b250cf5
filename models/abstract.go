package models

import (
	"time"
)

type AbstractStatus string

const (
	StatusPending  AbstractStatus = "pending"
	StatusApproved AbstractStatus = "approved"
	StatusRejected AbstractStatus = "rejected"
	// StatusFinalSubmitted is reserved. It is counted by the statistics
	// aggregator but no operation transitions an abstract into it.
	StatusFinalSubmitted AbstractStatus = "final_submitted"
)

// ValidTransitionTarget reports whether a status may be assigned through the
// review workflow. The reserved final_submitted state is not assignable.
func ValidTransitionTarget(s AbstractStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Abstract struct {
	ID               uint           `json:"id" gorm:"primarykey"`
	UserID           uint           `json:"user_id" gorm:"not null;index"`
	User             *User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Title            string         `json:"title" gorm:"not null"`
	PresenterName    string         `json:"presenter_name" gorm:"not null"`
	InstitutionName  string         `json:"institution_name"`
	PresentationType string         `json:"presentation_type" gorm:"not null"`
	Category         string         `json:"category"`
	AbstractContent  string         `json:"abstract_content" gorm:"type:text"`
	CoAuthors        string         `json:"co_authors"`
	RegistrationID   string         `json:"registration_id"`
	Status           AbstractStatus `json:"status" gorm:"default:'pending';index"`
	AbstractNumber   string         `json:"abstract_number" gorm:"uniqueIndex;not null"`
	ReviewerComments *string        `json:"reviewer_comments"`

	// Legacy single-file slot, kept alongside the uploaded_files rows.
	FilePath *string `json:"file_path"`
	FileName *string `json:"file_name"`
	FileSize *int64  `json:"file_size"`

	Files []UploadedFile `json:"files,omitempty" gorm:"foreignKey:AbstractID"`

	SubmissionDate time.Time `json:"submission_date" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EffectiveStatus treats a missing status as pending.
func (a *Abstract) EffectiveStatus() AbstractStatus {
	if a.Status == "" {
		return StatusPending
	}
	return a.Status
}

// HasFile reconciles the legacy single-file slot with the uploaded_files
// rows; either source makes the abstract count as having an attachment.
func (a *Abstract) HasFile() bool {
	if len(a.Files) > 0 {
		return true
	}
	return a.FileName != nil && a.FilePath != nil && *a.FileName != "" && *a.FilePath != ""
}
