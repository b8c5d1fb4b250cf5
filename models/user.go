package models

import (
	"time"
)

type UserRole string

const (
	RoleDelegate UserRole = "delegate"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID             uint      `json:"id" gorm:"primarykey"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	Password       string    `json:"-" gorm:"not null"`
	FullName       string    `json:"full_name" gorm:"not null"`
	Institution    string    `json:"institution"`
	Phone          string    `json:"phone"`
	RegistrationID string    `json:"registration_id"`
	Role           UserRole  `json:"role" gorm:"default:'delegate'"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
