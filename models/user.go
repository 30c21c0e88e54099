package models

import (
	"time"
)

type Role string

const (
	AdminRole Role = "ADMIN"
	UserRole  Role = "USER"
)

type User struct {
	ID             string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email          string    `json:"email" binding:"required,email" gorm:"uniqueIndex;not null"`
	Password       string    `json:"password,omitempty" binding:"required,min=6"`
	UserName       string    `json:"username"`
	Role           Role      `json:"role" gorm:"type:varchar(10);default:'USER'"`
	ProfilePicture string    `json:"profilePicture"`
	DailyLimitMg   int       `json:"dailyLimitMg" gorm:"default:400"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type UserLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate carries the profile fields a user can change themselves.
type UserUpdate struct {
	UserName     *string `json:"username"`
	DailyLimitMg *int    `json:"dailyLimitMg"`
}
