package models

import (
	"time"
)

// Intake is one logged consumption. CaffeineMg is denormalized from the drink
// at log time so later catalog edits do not rewrite history.
type Intake struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID     string    `json:"userId" gorm:"type:uuid;not null;index"`
	DrinkID    string    `json:"drinkId" gorm:"type:uuid;not null"`
	Servings   float64   `json:"servings" gorm:"default:1"`
	CaffeineMg int       `json:"caffeineMg"`
	ConsumedAt time.Time `json:"consumedAt"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type IntakeCreate struct {
	DrinkID    string     `json:"drinkId" binding:"required"`
	Servings   float64    `json:"servings"`
	ConsumedAt *time.Time `json:"consumedAt"`
	Notes      string     `json:"notes"`
}

type IntakeUpdate struct {
	Servings   *float64   `json:"servings"`
	ConsumedAt *time.Time `json:"consumedAt"`
	Notes      *string    `json:"notes"`
}
