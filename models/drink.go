package models

import (
	"time"
)

type DrinkCategory string

const (
	DrinkCoffee DrinkCategory = "COFFEE"
	DrinkTea    DrinkCategory = "TEA"
	DrinkEnergy DrinkCategory = "ENERGY"
	DrinkSoda   DrinkCategory = "SODA"
	DrinkOther  DrinkCategory = "OTHER"
)

type Drink struct {
	ID         string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name       string        `json:"name" binding:"required" gorm:"not null"`
	Brand      string        `json:"brand"`
	Category   DrinkCategory `json:"category" gorm:"type:varchar(20);default:'OTHER'"`
	SizeMl     int           `json:"sizeMl" binding:"required,gt=0"`
	CaffeineMg int           `json:"caffeineMg" binding:"required,gte=0"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}
