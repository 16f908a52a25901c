package models

import "gorm.io/gorm"

type Game struct {
	gorm.Model

	Code     string `gorm:"uniqueIndex;size:64" json:"code"`
	Name     string `gorm:"size:128" json:"name"`
	Category string `gorm:"size:32;index" json:"category"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}
