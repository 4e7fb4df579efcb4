package models

import (
	"time"

	"gorm.io/gorm"
)

type RefreshToken struct {
	ID             uint           `gorm:"primaryKey;autoIncrement"`
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	UserID         uint           `json:"user_id" gorm:"not null;index"`
	Token          string         `json:"token" gorm:"not null;index"`
	ExpirationDate time.Time      `json:"expiry" gorm:"not null"`
}
