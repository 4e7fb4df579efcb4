package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

type User struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Nickname  string         `gorm:"unique;not null" json:"nickname"`
	FullName  string         `json:"full_name"`
	Password  *string        `gorm:"column:password" json:"-"` // Don't expose password in JSON
	Avatar    string         `json:"avatar"`
	// Upline is a plain nickname reference, not a foreign key. It may name a user
	// that does not exist yet (members register in any order).
	Upline        string         `gorm:"index" json:"upline"`
	Role          string         `gorm:"not null;default:member" json:"role"`
	Provider      string         `gorm:"default:local" json:"provider"`
	GoogleID      *string        `json:"-"`
	Points        int            `gorm:"not null;default:0" json:"points"`
	Streak        int            `gorm:"not null;default:0" json:"streak"`
	History       []Activity     `json:"history" gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
