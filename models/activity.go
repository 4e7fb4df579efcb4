package models

import (
	"time"
)

// Activity types. One point may be earned per type per civil day.
const (
	ActivityCheckin  = "checkin"
	ActivityBook     = "book"
	ActivityClip     = "clip"
	ActivityCoaching = "coaching"
	ActivitySale     = "sale"
)

type Activity struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Type      string    `json:"type" gorm:"not null;type:varchar(20)"`
	// DateKey is the civil day (YYYY-MM-DD, Bangkok time) the activity counts
	// toward. Points and streaks are computed by comparing these strings, never
	// by device-local dates.
	DateKey string `json:"date_key" gorm:"not null;index;type:varchar(10)"`

	// Type-specific payload. Unused columns stay at their zero value.
	CheckinType string   `json:"checkin_type,omitempty" gorm:"type:varchar(10)"`
	Latitude    *float64 `json:"latitude,omitempty" gorm:"type:decimal(10,8)"`
	Longitude   *float64 `json:"longitude,omitempty" gorm:"type:decimal(11,8)"`
	BookTitle   string   `json:"book_title,omitempty"`
	ClipLink    string   `json:"clip_link,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Coachee     string   `json:"coachee,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`

	EvidenceURL string `json:"evidence_url,omitempty"`
}

func IsValidActivityType(t string) bool {
	switch t {
	case ActivityCheckin, ActivityBook, ActivityClip, ActivityCoaching, ActivitySale:
		return true
	}
	return false
}
