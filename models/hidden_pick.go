package models

import "time"

// HiddenPick is the moderation overlay for a pick. Its presence is the
// signal: at most one row exists per pick (unique pick_id), a repeated hide
// replaces the reason, unhide deletes the row. The pick itself is untouched.
type HiddenPick struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PickID    uint      `gorm:"uniqueIndex;not null" json:"pick_id"`
	HiddenBy  string    `gorm:"size:64" json:"hidden_by"`
	Reason    string    `gorm:"size:300" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
