package models

import (
	"time"

	"gorm.io/datatypes"
)

// Pick is a message forwarded from a monitored channel by the ingest bot.
// Rows are written once at ingestion and never mutated or hard-deleted;
// moderation works through the HiddenPick overlay instead.
type Pick struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ChannelID   string         `gorm:"size:64;index" json:"channelId"`
	ChannelName string         `gorm:"size:128" json:"channelName"`
	AuthorID    string         `gorm:"size:64" json:"authorId"`
	AuthorName  string         `gorm:"size:128" json:"authorName"`
	Content     string         `gorm:"type:text" json:"content"`
	Attachments datatypes.JSON `json:"attachments"` // stored as received, no validation
	Embeds      datatypes.JSON `json:"embeds"`      // stored as received, no validation
	// CreatedAt is the producer-supplied message timestamp; null when the
	// producer sent none. GORM's automatic create-time fill is disabled so a
	// null stays null.
	CreatedAt *time.Time `gorm:"autoCreateTime:false" json:"createdAt"`
	// ReceivedAt is assigned by this service on insert and drives list ordering.
	ReceivedAt time.Time `gorm:"index;autoCreateTime" json:"receivedAt"`
}
