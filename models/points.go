package models

import (
	"time"
)

// UserPoints holds the cumulative balance, one row per user, created lazily
// on the first award. Level is derived from TotalPoints and stored
// denormalized for cheap leaderboard reads.
type UserPoints struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string    `gorm:"uniqueIndex;not null" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TotalPoints int       `gorm:"not null;default:0" json:"total_points"`
	Level       int       `gorm:"not null;default:1" json:"level"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type RelatedEntityType string

const (
	RelatedEntityDonation RelatedEntityType = "DONATION"
	RelatedEntityDelivery RelatedEntityType = "DELIVERY"
	RelatedEntityCompost  RelatedEntityType = "COMPOST"
	RelatedEntityBadge    RelatedEntityType = "BADGE"
)

// PointsHistory is the append-only audit trail of every point-earning event.
// Rows are never updated or deleted.
type PointsHistory struct {
	ID                string            `gorm:"primaryKey;type:uuid" json:"id"`
	UserID            string            `gorm:"index;not null" json:"user_id"`
	Points            int               `gorm:"not null" json:"points"`
	Reason            string            `gorm:"type:varchar(200);not null" json:"reason"`
	RelatedEntityType RelatedEntityType `gorm:"type:varchar(16);not null" json:"related_entity_type"`
	RelatedEntityID   string            `json:"related_entity_id"`
	CreatedAt         time.Time         `gorm:"autoCreateTime;index" json:"created_at"`
}
