package models

import (
	"time"
)

// Badge is a static catalog entry, read-only after seeding. A badge is
// earned once the user's cumulative points reach PointsRequired.
type Badge struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name           string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	IconURL        string    `gorm:"type:varchar(500)" json:"icon_url,omitempty"`
	PointsRequired int       `gorm:"not null;index" json:"points_required"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// UserBadge is the awarded instance. The composite unique index is the
// invariant that makes badge grants idempotent under concurrent evaluation.
type UserBadge struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_user_badge" json:"user_id"`
	BadgeID   string    `gorm:"not null;uniqueIndex:idx_user_badge" json:"badge_id"`
	Badge     *Badge    `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
	AwardedAt time.Time `gorm:"autoCreateTime" json:"awarded_at"`
}

// DefaultBadges is the catalog seeded on first boot when the table is empty.
var DefaultBadges = []Badge{
	{Name: "First Donation", Description: "Made your first food donation", PointsRequired: 10},
	{Name: "First Delivery", Description: "Completed your first delivery", PointsRequired: 15},
	{Name: "Hero Donor", Description: "Donated 10 times", PointsRequired: 100},
	{Name: "Compost Champion", Description: "Helped compost 10 items", PointsRequired: 150},
	{Name: "Delivery Master", Description: "Completed 20 deliveries", PointsRequired: 300},
	{Name: "Super Hero", Description: "Donated 50 times", PointsRequired: 500},
	{Name: "Community Leader", Description: "Earned 1000 points", PointsRequired: 1000},
}
