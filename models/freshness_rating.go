package models

import (
	"time"
)

// FreshnessRating is a 1-5 score left on a donation by a recipient.
// One rating per (donation, rater) pair, enforced by the composite index.
type FreshnessRating struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	DonationID string    `gorm:"not null;uniqueIndex:idx_donation_rater" json:"donation_id"`
	RatedByID  string    `gorm:"not null;uniqueIndex:idx_donation_rater" json:"rated_by_id"`
	RatedBy    *User     `gorm:"foreignKey:RatedByID" json:"rated_by,omitempty"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:varchar(500)" json:"comment,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
