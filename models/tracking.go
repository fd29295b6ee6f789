package models

import (
	"time"
)

// Tracking is a volunteer location ping for an in-flight request. The
// service only stores pings; delivering them live to watchers is someone
// else's problem.
type Tracking struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	RequestID   string    `gorm:"index;not null" json:"request_id"`
	VolunteerID string    `gorm:"index;not null" json:"volunteer_id"`
	Latitude    float64   `gorm:"not null" json:"latitude"`
	Longitude   float64   `gorm:"not null" json:"longitude"`
	Timestamp   time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}
