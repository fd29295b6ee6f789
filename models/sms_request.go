package models

import (
	"time"
)

type SmsRequestType string

const (
	SmsRequestTypeFood       SmsRequestType = "FOOD_REQUEST"
	SmsRequestTypeMissedCall SmsRequestType = "MISSED_CALL"
)

type SmsRequestStatus string

const (
	SmsRequestStatusPending   SmsRequestStatus = "PENDING"
	SmsRequestStatusProcessed SmsRequestStatus = "PROCESSED"
	SmsRequestStatusRejected  SmsRequestStatus = "REJECTED"
)

// SmsRequest records non-digital intake (SMS or missed call) from people
// without app access. The intake worker turns pending food requests into
// anonymous donation requests.
type SmsRequest struct {
	ID              string           `gorm:"primaryKey;type:uuid" json:"id"`
	PhoneNumber     string           `gorm:"type:varchar(20);not null;index" json:"phone_number"`
	RequestType     SmsRequestType   `gorm:"type:varchar(16);not null" json:"request_type"`
	Status          SmsRequestStatus `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	LocationAddress string           `gorm:"type:text" json:"location_address"`
	CreatedAt       time.Time        `gorm:"autoCreateTime" json:"created_at"`
	ProcessedAt     *time.Time       `json:"processed_at,omitempty"`
}
