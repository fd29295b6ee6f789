package models

import (
	"time"
)

// DistributionProof documents that a request's food actually reached people:
// a photo plus an optional head count, recorded by whoever handled the
// distribution. A request can accumulate several proofs.
type DistributionProof struct {
	ID                 string    `gorm:"primaryKey;type:uuid" json:"id"`
	RequestID          string    `gorm:"index;not null" json:"request_id"`
	Request            *Request  `gorm:"foreignKey:RequestID" json:"request,omitempty"`
	PhotoURL           string    `gorm:"type:varchar(500);not null" json:"photo_url"`
	Description        string    `gorm:"type:text" json:"description,omitempty"`
	DistributedToCount *int      `json:"distributed_to_count,omitempty"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
}
