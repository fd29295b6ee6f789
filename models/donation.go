package models

import (
	"time"
)

type DonationType string

const (
	DonationTypeHuman   DonationType = "HUMAN"
	DonationTypeDog     DonationType = "DOG"
	DonationTypeCompost DonationType = "COMPOST"
)

type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "PENDING"
	DonationStatusAccepted  DonationStatus = "ACCEPTED"
	DonationStatusPickedUp  DonationStatus = "PICKED_UP"
	DonationStatusDelivered DonationStatus = "DELIVERED"
	DonationStatusComposted DonationStatus = "COMPOSTED"
	DonationStatusExpired   DonationStatus = "EXPIRED"
)

// Donation is an offer of surplus food awaiting pickup. Status only ever
// moves forward along the lifecycle; once a request claims it, the donation
// is ACCEPTED and no further request may bind to it.
type Donation struct {
	ID          string         `gorm:"primaryKey;type:uuid" json:"id"`
	DonorID     string         `gorm:"index;not null" json:"donor_id"`
	Donor       *User          `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	FoodName    string         `gorm:"type:varchar(200);not null" json:"food_name"`
	Description string         `gorm:"type:text" json:"description"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	ExpiryDate  time.Time      `gorm:"not null;index" json:"expiry_date"`
	Type        DonationType   `gorm:"column:donation_type;type:varchar(16);not null;index" json:"donation_type"`
	Status      DonationStatus `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	PhotoURL    string         `gorm:"type:varchar(500)" json:"photo_url,omitempty"`
	Latitude    *float64       `json:"latitude,omitempty"`
	Longitude   *float64       `json:"longitude,omitempty"`
	Address     string         `gorm:"type:text" json:"address"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}
