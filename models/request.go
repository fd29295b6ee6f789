package models

import (
	"time"
)

type RequesterType string

const (
	RequesterTypeNGO           RequesterType = "NGO"
	RequesterTypeVolunteer     RequesterType = "VOLUNTEER"
	RequesterTypeNeedy         RequesterType = "NEEDY"
	RequesterTypeCompostAgency RequesterType = "COMPOST_AGENCY"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusAccepted  RequestStatus = "ACCEPTED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusPickedUp  RequestStatus = "PICKED_UP"
	RequestStatusDelivered RequestStatus = "DELIVERED"
	RequestStatusComposted RequestStatus = "COMPOSTED"
)

// Request is a claim against a donation. The donation reference is immutable
// after creation. RequesterID is nil for anonymous intake (SMS / missed
// call); point awards that need a requester are skipped for those.
type Request struct {
	ID                  string        `gorm:"primaryKey;type:uuid" json:"id"`
	DonationID          string        `gorm:"index;not null" json:"donation_id"`
	Donation            *Donation     `gorm:"foreignKey:DonationID" json:"donation,omitempty"`
	RequesterID         *string       `gorm:"index" json:"requester_id,omitempty"`
	Requester           *User         `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	RequesterType       RequesterType `gorm:"type:varchar(20);not null" json:"requester_type"`
	Status              RequestStatus `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	AssignedVolunteerID *string       `gorm:"index" json:"assigned_volunteer_id,omitempty"`
	AssignedVolunteer   *User         `gorm:"foreignKey:AssignedVolunteerID" json:"assigned_volunteer,omitempty"`
	PickupAddress       string        `gorm:"type:text" json:"pickup_address"`
	DeliveryAddress     string        `gorm:"type:text" json:"delivery_address"`
	CreatedAt           time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}
