package models

import (
	"time"
)

type UserType string

const (
	UserTypeHotel         UserType = "HOTEL"
	UserTypeNGO           UserType = "NGO"
	UserTypeNeedy         UserType = "NEEDY"
	UserTypeVolunteer     UserType = "VOLUNTEER"
	UserTypeCompostAgency UserType = "COMPOST_AGENCY"
	UserTypeAdmin         UserType = "ADMIN"
)

type UserStatus string

const (
	UserStatusPending  UserStatus = "PENDING"
	UserStatusApproved UserStatus = "APPROVED"
	UserStatusRejected UserStatus = "REJECTED"
)

// User is the local mirror of an identity owned by the auth gateway.
// Credentials never live here; the service only needs the category and
// approval status to validate donors, requesters and volunteers.
type User struct {
	ID        string     `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string     `gorm:"uniqueIndex;not null" json:"username"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	FullName  string     `json:"full_name"`
	Phone     string     `gorm:"type:varchar(20)" json:"phone"`
	UserType  UserType   `gorm:"type:varchar(20);not null;index" json:"user_type"`
	Status    UserStatus `gorm:"type:varchar(16);default:'PENDING';index" json:"status"`
	Address   string     `gorm:"type:text" json:"address"`
	Latitude  *float64   `json:"latitude,omitempty"`
	Longitude *float64   `json:"longitude,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
