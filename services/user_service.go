package services

import (
	"errors"

	"food-share-system/models"

	"gorm.io/gorm"
)

// UserService is the local user directory: category and approval lookups for
// the lifecycle services and the admin approval flow.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func (s *UserService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("user", id)
	}
	if err != nil {
		return nil, storage("load user", err)
	}
	return &user, nil
}

func (s *UserService) GetUsersByType(userType models.UserType) ([]models.User, error) {
	var users []models.User
	if err := s.DB.Where("user_type = ?", userType).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, storage("load users by type", err)
	}
	return users, nil
}

// GetPendingApprovals lists users still waiting for admin approval.
func (s *UserService) GetPendingApprovals() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Where("status = ?", models.UserStatusPending).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		return nil, storage("load pending users", err)
	}
	return users, nil
}

// UpdateUserStatus approves or rejects a user.
func (s *UserService) UpdateUserStatus(id string, status models.UserStatus) (*models.User, error) {
	switch status {
	case models.UserStatusPending, models.UserStatusApproved, models.UserStatusRejected:
	default:
		return nil, &ValidationError{Message: "Unknown user status"}
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.User{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return nil, storage("update user status", err)
	}
	user.Status = status
	return user, nil
}
