package services

import (
	"errors"
	"time"

	"food-share-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SmsService records non-digital intake (SMS / missed call) and turns
// pending food requests into anonymous donation requests.
type SmsService struct {
	DB       *gorm.DB
	Requests *RequestService
}

func NewSmsService(db *gorm.DB, requests *RequestService) *SmsService {
	return &SmsService{DB: db, Requests: requests}
}

// RecordIntake persists an incoming SMS or missed call as PENDING.
func (s *SmsService) RecordIntake(phoneNumber string, requestType models.SmsRequestType, locationAddress string) (*models.SmsRequest, error) {
	if phoneNumber == "" {
		return nil, &ValidationError{Message: "Phone number is required"}
	}
	switch requestType {
	case models.SmsRequestTypeFood, models.SmsRequestTypeMissedCall:
	default:
		return nil, &ValidationError{Message: "Unknown SMS request type"}
	}

	intake := models.SmsRequest{
		ID:              uuid.NewString(),
		PhoneNumber:     phoneNumber,
		RequestType:     requestType,
		Status:          models.SmsRequestStatusPending,
		LocationAddress: locationAddress,
	}
	if err := s.DB.Create(&intake).Error; err != nil {
		return nil, storage("create sms request", err)
	}
	return &intake, nil
}

func (s *SmsService) GetPendingIntake() ([]models.SmsRequest, error) {
	var rows []models.SmsRequest
	if err := s.DB.Where("status = ?", models.SmsRequestStatusPending).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, storage("load pending sms requests", err)
	}
	return rows, nil
}

// ProcessIntake fulfills one pending intake row. Food requests claim the
// oldest-expiring available HUMAN donation as an anonymous request; when no
// donation is available the row stays PENDING for the next pass. Missed
// calls carry no fulfillment here and are simply marked processed for the
// callback queue.
func (s *SmsService) ProcessIntake(id string) (*models.SmsRequest, error) {
	var intake models.SmsRequest
	err := s.DB.Where("id = ?", id).First(&intake).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("sms request", id)
	}
	if err != nil {
		return nil, storage("load sms request", err)
	}
	if intake.Status != models.SmsRequestStatusPending {
		return nil, &ConflictError{Message: "SMS request already processed"}
	}

	if intake.RequestType == models.SmsRequestTypeFood {
		var donation models.Donation
		err := s.DB.Where("donation_type = ? AND status = ?",
			models.DonationTypeHuman, models.DonationStatusPending).
			Order("expiry_date ASC").
			First(&donation).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &intake, nil // nothing available yet, retry later
		}
		if err != nil {
			return nil, storage("find available donation", err)
		}

		_, err = s.Requests.CreateRequest(&RequestDraft{
			DonationID:      donation.ID,
			RequesterType:   models.RequesterTypeNeedy,
			DeliveryAddress: intake.LocationAddress,
		})
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			return &intake, nil // donation claimed meanwhile, retry later
		}
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	if err := s.DB.Model(&models.SmsRequest{}).
		Where("id = ?", intake.ID).
		Updates(map[string]interface{}{
			"status":       models.SmsRequestStatusProcessed,
			"processed_at": now,
		}).Error; err != nil {
		return nil, storage("mark sms request processed", err)
	}
	intake.Status = models.SmsRequestStatusProcessed
	intake.ProcessedAt = &now
	return &intake, nil
}

// RejectIntake marks an intake row rejected (operator decision).
func (s *SmsService) RejectIntake(id string) (*models.SmsRequest, error) {
	var intake models.SmsRequest
	err := s.DB.Where("id = ?", id).First(&intake).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("sms request", id)
	}
	if err != nil {
		return nil, storage("load sms request", err)
	}
	if intake.Status != models.SmsRequestStatusPending {
		return nil, &ConflictError{Message: "SMS request already processed"}
	}

	now := time.Now()
	if err := s.DB.Model(&models.SmsRequest{}).
		Where("id = ?", intake.ID).
		Updates(map[string]interface{}{
			"status":       models.SmsRequestStatusRejected,
			"processed_at": now,
		}).Error; err != nil {
		return nil, storage("mark sms request rejected", err)
	}
	intake.Status = models.SmsRequestStatusRejected
	intake.ProcessedAt = &now
	return &intake, nil
}
