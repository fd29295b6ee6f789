package services

import (
	"errors"

	"food-share-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackingService persists volunteer location pings for in-flight requests.
// It is a write-mostly sink; live delivery to watchers is out of scope.
type TrackingService struct {
	DB *gorm.DB
}

func NewTrackingService(db *gorm.DB) *TrackingService {
	return &TrackingService{DB: db}
}

// RecordLocation stores one ping. Only the request's assigned volunteer may
// report positions for it.
func (s *TrackingService) RecordLocation(requestID, volunteerID string, latitude, longitude float64) (*models.Tracking, error) {
	var request models.Request
	err := s.DB.Where("id = ?", requestID).First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("request", requestID)
	}
	if err != nil {
		return nil, storage("load request", err)
	}

	if request.AssignedVolunteerID == nil || *request.AssignedVolunteerID != volunteerID {
		return nil, &ValidationError{Message: "User is not the assigned volunteer for this request"}
	}

	ping := models.Tracking{
		ID:          uuid.NewString(),
		RequestID:   requestID,
		VolunteerID: volunteerID,
		Latitude:    latitude,
		Longitude:   longitude,
	}
	if err := s.DB.Create(&ping).Error; err != nil {
		return nil, storage("create tracking entry", err)
	}
	return &ping, nil
}

// GetLatestLocation returns the most recent ping for a request, or a not
// found error when no ping was ever recorded.
func (s *TrackingService) GetLatestLocation(requestID string) (*models.Tracking, error) {
	var ping models.Tracking
	err := s.DB.Where("request_id = ?", requestID).
		Order("timestamp DESC").
		First(&ping).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("tracking for request", requestID)
	}
	if err != nil {
		return nil, storage("load latest location", err)
	}
	return &ping, nil
}

// GetRoute returns every ping for a request in travel order.
func (s *TrackingService) GetRoute(requestID string) ([]models.Tracking, error) {
	var pings []models.Tracking
	if err := s.DB.Where("request_id = ?", requestID).
		Order("timestamp ASC").
		Find(&pings).Error; err != nil {
		return nil, storage("load route", err)
	}
	return pings, nil
}
