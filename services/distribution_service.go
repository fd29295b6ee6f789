package services

import (
	"errors"

	"food-share-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DistributionService records distribution proofs: photo evidence that a
// request's food reached recipients, with an optional head count.
type DistributionService struct {
	DB *gorm.DB
}

func NewDistributionService(db *gorm.DB) *DistributionService {
	return &DistributionService{DB: db}
}

// RecordProof attaches a proof to a request. The photo URL is mandatory;
// description and head count are not. The request's status is not checked —
// proofs may arrive before the status update that closes the delivery.
func (s *DistributionService) RecordProof(requestID, photoURL, description string, distributedToCount *int) (*models.DistributionProof, error) {
	if photoURL == "" {
		return nil, &ValidationError{Message: "Proof photo is required"}
	}
	if distributedToCount != nil && *distributedToCount < 0 {
		return nil, &ValidationError{Message: "Distributed count cannot be negative"}
	}

	var request models.Request
	err := s.DB.Select("id").Where("id = ?", requestID).First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("request", requestID)
	}
	if err != nil {
		return nil, storage("load request", err)
	}

	proof := models.DistributionProof{
		ID:                 uuid.NewString(),
		RequestID:          requestID,
		PhotoURL:           photoURL,
		Description:        description,
		DistributedToCount: distributedToCount,
	}
	if err := s.DB.Create(&proof).Error; err != nil {
		return nil, storage("create distribution proof", err)
	}
	return &proof, nil
}

// GetProofsByRequest returns a request's proofs, newest first.
func (s *DistributionService) GetProofsByRequest(requestID string) ([]models.DistributionProof, error) {
	var proofs []models.DistributionProof
	if err := s.DB.Where("request_id = ?", requestID).
		Order("created_at DESC").
		Find(&proofs).Error; err != nil {
		return nil, storage("load distribution proofs", err)
	}
	return proofs, nil
}
