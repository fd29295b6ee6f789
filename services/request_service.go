package services

import (
	"errors"

	"food-share-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestService owns the request lifecycle: binding a request to an
// available donation, volunteer assignment and the status transitions that
// cascade into point awards.
type RequestService struct {
	DB           *gorm.DB
	Gamification *GamificationService
	Config       Config
}

func NewRequestService(db *gorm.DB, gamification *GamificationService, cfg Config) *RequestService {
	return &RequestService{DB: db, Gamification: gamification, Config: cfg}
}

// RequestDraft carries the caller-supplied fields for a new request.
// RequesterID is nil for anonymous intake (SMS / missed call).
type RequestDraft struct {
	DonationID      string               `json:"donation_id"`
	RequesterID     *string              `json:"requester_id"`
	RequesterType   models.RequesterType `json:"requester_type"`
	PickupAddress   string               `json:"pickup_address"`
	DeliveryAddress string               `json:"delivery_address"`
}

// CreateRequest binds a new PENDING request to a PENDING donation and flips
// the donation to ACCEPTED. The two writes are one transaction: the flip is
// a guarded update, so a concurrent claim on the same donation rolls the
// request back and surfaces a conflict.
func (s *RequestService) CreateRequest(draft *RequestDraft) (*models.Request, error) {
	switch draft.RequesterType {
	case models.RequesterTypeNGO, models.RequesterTypeVolunteer,
		models.RequesterTypeNeedy, models.RequesterTypeCompostAgency:
	default:
		return nil, &ValidationError{Message: "Unknown requester type"}
	}

	request := models.Request{
		ID:              uuid.NewString(),
		DonationID:      draft.DonationID,
		RequesterID:     draft.RequesterID,
		RequesterType:   draft.RequesterType,
		Status:          models.RequestStatusPending,
		PickupAddress:   draft.PickupAddress,
		DeliveryAddress: draft.DeliveryAddress,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var donation models.Donation
		if err := tx.Where("id = ?", draft.DonationID).First(&donation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("donation", draft.DonationID)
			}
			return storage("load donation", err)
		}
		if donation.Status != models.DonationStatusPending {
			return &ConflictError{Message: "Donation is not available"}
		}

		if draft.RequesterID != nil {
			var requester models.User
			if err := tx.Where("id = ?", *draft.RequesterID).First(&requester).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFound("requester", *draft.RequesterID)
				}
				return storage("load requester", err)
			}
		}

		if err := tx.Create(&request).Error; err != nil {
			return storage("create request", err)
		}

		res := tx.Model(&models.Donation{}).
			Where("id = ? AND status = ?", draft.DonationID, models.DonationStatusPending).
			Update("status", models.DonationStatusAccepted)
		if res.Error != nil {
			return storage("accept donation", res.Error)
		}
		if res.RowsAffected == 0 {
			// lost the race to another request
			return &ConflictError{Message: "Donation is not available"}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// AssignVolunteer sets the fulfillment volunteer and moves the request to
// ACCEPTED. The volunteer slot is written once: re-assignment conflicts.
func (s *RequestService) AssignVolunteer(requestID, volunteerID string) (*models.Request, error) {
	var request models.Request
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Donation").Where("id = ?", requestID).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("request", requestID)
			}
			return storage("load request", err)
		}
		if request.AssignedVolunteerID != nil {
			return &ConflictError{Message: "Request already has a volunteer"}
		}

		var volunteer models.User
		if err := tx.Where("id = ?", volunteerID).First(&volunteer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("volunteer", volunteerID)
			}
			return storage("load volunteer", err)
		}
		if volunteer.UserType != models.UserTypeVolunteer {
			return &ValidationError{Message: "User is not a volunteer"}
		}

		res := tx.Model(&models.Request{}).
			Where("id = ? AND assigned_volunteer_id IS NULL", requestID).
			Updates(map[string]interface{}{
				"assigned_volunteer_id": volunteerID,
				"status":                models.RequestStatusAccepted,
			})
		if res.Error != nil {
			return storage("assign volunteer", res.Error)
		}
		if res.RowsAffected == 0 {
			return &ConflictError{Message: "Request already has a volunteer"}
		}

		request.AssignedVolunteerID = &volunteerID
		request.Status = models.RequestStatusAccepted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// requestStatusRank orders the intended linear flow for strict mode.
var requestStatusRank = map[models.RequestStatus]int{
	models.RequestStatusPending:   0,
	models.RequestStatusAccepted:  1,
	models.RequestStatusRejected:  1,
	models.RequestStatusPickedUp:  2,
	models.RequestStatusDelivered: 3,
	models.RequestStatusComposted: 3,
}

// UpdateRequestStatus sets the request's status and fires the cascade
// awards. The previous-vs-new comparison rides on a compare-and-swap update
// (`status <> new`), so two concurrent identical updates can only award
// once: the loser swaps zero rows and credits nothing.
func (s *RequestService) UpdateRequestStatus(id string, status models.RequestStatus) (*models.Request, error) {
	if _, ok := requestStatusRank[status]; !ok {
		return nil, &ValidationError{Message: "Unknown request status"}
	}

	var request models.Request
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Donation").Preload("AssignedVolunteer").
			Where("id = ?", id).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("request", id)
			}
			return storage("load request", err)
		}

		if s.Config.StrictTransitions && requestStatusRank[status] <= requestStatusRank[request.Status] &&
			status != request.Status {
			return &ConflictError{Message: "Illegal status transition"}
		}

		res := tx.Model(&models.Request{}).
			Where("id = ? AND status <> ?", id, status).
			Update("status", status)
		if res.Error != nil {
			return storage("update request status", res.Error)
		}
		changed := res.RowsAffected == 1
		request.Status = status

		if !changed {
			return nil // status already held this value, nothing to award
		}

		foodName := ""
		if request.Donation != nil {
			foodName = request.Donation.FoodName
		}

		if status == models.RequestStatusDelivered && request.AssignedVolunteerID != nil {
			if err := s.Gamification.AddPointsTx(tx, *request.AssignedVolunteerID,
				s.Config.DeliveryCompletedPoints,
				"Completed delivery for: "+foodName,
				models.RelatedEntityDelivery, request.ID); err != nil {
				return err
			}
		}

		if status == models.RequestStatusComposted && request.RequesterID != nil {
			if err := s.Gamification.AddPointsTx(tx, *request.RequesterID,
				s.Config.CompostCompletedPoints,
				"Composted: "+foodName,
				models.RelatedEntityCompost, request.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *RequestService) GetAllRequests() ([]models.Request, error) {
	var requests []models.Request
	if err := s.DB.Preload("Donation").Preload("Requester").Preload("AssignedVolunteer").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, storage("load requests", err)
	}
	return requests, nil
}

func (s *RequestService) GetRequestsByRequester(requesterID string) ([]models.Request, error) {
	var requests []models.Request
	if err := s.DB.Preload("Donation").
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, storage("load requests by requester", err)
	}
	return requests, nil
}

func (s *RequestService) GetRequestsByVolunteer(volunteerID string) ([]models.Request, error) {
	var requests []models.Request
	if err := s.DB.Preload("Donation").
		Where("assigned_volunteer_id = ?", volunteerID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, storage("load requests by volunteer", err)
	}
	return requests, nil
}

func (s *RequestService) GetRequestsByDonation(donationID string) ([]models.Request, error) {
	var requests []models.Request
	if err := s.DB.Preload("Requester").Preload("AssignedVolunteer").
		Where("donation_id = ?", donationID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, storage("load requests by donation", err)
	}
	return requests, nil
}

func (s *RequestService) GetRequestByID(id string) (*models.Request, error) {
	var request models.Request
	err := s.DB.Preload("Donation").Preload("Requester").Preload("AssignedVolunteer").
		Where("id = ?", id).First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("request", id)
	}
	if err != nil {
		return nil, storage("load request", err)
	}
	return &request, nil
}
