package services

import (
	"errors"
	"time"

	"food-share-system/models"
	"food-share-system/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonationService owns the donation lifecycle: creation, explicit status
// updates and the recurring expiry sweep.
type DonationService struct {
	DB           *gorm.DB
	Gamification *GamificationService
	Config       Config
}

func NewDonationService(db *gorm.DB, gamification *GamificationService, cfg Config) *DonationService {
	return &DonationService{DB: db, Gamification: gamification, Config: cfg}
}

// DonationDraft carries the caller-supplied fields for a new donation.
type DonationDraft struct {
	FoodName    string              `json:"food_name"`
	Description string              `json:"description"`
	Quantity    int                 `json:"quantity"`
	ExpiryDate  time.Time           `json:"expiry_date"`
	Type        models.DonationType `json:"donation_type"`
	PhotoURL    string              `json:"photo_url"`
	Latitude    *float64            `json:"latitude"`
	Longitude   *float64            `json:"longitude"`
	Address     string              `json:"address"`
}

func (d *DonationDraft) validate() error {
	if d.FoodName == "" {
		return &ValidationError{Message: "Food name is required"}
	}
	if d.Quantity <= 0 {
		return &ValidationError{Message: "Quantity must be positive"}
	}
	switch d.Type {
	case models.DonationTypeHuman, models.DonationTypeDog, models.DonationTypeCompost:
	default:
		return &ValidationError{Message: "Unknown donation type"}
	}
	return nil
}

// CreateDonation persists a new PENDING donation and credits the donor the
// fixed creation award. Both writes share one transaction.
func (s *DonationService) CreateDonation(donorID string, draft *DonationDraft) (*models.Donation, error) {
	if err := draft.validate(); err != nil {
		return nil, err
	}

	donation := models.Donation{
		ID:          uuid.NewString(),
		DonorID:     donorID,
		FoodName:    utils.NormalizeFoodName(draft.FoodName),
		Description: draft.Description,
		Quantity:    draft.Quantity,
		ExpiryDate:  draft.ExpiryDate,
		Type:        draft.Type,
		Status:      models.DonationStatusPending,
		PhotoURL:    draft.PhotoURL,
		Latitude:    draft.Latitude,
		Longitude:   draft.Longitude,
		Address:     draft.Address,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var donor models.User
		if err := tx.Where("id = ?", donorID).First(&donor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("donor", donorID)
			}
			return storage("load donor", err)
		}

		if err := tx.Create(&donation).Error; err != nil {
			return storage("create donation", err)
		}

		return s.Gamification.AddPointsTx(tx, donorID, s.Config.DonationCreatedPoints,
			"Created food donation: "+donation.FoodName,
			models.RelatedEntityDonation, donation.ID)
	})
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

func (s *DonationService) GetAllDonations() ([]models.Donation, error) {
	var donations []models.Donation
	if err := s.DB.Preload("Donor").Order("created_at DESC").Find(&donations).Error; err != nil {
		return nil, storage("load donations", err)
	}
	return donations, nil
}

func (s *DonationService) GetDonationsByDonor(donorID string) ([]models.Donation, error) {
	var donations []models.Donation
	if err := s.DB.Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, storage("load donations by donor", err)
	}
	return donations, nil
}

func (s *DonationService) GetDonationsByType(donationType models.DonationType) ([]models.Donation, error) {
	var donations []models.Donation
	if err := s.DB.Where("donation_type = ?", donationType).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, storage("load donations by type", err)
	}
	return donations, nil
}

// GetAvailableDonations lists PENDING donations of a type, i.e. the ones a
// request can still bind to.
func (s *DonationService) GetAvailableDonations(donationType models.DonationType) ([]models.Donation, error) {
	var donations []models.Donation
	if err := s.DB.Where("donation_type = ? AND status = ?", donationType, models.DonationStatusPending).
		Order("expiry_date ASC").
		Find(&donations).Error; err != nil {
		return nil, storage("load available donations", err)
	}
	return donations, nil
}

func (s *DonationService) GetDonationByID(id string) (*models.Donation, error) {
	var donation models.Donation
	err := s.DB.Preload("Donor").Where("id = ?", id).First(&donation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("donation", id)
	}
	if err != nil {
		return nil, storage("load donation", err)
	}
	return &donation, nil
}

// donationStatusRank orders the lifecycle for strict mode. Higher rank means
// further along; EXPIRED is terminal.
var donationStatusRank = map[models.DonationStatus]int{
	models.DonationStatusPending:   0,
	models.DonationStatusAccepted:  1,
	models.DonationStatusPickedUp:  2,
	models.DonationStatusDelivered: 3,
	models.DonationStatusComposted: 3,
	models.DonationStatusExpired:   4,
}

// UpdateDonationStatus sets the donation's status. By default any value is
// accepted (admin override); with StrictTransitions only forward moves and
// idempotent re-sends of the current status pass.
func (s *DonationService) UpdateDonationStatus(id string, status models.DonationStatus) (*models.Donation, error) {
	if _, ok := donationStatusRank[status]; !ok {
		return nil, &ValidationError{Message: "Unknown donation status"}
	}

	donation, err := s.GetDonationByID(id)
	if err != nil {
		return nil, err
	}

	if s.Config.StrictTransitions && donationStatusRank[status] <= donationStatusRank[donation.Status] &&
		status != donation.Status {
		return nil, &ConflictError{Message: "Illegal status transition"}
	}

	if err := s.DB.Model(&models.Donation{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return nil, storage("update donation status", err)
	}
	donation.Status = status
	return donation, nil
}

// MarkExpiredDonations flips every PENDING donation whose expiry passed to
// EXPIRED and reports how many rows changed. Idempotent: expired rows are no
// longer PENDING, so a re-run with the same clock is a no-op. Safe alongside
// ordinary status updates since it never touches non-PENDING rows.
func (s *DonationService) MarkExpiredDonations(now time.Time) (int64, error) {
	res := s.DB.Model(&models.Donation{}).
		Where("status = ? AND expiry_date < ?", models.DonationStatusPending, now).
		Update("status", models.DonationStatusExpired)
	if res.Error != nil {
		return 0, storage("mark expired donations", res.Error)
	}
	return res.RowsAffected, nil
}
