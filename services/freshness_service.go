package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"food-share-system/models"
)

// FreshnessService records recipient freshness scores on donations and
// serves the aggregated read side.
type FreshnessService struct {
	DB *gorm.DB
}

func NewFreshnessService(db *gorm.DB) *FreshnessService {
	return &FreshnessService{DB: db}
}

// RateDonation stores a 1-5 score. Each user rates a donation once; the
// insert is idempotent against the composite unique index, so a duplicate
// surfaces as a conflict rather than a second row.
func (s *FreshnessService) RateDonation(donationID, userID string, rating int, comment string) (*models.FreshnessRating, error) {
	if rating < 1 || rating > 5 {
		return nil, &ValidationError{Message: "Rating must be between 1 and 5"}
	}

	entry := models.FreshnessRating{
		ID:         uuid.NewString(),
		DonationID: donationID,
		RatedByID:  userID,
		Rating:     rating,
		Comment:    comment,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var donation models.Donation
		if err := tx.Select("id").Where("id = ?", donationID).First(&donation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("donation", donationID)
			}
			return storage("load donation", err)
		}
		if err := userExists(tx, userID); err != nil {
			return err
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
		if res.Error != nil {
			return storage("create freshness rating", res.Error)
		}
		if res.RowsAffected == 0 {
			return &ConflictError{Message: "You have already rated this donation"}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DonationFreshness is the aggregated view of a donation's ratings.
type DonationFreshness struct {
	Ratings       []models.FreshnessRating `json:"ratings"`
	AverageRating float64                  `json:"average_rating"`
	TotalRatings  int                      `json:"total_ratings"`
	Distribution  map[int]int              `json:"rating_distribution"`
}

func (s *FreshnessService) GetDonationFreshness(donationID string) (*DonationFreshness, error) {
	var ratings []models.FreshnessRating
	if err := s.DB.Preload("RatedBy").
		Where("donation_id = ?", donationID).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		return nil, storage("load freshness ratings", err)
	}

	result := &DonationFreshness{
		Ratings:      ratings,
		TotalRatings: len(ratings),
		Distribution: make(map[int]int),
	}
	if len(ratings) == 0 {
		return result, nil
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Rating
		result.Distribution[r.Rating]++
	}
	// one decimal place, matching what the clients show
	result.AverageRating = float64(int(float64(sum)/float64(len(ratings))*10+0.5)) / 10

	return result, nil
}
