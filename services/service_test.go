package services

import (
	"testing"
	"time"

	"food-share-system/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database per test. A single pooled
// connection keeps every session on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Donation{},
		&models.Request{},
		&models.UserPoints{},
		&models.PointsHistory{},
		&models.Badge{},
		&models.UserBadge{},
		&models.SmsRequest{},
		&models.Tracking{},
		&models.FreshnessRating{},
		&models.DistributionProof{},
	))
	return db
}

type testServices struct {
	db           *gorm.DB
	gamification *GamificationService
	donations    *DonationService
	requests     *RequestService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db := newTestDB(t)
	gamification := NewGamificationService(db, DefaultConfig)
	return &testServices{
		db:           db,
		gamification: gamification,
		donations:    NewDonationService(db, gamification, DefaultConfig),
		requests:     NewRequestService(db, gamification, DefaultConfig),
	}
}

func createUser(t *testing.T, db *gorm.DB, userType models.UserType) *models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.NewString(),
		Username: "user-" + uuid.NewString(),
		Email:    uuid.NewString() + "@example.org",
		FullName: "Test User",
		UserType: userType,
		Status:   models.UserStatusApproved,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createBadge(t *testing.T, db *gorm.DB, name string, pointsRequired int) *models.Badge {
	t.Helper()
	badge := models.Badge{
		ID:             uuid.NewString(),
		Name:           name,
		PointsRequired: pointsRequired,
	}
	require.NoError(t, db.Create(&badge).Error)
	return &badge
}

func createDonation(t *testing.T, donations *DonationService, donorID string) *models.Donation {
	t.Helper()
	donation, err := donations.CreateDonation(donorID, &DonationDraft{
		FoodName:   "Leftover Rice",
		Quantity:   3,
		ExpiryDate: time.Now().Add(24 * time.Hour),
		Type:       models.DonationTypeHuman,
	})
	require.NoError(t, err)
	return donation
}

func pointsHistoryFor(t *testing.T, db *gorm.DB, userID string) []models.PointsHistory {
	t.Helper()
	var entries []models.PointsHistory
	require.NoError(t, db.Where("user_id = ?", userID).Find(&entries).Error)
	return entries
}
