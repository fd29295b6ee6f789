package services

import (
	"errors"
	"log"

	"food-share-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GamificationService owns the points ledger (balance + append-only history)
// and badge awarding. No other service touches points directly.
type GamificationService struct {
	DB     *gorm.DB
	Config Config
}

func NewGamificationService(db *gorm.DB, cfg Config) *GamificationService {
	return &GamificationService{DB: db, Config: cfg}
}

// AddPoints credits a user inside its own transaction. Lifecycle services
// that already hold a transaction use AddPointsTx instead so their dual
// writes and the point award commit or roll back together.
func (s *GamificationService) AddPoints(userID string, points int, reason string, entityType models.RelatedEntityType, entityID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.AddPointsTx(tx, userID, points, reason, entityType, entityID)
	})
}

// AddPointsTx credits points, appends the history entry, recomputes the
// level and then runs badge evaluation to a fixed point, all on the caller's
// transaction.
func (s *GamificationService) AddPointsTx(tx *gorm.DB, userID string, points int, reason string, entityType models.RelatedEntityType, entityID string) error {
	total, err := s.creditPoints(tx, userID, points, reason, entityType, entityID)
	if err != nil {
		return err
	}
	return s.evaluateBadges(tx, userID, total)
}

// creditPoints applies one balance delta and its history entry, returning the
// new cumulative total. The balance update is an atomic SQL increment; the
// row lock it takes serializes concurrent awards for the same user.
func (s *GamificationService) creditPoints(tx *gorm.DB, userID string, points int, reason string, entityType models.RelatedEntityType, entityID string) (int, error) {
	if err := s.ensurePointsRow(tx, userID); err != nil {
		return 0, err
	}

	res := tx.Model(&models.UserPoints{}).
		Where("user_id = ?", userID).
		UpdateColumn("total_points", gorm.Expr("total_points + ?", points))
	if res.Error != nil {
		return 0, storage("increment points", res.Error)
	}

	var row models.UserPoints
	if err := tx.Where("user_id = ?", userID).First(&row).Error; err != nil {
		return 0, storage("reload points", err)
	}

	level := s.Config.LevelForPoints(row.TotalPoints)
	if err := tx.Model(&models.UserPoints{}).
		Where("user_id = ?", userID).
		Update("level", level).Error; err != nil {
		return 0, storage("update level", err)
	}

	history := models.PointsHistory{
		ID:                uuid.NewString(),
		UserID:            userID,
		Points:            points,
		Reason:            reason,
		RelatedEntityType: entityType,
		RelatedEntityID:   entityID,
	}
	if err := tx.Create(&history).Error; err != nil {
		return 0, storage("append points history", err)
	}

	return row.TotalPoints, nil
}

// ensurePointsRow lazily creates the balance row on first award. Creation
// requires the user to exist. The insert ignores conflicts so two first
// awards racing each other both proceed against the same row.
func (s *GamificationService) ensurePointsRow(tx *gorm.DB, userID string) error {
	var row models.UserPoints
	err := tx.Where("user_id = ?", userID).First(&row).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return storage("load points", err)
	}

	if err := userExists(tx, userID); err != nil {
		return err
	}

	row = models.UserPoints{
		ID:          uuid.NewString(),
		UserID:      userID,
		TotalPoints: 0,
		Level:       1,
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return storage("create points row", err)
	}
	return nil
}

// evaluateBadges grants every badge the total now qualifies for, paying the
// bonus for each fresh grant and re-checking until a pass awards nothing.
// Each badge is granted at most once per user (composite unique index plus
// ON CONFLICT DO NOTHING), which also bounds the loop by the catalog size.
func (s *GamificationService) evaluateBadges(tx *gorm.DB, userID string, totalPoints int) error {
	for {
		var badges []models.Badge
		if err := tx.Where("points_required <= ?", totalPoints).
			Order("points_required ASC").
			Find(&badges).Error; err != nil {
			return storage("load qualifying badges", err)
		}

		awardedAny := false
		for _, badge := range badges {
			award := models.UserBadge{
				ID:      uuid.NewString(),
				UserID:  userID,
				BadgeID: badge.ID,
			}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&award)
			if res.Error != nil {
				return storage("create badge award", res.Error)
			}
			if res.RowsAffected == 0 {
				continue // already earned
			}

			log.Printf("🎖️ Badge awarded: %s → %s", badge.Name, userID)

			newTotal, err := s.creditPoints(tx, userID, s.Config.BadgeBonusPoints,
				"Earned badge: "+badge.Name, models.RelatedEntityBadge, badge.ID)
			if err != nil {
				return err
			}
			totalPoints = newTotal
			awardedAny = true
		}

		if !awardedAny {
			return nil
		}
	}
}

// CheckAndAwardBadges runs one badge evaluation for a user against an
// externally known total, e.g. after a catalog change.
func (s *GamificationService) CheckAndAwardBadges(userID string, totalPoints int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := userExists(tx, userID); err != nil {
			return err
		}
		return s.evaluateBadges(tx, userID, totalPoints)
	})
}

// GetUserPoints returns the user's balance row, persisting a zero row on
// first read so new users show up with points 0, level 1.
func (s *GamificationService) GetUserPoints(userID string) (*models.UserPoints, error) {
	var row models.UserPoints
	err := s.DB.Where("user_id = ?", userID).First(&row).Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage("load points", err)
	}

	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.ensurePointsRow(tx, userID)
	}); err != nil {
		return nil, err
	}
	if err := s.DB.Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, storage("load points", err)
	}
	return &row, nil
}

// GetLeaderboard returns every balance row ordered by total points, highest
// first.
func (s *GamificationService) GetLeaderboard() ([]models.UserPoints, error) {
	var rows []models.UserPoints
	if err := s.DB.Preload("User").
		Order("total_points DESC").
		Find(&rows).Error; err != nil {
		return nil, storage("load leaderboard", err)
	}
	return rows, nil
}

// GetUserBadges returns the badges a user has earned.
func (s *GamificationService) GetUserBadges(userID string) ([]models.UserBadge, error) {
	var awards []models.UserBadge
	if err := s.DB.Preload("Badge").
		Where("user_id = ?", userID).
		Order("awarded_at DESC").
		Find(&awards).Error; err != nil {
		return nil, storage("load user badges", err)
	}
	return awards, nil
}

// GetPointsHistory returns the user's award trail, newest first.
func (s *GamificationService) GetPointsHistory(userID string) ([]models.PointsHistory, error) {
	var entries []models.PointsHistory
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, storage("load points history", err)
	}
	return entries, nil
}

// SeedBadges loads the default catalog on an empty badges table. Safe to run
// on every boot.
func (s *GamificationService) SeedBadges() error {
	var count int64
	if err := s.DB.Model(&models.Badge{}).Count(&count).Error; err != nil {
		return storage("count badges", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding badge catalog...")
	for _, badge := range models.DefaultBadges {
		badge.ID = uuid.NewString()
		if err := s.DB.Create(&badge).Error; err != nil {
			return storage("seed badge", err)
		}
	}
	return nil
}

// userExists resolves a user id against the local user directory.
func userExists(tx *gorm.DB, userID string) error {
	var user models.User
	err := tx.Select("id").Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("user", userID)
	}
	if err != nil {
		return storage("load user", err)
	}
	return nil
}
