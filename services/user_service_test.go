package services

import (
	"testing"

	"food-share-system/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUserServiceApprovalFlow(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)

	pending := models.User{
		ID:       uuid.NewString(),
		Username: "hotel-one",
		Email:    "hotel-one@example.org",
		FullName: "Hotel One",
		UserType: models.UserTypeHotel,
		Status:   models.UserStatusPending,
	}
	require.NoError(t, db.Create(&pending).Error)
	approved := createUser(t, db, models.UserTypeVolunteer)

	waiting, err := users.GetPendingApprovals()
	require.NoError(t, err)
	require.Len(t, waiting, 1)
	require.Equal(t, pending.ID, waiting[0].ID)

	updated, err := users.UpdateUserStatus(pending.ID, models.UserStatusApproved)
	require.NoError(t, err)
	require.Equal(t, models.UserStatusApproved, updated.Status)

	waiting, err = users.GetPendingApprovals()
	require.NoError(t, err)
	require.Empty(t, waiting)

	hotels, err := users.GetUsersByType(models.UserTypeHotel)
	require.NoError(t, err)
	require.Len(t, hotels, 1)

	volunteers, err := users.GetUsersByType(models.UserTypeVolunteer)
	require.NoError(t, err)
	require.Len(t, volunteers, 1)
	require.Equal(t, approved.ID, volunteers[0].ID)
}

func TestUserServiceRejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	user := createUser(t, db, models.UserTypeNGO)

	_, err := users.UpdateUserStatus(user.ID, models.UserStatus("FROZEN"))
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = users.UpdateUserStatus(uuid.NewString(), models.UserStatusRejected)
	var missing *NotFoundError
	require.ErrorAs(t, err, &missing)
}
