package services

import (
	"sync"
	"testing"
	"time"

	"food-share-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequestBindsDonation(t *testing.T) {
	ts := newTestServices(t)
	donor := createUser(t, ts.db, models.UserTypeHotel)
	requester := createUser(t, ts.db, models.UserTypeNGO)
	donation := createDonation(t, ts.donations, donor.ID)

	request, err := ts.requests.CreateRequest(&RequestDraft{
		DonationID:    donation.ID,
		RequesterID:   &requester.ID,
		RequesterType: models.RequesterTypeNGO,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, request.Status)

	reloaded, err := ts.donations.GetDonationByID(donation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DonationStatusAccepted, reloaded.Status)

	// the donation is claimed, a second request must conflict and add no rows
	_, err = ts.requests.CreateRequest(&RequestDraft{
		DonationID:    donation.ID,
		RequesterID:   &requester.ID,
		RequesterType: models.RequesterTypeNGO,
	})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Donation is not available", conflict.Message)

	var count int64
	require.NoError(t, ts.db.Model(&models.Request{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateRequestConcurrentClaim(t *testing.T) {
	ts := newTestServices(t)
	donor := createUser(t, ts.db, models.UserTypeHotel)
	requester := createUser(t, ts.db, models.UserTypeNGO)
	donation := createDonation(t, ts.donations, donor.ID)

	const claimers = 4
	errs := make(chan error, claimers)
	var wg sync.WaitGroup
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ts.requests.CreateRequest(&RequestDraft{
				DonationID:    donation.ID,
				RequesterID:   &requester.ID,
				RequesterType: models.RequesterTypeNGO,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, conflicted := 0, 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		conflicted++
	}
	assert.Equal(t, 1, succeeded, "exactly one claim may win")
	assert.Equal(t, claimers-1, conflicted)

	var count int64
	require.NoError(t, ts.db.Model(&models.Request{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	reloaded, err := ts.donations.GetDonationByID(donation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DonationStatusAccepted, reloaded.Status)
}

func TestCreateRequestAnonymous(t *testing.T) {
	ts := newTestServices(t)
	donor := createUser(t, ts.db, models.UserTypeHotel)
	donation := createDonation(t, ts.donations, donor.ID)

	request, err := ts.requests.CreateRequest(&RequestDraft{
		DonationID:    donation.ID,
		RequesterType: models.RequesterTypeNeedy,
	})
	require.NoError(t, err)
	assert.Nil(t, request.RequesterID)
}

func TestCreateRequestMissingReferences(t *testing.T) {
	ts := newTestServices(t)
	donor := createUser(t, ts.db, models.UserTypeHotel)
	donation := createDonation(t, ts.donations, donor.ID)

	_, err := ts.requests.CreateRequest(&RequestDraft{
		DonationID:    "missing",
		RequesterType: models.RequesterTypeNGO,
	})
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)

	missing := "missing"
	_, err = ts.requests.CreateRequest(&RequestDraft{
		DonationID:    donation.ID,
		RequesterID:   &missing,
		RequesterType: models.RequesterTypeNGO,
	})
	require.ErrorAs(t, err, &notFoundErr)

	// the failed request must not have claimed the donation
	reloaded, err := ts.donations.GetDonationByID(donation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DonationStatusPending, reloaded.Status)
}

func TestAssignVolunteer(t *testing.T) {
	ts := newTestServices(t)
	donor := createUser(t, ts.db, models.UserTypeHotel)
	requester := createUser(t, ts.db, models.UserTypeNGO)
	volunteer := createUser(t, ts.db, models.UserTypeVolunteer)
	donation := createDonation(t, ts.donations, donor.ID)

	request, err := ts.requests.CreateRequest(&RequestDraft{
		DonationID:    donation.ID,
		RequesterID:   &requester.ID,
		RequesterType: models.RequesterTypeNGO,
	})
	require.NoError(t, err)

	assigned, err := ts.requests.AssignVolunteer(request.ID, volunteer.ID)
	require.NoError(t, err)
	require.NotNil(t, assigned.AssignedVolunteerID)
	assert.Equal(t, volunteer.ID, *assigned.AssignedVolunteerID)
	assert.Equal(t, models.RequestStatusAccepted, assigned.Status)

	// the slot is written once
	second := createUser(t, ts.db, models.UserTypeVolunteer)
	_, err = ts.requests.AssignVolunteer(request.ID, second.ID)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestAssignVolunteerRejectsNonVolunteer(t *testing.T) {
	ts := newTestServices(t)
	donor := createUser(t, ts.db, models.UserTypeHotel)
	needy := createUser(t, ts.db, models.UserTypeNeedy)
	donation := createDonation(t, ts.donations, donor.ID)

	request, err := ts.requests.CreateRequest(&RequestDraft{
		DonationID:    donation.ID,
		RequesterType: models.RequesterTypeNeedy,
	})
	require.NoError(t, err)

	_, err = ts.requests.AssignVolunteer(request.ID, needy.ID)
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "User is not a volunteer", invalid.Message)

	// the request is untouched
	reloaded, err := ts.requests.GetRequestByID(request.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.AssignedVolunteerID)
	assert.Equal(t, models.RequestStatusPending, reloaded.Status)

	_, err = ts.requests.AssignVolunteer(request.ID, "missing")
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)

	_, err = ts.requests.AssignVolunteer("missing", needy.ID)
	require.ErrorAs(t, err, &notFoundErr)
}

func TestDeliveredAwardsVolunteerOnce(t *testing.T) {
	ts := newTestServices(t)
	donor := createUser(t, ts.db, models.UserTypeHotel)
	requester := createUser(t, ts.db, models.UserTypeNGO)
	volunteer := createUser(t, ts.db, models.UserTypeVolunteer)
	donation := createDonation(t, ts.donations, donor.ID)

	request, err := ts.requests.CreateRequest(&RequestDraft{
		DonationID:    donation.ID,
		RequesterID:   &requester.ID,
		RequesterType: models.RequesterTypeNGO,
	})
	require.NoError(t, err)
	_, err = ts.requests.AssignVolunteer(request.ID, volunteer.ID)
	require.NoError(t, err)

	_, err = ts.requests.UpdateRequestStatus(request.ID, models.RequestStatusPickedUp)
	require.NoError(t, err)
	assert.Empty(t, pointsHistoryFor(t, ts.db, volunteer.ID))

	updated, err := ts.requests.UpdateRequestStatus(request.ID, models.RequestStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusDelivered, updated.Status)

	history := pointsHistoryFor(t, ts.db, volunteer.ID)
	require.Len(t, history, 1)
	assert.Equal(t, 15, history[0].Points)
	assert.Equal(t, "Completed delivery for: Leftover Rice", history[0].Reason)
	assert.Equal(t, models.RelatedEntityDelivery, history[0].RelatedEntityType)
	assert.Equal(t, request.ID, history[0].RelatedEntityID)

	// re-setting the same terminal status must not re-award
	_, err = ts.requests.UpdateRequestStatus(request.ID, models.RequestStatusDelivered)
	require.NoError(t, err)
	assert.Len(t, pointsHistoryFor(t, ts.db, volunteer.ID), 1)
}

func TestDeliveredWithoutVolunteerAwardsNothing(t *testing.T) {
	ts := newTestServices(t)
	donor := createUser(t, ts.db, models.UserTypeHotel)
	requester := createUser(t, ts.db, models.UserTypeNGO)
	donation := createDonation(t, ts.donations, donor.ID)

	request, err := ts.requests.CreateRequest(&RequestDraft{
		DonationID:    donation.ID,
		RequesterID:   &requester.ID,
		RequesterType: models.RequesterTypeNGO,
	})
	require.NoError(t, err)

	_, err = ts.requests.UpdateRequestStatus(request.ID, models.RequestStatusDelivered)
	require.NoError(t, err)

	var count int64
	require.NoError(t, ts.db.Model(&models.PointsHistory{}).
		Where("related_entity_type = ?", models.RelatedEntityDelivery).
		Count(&count).Error)
	assert.Zero(t, count)
}

func TestCompostedAwardsRequesterOnce(t *testing.T) {
	ts := newTestServices(t)
	donor := createUser(t, ts.db, models.UserTypeHotel)
	agency := createUser(t, ts.db, models.UserTypeCompostAgency)

	donation, err := ts.donations.CreateDonation(donor.ID, &DonationDraft{
		FoodName:   "Vegetable Scraps",
		Quantity:   4,
		ExpiryDate: time.Now().Add(6 * time.Hour),
		Type:       models.DonationTypeCompost,
	})
	require.NoError(t, err)

	request, err := ts.requests.CreateRequest(&RequestDraft{
		DonationID:    donation.ID,
		RequesterID:   &agency.ID,
		RequesterType: models.RequesterTypeCompostAgency,
	})
	require.NoError(t, err)

	_, err = ts.requests.UpdateRequestStatus(request.ID, models.RequestStatusComposted)
	require.NoError(t, err)

	history := pointsHistoryFor(t, ts.db, agency.ID)
	require.Len(t, history, 1)
	assert.Equal(t, 20, history[0].Points)
	assert.Equal(t, "Composted: Vegetable Scraps", history[0].Reason)
	assert.Equal(t, models.RelatedEntityCompost, history[0].RelatedEntityType)

	_, err = ts.requests.UpdateRequestStatus(request.ID, models.RequestStatusComposted)
	require.NoError(t, err)
	assert.Len(t, pointsHistoryFor(t, ts.db, agency.ID), 1)
}

func TestCompostedAnonymousRequesterSkipsAward(t *testing.T) {
	ts := newTestServices(t)
	donor := createUser(t, ts.db, models.UserTypeHotel)
	donation := createDonation(t, ts.donations, donor.ID)

	request, err := ts.requests.CreateRequest(&RequestDraft{
		DonationID:    donation.ID,
		RequesterType: models.RequesterTypeNeedy,
	})
	require.NoError(t, err)

	_, err = ts.requests.UpdateRequestStatus(request.ID, models.RequestStatusComposted)
	require.NoError(t, err)

	var count int64
	require.NoError(t, ts.db.Model(&models.PointsHistory{}).
		Where("related_entity_type = ?", models.RelatedEntityCompost).
		Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateRequestStatusNotFound(t *testing.T) {
	ts := newTestServices(t)

	_, err := ts.requests.UpdateRequestStatus("missing", models.RequestStatusDelivered)
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}
