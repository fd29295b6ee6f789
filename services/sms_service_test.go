package services

import (
	"testing"

	"food-share-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordIntakeValidation(t *testing.T) {
	ts := newTestServices(t)
	sms := NewSmsService(ts.db, ts.requests)

	_, err := sms.RecordIntake("", models.SmsRequestTypeFood, "")
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)

	_, err = sms.RecordIntake("+15550001111", "EMAIL", "")
	require.ErrorAs(t, err, &invalid)

	intake, err := sms.RecordIntake("+15550001111", models.SmsRequestTypeFood, "12 Market St")
	require.NoError(t, err)
	assert.Equal(t, models.SmsRequestStatusPending, intake.Status)
}

func TestProcessIntakeFulfillsFoodRequest(t *testing.T) {
	ts := newTestServices(t)
	sms := NewSmsService(ts.db, ts.requests)
	donor := createUser(t, ts.db, models.UserTypeHotel)
	donation := createDonation(t, ts.donations, donor.ID)

	intake, err := sms.RecordIntake("+15550001111", models.SmsRequestTypeFood, "12 Market St")
	require.NoError(t, err)

	processed, err := sms.ProcessIntake(intake.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SmsRequestStatusProcessed, processed.Status)
	require.NotNil(t, processed.ProcessedAt)

	// the donation is claimed by an anonymous request
	requests, err := ts.requests.GetRequestsByDonation(donation.ID)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Nil(t, requests[0].RequesterID)
	assert.Equal(t, models.RequesterTypeNeedy, requests[0].RequesterType)
	assert.Equal(t, "12 Market St", requests[0].DeliveryAddress)

	reloaded, err := ts.donations.GetDonationByID(donation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DonationStatusAccepted, reloaded.Status)

	// already processed rows conflict
	_, err = sms.ProcessIntake(intake.ID)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestProcessIntakeWithoutDonationStaysPending(t *testing.T) {
	ts := newTestServices(t)
	sms := NewSmsService(ts.db, ts.requests)

	intake, err := sms.RecordIntake("+15550001111", models.SmsRequestTypeFood, "")
	require.NoError(t, err)

	processed, err := sms.ProcessIntake(intake.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SmsRequestStatusPending, processed.Status)
}

func TestProcessIntakeMissedCall(t *testing.T) {
	ts := newTestServices(t)
	sms := NewSmsService(ts.db, ts.requests)

	intake, err := sms.RecordIntake("+15550001111", models.SmsRequestTypeMissedCall, "")
	require.NoError(t, err)

	processed, err := sms.ProcessIntake(intake.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SmsRequestStatusProcessed, processed.Status)

	var count int64
	require.NoError(t, ts.db.Model(&models.Request{}).Count(&count).Error)
	assert.Zero(t, count, "missed calls create no donation request")
}

func TestRejectIntake(t *testing.T) {
	ts := newTestServices(t)
	sms := NewSmsService(ts.db, ts.requests)

	intake, err := sms.RecordIntake("+15550001111", models.SmsRequestTypeFood, "")
	require.NoError(t, err)

	rejected, err := sms.RejectIntake(intake.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SmsRequestStatusRejected, rejected.Status)

	_, err = sms.RejectIntake(intake.ID)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	_, err = sms.RejectIntake("missing")
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}
