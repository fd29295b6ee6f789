package services

import (
	"testing"
	"time"

	"food-share-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordProof(t *testing.T) {
	ts := newTestServices(t)
	distribution := NewDistributionService(ts.db)
	donor := createUser(t, ts.db, models.UserTypeHotel)
	donation := createDonation(t, ts.donations, donor.ID)

	request, err := ts.requests.CreateRequest(&RequestDraft{
		DonationID:    donation.ID,
		RequesterType: models.RequesterTypeNeedy,
	})
	require.NoError(t, err)

	count := 40
	proof, err := distribution.RecordProof(request.ID, "https://cdn.example.org/proofs/p1.jpg", "evening round", &count)
	require.NoError(t, err)
	assert.Equal(t, request.ID, proof.RequestID)
	require.NotNil(t, proof.DistributedToCount)
	assert.Equal(t, 40, *proof.DistributedToCount)

	// a request can carry several proofs, listed newest first
	time.Sleep(2 * time.Millisecond)
	_, err = distribution.RecordProof(request.ID, "https://cdn.example.org/proofs/p2.jpg", "", nil)
	require.NoError(t, err)

	list, err := distribution.GetProofsByRequest(request.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "https://cdn.example.org/proofs/p2.jpg", list[0].PhotoURL)
	require.NotNil(t, list[1].DistributedToCount)
	assert.Equal(t, 40, *list[1].DistributedToCount)
}

func TestRecordProofValidation(t *testing.T) {
	ts := newTestServices(t)
	distribution := NewDistributionService(ts.db)
	donor := createUser(t, ts.db, models.UserTypeHotel)
	donation := createDonation(t, ts.donations, donor.ID)

	request, err := ts.requests.CreateRequest(&RequestDraft{
		DonationID:    donation.ID,
		RequesterType: models.RequesterTypeNeedy,
	})
	require.NoError(t, err)

	_, err = distribution.RecordProof(request.ID, "", "no photo", nil)
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)

	negative := -1
	_, err = distribution.RecordProof(request.ID, "https://cdn.example.org/proofs/p.jpg", "", &negative)
	require.ErrorAs(t, err, &invalid)

	_, err = distribution.RecordProof("missing", "https://cdn.example.org/proofs/p.jpg", "", nil)
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)

	list, err := distribution.GetProofsByRequest(request.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
