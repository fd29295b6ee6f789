package services

import (
	"testing"

	"food-share-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateDonation(t *testing.T) {
	ts := newTestServices(t)
	freshness := NewFreshnessService(ts.db)
	donor := createUser(t, ts.db, models.UserTypeHotel)
	rater := createUser(t, ts.db, models.UserTypeNGO)
	donation := createDonation(t, ts.donations, donor.ID)

	rating, err := freshness.RateDonation(donation.ID, rater.ID, 4, "still good")
	require.NoError(t, err)
	assert.Equal(t, 4, rating.Rating)

	// one rating per user per donation
	_, err = freshness.RateDonation(donation.ID, rater.ID, 5, "changed my mind")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	var count int64
	require.NoError(t, ts.db.Model(&models.FreshnessRating{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRateDonationValidation(t *testing.T) {
	ts := newTestServices(t)
	freshness := NewFreshnessService(ts.db)
	donor := createUser(t, ts.db, models.UserTypeHotel)
	rater := createUser(t, ts.db, models.UserTypeNGO)
	donation := createDonation(t, ts.donations, donor.ID)

	for _, rating := range []int{0, 6, -3} {
		_, err := freshness.RateDonation(donation.ID, rater.ID, rating, "")
		var invalid *ValidationError
		require.ErrorAs(t, err, &invalid)
	}

	_, err := freshness.RateDonation("missing", rater.ID, 3, "")
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)

	_, err = freshness.RateDonation(donation.ID, "missing", 3, "")
	require.ErrorAs(t, err, &notFoundErr)
}

func TestGetDonationFreshness(t *testing.T) {
	ts := newTestServices(t)
	freshness := NewFreshnessService(ts.db)
	donor := createUser(t, ts.db, models.UserTypeHotel)
	donation := createDonation(t, ts.donations, donor.ID)

	empty, err := freshness.GetDonationFreshness(donation.ID)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalRatings)
	assert.Zero(t, empty.AverageRating)

	for _, rating := range []int{5, 4, 4} {
		rater := createUser(t, ts.db, models.UserTypeNeedy)
		_, err := freshness.RateDonation(donation.ID, rater.ID, rating, "")
		require.NoError(t, err)
	}

	summary, err := freshness.GetDonationFreshness(donation.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalRatings)
	assert.InDelta(t, 4.3, summary.AverageRating, 0.001)
	assert.Equal(t, map[int]int{4: 2, 5: 1}, summary.Distribution)
}
