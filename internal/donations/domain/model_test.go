package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func available() *Donation {
	return &Donation{
		ID:        "don-1",
		FoodItem:  "Veg Biryani",
		Quantity:  "5 kg",
		Address:   "MG Road, Pune",
		Phone:     "9876543210",
		DonorID:   "donor-1",
		DonorName: "Hotel Annapurna",
		Status:    StatusAvailable,
		Verified:  true,
		CreatedAt: time.Now().UTC(),
	}
}

func TestDonation_Claim(t *testing.T) {
	t.Run("claims an available donation", func(t *testing.T) {
		d := available()
		now := time.Now().UTC()

		err := d.Claim("ngo-1", "Seva Trust", "4321", now)
		require.NoError(t, err)

		assert.Equal(t, StatusClaimed, d.Status)
		assert.Equal(t, "4321", d.OTP)
		assert.Equal(t, "ngo-1", d.ClaimedBy)
		assert.Equal(t, "Seva Trust", d.ClaimerName)
		require.NotNil(t, d.ClaimedAt)
		assert.Equal(t, now, *d.ClaimedAt)
	})

	t.Run("rejects a second claim", func(t *testing.T) {
		d := available()
		require.NoError(t, d.Claim("ngo-1", "Seva Trust", "4321", time.Now()))

		err := d.Claim("ngo-2", "Akshaya", "9999", time.Now())
		assert.ErrorIs(t, err, ErrNotAvailable)
		assert.Equal(t, "ngo-1", d.ClaimedBy, "first claim must stand")
		assert.Equal(t, "4321", d.OTP, "code stays fixed for the claim lifetime")
	})

	t.Run("rejects claims on terminal records", func(t *testing.T) {
		for _, status := range []string{StatusCompleted, StatusReported} {
			d := available()
			d.Status = status
			assert.ErrorIs(t, d.Claim("ngo-1", "Seva Trust", "1234", time.Now()), ErrNotAvailable)
		}
	})
}

func TestDonation_VerifyPickup(t *testing.T) {
	t.Run("completes on the exact code", func(t *testing.T) {
		d := available()
		require.NoError(t, d.Claim("ngo-1", "Seva Trust", "4321", time.Now()))

		require.NoError(t, d.VerifyPickup("4321"))
		assert.Equal(t, StatusCompleted, d.Status)
		assert.True(t, d.Terminal())
	})

	t.Run("wrong code leaves the record untouched", func(t *testing.T) {
		d := available()
		require.NoError(t, d.Claim("ngo-1", "Seva Trust", "4321", time.Now()))

		err := d.VerifyPickup("1234")
		assert.ErrorIs(t, err, ErrWrongCode)
		assert.Equal(t, StatusClaimed, d.Status)
		assert.Equal(t, "4321", d.OTP)
	})

	t.Run("empty code never matches", func(t *testing.T) {
		d := available()
		require.NoError(t, d.Claim("ngo-1", "Seva Trust", "4321", time.Now()))
		d.OTP = ""

		assert.ErrorIs(t, d.VerifyPickup(""), ErrWrongCode)
	})

	t.Run("rejected unless status is claimed", func(t *testing.T) {
		for _, status := range []string{StatusAvailable, StatusCompleted, StatusReported} {
			d := available()
			d.Status = status
			d.OTP = "4321"
			assert.ErrorIs(t, d.VerifyPickup("4321"), ErrNotClaimed, "status %s", status)
		}
	})
}

func TestDonation_Report(t *testing.T) {
	t.Run("reports a claimed donation", func(t *testing.T) {
		d := available()
		require.NoError(t, d.Claim("ngo-1", "Seva Trust", "4321", time.Now()))

		now := time.Now().UTC()
		require.NoError(t, d.Report("ngo-1", now))

		assert.Equal(t, StatusReported, d.Status)
		assert.Equal(t, "ngo-1", d.ReportedBy)
		require.NotNil(t, d.ReportedAt)
		assert.True(t, d.Terminal())
	})

	t.Run("verify pickup is rejected after a report", func(t *testing.T) {
		d := available()
		require.NoError(t, d.Claim("ngo-1", "Seva Trust", "4321", time.Now()))
		require.NoError(t, d.Report("ngo-1", time.Now()))

		assert.ErrorIs(t, d.VerifyPickup("4321"), ErrNotClaimed)
		assert.Equal(t, StatusReported, d.Status)
	})

	t.Run("rejected unless status is claimed", func(t *testing.T) {
		d := available()
		assert.ErrorIs(t, d.Report("ngo-1", time.Now()), ErrNotClaimed)
	})
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "OPEN", StatusLabel(StatusAvailable))
	assert.Equal(t, "CLAIMED", StatusLabel(StatusClaimed))
	assert.Equal(t, "DONE", StatusLabel(StatusCompleted))
	assert.Equal(t, "FAKE", StatusLabel(StatusReported))

	// Malformed status values render defensively rather than failing.
	assert.Equal(t, "UNKNOWN", StatusLabel("pending"))
	assert.Equal(t, "UNKNOWN", StatusLabel(""))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusAvailable, StatusClaimed, StatusCompleted, StatusReported} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("AVAILABLE"))
	assert.False(t, ValidStatus(""))
}
