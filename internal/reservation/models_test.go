package reservation

import (
	"testing"
	"time"

	"cinetix/internal/pricing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReference(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		ref, err := GenerateReference()
		require.NoError(t, err)
		assert.Len(t, ref, 10)
		assert.Equal(t, "BK", ref[:2])
		assert.Regexp(t, "^BK[0-9A-F]{8}$", ref)

		_, dup := seen[ref]
		assert.False(t, dup, "reference %s generated twice", ref)
		seen[ref] = struct{}{}
	}
}

func TestBookingHoldExpired(t *testing.T) {
	now := time.Now()

	hold := &Booking{Status: StatusHold, HoldExpiresAt: now.Add(10 * time.Minute)}
	assert.False(t, hold.HoldExpired(now))
	assert.True(t, hold.HoldExpired(now.Add(11*time.Minute)))

	// Only live holds expire; terminal states never report expired
	confirmed := &Booking{Status: StatusConfirmed, HoldExpiresAt: now.Add(-time.Hour)}
	assert.False(t, confirmed.HoldExpired(now))
}

func TestBookingSeatAccessors(t *testing.T) {
	seatA := uuid.New()
	seatB := uuid.New()
	booking := &Booking{
		Seats: []BookingSeat{
			{ShowSeatID: seatA, SeatLabel: "A1", SeatClass: pricing.SeatClassStandard, Price: 1000},
			{ShowSeatID: seatB, SeatLabel: "J7", SeatClass: pricing.SeatClassVIP, Price: 1500},
		},
	}

	assert.Equal(t, []uuid.UUID{seatA, seatB}, booking.SeatIDs())
	assert.Equal(t, []string{"A1", "J7"}, booking.SeatLabels())
}

func TestBookingToResponse(t *testing.T) {
	now := time.Now()
	booking := &Booking{
		ID:            uuid.New(),
		Reference:     "BK3F2A91C4",
		UserID:        uuid.New(),
		ShowID:        uuid.New(),
		TotalAmount:   2500,
		Status:        StatusHold,
		HoldExpiresAt: now.Add(10 * time.Minute),
		Seats: []BookingSeat{
			{ShowSeatID: uuid.New(), SeatLabel: "E3", SeatClass: pricing.SeatClassPremium, Price: 1250},
			{ShowSeatID: uuid.New(), SeatLabel: "E4", SeatClass: pricing.SeatClassPremium, Price: 1250},
		},
	}

	resp := booking.ToResponse()
	assert.Equal(t, booking.ID.String(), resp.ID)
	assert.Equal(t, "BK3F2A91C4", resp.Reference)
	assert.Equal(t, StatusHold, resp.Status)
	assert.Equal(t, int64(2500), resp.TotalAmount)
	require.Len(t, resp.Seats, 2)
	assert.Equal(t, "E3", resp.Seats[0].Label)
	assert.Equal(t, int64(1250), resp.Seats[0].Price)
}
