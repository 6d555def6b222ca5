package reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cinetix/internal/inventory"
	"cinetix/internal/notifications"
	"cinetix/internal/payments"
	"cinetix/internal/shared/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSeat mirrors one show seat with its frozen price
type fakeSeat struct {
	label  string
	price  int64
	status inventory.SeatStatus
}

// fakeRepo is an in-memory Repository honoring the same compare-and-set
// contract as the real one: only a HOLD transitions, and exactly one caller
// wins.
type fakeRepo struct {
	mu         sync.Mutex
	showID     uuid.UUID
	seats      map[uuid.UUID]*fakeSeat
	bookings   map[uuid.UUID]*Booking
	releaseErr map[uuid.UUID]error
}

func newFakeRepo(showID uuid.UUID) *fakeRepo {
	return &fakeRepo{
		showID:     showID,
		seats:      make(map[uuid.UUID]*fakeSeat),
		bookings:   make(map[uuid.UUID]*Booking),
		releaseErr: make(map[uuid.UUID]error),
	}
}

func (r *fakeRepo) addSeat(label string, price int64) uuid.UUID {
	id := uuid.New()
	r.seats[id] = &fakeSeat{label: label, price: price, status: inventory.SeatStatusFree}
	return id
}

func (r *fakeRepo) CreateHold(ctx context.Context, booking *Booking, seatIDs []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if booking.ShowID != r.showID {
		return ErrNotFound
	}

	resolved := make([]*fakeSeat, 0, len(seatIDs))
	for _, id := range seatIDs {
		seat, ok := r.seats[id]
		if !ok {
			return ErrSeatShowMismatch
		}
		resolved = append(resolved, seat)
	}

	var conflicts []string
	for _, seat := range resolved {
		if seat.status != inventory.SeatStatusFree {
			conflicts = append(conflicts, seat.label)
		}
	}
	if len(conflicts) > 0 {
		return &SeatsUnavailableError{SeatLabels: conflicts}
	}

	var total int64
	bookingSeats := make([]BookingSeat, 0, len(seatIDs))
	for i, seat := range resolved {
		seat.status = inventory.SeatStatusHeld
		total += seat.price
		bookingSeats = append(bookingSeats, BookingSeat{
			ShowSeatID: seatIDs[i],
			SeatLabel:  seat.label,
			Price:      seat.price,
			Active:     true,
		})
	}

	booking.ID = uuid.New()
	booking.TotalAmount = total
	booking.Seats = bookingSeats
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *booking
	cp.Seats = append([]BookingSeat(nil), booking.Seats...)
	return &cp, nil
}

func (r *fakeRepo) ListByUser(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matches []Booking
	for _, booking := range r.bookings {
		if booking.UserID != userID {
			continue
		}
		if query.Status != "" && string(booking.Status) != query.Status {
			continue
		}
		matches = append(matches, *booking)
	}
	return matches, int64(len(matches)), nil
}

func (r *fakeRepo) ListByShow(ctx context.Context, showID uuid.UUID) ([]Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matches []Booking
	for _, booking := range r.bookings {
		if booking.ShowID == showID {
			matches = append(matches, *booking)
		}
	}
	return matches, nil
}

func (r *fakeRepo) ConfirmHold(ctx context.Context, id uuid.UUID, method, reference string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok || booking.Status != StatusHold {
		return false, nil
	}

	booking.Status = StatusConfirmed
	booking.PaymentMethod = method
	booking.PaymentReference = reference
	for i := range booking.Seats {
		r.seats[booking.Seats[i].ShowSeatID].status = inventory.SeatStatusBooked
	}
	return true, nil
}

func (r *fakeRepo) ReleaseHold(ctx context.Context, id uuid.UUID, to Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.releaseErr[id]; err != nil {
		return false, err
	}

	booking, ok := r.bookings[id]
	if !ok || booking.Status != StatusHold {
		return false, nil
	}

	booking.Status = to
	if to == StatusCancelled {
		now := time.Now()
		booking.CancelledAt = &now
	}
	for i := range booking.Seats {
		r.seats[booking.Seats[i].ShowSeatID].status = inventory.SeatStatusFree
		booking.Seats[i].Active = false
	}
	return true, nil
}

func (r *fakeRepo) ListExpiredHolds(ctx context.Context, cutoff time.Time, limit int) ([]Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stale []Booking
	for _, booking := range r.bookings {
		if booking.Status == StatusHold && booking.HoldExpiresAt.Before(cutoff) {
			stale = append(stale, *booking)
		}
		if len(stale) == limit {
			break
		}
	}
	return stale, nil
}

func (r *fakeRepo) seatStatus(id uuid.UUID) inventory.SeatStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seats[id].status
}

func (r *fakeRepo) setHoldExpiry(id uuid.UUID, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[id].HoldExpiresAt = at
}

// fakePaymentsRepo records payment rows in memory
type fakePaymentsRepo struct {
	mu       sync.Mutex
	payments []*payments.Payment
}

func (r *fakePaymentsRepo) Create(ctx context.Context, payment *payments.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = append(r.payments, payment)
	return nil
}

func (r *fakePaymentsRepo) GetByBookingID(ctx context.Context, bookingID uuid.UUID) ([]payments.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []payments.Payment
	for _, p := range r.payments {
		if p.BookingID == bookingID {
			rows = append(rows, *p)
		}
	}
	return rows, nil
}

// errGateway simulates a gateway outage
type errGateway struct {
	err error
}

func (g errGateway) Charge(ctx context.Context, req payments.ChargeRequest) (*payments.ChargeResult, error) {
	return nil, g.err
}

// fakeInventory records seat map invalidations
type fakeInventory struct {
	mu            sync.Mutex
	invalidations int
}

func (f *fakeInventory) GetSeatMap(ctx context.Context, showID uuid.UUID) (*inventory.SeatMapResponse, error) {
	return nil, nil
}

func (f *fakeInventory) InvalidateSeatMap(ctx context.Context, showID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidations++
}

func (f *fakeInventory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invalidations
}

// fakeEvents records published booking event types
type fakeEvents struct {
	mu    sync.Mutex
	types []notifications.BookingEventType
}

func (f *fakeEvents) PublishBookingEvent(ctx context.Context, event *notifications.BookingEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.types = append(f.types, event.Type)
}

func (f *fakeEvents) Close() error { return nil }

func (f *fakeEvents) published() []notifications.BookingEventType {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notifications.BookingEventType(nil), f.types...)
}

type testEnv struct {
	service   Service
	repo      *fakeRepo
	payments  *fakePaymentsRepo
	inventory *fakeInventory
	events    *fakeEvents
	showID    uuid.UUID
	userID    uuid.UUID
	seatA     uuid.UUID // standard, 1000
	seatB     uuid.UUID // premium, 1250
	seatC     uuid.UUID // vip, 1500
}

func newTestEnv(t *testing.T, gateway payments.Gateway) *testEnv {
	t.Helper()

	showID := uuid.New()
	repo := newFakeRepo(showID)
	paymentsRepo := &fakePaymentsRepo{}
	inventorySvc := &fakeInventory{}
	events := &fakeEvents{}

	if gateway == nil {
		gateway = payments.NewMockGateway()
	}

	cfg := config.ReservationConfig{
		HoldTTL:        10 * time.Minute,
		SweepInterval:  30 * time.Second,
		SweepBatchSize: 100,
	}

	env := &testEnv{
		service:   NewService(repo, paymentsRepo, gateway, inventorySvc, events, cfg),
		repo:      repo,
		payments:  paymentsRepo,
		inventory: inventorySvc,
		events:    events,
		showID:    showID,
		userID:    uuid.New(),
	}
	env.seatA = repo.addSeat("A1", 1000)
	env.seatB = repo.addSeat("E3", 1250)
	env.seatC = repo.addSeat("J7", 1500)
	return env
}

func (e *testEnv) holdRequest(seatIDs ...uuid.UUID) CreateHoldRequest {
	raw := make([]string, 0, len(seatIDs))
	for _, id := range seatIDs {
		raw = append(raw, id.String())
	}
	return CreateHoldRequest{ShowID: e.showID.String(), SeatIDs: raw}
}

func (e *testEnv) createHold(t *testing.T, seatIDs ...uuid.UUID) *BookingResponse {
	t.Helper()
	resp, err := e.service.CreateHold(context.Background(), e.userID, e.holdRequest(seatIDs...))
	require.NoError(t, err)
	return resp
}

func mustID(t *testing.T, raw string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(raw)
	require.NoError(t, err)
	return id
}

func TestCreateHoldFreezesPricesAndHoldsSeats(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.createHold(t, env.seatA, env.seatB, env.seatC)

	assert.Equal(t, StatusHold, resp.Status)
	assert.Equal(t, int64(3750), resp.TotalAmount)
	assert.Len(t, resp.Seats, 3)
	assert.Regexp(t, "^BK[0-9A-F]{8}$", resp.Reference)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), resp.HoldExpiresAt, 5*time.Second)

	assert.Equal(t, inventory.SeatStatusHeld, env.repo.seatStatus(env.seatA))
	assert.Equal(t, inventory.SeatStatusHeld, env.repo.seatStatus(env.seatB))
	assert.Equal(t, inventory.SeatStatusHeld, env.repo.seatStatus(env.seatC))

	assert.Equal(t, 1, env.inventory.count())
	assert.Equal(t, []notifications.BookingEventType{notifications.BookingEventHeld}, env.events.published())
}

func TestCreateHoldEmptySelection(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.service.CreateHold(context.Background(), env.userID, CreateHoldRequest{
		ShowID: env.showID.String(),
	})
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestCreateHoldDuplicateSeat(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.service.CreateHold(context.Background(), env.userID,
		env.holdRequest(env.seatA, env.seatA))
	assert.ErrorIs(t, err, ErrDuplicateSeat)
}

func TestCreateHoldUnknownSeat(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.service.CreateHold(context.Background(), env.userID,
		env.holdRequest(env.seatA, uuid.New()))
	assert.ErrorIs(t, err, ErrSeatShowMismatch)
}

func TestCreateHoldAllOrNothingConflict(t *testing.T) {
	env := newTestEnv(t, nil)

	// First user takes A1; second wants A1+E3 and gets neither
	env.createHold(t, env.seatA)

	_, err := env.service.CreateHold(context.Background(), uuid.New(),
		env.holdRequest(env.seatA, env.seatB))

	unavailable, ok := AsSeatsUnavailable(err)
	require.True(t, ok)
	assert.Equal(t, []string{"A1"}, unavailable.SeatLabels)

	// The free seat of the failed request stays free
	assert.Equal(t, inventory.SeatStatusFree, env.repo.seatStatus(env.seatB))
}

func TestConfirmSuccess(t *testing.T) {
	env := newTestEnv(t, nil)
	hold := env.createHold(t, env.seatA, env.seatB)
	bookingID := mustID(t, hold.ID)

	resp, err := env.service.Confirm(context.Background(), env.userID, bookingID, ConfirmRequest{
		PaymentMethod:    payments.MethodCreditCard,
		PaymentReference: "txn-001",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, resp.Status)
	assert.Equal(t, payments.MethodCreditCard, resp.PaymentMethod)
	assert.Equal(t, int64(2250), resp.TotalAmount)

	assert.Equal(t, inventory.SeatStatusBooked, env.repo.seatStatus(env.seatA))
	assert.Equal(t, inventory.SeatStatusBooked, env.repo.seatStatus(env.seatB))

	rows, err := env.payments.GetByBookingID(context.Background(), bookingID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, payments.StatusCompleted, rows[0].Status)
	assert.Equal(t, int64(2250), rows[0].Amount)

	assert.Equal(t, []notifications.BookingEventType{
		notifications.BookingEventHeld,
		notifications.BookingEventConfirmed,
	}, env.events.published())
}

func TestConfirmNotOwner(t *testing.T) {
	env := newTestEnv(t, nil)
	hold := env.createHold(t, env.seatA)

	_, err := env.service.Confirm(context.Background(), uuid.New(), mustID(t, hold.ID), ConfirmRequest{
		PaymentMethod:    payments.MethodCash,
		PaymentReference: "txn-001",
	})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestConfirmNotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.service.Confirm(context.Background(), env.userID, uuid.New(), ConfirmRequest{
		PaymentMethod:    payments.MethodCash,
		PaymentReference: "txn-001",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfirmIdempotentWithSamePaymentIdentity(t *testing.T) {
	env := newTestEnv(t, nil)
	hold := env.createHold(t, env.seatA)
	bookingID := mustID(t, hold.ID)

	req := ConfirmRequest{PaymentMethod: payments.MethodCreditCard, PaymentReference: "txn-001"}

	first, err := env.service.Confirm(context.Background(), env.userID, bookingID, req)
	require.NoError(t, err)

	second, err := env.service.Confirm(context.Background(), env.userID, bookingID, req)
	require.NoError(t, err)
	assert.Equal(t, first.Reference, second.Reference)
	assert.Equal(t, StatusConfirmed, second.Status)

	// The replay does not charge or record a second payment
	rows, err := env.payments.GetByBookingID(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestConfirmConflictWithDifferentPaymentIdentity(t *testing.T) {
	env := newTestEnv(t, nil)
	hold := env.createHold(t, env.seatA)
	bookingID := mustID(t, hold.ID)

	_, err := env.service.Confirm(context.Background(), env.userID, bookingID, ConfirmRequest{
		PaymentMethod:    payments.MethodCreditCard,
		PaymentReference: "txn-001",
	})
	require.NoError(t, err)

	_, err = env.service.Confirm(context.Background(), env.userID, bookingID, ConfirmRequest{
		PaymentMethod:    payments.MethodCreditCard,
		PaymentReference: "txn-002",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestConfirmDeclinedKeepsHoldLive(t *testing.T) {
	env := newTestEnv(t, nil)
	hold := env.createHold(t, env.seatA)
	bookingID := mustID(t, hold.ID)

	_, err := env.service.Confirm(context.Background(), env.userID, bookingID, ConfirmRequest{
		PaymentMethod:    payments.MethodCreditCard,
		PaymentReference: "DECLINE-001",
	})
	assert.ErrorIs(t, err, ErrPaymentFailed)

	// Hold survives the decline; the user may retry within the window
	current, err := env.repo.GetByID(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, StatusHold, current.Status)
	assert.Equal(t, inventory.SeatStatusHeld, env.repo.seatStatus(env.seatA))

	rows, err := env.payments.GetByBookingID(context.Background(), bookingID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, payments.StatusFailed, rows[0].Status)

	// Retry with a fresh reference settles the booking
	resp, err := env.service.Confirm(context.Background(), env.userID, bookingID, ConfirmRequest{
		PaymentMethod:    payments.MethodCreditCard,
		PaymentReference: "txn-retry",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, resp.Status)
}

func TestConfirmGatewayErrorLeavesHoldUntouched(t *testing.T) {
	env := newTestEnv(t, errGateway{err: errors.New("gateway timeout")})
	hold := env.createHold(t, env.seatA)
	bookingID := mustID(t, hold.ID)

	_, err := env.service.Confirm(context.Background(), env.userID, bookingID, ConfirmRequest{
		PaymentMethod:    payments.MethodCreditCard,
		PaymentReference: "txn-001",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPaymentFailed)

	current, err := env.repo.GetByID(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, StatusHold, current.Status)

	rows, err := env.payments.GetByBookingID(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestConfirmLapsedHoldExpiresLazily(t *testing.T) {
	env := newTestEnv(t, nil)
	hold := env.createHold(t, env.seatA)
	bookingID := mustID(t, hold.ID)
	env.repo.setHoldExpiry(bookingID, time.Now().Add(-time.Minute))

	_, err := env.service.Confirm(context.Background(), env.userID, bookingID, ConfirmRequest{
		PaymentMethod:    payments.MethodCreditCard,
		PaymentReference: "txn-001",
	})
	assert.ErrorIs(t, err, ErrHoldExpired)

	// The touch expired the hold and freed the seat
	current, getErr := env.repo.GetByID(context.Background(), bookingID)
	require.NoError(t, getErr)
	assert.Equal(t, StatusExpired, current.Status)
	assert.Equal(t, inventory.SeatStatusFree, env.repo.seatStatus(env.seatA))

	assert.Equal(t, []notifications.BookingEventType{
		notifications.BookingEventHeld,
		notifications.BookingEventExpired,
	}, env.events.published())
}

func TestConfirmExpiredBooking(t *testing.T) {
	env := newTestEnv(t, nil)
	hold := env.createHold(t, env.seatA)
	bookingID := mustID(t, hold.ID)

	released, err := env.repo.ReleaseHold(context.Background(), bookingID, StatusExpired)
	require.NoError(t, err)
	require.True(t, released)

	_, err = env.service.Confirm(context.Background(), env.userID, bookingID, ConfirmRequest{
		PaymentMethod:    payments.MethodCreditCard,
		PaymentReference: "txn-001",
	})
	assert.ErrorIs(t, err, ErrHoldExpired)
}

func TestCancelSuccess(t *testing.T) {
	env := newTestEnv(t, nil)
	hold := env.createHold(t, env.seatA, env.seatB)
	bookingID := mustID(t, hold.ID)

	resp, err := env.service.Cancel(context.Background(), env.userID, bookingID)
	require.NoError(t, err)

	assert.Equal(t, StatusCancelled, resp.Status)
	assert.NotNil(t, resp.CancelledAt)
	assert.Equal(t, inventory.SeatStatusFree, env.repo.seatStatus(env.seatA))
	assert.Equal(t, inventory.SeatStatusFree, env.repo.seatStatus(env.seatB))

	assert.Equal(t, []notifications.BookingEventType{
		notifications.BookingEventHeld,
		notifications.BookingEventCancelled,
	}, env.events.published())
}

func TestCancelConfirmedBooking(t *testing.T) {
	env := newTestEnv(t, nil)
	hold := env.createHold(t, env.seatA)
	bookingID := mustID(t, hold.ID)

	_, err := env.service.Confirm(context.Background(), env.userID, bookingID, ConfirmRequest{
		PaymentMethod:    payments.MethodCreditCard,
		PaymentReference: "txn-001",
	})
	require.NoError(t, err)

	_, err = env.service.Cancel(context.Background(), env.userID, bookingID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelNotOwner(t *testing.T) {
	env := newTestEnv(t, nil)
	hold := env.createHold(t, env.seatA)

	_, err := env.service.Cancel(context.Background(), uuid.New(), mustID(t, hold.ID))
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestCancelledSeatCanBeHeldAgain(t *testing.T) {
	env := newTestEnv(t, nil)
	hold := env.createHold(t, env.seatA)

	_, err := env.service.Cancel(context.Background(), env.userID, mustID(t, hold.ID))
	require.NoError(t, err)

	// Another user picks up the freed seat
	resp, err := env.service.CreateHold(context.Background(), uuid.New(), env.holdRequest(env.seatA))
	require.NoError(t, err)
	assert.Equal(t, StatusHold, resp.Status)
}

func TestGetBookingOwnershipAndAdminBypass(t *testing.T) {
	env := newTestEnv(t, nil)
	hold := env.createHold(t, env.seatA)
	bookingID := mustID(t, hold.ID)

	// Owner reads fine
	_, err := env.service.GetBooking(context.Background(), env.userID, false, bookingID)
	assert.NoError(t, err)

	// Stranger is rejected
	_, err = env.service.GetBooking(context.Background(), uuid.New(), false, bookingID)
	assert.ErrorIs(t, err, ErrNotOwner)

	// Admin bypasses ownership
	_, err = env.service.GetBooking(context.Background(), uuid.New(), true, bookingID)
	assert.NoError(t, err)
}

func TestListUserBookingsFiltersByStatus(t *testing.T) {
	env := newTestEnv(t, nil)
	first := env.createHold(t, env.seatA)
	env.createHold(t, env.seatB)

	_, err := env.service.Cancel(context.Background(), env.userID, mustID(t, first.ID))
	require.NoError(t, err)

	page, err := env.service.ListUserBookings(context.Background(), env.userID, BookingListQuery{
		Status: string(StatusHold),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalCount)
	require.Len(t, page.Bookings, 1)
	assert.Equal(t, StatusHold, page.Bookings[0].Status)
}

func TestSweepExpiredHolds(t *testing.T) {
	env := newTestEnv(t, nil)

	lapsedA := env.createHold(t, env.seatA)
	lapsedB := env.createHold(t, env.seatB)
	env.createHold(t, env.seatC) // still live

	env.repo.setHoldExpiry(mustID(t, lapsedA.ID), time.Now().Add(-time.Minute))
	env.repo.setHoldExpiry(mustID(t, lapsedB.ID), time.Now().Add(-time.Minute))

	expired, failed, err := env.service.SweepExpiredHolds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, expired)
	assert.Equal(t, 0, failed)

	assert.Equal(t, inventory.SeatStatusFree, env.repo.seatStatus(env.seatA))
	assert.Equal(t, inventory.SeatStatusFree, env.repo.seatStatus(env.seatB))
	assert.Equal(t, inventory.SeatStatusHeld, env.repo.seatStatus(env.seatC))

	// Nothing left to expire on the next pass
	expired, failed, err = env.service.SweepExpiredHolds(context.Background())
	require.NoError(t, err)
	assert.Zero(t, expired)
	assert.Zero(t, failed)
}

func TestSweepContinuesPastFailures(t *testing.T) {
	env := newTestEnv(t, nil)

	broken := env.createHold(t, env.seatA)
	lapsed := env.createHold(t, env.seatB)

	brokenID := mustID(t, broken.ID)
	env.repo.setHoldExpiry(brokenID, time.Now().Add(-time.Minute))
	env.repo.setHoldExpiry(mustID(t, lapsed.ID), time.Now().Add(-time.Minute))
	env.repo.releaseErr[brokenID] = errors.New("deadlock detected")

	expired, failed, err := env.service.SweepExpiredHolds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	assert.Equal(t, 1, failed)

	// The failing hold is retried once the error clears
	delete(env.repo.releaseErr, brokenID)
	expired, failed, err = env.service.SweepExpiredHolds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	assert.Zero(t, failed)
}

func TestConcurrentOverlappingHoldsSingleWinner(t *testing.T) {
	env := newTestEnv(t, nil)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.service.CreateHold(context.Background(), uuid.New(),
				env.holdRequest(env.seatA, env.seatB))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		_, ok := AsSeatsUnavailable(err)
		assert.True(t, ok, "unexpected error: %v", err)
	}
	assert.Equal(t, 1, winners)
}
