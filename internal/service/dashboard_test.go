package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Lo-programmeur/BY-LocationAuto/internal/booking"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/database"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/database/repository"
)

// fakeAPI records the order of backend calls.
type fakeAPI struct {
	bookings []booking.Booking
	listErr  error
	patchErr error
	calls    []string
}

func (f *fakeAPI) ListBookings(ctx context.Context) ([]booking.Booking, error) {
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.bookings, nil
}

func (f *fakeAPI) SetBookingStatus(ctx context.Context, id string, status booking.Status) error {
	f.calls = append(f.calls, "patch "+id+" "+string(status))
	return f.patchErr
}

func testCache(t *testing.T) *repository.BookingRepo {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	migrations, err := filepath.Abs("../database/migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewBookingRepo(db)
}

func wireBooking(id, userID string, status booking.Status, price int64) booking.Booking {
	return booking.Booking{
		ID:          id,
		UserID:      userID,
		VehicleID:   "v1",
		StartDate:   booking.Date{Time: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)},
		EndDate:     booking.Date{Time: time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)},
		BookingDate: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
		Status:      status,
		TotalPrice:  price,
	}
}

func TestLoadKeepsOnlyCurrentUser(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{bookings: []booking.Booking{
		wireBooking("b1", "u1", booking.StatusPending, 10000),
		wireBooking("b2", "u2", booking.StatusConfirmed, 20000),
		wireBooking("b3", "u1", booking.StatusCancelled, 5000),
	}}
	svc := &Dashboard{API: api, Cache: testCache(t)}

	res, err := svc.Load(context.Background(), "u1")
	require.NoError(t, err)
	require.False(t, res.Stale)
	require.Len(t, res.Bookings, 2)
	for _, b := range res.Bookings {
		require.Equal(t, "u1", b.UserID)
	}
}

func TestLoadFailureServesStaleSnapshot(t *testing.T) {
	t.Parallel()

	cache := testCache(t)
	api := &fakeAPI{bookings: []booking.Booking{wireBooking("b1", "u1", booking.StatusPending, 10000)}}
	svc := &Dashboard{API: api, Cache: cache}

	_, err := svc.Load(context.Background(), "u1")
	require.NoError(t, err)

	// backend goes away; the previous snapshot must survive
	api.listErr = errors.New("connection refused")
	res, err := svc.Load(context.Background(), "u1")
	require.NoError(t, err)
	require.True(t, res.Stale)
	require.Len(t, res.Bookings, 1)
	require.Equal(t, "b1", res.Bookings[0].ID)
}

func TestLoadFailureWithEmptyCache(t *testing.T) {
	t.Parallel()

	svc := &Dashboard{API: &fakeAPI{listErr: errors.New("timeout")}, Cache: testCache(t)}
	res, err := svc.Load(context.Background(), "u1")
	require.NoError(t, err)
	require.True(t, res.Stale)
	require.Empty(t, res.Bookings)
}

func TestCancelBookingPatchThenReload(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{bookings: []booking.Booking{wireBooking("b1", "u1", booking.StatusCancelled, 10000)}}
	svc := &Dashboard{API: api, Cache: testCache(t)}

	res, err := svc.CancelBooking(context.Background(), "u1", "b1")
	require.NoError(t, err)
	require.Equal(t, []string{"patch b1 annulee", "list"}, api.calls)
	require.Len(t, res.Bookings, 1)
}

func TestCancelBookingPatchFailureSkipsReload(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{patchErr: errors.New("boom")}
	svc := &Dashboard{API: api, Cache: testCache(t)}

	_, err := svc.CancelBooking(context.Background(), "u1", "b1")
	require.Error(t, err)
	require.Equal(t, []string{"patch b1 annulee"}, api.calls)
}

func TestStatsAreDerivedFromLoadedSet(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{bookings: []booking.Booking{
		wireBooking("b1", "u1", booking.StatusPending, 10000),
		wireBooking("b2", "u1", booking.StatusCancelled, 5000),
		wireBooking("b3", "u1", booking.StatusConfirmed, 20000),
	}}
	svc := &Dashboard{API: api, Cache: testCache(t)}

	res, err := svc.Load(context.Background(), "u1")
	require.NoError(t, err)

	stats := booking.ComputeStats(res.Bookings)
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 1, stats.Active)
	require.Equal(t, 1, stats.Pending)
	require.Equal(t, int64(30000), stats.TotalSpent)
}
