package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Lo-programmeur/BY-LocationAuto/internal/booking"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/database/repository"
)

// BookingAPI is the slice of the backend client the dashboard needs.
type BookingAPI interface {
	ListBookings(ctx context.Context) ([]booking.Booking, error)
	SetBookingStatus(ctx context.Context, id string, status booking.Status) error
}

// LoadResult is one dashboard refresh. Stale marks a snapshot served from
// the local cache after a failed backend read.
type LoadResult struct {
	Bookings []booking.Booking
	Stale    bool
}

// Dashboard loads and mutates the current user's booking set. Reads follow
// the stale-but-available policy: a failed fetch is logged and the previous
// snapshot is served; it is never surfaced as an error dialog.
type Dashboard struct {
	API   BookingAPI
	Cache *repository.BookingRepo
	Log   *zap.Logger
}

// Load fetches the full booking table, keeps the rows owned by userID and
// replaces both the in-memory set and the persisted snapshot wholesale.
// Read-after-write is achieved only by calling Load again.
func (s *Dashboard) Load(ctx context.Context, userID string) (LoadResult, error) {
	all, err := s.API.ListBookings(ctx)
	if err != nil {
		s.log().Warn("booking load failed, serving cached snapshot", zap.String("user_id", userID), zap.Error(err))
		return s.loadStale(ctx, userID)
	}

	mine := booking.ForUser(all, userID)
	if s.Cache != nil {
		if err := s.Cache.ReplaceForUser(ctx, userID, mine); err != nil {
			// the fresh data is still good; only persistence is degraded
			s.log().Warn("snapshot persist failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return LoadResult{Bookings: mine}, nil
}

func (s *Dashboard) loadStale(ctx context.Context, userID string) (LoadResult, error) {
	if s.Cache == nil {
		return LoadResult{Stale: true}, nil
	}
	cached, err := s.Cache.ListForUser(ctx, userID)
	if err != nil {
		return LoadResult{Stale: true}, fmt.Errorf("service: read snapshot: %w", err)
	}
	return LoadResult{Bookings: cached, Stale: true}, nil
}

// CancelBooking issues the partial status update, then one full reload, in
// that order. There is no optimistic local update: the UI shows the change
// only once the reload lands.
func (s *Dashboard) CancelBooking(ctx context.Context, userID, bookingID string) (LoadResult, error) {
	if err := s.API.SetBookingStatus(ctx, bookingID, booking.StatusCancelled); err != nil {
		return LoadResult{}, fmt.Errorf("service: cancel booking %s: %w", bookingID, err)
	}
	s.log().Info("booking cancelled", zap.String("user_id", userID), zap.String("booking_id", bookingID))
	return s.Load(ctx, userID)
}

func (s *Dashboard) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
