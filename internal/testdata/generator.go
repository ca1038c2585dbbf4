package testdata

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/Lo-programmeur/BY-LocationAuto/internal/booking"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/catalog"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/database/repository"
)

// Seed fills the snapshot cache with sample bookings for userID so the
// dashboard has something to show without a reachable backend.
func Seed(ctx context.Context, repo *repository.BookingRepo, userID string) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	fleet := catalog.Fleet()
	statuses := []booking.Status{
		booking.StatusPending,
		booking.StatusConfirmed,
		booking.StatusOngoing,
		booking.StatusCompleted,
		booking.StatusCancelled,
	}
	locations := []catalog.Location{
		catalog.LocationAirport,
		catalog.LocationDowntown,
		catalog.LocationPortGentil,
		catalog.LocationFranceville,
	}

	now := time.Now().UTC()
	set := make([]booking.Booking, 0, 12)
	for i := 0; i < 12; i++ {
		v := fleet[rng.Intn(len(fleet))]
		days := rng.Intn(6) + 1
		start := now.AddDate(0, 0, -rng.Intn(120))
		set = append(set, booking.Booking{
			ID:             uuid.NewString(),
			UserID:         userID,
			VehicleID:      v.ID,
			CustomerName:   "Client Démo",
			PickupLocation: string(locations[rng.Intn(len(locations))]),
			StartDate:      booking.Date{Time: start},
			EndDate:        booking.Date{Time: start.AddDate(0, 0, days)},
			BookingDate:    start.AddDate(0, 0, -rng.Intn(7)),
			WithDriver:     rng.Intn(4) == 0,
			Status:         statuses[rng.Intn(len(statuses))],
			TotalPrice:     v.PricePerDay * int64(days),
		})
	}
	return repo.ReplaceForUser(ctx, userID, set)
}
