package tui

import (
	"fmt"
	"strings"

	"github.com/Lo-programmeur/BY-LocationAuto/internal/booking"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/catalog"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/format"
)

// vehicleNames indexes the static fleet once for card headers.
var vehicleNames = func() map[string]string {
	out := make(map[string]string)
	for _, v := range catalog.Fleet() {
		out[v.ID] = fmt.Sprintf("%s %s", v.Brand, v.Model)
	}
	return out
}()

func vehicleName(id string) string {
	if name, ok := vehicleNames[id]; ok {
		return name
	}
	return "Véhicule " + id
}

// RenderBookingCard renders one reservation as a text card. It is a pure
// function of the booking; the recent list and the full list share it.
// withActions appends the action row, with Annuler offered only while the
// booking is still pending.
func RenderBookingCard(b booking.Booking, withActions bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s · %s\n", b.Status.Icon(), b.Status.Label(), vehicleName(b.VehicleID))
	fmt.Fprintf(&sb, "  Du %s au %s · %s\n", format.Day(b.StartDate.Time), format.Day(b.EndDate.Time), catalog.Location(b.PickupLocation).Label())
	driver := ""
	if b.WithDriver {
		driver = " · Avec chauffeur"
	}
	fmt.Fprintf(&sb, "  %s%s · Réservé le %s", format.FCFA(b.TotalPrice), driver, format.Day(b.BookingDate))
	if withActions {
		sb.WriteString("\n  [enter] Détails")
		if b.Status.Cancellable() {
			sb.WriteString("  [a] Annuler")
		}
	}
	return sb.String()
}

// RenderVehicleCard renders one fleet entry for the catalog gallery.
func RenderVehicleCard(v catalog.Vehicle) string {
	var sb strings.Builder
	badge := "Disponible"
	if !v.IsAvailable {
		badge = "Indisponible"
	}
	fmt.Fprintf(&sb, "%s %s %d · %s · %s\n", v.Brand, v.Model, v.Year, v.Category.Label(), badge)
	fmt.Fprintf(&sb, "  %s · %d places · %d portes · %s · %s\n", format.PerDay(v.PricePerDay), v.Seats, v.Doors, v.Transmission, v.Fuel)
	fmt.Fprintf(&sb, "  %s · %s", v.Location.Label(), strings.Join(v.Features, ", "))
	return sb.String()
}

// RenderBookingDetails is the expanded card shown in the details modal.
func RenderBookingDetails(b booking.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Réservation %s\n", b.ID)
	fmt.Fprintf(&sb, "Véhicule: %s\n", vehicleName(b.VehicleID))
	fmt.Fprintf(&sb, "Client: %s\n", b.CustomerName)
	fmt.Fprintf(&sb, "Statut: %s %s\n", b.Status.Icon(), b.Status.Label())
	fmt.Fprintf(&sb, "Du %s au %s\n", format.Day(b.StartDate.Time), format.Day(b.EndDate.Time))
	fmt.Fprintf(&sb, "Lieu de prise en charge: %s\n", catalog.Location(b.PickupLocation).Label())
	if b.WithDriver {
		sb.WriteString("Avec chauffeur\n")
	}
	fmt.Fprintf(&sb, "Total: %s", format.FCFA(b.TotalPrice))
	return sb.String()
}
