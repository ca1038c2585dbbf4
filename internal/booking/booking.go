package booking

import (
	"strings"
	"time"
)

// Status is the booking lifecycle label as the backend stores it. The set is
// closed, but values coming off the wire are not validated: an unrecognized
// status keeps its raw string and falls through the label/icon tables.
type Status string

const (
	StatusPending   Status = "en_attente"
	StatusConfirmed Status = "confirmee"
	StatusOngoing   Status = "en_cours"
	StatusCompleted Status = "terminee"
	StatusCancelled Status = "annulee"
)

var statusLabels = map[Status]string{
	StatusPending:   "En attente",
	StatusConfirmed: "Confirmée",
	StatusOngoing:   "En cours",
	StatusCompleted: "Terminée",
	StatusCancelled: "Annulée",
}

var statusIcons = map[Status]string{
	StatusPending:   "⏳",
	StatusConfirmed: "✔",
	StatusOngoing:   "🚗",
	StatusCompleted: "🏁",
	StatusCancelled: "✖",
}

// Label returns the display label, falling back to the raw value for
// statuses the client does not know about.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Icon returns the display glyph, "?" for unknown statuses.
func (s Status) Icon() string {
	if i, ok := statusIcons[s]; ok {
		return i
	}
	return "?"
}

// Cancellable reports whether the client offers the cancel action.
// Only pending bookings can be cancelled from the dashboard.
func (s Status) Cancellable() bool { return s == StatusPending }

// Date is a calendar date on the wire ("2006-01-02"). The backend's older
// rows carry full RFC 3339 timestamps, so unmarshalling accepts both.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Booking is one reservation record as owned by the backend. The client
// never mutates these in place; the whole set is replaced on reload.
type Booking struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	VehicleID      string    `json:"vehicleId"`
	CustomerName   string    `json:"customerName"`
	PickupLocation string    `json:"pickupLocation"`
	StartDate      Date      `json:"startDate"`
	EndDate        Date      `json:"endDate"`
	BookingDate    time.Time `json:"bookingDate"`
	WithDriver     bool      `json:"withDriver"`
	Status         Status    `json:"status"`
	TotalPrice     int64     `json:"totalPrice"`
}

// ForUser returns the subset belonging to userID, order preserved.
func ForUser(set []Booking, userID string) []Booking {
	out := make([]Booking, 0, len(set))
	for _, b := range set {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}
