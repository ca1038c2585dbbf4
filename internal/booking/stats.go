package booking

import (
	"sort"
	"time"
)

// Stats are the dashboard counters. They are always derived from the cached
// booking set in one pass; nothing maintains them incrementally.
type Stats struct {
	Total      int
	Active     int // confirmee + en_cours
	Pending    int // en_attente
	TotalSpent int64
}

// ComputeStats derives the dashboard counters from scratch. Cancelled
// bookings are excluded from the spend total only.
func ComputeStats(set []Booking) Stats {
	var s Stats
	s.Total = len(set)
	for _, b := range set {
		switch b.Status {
		case StatusConfirmed, StatusOngoing:
			s.Active++
		case StatusPending:
			s.Pending++
		}
		if b.Status != StatusCancelled {
			s.TotalSpent += b.TotalPrice
		}
	}
	return s
}

// SortByDateDesc returns a copy ordered by bookingDate descending. The sort
// is stable so equal timestamps keep their source order.
func SortByDateDesc(set []Booking) []Booking {
	out := make([]Booking, len(set))
	copy(out, set)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BookingDate.After(out[j].BookingDate)
	})
	return out
}

// Recent returns the newest n bookings (bookingDate descending).
func Recent(set []Booking, n int) []Booking {
	sorted := SortByDateDesc(set)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Filter reduces the "all bookings" list before rendering. Zero values mean
// no reduction. Filtering never changes ordering.
type Filter struct {
	Status Status
	Month  time.Time // any instant in the wanted calendar month; zero = off
}

func (f Filter) Apply(set []Booking) []Booking {
	out := make([]Booking, 0, len(set))
	for _, b := range set {
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if !f.Month.IsZero() {
			if b.BookingDate.Year() != f.Month.Year() || b.BookingDate.Month() != f.Month.Month() {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

// MonthCount is one bar of the dashboard activity chart.
type MonthCount struct {
	Month time.Month
	Count int
}

// CountByMonth buckets bookings into the last n calendar months ending at
// now, oldest first.
func CountByMonth(set []Booking, now time.Time, n int) []MonthCount {
	out := make([]MonthCount, 0, n)
	for i := n - 1; i >= 0; i-- {
		anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		count := 0
		for _, b := range set {
			if b.BookingDate.Year() == anchor.Year() && b.BookingDate.Month() == anchor.Month() {
				count++
			}
		}
		out = append(out, MonthCount{Month: anchor.Month(), Count: count})
	}
	return out
}
