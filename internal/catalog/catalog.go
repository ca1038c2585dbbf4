package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// FilterAll shows the whole fleet.
const FilterAll = "all"

// Catalog holds the working vehicle list and the active category filter.
// One instance is constructed per session; it is not safe for concurrent
// use and does not need to be (single event loop).
type Catalog struct {
	vehicles []Vehicle
	filter   string
}

// New builds a catalog over the static fleet, unfiltered.
func New() *Catalog {
	return &Catalog{vehicles: Fleet(), filter: FilterAll}
}

// Len reports the full fleet size.
func (c *Catalog) Len() int { return len(c.vehicles) }

// ActiveFilter reports the current filter ("all" or one category value).
func (c *Catalog) ActiveFilter() string { return c.filter }

// FilterByCategory sets the active filter and returns the visible subset.
// "all" restores the full list; anything else keeps only vehicles whose
// category equals the argument. Source order is preserved, never sorted.
func (c *Catalog) FilterByCategory(category string) []Vehicle {
	c.filter = category
	return c.Visible()
}

// Visible recomputes the subset for the active filter.
func (c *Catalog) Visible() []Vehicle {
	if c.filter == FilterAll {
		out := make([]Vehicle, len(c.vehicles))
		copy(out, c.vehicles)
		return out
	}
	out := make([]Vehicle, 0, len(c.vehicles))
	for _, v := range c.vehicles {
		if string(v.Category) == c.filter {
			out = append(out, v)
		}
	}
	return out
}

// Search matches brand or model, case-insensitively, by substring or an
// edit distance of at most 2. Order is preserved. An empty query returns
// the currently visible subset.
func (c *Catalog) Search(query string) []Vehicle {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Visible()
	}
	out := make([]Vehicle, 0, len(c.vehicles))
	for _, v := range c.Visible() {
		if matchesQuery(v, q) {
			out = append(out, v)
		}
	}
	return out
}

func matchesQuery(v Vehicle, q string) bool {
	for _, field := range []string{v.Brand, v.Model, v.Brand + " " + v.Model} {
		f := strings.ToLower(field)
		if strings.Contains(f, q) {
			return true
		}
		if levenshtein.ComputeDistance(f, q) <= 2 {
			return true
		}
	}
	return false
}

// ByID returns the vehicle with the given id, or nil.
func (c *Catalog) ByID(id string) *Vehicle {
	for i := range c.vehicles {
		if c.vehicles[i].ID == id {
			v := c.vehicles[i]
			return &v
		}
	}
	return nil
}

// SelectOutcome is the result of attempting to start a booking from the
// gallery.
type SelectOutcome int

const (
	// OutcomeUnavailable covers both unknown ids and unavailable vehicles:
	// the user sees a warning and the booking flow is never reached.
	OutcomeUnavailable SelectOutcome = iota
	// OutcomeSignInRequired prompts sign-in instead of proceeding.
	OutcomeSignInRequired
	// OutcomeProceed hands off to the external booking flow.
	OutcomeProceed
)

// Select decides what happens when a vehicle card's booking action fires.
// Availability is checked before session state, so an unavailable vehicle
// never triggers a sign-in prompt.
func (c *Catalog) Select(id string, signedIn bool) (Vehicle, SelectOutcome) {
	v := c.ByID(id)
	if v == nil || !v.IsAvailable {
		return Vehicle{}, OutcomeUnavailable
	}
	if !signedIn {
		return *v, OutcomeSignInRequired
	}
	return *v, OutcomeProceed
}

// CountByCategory returns the fleet distribution in Categories() order,
// feeding the catalog chart.
func (c *Catalog) CountByCategory() map[Category]int {
	out := make(map[Category]int, 4)
	for _, v := range c.vehicles {
		out[v.Category]++
	}
	return out
}
