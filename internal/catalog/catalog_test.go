package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func vehicleIDs(set []Vehicle) []string {
	out := make([]string, 0, len(set))
	for _, v := range set {
		out = append(out, v.ID)
	}
	return out
}

func TestFilterAllPreservesSourceOrder(t *testing.T) {
	t.Parallel()

	c := New()
	require.Equal(t, []string{"v1", "v2", "v3", "v4"}, vehicleIDs(c.FilterByCategory(FilterAll)))
}

func TestFilterByCategorySubsets(t *testing.T) {
	t.Parallel()

	c := New()
	for _, tc := range []struct {
		category string
		want     []string
	}{
		{"berline", []string{"v1"}},
		{"suv", []string{"v2"}},
		{"luxe", []string{"v3"}},
		{"economique", []string{"v4"}},
		{"cabriolet", nil},
	} {
		got := c.FilterByCategory(tc.category)
		require.Equal(t, tc.want, emptyToNil(vehicleIDs(got)), "category %s", tc.category)
		for _, v := range got {
			require.Equal(t, tc.category, string(v.Category))
		}
	}
}

func emptyToNil(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

func TestFilterThenRestoreAll(t *testing.T) {
	t.Parallel()

	c := New()
	c.FilterByCategory("suv")
	require.Equal(t, "suv", c.ActiveFilter())
	require.Equal(t, []string{"v1", "v2", "v3", "v4"}, vehicleIDs(c.FilterByCategory(FilterAll)))
}

func TestSearch(t *testing.T) {
	t.Parallel()

	c := New()
	require.Equal(t, []string{"v1"}, vehicleIDs(c.Search("corolla")))
	require.Equal(t, []string{"v1"}, vehicleIDs(c.Search("corola"))) // typo within distance 2
	require.Equal(t, []string{"v2"}, vehicleIDs(c.Search("TUCSON")))
	require.Empty(t, c.Search("camion"))
	// empty query falls back to the visible subset
	c.FilterByCategory("luxe")
	require.Equal(t, []string{"v3"}, vehicleIDs(c.Search("  ")))
}

func TestSearchRespectsActiveFilter(t *testing.T) {
	t.Parallel()

	c := New()
	c.FilterByCategory("economique")
	require.Empty(t, c.Search("tucson"))
}

func TestSelectUnavailableNeverProceeds(t *testing.T) {
	t.Parallel()

	c := New()
	for _, signedIn := range []bool{true, false} {
		_, outcome := c.Select("v3", signedIn) // Mercedes, unavailable
		require.Equal(t, OutcomeUnavailable, outcome)
		_, outcome = c.Select("v999", signedIn)
		require.Equal(t, OutcomeUnavailable, outcome)
	}
}

func TestSelectRequiresSession(t *testing.T) {
	t.Parallel()

	c := New()
	v, outcome := c.Select("v1", false)
	require.Equal(t, OutcomeSignInRequired, outcome)
	require.Equal(t, "v1", v.ID)

	v, outcome = c.Select("v1", true)
	require.Equal(t, OutcomeProceed, outcome)
	require.Equal(t, "Toyota", v.Brand)
}

func TestLabelsWithFallback(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Économique", CategoryEconomy.Label())
	require.Equal(t, "SUV", CategorySUV.Label())
	require.Equal(t, "pickup", Category("pickup").Label())

	require.Equal(t, "Aéroport Léon-Mba", LocationAirport.Label())
	require.Equal(t, "Centre-ville", LocationDowntown.Label())
	require.Equal(t, "lambarene", Location("lambarene").Label())
}

func TestCountByCategory(t *testing.T) {
	t.Parallel()

	counts := New().CountByCategory()
	require.Equal(t, 1, counts[CategoryEconomy])
	require.Equal(t, 1, counts[CategorySedan])
	require.Equal(t, 1, counts[CategorySUV])
	require.Equal(t, 1, counts[CategoryLuxury])
}

func TestFleetIsCopied(t *testing.T) {
	t.Parallel()

	a := Fleet()
	a[0].Brand = "Renault"
	require.Equal(t, "Toyota", Fleet()[0].Brand)
}
