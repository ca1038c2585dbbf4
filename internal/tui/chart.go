package tui

import (
	"fmt"
	"strings"

	"github.com/Lo-programmeur/BY-LocationAuto/internal/booking"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/catalog"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/format"
)

type ChartPoint struct {
	Label string
	Value int
}

// Chart is a horizontal ASCII bar chart. Rendering is presentation only;
// the values always come from the pure aggregation functions.
type Chart struct {
	Title string
	Data  []ChartPoint
}

func (c Chart) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(c.Data) == 0 {
		return c.Title + "\n(aucune donnée)"
	}
	maxV := 0
	for _, p := range c.Data {
		if p.Value > maxV {
			maxV = p.Value
		}
	}
	if maxV <= 0 {
		maxV = 1
	}
	lines := []string{c.Title}
	for _, p := range c.Data {
		w := int(float64(p.Value) / float64(maxV) * float64(max(1, width-12)))
		if w < 1 && p.Value > 0 {
			w = 1
		}
		lines = append(lines, fmt.Sprintf("%-8s %s %d", p.Label, strings.Repeat("#", w), p.Value))
		if len(lines) >= height {
			break
		}
	}
	return strings.Join(lines, "\n")
}

// MonthlyActivityChart turns the last-months histogram into chart points,
// oldest first, month labels in French.
func MonthlyActivityChart(counts []booking.MonthCount) Chart {
	data := make([]ChartPoint, 0, len(counts))
	for _, mc := range counts {
		data = append(data, ChartPoint{Label: format.MonthShort(mc.Month), Value: mc.Count})
	}
	return Chart{Title: "Activité (6 derniers mois)", Data: data}
}

// FleetChart renders the fleet distribution in fixed category order.
func FleetChart(counts map[catalog.Category]int) Chart {
	data := make([]ChartPoint, 0, len(counts))
	for _, c := range catalog.Categories() {
		data = append(data, ChartPoint{Label: c.Label(), Value: counts[c]})
	}
	return Chart{Title: "Flotte par catégorie", Data: data}
}
