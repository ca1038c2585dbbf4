package format

import (
	"fmt"
	"time"
)

var frMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

var frMonthsShort = [...]string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Juin",
	"Juil", "Août", "Sep", "Oct", "Nov", "Déc",
}

// Day renders a calendar date the French way, e.g. "03/02/2026".
func Day(t time.Time) string {
	return t.Format("02/01/2006")
}

// MonthYear renders "février 2026", used for the "member since" line.
func MonthYear(t time.Time) string {
	return fmt.Sprintf("%s %d", frMonths[t.Month()-1], t.Year())
}

// MonthShort renders the three-or-four letter month label used on chart axes.
func MonthShort(m time.Month) string {
	return frMonthsShort[m-1]
}
