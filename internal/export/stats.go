package export

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mverdier/driver-management-api/internal/models"
)

// Stats summarizes an export run: headcount per service and per site,
// contract split and mean seniority in days.
type Stats struct {
	Total             int
	PerService        map[string]int
	PerSite           map[string]int
	Permanent         int
	Temp              int
	MeanSeniorityDays float64
}

// ComputeStats aggregates the drivers as of today.
func ComputeStats(drivers []models.Driver, today time.Time) Stats {
	stats := Stats{
		Total:      len(drivers),
		PerService: make(map[string]int),
		PerSite:    make(map[string]int),
	}

	var totalDays float64
	for _, d := range drivers {
		service := d.Service.Name
		if service == "" {
			service = "Sans service"
		}
		stats.PerService[service]++

		site := "Sans site"
		if d.Site.Name != "" {
			site = fmt.Sprintf("%s (%s)", d.Site.Name, d.Site.PostalCode)
		}
		stats.PerSite[site]++

		if d.IsTemp {
			stats.Temp++
		} else {
			stats.Permanent++
		}

		totalDays += today.Sub(d.HireDate).Hours() / 24
	}

	if len(drivers) > 0 {
		stats.MeanSeniorityDays = totalDays / float64(len(drivers))
	}
	return stats
}

// Print writes the stats in a readable layout, entries sorted by name.
func (s Stats) Print(w io.Writer) {
	fmt.Fprintln(w, "Statistiques détaillées:")
	fmt.Fprintln(w, "========================================")

	fmt.Fprintln(w, "Répartition par service:")
	for _, name := range sortedKeys(s.PerService) {
		fmt.Fprintf(w, "  - %s: %d\n", name, s.PerService[name])
	}

	fmt.Fprintln(w, "Répartition par site:")
	for _, name := range sortedKeys(s.PerSite) {
		fmt.Fprintf(w, "  - %s: %d\n", name, s.PerSite[name])
	}

	fmt.Fprintln(w, "Types de contrat:")
	fmt.Fprintf(w, "  - Permanents: %d\n", s.Permanent)
	fmt.Fprintf(w, "  - Intérimaires: %d\n", s.Temp)

	fmt.Fprintf(w, "Ancienneté moyenne: %.0f jours (%.1f ans)\n",
		s.MeanSeniorityDays, s.MeanSeniorityDays/365)
	fmt.Fprintln(w, "========================================")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
