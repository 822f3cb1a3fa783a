package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Znerf/headacheFront/internal"
	"github.com/Znerf/headacheFront/internal/dashboard"
	"github.com/Znerf/headacheFront/internal/weather"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show profile, weather and recent entries",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func loadDashboard(e *env) error {
	return e.dash.Load(context.Background())
}

func runDashboard(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	if err := loadDashboard(e); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"profile": e.dash.Profile,
			"weather": e.dash.Weather,
			"records": e.dash.Records,
			"total":   e.dash.Total,
		})
	}

	printProfile(e.dash.Profile)
	fmt.Println()
	printWeather(e.dash.Weather, e.dash.Hourly)
	fmt.Println()
	return printRecords(e.dash)
}

func printProfile(p *internal.Profile) {
	if p == nil {
		return
	}
	fmt.Printf("Profile: %s\n", p.Name)
	if loc := p.Location; loc != nil {
		parts := []string{}
		for _, s := range []*string{loc.City, loc.State, loc.Country} {
			if s != nil && *s != "" {
				parts = append(parts, *s)
			}
		}
		if len(parts) > 0 {
			fmt.Printf("Location: %s\n", strings.Join(parts, ", "))
		}
		if loc.Latitude != nil && loc.Longitude != nil {
			fmt.Printf("Coordinates: %.4f, %.4f\n", *loc.Latitude, *loc.Longitude)
		}
	}
}

func printWeather(snap *internal.WeatherSnapshot, hourly []weather.HourlyPoint) {
	if snap == nil {
		fmt.Println("Weather: unavailable")
		return
	}
	if snap.Message != "" {
		fmt.Printf("Weather: %s\n", snap.Message)
		return
	}
	if cur := currentOf(snap); cur != nil {
		fmt.Printf("Weather now: %.1f°C (feels like %.1f°C), humidity %.0f%%, wind %.1f km/h\n",
			cur.Temperature2M, cur.ApparentTemp, cur.RelativeHumidity2M, cur.WindSpeed10M)
	}
	if len(hourly) > 0 {
		fmt.Printf("Next %d hours: %s\n", len(hourly), sparkline(weather.Temperatures(hourly)))
	}
}

func currentOf(snap *internal.WeatherSnapshot) *internal.CurrentWeather {
	if snap.Weather == nil {
		return nil
	}
	return snap.Weather.Current
}

// sparkline renders values as a unicode bar chart scaled to their range.
func sparkline(vals []float64) string {
	if len(vals) == 0 {
		return ""
	}
	bars := []rune("▁▂▃▄▅▆▇█")
	min, max := weather.Range(vals)
	span := max - min

	var b strings.Builder
	for _, v := range vals {
		idx := 0
		if span > 0 {
			idx = int((v - min) / span * float64(len(bars)-1))
		}
		b.WriteRune(bars[idx])
	}
	return b.String()
}

func printRecords(d *dashboard.Dashboard) error {
	if len(d.Records) == 0 {
		fmt.Println("No entries yet. Log one with: headachectl log")
		return nil
	}

	w := newTable()
	printTableHeader(w, "DATE", "HEADACHE", "START", "END", "OUTSIDE", "WATER", "NOTES")
	for _, r := range d.Records {
		printTableHeader(w,
			r.Date,
			yesNo(r.HadHeadache),
			orDash(r.HeadacheStartTime),
			orDash(r.HeadacheEndTime),
			yesNo(r.WentOutsideYesterday),
			yesNo(r.DrankWaterYesterday),
			truncate(r.Notes, 40),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("Page %d of %d (%d entries)\n", d.CurrentPage, d.TotalPages, d.Total)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
