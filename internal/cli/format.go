package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/portfolio/internal/dairy"
	"github.com/evcraddock/portfolio/internal/farm"
	"github.com/evcraddock/portfolio/internal/meeting"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printMilkTable prints one row per year. Relative series are shown as
// percentages, absolute ones in millions of pounds.
func printMilkTable(out io.Writer, years []dairy.Year, relative bool) error {
	if len(years) == 0 {
		_, err := fmt.Fprintln(out, "No data.")
		return err
	}

	value := formatPounds
	if relative {
		value = formatPercent
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintln(w, "YEAR\tWHOLE\tREDUCED\tLOW-FAT\tSKIM\tFLAV WHOLE\tFLAV NONWHOLE\tBUTTERMILK\tEGGNOG\tTOTAL\t"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}

	for _, y := range years {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			y.Year, value(y.Whole), value(y.ReducedFat), value(y.LowFat), value(y.Skim),
			value(y.FlavoredWhole), value(y.FlavoredNonwhole), value(y.Buttermilk),
			value(y.Eggnog), value(y.TotalMilk)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	return nil
}

// printFarmTable prints the farm list as a formatted table.
func printFarmTable(out io.Writer, farms []farm.Farm) error {
	if len(farms) == 0 {
		_, err := fmt.Fprintln(out, "No farms found.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "NAME\tLOCATION\tLAT\tLNG\tWEBSITE"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "----\t--------\t---\t---\t-------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, f := range farms {
		website := f.Website
		if website == "" {
			website = "-"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s, %s\t%.4f\t%.4f\t%s\n",
			truncate(f.Name, 40), f.City, f.State, f.Latitude, f.Longitude, website); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	_, err := fmt.Fprintf(out, "\nTotal: %d farms\n", len(farms))
	return err
}

// printRanges prints one free range per line.
func printRanges(out io.Writer, ranges []meeting.TimeRange) error {
	if len(ranges) == 0 {
		_, err := fmt.Fprintln(out, "No free time found.")
		return err
	}
	for _, r := range ranges {
		if _, err := fmt.Fprintf(out, "%s  (%s)\n", r, formatMinutes(r.Duration())); err != nil {
			return err
		}
	}
	return nil
}

func formatPounds(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

// formatPercent renders a fractional change such as 0.125 as "+12.5%".
func formatPercent(v float64) string {
	return fmt.Sprintf("%+.1f%%", v*100)
}

// formatMinutes renders a duration in minutes as "1h30m", "45m" or "2h".
func formatMinutes(m int) string {
	h, rem := m/60, m%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", rem)
	case rem == 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02dm", h, rem)
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return strings.TrimSpace(string(r[:maxLen-3])) + "..."
}
