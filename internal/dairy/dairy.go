// Package dairy loads yearly US milk consumption figures and derives the
// year-over-year growth series shown on the dairy analytics page.
package dairy

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

//go:embed data/milk-consumption-by-year.csv
var milkCSV []byte

// Year holds one year of consumption by milk type.
// Figures are millions of pounds, or fractional change in the relative series.
type Year struct {
	Year             int     `json:"year"`
	Whole            float64 `json:"whole"`
	ReducedFat       float64 `json:"reducedFat"`
	LowFat           float64 `json:"lowFat"`
	Skim             float64 `json:"skim"`
	FlavoredWhole    float64 `json:"flavoredWhole"`
	FlavoredNonwhole float64 `json:"flavoredNonwhole"`
	Buttermilk       float64 `json:"buttermilk"`
	Eggnog           float64 `json:"eggnog"`
	TotalMilk        float64 `json:"totalMilk"`
}

// Data is the payload served at /milk-data.
type Data struct {
	Consumption         []Year `json:"consumption"`
	RelativeConsumption []Year `json:"relativeConsumption"`
}

// Dataset names, as used by the chart endpoints.
const (
	DatasetConsumption         = "consumption"
	DatasetRelativeConsumption = "relativeConsumption"
)

// Series returns the named dataset.
func (d Data) Series(name string) ([]Year, bool) {
	switch name {
	case DatasetConsumption:
		return d.Consumption, true
	case DatasetRelativeConsumption:
		return d.RelativeConsumption, true
	}
	return nil, false
}

const fieldsPerRecord = 10

// Load parses the embedded consumption table.
func Load() (Data, error) {
	years, err := Parse(bytes.NewReader(milkCSV))
	if err != nil {
		return Data{}, fmt.Errorf("loading milk data: %w", err)
	}
	return Data{Consumption: years, RelativeConsumption: Relative(years)}, nil
}

// Parse reads headerless rows of year,whole,reducedFat,lowFat,skim,
// flavoredWhole,flavoredNonwhole,buttermilk,eggnog,totalMilk.
func Parse(r io.Reader) ([]Year, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fieldsPerRecord
	cr.TrimLeadingSpace = true

	years := make([]Year, 0)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", line, err)
		}

		y, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		years = append(years, y)
	}
	return years, nil
}

func parseRecord(rec []string) (Year, error) {
	year, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil {
		return Year{}, fmt.Errorf("invalid year %q", rec[0])
	}

	vals := make([]float64, fieldsPerRecord-1)
	for i := range vals {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64)
		if err != nil {
			return Year{}, fmt.Errorf("invalid value %q in column %d", rec[i+1], i+2)
		}
		vals[i] = v
	}

	return Year{
		Year:             year,
		Whole:            vals[0],
		ReducedFat:       vals[1],
		LowFat:           vals[2],
		Skim:             vals[3],
		FlavoredWhole:    vals[4],
		FlavoredNonwhole: vals[5],
		Buttermilk:       vals[6],
		Eggnog:           vals[7],
		TotalMilk:        vals[8],
	}, nil
}

// Relative converts absolute figures into year-over-year changes. The first
// year has no predecessor and is reported as all zeros.
func Relative(years []Year) []Year {
	rel := make([]Year, 0, len(years))
	if len(years) == 0 {
		return rel
	}

	rel = append(rel, Year{Year: years[0].Year})
	for i := 1; i < len(years); i++ {
		prev, cur := years[i-1], years[i]
		rel = append(rel, Year{
			Year:             cur.Year,
			Whole:            PercentageChange(prev.Whole, cur.Whole),
			ReducedFat:       PercentageChange(prev.ReducedFat, cur.ReducedFat),
			LowFat:           PercentageChange(prev.LowFat, cur.LowFat),
			Skim:             PercentageChange(prev.Skim, cur.Skim),
			FlavoredWhole:    PercentageChange(prev.FlavoredWhole, cur.FlavoredWhole),
			FlavoredNonwhole: PercentageChange(prev.FlavoredNonwhole, cur.FlavoredNonwhole),
			Buttermilk:       PercentageChange(prev.Buttermilk, cur.Buttermilk),
			Eggnog:           PercentageChange(prev.Eggnog, cur.Eggnog),
			TotalMilk:        PercentageChange(prev.TotalMilk, cur.TotalMilk),
		})
	}
	return rel
}

// PercentageChange returns (updated-original)/original as a fraction.
// A zero original yields 0 so the result always encodes as JSON.
func PercentageChange(original, updated float64) float64 {
	if original == 0 {
		return 0
	}
	return (updated - original) / original
}
