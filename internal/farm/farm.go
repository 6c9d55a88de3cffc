// Package farm loads cattle farm locations and builds the map shown on the
// dairy analytics page.
package farm

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

//go:embed data/american-cattle-farm-locations.csv
var farmCSV []byte

// Farm is a cattle farm with its location.
type Farm struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Website   string  `json:"website"`
}

// Load parses the embedded farm list.
func Load() ([]Farm, error) {
	farms, err := Parse(bytes.NewReader(farmCSV))
	if err != nil {
		return nil, fmt.Errorf("loading cattle farms: %w", err)
	}
	return farms, nil
}

// Parse reads headerless rows of name,latitude,longitude,city,state,website.
func Parse(r io.Reader) ([]Farm, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 6
	cr.TrimLeadingSpace = true

	farms := make([]Farm, 0)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", line, err)
		}

		lat, err := parseCoord(rec[1], 90)
		if err != nil {
			return nil, fmt.Errorf("row %d: latitude: %w", line, err)
		}
		lng, err := parseCoord(rec[2], 180)
		if err != nil {
			return nil, fmt.Errorf("row %d: longitude: %w", line, err)
		}

		farms = append(farms, Farm{
			Name:      strings.TrimSpace(rec[0]),
			Latitude:  lat,
			Longitude: lng,
			City:      strings.TrimSpace(rec[3]),
			State:     strings.TrimSpace(rec[4]),
			Website:   strings.TrimSpace(rec[5]),
		})
	}
	return farms, nil
}

func parseCoord(s string, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if v < -limit || v > limit {
		return 0, fmt.Errorf("%v out of range ±%v", v, limit)
	}
	return v, nil
}
