package farm

import (
	"bytes"
	"fmt"
	"html/template"
)

// MarkerIcon is the image used for every farm marker.
const MarkerIcon = "/static/images/cow_annotation.png"

// LatLng is a map position.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Marker is a clickable map marker with an info popup.
type Marker struct {
	Position LatLng `json:"position"`
	Title    string `json:"title"`
	Icon     string `json:"icon"`
	InfoHTML string `json:"infoHtml"`
}

// MapConfig is the payload served at /map-config.
type MapConfig struct {
	Center  LatLng   `json:"center"`
	Zoom    int      `json:"zoom"`
	Markers []Marker `json:"markers"`
}

// Geographic center of the contiguous United States.
var defaultCenter = LatLng{Lat: 39.826499, Lng: -98.580313}

const defaultZoom = 4

var infoTmpl = template.Must(template.New("info").Parse(
	`<div class="farm-info"><h3>{{.Name}}</h3><p>{{.City}}, {{.State}}</p>` +
		`{{if .Website}}<a href="{{.Website}}" target="_blank" rel="noopener">Website</a>{{end}}</div>`))

// InfoHTML renders the popup content for a farm. Farm fields are escaped.
func InfoHTML(f Farm) (string, error) {
	var buf bytes.Buffer
	if err := infoTmpl.Execute(&buf, f); err != nil {
		return "", fmt.Errorf("rendering info window for %q: %w", f.Name, err)
	}
	return buf.String(), nil
}

// BuildMap places one marker per farm on a map of the United States.
func BuildMap(farms []Farm) (MapConfig, error) {
	markers := make([]Marker, 0, len(farms))
	for _, f := range farms {
		info, err := InfoHTML(f)
		if err != nil {
			return MapConfig{}, err
		}
		markers = append(markers, Marker{
			Position: LatLng{Lat: f.Latitude, Lng: f.Longitude},
			Title:    f.Name,
			Icon:     MarkerIcon,
			InfoHTML: info,
		})
	}
	return MapConfig{Center: defaultCenter, Zoom: defaultZoom, Markers: markers}, nil
}
