package dairy

import "fmt"

// Column is a DataTable column definition.
type Column struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

// Cell is a DataTable cell.
type Cell struct {
	V any `json:"v"`
}

// Row is a DataTable row.
type Row struct {
	C []Cell `json:"c"`
}

// DataTable is the JSON literal form accepted by google.visualization.DataTable.
type DataTable struct {
	Cols []Column `json:"cols"`
	Rows []Row    `json:"rows"`
}

// Options are chart configuration options passed to the chart's draw call.
type Options map[string]any

// Chart is everything the page needs to draw one line chart.
type Chart struct {
	Name        string    `json:"name"`
	ContainerID string    `json:"containerId"`
	Data        DataTable `json:"data"`
	Options     Options   `json:"options"`
}

var columnLabels = []string{
	"Year", "Whole", "Reduced-fat", "Low-fat", "Skim",
	"Flavored whole", "Flavored nonwhole", "Buttermilk", "Eggnog", "Total",
}

// BuildTable lays years out as one row per year, one column per milk type.
func BuildTable(years []Year) DataTable {
	cols := make([]Column, len(columnLabels))
	for i, label := range columnLabels {
		cols[i] = Column{Type: "number", Label: label}
	}

	rows := make([]Row, 0, len(years))
	for _, y := range years {
		rows = append(rows, Row{C: []Cell{
			{V: y.Year}, {V: y.Whole},
			{V: y.ReducedFat}, {V: y.LowFat},
			{V: y.Skim}, {V: y.FlavoredWhole},
			{V: y.FlavoredNonwhole}, {V: y.Buttermilk},
			{V: y.Eggnog}, {V: y.TotalMilk},
		}})
	}
	return DataTable{Cols: cols, Rows: rows}
}

// BaseOptions are shared by both dairy charts.
func BaseOptions() Options {
	return Options{
		"theme":  "material",
		"width":  700,
		"height": 400,
		"hAxis": map[string]any{
			"format": "####",
			"title":  "Year",
			"viewWindow": map[string]any{
				"max": 2018,
				"min": 1975,
			},
			"ticks": []int{1975, 1985, 1995, 2005, 2015},
		},
	}
}

// Merge returns base with every top-level key of props applied over it.
// Nested maps are replaced, not merged.
func Merge(base, props Options) Options {
	out := make(Options, len(base)+len(props))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range props {
		out[k] = v
	}
	return out
}

type chartSpec struct {
	dataset     string
	containerID string
	properties  Options
}

var chartSpecs = []chartSpec{
	{
		dataset:     DatasetConsumption,
		containerID: "yearly-chart-container",
		properties: Options{
			"title": "Dairy Consumption",
			"vAxis": map[string]any{
				"format": "decimal",
				"title":  "Consumption (millions of pounds)",
			},
		},
	},
	{
		dataset:     DatasetRelativeConsumption,
		containerID: "relative-chart-container",
		properties: Options{
			"title": "Year-Over-Year Dairy Growth",
			"vAxis": map[string]any{
				"format": "percent",
				"title":  "Percentage Change",
				"viewWindow": map[string]any{
					"max": 0.35,
					"min": -0.35,
				},
				"ticks": []float64{-0.3, -0.2, -0.1, 0, 0.1, 0.2, 0.3},
			},
		},
	},
}

// Charts returns both dairy charts in page order.
func Charts(d Data) []Chart {
	charts := make([]Chart, 0, len(chartSpecs))
	for _, spec := range chartSpecs {
		c, err := ChartFor(d, spec.dataset)
		if err != nil {
			continue
		}
		charts = append(charts, c)
	}
	return charts
}

// ChartFor builds the chart for a single named dataset.
func ChartFor(d Data, name string) (Chart, error) {
	for _, spec := range chartSpecs {
		if spec.dataset != name {
			continue
		}
		years, _ := d.Series(name)
		return Chart{
			Name:        name,
			ContainerID: spec.containerID,
			Data:        BuildTable(years),
			Options:     Merge(BaseOptions(), spec.properties),
		}, nil
	}
	return Chart{}, fmt.Errorf("unknown dataset %q", name)
}
