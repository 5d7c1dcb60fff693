package schema

// Dataset is one series inside a multi-series chart.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	BorderWidth     float64   `json:"borderWidth,omitempty"`
	Fill            bool      `json:"fill"`
	Tension         float64   `json:"tension,omitempty"`
}

// UniformColors repeats one color across n data points so a whole dataset
// renders in a single color.
func UniformColors(color string, n int) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = color
	}
	return colors
}

// ChartData is the chart-ready structure handed to the rendering
// collaborator. Single-series charts fill Data and BackgroundColor;
// multi-series charts fill Datasets instead.
type ChartData struct {
	Labels          []string  `json:"labels"`
	Data            []float64 `json:"data,omitempty"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
	Datasets        []Dataset `json:"datasets,omitempty"`
}

// IsEmpty reports whether the chart carries no labels at all.
func (c *ChartData) IsEmpty() bool {
	return len(c.Labels) == 0
}

// ValueAt returns the value for a label index, searching Data first and
// falling back to the first dataset.
func (c *ChartData) ValueAt(index int) float64 {
	if index < 0 {
		return 0
	}
	if index < len(c.Data) {
		return c.Data[index]
	}
	if len(c.Datasets) > 0 && index < len(c.Datasets[0].Data) {
		return c.Datasets[0].Data[index]
	}
	return 0
}

// ChartFilter is a semantic predicate derived from a clicked chart element.
// At most one filter exists per chart; filters across charts AND together.
type ChartFilter struct {
	ChartID      ChartID     `json:"chartId"`
	ChartType    string      `json:"chartType"`
	ElementType  ElementType `json:"elementType"`
	ElementLabel string      `json:"elementLabel"`
	ElementValue float64     `json:"elementValue"`
	FilterField  FilterField `json:"filterField"`
	FilterValue  string      `json:"filterValue"`
	Description  string      `json:"description"`
}

// ChartElementData is the resolved identity of a clicked chart element.
// It is ephemeral: overwritten on each interaction, reusable only as the
// fallback for the next right-click on the same chart.
type ChartElementData struct {
	Label        string      `json:"label"`
	Value        float64     `json:"value"`
	Index        int         `json:"index"`
	DatasetIndex int         `json:"datasetIndex"`
	ElementType  ElementType `json:"elementType"`
}

// Point is a pixel position relative to the chart canvas origin.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HitMode selects a hit-testing interaction mode on a chart handle.
type HitMode string

// All hit modes supported by chart handles.
const (
	HitIntersect HitMode = "intersect" // exact geometric containment
	HitNearest   HitMode = "nearest"
	HitIndex     HitMode = "index"
	HitDataset   HitMode = "dataset"
	HitPoint     HitMode = "point"
	HitXAligned  HitMode = "x"
)

// ProbeHitModes is the alternate-mode sequence the resolver walks after
// intersect and nearest both miss.
var ProbeHitModes = []HitMode{HitNearest, HitIndex, HitDataset, HitPoint, HitXAligned}

// HitElement is one element returned by a chart handle's hit test.
type HitElement struct {
	DatasetIndex int `json:"datasetIndex"`
	Index        int `json:"index"`
}

// ElementGeometry is the rendered geometry of one chart element. X/Y hold
// the element center (or point position); the angles are set for pie and
// doughnut slices, in radians.
type ElementGeometry struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	StartAngle float64 `json:"startAngle,omitempty"`
	EndAngle   float64 `json:"endAngle,omitempty"`
}

// ChartGeometry describes a rendered chart for manual geometry search.
type ChartGeometry struct {
	// Type is the renderer chart type: pie, doughnut, bar, or line
	Type string `json:"type"`

	// Center is the pie/doughnut rotation center
	Center Point `json:"center"`

	// Bottom is the chart-area bottom edge, the default bar baseline
	Bottom float64 `json:"bottom"`
}

// ElementTypeForChart maps a renderer chart type to the element variant
// its interactions produce.
func ElementTypeForChart(chartType string) ElementType {
	switch chartType {
	case "pie", "doughnut":
		return SliceElement
	case "bar":
		return BarElement
	case "line":
		return PointElement
	default:
		return GenericElement
	}
}
