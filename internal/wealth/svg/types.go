package svg

// Series is one named line of a multi-series chart.
type Series struct {
	Name   string
	Values []float64
	Color  string
}

// LineOpts customises the line chart renderer.
type LineOpts struct {
	Title       string
	Description string
	AxisColor   string
	GridColor   string
	XTitle      string
	YTitle      string
	ValueSuffix string
	Padding     float64
	StrokeWidth float64
	DotRadius   float64
	ShowDots    bool
	TickCount   int
}

// BarOpts customises the grouped bar chart renderer.
type BarOpts struct {
	Title        string
	Description  string
	SeriesALabel string
	SeriesBLabel string
	ColorA       string
	ColorB       string
	AxisColor    string
	GridColor    string
	XTitle       string
	YTitle       string
	ValueSuffix  string
	ShowValues   bool
	LabelAngle   float64
	Padding      float64
	TickCount    int
}

// PyramidBand is one horizontal bar of the pyramid chart.
type PyramidBand struct {
	Label   string
	Value   float64
	Color   string
	Tooltip []string
}

// PyramidOpts customises the pyramid renderer.
type PyramidOpts struct {
	Title       string
	Description string
	AxisColor   string
	GridColor   string
	XTitle      string
	YTitle      string
	ValueSuffix string
	MaxX        float64
	LabelWidth  float64
	Padding     float64
	TickCount   int
}

// Slice is one segment of a donut chart.
type Slice struct {
	Label   string
	Value   float64
	Color   string
	Tooltip []string
}

// DonutOpts customises the donut renderer.
type DonutOpts struct {
	Title       string
	Description string
	TextColor   string
	Hole        float64
	LegendWidth float64
	Padding     float64
	ShowLegend  bool
}

// Defaults for the dashboard charts.
const (
	DefaultWidth   = 720
	DefaultHeight  = 240
	DefaultPadding = 24.0
	DefaultTicks   = 6
	DefaultHole    = 0.4

	// PanelWidth and PanelHeight size the charts of a two-column dashboard row.
	PanelWidth  = 560
	PanelHeight = 400
)
