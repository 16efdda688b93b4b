package svg

import "html/template"

// Renderer satisfies the dashboard renderer contracts with the package-level
// chart functions.
type Renderer struct{}

// Pyramid renders a horizontal band pyramid.
func (Renderer) Pyramid(width, height int, bands []PyramidBand, opts PyramidOpts) (template.HTML, error) {
	return Pyramid(width, height, bands, opts)
}

// Donut renders a donut chart.
func (Renderer) Donut(width, height int, slices []Slice, opts DonutOpts) (template.HTML, error) {
	return Donut(width, height, slices, opts)
}

// Lines renders a multi-series line chart.
func (Renderer) Lines(width, height int, series []Series, labels []string, opts LineOpts) (template.HTML, error) {
	return Lines(width, height, series, labels, opts)
}

// Bars renders a grouped bar chart.
func (Renderer) Bars(width, height int, seriesA, seriesB []float64, labels []string, opts BarOpts) (template.HTML, error) {
	return Bars(width, height, seriesA, seriesB, labels, opts)
}
