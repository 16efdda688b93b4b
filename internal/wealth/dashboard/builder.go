package dashboard

import (
	"fmt"
	"html/template"
	"io"

	"github.com/globalwealth/wealthdash/internal/view"
	"github.com/globalwealth/wealthdash/internal/wealth"
	"github.com/globalwealth/wealthdash/internal/wealth/svg"
	"github.com/globalwealth/wealthdash/internal/wealth/ui"
)

// Template is the page rendered by Render.
const Template = "pages/dashboard.html"

const (
	pageTitle    = "Global Wealth Distribution Dashboard"
	pageSubtitle = "Interactive Analysis of Global Economic Inequality"
	pyramidMaxX  = 55

	trendStroke    = 3
	trendDotRadius = 4
)

var (
	pyramidColors = []string{"#1f4788", "#2e5c9a", "#4a7db8", "#6ba3d6"}
	donutColors   = []string{"#1f4788", "#4a7db8", "#6ba3d6"}
	trendColors   = []string{"#1f4788", "#4a7db8", "#6ba3d6", "#a8c8e8"}
)

// Charts bundles the chart renderers used by the builder.
type Charts struct {
	Pyramid ui.PyramidRenderer
	Donut   ui.DonutRenderer
	Lines   ui.LinesRenderer
	Bars    ui.BarRenderer
}

// SVGCharts returns the inline SVG chart renderers.
func SVGCharts() Charts {
	r := svg.Renderer{}
	return Charts{Pyramid: r, Donut: r, Lines: r, Bars: r}
}

// Builder turns the dataset into the dashboard view model and page.
type Builder struct {
	templates *view.Engine
	charts    Charts
}

// NewBuilder constructs a Builder.
func NewBuilder(templates *view.Engine, charts Charts) *Builder {
	return &Builder{templates: templates, charts: charts}
}

// Build assembles the view model: metric cards, two chart rows, the data
// tables and the footer.
func (b *Builder) Build() (ui.DashboardViewModel, error) {
	c := b.charts
	if c.Pyramid == nil || c.Donut == nil || c.Lines == nil || c.Bars == nil {
		return ui.DashboardViewModel{}, fmt.Errorf("dashboard: svg renderer missing")
	}
	bands := wealth.WealthBands()
	billionaires := wealth.BillionaireBands()
	years := wealth.HistoricalYears()
	src := wealth.Source()

	pyramid, err := b.pyramid(bands)
	if err != nil {
		return ui.DashboardViewModel{}, fmt.Errorf("dashboard: pyramid: %w", err)
	}
	donut, err := b.donut(billionaires)
	if err != nil {
		return ui.DashboardViewModel{}, fmt.Errorf("dashboard: donut: %w", err)
	}
	trend, err := b.trend(years)
	if err != nil {
		return ui.DashboardViewModel{}, fmt.Errorf("dashboard: trend: %w", err)
	}
	comparison, err := b.comparison(bands)
	if err != nil {
		return ui.DashboardViewModel{}, fmt.Errorf("dashboard: comparison: %w", err)
	}

	return ui.DashboardViewModel{
		Header:  ui.Header{Title: pageTitle, Subtitle: pageSubtitle},
		Metrics: ui.ToMetricCards(wealth.HeadlineMetrics()),
		Rows: []ui.ChartRow{
			{Panels: []ui.ChartPanel{
				{ID: "pyramid", Icon: "📊", Title: "Wealth Distribution Pyramid", SVG: pyramid},
				{ID: "billionaires", Icon: "💎", Title: "Billionaire Wealth Distribution", SVG: donut},
			}},
			{Panels: []ui.ChartPanel{
				{ID: "trends", Icon: "📈", Title: "Historical Trends (2000-2027)", SVG: trend},
				{ID: "comparison", Icon: "📊", Title: "Population vs Wealth Comparison", SVG: comparison},
			}},
		},
		Tables: []ui.TableTab{
			ui.WealthTable(bands),
			ui.BillionaireTable(billionaires),
			ui.HistoricalTable(years),
		},
		Footer: ui.Footer{Title: pageTitle, Source: src.Name, LastUpdated: src.LastUpdated},
	}, nil
}

// Render builds the view model and writes the full page to w. The output
// depends only on the dataset, so repeated renders are byte-identical.
func (b *Builder) Render(w io.Writer) error {
	if b.templates == nil {
		return fmt.Errorf("dashboard: template engine missing")
	}
	vm, err := b.Build()
	if err != nil {
		return err
	}
	return b.templates.Execute(w, Template, view.TemplateData{
		Title:       pageTitle,
		CurrentPath: "/",
		Data:        vm,
	})
}

func (b *Builder) pyramid(bands []wealth.WealthBand) (template.HTML, error) {
	items := make([]svg.PyramidBand, 0, len(bands))
	for i, band := range bands {
		items = append(items, svg.PyramidBand{
			Label: band.Band,
			Value: band.PercentWealth,
			Color: pyramidColors[i%len(pyramidColors)],
			Tooltip: []string{
				fmt.Sprintf("Adults: %s (%s)", ui.Millions(band.AdultsMillions), ui.Percent(band.PercentAdults)),
				fmt.Sprintf("Wealth: %s (%s)", ui.Trillions(band.WealthTrillions), ui.Percent(band.PercentWealth)),
			},
		})
	}
	return b.charts.Pyramid.Pyramid(svg.PanelWidth, svg.PanelHeight, items, svg.PyramidOpts{
		Title:       "Wealth Distribution Pyramid",
		Description: "Share of global wealth held by each wealth band",
		XTitle:      "Percentage of Global Wealth (%)",
		YTitle:      "Wealth Band",
		ValueSuffix: "%",
		MaxX:        pyramidMaxX,
	})
}

func (b *Builder) donut(bands []wealth.BillionaireBand) (template.HTML, error) {
	slices := make([]svg.Slice, 0, len(bands))
	for i, band := range bands {
		slices = append(slices, svg.Slice{
			Label:   band.Band,
			Value:   band.WealthTrillions,
			Color:   donutColors[i%len(donutColors)],
			Tooltip: []string{"Wealth: " + ui.Trillions(band.WealthTrillions)},
		})
	}
	return b.charts.Donut.Donut(svg.PanelWidth, svg.PanelHeight, slices, svg.DonutOpts{
		Title:       "Billionaire Wealth Distribution",
		Description: "Share of billionaire wealth by band",
		Hole:        svg.DefaultHole,
		ShowLegend:  true,
	})
}

func (b *Builder) trend(years []wealth.HistoricalYear) (template.HTML, error) {
	labels := make([]string, 0, len(years))
	for _, y := range years {
		labels = append(labels, ui.Year(y.Year))
	}
	trend := wealth.TrendSeries()
	series := make([]svg.Series, 0, len(trend))
	for i, s := range trend {
		series = append(series, svg.Series{Name: s.Name, Values: s.Values, Color: trendColors[i%len(trendColors)]})
	}
	return b.charts.Lines.Lines(svg.PanelWidth, svg.PanelHeight, series, labels, svg.LineOpts{
		Title:       "Historical Trends (2000-2027)",
		Description: "Share of global adults per wealth band over time",
		XTitle:      "Year",
		YTitle:      "Percentage of Global Adults (%)",
		ValueSuffix: "%",
		StrokeWidth: trendStroke,
		DotRadius:   trendDotRadius,
		ShowDots:    true,
	})
}

func (b *Builder) comparison(bands []wealth.WealthBand) (template.HTML, error) {
	labels := make([]string, 0, len(bands))
	adults := make([]float64, 0, len(bands))
	shares := make([]float64, 0, len(bands))
	for _, band := range bands {
		labels = append(labels, band.Band)
		adults = append(adults, band.PercentAdults)
		shares = append(shares, band.PercentWealth)
	}
	return b.charts.Bars.Bars(svg.PanelWidth, svg.PanelHeight, adults, shares, labels, svg.BarOpts{
		Title:        "Population vs Wealth Comparison",
		Description:  "Share of adults against share of wealth per band",
		SeriesALabel: "% of Adults",
		SeriesBLabel: "% of Wealth",
		ColorA:       "#4a7db8",
		ColorB:       "#1f4788",
		XTitle:       "Wealth Band",
		YTitle:       "Percentage (%)",
		ValueSuffix:  "%",
		ShowValues:   true,
		LabelAngle:   -45,
	})
}
