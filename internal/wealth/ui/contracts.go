package ui

import (
	"html/template"

	"github.com/globalwealth/wealthdash/internal/wealth"
	"github.com/globalwealth/wealthdash/internal/wealth/svg"
)

// Header is the page title block.
type Header struct {
	Title    string
	Subtitle string
}

// MetricCard is one headline metric.
type MetricCard struct {
	Label string
	Value string
	Delta string
}

// ChartPanel is a titled chart slot in a dashboard row.
type ChartPanel struct {
	ID    string
	Title string
	Icon  string
	SVG   template.HTML
}

// ChartRow groups the charts rendered side by side.
type ChartRow struct {
	Panels []ChartPanel
}

// TableTab is one tab of the data table section.
type TableTab struct {
	ID      string
	Label   string
	Caption string
	Columns []string
	Rows    [][]string
}

// Footer carries the attribution block.
type Footer struct {
	Title       string
	Source      string
	LastUpdated string
}

// DashboardViewModel combines all dashboard data for rendering.
type DashboardViewModel struct {
	Header  Header
	Metrics []MetricCard
	Rows    []ChartRow
	Tables  []TableTab
	Footer  Footer
}

// PyramidRenderer abstracts SVG pyramid rendering for the dashboard.
type PyramidRenderer interface {
	Pyramid(width, height int, bands []svg.PyramidBand, opts svg.PyramidOpts) (template.HTML, error)
}

// DonutRenderer abstracts SVG donut rendering for the dashboard.
type DonutRenderer interface {
	Donut(width, height int, slices []svg.Slice, opts svg.DonutOpts) (template.HTML, error)
}

// LinesRenderer abstracts SVG multi-series line rendering for the dashboard.
type LinesRenderer interface {
	Lines(width, height int, series []svg.Series, labels []string, opts svg.LineOpts) (template.HTML, error)
}

// BarRenderer abstracts SVG bar chart rendering for the dashboard.
type BarRenderer interface {
	Bars(width, height int, seriesA, seriesB []float64, labels []string, opts svg.BarOpts) (template.HTML, error)
}

// ToMetricCards converts headline metrics into cards.
func ToMetricCards(metrics []wealth.HeadlineMetric) []MetricCard {
	cards := make([]MetricCard, 0, len(metrics))
	for _, m := range metrics {
		cards = append(cards, MetricCard{Label: m.Label, Value: m.Value, Delta: m.Delta})
	}
	return cards
}

// WealthTable builds the global wealth distribution tab.
func WealthTable(bands []wealth.WealthBand) TableTab {
	tab := TableTab{
		ID:      "wealth",
		Label:   "Global Wealth Distribution",
		Caption: "Global Wealth Distribution by Band",
		Columns: []string{"Wealth Band (USD)", "Adults (Millions)", "% of Adults", "Total Wealth (Trillions USD)", "% of Wealth"},
	}
	for _, b := range bands {
		tab.Rows = append(tab.Rows, []string{b.Band, Count(b.AdultsMillions), Percent(b.PercentAdults), Trillions(b.WealthTrillions), Percent(b.PercentWealth)})
	}
	return tab
}

// BillionaireTable builds the billionaire breakdown tab.
func BillionaireTable(bands []wealth.BillionaireBand) TableTab {
	tab := TableTab{
		ID:      "billionaires",
		Label:   "Billionaire Breakdown",
		Caption: "Billionaire Wealth Distribution",
		Columns: []string{"Wealth Band", "Number of Individuals", "% of Billionaires", "Total Wealth (Trillions USD)", "% of Billionaire Wealth"},
	}
	for _, b := range bands {
		tab.Rows = append(tab.Rows, []string{b.Band, Count(float64(b.Individuals)), Percent(b.PercentBillionaires), Trillions(b.WealthTrillions), Percent(b.PercentBillionaireWealth)})
	}
	return tab
}

// HistoricalTable builds the historical trends tab.
func HistoricalTable(years []wealth.HistoricalYear) TableTab {
	tab := TableTab{
		ID:      "historical",
		Label:   "Historical Trends",
		Caption: "Historical Wealth Distribution Trends",
		Columns: []string{"Year", wealth.SeriesMoreThan1M + " (%)", wealth.SeriesFrom100kTo1M + " (%)", wealth.SeriesFrom10kTo100k + " (%)", wealth.SeriesLessThan10k + " (%)"},
	}
	for _, y := range years {
		row := []string{Year(y.Year)}
		for _, v := range y.Shares() {
			row = append(row, Percent(v))
		}
		tab.Rows = append(tab.Rows, row)
	}
	return tab
}
