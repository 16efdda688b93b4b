package wealth

import "sort"

// Trend series names, shared by the line chart and the historical table.
const (
	SeriesMoreThan1M    = ">$1M"
	SeriesFrom100kTo1M  = "$100k-$1M"
	SeriesFrom10kTo100k = "$10k-$100k"
	SeriesLessThan10k   = "<$10k"
)

var wealthBands = [...]WealthBand{
	{Band: ">$1 million", AdultsMillions: 60, PercentAdults: 1.6, WealthTrillions: 226.47, PercentWealth: 48.1, Order: 1},
	{Band: "$100k – $1 million", AdultsMillions: 628, PercentAdults: 16.4, WealthTrillions: 184.51, PercentWealth: 39.2, Order: 2},
	{Band: "$10k – $100k", AdultsMillions: 1570, PercentAdults: 41.3, WealthTrillions: 56.82, PercentWealth: 12.1, Order: 3},
	{Band: "<$10k", AdultsMillions: 1550, PercentAdults: 40.7, WealthTrillions: 2.71, PercentWealth: 0.6, Order: 4},
}

var historicalYears = [...]HistoricalYear{
	{Year: 2000, MoreThan1M: 0.4, From100kTo1M: 5.5, From10kTo100k: 13.4, LessThan10k: 80.7},
	{Year: 2022, MoreThan1M: 1.1, From100kTo1M: 12.0, From10kTo100k: 34.4, LessThan10k: 52.5},
	{Year: 2027, Projection: true, MoreThan1M: 1.5, From100kTo1M: 14.8, From10kTo100k: 37.0, LessThan10k: 46.6},
}

var billionaireBands = [...]BillionaireBand{
	{Band: ">$100 billion", Individuals: 15, PercentBillionaires: 0.5, WealthTrillions: 2.35, PercentBillionaireWealth: 15.0},
	{Band: "$50b – $100b", Individuals: 16, PercentBillionaires: 0.6, WealthTrillions: 1.15, PercentBillionaireWealth: 7.3},
	{Band: "$1b – $50b", Individuals: 2860, PercentBillionaires: 98.9, WealthTrillions: 12.17, PercentBillionaireWealth: 77.7},
}

var headlineMetrics = [...]HeadlineMetric{
	{Label: "Total Global Wealth", Value: "$471T", Delta: "+3.2%"},
	{Label: "Global Adult Population", Value: "3.81B", Delta: "+1.8%"},
	{Label: "Wealthiest 1.6% Hold", Value: "48.1%", Delta: "+2.1%"},
	{Label: "Billionaires", Value: "2,891", Delta: "+145"},
}

var source = SourceInfo{
	Name:        "Visual Capitalist | Based on Credit Suisse/UBS Global Wealth Reports",
	LastUpdated: "2024",
}

// WealthBands returns the global wealth bands in pyramid order, top band first.
func WealthBands() []WealthBand {
	bands := make([]WealthBand, len(wealthBands))
	copy(bands, wealthBands[:])
	sort.SliceStable(bands, func(i, j int) bool { return bands[i].Order < bands[j].Order })
	return bands
}

// HistoricalYears returns the yearly band shares, oldest first.
func HistoricalYears() []HistoricalYear {
	years := make([]HistoricalYear, len(historicalYears))
	copy(years, historicalYears[:])
	return years
}

// BillionaireBands returns the billionaire bands, richest band first.
func BillionaireBands() []BillionaireBand {
	bands := make([]BillionaireBand, len(billionaireBands))
	copy(bands, billionaireBands[:])
	return bands
}

// HeadlineMetrics returns the metric cards in display order.
func HeadlineMetrics() []HeadlineMetric {
	metrics := make([]HeadlineMetric, len(headlineMetrics))
	copy(metrics, headlineMetrics[:])
	return metrics
}

// Source returns the data attribution shown in the footer.
func Source() SourceInfo {
	return source
}

// All returns every table in one value.
func All() Dataset {
	return Dataset{
		WealthBands:      WealthBands(),
		Historical:       HistoricalYears(),
		BillionaireBands: BillionaireBands(),
		Metrics:          HeadlineMetrics(),
		Source:           Source(),
	}
}

// TrendSeries pivots the historical table into one series per wealth band,
// richest band first. Values line up with HistoricalYears.
func TrendSeries() []Trend {
	years := HistoricalYears()
	series := []Trend{
		{Name: SeriesMoreThan1M, Values: make([]float64, 0, len(years))},
		{Name: SeriesFrom100kTo1M, Values: make([]float64, 0, len(years))},
		{Name: SeriesFrom10kTo100k, Values: make([]float64, 0, len(years))},
		{Name: SeriesLessThan10k, Values: make([]float64, 0, len(years))},
	}
	for _, y := range years {
		series[0].Values = append(series[0].Values, y.MoreThan1M)
		series[1].Values = append(series[1].Values, y.From100kTo1M)
		series[2].Values = append(series[2].Values, y.From10kTo100k)
		series[3].Values = append(series[3].Values, y.LessThan10k)
	}
	return series
}

// Shares returns the year's band percentages in TrendSeries order.
func (h HistoricalYear) Shares() []float64 {
	return []float64{h.MoreThan1M, h.From100kTo1M, h.From10kTo100k, h.LessThan10k}
}
