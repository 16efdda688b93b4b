package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalwealth/wealthdash/internal/wealth"
)

func TestWealthTableRows(t *testing.T) {
	tab := WealthTable(wealth.WealthBands())
	require.Len(t, tab.Rows, 4)
	assert.Equal(t, []string{">$1 million", "60", "1.6%", "$226.47T", "48.1%"}, tab.Rows[0])
	assert.Equal(t, []string{"$10k – $100k", "1,570", "41.3%", "$56.82T", "12.1%"}, tab.Rows[2])
	assert.Len(t, tab.Columns, 5)
}

func TestBillionaireTableRows(t *testing.T) {
	tab := BillionaireTable(wealth.BillionaireBands())
	require.Len(t, tab.Rows, 3)
	assert.Equal(t, []string{"$1b – $50b", "2,860", "98.9%", "$12.17T", "77.7%"}, tab.Rows[2])
}

func TestHistoricalTableRows(t *testing.T) {
	tab := HistoricalTable(wealth.HistoricalYears())
	require.Len(t, tab.Rows, 3)
	assert.Equal(t, []string{"Year", ">$1M (%)", "$100k-$1M (%)", "$10k-$100k (%)", "<$10k (%)"}, tab.Columns)
	assert.Equal(t, []string{"2027", "1.5%", "14.8%", "37.0%", "46.6%"}, tab.Rows[2])
}

func TestToMetricCards(t *testing.T) {
	cards := ToMetricCards(wealth.HeadlineMetrics())
	require.Len(t, cards, 4)
	assert.Equal(t, MetricCard{Label: "Billionaires", Value: "2,891", Delta: "+145"}, cards[3])
}
