package wealth

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWealthBandsPyramidOrder(t *testing.T) {
	bands := WealthBands()
	got := make([]string, 0, len(bands))
	for _, b := range bands {
		got = append(got, b.Band)
	}
	want := []string{">$1 million", "$100k – $1 million", "$10k – $100k", "<$10k"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("band order mismatch (-want +got):\n%s", diff)
	}
}

func TestTopBandLiterals(t *testing.T) {
	top := WealthBands()[0]
	assert.Equal(t, 1.6, top.PercentAdults)
	assert.Equal(t, 48.1, top.PercentWealth)
	assert.Equal(t, 226.47, top.WealthTrillions)
}

func TestPercentColumnsSumToHundred(t *testing.T) {
	bands := WealthBands()
	assert.InDelta(t, 100.0, SumPercentAdults(bands), 0.1)
	assert.InDelta(t, 100.0, SumPercentWealth(bands), 0.1)

	billionaires := BillionaireBands()
	assert.InDelta(t, 100.0, SumPercentBillionaires(billionaires), 0.1)
	assert.InDelta(t, 100.0, SumPercentBillionaireWealth(billionaires), 0.1)
}

func TestAccessorsReturnCopies(t *testing.T) {
	bands := WealthBands()
	bands[0].PercentWealth = 0
	assert.Equal(t, 48.1, WealthBands()[0].PercentWealth)

	years := HistoricalYears()
	years[2].MoreThan1M = 99
	assert.Equal(t, 1.5, HistoricalYears()[2].MoreThan1M)
}

func TestTrendSeriesPivot(t *testing.T) {
	series := TrendSeries()
	require.Len(t, series, 4)
	assert.Equal(t, SeriesMoreThan1M, series[0].Name)
	assert.Equal(t, []float64{0.4, 1.1, 1.5}, series[0].Values)
	assert.Equal(t, []float64{80.7, 52.5, 46.6}, series[3].Values)

	years := HistoricalYears()
	require.Len(t, years, 3)
	assert.Equal(t, 2027, years[2].Year)
	assert.True(t, years[2].Projection)
}

func TestValidateDataset(t *testing.T) {
	require.NoError(t, Validate(All(), DefaultTolerance))
}

func TestValidateReportsProblems(t *testing.T) {
	d := All()
	d.WealthBands[0].PercentWealth = 148.1
	d.BillionaireBands[1].Band = ""

	err := Validate(d, DefaultTolerance)
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Error(), "wealth_bands[0].PercentWealth failed lte")
	assert.Contains(t, vErr.Error(), "billionaire_bands[1].Band failed required")
	assert.Contains(t, vErr.Error(), "wealth_bands.percent_wealth sums to 200.000")
}

func TestColumnSumsHistoricalProjection(t *testing.T) {
	sums := ColumnSums(All(), DefaultTolerance)
	var found bool
	for _, s := range sums {
		if s.Table == "historical" && s.Column == "2027" {
			found = true
			assert.InDelta(t, 99.9, s.Sum, 1e-9)
			assert.True(t, s.OK)
		}
	}
	assert.True(t, found, "expected a 2027 column sum")
}
