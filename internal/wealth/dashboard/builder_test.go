package dashboard

import (
	"bytes"
	"errors"
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalwealth/wealthdash/internal/view"
	"github.com/globalwealth/wealthdash/internal/wealth"
	"github.com/globalwealth/wealthdash/internal/wealth/svg"
)

type failingBars struct{}

func (failingBars) Bars(width, height int, seriesA, seriesB []float64, labels []string, opts svg.BarOpts) (template.HTML, error) {
	return "", errors.New("bars exploded")
}

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	templates, err := view.NewEngine()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	return NewBuilder(templates, SVGCharts())
}

func TestBuildViewModel(t *testing.T) {
	vm, err := newTestBuilder(t).Build()
	require.NoError(t, err)

	assert.Equal(t, "Global Wealth Distribution Dashboard", vm.Header.Title)
	require.Len(t, vm.Metrics, 4)
	assert.Equal(t, "Total Global Wealth", vm.Metrics[0].Label)

	require.Len(t, vm.Rows, 2)
	require.Len(t, vm.Rows[0].Panels, 2)
	require.Len(t, vm.Rows[1].Panels, 2)
	assert.Equal(t, "pyramid", vm.Rows[0].Panels[0].ID)
	assert.Equal(t, "billionaires", vm.Rows[0].Panels[1].ID)
	assert.Equal(t, "trends", vm.Rows[1].Panels[0].ID)
	assert.Equal(t, "comparison", vm.Rows[1].Panels[1].ID)
	for _, row := range vm.Rows {
		for _, panel := range row.Panels {
			assert.True(t, strings.HasPrefix(string(panel.SVG), "<svg"), "panel %s should hold an svg", panel.ID)
		}
	}

	require.Len(t, vm.Tables, 3)
	assert.Equal(t, []string{"wealth", "billionaires", "historical"}, []string{vm.Tables[0].ID, vm.Tables[1].ID, vm.Tables[2].ID})
	assert.Equal(t, "2024", vm.Footer.LastUpdated)
}

func TestPyramidHasFourBandsInOrder(t *testing.T) {
	vm, err := newTestBuilder(t).Build()
	require.NoError(t, err)
	pyramid := string(vm.Rows[0].Panels[0].SVG)

	assert.Equal(t, 4, strings.Count(pyramid, `class="band"`))
	top := strings.Index(pyramid, `data-band="&gt;$1 million"`)
	bottom := strings.Index(pyramid, `data-band="&lt;$10k"`)
	require.NotEqual(t, -1, top)
	require.NotEqual(t, -1, bottom)
	assert.Less(t, top, bottom, "richest band renders first")
	assert.Contains(t, pyramid, "Adults: 60M (1.6%)")
	assert.Contains(t, pyramid, "Wealth: $226.47T (48.1%)")
}

func TestDonutAndTrendValues(t *testing.T) {
	vm, err := newTestBuilder(t).Build()
	require.NoError(t, err)

	donut := string(vm.Rows[0].Panels[1].SVG)
	assert.Contains(t, donut, `data-percent="77.7%"`)
	assert.Contains(t, donut, "Wealth: $2.35T")

	trend := string(vm.Rows[1].Panels[0].SVG)
	assert.Contains(t, trend, `data-label="2027" data-value="1.5"`)
	assert.Equal(t, 4, strings.Count(trend, `class="series"`))
	points := len(wealth.HistoricalYears()) * 4
	assert.Equal(t, points, strings.Count(trend, "<circle "))
	assert.Equal(t, points, strings.Count(trend, `r="4.0"`), "every trend marker has radius 4")
}

func TestRenderIsDeterministic(t *testing.T) {
	b := newTestBuilder(t)
	var first, second bytes.Buffer
	require.NoError(t, b.Render(&first))
	require.NoError(t, b.Render(&second))
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("expected byte-identical renders")
	}

	page := first.String()
	for _, want := range []string{
		"Interactive Analysis of Global Economic Inequality",
		"Detailed Data Tables",
		"Billionaire Breakdown",
		"<td>1.6%</td>",
		"<td>48.1%</td>",
		"Last Updated: 2024",
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected %q in page", want)
		}
	}
	assert.Equal(t, 1, strings.Count(page, " checked"), "only the first tab starts selected")
}

func TestBuildPropagatesRendererError(t *testing.T) {
	charts := SVGCharts()
	charts.Bars = failingBars{}
	templates, err := view.NewEngine()
	require.NoError(t, err)

	_, err = NewBuilder(templates, charts).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bars exploded")

	var buf bytes.Buffer
	assert.Error(t, NewBuilder(templates, charts).Render(&buf))
	assert.Zero(t, buf.Len())
}

func TestBuildRequiresRenderers(t *testing.T) {
	_, err := NewBuilder(nil, Charts{}).Build()
	assert.Error(t, err)
	assert.Error(t, NewBuilder(nil, SVGCharts()).Render(&bytes.Buffer{}))
}
