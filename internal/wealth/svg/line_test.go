package svg

import (
	"strings"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLinesProducesSVG(t *testing.T) {
	html, err := Lines(560, 400, []Series{
		{Name: ">$1M", Values: []float64{0.4, 1.1, 1.5}, Color: "#1f4788"},
		{Name: "<$10k", Values: []float64{80.7, 52.5, 46.6}, Color: "#a8c8e8"},
	}, []string{"2000", "2022", "2027"}, LineOpts{
		Title:       "Historical Trends",
		Description: "Share of adults per band",
		XTitle:      "Year",
		YTitle:      "Percentage of Global Adults (%)",
		ValueSuffix: "%",
		ShowDots:    true,
		StrokeWidth: 3,
		DotRadius:   4,
	})
	if err != nil {
		t.Fatalf("lines renderer error: %v", err)
	}
	output := string(html)
	if !strings.HasPrefix(output, "<svg") {
		t.Fatalf("expected svg output, got %s", output)
	}
	if strings.Count(output, "<path") != 2 {
		t.Fatalf("expected one path per series")
	}
	if strings.Count(output, "<circle") != 6 {
		t.Fatalf("expected one marker per point")
	}
	if !strings.Contains(output, `data-series="&gt;$1M"`) {
		t.Fatalf("expected escaped series name")
	}
	if !strings.Contains(output, `data-label="2027" data-value="1.5"`) {
		t.Fatalf("expected 2027 marker with value 1.5: %s", output)
	}
	if !strings.Contains(output, "2027 &gt;$1M: 1.5%") {
		t.Fatalf("expected marker tooltip")
	}
	if !strings.Contains(output, "Percentage of Global Adults (%)") {
		t.Fatalf("expected y axis title")
	}
	if !strings.Contains(output, `class="legend"`) {
		t.Fatalf("expected legend for multiple series")
	}
}

func TestLinesRejectsMismatchedSeries(t *testing.T) {
	_, err := Lines(400, 200, []Series{{Name: "a", Values: []float64{1, 2}}}, []string{"x"}, LineOpts{})
	if err == nil {
		t.Fatalf("expected length mismatch error")
	}
	if _, err := Lines(400, 200, nil, []string{"x"}, LineOpts{}); err == nil {
		t.Fatalf("expected error for empty series")
	}
}

func TestLinesViewportTooSmall(t *testing.T) {
	_, err := Lines(40, 40, []Series{{Name: "a", Values: []float64{1}}}, []string{"x"}, LineOpts{})
	if err == nil {
		t.Fatalf("expected viewport error")
	}
}

func TestNiceScale(t *testing.T) {
	cases := []struct {
		in    float64
		max   float64
		step  float64
		ticks int
	}{
		{in: 80.7, max: 100, step: 20, ticks: 6},
		{in: 48.1, max: 50, step: 10, ticks: 6},
		{in: 55, max: 60, step: 10, ticks: 6},
		{in: 0, max: 1, step: 1.0 / 6, ticks: 6},
	}
	for _, tc := range cases {
		gotMax, gotStep := niceScale(tc.in, tc.ticks)
		if !almostEqual(gotMax, tc.max) || !almostEqual(gotStep, tc.step) {
			t.Fatalf("niceScale(%v) = %v, %v; want %v, %v", tc.in, gotMax, gotStep, tc.max, tc.step)
		}
	}
}
