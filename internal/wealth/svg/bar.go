package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Bars renders a grouped bar chart comparing two series.
func Bars(width, height int, seriesA, seriesB []float64, labels []string, opts BarOpts) (template.HTML, error) {
	if len(seriesA) == 0 && len(seriesB) == 0 {
		return "", fmt.Errorf("svg: at least one series required")
	}
	if len(labels) == 0 {
		return "", fmt.Errorf("svg: labels required")
	}
	if len(seriesA) > 0 && len(seriesA) != len(labels) {
		return "", fmt.Errorf("svg: seriesA length must match labels")
	}
	if len(seriesB) > 0 && len(seriesB) != len(labels) {
		return "", fmt.Errorf("svg: seriesB length must match labels")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}

	axisColor := fallback(opts.AxisColor, "#475569")
	gridColor := fallback(opts.GridColor, "#cbd5f5")
	colorA := fallback(opts.ColorA, "#0ea5e9")
	colorB := fallback(opts.ColorB, "#f97316")
	labelA := fallback(opts.SeriesALabel, "Series A")
	labelB := fallback(opts.SeriesBLabel, "Series B")

	// Rotated category labels need room below the axis.
	labelSpace := tickLabelSpace
	angle := opts.LabelAngle * math.Pi / 180
	if !almostEqual(angle, 0) {
		longest := 0.0
		for _, label := range labels {
			if w := textWidth(label, tickFontSize); w > longest {
				longest = w
			}
		}
		labelSpace = longest*math.Abs(math.Sin(angle)) + tickLabelSpace
	}

	f := frame{left: padding + 12, top: padding + legendRowSize, width: float64(width) - 2*padding - 12, height: float64(height) - 2*padding - legendRowSize - labelSpace}
	if opts.YTitle != "" {
		f.left += axisTitleSpace
		f.width -= axisTitleSpace
	}
	if opts.XTitle != "" {
		f.height -= axisTitleSpace
	}
	if !f.valid() {
		return "", fmt.Errorf("svg: viewport too small")
	}

	maxVal := barMax(seriesA, seriesB)
	if opts.ShowValues {
		// headroom for the value labels drawn above the bars
		maxVal *= 1.08
	}
	maxVal, step := niceScale(maxVal, opts.TickCount)
	scale := f.height / maxVal

	groupWidth := f.width / float64(len(labels))
	barWidth := groupWidth / 3

	var b strings.Builder
	openSVG(&b, width, height, "bar", fallback(opts.Title, "Bar chart"), fallback(opts.Description, "Grouped bar comparison"))

	valueGrid(&b, f, maxVal, step, axisColor, gridColor, "")
	axes(&b, f, axisColor)
	axisTitles(&b, f, width, height, opts.XTitle, opts.YTitle, axisColor)

	writeBar := func(x, value float64, color, series, label string) {
		h := math.Max(value, 0) * scale
		if h > f.height {
			h = f.height
		}
		y := f.bottom() - h
		text := formatValue(value) + opts.ValueSuffix
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" aria-label=\"%s %s\" data-series=\"%s\" data-label=\"%s\" data-value=\"%s\">%s</rect>",
			x, y, barWidth, h, color, esc(series), esc(label), esc(series), esc(label), formatValue(value), tooltip([]string{label, series + ": " + text})))
		if opts.ShowValues {
			b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"%d\" text-anchor=\"middle\" class=\"bar-value\">%s</text>", x+barWidth/2, y-4, axisColor, tickFontSize, esc(text)))
		}
	}

	for i, label := range labels {
		baseX := f.left + float64(i)*groupWidth
		if len(seriesA) > 0 {
			writeBar(baseX+barWidth*0.4, seriesA[i], colorA, labelA, label)
		}
		if len(seriesB) > 0 {
			writeBar(baseX+barWidth*1.6, seriesB[i], colorB, labelB, label)
		}
		center := baseX + groupWidth/2
		y := f.bottom() + 14
		if almostEqual(angle, 0) {
			b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"%d\" text-anchor=\"middle\">%s</text>", center, y, axisColor, tickFontSize, esc(label)))
			continue
		}
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"%d\" text-anchor=\"end\" transform=\"rotate(%.0f %.2f %.2f)\">%s</text>", center, y, axisColor, tickFontSize, opts.LabelAngle, center, y, esc(label)))
	}

	items := make([]legendItem, 0, 2)
	if len(seriesA) > 0 {
		items = append(items, legendItem{label: labelA, color: colorA})
	}
	if len(seriesB) > 0 {
		items = append(items, legendItem{label: labelB, color: colorB})
	}
	legendRow(&b, items, f.left, padding+10, axisColor)

	return closeSVG(&b), nil
}

func barMax(a, b []float64) float64 {
	maxVal := 0.0
	if len(a) > 0 {
		_, maxVal = bounds(a)
	}
	if len(b) > 0 {
		if _, maxB := bounds(b); maxB > maxVal {
			maxVal = maxB
		}
	}
	if maxVal < 0 {
		maxVal = 0
	}
	return maxVal
}
