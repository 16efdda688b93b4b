package svg

import (
	"fmt"
	"html/template"
	"strings"
)

// Lines renders a multi-series line chart with optional point markers. Every
// marker carries a tooltip naming the label, series and value.
func Lines(width, height int, series []Series, labels []string, opts LineOpts) (template.HTML, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("svg: series required")
	}
	if len(labels) == 0 {
		return "", fmt.Errorf("svg: labels required")
	}
	for _, s := range series {
		if len(s.Values) != len(labels) {
			return "", fmt.Errorf("svg: series %q length must match labels", s.Name)
		}
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
	strokeWidth := opts.StrokeWidth
	if strokeWidth <= 0 {
		strokeWidth = 2
	}
	dotRadius := opts.DotRadius
	if dotRadius <= 0 {
		dotRadius = 3
	}
	axisColor := fallback(opts.AxisColor, "#475569")
	gridColor := fallback(opts.GridColor, "#cbd5f5")

	f := frame{left: padding + 12, top: padding, width: float64(width) - 2*padding - 12, height: float64(height) - 2*padding - tickLabelSpace}
	if opts.YTitle != "" {
		f.left += axisTitleSpace
		f.width -= axisTitleSpace
	}
	if opts.XTitle != "" {
		f.height -= axisTitleSpace
	}
	showLegend := len(series) > 1
	if showLegend {
		f.top += legendRowSize
		f.height -= legendRowSize
	}
	if !f.valid() {
		return "", fmt.Errorf("svg: viewport too small")
	}

	maxVal := 0.0
	for _, s := range series {
		_, hi := bounds(s.Values)
		if hi > maxVal {
			maxVal = hi
		}
	}
	maxVal, step := niceScale(maxVal, opts.TickCount)

	xAt := func(i int) float64 {
		if len(labels) == 1 {
			return f.left + f.width/2
		}
		return f.left + float64(i)*f.width/float64(len(labels)-1)
	}
	yAt := func(v float64) float64 {
		if v < 0 {
			v = 0
		}
		return f.bottom() - v/maxVal*f.height
	}

	var b strings.Builder
	openSVG(&b, width, height, "line", fallback(opts.Title, "Line chart"), fallback(opts.Description, "Trend data"))

	valueGrid(&b, f, maxVal, step, axisColor, gridColor, "")
	axes(&b, f, axisColor)
	axisTitles(&b, f, width, height, opts.XTitle, opts.YTitle, axisColor)

	palette := []string{"#2563eb", "#0ea5e9", "#f97316", "#16a34a"}
	legend := make([]legendItem, 0, len(series))
	for si, s := range series {
		color := fallback(s.Color, palette[si%len(palette)])
		legend = append(legend, legendItem{label: s.Name, color: color})

		var path strings.Builder
		for i, v := range s.Values {
			if i == 0 {
				path.WriteString(fmt.Sprintf("M%.2f %.2f", xAt(i), yAt(v)))
			} else {
				path.WriteString(fmt.Sprintf(" L%.2f %.2f", xAt(i), yAt(v)))
			}
		}

		b.WriteString(fmt.Sprintf("<g class=\"series\" data-series=\"%s\">", esc(s.Name)))
		b.WriteString(fmt.Sprintf("<path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%.1f\" stroke-linejoin=\"round\" stroke-linecap=\"round\"></path>", path.String(), color, strokeWidth))
		if opts.ShowDots {
			for i, v := range s.Values {
				tip := fmt.Sprintf("%s %s: %s%s", labels[i], s.Name, formatValue(v), opts.ValueSuffix)
				b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.1f\" fill=\"%s\" data-label=\"%s\" data-value=\"%s\">%s</circle>", xAt(i), yAt(v), dotRadius, color, esc(labels[i]), formatValue(v), tooltip([]string{tip})))
			}
		}
		b.WriteString("</g>")
	}

	for i, label := range labels {
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"%d\" text-anchor=\"middle\">%s</text>", xAt(i), f.bottom()+14, axisColor, tickFontSize, esc(label)))
	}

	if showLegend {
		legendRow(&b, legend, f.left, padding+10, axisColor)
	}

	return closeSVG(&b), nil
}
