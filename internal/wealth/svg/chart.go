package svg

import (
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	tickFontSize   = 10
	titleFontSize  = 11
	legendRowSize  = 18.0
	axisTitleSpace = 18.0
	tickLabelSpace = 16.0
)

// frame is the plotting area inside the SVG viewport.
type frame struct {
	left, top, width, height float64
}

func (f frame) right() float64  { return f.left + f.width }
func (f frame) bottom() float64 { return f.top + f.height }

func (f frame) valid() bool {
	return f.width > 0 && f.height > 0
}

func openSVG(b *strings.Builder, width, height int, kind, title, desc string) {
	titleID := makeID(title, kind+"-title")
	descID := makeID(title, kind+"-desc")
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" class=\"chart chart-%s\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, kind, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, esc(title)))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, esc(desc)))
}

func closeSVG(b *strings.Builder) template.HTML {
	b.WriteString("</svg>")
	return template.HTML(b.String())
}

// valueGrid draws horizontal grid lines with tick labels from 0 to maxVal.
func valueGrid(b *strings.Builder, f frame, maxVal, step float64, axisColor, gridColor, suffix string) {
	n := int(math.Round(maxVal / step))
	for i := 0; i <= n; i++ {
		v := float64(i) * step
		y := f.bottom() - v/maxVal*f.height
		b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"2,4\" aria-hidden=\"true\"></line>", f.left, y, f.right(), y, gridColor))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"%d\" text-anchor=\"end\">%s</text>", f.left-6, y+4, axisColor, tickFontSize, esc(formatTick(v)+suffix)))
	}
}

func axes(b *strings.Builder, f frame, axisColor string) {
	b.WriteString(fmt.Sprintf("<g stroke=\"%s\" aria-hidden=\"true\">", axisColor))
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", f.left, f.top, f.left, f.bottom()))
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", f.left, f.bottom(), f.right(), f.bottom()))
	b.WriteString("</g>")
}

func axisTitles(b *strings.Builder, f frame, width, height int, xTitle, yTitle, color string) {
	if xTitle != "" {
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"%d\" text-anchor=\"middle\" class=\"axis-title\">%s</text>", f.left+f.width/2, float64(height)-6, color, titleFontSize, esc(xTitle)))
	}
	if yTitle != "" {
		x := 14.0
		y := f.top + f.height/2
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"%d\" text-anchor=\"middle\" transform=\"rotate(-90 %.2f %.2f)\" class=\"axis-title\">%s</text>", x, y, color, titleFontSize, x, y, esc(yTitle)))
	}
}

type legendItem struct {
	label string
	color string
}

// legendRow draws a horizontal legend starting at x, baseline y.
func legendRow(b *strings.Builder, items []legendItem, x, y float64, textColor string) {
	b.WriteString("<g class=\"legend\">")
	for _, item := range items {
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"10\" height=\"10\" fill=\"%s\"></rect>", x, y-9, item.color))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"%d\" text-anchor=\"start\">%s</text>", x+14, y, textColor, tickFontSize, esc(item.label)))
		x += 14 + textWidth(item.label, tickFontSize) + 16
	}
	b.WriteString("</g>")
}

// niceScale returns an axis maximum and tick step that cover maxVal with
// round numbers.
func niceScale(maxVal float64, ticks int) (float64, float64) {
	if ticks <= 0 {
		ticks = DefaultTicks
	}
	if maxVal <= 0 || almostEqual(maxVal, 0) {
		return 1, 1 / float64(ticks)
	}
	raw := maxVal / float64(ticks)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := 10 * mag
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if raw <= m*mag {
			step = m * mag
			break
		}
	}
	return math.Ceil(maxVal/step-1e-9) * step, step
}

func tooltip(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return "<title>" + esc(strings.Join(lines, "\n")) + "</title>"
}

func fallback(value, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return value
}

func esc(s string) string {
	return template.HTMLEscapeString(s)
}

func bounds(series []float64) (float64, float64) {
	minVal := series[0]
	maxVal := series[0]
	for _, v := range series[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// textWidth approximates rendered text width for layout.
func textWidth(s string, fontSize int) float64 {
	return float64(utf8.RuneCountInString(s)) * float64(fontSize) * 0.6
}

func makeID(base, suffix string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		if r == '-' || r == '_' {
			return r
		}
		return '-'
	}, strings.ToLower(strings.TrimSpace(base)))
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		cleaned = "chart"
	}
	return fmt.Sprintf("%s-%s", cleaned, suffix)
}

func formatTick(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", v/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fk", v/1_000)
	default:
		if almostEqual(v, math.Round(v)) {
			return fmt.Sprintf("%.0f", v)
		}
		return fmt.Sprintf("%.2f", v)
	}
}

// formatValue prints a data value the way the dashboard labels show it,
// with exactly one decimal.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
