package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// insideLabelMin is the narrowest bar that still fits its value label inside.
const insideLabelMin = 36.0

// Pyramid renders horizontal bars stacked top to bottom in input order, sharing
// one value axis that runs from 0 to MaxX.
func Pyramid(width, height int, bands []PyramidBand, opts PyramidOpts) (template.HTML, error) {
	if len(bands) == 0 {
		return "", fmt.Errorf("svg: bands required")
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
	labelWidth := opts.LabelWidth
	if labelWidth <= 0 {
		for _, band := range bands {
			if w := textWidth(band.Label, tickFontSize) + 8; w > labelWidth {
				labelWidth = w
			}
		}
	}
	axisColor := fallback(opts.AxisColor, "#475569")
	gridColor := fallback(opts.GridColor, "#cbd5f5")
	palette := []string{"#1f4788", "#2e5c9a", "#4a7db8", "#6ba3d6"}

	maxX := opts.MaxX
	if maxX <= 0 {
		for _, band := range bands {
			maxX = math.Max(maxX, band.Value)
		}
		maxX, _ = niceScale(maxX, opts.TickCount)
	}
	_, step := niceScale(maxX, opts.TickCount)

	f := frame{left: padding + labelWidth, top: padding, width: float64(width) - 2*padding - labelWidth, height: float64(height) - 2*padding - tickLabelSpace}
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
	scale := f.width / maxX

	var b strings.Builder
	openSVG(&b, width, height, "pyramid", fallback(opts.Title, "Pyramid chart"), fallback(opts.Description, "Share per band"))

	n := int(math.Floor(maxX/step + 1e-9))
	for i := 0; i <= n; i++ {
		v := float64(i) * step
		x := f.left + v*scale
		b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"2,4\" aria-hidden=\"true\"></line>", x, f.top, x, f.bottom(), gridColor))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"%d\" text-anchor=\"middle\">%s</text>", x, f.bottom()+14, axisColor, tickFontSize, esc(formatTick(v))))
	}
	axes(&b, f, axisColor)
	axisTitles(&b, f, width, height, opts.XTitle, opts.YTitle, axisColor)

	rowHeight := f.height / float64(len(bands))
	barHeight := rowHeight * 0.8
	for i, band := range bands {
		color := fallback(band.Color, palette[i%len(palette)])
		value := math.Min(math.Max(band.Value, 0), maxX)
		w := value * scale
		y := f.top + float64(i)*rowHeight + (rowHeight-barHeight)/2
		center := y + barHeight/2
		text := formatValue(band.Value) + opts.ValueSuffix

		b.WriteString(fmt.Sprintf("<g class=\"band\" data-band=\"%s\" data-value=\"%s\">", esc(band.Label), formatValue(band.Value)))
		tip := append([]string{band.Label}, band.Tooltip...)
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\">%s</rect>", f.left, y, w, barHeight, color, tooltip(tip)))
		if w >= insideLabelMin {
			b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"#ffffff\" font-size=\"%d\" text-anchor=\"end\" class=\"bar-value\">%s</text>", f.left+w-6, center+4, titleFontSize, esc(text)))
		} else {
			b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"%d\" text-anchor=\"start\" class=\"bar-value\">%s</text>", f.left+w+4, center+4, axisColor, titleFontSize, esc(text)))
		}
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"%d\" text-anchor=\"end\">%s</text>", f.left-6, center+4, axisColor, tickFontSize, esc(band.Label)))
		b.WriteString("</g>")
	}

	return closeSVG(&b), nil
}
