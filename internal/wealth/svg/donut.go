package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Donut renders a pie chart with a central hole. Slices run clockwise from
// twelve o'clock in input order and are labelled with their share of the total.
func Donut(width, height int, slices []Slice, opts DonutOpts) (template.HTML, error) {
	if len(slices) == 0 {
		return "", fmt.Errorf("svg: slices required")
	}
	total := 0.0
	for _, s := range slices {
		if s.Value < 0 {
			return "", fmt.Errorf("svg: slice %q has negative value", s.Label)
		}
		total += s.Value
	}
	if almostEqual(total, 0) {
		return "", fmt.Errorf("svg: slices sum to zero")
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
	hole := opts.Hole
	if hole <= 0 || hole >= 1 {
		hole = DefaultHole
	}
	textColor := fallback(opts.TextColor, "#475569")
	palette := []string{"#1f4788", "#4a7db8", "#6ba3d6", "#a8c8e8"}

	legendWidth := 0.0
	if opts.ShowLegend {
		legendWidth = opts.LegendWidth
		if legendWidth <= 0 {
			for _, s := range slices {
				if w := textWidth(s.Label, tickFontSize) + 24; w > legendWidth {
					legendWidth = w
				}
			}
		}
	}

	f := frame{left: padding, top: padding, width: float64(width) - 2*padding - legendWidth, height: float64(height) - 2*padding}
	if !f.valid() {
		return "", fmt.Errorf("svg: viewport too small")
	}
	cx := f.left + f.width/2
	cy := f.top + f.height/2
	outer := math.Min(f.width, f.height) / 2
	inner := outer * hole

	var b strings.Builder
	openSVG(&b, width, height, "donut", fallback(opts.Title, "Donut chart"), fallback(opts.Description, "Share of total"))

	start := 0.0
	for i, s := range slices {
		color := fallback(s.Color, palette[i%len(palette)])
		share := s.Value / total
		sweep := share * 2 * math.Pi
		end := start + sweep
		percent := formatValue(share*100) + "%"

		b.WriteString(fmt.Sprintf("<g class=\"slice\" data-label=\"%s\" data-percent=\"%s\">", esc(s.Label), esc(percent)))
		tip := append(append([]string{s.Label}, s.Tooltip...), percent)
		var d string
		if share >= 1-1e-9 {
			d = sectorPath(cx, cy, outer, inner, 0, math.Pi) + " " + sectorPath(cx, cy, outer, inner, math.Pi, 2*math.Pi)
		} else {
			d = sectorPath(cx, cy, outer, inner, start, end)
		}
		b.WriteString(fmt.Sprintf("<path d=\"%s\" fill=\"%s\" stroke=\"#ffffff\" stroke-width=\"1\">%s</path>", d, color, tooltip(tip)))

		if sweep > 0 {
			mid := start + sweep/2
			r := (outer + inner) / 2
			tx, ty := polar(cx, cy, r, mid)
			b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"#ffffff\" font-size=\"%d\" text-anchor=\"middle\" class=\"slice-label\">", tx, ty-2, tickFontSize))
			b.WriteString(fmt.Sprintf("<tspan x=\"%.2f\">%s</tspan>", tx, esc(s.Label)))
			b.WriteString(fmt.Sprintf("<tspan x=\"%.2f\" dy=\"12\">%s</tspan>", tx, esc(percent)))
			b.WriteString("</text>")
		}
		b.WriteString("</g>")
		start = end
	}

	if opts.ShowLegend {
		x := f.right() + 12
		y := cy - float64(len(slices))*legendRowSize/2
		b.WriteString("<g class=\"legend\">")
		for i, s := range slices {
			color := fallback(s.Color, palette[i%len(palette)])
			rowY := y + float64(i)*legendRowSize
			b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"10\" height=\"10\" fill=\"%s\"></rect>", x, rowY, color))
			b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"%d\" text-anchor=\"start\">%s</text>", x+14, rowY+9, textColor, tickFontSize, esc(s.Label)))
		}
		b.WriteString("</g>")
	}

	return closeSVG(&b), nil
}

// polar maps an angle measured clockwise from twelve o'clock to a point.
func polar(cx, cy, r, angle float64) (float64, float64) {
	return cx + r*math.Sin(angle), cy - r*math.Cos(angle)
}

func sectorPath(cx, cy, outer, inner, start, end float64) string {
	largeArc := 0
	if end-start > math.Pi {
		largeArc = 1
	}
	ox1, oy1 := polar(cx, cy, outer, start)
	ox2, oy2 := polar(cx, cy, outer, end)
	ix1, iy1 := polar(cx, cy, inner, end)
	ix2, iy2 := polar(cx, cy, inner, start)
	return fmt.Sprintf("M%.2f %.2f A%.2f %.2f 0 %d 1 %.2f %.2f L%.2f %.2f A%.2f %.2f 0 %d 0 %.2f %.2f Z",
		ox1, oy1, outer, outer, largeArc, ox2, oy2,
		ix1, iy1, inner, inner, largeArc, ix2, iy2)
}
