// Package export renders recorded runs and scene snapshots as SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/starlab/internal/telemetry"
	"github.com/san-kum/starlab/internal/viz"
)

const background = "#0a0a12"

// classFills maps canvas color classes to SVG fill colors.
var classFills = [5]string{
	"",
	"#3b4261",
	"#7aa2f7",
	"#ff9e64",
	"#ffd27f",
}

var phaseBands = map[string]string{
	"NEBULA_COLLAPSE": "#141c33",
	"MAIN_SEQUENCE":   "#1c2616",
	"RED_GIANT":       "#2b1a14",
	"SUPERNOVA":       "#33202c",
	"REMNANT":         "#14141c",
}

// CanvasSVG converts a braille canvas to SVG, one circle per lit dot,
// grouped by color class. scale is the dot pitch in SVG units.
func CanvasSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil || scale <= 0 {
		return ""
	}

	width := float64(canvas.SubWidth()) * scale
	height := float64(canvas.SubHeight()) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	dotRadius := scale * 0.4

	// One group per class keeps the file small and the z-order stable:
	// brighter classes paint over dimmer ones.
	for class := uint8(1); class < 5; class++ {
		opened := false
		for row := 0; row < canvas.Height; row++ {
			for col := 0; col < canvas.Width; col++ {
				if canvas.ClassAt(col, row) != class {
					continue
				}
				r := canvas.Grid[row][col]
				if r <= 0x2800 {
					continue
				}
				pattern := int(r - 0x2800)
				if !opened {
					sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", classFills[class]))
					opened = true
				}

				baseX := float64(col) * scale * 2
				baseY := float64(row) * scale * 4
				for dy := 0; dy < 4; dy++ {
					for dx := 0; dx < 2; dx++ {
						if pattern&pixelMap[dy][dx] == 0 {
							continue
						}
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius))
					}
				}
			}
		}
		if opened {
			sb.WriteString("</g>\n")
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ChartSVG plots a recorded run: phase bands behind, core mass and star
// radius over time in front, each series normalized to its own peak.
func ChartSVG(samples []telemetry.Sample, width, height int) string {
	if len(samples) < 2 || width <= 0 || height <= 0 {
		return ""
	}

	const marginL, marginR, marginT, marginB = 46.0, 16.0, 24.0, 28.0
	plotW := float64(width) - marginL - marginR
	plotH := float64(height) - marginT - marginB
	if plotW <= 0 || plotH <= 0 {
		return ""
	}

	t0 := samples[0].Time
	t1 := samples[len(samples)-1].Time
	if t1 <= t0 {
		return ""
	}
	xAt := func(t float64) float64 { return marginL + (t-t0)/(t1-t0)*plotW }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="monospace">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	writeBands(&sb, samples, xAt, marginT, plotH)

	sb.WriteString(seriesPath(samples, func(s telemetry.Sample) float64 { return s.Mass },
		xAt, marginT, plotH, "#ffd166"))
	sb.WriteString(seriesPath(samples, func(s telemetry.Sample) float64 { return s.StarRadius },
		xAt, marginT, plotH, "#7aa2f7"))

	sb.WriteString(fmt.Sprintf(`<text x="%.0f" y="16" fill="#ffd166" font-size="11">core mass</text>
<text x="%.0f" y="16" fill="#7aa2f7" font-size="11">star radius</text>
<text x="%.0f" y="%d" fill="#888" font-size="10">%.0fs</text>
<text x="%.0f" y="%d" fill="#888" font-size="10" text-anchor="end">%.0fs</text>
`, marginL, marginL+90, marginL, height-8, t0, marginL+plotW, height-8, t1))

	sb.WriteString("</svg>")
	return sb.String()
}

// writeBands shades one rectangle per contiguous phase stretch and
// labels the stretch at its left edge.
func writeBands(sb *strings.Builder, samples []telemetry.Sample, xAt func(float64) float64, top, plotH float64) {
	start := 0
	for i := 1; i <= len(samples); i++ {
		if i < len(samples) && samples[i].Phase == samples[start].Phase {
			continue
		}
		name := samples[start].Phase.String()
		x0 := xAt(samples[start].Time)
		x1 := xAt(samples[i-1].Time)
		if i < len(samples) {
			x1 = xAt(samples[i].Time)
		}
		fill, ok := phaseBands[name]
		if !ok {
			fill = "#181818"
		}
		fmt.Fprintf(sb, "<rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" fill=\"%s\"/>\n",
			x0, top, x1-x0, plotH, fill)
		if x1-x0 > 60 {
			fmt.Fprintf(sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"#666\" font-size=\"9\">%s</text>\n",
				x0+4, top+12, name)
		}
		start = i
	}
}

// seriesPath emits one polyline, scaled so the series peak touches the
// top of the plot area.
func seriesPath(samples []telemetry.Sample, get func(telemetry.Sample) float64, xAt func(float64) float64, top, plotH float64, stroke string) string {
	peak := 0.0
	for _, s := range samples {
		if v := get(s); v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"M", stroke))
	for i, s := range samples {
		x := xAt(s.Time)
		y := top + plotH - get(s)/peak*plotH
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")
	return sb.String()
}
