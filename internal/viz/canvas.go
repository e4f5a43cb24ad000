package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille patterns: 2x4 dots per character cell.
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBase rune = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Color classes, ordered dark to bright. A cell keeps the brightest
// class any dot gave it, so a hot core wins over the dim haze behind it.
const (
	ClassNone uint8 = iota
	ClassDim
	ClassCool
	ClassWarm
	ClassHot
)

// Palette maps color classes onto terminal styles.
type Palette [5]lipgloss.Style

// Canvas is a braille pixel grid with one color class per character
// cell. Dot coordinates run over (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	class [][]uint8
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		class:  make([][]uint8, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.class[i] = make([]uint8, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
		}
	}
	return c
}

// SubWidth and SubHeight are the dot-space dimensions.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// ClassAt reports the color class of the cell at (col, row).
func (c *Canvas) ClassAt(col, row int) uint8 {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return ClassNone
	}
	return c.class[row][col]
}

// Set lights the dot at (x, y) and raises its cell to at least class.
func (c *Canvas) Set(x, y int, class uint8) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if class > c.class[row][col] {
		c.class[row][col] = class
	}
}

// Unset clears a dot. A cell with no dots left loses its class, so a
// blotted region renders as true background.
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] &= ^rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] == brailleBase {
		c.class[row][col] = ClassNone
	}
}

// Clear resets every dot and class.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
			c.class[i][j] = ClassNone
		}
	}
}

// DrawLine draws a Bresenham line in dot space.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, class uint8) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, class)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle lights every dot within radius r of (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r int, class uint8) {
	if r < 0 {
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy, class)
			}
		}
	}
}

// BlotCircle clears every dot within radius r. The event horizon eats
// whatever was drawn behind it.
func (c *Canvas) BlotCircle(cx, cy, r int) {
	if r < 0 {
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Unset(cx+dx, cy+dy)
			}
		}
	}
}

// Ring lights the dots at distance r, stepped densely enough to close.
func (c *Canvas) Ring(cx, cy, r int, class uint8) {
	if r <= 0 {
		c.Set(cx, cy, class)
		return
	}
	steps := 8 * r
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Set(cx+int(float64(r)*math.Cos(a)), cy+int(float64(r)*math.Sin(a)), class)
	}
}

// String renders the grid without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render colors the grid through a palette, batching runs of the same
// class to keep escape sequences down.
func (c *Canvas) Render(p Palette) string {
	var b strings.Builder
	for row := range c.Grid {
		if c.Width == 0 {
			b.WriteByte('\n')
			continue
		}
		runStart := 0
		runClass := c.class[row][0]
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.class[row][col] == runClass {
				continue
			}
			segment := string(c.Grid[row][runStart:col])
			if runClass == ClassNone {
				b.WriteString(segment)
			} else {
				b.WriteString(p[runClass].Render(segment))
			}
			if col < c.Width {
				runStart = col
				runClass = c.class[row][col]
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
