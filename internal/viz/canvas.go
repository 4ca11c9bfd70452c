package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/pendulums/internal/dynamo"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = rune(0x2800)

// Canvas is a grid of braille cells. Each cell carries the color of the last
// dot drawn into it, since a terminal cell has a single foreground.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]colorful.Color
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]colorful.Color, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]colorful.Color, w)
	}
	c.Clear()
	return c
}

// SubWidth is the canvas width in dots.
func (c *Canvas) SubWidth() int { return c.Width * 2 }

// SubHeight is the canvas height in dots.
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Set turns on the dot at (x, y) in sub-pixel coordinates and paints its
// cell with col.
func (c *Canvas) Set(x, y int, col colorful.Color) {
	if x < 0 || y < 0 {
		return
	}

	cx := x / 2
	row := y / 4
	if cx >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][cx] |= rune(pixelMap[y%4][x%2])
	c.Colors[row][cx] = col
}

// Unset clears a dot
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	cx := x / 2
	row := y / 4
	if cx >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][cx] &^= rune(pixelMap[y%4][x%2])
	c.Grid[row][cx] |= blank
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = colorful.Color{}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col colorful.Color) {
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

	// guard against lines thrown far off-canvas by a diverged pendulum
	limit := 4 * (c.SubWidth() + c.SubHeight())
	for n := 0; n <= limit; n++ {
		c.Set(x0, y0, col)
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

// FillCircle fills every dot whose center lies within r of (cx, cy). The dot
// under the center is always set so that tiny shapes stay visible.
func (c *Canvas) FillCircle(cx, cy, r float64, col colorful.Color) {
	c.Set(int(math.Floor(cx)), int(math.Floor(cy)), col)
	x0, x1, y0, y1 := c.clip(cx-r, cx+r, cy-r, cy+r)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r*r {
				c.Set(x, y, col)
			}
		}
	}
}

// FillRect fills the axis-aligned rectangle between two corners.
func (c *Canvas) FillRect(minX, minY, maxX, maxY float64, col colorful.Color) {
	c.Set(int(math.Floor((minX+maxX)/2)), int(math.Floor((minY+maxY)/2)), col)
	x0, x1, y0, y1 := c.clip(minX, maxX, minY, maxY)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			if px >= minX && px <= maxX && py >= minY && py <= maxY {
				c.Set(x, y, col)
			}
		}
	}
}

// FillTriangle fills the triangle abc using edge functions, so either
// winding works.
func (c *Canvas) FillTriangle(a, b, d dynamo.Vec2, col colorful.Color) {
	cen := a.Add(b).Add(d).Scale(1.0 / 3)
	c.Set(int(math.Floor(cen.X)), int(math.Floor(cen.Y)), col)

	x0, x1, y0, y1 := c.clip(
		math.Min(a.X, math.Min(b.X, d.X)), math.Max(a.X, math.Max(b.X, d.X)),
		math.Min(a.Y, math.Min(b.Y, d.Y)), math.Max(a.Y, math.Max(b.Y, d.Y)))
	area := edge(a, b, d)
	if area == 0 {
		return
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := dynamo.V(float64(x)+0.5, float64(y)+0.5)
			w0, w1, w2 := edge(b, d, p), edge(d, a, p), edge(a, b, p)
			if area < 0 {
				w0, w1, w2 = -w0, -w1, -w2
			}
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				c.Set(x, y, col)
			}
		}
	}
}

func edge(a, b, p dynamo.Vec2) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// clip converts a float box to inclusive dot bounds inside the canvas.
func (c *Canvas) clip(minX, maxX, minY, maxY float64) (x0, x1, y0, y1 int) {
	if math.IsNaN(minX+maxX+minY+maxY) {
		return 0, -1, 0, -1
	}
	x0 = int(math.Max(0, math.Floor(minX)))
	y0 = int(math.Max(0, math.Floor(minY)))
	x1 = int(math.Min(float64(c.SubWidth()-1), math.Floor(maxX)))
	y1 = int(math.Min(float64(c.SubHeight()-1), math.Floor(maxY)))
	return
}

// String renders the dots without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render renders the dots with each run of equally colored cells wrapped in
// one lipgloss style.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			b.WriteString(c.renderRun(i, start, j))
			start = j
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (c *Canvas) renderRun(row, from, to int) string {
	text := string(c.Grid[row][from:to])
	col := c.Colors[row][from]
	if col == (colorful.Color{}) {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(col.Hex())).Render(text)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
