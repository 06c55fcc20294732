package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// cell is what a terminal cell shows: two stacked sub-pixels.
type cell struct {
	top, bottom       colorful.Color
	hasTop, hasBottom bool
}

// Canvas is a colour drawing buffer with 2x vertical resolution using
// half-block characters. It scales from logical coordinates to terminal
// pixels and only re-emits cells that changed since the previous Render.
type Canvas struct {
	termWidth      int // Canvas columns
	termHeight     int // Canvas rows
	subPixelHeight int // termHeight * 2
	pixels         []colorful.Color
	set            []bool
	prev           []cell // Last rendered frame; nil forces a full redraw

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets of the canvas' top-left cell
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewScaledCanvas creates a canvas of termWidth x termHeight cells showing
// a logicalWidth x logicalHeight coordinate space.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the
// logical size. The next Render redraws everything.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight {
		subPixelHeight := termHeight * 2
		c.pixels = make([]colorful.Color, subPixelHeight*termWidth)
		c.set = make([]bool, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}
	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
	c.prev = nil
}

// SetOffset sets the 0-based column and row of the canvas' top-left cell.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.prev = nil
	}
	c.offsetCol = col
	c.offsetRow = row
}

// Invalidate forces the next Render to redraw every cell, e.g. after the
// screen was cleared.
func (c *Canvas) Invalidate() {
	c.prev = nil
}

// Clear resets all pixels.
func (c *Canvas) Clear() {
	clear(c.set)
}

// setPixel sets a pixel at terminal pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col colorful.Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		i := y*c.termWidth + x
		c.pixels[i] = col
		c.set[i] = true
	}
}

// Pixel returns the colour at terminal pixel coordinates.
func (c *Canvas) Pixel(x, y int) (colorful.Color, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return colorful.Color{}, false
	}
	i := y*c.termWidth + x
	return c.pixels[i], c.set[i]
}

// SetFloat sets the pixel under a logical point.
func (c *Canvas) SetFloat(x, y float64, col colorful.Color) {
	c.setPixel(int(math.Floor(x*c.scaleX)), int(math.Floor(y*c.scaleY)), col)
}

// DrawLine draws a line between two logical points using Bresenham's
// algorithm in pixel space.
func (c *Canvas) DrawLine(p1, p2 Point, col colorful.Color) {
	x1 := int(math.Floor(p1.X * c.scaleX))
	y1 := int(math.Floor(p1.Y * c.scaleY))
	x2 := int(math.Floor(p2.X * c.scaleX))
	y2 := int(math.Floor(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillEllipse fills the ellipse centred on (cx, cy) with the given logical
// width and height. A pixel is filled when its centre lies inside.
func (c *Canvas) FillEllipse(cx, cy, width, height float64, col colorful.Color) {
	rx, ry := width/2, height/2
	if rx <= 0 || ry <= 0 {
		return
	}
	x0 := int(math.Floor((cx - rx) * c.scaleX))
	x1 := int(math.Ceil((cx + rx) * c.scaleX))
	y0 := int(math.Floor((cy - ry) * c.scaleY))
	y1 := int(math.Ceil((cy + ry) * c.scaleY))

	for py := max(y0, 0); py <= min(y1, c.subPixelHeight-1); py++ {
		ly := (float64(py)+0.5)/c.scaleY - cy
		for px := max(x0, 0); px <= min(x1, c.termWidth-1); px++ {
			lx := (float64(px)+0.5)/c.scaleX - cx
			if (lx*lx)/(rx*rx)+(ly*ly)/(ry*ry) <= 1 {
				c.setPixel(px, py, col)
			}
		}
	}
}

// StrokeEllipse draws the outline of an ellipse by sampling its
// circumference densely enough to leave no gaps at the current scale.
func (c *Canvas) StrokeEllipse(cx, cy, width, height float64, col colorful.Color) {
	rx, ry := width/2, height/2
	if rx <= 0 || ry <= 0 {
		return
	}
	r := math.Max(rx*c.scaleX, ry*c.scaleY)
	steps := max(int(math.Ceil(2*math.Pi*r*2)), 8)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.SetFloat(cx+rx*math.Cos(a), cy+ry*math.Sin(a), col)
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render writes the cells that changed since the previous Render, using
// upper half blocks with 24-bit foreground (top pixel) and background
// (bottom pixel) colours.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	full := c.prev == nil
	if full {
		c.prev = make([]cell, c.termWidth*c.termHeight)
	}

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth
		cursorCol := -1 // Column the cursor sits on, -1 if unknown

		for col := 0; col < c.termWidth; col++ {
			cur := cell{
				top:       c.pixels[topOffset+col],
				bottom:    c.pixels[bottomOffset+col],
				hasTop:    c.set[topOffset+col],
				hasBottom: c.set[bottomOffset+col],
			}
			if !cur.hasTop {
				cur.top = colorful.Color{}
			}
			if !cur.hasBottom {
				cur.bottom = colorful.Color{}
			}

			i := row*c.termWidth + col
			if !full && c.prev[i] == cur {
				continue
			}
			c.prev[i] = cur

			if cursorCol != col {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			c.writeCell(cur)
			cursorCol = col + 1
		}
	}
	if c.renderBuf.Len() > 0 {
		c.renderBuf.WriteString(sgrReset)
	}

	return writeChunked(w, c.renderBuf.String())
}

const (
	sgrReset  = "\033[0m"
	upperHalf = "▀"
	lowerHalf = "▄"
)

func (c *Canvas) writeCell(cur cell) {
	c.renderBuf.WriteString(sgrReset)
	switch {
	case cur.hasTop && cur.hasBottom:
		c.writeColor(38, cur.top)
		c.writeColor(48, cur.bottom)
		c.renderBuf.WriteString(upperHalf)
	case cur.hasTop:
		c.writeColor(38, cur.top)
		c.renderBuf.WriteString(upperHalf)
	case cur.hasBottom:
		c.writeColor(38, cur.bottom)
		c.renderBuf.WriteString(lowerHalf)
	default:
		c.renderBuf.WriteByte(' ')
	}
}

// writeColor appends an SGR truecolor sequence; layer is 38 (fg) or 48 (bg).
func (c *Canvas) writeColor(layer int, col colorful.Color) {
	r, g, b := col.RGB255()
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(layer), 10))
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(r), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(g), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(b), 10))
	c.renderBuf.WriteByte('m')
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// writeChunked writes data in MTU-sized pieces.
func writeChunked(w io.Writer, data string) error {
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// RenderBorder draws a box around the canvas when there is room for it.
func (c *Canvas) RenderBorder(w io.Writer) error {
	if c.offsetCol < 1 || c.offsetRow < 1 {
		return nil
	}
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	bar := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	buf.WriteString(sgrReset)
	buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(left) + "H┌" + bar + "┐")
	buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(left) + "H└" + bar + "┘")
	for row := top + 1; row < bottom; row++ {
		buf.WriteString("\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(left) + "H│")
		buf.WriteString("\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(right) + "H│")
	}
	return writeChunked(w, buf.String())
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the canvas width in columns.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas height in rows.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based terminal
// position (col, row), offsets included.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1 + c.offsetCol, py/2 + 1 + c.offsetRow
}

// TerminalToLogical converts a 0-based terminal cell (as reported by the
// mouse) to the logical point at the middle of that cell. ok is false when
// the cell lies outside the canvas; x and y are still extrapolated.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	lc := col - c.offsetCol
	lr := row - c.offsetRow
	x = (float64(lc) + 0.5) / c.scaleX
	y = (float64(lr)*2 + 1) / c.scaleY
	ok = lc >= 0 && lc < c.termWidth && lr >= 0 && lr < c.termHeight
	return x, y, ok
}
