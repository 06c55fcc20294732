package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/target/internal/ledger"
	"github.com/tomz197/target/internal/loop/config"
)

const swatchWidth = 3

var titleColor, _ = colorful.Hex("#ff6467")

// layout places the target canvas and the score panel on the terminal.
// All values are in cells; offsets count the cells before the canvas.
type layout struct {
	width, height int
	canvasCols    int
	canvasRows    int
	offsetCol     int
	offsetRow     int
	hudCol        int // 1-based first column of the score panel
}

// computeLayout fits the largest square canvas next to the score panel.
// A cell holds two vertical pixels, so a square needs twice as many
// columns as rows. One cell on each side is kept for the border.
func computeLayout(width, height int) layout {
	availW := width - config.HUDWidth - 2
	availH := height - config.StatusRows - 2

	cols := min(availW, availH*2)
	cols = max(cols, config.MinCanvasCols)
	cols -= cols % 2
	rows := cols / 2

	offsetCol := 1 + max(availW-cols, 0)/2
	return layout{
		width:      width,
		height:     height,
		canvasCols: cols,
		canvasRows: rows,
		offsetCol:  offsetCol,
		offsetRow:  1 + max(availH-rows, 0)/2,
		hudCol:     max(width-config.HUDWidth+1, offsetCol+cols+3),
	}
}

// drawFrame draws the current frame. The target is only repainted when
// something changed; the canvas diff keeps the output small.
func (c *Client) drawFrame() error {
	// On state or inactivity transitions, do a full terminal clear so the
	// previous screen doesn't persist.
	stateChanged := c.state.State != c.state.prevState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.Invalidate()
		c.state.prevState = c.state.State
		c.state.wasInactive = c.state.isInactive
		c.state.dirty = true
	}

	if online := c.server.ActiveCount(); online != c.state.lastOnline {
		c.state.lastOnline = online
		c.state.dirty = true
	}
	if countdown := c.countdown(); countdown != c.state.lastCountdown {
		c.state.lastCountdown = countdown
		c.state.dirty = true
	}

	if !c.state.dirty {
		// Bell pulses may still be pending
		return c.chunkWriter.Flush()
	}
	c.state.dirty = false

	centerX := c.layout.width / 2
	centerY := c.layout.height / 2
	switch {
	case c.state.State == SessionStateShutdown:
		c.drawShutdownScreen(centerX, centerY)
	case c.state.isInactive:
		c.drawInactivityScreen(centerX, centerY)
	default:
		if err := c.drawTarget(); err != nil {
			return err
		}
		c.drawHUD()
		c.drawStatusLine()
	}

	return c.chunkWriter.Flush()
}

// countdown returns the whole seconds shown by the active overlay, or 0.
func (c *Client) countdown() int {
	switch {
	case c.state.State == SessionStateShutdown:
		return int(c.state.shutdownTimer) + 1
	case c.state.isInactive:
		return int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	}
	return 0
}

// drawTarget paints the scene and renders the changed cells.
func (c *Client) drawTarget() error {
	c.renderer.Paint(c.canvas, c.scene.Root())
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	return c.canvas.RenderBorder(c.chunkWriter)
}

// drawHUD draws the score panel. Text fields are padded to the panel
// width so shrinking values don't leave residual characters on screen.
func (c *Client) drawHUD() {
	cw := c.chunkWriter
	col := c.layout.hudCol
	width := config.HUDWidth - 2
	line := func(row int, format string, args ...any) {
		cw.WriteAt(col, row, fmt.Sprintf("%-*s", width, fmt.Sprintf(format, args...)))
	}

	stats := c.app.Stats()
	cw.MoveCursor(col, 2)
	cw.Foreground(titleColor)
	cw.WriteString(fmt.Sprintf("%-*s", width, "TARGET"))
	cw.ResetStyle()
	if c.username != "" {
		line(3, "Shooter: %.*s", config.MaxUsername, c.username)
	}
	line(5, "Shots:   %d", stats.Count)
	line(6, "Total:   %d", stats.Total)
	line(7, "Average: %.2f", stats.Average)
	line(8, "Max/Min: %d/%d", stats.Max, stats.Min)
	line(10, "Scores")

	first := 11
	last := c.layout.height - config.StatusRows - 2
	c.drawScoreList(col, width, first, last)

	line(last+1, "Online: %d", c.state.lastOnline)
}

// drawScoreList lists the most recent shots that fit between first and
// last. The shot being dragged is shown in reverse video.
func (c *Client) drawScoreList(col, width, first, last int) {
	if last < first {
		return
	}
	cw := c.chunkWriter
	entries := c.app.Ledger().Entries()
	dragging := c.app.DraggingIndex().Get()

	rows := last - first + 1
	start := max(len(entries)-rows, 0)
	for i := 0; i < rows; i++ {
		idx := start + i
		text := ""
		if idx < len(entries) {
			text = formatEntry(entries[idx])
		}
		cw.MoveCursor(col, first+i)
		c.drawSwatch(entries, idx)
		if idx == dragging && dragging != ledger.None {
			cw.Reverse()
			cw.WriteString(fmt.Sprintf("%-*s", width-swatchWidth, text))
			cw.ResetStyle()
			continue
		}
		cw.WriteString(fmt.Sprintf("%-*s", width-swatchWidth, text))
	}
}

// drawSwatch shows the fill of the ring a shot scored in. Misses and
// blank rows get plain spaces.
func (c *Client) drawSwatch(entries []ledger.Entry, idx int) {
	cw := c.chunkWriter
	if idx < len(entries) {
		if col, ok := c.swatches[entries[idx].Score]; ok {
			cw.Background(col)
			cw.WriteString("  ")
			cw.ResetStyle()
			cw.WriteString(" ")
			return
		}
	}
	cw.WriteString(strings.Repeat(" ", swatchWidth))
}

func formatEntry(e ledger.Entry) string {
	return fmt.Sprintf("#%-3d %2d", e.ID, e.Score)
}

// drawStatusLine draws the key help on the bottom row.
func (c *Client) drawStatusLine() {
	help := "click: shoot  hold+drag: move  r: reset  q: quit"
	if len(help) > c.layout.width-1 {
		help = help[:max(c.layout.width-1, 0)]
	}
	c.chunkWriter.ClearLine(1, c.layout.height)
	c.chunkWriter.WriteString(help)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "INACTIVITY WARNING"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	msg := fmt.Sprintf("You have been inactive for too long. Disconnecting in %-3d seconds.", c.state.lastCountdown)
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "SERVER SHUTTING DOWN"
	cw.WriteAt(centerX-len(title)/2, centerY-3, title)

	msg1 := "The server is restarting for maintenance."
	cw.WriteAt(centerX-len(msg1)/2, centerY-1, msg1)

	msg2 := "Please reconnect in a moment."
	cw.WriteAt(centerX-len(msg2)/2, centerY, msg2)

	countdown := fmt.Sprintf("Disconnecting in %-3d seconds...", c.state.lastCountdown)
	cw.WriteAt(centerX-len(countdown)/2, centerY+2, countdown)

	hint := "Press Q to disconnect now"
	cw.WriteAt(centerX-len(hint)/2, centerY+4, hint)
}
