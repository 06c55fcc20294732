package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tomz197/target/internal/scene"
)

var red = colorful.Color{R: 1}

func TestPalette(t *testing.T) {
	Convey("Given a palette", t, func() {
		p := NewPalette()

		Convey("Short and long hex forms parse", func() {
			c, ok := p.Parse("#fff")
			So(ok, ShouldBeTrue)
			So(c, ShouldResemble, colorful.Color{R: 1, G: 1, B: 1})

			c, ok = p.Parse("#FF0000")
			So(ok, ShouldBeTrue)
			So(c, ShouldResemble, red)
		})

		Convey("Transparent, empty and bad paints draw nothing", func() {
			for _, s := range []string{"transparent", "", "gray", "#12"} {
				_, ok := p.Parse(s)
				So(ok, ShouldBeFalse)
			}
		})

		Convey("Repeated lookups agree", func() {
			a, _ := p.Parse("#02abe2")
			b, _ := p.Parse("#02abe2")
			So(a, ShouldResemble, b)
		})
	})
}

func TestCanvasGeometry(t *testing.T) {
	Convey("Given a 10x5 canvas over a 100x100 space", t, func() {
		c := NewScaledCanvas(10, 5, 100, 100)

		Convey("FillEllipse fills pixels whose centres are inside", func() {
			c.FillEllipse(50, 50, 100, 100, red)

			_, centre := c.Pixel(5, 5)
			So(centre, ShouldBeTrue)
			_, corner := c.Pixel(0, 0)
			So(corner, ShouldBeFalse)
		})

		Convey("DrawLine covers every pixel between its ends", func() {
			c.DrawLine(Point{X: 0, Y: 0}, Point{X: 99, Y: 0}, red)
			for x := 0; x < 10; x++ {
				_, ok := c.Pixel(x, 0)
				So(ok, ShouldBeTrue)
			}
			_, ok := c.Pixel(0, 1)
			So(ok, ShouldBeFalse)
		})

		Convey("Clear empties the canvas", func() {
			c.FillEllipse(50, 50, 100, 100, red)
			c.Clear()
			_, ok := c.Pixel(5, 5)
			So(ok, ShouldBeFalse)
		})

		Convey("Terminal cells map to the middle of their logical area", func() {
			x, y, ok := c.TerminalToLogical(0, 0)
			So(ok, ShouldBeTrue)
			So(x, ShouldAlmostEqual, 5)
			So(y, ShouldAlmostEqual, 10)

			_, _, ok = c.TerminalToLogical(10, 0)
			So(ok, ShouldBeFalse)
		})

		Convey("Offsets shift both directions of the mapping", func() {
			c.SetOffset(2, 1)

			x, y, ok := c.TerminalToLogical(2, 1)
			So(ok, ShouldBeTrue)
			So(x, ShouldAlmostEqual, 5)
			So(y, ShouldAlmostEqual, 10)

			_, _, ok = c.TerminalToLogical(1, 1)
			So(ok, ShouldBeFalse)

			col, row := c.LogicalToTerminal(5, 10)
			So(col, ShouldEqual, 3)
			So(row, ShouldEqual, 2)
		})
	})
}

func TestCanvasRender(t *testing.T) {
	Convey("Given a one-cell canvas", t, func() {
		c := NewScaledCanvas(1, 1, 1, 2)
		c.SetFloat(0.5, 0.5, red)
		var out bytes.Buffer

		Convey("The first render draws the cell", func() {
			So(c.Render(&out), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "\033[1;1H")
			So(out.String(), ShouldContainSubstring, "\033[38;2;255;0;0m▀")
		})

		Convey("An unchanged frame writes nothing", func() {
			So(c.Render(&out), ShouldBeNil)
			out.Reset()
			So(c.Render(&out), ShouldBeNil)
			So(out.Len(), ShouldEqual, 0)
		})

		Convey("Both halves use foreground and background", func() {
			So(c.Render(&out), ShouldBeNil)
			out.Reset()
			c.SetFloat(0.5, 1.5, colorful.Color{B: 1})
			So(c.Render(&out), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "\033[38;2;255;0;0m\033[48;2;0;0;255m▀")
		})

		Convey("Invalidate forces a full redraw", func() {
			So(c.Render(&out), ShouldBeNil)
			out.Reset()
			c.Invalidate()
			So(c.Render(&out), ShouldBeNil)
			So(out.Len(), ShouldBeGreaterThan, 0)
		})
	})
}

func TestSceneRenderer(t *testing.T) {
	Convey("Given a scene", t, func() {
		root := scene.NewGroup("root")
		disc := scene.NewEllipse(50, 50, 100, 100, "#ff0000")
		hollow := scene.NewEllipse(50, 50, 20, 20, Transparent)
		hidden := scene.NewLine(0, 95, 100, false, "#00ff00")
		hidden.Visible = false
		root.Add(disc, hollow, hidden)

		c := NewScaledCanvas(10, 5, 100, 100)
		r := NewSceneRenderer(nil)

		Convey("Visible shapes are painted, transparent fills are skipped", func() {
			r.Paint(c, root)

			col, ok := c.Pixel(5, 5)
			So(ok, ShouldBeTrue)
			So(col, ShouldResemble, red)

			_, ok = c.Pixel(5, 9)
			So(ok, ShouldBeTrue)
			col, _ = c.Pixel(5, 9)
			So(col, ShouldNotResemble, colorful.Color{G: 1})
		})

		Convey("Lines take their stroke colour", func() {
			line := scene.NewLine(0, 5, 100, false, "#0000ff")
			root.Add(line)
			r.Paint(c, root)

			col, ok := c.Pixel(3, 0)
			So(ok, ShouldBeTrue)
			So(col, ShouldResemble, colorful.Color{B: 1})
		})
	})
}

func TestChunkWriter(t *testing.T) {
	Convey("Given a chunk writer", t, func() {
		var out bytes.Buffer
		cw := NewChunkWriter(&out)

		Convey("Nothing is written before Flush", func() {
			cw.WriteAt(3, 2, "hi")
			So(out.Len(), ShouldEqual, 0)
			So(cw.Len(), ShouldBeGreaterThan, 0)

			So(cw.Flush(), ShouldBeNil)
			So(out.String(), ShouldEqual, "\033[2;3Hhi")
			So(cw.Len(), ShouldEqual, 0)
		})

		Convey("Large buffers are flushed completely", func() {
			big := strings.Repeat("x", 5000)
			cw.WriteString(big)
			So(cw.Flush(), ShouldBeNil)
			So(out.String(), ShouldEqual, big)
		})

		Convey("Styles are emitted as SGR sequences", func() {
			cw.Foreground(red)
			cw.ResetStyle()
			So(cw.Flush(), ShouldBeNil)
			So(out.String(), ShouldEqual, "\033[38;2;255;0;0m\033[0m")
		})
	})
}
