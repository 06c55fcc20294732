package draw

import (
	"github.com/tomz197/target/internal/scene"
)

// minStroke is the thinnest outline drawn, in logical units.
const minStroke = 0.5

// SceneRenderer paints scene nodes onto a canvas in paint order.
type SceneRenderer struct {
	palette *Palette
}

// NewSceneRenderer creates a renderer sharing the given palette. A nil
// palette gets a private one.
func NewSceneRenderer(p *Palette) *SceneRenderer {
	if p == nil {
		p = NewPalette()
	}
	return &SceneRenderer{palette: p}
}

// Paint clears the canvas and draws every visible node under root.
func (r *SceneRenderer) Paint(c *Canvas, root *scene.Node) {
	c.Clear()
	for _, n := range scene.PaintOrder(root) {
		switch n.Kind {
		case scene.KindEllipse:
			r.paintEllipse(c, n)
		case scene.KindLine:
			r.paintLine(c, n)
		}
	}
}

func (r *SceneRenderer) paintEllipse(c *Canvas, n *scene.Node) {
	if fill, ok := r.palette.Parse(n.Fill); ok {
		c.FillEllipse(n.X, n.Y, n.Width, n.Height, fill)
	}
	if n.StrokeWidth < minStroke {
		return
	}
	if stroke, ok := r.palette.Parse(n.Stroke); ok {
		c.StrokeEllipse(n.X, n.Y, n.Width, n.Height, stroke)
	}
}

func (r *SceneRenderer) paintLine(c *Canvas, n *scene.Node) {
	stroke, ok := r.palette.Parse(n.Stroke)
	if !ok {
		return
	}
	end := Point{X: n.X + n.Width, Y: n.Y}
	if n.Vertical {
		end = Point{X: n.X, Y: n.Y + n.Width}
	}
	c.DrawLine(Point{X: n.X, Y: n.Y}, end, stroke)
}
