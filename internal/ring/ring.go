// Package ring describes the concentric scoring rings of a target.
// Everything here is pure: no package state, no rendering.
package ring

// Count is the number of scoring rings on a standard target.
const Count = 10

// Stroke colours for ring outlines.
const (
	StrokeDefault = "#000"
	StrokeSpecial = "#fff" // Black band rings need a light outline to stay visible
	StrokeWidth   = 0.5
)

// Config is a single ring entry as supplied by configuration.
type Config struct {
	Fill      string `koanf:"fill"`
	Highlight string `koanf:"high"`
	Score     int    `koanf:"range"`
}

// Spec is a ring ready to be rendered: its score and the two fills it
// alternates between.
type Spec struct {
	Score     int
	Fill      string
	Highlight string
}

// Dimensions is the bounding box of a ring shape.
type Dimensions struct {
	Width  float64
	Height float64
}

// Radius returns the horizontal radius of the ring's bounding ellipse.
func (d Dimensions) Radius() float64 {
	return d.Width / 2
}

// Defaults returns the standard ten-ring palette, innermost first.
// Consecutive rings share colours two by two.
func Defaults() []Config {
	return []Config{
		{Fill: "#fdc700", Highlight: "#fff085", Score: 10}, // gold
		{Fill: "#fdc700", Highlight: "#fff085", Score: 9},
		{Fill: "#ff6467", Highlight: "#ffc9c9", Score: 8}, // red
		{Fill: "#ff6467", Highlight: "#ffc9c9", Score: 7},
		{Fill: "#02abe2", Highlight: "#8ec5ff", Score: 6}, // blue
		{Fill: "#02abe2", Highlight: "#8ec5ff", Score: 5},
		{Fill: "#000", Highlight: "#314158", Score: 4}, // black
		{Fill: "#000", Highlight: "#314158", Score: 3},
		{Fill: "#fff", Highlight: "#f5f5f4", Score: 2}, // white
		{Fill: "#fff", Highlight: "#f5f5f4", Score: 1},
	}
}

// Build converts ring configuration into specs. The caller's order is kept
// as-is, even when scores are not monotonic.
func Build(cfgs []Config) []Spec {
	specs := make([]Spec, len(cfgs))
	for i, c := range cfgs {
		specs[i] = Spec{
			Score:     c.Score,
			Fill:      c.Fill,
			Highlight: c.Highlight,
		}
	}
	return specs
}

// Size returns the bounding box of the ring at index (0 = innermost).
// Rings are circular: width and height are always equal.
func Size(index int, base float64) Dimensions {
	size := base * float64(index+1)
	return Dimensions{Width: size, Height: size}
}

// ZIndex returns the paint order of a ring. position counts from 1, so
// inner rings end up above outer ones.
func ZIndex(baseZ, position int) int {
	return baseZ - position
}

// StrokeFor returns the outline colour for a ring with the given score.
func StrokeFor(score int) string {
	if score == 4 {
		return StrokeSpecial
	}
	return StrokeDefault
}

// Identity returns the encoded identity for the spec.
func (s Spec) Identity() string {
	return EncodeIdentity(s.Score, s.Highlight, s.Fill)
}
