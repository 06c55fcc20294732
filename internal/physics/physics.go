// Package physics provides distance and containment helpers for hit-testing.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt(DistanceSquared(x1, y1, x2, y2))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// PointInEllipse checks if a point lies inside or on an axis-aligned ellipse
// centred at (cx, cy) with radii rx and ry. Degenerate ellipses contain nothing.
func PointInEllipse(px, py, cx, cy, rx, ry float64) bool {
	if rx <= 0 || ry <= 0 {
		return false
	}
	if rx == ry {
		return PointInCircle(px, py, cx, cy, rx)
	}
	nx := (px - cx) / rx
	ny := (py - cy) / ry
	return nx*nx+ny*ny <= 1
}

// PointNearSegment checks if a point lies within tolerance of the segment
// from (x1, y1) to (x2, y2).
func PointNearSegment(px, py, x1, y1, x2, y2, tolerance float64) bool {
	dx := x2 - x1
	dy := y2 - y1
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return PointInCircle(px, py, x1, y1, tolerance)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return PointInCircle(px, py, x1+t*dx, y1+t*dy, tolerance)
}
