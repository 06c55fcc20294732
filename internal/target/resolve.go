package target

import "github.com/tomz197/target/internal/scene"

// Identity tags of the non-scoring shapes placed on the target.
const (
	IDDot           = "dot"       // Resting marker dot
	IDActiveOverlay = "active-bg" // Marker overlay shown while dragging
	IDCenter        = "10"        // Centre decoration (never a scoring shape)
)

// NonScoring reports whether n is a decoration that must never be scored:
// marker dots, marker overlays and untagged shapes such as the background.
func NonScoring(n *scene.Node) bool {
	return n.ID == "" || n.ID == IDDot || n.ID == IDActiveOverlay
}

// LastCandidate returns the last node of a paint-ordered pick path that is
// not excluded, or nil. With decorations filtered out this is the shape a
// plain topmost hit test would have reported.
func LastCandidate(path []*scene.Node, exclude func(*scene.Node) bool) *scene.Node {
	for i := len(path) - 1; i >= 0; i-- {
		if exclude != nil && exclude(path[i]) {
			continue
		}
		return path[i]
	}
	return nil
}
