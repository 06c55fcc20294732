package scene

// EventType identifies a pointer gesture delivered to nodes.
type EventType int

const (
	EventTap       EventType = iota // Short press and release
	EventLongPress                  // Press held past the long-press threshold
	EventDrag                       // Pointer moved while captured by a long press
	EventUp                         // Pointer released
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventTap:
		return "tap"
	case EventLongPress:
		return "long_press"
	case EventDrag:
		return "drag"
	case EventUp:
		return "up"
	default:
		return "unknown"
	}
}

// Event is a pointer gesture in scene coordinates.
type Event struct {
	Type    EventType
	Point   Point // Pointer position
	Delta   Point // Movement since the previous drag event (drag only)
	Target  *Node // Node the event was dispatched to
	Current *Node // Node whose handler is running
}

// Handler reacts to an event delivered to a node.
type Handler func(ev *Event)

type handlerEntry struct {
	id uint32
	fn Handler
}

// Subscription removes a handler registered with On.
type Subscription struct {
	scene  *Scene
	handle Handle
	event  EventType
	id     uint32
}

// Remove unregisters the handler. Removing twice is harmless.
func (s Subscription) Remove() {
	if s.scene == nil {
		return
	}
	byType := s.scene.handlers[s.handle]
	if byType == nil {
		return
	}
	entries := byType[s.event]
	for i := range entries {
		if entries[i].id == s.id {
			copy(entries[i:], entries[i+1:])
			entries[len(entries)-1] = handlerEntry{}
			byType[s.event] = entries[:len(entries)-1]
			return
		}
	}
}

// PickOptions controls a hit test.
type PickOptions struct {
	// Through collects every node under the point instead of just the topmost.
	Through bool
	// Root limits the hit test to a subtree. Defaults to the scene root.
	Root *Node
}

// PickResult is the outcome of a hit test.
type PickResult struct {
	// Target is the topmost node under the point, nil if nothing was hit.
	Target *Node
	// Path lists every node under the point in paint order (bottom first).
	// Only filled for through picks.
	Path []*Node
}

// Scene owns a node tree and routes pointer events to it. A Scene is not
// safe for concurrent use; all calls must come from the session loop.
type Scene struct {
	root     *Node
	handlers map[Handle]map[EventType][]handlerEntry
	nextID   uint32
	captured []*Node // Bubble path captured by a long press
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		root:     NewGroup("root"),
		handlers: make(map[Handle]map[EventType][]handlerEntry),
	}
}

// Root returns the scene's root group.
func (s *Scene) Root() *Node {
	return s.root
}

// Add attaches nodes to the root group.
func (s *Scene) Add(nodes ...*Node) {
	s.root.Add(nodes...)
}

// Remove detaches n, drops the handlers of its whole subtree and releases
// any pointer capture running through it.
func (s *Scene) Remove(n *Node) {
	n.Detach()
	var forget func(*Node)
	forget = func(x *Node) {
		delete(s.handlers, x.handle)
		for _, c := range x.children {
			forget(c)
		}
	}
	forget(n)
	for _, c := range s.captured {
		if c == n {
			s.captured = nil
			break
		}
	}
}

// On registers fn for events of type t reaching n.
func (s *Scene) On(n *Node, t EventType, fn Handler) Subscription {
	byType := s.handlers[n.handle]
	if byType == nil {
		byType = make(map[EventType][]handlerEntry)
		s.handlers[n.handle] = byType
	}
	s.nextID++
	byType[t] = append(byType[t], handlerEntry{id: s.nextID, fn: fn})
	return Subscription{scene: s, handle: n.handle, event: t, id: s.nextID}
}

// HandlerCount returns how many handlers of type t are registered on n.
func (s *Scene) HandlerCount(n *Node, t EventType) int {
	return len(s.handlers[n.handle][t])
}

// Captured reports whether a long press currently holds the pointer.
func (s *Scene) Captured() bool {
	return len(s.captured) > 0
}

// Pick hit-tests p against the visible, interactable nodes of the tree.
func (s *Scene) Pick(p Point, opts PickOptions) PickResult {
	root := opts.Root
	if root == nil {
		root = s.root
	}

	candidates := collect(root, nil, true)
	var res PickResult

	if !opts.Through {
		// Reverse painter order: topmost first
		for i := len(candidates) - 1; i >= 0; i-- {
			if candidates[i].Contains(p) {
				res.Target = candidates[i]
				return res
			}
		}
		return res
	}

	for _, n := range candidates {
		if n.Contains(p) {
			res.Path = append(res.Path, n)
		}
	}
	if len(res.Path) > 0 {
		res.Target = res.Path[len(res.Path)-1]
	}
	return res
}

// Dispatch delivers a pointer event. Tap, long press and unmatched up events
// go to the topmost node under the pointer and bubble to its ancestors. A long
// press captures that path: later drag and up events go to it regardless of
// where the pointer is, and drag events first translate the nearest draggable
// node on the path.
func (s *Scene) Dispatch(ev Event) {
	switch ev.Type {
	case EventTap:
		s.deliver(s.hitPath(ev.Point), ev)
	case EventLongPress:
		path := s.hitPath(ev.Point)
		s.captured = path
		s.deliver(path, ev)
	case EventDrag:
		if len(s.captured) == 0 {
			return
		}
		for _, n := range s.captured {
			if n.Draggable {
				n.Move(ev.Delta.X, ev.Delta.Y)
				break
			}
		}
		s.deliver(s.captured, ev)
	case EventUp:
		path := s.captured
		s.captured = nil
		if len(path) == 0 {
			path = s.hitPath(ev.Point)
		}
		s.deliver(path, ev)
	}
}

// hitPath returns the topmost node under p followed by its ancestors.
func (s *Scene) hitPath(p Point) []*Node {
	target := s.Pick(p, PickOptions{}).Target
	var path []*Node
	for n := target; n != nil; n = n.parent {
		path = append(path, n)
	}
	return path
}

func (s *Scene) deliver(path []*Node, ev Event) {
	if len(path) == 0 {
		return
	}
	ev.Target = path[0]
	for _, n := range path {
		entries := s.handlers[n.handle][ev.Type]
		if len(entries) == 0 {
			continue
		}
		// Handlers may register or remove handlers while running
		snapshot := make([]handlerEntry, len(entries))
		copy(snapshot, entries)
		ev.Current = n
		for _, h := range snapshot {
			h.fn(&ev)
		}
	}
}
