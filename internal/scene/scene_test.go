package scene

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPaintOrder(t *testing.T) {
	Convey("Given siblings inserted out of z order", t, func() {
		outer := NewEllipse(0, 0, 40, 40, "#fff")
		outer.ZIndex = 90
		inner := NewEllipse(0, 0, 20, 20, "#000")
		inner.ZIndex = 99
		hidden := NewEllipse(0, 0, 10, 10, "#f00")
		hidden.Visible = false
		root := NewGroup("g", inner, outer, hidden)

		Convey("Then painting goes parent first, then by ascending ZIndex", func() {
			So(PaintOrder(root), ShouldResemble, []*Node{root, outer, inner})
		})
	})
}

func TestPick(t *testing.T) {
	Convey("Given two nested circles and a decoration", t, func() {
		sc := New()
		outer := NewEllipse(100, 100, 80, 80, "#fff")
		outer.ID = "outer"
		outer.ZIndex = 1
		inner := NewEllipse(100, 100, 40, 40, "#000")
		inner.ID = "inner"
		inner.ZIndex = 2
		deco := NewEllipse(100, 100, 10, 10, "transparent")
		deco.ID = "deco"
		deco.ZIndex = 3
		deco.Interactable = false
		sc.Add(outer, inner, deco)

		Convey("When picking through at the centre", func() {
			res := sc.Pick(Point{X: 100, Y: 100}, PickOptions{Through: true})

			Convey("Then every interactable shape is listed bottom first", func() {
				So(res.Path, ShouldResemble, []*Node{outer, inner})
				So(res.Target, ShouldEqual, inner)
			})
		})

		Convey("When picking between the two radii", func() {
			res := sc.Pick(Point{X: 130, Y: 100}, PickOptions{})
			So(res.Target, ShouldEqual, outer)
			So(res.Path, ShouldBeEmpty)
		})

		Convey("When picking outside everything", func() {
			res := sc.Pick(Point{X: 500, Y: 500}, PickOptions{Through: true})
			So(res.Target, ShouldBeNil)
			So(res.Path, ShouldBeEmpty)
		})

		Convey("When the pick is limited to a subtree", func() {
			other := NewGroup("other", NewEllipse(100, 100, 200, 200, "#0f0"))
			sc.Add(other)
			res := sc.Pick(Point{X: 100, Y: 100}, PickOptions{Through: true, Root: other})
			So(res.Path, ShouldHaveLength, 1)
			So(res.Path[0].Parent(), ShouldEqual, other)
		})
	})
}

func TestSizedGroupHit(t *testing.T) {
	Convey("A sized group is hit anywhere inside its rectangle", t, func() {
		g := NewGroup("")
		g.Width, g.Height = 50, 50
		So(g.Contains(Point{X: 25, Y: 49}), ShouldBeTrue)
		So(g.Contains(Point{X: 51, Y: 10}), ShouldBeFalse)

		Convey("And an unsized group is never hit", func() {
			So(NewGroup("x").Contains(Point{}), ShouldBeFalse)
		})
	})
}

func TestLineHit(t *testing.T) {
	Convey("A vertical line is hit along its length", t, func() {
		l := NewLine(10, 0, 20, true, "#fff")
		So(l.Contains(Point{X: 10, Y: 15}), ShouldBeTrue)
		So(l.Contains(Point{X: 12, Y: 15}), ShouldBeFalse)
	})
}

func TestNodeTree(t *testing.T) {
	Convey("Given a group with a nested child", t, func() {
		child := NewEllipse(5, 5, 2, 2, "")
		child.ID = "dot"
		inner := NewGroup("inner", child)
		g := NewGroup("outer", inner)

		Convey("Then Find locates it by id", func() {
			So(g.Find("dot"), ShouldEqual, child)
			So(g.Find("missing"), ShouldBeNil)
		})

		Convey("Then Move translates the whole subtree", func() {
			g.Move(3, -1)
			So(child.X, ShouldEqual, 8)
			So(child.Y, ShouldEqual, 4)
		})

		Convey("Then re-parenting detaches from the old parent", func() {
			other := NewGroup("other")
			other.Add(child)
			So(inner.Children(), ShouldBeEmpty)
			So(child.Parent(), ShouldEqual, other)
		})

		Convey("Then handles are unique", func() {
			So(child.Handle(), ShouldNotEqual, inner.Handle())
		})
	})
}

func TestDispatch(t *testing.T) {
	Convey("Given a draggable group with a dot inside a background", t, func() {
		sc := New()
		bg := NewGroup("")
		bg.Width, bg.Height = 200, 200
		dot := NewEllipse(50, 50, 10, 10, "gray")
		marker := NewGroup("marker", dot)
		marker.ZIndex = 10
		bg.Add(marker)
		sc.Add(bg)

		var got []string
		sc.On(bg, EventTap, func(ev *Event) { got = append(got, "bg:tap") })
		sc.On(marker, EventLongPress, func(ev *Event) {
			got = append(got, "marker:long_press")
			So(ev.Target, ShouldEqual, dot)
			So(ev.Current, ShouldEqual, marker)
			marker.Draggable = true
		})
		sc.On(marker, EventDrag, func(ev *Event) { got = append(got, "marker:drag") })
		sc.On(marker, EventUp, func(ev *Event) { got = append(got, "marker:up") })

		Convey("When tapping the dot", func() {
			sc.Dispatch(Event{Type: EventTap, Point: Point{X: 50, Y: 50}})

			Convey("Then the tap bubbles to the background", func() {
				So(got, ShouldResemble, []string{"bg:tap"})
			})
		})

		Convey("When long-pressing and dragging the dot", func() {
			sc.Dispatch(Event{Type: EventLongPress, Point: Point{X: 50, Y: 50}})
			So(sc.Captured(), ShouldBeTrue)
			sc.Dispatch(Event{Type: EventDrag, Point: Point{X: 150, Y: 60}, Delta: Point{X: 100, Y: 10}})
			sc.Dispatch(Event{Type: EventUp, Point: Point{X: 150, Y: 60}})

			Convey("Then the captured path receives every event", func() {
				So(got, ShouldResemble, []string{"marker:long_press", "marker:drag", "marker:up"})
				So(sc.Captured(), ShouldBeFalse)
			})

			Convey("Then the draggable group moved by the delta", func() {
				So(dot.X, ShouldEqual, 150)
				So(dot.Y, ShouldEqual, 60)
			})
		})

		Convey("When dragging without a long press", func() {
			sc.Dispatch(Event{Type: EventDrag, Point: Point{X: 60, Y: 60}, Delta: Point{X: 10, Y: 10}})

			Convey("Then nothing receives it", func() {
				So(got, ShouldBeEmpty)
				So(dot.X, ShouldEqual, 50)
			})
		})

		Convey("When a subscription is removed", func() {
			sub := sc.On(bg, EventTap, func(ev *Event) { got = append(got, "extra") })
			So(sc.HandlerCount(bg, EventTap), ShouldEqual, 2)
			sub.Remove()
			sub.Remove()
			So(sc.HandlerCount(bg, EventTap), ShouldEqual, 1)
		})

		Convey("When the marker is removed from the scene", func() {
			sc.Dispatch(Event{Type: EventLongPress, Point: Point{X: 50, Y: 50}})
			sc.Remove(marker)

			Convey("Then its handlers and the capture are gone", func() {
				So(sc.HandlerCount(marker, EventDrag), ShouldEqual, 0)
				So(sc.Captured(), ShouldBeFalse)
				So(bg.Children(), ShouldBeEmpty)
			})
		})
	})
}

func TestEventTypeString(t *testing.T) {
	Convey("Event types have readable names", t, func() {
		So(EventLongPress.String(), ShouldEqual, "long_press")
		So(EventType(42).String(), ShouldEqual, "unknown")
	})
}
