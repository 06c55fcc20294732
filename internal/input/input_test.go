package input

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func feed(s *Stream, data string) {
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
}

func TestParse(t *testing.T) {
	Convey("Given plain keys", t, func() {
		Convey("q and ctrl-c quit", func() {
			in, _ := Parse([]byte("q"))
			So(in.Quit, ShouldBeTrue)
			in, _ = Parse([]byte{'\x03'})
			So(in.Quit, ShouldBeTrue)
		})

		Convey("r resets", func() {
			in, rest := Parse([]byte("r"))
			So(in.Reset, ShouldBeTrue)
			So(in.Quit, ShouldBeFalse)
			So(in.Pressed, ShouldResemble, []byte("r"))
			So(rest, ShouldBeEmpty)
		})
	})

	Convey("Given SGR mouse reports", t, func() {
		Convey("A left press is decoded with 0-based cells", func() {
			in, _ := Parse([]byte("\x1b[<0;10;5M"))
			So(in.Mouse, ShouldResemble, []MouseEvent{{Action: MousePress, Button: ButtonLeft, X: 9, Y: 4}})
			So(in.Pressed, ShouldBeEmpty)
		})

		Convey("Press, drag and release arrive in order", func() {
			in, _ := Parse([]byte("\x1b[<0;10;5M\x1b[<32;12;6M\x1b[<0;12;6m"))
			So(in.Mouse, ShouldResemble, []MouseEvent{
				{Action: MousePress, Button: ButtonLeft, X: 9, Y: 4},
				{Action: MouseMove, Button: ButtonLeft, X: 11, Y: 5},
				{Action: MouseRelease, Button: ButtonLeft, X: 11, Y: 5},
			})
		})

		Convey("Legacy release reports use button 3", func() {
			in, _ := Parse([]byte("\x1b[<3;1;1M"))
			So(in.Mouse[0].Action, ShouldEqual, MouseRelease)
			So(in.Mouse[0].Button, ShouldEqual, ButtonNone)
		})

		Convey("Wheel reports are flagged", func() {
			in, _ := Parse([]byte("\x1b[<64;1;1M"))
			So(in.Mouse[0].Button, ShouldEqual, ButtonWheel)
		})

		Convey("An unfinished report is handed back", func() {
			in, rest := Parse([]byte("r\x1b[<0;10"))
			So(in.Reset, ShouldBeTrue)
			So(in.Mouse, ShouldBeEmpty)
			So(string(rest), ShouldEqual, "\x1b[<0;10")
		})

		Convey("A malformed report is dropped without eating later keys", func() {
			in, rest := Parse([]byte("\x1b[<a;1;1Mq"))
			So(in.Mouse, ShouldBeEmpty)
			So(in.Quit, ShouldBeTrue)
			So(rest, ShouldBeEmpty)
		})
	})

	Convey("Unbound CSI sequences are skipped", t, func() {
		in, _ := Parse([]byte("\x1b[A\x1b[3~r"))
		So(in.Reset, ShouldBeTrue)
		So(in.Pressed, ShouldResemble, []byte("r"))
	})
}

func TestReadInput(t *testing.T) {
	Convey("Given a stream", t, func() {
		s := &Stream{ch: make(chan byte, 64)}

		Convey("A report split across reads is completed", func() {
			feed(s, "\x1b[<0;4")
			first := ReadInput(s)
			So(first.Mouse, ShouldBeEmpty)

			feed(s, ";2M")
			second := ReadInput(s)
			So(second.Mouse, ShouldResemble, []MouseEvent{{Action: MousePress, X: 3, Y: 1}})
		})

		Convey("A closed stream quits", func() {
			close(s.ch)
			in := ReadInput(s)
			So(in.Quit, ShouldBeTrue)
			So(s.Closed(), ShouldBeTrue)
		})
	})
}

func TestMouseModes(t *testing.T) {
	Convey("Mouse reporting is switched on and off", t, func() {
		var buf bytes.Buffer
		So(EnableMouse(&buf), ShouldBeNil)
		So(buf.String(), ShouldEqual, "\x1b[?1000h\x1b[?1002h\x1b[?1006h")

		buf.Reset()
		So(DisableMouse(&buf), ShouldBeNil)
		So(buf.String(), ShouldEqual, "\x1b[?1006l\x1b[?1002l\x1b[?1000l")
	})

	Convey("Mouse actions have names", t, func() {
		So(MousePress.String(), ShouldEqual, "press")
		So(MouseMove.String(), ShouldEqual, "move")
		So(MouseRelease.String(), ShouldEqual, "release")
		So(MouseAction(9).String(), ShouldEqual, "unknown")
	})
}
