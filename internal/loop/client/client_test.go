package client

import (
	"bufio"
	"bytes"
	"io"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tomz197/target/internal/loop/server"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

// eventually polls cond until it holds or the deadline passes.
func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestLayout(t *testing.T) {
	Convey("Given an 80x24 terminal", t, func() {
		l := computeLayout(80, 24)

		Convey("The canvas is the largest square left of the panel", func() {
			So(l.canvasCols, ShouldEqual, 42)
			So(l.canvasRows, ShouldEqual, 21)
			So(l.offsetCol, ShouldEqual, 5)
			So(l.offsetRow, ShouldEqual, 1)
			So(l.hudCol, ShouldEqual, 53)
		})
	})

	Convey("Given a wide terminal", t, func() {
		l := computeLayout(200, 30)

		Convey("Height limits the canvas and it is centred", func() {
			So(l.canvasRows, ShouldEqual, 27)
			So(l.canvasCols, ShouldEqual, 54)
			So(l.offsetCol, ShouldEqual, 1+(170-54)/2)
		})
	})

	Convey("Given a tiny terminal", t, func() {
		l := computeLayout(10, 5)

		Convey("The canvas keeps its minimum size", func() {
			So(l.canvasCols, ShouldEqual, 20)
			So(l.canvasRows, ShouldEqual, 10)
		})
	})
}

func TestSession(t *testing.T) {
	Convey("Given a running session", t, func() {
		srv := server.NewServer()
		pr, pw := io.Pipe()
		var out bytes.Buffer

		c := NewClient(srv, bufio.NewReader(pr), &out, ClientOptions{
			TermSizeFunc: fixedSize(80, 24),
			Username:     "tester",
		})
		So(srv.ActiveCount(), ShouldEqual, 1)

		done := make(chan error, 1)
		go func() { done <- c.Run() }()

		// Cell (27, 12) in 1-based SGR coordinates is the middle of the
		// canvas in an 80x24 layout.
		tap := "\x1b[<0;27;12M\x1b[<0;27;12m"

		Convey("A click shoots the bullseye and q quits", func() {
			_, err := io.WriteString(pw, tap)
			So(err, ShouldBeNil)
			So(eventually(func() bool { return c.App().Ledger().Len() == 1 }), ShouldBeTrue)

			entries := c.App().Ledger().Entries()
			So(entries[0].ID, ShouldEqual, 1)
			So(entries[0].Score, ShouldEqual, 10)

			Convey("r clears the scores", func() {
				_, err := io.WriteString(pw, "r")
				So(err, ShouldBeNil)
				So(eventually(func() bool { return c.App().Ledger().Len() == 0 }), ShouldBeTrue)
			})

			_, err = io.WriteString(pw, "q")
			So(err, ShouldBeNil)
			select {
			case err := <-done:
				So(err, ShouldBeNil)
			case <-time.After(2 * time.Second):
				So("client did not stop", ShouldBeEmpty)
			}
			So(srv.ActiveCount(), ShouldEqual, 0)
			So(out.String(), ShouldContainSubstring, "\x1b[?1000h")
			So(out.String(), ShouldContainSubstring, "TARGET")
			So(out.String(), ShouldContainSubstring, "\x1b[?1000l")
		})

		Reset(func() {
			pw.Close()
		})
	})
}
