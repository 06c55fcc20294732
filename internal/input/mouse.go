package input

import (
	"io"
	"strconv"
)

// Mouse reporting modes: button events, button-motion tracking, SGR
// extended coordinates.
const (
	enableMouse  = "\x1b[?1000h\x1b[?1002h\x1b[?1006h"
	disableMouse = "\x1b[?1006l\x1b[?1002l\x1b[?1000l"
)

// EnableMouse asks the terminal to report presses, drags and releases.
func EnableMouse(w io.Writer) error {
	_, err := io.WriteString(w, enableMouse)
	return err
}

// DisableMouse turns mouse reporting back off.
func DisableMouse(w io.Writer) error {
	_, err := io.WriteString(w, disableMouse)
	return err
}

// MouseAction is what the pointer did.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseMove
	MouseRelease
)

func (a MouseAction) String() string {
	switch a {
	case MousePress:
		return "press"
	case MouseMove:
		return "move"
	case MouseRelease:
		return "release"
	default:
		return "unknown"
	}
}

// MouseButton identifies the button of a mouse report.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonMiddle
	ButtonRight
	ButtonNone
	ButtonWheel
)

// MouseEvent is a decoded mouse report. X and Y are 0-based terminal cells.
type MouseEvent struct {
	Action MouseAction
	Button MouseButton
	X, Y   int
}

// parseSGRMouse decodes ESC [ < Btn ; X ; Y (M|m) at the start of data.
// n is the sequence length, 0 if it is incomplete. ok is false for
// malformed sequences, which are still consumed.
func parseSGRMouse(data []byte) (n int, ev MouseEvent, ok bool) {
	end := 3
	for end < len(data) && end < maxPending {
		if data[end] == 'M' || data[end] == 'm' {
			break
		}
		end++
	}
	if end >= len(data) {
		if len(data) >= maxPending {
			return 3, MouseEvent{}, false
		}
		return 0, MouseEvent{}, false
	}
	if end >= maxPending {
		return 3, MouseEvent{}, false
	}

	btn, x, y, valid := parseSGRParams(data[3:end])
	if !valid || x < 1 || y < 1 {
		return end + 1, MouseEvent{}, false
	}

	ev = MouseEvent{X: x - 1, Y: y - 1}

	// Bits 0-1: button (3 = none), bit 5: motion, bit 6: wheel
	switch {
	case btn&64 != 0:
		ev.Button = ButtonWheel
	default:
		ev.Button = MouseButton(btn & 0x03)
	}

	switch {
	case data[end] == 'm':
		ev.Action = MouseRelease
	case btn&32 != 0:
		ev.Action = MouseMove
	case ev.Button == ButtonNone:
		// Legacy release report
		ev.Action = MouseRelease
	default:
		ev.Action = MousePress
	}
	return end + 1, ev, true
}

// parseSGRParams splits "btn;x;y".
func parseSGRParams(params []byte) (btn, x, y int, ok bool) {
	var fields [3]int
	idx, start := 0, 0
	for i := 0; i <= len(params); i++ {
		if i < len(params) && params[i] != ';' {
			continue
		}
		if idx >= len(fields) {
			return 0, 0, 0, false
		}
		v, err := strconv.Atoi(string(params[start:i]))
		if err != nil {
			return 0, 0, 0, false
		}
		fields[idx] = v
		idx++
		start = i + 1
	}
	if idx != len(fields) {
		return 0, 0, 0, false
	}
	return fields[0], fields[1], fields[2], true
}
