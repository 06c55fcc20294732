package input

import (
	"bufio"
)

// maxPending caps how many bytes of an unfinished escape sequence are kept
// between reads.
const maxPending = 32

// Input is everything read from the terminal since the previous frame.
type Input struct {
	Quit    bool
	Reset   bool
	Mouse   []MouseEvent
	Pressed []byte // Plain key bytes, escape sequences excluded
}

// Stream delivers input bytes via a channel and keeps unfinished escape
// sequences until the rest of them arrives.
type Stream struct {
	ch      chan byte
	pending []byte
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// decodes keys and SGR mouse reports.
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in, rest := Parse(buf)
	if len(rest) > 0 && len(rest) <= maxPending && !s.closed {
		s.pending = append([]byte(nil), rest...)
	}
	if s.closed {
		in.Quit = true
	}
	return in
}

// Parse decodes buf. An escape sequence cut off at the end of buf is
// returned as rest so it can be completed by the next read.
func Parse(buf []byte) (in Input, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			if i+1 >= len(buf) {
				return in, buf[i:]
			}
			if buf[i+1] != '[' {
				// Lone escape or alt-key; neither is bound
				continue
			}
			if i+2 >= len(buf) {
				return in, buf[i:]
			}
			if buf[i+2] == '<' {
				n, ev, ok := parseSGRMouse(buf[i:])
				if n == 0 {
					return in, buf[i:]
				}
				if ok {
					in.Mouse = append(in.Mouse, ev)
				}
				i += n - 1
				continue
			}
			n := skipCSI(buf[i:])
			if n == 0 {
				return in, buf[i:]
			}
			i += n - 1
			continue
		}

		applyByte(&in, b)
	}
	return in, nil
}

// applyByte handles a single plain key.
func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'r', 'R':
		in.Reset = true
	}
	in.Pressed = append(in.Pressed, b)
}

// skipCSI returns the length of the CSI sequence at the start of data
// (arrow keys and the like, which are not bound), or 0 if it is incomplete.
func skipCSI(data []byte) int {
	for end := 2; end < len(data) && end < maxPending; end++ {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			return end + 1
		}
	}
	if len(data) >= maxPending {
		// Garbage; drop the introducer and resync
		return 2
	}
	return 0
}
