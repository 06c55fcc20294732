package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/target/internal/app"
	appconfig "github.com/tomz197/target/internal/config"
	"github.com/tomz197/target/internal/draw"
	"github.com/tomz197/target/internal/haptic"
	"github.com/tomz197/target/internal/input"
	"github.com/tomz197/target/internal/ledger"
	"github.com/tomz197/target/internal/loop/config"
	"github.com/tomz197/target/internal/loop/server"
	"github.com/tomz197/target/internal/scene"
	"github.com/tomz197/target/internal/target"
	"github.com/tomz197/target/pkg/metrics"
)

// Client runs one terminal session: it owns a target, feeds it pointer
// gestures and renders it with a score panel.
type Client struct {
	server       server.SessionServer
	handle       *server.ClientHandle
	state        *ClientState
	app          *app.App
	scene        *scene.Scene
	canvas       *draw.Canvas
	renderer     *draw.SceneRenderer
	palette      *draw.Palette
	chunkWriter  *draw.ChunkWriter // Accumulates frame output for chunked writes
	writer       io.Writer
	inputStream  *input.Stream
	recognizer   *input.Recognizer
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	layout       layout

	// Ring fill per score, for the HUD
	swatches map[int]colorful.Color

	log *log.Logger
	now func() time.Time
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Config       *appconfig.Config // Defaults when nil
	Recorder     metrics.Recorder
	Logger       *log.Logger
	Palette      *draw.Palette // Shared parse cache; private when nil
}

// NewClient creates a session registered with the given server.
func NewClient(gs server.SessionServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = appconfig.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	palette := opts.Palette
	if palette == nil {
		palette = draw.NewPalette()
	}

	handle := gs.RegisterClient(opts.Username)
	logger = logger.With("session", handle.ID)

	chunkWriter := draw.NewChunkWriter(w)
	sc := scene.New()
	a := app.New(sc,
		app.WithLogger(logger),
		app.WithRecorder(recorder),
		app.WithSettle(cfg.LedgerDebounce),
		app.WithTargetOptions(
			target.WithConfig(cfg.Target()),
			target.WithVibrator(haptic.NewBell(chunkWriter, cfg.Haptics)),
		),
	)
	a.Initialize()

	c := &Client{
		server:       gs,
		handle:       handle,
		state:        NewClientState(),
		app:          a,
		scene:        sc,
		palette:      palette,
		renderer:     draw.NewSceneRenderer(palette),
		chunkWriter:  chunkWriter,
		writer:       w,
		inputStream:  input.StartStream(r),
		recognizer:   input.NewRecognizer(cfg.LongPress, cfg.DragDeadZone),
		lastInput:    time.Now(),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		swatches:     make(map[int]colorful.Color),
		log:          logger,
		now:          time.Now,
	}

	for _, rc := range cfg.Rings {
		if col, ok := palette.Parse(rc.Fill); ok {
			if _, seen := c.swatches[rc.Score]; !seen {
				c.swatches[rc.Score] = col
			}
		}
	}

	// Ledger and dragging changes happen on the loop goroutine
	a.Ledger().Subscribe(func([]ledger.Entry) { c.state.dirty = true })
	a.DraggingIndex().Subscribe(func(int) { c.state.dirty = true })

	width, height, _ := termSizeFunc()
	c.layout = computeLayout(width, height)
	c.canvas = draw.NewScaledCanvas(c.layout.canvasCols, c.layout.canvasRows, cfg.TargetWidth, cfg.TargetHeight)
	c.canvas.SetOffset(c.layout.offsetCol, c.layout.offsetRow)
	return c
}

// Run starts the client loop. Blocks until the client disconnects or the
// server shuts it down.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	if err := input.EnableMouse(c.writer); err != nil {
		return err
	}
	defer input.DisableMouse(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := c.now()

	for c.state.Running {
		frameStart := c.now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput(frameStart)
		c.processServerEvents()
		c.updateScreen()

		if c.state.State == SessionStateShutdown {
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			c.server.UnregisterClient(c.handle.ID)
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.server.UnregisterClient(c.handle.ID)
	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads keys and mouse reports and turns them into scene
// events.
func (c *Client) processInput(now time.Time) {
	in := input.ReadInput(c.inputStream)

	if len(in.Pressed) > 0 || len(in.Mouse) > 0 {
		c.lastInput = now
		c.state.isInactive = false
	} else if now.Sub(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.log.Info("disconnecting inactive session")
		c.state.Running = false
	} else if now.Sub(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if in.Quit {
		c.state.Running = false
		return
	}
	if c.state.State != SessionStateShooting {
		return
	}

	if in.Reset {
		c.app.Reset()
		c.state.dirty = true
	}

	for _, m := range in.Mouse {
		c.handleMouse(m, now)
	}
	c.dispatch(c.recognizer.Tick(now))
}

// handleMouse feeds one mouse report to the gesture recognizer.
func (c *Client) handleMouse(m input.MouseEvent, now time.Time) {
	if m.Button == input.ButtonWheel {
		return
	}
	x, y, inside := c.canvas.TerminalToLogical(m.X, m.Y)
	p := scene.Point{X: x, Y: y}

	switch m.Action {
	case input.MousePress:
		if m.Button != input.ButtonLeft || !inside {
			return
		}
		c.dispatch(c.recognizer.Press(p, now))
	case input.MouseMove:
		c.dispatch(c.recognizer.Move(p, now))
	case input.MouseRelease:
		c.dispatch(c.recognizer.Release(p, now))
	}
}

func (c *Client) dispatch(evs []scene.Event) {
	for _, ev := range evs {
		c.scene.Dispatch(ev)
		c.state.dirty = true
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			if event.Type == server.EventServerShutdown {
				c.state.State = SessionStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize. On actual size changes the
// terminal is cleared to remove residual output outside the new layout.
func (c *Client) updateScreen() {
	width, height, err := c.termSizeFunc()
	if err != nil {
		return
	}
	l := computeLayout(width, height)
	if l == c.layout {
		return
	}
	c.layout = l
	draw.ClearScreen(c.chunkWriter)
	c.canvas.Resize(l.canvasCols, l.canvasRows)
	c.canvas.SetOffset(l.offsetCol, l.offsetRow)
	c.state.dirty = true
}

// updateShutdownState counts down to the automatic disconnect.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// App returns the session's application, mainly for tests.
func (c *Client) App() *app.App {
	return c.app
}
