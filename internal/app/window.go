//go:build ebiten

package app

import (
	"context"
	"errors"
	"sync"

	"simplevo/internal/core"
	"simplevo/internal/render"
	"simplevo/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Window adapts published frames to the ebiten.Game interface. The engine
// runs on its own goroutine; Present hands frames over under a lock.
type Window struct {
	mu     sync.Mutex
	pix    []byte
	frame  core.Frame
	fresh  bool
	frozen bool

	painter *render.FramePainter
	overlay *ui.Overlay

	screen core.Size
	scale  int
	title  string

	cancel   context.CancelFunc
	done     chan error
	result   error
	finished bool
}

// NewWindow constructs a window display.
func NewWindow(opts core.DisplayOptions) *Window {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	return &Window{
		overlay: ui.NewOverlay(opts.Lines, opts.Params),
		screen:  opts.Screen,
		scale:   scale,
		title:   opts.Title,
		done:    make(chan error, 1),
	}
}

// Name identifies the display.
func (w *Window) Name() string { return "window" }

// Present copies the frame for the next Draw. Frozen windows drop frames.
func (w *Window) Present(f core.Frame) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.frozen {
		return
	}
	w.pix = append(w.pix[:0], f.Pix...)
	w.frame = core.Frame{Seq: f.Seq, Size: f.Size, Pix: w.pix, Blank: f.Blank}
	w.fresh = true
}

// Serve runs work on a goroutine and the ebiten loop on the caller's.
func (w *Window) Serve(ctx context.Context, work func(context.Context) error) error {
	ctx, w.cancel = context.WithCancel(ctx)
	defer w.cancel()
	go func() { w.done <- work(ctx) }()

	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowSize(w.screen.W*w.scale, w.screen.H*w.scale)
	err := ebiten.RunGame(w)
	w.cancel()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	if !w.finished {
		// The window was closed first; wait for the engine to stop.
		w.result = <-w.done
	}
	return w.result
}

// Update handles keys and notices when the engine has finished.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		w.cancel()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.mu.Lock()
		w.frozen = !w.frozen
		w.mu.Unlock()
	}
	w.overlay.Update()

	select {
	case err := <-w.done:
		w.result = err
		w.finished = true
		return ebiten.Termination
	default:
	}
	return nil
}

// Draw renders the most recent frame and the overlay.
func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	if w.fresh {
		// The painter resizes itself when the frame size changes.
		if w.painter == nil {
			w.painter = render.NewFramePainter(w.frame.Size.W, w.frame.Size.H)
		}
		w.painter.Upload(w.frame)
		w.fresh = false
	}
	w.mu.Unlock()

	if w.painter != nil {
		w.painter.Blit(screen, w.scale)
	}
	w.overlay.Draw(screen)
}

// Layout returns the logical screen size.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.screen.W * w.scale, w.screen.H * w.scale
}

func init() {
	core.RegisterDisplay("window", func(opts core.DisplayOptions) (core.Display, error) {
		return NewWindow(opts), nil
	})
}
