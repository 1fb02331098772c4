// Package termview shows frames in a terminal using tcell. Each cell carries
// two vertically stacked pixels drawn as an upper half block; the bottom row
// holds the latest teletype line.
package termview

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"

	"simplevo/internal/core"
)

const halfBlock = '▀'

var statusStyle = tcell.StyleDefault.
	Foreground(tcell.NewRGBColor(180, 255, 180)).
	Background(tcell.NewRGBColor(16, 16, 20))

// View is a core.Display drawing into a tcell.Screen.
type View struct {
	mu     sync.Mutex
	screen tcell.Screen
	owned  bool
	inited bool

	lines  func() []string
	title  string
	frames uint64
}

// New opens the process terminal. The screen is initialised by Serve.
func New(opts core.DisplayOptions) (*View, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	v := NewWithScreen(s, opts)
	v.owned, v.inited = true, false
	return v, nil
}

// NewWithScreen draws into an already initialised screen. The caller keeps
// ownership and must Fini it.
func NewWithScreen(s tcell.Screen, opts core.DisplayOptions) *View {
	return &View{screen: s, inited: true, lines: opts.Lines, title: opts.Title}
}

// Name identifies the display.
func (v *View) Name() string { return "term" }

// Frames reports how many frames were drawn.
func (v *View) Frames() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frames
}

// Present draws f scaled to the terminal and shows it.
func (v *View) Present(f core.Frame) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.inited {
		return
	}
	v.frames++

	cols, rows := v.screen.Size()
	rows-- // status line
	if cols <= 0 || rows <= 0 {
		return
	}
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top := sample(f, cx, 2*cy, cols, 2*rows)
			bot := sample(f, cx, 2*cy+1, cols, 2*rows)
			v.screen.SetContent(cx, cy, halfBlock, nil, tcell.StyleDefault.Foreground(top).Background(bot))
		}
	}
	v.drawStatus(cols, rows)
	v.screen.Show()
}

func (v *View) drawStatus(cols, row int) {
	status := v.title
	if v.lines != nil {
		if lines := v.lines(); len(lines) > 0 {
			status = lines[len(lines)-1]
		}
	}
	x := 0
	for _, r := range status {
		if x >= cols {
			break
		}
		v.screen.SetContent(x, row, r, nil, statusStyle)
		x++
	}
	for ; x < cols; x++ {
		v.screen.SetContent(x, row, ' ', nil, statusStyle)
	}
}

// sample maps cell pixel (px, py) of a cols x rows grid onto the frame.
func sample(f core.Frame, px, py, cols, rows int) tcell.Color {
	if f.Blank || f.Size.W <= 0 || f.Size.H <= 0 {
		return tcell.NewRGBColor(0, 0, 0)
	}
	x := px * f.Size.W / cols
	y := py * f.Size.H / rows
	i := (y*f.Size.W + x) * 3
	if i+2 >= len(f.Pix) {
		return tcell.NewRGBColor(0, 0, 0)
	}
	return tcell.NewRGBColor(int32(f.Pix[i]), int32(f.Pix[i+1]), int32(f.Pix[i+2]))
}

// Serve runs work on the calling goroutine while a second goroutine polls
// the terminal. q, Esc and Ctrl-C cancel the context passed to work. The
// polling goroutine has exited by the time Serve returns.
func (v *View) Serve(ctx context.Context, work func(context.Context) error) error {
	if v.owned {
		if err := v.screen.Init(); err != nil {
			return err
		}
		v.mu.Lock()
		v.inited = true
		v.mu.Unlock()
		defer func() {
			v.mu.Lock()
			v.inited = false
			v.mu.Unlock()
			v.screen.Fini()
		}()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := &stopPolling{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if quitKey(ev) {
					cancel()
				}
			case *tcell.EventResize:
				v.screen.Sync()
			case *tcell.EventInterrupt:
				if ev.Data() == stop {
					return
				}
			}
		}
	}()

	err := work(ctx)
	// A screen we do not own keeps running; hand its event queue back.
	if v.screen.PostEvent(tcell.NewEventInterrupt(stop)) == nil {
		<-done
	}
	return err
}

// stopPolling marks the interrupt that ends one Serve's event loop.
type stopPolling struct{ _ byte }

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

func init() {
	core.RegisterDisplay("term", func(opts core.DisplayOptions) (core.Display, error) {
		v, err := New(opts)
		if err != nil {
			return nil, err
		}
		return v, nil
	})
}
