package demo

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

//go:embed firmware.star
var firmwareScript []byte

// FirmwareScript returns the built-in demo sequence.
func FirmwareScript() []byte { return firmwareScript }

var ErrScript = errors.New("demo script failed")

// ScriptError wraps a Starlark failure with the script name.
type ScriptError struct {
	Name string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrScript, e.Name, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

func (e *ScriptError) Is(err error) bool { return err == ErrScript }

// RunScript executes a Starlark demo script against the machine. Script
// builtins:
//
//	print_term(s)             stream s to the terminal
//	put_byte(n)               stream one byte
//	stream(s, frames=1)       stream s one byte at a time, drawing frames after each
//	draw_frames(n)            run n ticks, n < 0 runs until cancelled
//	blank(), unblank()        toggle display output
//	width(), height()         screen size
//	frames()                  ticks drawn so far
//
// Cancelling ctx stops the script between ticks and returns ctx.Err().
func (m *Machine) RunScript(ctx context.Context, name string, src []byte) error {
	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("%s: %s", name, msg)
		},
	}
	stop := context.AfterFunc(ctx, func() { thread.Cancel("context cancelled") })
	defer stop()

	opts := &syntax.FileOptions{TopLevelControl: true, GlobalReassign: true, While: true}
	_, err := starlark.ExecFileOptions(opts, thread, name, src, m.builtins(ctx))
	if cerr := ctx.Err(); cerr != nil {
		return cerr
	}
	if err != nil {
		return &ScriptError{Name: name, Err: err}
	}
	return nil
}

func (m *Machine) builtins(ctx context.Context) starlark.StringDict {
	none := func(fn func()) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
		return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
				return nil, err
			}
			fn()
			return starlark.None, nil
		}
	}
	integer := func(fn func() int) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
		return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
				return nil, err
			}
			return starlark.MakeInt(fn()), nil
		}
	}

	return starlark.StringDict{
		"print_term": starlark.NewBuiltin("print_term", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var s string
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &s); err != nil {
				return nil, err
			}
			m.PrintTerm(s)
			return starlark.None, nil
		}),
		"put_byte": starlark.NewBuiltin("put_byte", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var n int
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n); err != nil {
				return nil, err
			}
			if n < 0 || n > 0xff {
				return nil, fmt.Errorf("%s: byte %d out of range", b.Name(), n)
			}
			m.PutByte(byte(n))
			return starlark.None, nil
		}),
		"stream": starlark.NewBuiltin("stream", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var s string
			frames := 1
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "s", &s, "frames?", &frames); err != nil {
				return nil, err
			}
			for i := 0; i < len(s); i++ {
				m.PutByte(s[i])
				if err := m.DrawFrames(ctx, max(frames, 0)); err != nil {
					return nil, err
				}
			}
			return starlark.None, nil
		}),
		"draw_frames": starlark.NewBuiltin("draw_frames", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var n int
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n); err != nil {
				return nil, err
			}
			if err := m.DrawFrames(ctx, n); err != nil {
				return nil, err
			}
			return starlark.None, nil
		}),
		"blank":   starlark.NewBuiltin("blank", none(m.Blank)),
		"unblank": starlark.NewBuiltin("unblank", none(m.Unblank)),
		"width":   starlark.NewBuiltin("width", integer(func() int { return m.Screen().W })),
		"height":  starlark.NewBuiltin("height", integer(func() int { return m.Screen().H })),
		"frames":  starlark.NewBuiltin("frames", integer(m.Frames)),
	}
}
