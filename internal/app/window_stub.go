//go:build !ebiten

package app

import (
	"errors"

	"simplevo/internal/core"
)

// ErrNoWindow is returned when the binary was built without window support.
var ErrNoWindow = errors.New("the window display requires building with the 'ebiten' tag")

func init() {
	core.RegisterDisplay("window", func(core.DisplayOptions) (core.Display, error) {
		return nil, ErrNoWindow
	})
}
