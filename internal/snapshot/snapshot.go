// Package snapshot writes published frames to image files.
package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"simplevo/internal/core"
	"simplevo/internal/render"
)

// Format names an output encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
	FormatPPM Format = "ppm"
)

var ErrFormat = errors.New("unknown snapshot format")

// ParseFormat accepts a format name with or without a leading dot.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatPNG, FormatBMP, FormatPPM:
		return f, nil
	}
	return "", fmt.Errorf("%w %q", ErrFormat, s)
}

// FormatFor picks the format from a file name's extension.
func FormatFor(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Encode writes the frame in the given format.
func Encode(w io.Writer, f core.Frame, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, render.FrameImage(f))
	case FormatBMP:
		return bmp.Encode(w, render.FrameImage(f))
	case FormatPPM:
		return encodePPM(w, f)
	}
	return fmt.Errorf("%w %q", ErrFormat, format)
}

// encodePPM writes a binary (P6) portable pixmap. The frame's packed RGB
// rows are already the P6 raster layout.
func encodePPM(w io.Writer, f core.Frame) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", f.Size.W, f.Size.H); err != nil {
		return err
	}
	n := f.Size.W * f.Size.H * render.BytesPerPixel
	if f.Blank || len(f.Pix) < n {
		if _, err := bw.Write(make([]byte, n)); err != nil {
			return err
		}
	} else if _, err := bw.Write(f.Pix[:n]); err != nil {
		return err
	}
	return bw.Flush()
}

// Save writes the frame to path, choosing the format from the extension.
func Save(path string, f core.Frame) (err error) {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(out, f, format)
}

// SaveFramebuffer writes the screen area of fb to path.
func SaveFramebuffer(path string, fb *render.Framebuffer) error {
	return Save(path, core.Frame{Size: fb.Screen(), Pix: fb.Bytes()})
}
