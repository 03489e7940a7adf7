// Package snapshot saves the rendered frame as a PNG chosen through a native dialog.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
)

const DefaultName = "lumina.png"

// Capture moves a frame from Draw, where pixels can be read, to Update, where a
// blocking dialog is acceptable.
type Capture struct {
	pending bool
	img     *image.RGBA

	// choose asks for a destination path; replaced in tests
	choose func() (string, error)
}

func New() *Capture {
	return &Capture{choose: chooseFile}
}

func chooseFile() (string, error) {
	return zenity.SelectFileSave(
		zenity.Title("Save snapshot"),
		zenity.Filename(DefaultName),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
}

// Request asks for the next drawn frame.
func (c *Capture) Request() {
	c.pending = true
}

func (c *Capture) Pending() bool {
	return c.pending
}

// Grab copies screen if a capture was requested.
func (c *Capture) Grab(screen *ebiten.Image) {
	if !c.pending {
		return
	}
	c.pending = false
	img := image.NewRGBA(screen.Bounds())
	screen.ReadPixels(img.Pix)
	c.img = img
}

// Store hands an already captured image to the next Flush.
func (c *Capture) Store(img *image.RGBA) {
	c.img = img
}

// Flush saves a grabbed frame, if any. A cancelled dialog returns an empty path and
// no error.
func (c *Capture) Flush() (string, error) {
	if c.img == nil {
		return "", nil
	}
	img := c.img
	c.img = nil

	path, err := c.choose()
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("save dialog: %w", err)
	}
	path = WithPNGExt(path)
	if err := Save(path, img); err != nil {
		return "", err
	}
	log.Printf("[Snapshot] saved %s", path)
	return path, nil
}

// WithPNGExt appends .png unless the path already ends with it.
func WithPNGExt(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return path
	}
	return path + ".png"
}

func Save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return f.Close()
}
