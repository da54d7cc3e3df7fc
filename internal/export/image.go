// Package export writes generated terrain to disk: textures as PNG or BMP
// and meshes as Wavefront OBJ.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// Format is an image file format.
type Format int

const (
	PNG Format = iota
	BMP
)

func (f Format) String() string {
	if f == BMP {
		return "bmp"
	}
	return "png"
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// ParseFormat parses "png" or "bmp".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	}
	return PNG, fmt.Errorf("unknown image format %q", s)
}

// FormatForPath picks the format from a file extension, PNG when unknown.
func FormatForPath(path string) Format {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return PNG
	}
	return f
}

// EncodeImage writes img to w in format f.
func EncodeImage(w io.Writer, img image.Image, f Format) error {
	switch f {
	case BMP:
		return bmp.Encode(w, img)
	default:
		return png.Encode(w, img)
	}
}

// SaveImage writes img to path, choosing the format from the extension.
func SaveImage(path string, img image.Image) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeImage(w, img, FormatForPath(path))
	})
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
