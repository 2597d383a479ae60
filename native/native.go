// Package native loads Info.plists and measures images in-process, for
// hosts without `plutil` and `sips`, i.e. anything but macOS.
package native

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	cgbi "github.com/928799934/go-png-cgbi"
	"github.com/ringly/ringlytools"
	"github.com/ringly/ringlytools/ios"
	"howett.net/plist"
)

// Converter decodes binary, XML, OpenStep and GNUstep property lists.
type Converter struct{}

func (Converter) Info(_ context.Context, name string) (ios.Info, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info := map[string]any{}
	if err := plist.NewDecoder(f).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	return ios.Info(info), nil
}

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n")
	// Apple's "optimized" PNGs carry this chunk
	// ahead of IHDR, which image/png rejects.
	cgbiChunk = []byte("CgBI")
)

// Prober measures PNG, JPEG and Apple CgBI PNG images.
type Prober struct{}

func (Prober) PixelHeight(_ context.Context, name string) (int, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	br := bufio.NewReader(f)

	if isCgBI(br) {
		img, err := cgbi.Decode(br)
		if err != nil {
			return 0, fmt.Errorf("decode %s: %w", name, err)
		}

		return img.Bounds().Dy(), nil
	}

	cfg, _, err := image.DecodeConfig(br)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", name, err)
	}

	return cfg.Height, nil
}

func isCgBI(br *bufio.Reader) bool {
	b, err := br.Peek(len(pngHeader) + 8)
	if err != nil {
		return false
	}

	return bytes.Equal(b[:len(pngHeader)], pngHeader) &&
		bytes.Equal(b[len(pngHeader)+4:], cgbiChunk)
}

var (
	_ ios.InfoConverter        = Converter{}
	_ ringlytools.HeightProber = Prober{}
)
