package sips

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ringly/ringlytools"
)

const (
	PropertyPixelHeight = "pixelHeight"
)

// PixelHeight finds `sips` on the PATH and runs PixelHeight against it.
// See Command.PixelHeight.
func PixelHeight(ctx context.Context, name string) (int, error) {
	return Command("sips").PixelHeight(ctx, name)
}

// Command represents the path to a `sips` executable.
type Command string

func (c Command) String() string {
	return string(c)
}

// PixelHeight executes `sips -g pixelHeight` against
// the image at name and parses the height out of its output.
func (c Command) PixelHeight(ctx context.Context, name string) (int, error) {
	var (
		buf = new(bytes.Buffer)
		//nolint:gosec
		cmd = exec.CommandContext(ctx, c.String(), "-g", PropertyPixelHeight, name)
	)

	cmd.Stdout = buf

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("%s: %w", c, err)
	}

	return ParsePixelHeight(buf.Bytes())
}

// ParsePixelHeight parses the output of `sips -g pixelHeight`, e.g.
//
//	/path/to/Icon@2x.png
//	  pixelHeight: 120
//
// The value is whatever follows the last "pixelHeight" label
// and the one character after it.
func ParsePixelHeight(out []byte) (int, error) {
	s := string(out)

	i := strings.LastIndex(s, PropertyPixelHeight)
	if i < 0 {
		return 0, fmt.Errorf("%s not found", PropertyPixelHeight)
	}

	i += len(PropertyPixelHeight) + 1
	if i > len(s) {
		return 0, fmt.Errorf("no value for %s", PropertyPixelHeight)
	}

	height, err := strconv.Atoi(strings.TrimSpace(s[i:]))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", PropertyPixelHeight, err)
	}

	return height, nil
}

var (
	_ ringlytools.HeightProber = Command("")
)
