package plutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ringly/ringlytools/ios"
)

// ConvertJSON finds `plutil` on the PATH and runs ConvertJSON against it.
// See Command.ConvertJSON.
func ConvertJSON(ctx context.Context, name, output string) error {
	return Command("plutil").ConvertJSON(ctx, name, output)
}

// Command represents the path to a `plutil` executable.
type Command string

func (c Command) String() string {
	return string(c)
}

// ConvertJSON executes `plutil -convert json` against the
// property list at name, writing the result to output.
func (c Command) ConvertJSON(ctx context.Context, name, output string) error {
	var (
		stderr = new(bytes.Buffer)
		//nolint:gosec
		cmd = exec.CommandContext(ctx, c.String(), "-convert", "json", name, "-o", output)
	)

	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", c, err, msg)
		}

		return fmt.Errorf("%s: %w", c, err)
	}

	return nil
}

// Info converts the property list at name to JSON
// in a temporary directory and decodes it.
func (c Command) Info(ctx context.Context, name string) (ios.Info, error) {
	dir, err := os.MkdirTemp("", "plutil-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	output := filepath.Join(dir, "Info.json")
	if err := c.ConvertJSON(ctx, name, output); err != nil {
		return nil, err
	}

	f, err := os.Open(output)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info := ios.Info{}
	if err := json.NewDecoder(f).Decode(&info); err != nil {
		return nil, err
	}

	return info, nil
}

var (
	_ ios.InfoConverter = Command("")
)
