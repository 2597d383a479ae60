package ios

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ringly/ringlytools"
)

const (
	PayloadDirName = "Payload"
)

// IPA is an installer archive unpacked into a directory of its own.
type IPA struct {
	Name string

	dir    string
	tmpDir string
	owned  bool
}

type IPAOpt func(*IPA)

// WithDir unpacks the IPA into dir instead of a new temporary directory.
// A dir given this way is not removed by Close.
func WithDir(dir string) IPAOpt {
	return func(i *IPA) {
		i.dir = dir
	}
}

// WithTmpDir sets the directory in which the temporary
// directory that the IPA is unpacked into is created.
func WithTmpDir(dir string) IPAOpt {
	return func(i *IPA) {
		i.tmpDir = dir
	}
}

// OpenIPA unpacks the .ipa at name.
func OpenIPA(ctx context.Context, name string, opts ...IPAOpt) (*IPA, error) {
	var (
		log = ringlytools.LoggerFrom(ctx)
		i   = &IPA{Name: name}
	)

	for _, opt := range opts {
		opt(i)
	}

	if i.dir == "" {
		dir, err := os.MkdirTemp(i.tmpDir, "ipa-*")
		if err != nil {
			return nil, err
		}

		i.dir = dir
		i.owned = true
	}

	log.V(1).Info("extracting ipa", "name", name, "dir", i.dir)
	if err := ExtractIPA(name, i.dir); err != nil {
		_ = i.Close()
		return nil, err
	}

	return i, nil
}

// Dir returns the directory that the IPA was unpacked into.
func (i *IPA) Dir() string {
	return i.dir
}

// Apps returns the path of each app bundle in the IPA's payload.
func (i *IPA) Apps() ([]string, error) {
	return Apps(i.dir)
}

// Close removes the directory that the IPA was unpacked into,
// unless it was provided by WithDir.
func (i *IPA) Close() error {
	if !i.owned {
		return nil
	}

	i.owned = false
	return os.RemoveAll(i.dir)
}

// Apps returns the path of each top-level entry of the payload
// directory of an IPA that was unpacked into dir.
func Apps(dir string) ([]string, error) {
	payload := filepath.Join(dir, PayloadDirName)

	entries, err := os.ReadDir(payload)
	if err != nil {
		return nil, err
	}

	apps := make([]string, len(entries))
	for j, entry := range entries {
		apps[j] = filepath.Join(payload, entry.Name())
	}

	return apps, nil
}

// ExtractIPA unpacks the zip archive at name into dir.
func ExtractIPA(name, dir string) error {
	zr, err := zip.OpenReader(name)
	if err != nil {
		return err
	}
	defer zr.Close()

	for _, zf := range zr.File {
		if err := extractZipFile(zf, dir); err != nil {
			return fmt.Errorf("extract %s: %w", zf.Name, err)
		}
	}

	return nil
}

func extractZipFile(zf *zip.File, dir string) error {
	path := filepath.Join(dir, zf.Name)
	if !strings.HasPrefix(path, filepath.Clean(dir)+string(os.PathSeparator)) {
		return fmt.Errorf("invalid file path %s", zf.Name)
	}

	if zf.FileInfo().IsDir() {
		return os.MkdirAll(path, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	mode := zf.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer f.Close()

	rc, err := zf.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	if _, err = io.Copy(f, rc); err != nil {
		return err
	}

	return f.Close()
}
