package iconout

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/ringly/ringlytools/internal/ringlyregexp"
	"github.com/ringly/ringlytools/ios"
	"gocloud.dev/blob"
)

// Dir copies icons into a local directory, keeping
// each file's mode and modification time.
type Dir string

func (d Dir) Put(_ context.Context, name, key string) error {
	src, err := os.Open(name)
	if err != nil {
		return err
	}
	defer src.Close()

	fi, err := src.Stat()
	if err != nil {
		return err
	}

	dst := filepath.Join(string(d), key)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err = io.Copy(f, src); err != nil {
		return err
	}

	if err = f.Close(); err != nil {
		return err
	}

	if err = os.Chmod(dst, fi.Mode().Perm()); err != nil {
		return err
	}

	return os.Chtimes(dst, fi.ModTime(), fi.ModTime())
}

// Bucket uploads icons to a gocloud.dev blob bucket.
type Bucket struct {
	*blob.Bucket
}

func (b *Bucket) Put(ctx context.Context, name, key string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	// Canceling ctx before Close discards the partial write.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := b.NewWriter(ctx, key, &blob.WriterOptions{ContentType: "image/png"})
	if err != nil {
		return err
	}

	if _, err := io.Copy(w, f); err != nil {
		cancel()
		_ = w.Close()
		return err
	}

	return w.Close()
}

// Open returns a Bucket if s is a URL, e.g. s3://my-bucket or mem://,
// and a Dir otherwise. The returned func releases whatever was opened.
func Open(ctx context.Context, s string) (ios.IconSink, func() error, error) {
	if !ringlyregexp.IsURL(s) {
		return Dir(s), func() error { return nil }, nil
	}

	bucket, err := blob.OpenBucket(ctx, s)
	if err != nil {
		return nil, nil, err
	}

	return &Bucket{bucket}, bucket.Close, nil
}

var (
	_ ios.IconSink = Dir("")
	_ ios.IconSink = &Bucket{}
)
