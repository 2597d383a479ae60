package ios

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ringly/ringlytools"
)

// InfoConverter loads the Info.plist at a path into an Info.
type InfoConverter interface {
	Info(context.Context, string) (Info, error)
}

// IconSink stores the image at name under key.
type IconSink interface {
	Put(ctx context.Context, name, key string) error
}

// Inspector prints what it finds in .ipas and, given a Sink,
// extracts the largest icon of each app bundle to it.
type Inspector struct {
	Converter InfoConverter
	Prober    ringlytools.HeightProber
	Sink      IconSink
	Stdout    io.Writer
	TmpDir    string
}

// Inspect unpacks the .ipa at name and inspects each app bundle in it,
// stopping at the first error. Output already written stays written.
func (n *Inspector) Inspect(ctx context.Context, name string) error {
	fmt.Fprintln(n.Stdout, filepath.Base(name))

	ipa, err := OpenIPA(ctx, name, WithTmpDir(n.TmpDir))
	if err != nil {
		return err
	}
	defer ipa.Close()

	apps, err := ipa.Apps()
	if err != nil {
		return err
	}

	for _, app := range apps {
		if err := n.InspectApp(ctx, app); err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(app), err)
		}

		fmt.Fprintln(n.Stdout)
	}

	return ipa.Close()
}

// InspectApp prints the identifier and URL schemes of the app bundle
// at appDir and, if n has a Sink, puts the bundle's largest icon to it.
// An Info.plist that cannot be converted is reported and treated as absent,
// which fails whichever step next needs it.
func (n *Inspector) InspectApp(ctx context.Context, appDir string) error {
	log := ringlytools.LoggerFrom(ctx).WithValues("app", filepath.Base(appDir))

	info, err := n.Converter.Info(ctx, filepath.Join(appDir, InfoPlistName))
	if err != nil {
		log.Error(err, "convert "+InfoPlistName)
		fmt.Fprintln(n.Stdout, "Failed to convert plist to JSON")
		info = nil
	}

	if err := PrintInfo(n.Stdout, info); err != nil {
		return err
	}

	if n.Sink == nil {
		return nil
	}

	icon, err := n.LargestIcon(ctx, appDir, info)
	if err != nil {
		return err
	}

	key := filepath.Base(appDir) + ".png"
	log.Info("copying icon", "name", icon, "key", key)

	return n.Sink.Put(ctx, icon, key)
}

// LargestIcon returns the path of the tallest icon that
// the app bundle at appDir declares and contains.
func (n *Inspector) LargestIcon(ctx context.Context, appDir string, info Info) (string, error) {
	bases, err := info.IconFiles()
	if err != nil {
		return "", err
	}

	return ringlytools.LargestIcon(ctx, n.Prober, IconCandidates(appDir, bases)...)
}

// PrintInfo writes the bundle identifier and URL schemes of info to w.
func PrintInfo(w io.Writer, info Info) error {
	id, err := info.Identifier()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, " %s\n", id)
	fmt.Fprintln(w, " URL Types:")

	schemes, ok := info.URLSchemes()
	for _, scheme := range schemes {
		fmt.Fprintf(w, "  %s\n", scheme)
	}

	if !ok {
		fmt.Fprintln(w, "  Can't support, no URL types!")
	}

	return nil
}
