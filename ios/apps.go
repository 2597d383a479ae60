package ios

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	xslice "github.com/frantjc/x/slice"
	"github.com/ringly/ringlytools"
	"howett.net/plist"
)

const (
	AppsPlistName = "Apps.plist"
)

var (
	// ExtraSchemes are queried by the app on top of those of
	// every SupportedApp. They always come first in
	// LSApplicationQueriesSchemes.
	ExtraSchemes = []string{
		"googlegmail",
		"inbox-gmail",
		"message",
		"itms-apps",
		"fbauth2",
	}
)

// SupportedApp is an entry of Apps.plist, an application
// whose notifications the Ringly app knows about.
type SupportedApp struct {
	Name        string
	Scheme      string
	Identifiers []string
	Analytics   string
}

// ReadSupportedApps decodes an Apps.plist. Every
// entry must have a Scheme.
func ReadSupportedApps(r io.ReadSeeker) ([]SupportedApp, error) {
	entries := []map[string]any{}
	if err := plist.NewDecoder(r).Decode(&entries); err != nil {
		return nil, err
	}

	apps := make([]SupportedApp, len(entries))
	for i, entry := range entries {
		scheme, ok := entry["Scheme"].(string)
		if !ok {
			return nil, fmt.Errorf("app %d: key Scheme not found", i)
		}

		app := SupportedApp{Scheme: scheme}
		app.Name, _ = entry["Name"].(string)
		app.Analytics, _ = entry["Analytics"].(string)
		if identifiers, ok := entry["Identifiers"].(string); ok && identifiers != "" {
			app.Identifiers = strings.Split(identifiers, ",")
		}

		apps[i] = app
	}

	return apps, nil
}

// QueriesSchemes returns ExtraSchemes followed by the Scheme of each
// of apps. Order is kept and duplicates are not removed.
func QueriesSchemes(apps []SupportedApp) []string {
	return append(
		append([]string{}, ExtraSchemes...),
		xslice.Map(apps, func(app SupportedApp, _ int) string {
			return app.Scheme
		})...,
	)
}

// MergeQueriesSchemes sets LSApplicationQueriesSchemes in the plist at
// infoPath to the QueriesSchemes of the apps in the plist at appsPath.
// The plist is rewritten in place, in the format that it was read in.
func MergeQueriesSchemes(ctx context.Context, appsPath, infoPath string) error {
	log := ringlytools.LoggerFrom(ctx)

	f, err := os.Open(appsPath)
	if err != nil {
		return err
	}
	defer f.Close()

	apps, err := ReadSupportedApps(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", appsPath, err)
	}
	log.V(1).Info("read supported apps", "name", appsPath, "count", len(apps))

	b, err := os.ReadFile(infoPath)
	if err != nil {
		return err
	}

	info := map[string]any{}
	format, err := plist.Unmarshal(b, &info)
	if err != nil {
		return fmt.Errorf("read %s: %w", infoPath, err)
	}

	schemes := QueriesSchemes(apps)
	info[KeyApplicationQueriesSchemes] = schemes

	if format == plist.XMLFormat {
		b, err = plist.MarshalIndent(info, format, "\t")
	} else {
		b, err = plist.Marshal(info, format)
	}
	if err != nil {
		return err
	}

	fi, err := os.Stat(infoPath)
	if err != nil {
		return err
	}

	log.Info("writing "+KeyApplicationQueriesSchemes, "name", infoPath, "count", len(schemes))
	return os.WriteFile(infoPath, b, fi.Mode().Perm())
}
