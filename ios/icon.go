package ios

import (
	"os"
	"path/filepath"
)

var (
	// IconSuffixes are appended, in order, to each declared icon
	// file name to find the images that actually exist in a bundle.
	IconSuffixes = []string{"", ".png", "@2x.png", "@3x.png"}
)

// IconCandidates returns the existing files named by appending each of
// IconSuffixes to each of bases, resolved relative to appDir.
func IconCandidates(appDir string, bases []string) []string {
	candidates := []string{}

	for _, base := range bases {
		path := filepath.Join(appDir, base)

		for _, suffix := range IconSuffixes {
			if fi, err := os.Stat(path + suffix); err == nil && fi.Mode().IsRegular() {
				candidates = append(candidates, path+suffix)
			}
		}
	}

	return candidates
}
