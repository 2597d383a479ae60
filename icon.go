package ringlytools

import (
	"context"
	"errors"
	"fmt"
)

var ErrNoIconCandidates = errors.New("no icon candidates")

// HeightProber reports the pixel height of the image at name.
type HeightProber interface {
	PixelHeight(context.Context, string) (int, error)
}

// LargestIcon returns the tallest of the given candidates, as reported
// by hp. Each candidate is probed exactly once. A candidate only displaces
// the current pick if it is strictly taller, so the earliest of equally tall
// candidates is returned.
func LargestIcon(ctx context.Context, hp HeightProber, candidates ...string) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoIconCandidates
	}

	var (
		log           = LoggerFrom(ctx)
		largest       = candidates[0]
		largestHeight int
		err           error
	)
	if largestHeight, err = hp.PixelHeight(ctx, largest); err != nil {
		return "", fmt.Errorf("probe %s: %w", largest, err)
	}
	log.V(1).Info("probed icon", "name", largest, "height", largestHeight)

	for _, candidate := range candidates[1:] {
		height, err := hp.PixelHeight(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("probe %s: %w", candidate, err)
		}
		log.V(1).Info("probed icon", "name", candidate, "height", height)

		if height > largestHeight {
			largest, largestHeight = candidate, height
		}
	}

	return largest, nil
}
