// Package tier assigns countries to ordered safety tiers, either by fixed score
// cut points or by rank.
package tier

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/country-risk/internal/config"
)

// DefaultConfig returns a config.TierConfig with the standard cut points.
func DefaultConfig() config.TierConfig {
	return config.TierConfig{
		DangerousMax:   0.60,
		ModerateMax:    0.80,
		BucketFraction: 0.25,
		Source:         config.SourceScore,
	}
}

// ValidateConfig checks that a TierConfig is internally consistent.
func ValidateConfig(c config.TierConfig) error {
	var errs []string

	if math.IsNaN(c.DangerousMax) || math.IsInf(c.DangerousMax, 0) {
		errs = append(errs, "dangerous_max must be a finite number")
	}
	if math.IsNaN(c.ModerateMax) || math.IsInf(c.ModerateMax, 0) {
		errs = append(errs, "moderate_max must be a finite number")
	}
	if !(c.DangerousMax < c.ModerateMax) {
		errs = append(errs, fmt.Sprintf("dangerous_max (%g) must be < moderate_max (%g)", c.DangerousMax, c.ModerateMax))
	}

	// Top and bottom buckets may not overlap.
	if !(c.BucketFraction > 0 && c.BucketFraction <= 0.5) {
		errs = append(errs, fmt.Sprintf("bucket_fraction must be in (0, 0.5], got %g", c.BucketFraction))
	}

	if _, err := ParseSource(c.Source); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return eris.Errorf("tier: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
