package tier

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/sells-group/country-risk/internal/dataset"
)

// Buckets is a rank-based partition of entities, each bucket sorted by primary
// score descending.
type Buckets struct {
	Safest         []dataset.Entity `json:"safest" yaml:"safest"`
	ModeratelySafe []dataset.Entity `json:"moderately_safe" yaml:"moderately_safe"`
	MostDangerous  []dataset.Entity `json:"most_dangerous" yaml:"most_dangerous"`
}

// Get returns the bucket for t.
func (b Buckets) Get(t Tier) []dataset.Entity {
	switch t {
	case Safest:
		return b.Safest
	case ModeratelySafe:
		return b.ModeratelySafe
	case MostDangerous:
		return b.MostDangerous
	}
	return nil
}

// Len returns the number of entities across all buckets.
func (b Buckets) Len() int {
	return len(b.Safest) + len(b.ModeratelySafe) + len(b.MostDangerous)
}

// RankAndBucket sorts entities by primary score descending (ties keep input
// order) and splits them: the first floor(N*fraction) are Safest, everything
// from floor(N*(1-fraction)) on is MostDangerous, and the rest is ModeratelySafe.
// fraction must be in (0, 0.5].
func RankAndBucket(entities []dataset.Entity, fraction float64) (Buckets, error) {
	if !(fraction > 0 && fraction <= 0.5) {
		return Buckets{}, eris.Errorf("tier: bucket fraction must be in (0, 0.5], got %g", fraction)
	}

	sorted := make([]dataset.Entity, len(entities))
	copy(sorted, entities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PrimaryScore > sorted[j].PrimaryScore
	})

	n := len(sorted)
	top := cutPoint(n, fraction)
	bottom := cutPoint(n, 1-fraction)

	return Buckets{
		Safest:         sorted[:top],
		ModeratelySafe: sorted[top:bottom],
		MostDangerous:  sorted[bottom:],
	}, nil
}

// cutEpsilon absorbs the binary error in products like 90*0.7 (62.999...).
const cutEpsilon = 1e-9

// cutPoint returns floor(n*f), treating products within cutEpsilon below an integer as that integer.
func cutPoint(n int, f float64) int {
	return int(math.Floor(float64(n)*f + cutEpsilon))
}
