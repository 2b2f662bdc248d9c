package tier

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/country-risk/internal/config"
	"github.com/sells-group/country-risk/internal/dataset"
)

// Policy holds the score cut points. Each boundary belongs to the lower tier:
//   - score <= DangerousMax               -> MostDangerous
//   - DangerousMax < score <= ModerateMax -> ModeratelySafe
//   - score > ModerateMax                 -> Safest
type Policy struct {
	DangerousMax float64
	ModerateMax  float64
}

// NewPolicy returns the Policy described by c.
func NewPolicy(c config.TierConfig) Policy {
	return Policy{DangerousMax: c.DangerousMax, ModerateMax: c.ModerateMax}
}

// ClassifyScore maps a scalar score to a tier.
func (p Policy) ClassifyScore(score float64) Tier {
	switch {
	case score <= p.DangerousMax:
		return MostDangerous
	case score <= p.ModerateMax:
		return ModeratelySafe
	default:
		return Safest
	}
}

// RowMeaner is satisfied by *distance.Matrix.
type RowMeaner interface {
	Size() int
	RowMean(i int) (float64, error)
}

// ClassifyRowMean applies ClassifyScore to the mean of row i of m.
// The mean is a dissimilarity measure; larger values mean "less like the others", not "safer".
func (p Policy) ClassifyRowMean(m RowMeaner, i int) (Tier, error) {
	mean, err := m.RowMean(i)
	if err != nil {
		return 0, err
	}
	return p.ClassifyScore(mean), nil
}

// Source names the value that drives threshold classification.
type Source string

// Classification sources.
const (
	FromScore    Source = config.SourceScore
	FromDistance Source = config.SourceDistance
)

// ParseSource validates a configured source name.
func ParseSource(s string) (Source, error) {
	switch Source(strings.ToLower(strings.TrimSpace(s))) {
	case FromScore:
		return FromScore, nil
	case FromDistance:
		return FromDistance, nil
	default:
		return "", eris.Errorf("tier: source must be %q or %q, got %q", FromScore, FromDistance, s)
	}
}

// Assignment is the tier given to one entity and the value that decided it.
type Assignment struct {
	Entity dataset.Entity `json:"entity" yaml:"entity"`
	Tier   Tier           `json:"tier" yaml:"tier"`
	Value  float64        `json:"value" yaml:"value"`
}

// Classify assigns a tier to every entity from a single source. With FromScore
// the entity's primary score decides; with FromDistance the mean of its row in m
// decides, and m must cover exactly the given entities in the same order.
func Classify(entities []dataset.Entity, m RowMeaner, p Policy, src Source) ([]Assignment, error) {
	out := make([]Assignment, len(entities))
	switch src {
	case FromScore:
		for i, e := range entities {
			out[i] = Assignment{Entity: e, Tier: p.ClassifyScore(e.PrimaryScore), Value: e.PrimaryScore}
		}
	case FromDistance:
		if m == nil {
			return nil, eris.New("tier: distance source requires a distance matrix")
		}
		if m.Size() != len(entities) {
			return nil, eris.Errorf("tier: matrix size %d does not match %d entities", m.Size(), len(entities))
		}
		for i, e := range entities {
			mean, err := m.RowMean(i)
			if err != nil {
				return nil, eris.Wrapf(err, "tier: row mean for %s", e.Name)
			}
			out[i] = Assignment{Entity: e, Tier: p.ClassifyScore(mean), Value: mean}
		}
	default:
		return nil, eris.Errorf("tier: unknown source %q", src)
	}
	return out, nil
}

// Counts tallies assignments per tier.
func Counts(as []Assignment) map[Tier]int {
	out := make(map[Tier]int, len(All))
	for _, t := range All {
		out[t] = 0
	}
	for _, a := range as {
		out[a.Tier]++
	}
	return out
}
