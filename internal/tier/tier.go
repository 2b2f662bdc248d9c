package tier

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Tier is one of three ordered safety categories.
type Tier int

// Tiers in ascending order of safety.
const (
	MostDangerous Tier = iota
	ModeratelySafe
	Safest
)

// All lists every tier from safest to most dangerous, the order reports use.
var All = []Tier{Safest, ModeratelySafe, MostDangerous}

// String returns the display label.
func (t Tier) String() string {
	switch t {
	case MostDangerous:
		return "Most Dangerous"
	case ModeratelySafe:
		return "Moderately Safe"
	case Safest:
		return "Most Safe"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Key returns the machine-readable name used in csv, json and yaml output.
func (t Tier) Key() string {
	switch t {
	case MostDangerous:
		return "most_dangerous"
	case ModeratelySafe:
		return "moderately_safe"
	case Safest:
		return "safest"
	default:
		return fmt.Sprintf("tier_%d", int(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	if t < MostDangerous || t > Safest {
		return nil, eris.Errorf("tier: invalid tier %d", int(t))
	}
	return []byte(t.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Parse maps a key or display label back to a Tier.
func Parse(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "most_dangerous", "most dangerous":
		return MostDangerous, nil
	case "moderately_safe", "moderately safe":
		return ModeratelySafe, nil
	case "safest", "most safe", "most_safe":
		return Safest, nil
	default:
		return 0, eris.Errorf("tier: unknown tier %q", s)
	}
}
