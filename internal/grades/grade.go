package grades

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Grade identifies a GCSE grade outcome. The zero value is Ungraded, which is
// distinct from the numeric 1-9 domain and encodes as "U" on the wire.
type Grade int

// Ungraded marks a weighted score that falls below every configured boundary.
const Ungraded Grade = 0

// Graded reports whether g carries a numeric grade rather than the Ungraded sentinel.
func (g Grade) Graded() bool {
	return g != Ungraded
}

func (g Grade) String() string {
	if g == Ungraded {
		return "U"
	}
	return strconv.Itoa(int(g))
}

// MarshalJSON encodes numeric grades as JSON numbers and Ungraded as "U".
func (g Grade) MarshalJSON() ([]byte, error) {
	if g == Ungraded {
		return json.Marshal("U")
	}
	return json.Marshal(int(g))
}

// UnmarshalJSON accepts either a JSON number or the string "U".
func (g *Grade) UnmarshalJSON(data []byte) error {
	var value int
	if err := json.Unmarshal(data, &value); err == nil {
		*g = Grade(value)
		return nil
	}

	var sentinel string
	if err := json.Unmarshal(data, &sentinel); err != nil {
		return fmt.Errorf("invalid grade value %s", data)
	}
	if sentinel != "U" {
		return fmt.Errorf("invalid grade sentinel %q", sentinel)
	}
	*g = Ungraded
	return nil
}

// Boundaries maps a grade to the minimum weighted score required to achieve it.
// Callers are expected to keep thresholds non-decreasing in grade; the
// calculator does not enforce it.
type Boundaries map[Grade]float64

// DefaultBoundaries returns a fresh copy of the standard GCSE boundary table.
func DefaultBoundaries() Boundaries {
	return Boundaries{
		9: 90, 8: 80, 7: 70, 6: 60, 5: 50, 4: 40, 3: 30, 2: 20, 1: 10,
	}
}

// Threshold returns the minimum score required for g, or 0 when g is not in the table.
func (b Boundaries) Threshold(g Grade) float64 {
	return b[g]
}

// Contains reports whether g has a configured boundary.
func (b Boundaries) Contains(g Grade) bool {
	_, ok := b[g]
	return ok
}

// descending returns the configured grades sorted from highest to lowest.
func (b Boundaries) descending() []Grade {
	out := make([]Grade, 0, len(b))
	for g := range b {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}
