package weather

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Kind is a discrete weather state.
type Kind uint8

const (
	Dry Kind = iota
	Wet
	Rainy

	kindCount
)

// Params are the fixed road and wind parameters of a Kind.
type Params struct {
	Roughness    float64
	Reflection   float64
	WindBaseline float64
}

var kindParams = [kindCount]Params{
	Dry:   {Roughness: 0.8, Reflection: 0.2, WindBaseline: 0.1},
	Wet:   {Roughness: 0.1, Reflection: 0.5, WindBaseline: 0.3},
	Rainy: {Roughness: 0.05, Reflection: 0.8, WindBaseline: 0.7},
}

var kindNames = [kindCount]string{
	Dry:   "DRY",
	Wet:   "WET",
	Rainy: "RAINY",
}

// Valid reports whether k is one of the known weather kinds.
func (k Kind) Valid() bool { return k < kindCount }

func (k Kind) String() string {
	if !k.Valid() {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// Params returns the table parameters for k. Unknown kinds yield DRY.
func (k Kind) Params() Params {
	if !k.Valid() {
		return kindParams[Dry]
	}
	return kindParams[k]
}

// Material returns the road material k settles on.
func (k Kind) Material() Material {
	p := k.Params()
	return Material{Roughness: p.Roughness, Reflection: p.Reflection}
}

// ParseKind accepts "DRY", "WET" or "RAINY" in any case.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// Kinds lists every weather kind in declaration order.
func Kinds() []Kind {
	return []Kind{Dry, Wet, Rainy}
}

// SuggestKind returns the kind whose name is closest to s, for "did you
// mean" hints on unknown names. Names too far from every kind yield false.
func SuggestKind(s string) (Kind, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	best, bestDist := Kind(0), -1
	for k, name := range kindNames {
		d := levenshtein.ComputeDistance(s, name)
		if d > suggestLimit(len(name)) {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = Kind(k), d
		}
	}
	return best, bestDist >= 0
}

func suggestLimit(length int) int {
	if length <= 3 {
		return 1
	}
	return 2
}
