package interpolation

import (
	"strings"

	"golang.org/x/xerrors"
)

// Strategy names an arithmetic for the elimination
type Strategy string

const (
	// Float is unpivoted elimination over float64, the default
	Float Strategy = "float"
	// Pivoted is elimination over float64 with partial pivoting
	Pivoted Strategy = "pivoted"
	// Rational is unpivoted elimination over big.Rat
	Rational Strategy = "rational"
	// Modular is Lagrange interpolation at 0 in Zp
	Modular Strategy = "modular"
)

// Strategies lists every known strategy, default first
var Strategies = []Strategy{Float, Pivoted, Rational, Modular}

// ParseStrategy parses a strategy name. The empty name is Float.
func ParseStrategy(name string) (Strategy, error) {
	if name == "" {
		return Float, nil
	}
	s := Strategy(strings.ToLower(name))
	for _, known := range Strategies {
		if s == known {
			return s, nil
		}
	}
	return "", xerrors.Errorf("unknown strategy %q", name)
}

// Exact tells if the strategy computes without rounding
func (s Strategy) Exact() bool {
	return s == Rational || s == Modular
}
