package recovery

import (
	"math"
	"math/big"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"go.dedis.ch/secretrecover/interpolation"
	"go.dedis.ch/secretrecover/types"
)

// Report lists the shares that don't lie on the polynomial solved from the
// first k points.
type Report struct {
	ID           string
	Checked      int
	Inconsistent []int64
}

// Consistent tells if every checked share lies on the polynomial
func (r *Report) Consistent() bool {
	return len(r.Inconsistent) == 0
}

// Verify solves the polynomial from the first k points and checks every
// remaining share against it. Float strategies compare with the configured
// relative tolerance, exact strategies compare exactly.
func (s *Service) Verify(set *types.ShareSet) (*Report, error) {
	points, err := s.Points(set)
	if err != nil {
		return nil, err
	}

	report := &Report{ID: xid.New().String()}

	check, err := s.checker(points, set.K)
	if err != nil {
		return nil, err
	}

	for _, p := range points[set.K:] {
		report.Checked++
		if !check(p) {
			log.Warn().Str("id", report.ID).Int64("x", p.X).Msg("share is not on the polynomial")
			report.Inconsistent = append(report.Inconsistent, p.X)
		}
	}

	log.Info().Str("id", report.ID).Int("checked", report.Checked).
		Int("inconsistent", len(report.Inconsistent)).Msg("verification done")

	return report, nil
}

func (s *Service) checker(points []types.Point, k int) (func(types.Point) bool, error) {
	switch s.strategy {
	case interpolation.Rational:
		coeffs, err := interpolation.SolveCoefficientsRational(points, k)
		if err != nil {
			return nil, err
		}
		return func(p types.Point) bool {
			return interpolation.EvaluateRational(coeffs, p.X).Cmp(new(big.Rat).SetInt(p.Y)) == 0
		}, nil

	case interpolation.Modular:
		// interpolating once up front reports degenerate sets before the loop
		_, err := interpolation.ReconstructSecretZp(points, k, s.prime)
		if err != nil {
			return nil, err
		}
		return func(p types.Point) bool {
			got, err := interpolation.InterpolateZp(points, k, big.NewInt(p.X), s.prime)
			if err != nil {
				return false
			}
			return got.Cmp(new(big.Int).Mod(p.Y, s.prime)) == 0
		}, nil

	default:
		solve := interpolation.SolveCoefficients
		if s.strategy == interpolation.Pivoted {
			solve = interpolation.SolveCoefficientsPivoted
		}
		coeffs, err := solve(points, k)
		if err != nil {
			return nil, err
		}
		return func(p types.Point) bool {
			want, _ := new(big.Float).SetInt(p.Y).Float64()
			got := interpolation.Evaluate(coeffs, p.X)
			return math.Abs(got-want) <= s.tolerance*math.Max(math.Abs(want), 1)
		}, nil
	}
}
