package recovery

import (
	"encoding/hex"
	"math"
	"math/big"
	"sort"
	"strconv"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"go.dedis.ch/secretrecover/config"
	"go.dedis.ch/secretrecover/decoder"
	"go.dedis.ch/secretrecover/interpolation"
	"go.dedis.ch/secretrecover/storage"
	"go.dedis.ch/secretrecover/types"
	"golang.org/x/xerrors"
)

// Service recovers secrets from share sets. It holds no mutable state and can
// be used from several goroutines.
type Service struct {
	strategy  interpolation.Strategy
	order     config.Order
	prime     *big.Int
	tolerance float64
}

// New creates a service from a validated config
func New(conf *config.Config) (*Service, error) {
	err := conf.Validate()
	if err != nil {
		return nil, err
	}

	prime, err := conf.Modulus()
	if err != nil {
		return nil, err
	}

	return &Service{
		strategy:  conf.StrategyValue(),
		order:     conf.Order,
		prime:     prime,
		tolerance: conf.Tolerance,
	}, nil
}

// Result is the outcome of one recovery
type Result struct {
	ID       string
	Strategy interpolation.Strategy

	// Secret is the float secret. For exact strategies it is Exact rounded
	// to the nearest float64.
	Secret float64
	// Exact is only set by the rational and modular strategies
	Exact *big.Rat

	Points      []types.Point
	Fingerprint string
}

// String returns the secret as text
func (r *Result) String() string {
	if r.Exact != nil {
		if r.Exact.IsInt() {
			return r.Exact.Num().String()
		}
		return r.Exact.RatString()
	}
	return strconv.FormatFloat(r.Secret, 'f', -1, 64)
}

// Rounded returns the secret rounded to the nearest integer, halves away
// from zero. It fails for a float secret that is not finite.
func (r *Result) Rounded() (*big.Int, error) {
	if r.Exact != nil {
		q := new(big.Rat).Abs(r.Exact)
		q.Add(q, big.NewRat(1, 2))
		// Denom is positive, so Euclidean division floors
		res := new(big.Int).Div(q.Num(), q.Denom())
		if r.Exact.Sign() < 0 {
			res.Neg(res)
		}
		return res, nil
	}
	if math.IsNaN(r.Secret) || math.IsInf(r.Secret, 0) {
		return nil, xerrors.Errorf("secret %v is not finite", r.Secret)
	}
	res, _ := big.NewFloat(math.Round(r.Secret)).Int(nil)
	return res, nil
}

// Points decodes every share of the set and orders the points according to
// the configured policy.
func (s *Service) Points(set *types.ShareSet) ([]types.Point, error) {
	points := make([]types.Point, 0, len(set.Shares))
	for _, share := range set.Shares {
		p, err := decoder.DecodeShare(share)
		if err != nil {
			return nil, xerrors.Errorf("failed to decode share %d: %w", share.X, err)
		}
		points = append(points, p)
	}

	if s.order == config.Ascending {
		sort.SliceStable(points, func(i, j int) bool {
			return points[i].X < points[j].X
		})
	}

	return points, nil
}

// Recover reconstructs the secret of the set from its first k points
func (s *Service) Recover(set *types.ShareSet) (*Result, error) {
	id := xid.New().String()

	fingerprint := hex.EncodeToString(storage.Fingerprint(set.Shares))

	log.Info().Str("id", id).Str("strategy", string(s.strategy)).
		Int("n", set.N).Int("k", set.K).Int("shares", len(set.Shares)).
		Str("fingerprint", fingerprint).Msg("recovering secret")

	points, err := s.Points(set)
	if err != nil {
		log.Err(err).Str("id", id).Msg("decoding failed")
		return nil, err
	}

	res := &Result{
		ID:          id,
		Strategy:    s.strategy,
		Fingerprint: fingerprint,
	}

	err = s.reconstruct(points, set.K, res)
	if err != nil {
		log.Err(err).Str("id", id).Msg("reconstruction failed")
		return nil, err
	}
	res.Points = append([]types.Point{}, points[:set.K]...)

	log.Info().Str("id", id).Str("secret", res.String()).Msg("secret recovered")

	return res, nil
}

func (s *Service) reconstruct(points []types.Point, k int, res *Result) error {
	switch s.strategy {
	case interpolation.Pivoted:
		secret, err := interpolation.ReconstructSecretPivoted(points, k)
		if err != nil {
			return err
		}
		res.Secret = secret
	case interpolation.Rational:
		secret, err := interpolation.ReconstructSecretRational(points, k)
		if err != nil {
			return err
		}
		res.Exact = secret
		res.Secret, _ = secret.Float64()
	case interpolation.Modular:
		secret, err := interpolation.ReconstructSecretZp(points, k, s.prime)
		if err != nil {
			return err
		}
		res.Exact = new(big.Rat).SetInt(secret)
		res.Secret, _ = res.Exact.Float64()
	default:
		secret, err := interpolation.ReconstructSecret(points, k)
		if err != nil {
			return err
		}
		res.Secret = secret
	}
	return nil
}
