package recovery

import (
	"math"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/secretrecover/config"
	"go.dedis.ch/secretrecover/interpolation"
	"go.dedis.ch/secretrecover/loader"
	"go.dedis.ch/secretrecover/types"
	"golang.org/x/xerrors"
)

const testcase2Secret = 28735619723864

func newService(t *testing.T, strategy interpolation.Strategy, order config.Order) *Service {
	conf := config.Default()
	conf.Strategy = string(strategy)
	conf.Order = order
	s, err := New(conf)
	require.NoError(t, err)
	return s
}

func load(t *testing.T, name string) *types.ShareSet {
	set, err := loader.LoadFile("../loader/testdata/" + name)
	require.NoError(t, err)
	return set
}

func Test_Recover_Testcase1(t *testing.T) {
	set := load(t, "testcase1.json")

	for _, strategy := range interpolation.Strategies {
		s := newService(t, strategy, config.Supplied)
		res, err := s.Recover(set)
		require.NoError(t, err, strategy)
		require.Equal(t, strategy, res.Strategy)
		require.InDelta(t, 3.0, res.Secret, 1e-9, strategy)
		require.Len(t, res.Points, 3)
		require.NotEmpty(t, res.ID)
		require.Len(t, res.Fingerprint, 64)

		rounded, err := res.Rounded()
		require.NoError(t, err)
		require.Equal(t, int64(3), rounded.Int64())
		require.Equal(t, "3", res.String())
	}
}

func Test_Recover_Testcase2(t *testing.T) {
	set := load(t, "testcase2.json")

	res, err := newService(t, interpolation.Float, config.Supplied).Recover(set)
	require.NoError(t, err)
	require.InEpsilon(t, float64(testcase2Secret), res.Secret, 1e-6)

	for _, strategy := range []interpolation.Strategy{interpolation.Rational, interpolation.Modular} {
		res, err = newService(t, strategy, config.Supplied).Recover(set)
		require.NoError(t, err)
		require.NotNil(t, res.Exact)
		require.Equal(t, "28735619723864", res.String(), strategy)
	}
}

func Test_Recover_Order(t *testing.T) {
	// P(x) = 2x + 1, with a bogus share first
	set := &types.ShareSet{
		N: 3, K: 2,
		Shares: []types.Share{
			{X: 5, Base: 10, Value: "100"},
			{X: 1, Base: 10, Value: "3"},
			{X: 2, Base: 10, Value: "5"},
		},
	}

	res, err := newService(t, interpolation.Rational, config.Ascending).Recover(set)
	require.NoError(t, err)
	require.Equal(t, "1", res.String())
	require.Equal(t, int64(1), res.Points[0].X)

	res, err = newService(t, interpolation.Rational, config.Supplied).Recover(set)
	require.NoError(t, err)
	require.Equal(t, "-85/4", res.String())

	rounded, err := res.Rounded()
	require.NoError(t, err)
	require.Equal(t, int64(-21), rounded.Int64())
}

func Test_Recover_Errors(t *testing.T) {
	s := newService(t, interpolation.Float, config.Supplied)

	_, err := s.Recover(&types.ShareSet{K: 1, Shares: []types.Share{{X: 1, Base: 40, Value: "1"}}})
	var baseErr *types.InvalidBaseError
	require.True(t, xerrors.As(err, &baseErr))

	_, err = s.Recover(&types.ShareSet{K: 1, Shares: []types.Share{{X: 1, Base: 2, Value: "102"}}})
	var digitErr *types.InvalidDigitError
	require.True(t, xerrors.As(err, &digitErr))

	_, err = s.Recover(&types.ShareSet{K: 3, Shares: []types.Share{{X: 1, Base: 10, Value: "3"}}})
	var insufficient *types.InsufficientPointsError
	require.True(t, xerrors.As(err, &insufficient))

	_, err = s.Recover(&types.ShareSet{K: 2, Shares: []types.Share{
		{X: 1, Base: 10, Value: "3"}, {X: 1, Base: 16, Value: "3"},
	}})
	var singular *types.SingularMatrixError
	require.ErrorAs(t, err, &singular)
}

// P(x) = 2x + 1, share 1 given twice
func Test_Recover_Repeated_X(t *testing.T) {
	shares := []types.Share{
		{X: 1, Base: 10, Value: "3"},
		{X: 2, Base: 10, Value: "5"},
		{X: 1, Base: 10, Value: "3"},
	}

	for _, strategy := range interpolation.Strategies {
		s := newService(t, strategy, config.Supplied)

		_, err := s.Recover(&types.ShareSet{N: 3, K: 3, Shares: shares})
		var singular *types.SingularMatrixError
		require.ErrorAs(t, err, &singular, strategy)
		require.Equal(t, int64(1), singular.X)

		// the repeat is beyond k and takes no part
		res, err := s.Recover(&types.ShareSet{N: 3, K: 2, Shares: shares})
		require.NoError(t, err, strategy)
		require.Equal(t, "1", res.String(), strategy)
		require.NotEmpty(t, res.Fingerprint)

		report, err := s.Verify(&types.ShareSet{N: 3, K: 2, Shares: shares})
		require.NoError(t, err, strategy)
		require.Equal(t, 1, report.Checked)
		require.True(t, report.Consistent())
	}
}

func Test_Recover_Concurrent(t *testing.T) {
	s := newService(t, interpolation.Float, config.Supplied)
	set := load(t, "testcase2.json")

	var wg sync.WaitGroup
	secrets := make([]float64, 8)
	errs := make([]error, len(secrets))
	for i := range secrets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := s.Recover(set)
			errs[i] = err
			if err == nil {
				secrets[i] = res.Secret
			}
		}(i)
	}
	wg.Wait()

	for i, secret := range secrets {
		require.NoError(t, errs[i])
		require.InEpsilon(t, float64(testcase2Secret), secret, 1e-6)
		require.Equal(t, secrets[0], secret)
	}
}

func Test_Verify(t *testing.T) {
	report, err := newService(t, interpolation.Float, config.Supplied).Verify(load(t, "testcase1.json"))
	require.NoError(t, err)
	require.Equal(t, 1, report.Checked)
	require.True(t, report.Consistent())

	for _, strategy := range interpolation.Strategies {
		report, err = newService(t, strategy, config.Supplied).Verify(load(t, "testcase2.json"))
		require.NoError(t, err)
		require.Equal(t, 3, report.Checked)
		require.Equal(t, []int64{7}, report.Inconsistent, strategy)
	}
}

func Test_Result_Rounded_Not_Finite(t *testing.T) {
	res := &Result{Secret: math.Inf(1)}
	_, err := res.Rounded()
	require.Error(t, err)

	res = &Result{Exact: big.NewRat(7, 2)}
	rounded, err := res.Rounded()
	require.NoError(t, err)
	require.Equal(t, int64(4), rounded.Int64())
	require.Equal(t, "7/2", res.String())
}

// exact and float secrets round halves the same way
func Test_Result_Rounded_Halves(t *testing.T) {
	for _, num := range []int64{-7, -5, -3, -1, 1, 3, 5, 7} {
		exact, err := (&Result{Exact: big.NewRat(num, 2)}).Rounded()
		require.NoError(t, err)

		float, err := (&Result{Secret: float64(num) / 2}).Rounded()
		require.NoError(t, err)

		require.Equal(t, 0, exact.Cmp(float), "%d/2: %s and %s", num, exact, float)
	}

	rounded, err := (&Result{Exact: big.NewRat(-5, 2)}).Rounded()
	require.NoError(t, err)
	require.Equal(t, int64(-3), rounded.Int64())

	rounded, err = (&Result{Exact: big.NewRat(-9, 4)}).Rounded()
	require.NoError(t, err)
	require.Equal(t, int64(-2), rounded.Int64())
}
