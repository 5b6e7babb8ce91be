package interpolation

import (
	"math/big"

	"go.dedis.ch/secretrecover/types"
)

// ReconstructSecretRational runs the same unpivoted elimination as
// ReconstructSecret over big.Rat, so the result is exact.
func ReconstructSecretRational(points []types.Point, k int) (*big.Rat, error) {
	coeffs, err := SolveCoefficientsRational(points, k)
	if err != nil {
		return nil, err
	}
	return coeffs[0], nil
}

// SolveCoefficientsRational returns the exact coefficient vector
func SolveCoefficientsRational(points []types.Point, k int) ([]*big.Rat, error) {
	selected, err := selectPoints(points, k)
	if err != nil {
		return nil, err
	}

	a := make([][]*big.Rat, k)
	for i, p := range selected {
		a[i] = make([]*big.Rat, k+1)
		x := big.NewInt(p.X)
		pow := big.NewInt(1)
		for j := 0; j < k; j++ {
			a[i][j] = new(big.Rat).SetInt(pow)
			pow = new(big.Int).Mul(pow, x)
		}
		a[i][k] = new(big.Rat).SetInt(p.Y)
	}

	tmp := new(big.Rat)
	for i := 0; i < k; i++ {
		if a[i][i].Sign() == 0 {
			return nil, &types.SingularMatrixError{Row: i, X: selected[i].X}
		}
		pivot := new(big.Rat).Set(a[i][i])
		for c := 0; c <= k; c++ {
			a[i][c].Quo(a[i][c], pivot)
		}

		for j := i + 1; j < k; j++ {
			factor := new(big.Rat).Set(a[j][i])
			for c := 0; c <= k; c++ {
				a[j][c].Sub(a[j][c], tmp.Mul(a[i][c], factor))
			}
		}
	}

	coeffs := make([]*big.Rat, k)
	for i := k - 1; i >= 0; i-- {
		coeffs[i] = new(big.Rat).Set(a[i][k])
		for j := i + 1; j < k; j++ {
			coeffs[i].Sub(coeffs[i], tmp.Mul(a[i][j], coeffs[j]))
		}
	}

	return coeffs, nil
}

// EvaluateRational evaluates the polynomial with the given exact coefficients at x
func EvaluateRational(coeffs []*big.Rat, x int64) *big.Rat {
	rx := new(big.Rat).SetInt64(x)
	result := new(big.Rat)
	for i := len(coeffs) - 1; i >= 0; i-- {
		result.Mul(result, rx)
		result.Add(result, coeffs[i])
	}
	return result
}
