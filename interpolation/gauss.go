package interpolation

import (
	"math"
	"math/big"

	"go.dedis.ch/secretrecover/types"
)

// ReconstructSecret returns P(0) of the degree k-1 polynomial through the first
// k points, solved by Gaussian elimination over float64 without pivoting.
// Points are used in the order given.
func ReconstructSecret(points []types.Point, k int) (float64, error) {
	coeffs, err := SolveCoefficients(points, k)
	if err != nil {
		return 0, err
	}
	return coeffs[0], nil
}

// SolveCoefficients returns the k coefficients of the polynomial through the
// first k points, index i being the coefficient of x^i. No row is ever swapped:
// a zero pivot fails with a SingularMatrixError.
func SolveCoefficients(points []types.Point, k int) ([]float64, error) {
	selected, err := selectPoints(points, k)
	if err != nil {
		return nil, err
	}
	return solveFloat(selected, false)
}

// ReconstructSecretPivoted is ReconstructSecret with partial pivoting: before
// each elimination step the row with the largest magnitude in the pivot column
// is swapped in.
func ReconstructSecretPivoted(points []types.Point, k int) (float64, error) {
	coeffs, err := SolveCoefficientsPivoted(points, k)
	if err != nil {
		return 0, err
	}
	return coeffs[0], nil
}

// SolveCoefficientsPivoted is SolveCoefficients with partial pivoting
func SolveCoefficientsPivoted(points []types.Point, k int) ([]float64, error) {
	selected, err := selectPoints(points, k)
	if err != nil {
		return nil, err
	}
	return solveFloat(selected, true)
}

// selectPoints keeps the first k points and rejects duplicated x values, which
// would make two rows of the Vandermonde matrix equal.
func selectPoints(points []types.Point, k int) ([]types.Point, error) {
	if k < 1 {
		return nil, &types.InvalidThresholdError{K: k}
	}
	if len(points) < k {
		return nil, &types.InsufficientPointsError{Need: k, Got: len(points)}
	}

	selected := points[:k]
	seen := make(map[int64]struct{}, k)
	for i, p := range selected {
		if _, ok := seen[p.X]; ok {
			return nil, &types.SingularMatrixError{Row: i, X: p.X}
		}
		seen[p.X] = struct{}{}
	}
	return selected, nil
}

// vandermonde builds the k x (k+1) augmented matrix [x^0 ... x^(k-1) | y]
func vandermonde(points []types.Point) [][]float64 {
	k := len(points)
	a := make([][]float64, k)
	for i, p := range points {
		a[i] = make([]float64, k+1)
		x := float64(p.X)
		for j := 0; j < k; j++ {
			a[i][j] = math.Pow(x, float64(j))
		}
		a[i][k], _ = new(big.Float).SetInt(p.Y).Float64()
	}
	return a
}

func solveFloat(points []types.Point, pivoting bool) ([]float64, error) {
	return solveMatrix(vandermonde(points), points, pivoting)
}

// solveMatrix solves the augmented matrix a in place. points gives the x
// reported by errors for each row.
func solveMatrix(a [][]float64, points []types.Point, pivoting bool) ([]float64, error) {
	k := len(a)

	// xs follows row swaps so errors name the right point
	xs := make([]int64, k)
	for i, p := range points {
		xs[i] = p.X
	}

	for i := 0; i < k; i++ {
		if pivoting {
			best := i
			for j := i + 1; j < k; j++ {
				if math.Abs(a[j][i]) > math.Abs(a[best][i]) {
					best = j
				}
			}
			a[i], a[best] = a[best], a[i]
			xs[i], xs[best] = xs[best], xs[i]
		}

		pivot := a[i][i]
		if pivot == 0 {
			return nil, &types.SingularMatrixError{Row: i, X: xs[i]}
		}
		for c := 0; c <= k; c++ {
			a[i][c] /= pivot
		}

		for j := i + 1; j < k; j++ {
			factor := a[j][i]
			for c := 0; c <= k; c++ {
				a[j][c] -= a[i][c] * factor
			}
		}
	}

	coeffs := make([]float64, k)
	for i := k - 1; i >= 0; i-- {
		coeffs[i] = a[i][k]
		for j := i + 1; j < k; j++ {
			coeffs[i] -= a[i][j] * coeffs[j]
		}
	}

	return coeffs, nil
}

// Evaluate evaluates the polynomial with the given coefficients at x
func Evaluate(coeffs []float64, x int64) float64 {
	fx := float64(x)
	result := 0.0
	// Horner's method
	for i := len(coeffs) - 1; i >= 0; i-- {
		result = result*fx + coeffs[i]
	}
	return result
}
