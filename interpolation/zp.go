package interpolation

import (
	"math/big"

	"go.dedis.ch/secretrecover/types"
	"golang.org/x/xerrors"
)

// DefaultPrime is the secp256k1 field prime, used when no modulus is configured
var DefaultPrime, _ = new(big.Int).SetString(
	"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F", 16)

// ReconstructSecretZp returns P(0) mod p of the polynomial through the first k
// points, by Lagrange interpolation in Zp.
func ReconstructSecretZp(points []types.Point, k int, p *big.Int) (*big.Int, error) {
	return InterpolateZp(points, k, big.NewInt(0), p)
}

// InterpolateZp evaluates at x, in Zp, the polynomial through the first k
// points. Two x values equal mod p make the system singular.
func InterpolateZp(points []types.Point, k int, x, p *big.Int) (*big.Int, error) {
	if p == nil || p.Cmp(big.NewInt(2)) < 0 {
		return nil, xerrors.Errorf("invalid modulus %v", p)
	}
	selected, err := selectPoints(points, k)
	if err != nil {
		return nil, err
	}

	xcoord := make([]*big.Int, k)
	ycoord := make([]*big.Int, k)
	for i, pt := range selected {
		xcoord[i] = new(big.Int).Mod(big.NewInt(pt.X), p)
		ycoord[i] = new(big.Int).Mod(pt.Y, p)
	}
	at := new(big.Int).Mod(x, p)

	result := big.NewInt(0)
	for i, y := range ycoord {
		w := big.NewInt(1)
		for j, xj := range xcoord {
			if i == j {
				continue
			}
			// l_i(at) = prod (at - x_j) / (x_i - x_j)
			denominator := subZp(xcoord[i], xj, p)
			if denominator.Sign() == 0 {
				return nil, &types.SingularMatrixError{Row: later(i, j), X: selected[later(i, j)].X}
			}
			quo, ok := divZp(subZp(at, xj, p), denominator, p)
			if !ok {
				return nil, xerrors.Errorf("%v is not invertible mod %v", denominator, p)
			}
			w = multZp(w, quo, p)
		}
		result = addZp(result, multZp(w, y, p), p)
	}

	return result, nil
}

// addZp returns a + b mod p
func addZp(a, b, p *big.Int) *big.Int {
	sum := new(big.Int).Add(a, b)
	return sum.Mod(sum, p)
}

// subZp returns a - b mod p, a and b in Zp
func subZp(a, b, p *big.Int) *big.Int {
	dif := new(big.Int).Sub(a, b)
	if dif.Sign() < 0 {
		dif.Add(dif, p)
	}
	return dif
}

// multZp returns a * b mod p
func multZp(a, b, p *big.Int) *big.Int {
	prod := new(big.Int).Mul(a, b)
	return prod.Mod(prod, p)
}

// divZp returns a * b^-1 mod p. It fails when b has no inverse, which only
// happens for a composite p.
func divZp(a, b, p *big.Int) (*big.Int, bool) {
	inv := new(big.Int).ModInverse(b, p)
	if inv == nil {
		return nil, false
	}
	return multZp(a, inv, p), true
}

func later(a, b int) int {
	if a > b {
		return a
	}
	return b
}
