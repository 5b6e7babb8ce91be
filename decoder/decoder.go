package decoder

import (
	"math/big"

	"go.dedis.ch/secretrecover/types"
)

const (
	MinBase = 2
	MaxBase = 36
)

// Decode returns the nonnegative integer written as value in the given base.
// Letters are case-insensitive and stand for the digits 10 to 35.
func Decode(base int, value string) (*big.Int, error) {
	if base < MinBase || base > MaxBase {
		return nil, &types.InvalidBaseError{Base: base}
	}
	if value == "" {
		return nil, &types.InvalidDigitError{Base: base, Value: value}
	}

	b := big.NewInt(int64(base))
	result := big.NewInt(0)
	d := new(big.Int)
	for i, c := range value {
		digit, ok := digitValue(c)
		if !ok || digit >= base {
			return nil, &types.InvalidDigitError{
				Base: base, Value: value, Position: i, Digit: c,
			}
		}
		result.Mul(result, b)
		result.Add(result, d.SetInt64(int64(digit)))
	}

	return result, nil
}

// DecodeShare decodes the value of a share into a point
func DecodeShare(share types.Share) (types.Point, error) {
	y, err := Decode(share.Base, share.Value)
	if err != nil {
		return types.Point{}, err
	}
	return types.Point{X: share.X, Y: y}, nil
}

// digitValue maps 0-9, a-z and A-Z to 0..35
func digitValue(c rune) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}
