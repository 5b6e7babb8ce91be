package types

import (
	"fmt"
	"math/big"
)

// Share is one distributed share as read from a record: the share index x and
// the y value in its declared base.
type Share struct {
	X     int64
	Base  int
	Value string
}

// String implements fmt.Stringer
func (s Share) String() string {
	return fmt.Sprintf("{x: %d, base: %d, value: %s}", s.X, s.Base, s.Value)
}

// Point is a decoded share, one (x, y) point on the secret polynomial.
type Point struct {
	X int64
	Y *big.Int
}

// NewPoint creates a point from small integer coordinates
func NewPoint(x, y int64) Point {
	return Point{X: x, Y: big.NewInt(y)}
}

// String implements fmt.Stringer
func (p Point) String() string {
	return fmt.Sprintf("(%d, %s)", p.X, p.Y.String())
}

// ShareSet is the share set supplied by a loader, together with the declared
// number of shares and the threshold k. Shares are kept in supplied order.
type ShareSet struct {
	N      int
	K      int
	Shares []Share
}
