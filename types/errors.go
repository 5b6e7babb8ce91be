package types

import "fmt"

// InvalidBaseError is returned when a declared base is outside [2, 36].
type InvalidBaseError struct {
	Base int
}

func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("invalid base %d: must be in [2, 36]", e.Base)
}

// InvalidDigitError is returned when an encoded value holds a character that
// is not a digit of the declared base. An empty value reports Position 0 and a
// zero Digit.
type InvalidDigitError struct {
	Base     int
	Value    string
	Position int
	Digit    rune
}

func (e *InvalidDigitError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("empty value in base %d", e.Base)
	}
	return fmt.Sprintf("invalid digit %q at position %d of %q in base %d",
		e.Digit, e.Position, e.Value, e.Base)
}

// SingularMatrixError is returned when elimination meets a zero pivot. Row is
// the pivot row, or the later of two rows sharing the same x.
type SingularMatrixError struct {
	Row int
	X   int64
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("singular matrix: zero pivot at row %d (x=%d)", e.Row, e.X)
}

// InsufficientPointsError is returned when fewer than k points are supplied.
type InsufficientPointsError struct {
	Need int
	Got  int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("not enough points: need %d, got %d", e.Need, e.Got)
}

// InvalidThresholdError is returned when the threshold k is below 1.
type InvalidThresholdError struct {
	K int
}

func (e *InvalidThresholdError) Error() string {
	return fmt.Sprintf("invalid threshold %d: must be at least 1", e.K)
}
