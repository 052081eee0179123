// Package fixed implements signed 16.16 fixed-point arithmetic for the
// scanline interpolators.
//
// A Fixed holds 16 integer bits and 16 fractional bits in an int32. All
// arithmetic wraps on overflow (two's complement); nothing saturates.
package fixed

import "fmt"

// Shift is the number of fractional bits.
const Shift = 16

// Fixed is a signed 16.16 fixed-point number.
type Fixed int32

const (
	One  Fixed = 1 << Shift
	Half Fixed = 1 << (Shift - 1)
)

// FromInt converts an integer to fixed point. Values outside the 16-bit
// integer range wrap.
func FromInt(v int) Fixed {
	return Fixed(int32(v) << Shift)
}

// FromFloat converts a float to fixed point, truncating toward zero.
func FromFloat(v float64) Fixed {
	return Fixed(int32(int64(v * float64(One))))
}

// FromRatio returns num/den with the quotient truncated toward zero.
// A zero denominator yields 0.
func FromRatio(num, den int) Fixed {
	if den == 0 {
		return 0
	}
	return Fixed(int32((int64(num) << Shift) / int64(den)))
}

// Int returns the integer part, rounded toward negative infinity.
func (f Fixed) Int() int {
	return int(f >> Shift)
}

// Round returns the nearest integer, halves rounding up.
func (f Fixed) Round() int {
	return int((f + Half) >> Shift)
}

// Float converts f to a float64.
func (f Fixed) Float() float64 {
	return float64(f) / float64(One)
}

// MulInt returns f*n.
func (f Fixed) MulInt(n int) Fixed {
	return Fixed(int32(int64(f) * int64(n)))
}

// Scale applies f as a weight to an integer value and truncates the result,
// e.g. a color channel times an interpolation weight.
func (f Fixed) Scale(v int32) int32 {
	return int32((int64(v) * int64(f)) >> Shift)
}

func (f Fixed) String() string {
	return fmt.Sprintf("%.5f", f.Float())
}
