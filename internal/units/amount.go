package units

import (
	"fmt"
	"strconv"
	"strings"
)

// Amount is an exact non-negative rational quantity. Whole numbers and
// fractions share one representation; the denominator is always positive and
// the fraction is always reduced, so two equal amounts compare equal with ==.
//
// Amounts are value types and safe to copy.
type Amount struct {
	num int64
	den int64
}

// Whole returns an amount for an integer count.
func Whole(n int64) Amount {
	return Amount{num: n, den: 1}
}

// Frac returns a reduced fractional amount. The denominator must be positive.
func Frac(num, den int64) Amount {
	if den <= 0 {
		panic(fmt.Sprintf("units: fraction denominator must be positive, got %d", den))
	}
	return reduce(num, den)
}

// Mixed returns an amount for a mixed number such as "1 1/2".
func Mixed(whole, num, den int64) Amount {
	if den <= 0 {
		panic(fmt.Sprintf("units: fraction denominator must be positive, got %d", den))
	}
	return reduce(whole*den+num, den)
}

func reduce(num, den int64) Amount {
	if num == 0 {
		return Amount{num: 0, den: 1}
	}
	g := gcd(abs(num), den)
	return Amount{num: num / g, den: den / g}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// Add returns a + b over a common denominator, reduced.
func (a Amount) Add(b Amount) Amount {
	return reduce(a.num*b.den+b.num*a.den, a.den*b.den)
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount {
	return reduce(a.num*b.den-b.num*a.den, a.den*b.den)
}

// Mul returns a * b.
func (a Amount) Mul(b Amount) Amount {
	return reduce(a.num*b.num, a.den*b.den)
}

// MulInt returns a scaled by an integer factor.
func (a Amount) MulInt(n int64) Amount {
	return reduce(a.num*n, a.den)
}

// Div returns a / b. b must be non-zero.
func (a Amount) Div(b Amount) Amount {
	if b.num == 0 {
		panic("units: division by zero amount")
	}
	den := a.den * b.num
	num := a.num * b.den
	if den < 0 {
		num, den = -num, -den
	}
	return reduce(num, den)
}

// Cmp compares two amounts, returning -1, 0 or 1.
func (a Amount) Cmp(b Amount) int {
	l := a.num * b.den
	r := b.num * a.den
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a.num == 0
}

// IsWhole reports whether the amount has no fractional part.
func (a Amount) IsWhole() bool {
	return a.den == 1
}

// Parts splits the amount into its whole part and the remaining fraction.
// For "5/2" it returns (2, 1, 2).
func (a Amount) Parts() (whole, num, den int64) {
	return a.num / a.den, a.num % a.den, a.den
}

// Plural reports whether the amount should take a plural unit name.
func (a Amount) Plural() bool {
	return a.Cmp(Whole(1)) > 0
}

// String renders the amount as a whole number, a fraction "a/b", or a mixed
// number "a b/c".
func (a Amount) String() string {
	if a.den == 1 {
		return strconv.FormatInt(a.num, 10)
	}
	whole, num, den := a.Parts()
	if whole == 0 {
		return fmt.Sprintf("%d/%d", num, den)
	}
	return fmt.Sprintf("%d %d/%d", whole, num, den)
}

// ParseAmount parses a whole number, a fraction "a/b", or a mixed number
// "a b/c". The input must contain nothing else.
func ParseAmount(s string) (Amount, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		if strings.Contains(fields[0], "/") {
			return parseFraction(fields[0])
		}
		n, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil || n < 0 {
			return Amount{}, fmt.Errorf("invalid amount %q", s)
		}
		return Whole(n), nil
	case 2:
		whole, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil || whole < 0 {
			return Amount{}, fmt.Errorf("invalid amount %q", s)
		}
		frac, err := parseFraction(fields[1])
		if err != nil {
			return Amount{}, fmt.Errorf("invalid amount %q", s)
		}
		return Whole(whole).Add(frac), nil
	default:
		return Amount{}, fmt.Errorf("invalid amount %q", s)
	}
}

func parseFraction(s string) (Amount, error) {
	numStr, denStr, ok := strings.Cut(s, "/")
	if !ok {
		return Amount{}, fmt.Errorf("invalid fraction %q", s)
	}
	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil || num < 0 {
		return Amount{}, fmt.Errorf("invalid fraction %q", s)
	}
	den, err := strconv.ParseInt(denStr, 10, 64)
	if err != nil || den <= 0 {
		return Amount{}, fmt.Errorf("invalid fraction %q", s)
	}
	return Frac(num, den), nil
}
