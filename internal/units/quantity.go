// Package units implements exact quantities for recipe ingredients.
//
// A Quantity pairs a rational Amount with a Unit drawn from a closed
// vocabulary. Units belong to families (volume, weight, count); arithmetic is
// only defined within a family and converts through a fixed base unit
// (teaspoons for volume, grams for weight) so that "1 cup + 2 tbsp" sums
// exactly. Amounts are rationals, never floats, so scaling and summing
// recipes cannot accumulate rounding error.
package units

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownUnit is wrapped by Parse when a token is not part of the unit
// vocabulary.
var ErrUnknownUnit = errors.New("unknown unit")

// Quantity is an amount paired with a unit.
type Quantity struct {
	Amount Amount
	Unit   Unit
}

// New returns a quantity with the given amount and unit.
func New(a Amount, u Unit) Quantity {
	return Quantity{Amount: a, Unit: u}
}

// Count returns a unitless quantity of n items.
func Count(n int64) Quantity {
	return Quantity{Amount: Whole(n), Unit: UnitCount}
}

// Family returns the unit family of the quantity.
func (q Quantity) Family() Family {
	return q.Unit.Family()
}

// UnitConflict is returned when two quantities from different unit families
// are combined. It carries both units so the caller can surface the clash.
type UnitConflict struct {
	A Unit
	B Unit
}

func (e *UnitConflict) Error() string {
	return fmt.Sprintf("unit conflict: cannot combine %s (%s) with %s (%s)",
		name(e.A), e.A.Family(), name(e.B), e.B.Family())
}

func name(u Unit) string {
	if u == UnitCount {
		return "count"
	}
	return u.String()
}

// inBaseUnit converts the quantity's amount to its family's base unit.
func (q Quantity) inBaseUnit() Amount {
	if q.Unit == UnitCount {
		return q.Amount
	}
	return q.Amount.Mul(inBase[q.Unit])
}

// Add sums two quantities of the same unit family. The operands are converted
// to the family's base unit, summed exactly, and the result is re-expressed in
// the larger of the two operands' units. The sum never moves to a unit neither
// operand used, so adding a quantity to itself n times always equals scaling
// it by n. Adding across families returns a *UnitConflict.
func Add(a, b Quantity) (Quantity, error) {
	if a.Family() != b.Family() {
		return Quantity{}, &UnitConflict{A: a.Unit, B: b.Unit}
	}
	sum := a.inBaseUnit().Add(b.inBaseUnit())
	if a.Family() == FamilyCount {
		return Quantity{Amount: sum, Unit: UnitCount}, nil
	}
	unit := a.Unit
	if inBase[b.Unit].Cmp(inBase[a.Unit]) > 0 {
		unit = b.Unit
	}
	return Quantity{Amount: sum.Div(inBase[unit]), Unit: unit}, nil
}

// Scale multiplies the amount by a positive integer factor. The unit is
// unchanged.
func Scale(q Quantity, factor int64) Quantity {
	return Quantity{Amount: q.Amount.MulInt(factor), Unit: q.Unit}
}

// Compare orders two quantities of the same family, returning -1, 0 or 1.
// Comparing across families returns a *UnitConflict.
func Compare(a, b Quantity) (int, error) {
	if a.Family() != b.Family() {
		return 0, &UnitConflict{A: a.Unit, B: b.Unit}
	}
	return a.inBaseUnit().Cmp(b.inBaseUnit()), nil
}

// String renders the quantity for display, e.g. "2 1/2 cups", "400 grams",
// "3". Unit names pluralize for amounts greater than one, except "mg" which
// is invariant.
func (q Quantity) String() string {
	if q.Unit == UnitCount {
		return q.Amount.String()
	}
	u := q.Unit.String()
	if q.Amount.Plural() && q.Unit != Milligram {
		u += "s"
	}
	return q.Amount.String() + " " + u
}

// Parse reads a quantity of the form "<amount> [unit]" where amount is a
// whole number, fraction, or mixed number, and the optional unit token is
// matched case-insensitively against the unit vocabulary. A missing unit
// means a count. Parse is the inverse of String for every exact quantity.
func Parse(s string) (Quantity, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Quantity{}, fmt.Errorf("empty quantity")
	}

	// Up to two leading fields can belong to the amount (mixed numbers).
	amountEnd := 1
	if len(fields) >= 2 && isFractionToken(fields[1]) && !strings.Contains(fields[0], "/") {
		amountEnd = 2
	}
	amount, err := ParseAmount(strings.Join(fields[:amountEnd], " "))
	if err != nil {
		return Quantity{}, err
	}

	rest := fields[amountEnd:]
	switch len(rest) {
	case 0:
		return Quantity{Amount: amount, Unit: UnitCount}, nil
	case 1:
		u, ok := UnitFromToken(rest[0])
		if !ok {
			return Quantity{}, fmt.Errorf("%w: %q", ErrUnknownUnit, rest[0])
		}
		return Quantity{Amount: amount, Unit: u}, nil
	default:
		return Quantity{}, fmt.Errorf("trailing text after quantity: %q", strings.Join(rest, " "))
	}
}

func isFractionToken(s string) bool {
	numStr, denStr, ok := strings.Cut(s, "/")
	if !ok || numStr == "" || denStr == "" {
		return false
	}
	for _, r := range numStr + denStr {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
