package units

import "strings"

// Unit is the closed vocabulary of measurement units. Units are grouped into
// families; quantities may only be combined within a family.
type Unit int

const (
	// UnitCount is the unitless measure for discrete items ("3 eggs").
	UnitCount Unit = iota

	// Volume units.
	Tsp
	Tbsp
	Cup
	Pint
	Quart
	Gallon

	// Weight units.
	Milligram
	Gram
	Kilogram
)

// Family partitions the unit vocabulary. Quantities in different families
// cannot be summed.
type Family int

const (
	FamilyCount Family = iota
	FamilyVolume
	FamilyWeight
)

// String returns the family name used as the measure type in ingredient keys.
func (f Family) String() string {
	switch f {
	case FamilyVolume:
		return "Volume"
	case FamilyWeight:
		return "Weight"
	default:
		return "Count"
	}
}

// Family returns the family the unit belongs to.
func (u Unit) Family() Family {
	switch u {
	case Tsp, Tbsp, Cup, Pint, Quart, Gallon:
		return FamilyVolume
	case Milligram, Gram, Kilogram:
		return FamilyWeight
	default:
		return FamilyCount
	}
}

// inBase is the size of each unit expressed in its family's base unit
// (teaspoons for volume, grams for weight). Count has no conversion.
var inBase = map[Unit]Amount{
	Tsp:       Whole(1),
	Tbsp:      Whole(3),
	Cup:       Whole(48),
	Pint:      Whole(96),
	Quart:     Whole(192),
	Gallon:    Whole(768),
	Milligram: Frac(1, 1000),
	Gram:      Whole(1),
	Kilogram:  Whole(1000),
}

// String returns the singular display name of the unit. Count renders as the
// empty string; a counted quantity is just its number.
func (u Unit) String() string {
	switch u {
	case Tsp:
		return "tsp"
	case Tbsp:
		return "tbsp"
	case Cup:
		return "cup"
	case Pint:
		return "pint"
	case Quart:
		return "quart"
	case Gallon:
		return "gallon"
	case Milligram:
		return "mg"
	case Gram:
		return "gram"
	case Kilogram:
		return "kilogram"
	default:
		return ""
	}
}

// unitTokens maps every accepted unit spelling, lowercased, to its unit.
// Singular and plural spellings are both listed so the parser can match
// case-insensitively without guessing at inflection rules.
var unitTokens = map[string]Unit{
	"tsp": Tsp, "tsps": Tsp, "teaspoon": Tsp, "teaspoons": Tsp,
	"tbsp": Tbsp, "tbsps": Tbsp, "tablespoon": Tbsp, "tablespoons": Tbsp,
	"cup": Cup, "cups": Cup,
	"pint": Pint, "pints": Pint, "pnt": Pint,
	"quart": Quart, "quarts": Quart, "qrt": Quart, "qrts": Quart,
	"gallon": Gallon, "gallons": Gallon, "gal": Gallon, "gals": Gallon,
	"mg": Milligram, "milligram": Milligram, "milligrams": Milligram,
	"g": Gram, "gram": Gram, "grams": Gram,
	"kg": Kilogram, "kilogram": Kilogram, "kilograms": Kilogram,
	"cnt": UnitCount, "count": UnitCount,
}

// UnitFromToken resolves a unit spelling case-insensitively. The second
// return reports whether the token is part of the unit vocabulary.
func UnitFromToken(token string) (Unit, bool) {
	u, ok := unitTokens[strings.ToLower(token)]
	return u, ok
}
