// Package recipe parses free-form recipe text into structured recipes.
//
// The accepted format is a title line followed by one ingredient per line:
//
//	title: Banana Bread
//	2 cups flour
//	1/2 cup sugar
//	3 eggs
//	1 tsp vanilla extract
//	2 bananas (mashed)
//
// Each ingredient line is "<quantity> [unit] <name> [(form)]". The quantity is
// a whole number, a fraction "a/b", or a mixed number "a b/c". The unit token
// is optional and matched case-insensitively against the units vocabulary; a
// missing unit means a count. The parenthesized form descriptor, when present,
// must close the line.
//
// Malformed lines are collected as line-scoped parse errors and do not abort
// the rest of the recipe: the parser returns the recipe built from the valid
// lines together with the error list, so callers can surface warnings without
// rejecting an otherwise usable recipe.
package recipe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mealwright/mealwright/internal/models"
	"github.com/mealwright/mealwright/internal/units"
)

var (
	// ErrMissingQuantity marks an ingredient line with no parsable leading
	// quantity.
	ErrMissingQuantity = errors.New("missing leading quantity")

	// ErrNoTitle is returned when the text contains no title line.
	ErrNoTitle = errors.New("recipe has no title line")
)

// ParseError describes one malformed ingredient line.
type ParseError struct {
	// Line is the 1-based line number within the raw text.
	Line int

	// Raw is the offending line as written.
	Raw string

	// Err is the underlying reason.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse converts raw recipe text into a Recipe. The first non-empty line is
// the title (an optional "title:" prefix is stripped); every following
// non-empty line is parsed as an ingredient. Malformed lines are returned as
// ParseErrors alongside the recipe rather than aborting the parse. The error
// return is non-nil only for structurally unusable input (no title at all).
func Parse(raw string) (models.Recipe, []*ParseError, error) {
	lines := strings.Split(raw, "\n")

	var rec models.Recipe
	var errs []*ParseError
	titleSeen := false

	for i, line := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !titleSeen {
			title := strings.TrimSpace(strings.TrimPrefix(trimmed, "title:"))
			if title == "" {
				return models.Recipe{}, nil, ErrNoTitle
			}
			rec.Title = title
			titleSeen = true
			continue
		}

		ing, err := ParseIngredient(trimmed)
		if err != nil {
			errs = append(errs, &ParseError{Line: lineNo, Raw: trimmed, Err: err})
			continue
		}
		rec.Ingredients = append(rec.Ingredients, ing)
	}

	if !titleSeen {
		return models.Recipe{}, nil, ErrNoTitle
	}
	return rec, errs, nil
}

// ParseIngredient parses one ingredient line of the form
// "<quantity> [unit] <name> [(form)]".
func ParseIngredient(line string) (models.IngredientLine, error) {
	rest := strings.TrimSpace(line)

	// Split off the parenthesized form descriptor, if any. It must close the
	// line; ambiguous parentheses mid-line are rejected rather than guessed at.
	form := ""
	if idx := strings.Index(rest, "("); idx >= 0 {
		tail := strings.TrimSpace(rest[idx:])
		if !strings.HasSuffix(tail, ")") {
			return models.IngredientLine{}, fmt.Errorf("unclosed form descriptor")
		}
		form = strings.TrimSpace(tail[1 : len(tail)-1])
		if form == "" {
			return models.IngredientLine{}, fmt.Errorf("empty form descriptor")
		}
		rest = strings.TrimSpace(rest[:idx])
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 || !leadsWithNumber(fields[0]) {
		return models.IngredientLine{}, ErrMissingQuantity
	}

	// One or two leading fields form the quantity expression; "1 1/2" is a
	// mixed number only when the first field is a plain integer.
	amountEnd := 1
	if len(fields) >= 2 && !strings.Contains(fields[0], "/") && isFraction(fields[1]) {
		amountEnd = 2
	}
	amount, err := units.ParseAmount(strings.Join(fields[:amountEnd], " "))
	if err != nil {
		return models.IngredientLine{}, fmt.Errorf("%w: %v", ErrMissingQuantity, err)
	}

	fields = fields[amountEnd:]
	unit := units.UnitCount
	if len(fields) > 0 {
		if u, ok := units.UnitFromToken(fields[0]); ok {
			unit = u
			fields = fields[1:]
		}
	}

	name := strings.Join(fields, " ")
	if name == "" {
		return models.IngredientLine{}, fmt.Errorf("missing ingredient name")
	}

	q := units.New(amount, unit)
	return models.IngredientLine{
		Key:      models.NewIngredientKey(name, form, q),
		Quantity: q,
	}, nil
}

func leadsWithNumber(s string) bool {
	return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
}

func isFraction(s string) bool {
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
