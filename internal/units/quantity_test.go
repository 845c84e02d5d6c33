package units

import (
	"errors"
	"testing"
)

func TestAmountString(t *testing.T) {
	tests := []struct {
		name string
		amt  Amount
		want string
	}{
		{"whole", Whole(3), "3"},
		{"zero", Whole(0), "0"},
		{"simple fraction", Frac(1, 2), "1/2"},
		{"reduced fraction", Frac(2, 4), "1/2"},
		{"mixed number", Frac(5, 2), "2 1/2"},
		{"fraction reducing to whole", Frac(4, 2), "2"},
		{"mixed constructor", Mixed(1, 1, 3), "1 1/3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.amt.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAmountArithmetic(t *testing.T) {
	half := Frac(1, 2)
	third := Frac(1, 3)

	if got := half.Add(third); got != Frac(5, 6) {
		t.Errorf("1/2 + 1/3 = %v, want 5/6", got)
	}
	if got := half.Add(half); got != Whole(1) {
		t.Errorf("1/2 + 1/2 = %v, want 1", got)
	}
	if got := half.MulInt(3); got != Frac(3, 2) {
		t.Errorf("1/2 * 3 = %v, want 3/2", got)
	}
	if got := Whole(48).Div(Whole(192)); got != Frac(1, 4) {
		t.Errorf("48 / 192 = %v, want 1/4", got)
	}
	if got := Frac(3, 4).Cmp(Frac(2, 3)); got != 1 {
		t.Errorf("Cmp(3/4, 2/3) = %d, want 1", got)
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Quantity
		want    Quantity
		wantErr bool
	}{
		{
			name: "cups plus cups",
			a:    New(Whole(1), Cup),
			b:    New(Frac(1, 2), Cup),
			want: New(Frac(3, 2), Cup),
		},
		{
			name: "tbsp plus tsp lands in tbsp",
			a:    New(Whole(2), Tbsp),
			b:    New(Whole(3), Tsp),
			want: New(Whole(3), Tbsp),
		},
		{
			name: "cups never promote past the operand units",
			a:    New(Whole(3), Cup),
			b:    New(Whole(1), Cup),
			want: New(Whole(4), Cup),
		},
		{
			name: "sub-whole sum stays in the larger unit",
			a:    New(Frac(1, 4), Cup),
			b:    New(Whole(2), Tbsp),
			want: New(Frac(3, 8), Cup),
		},
		{
			name: "grams plus kilograms",
			a:    New(Whole(500), Gram),
			b:    New(Whole(1), Kilogram),
			want: New(Frac(3, 2), Kilogram),
		},
		{
			name: "milligrams stay exact",
			a:    New(Whole(500), Milligram),
			b:    New(Whole(1), Gram),
			want: New(Frac(3, 2), Gram),
		},
		{
			name: "counts",
			a:    Count(2),
			b:    Count(3),
			want: Count(5),
		},
		{
			name:    "volume plus weight conflicts",
			a:       New(Whole(1), Cup),
			b:       New(Whole(1), Gram),
			wantErr: true,
		},
		{
			name:    "count plus volume conflicts",
			a:       Count(1),
			b:       New(Whole(1), Tsp),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Add(tt.a, tt.b)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Add(%v, %v) succeeded, want conflict", tt.a, tt.b)
				}
				var conflict *UnitConflict
				if !errors.As(err, &conflict) {
					t.Fatalf("error is %T, want *UnitConflict", err)
				}
				if conflict.A != tt.a.Unit || conflict.B != tt.b.Unit {
					t.Errorf("conflict carries units %v/%v, want %v/%v",
						conflict.A, conflict.B, tt.a.Unit, tt.b.Unit)
				}
				return
			}
			if err != nil {
				t.Fatalf("Add(%v, %v) failed: %v", tt.a, tt.b, err)
			}
			if got != tt.want {
				t.Errorf("Add(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestScale(t *testing.T) {
	q := New(Frac(1, 2), Cup)
	if got := Scale(q, 3); got != New(Frac(3, 2), Cup) {
		t.Errorf("Scale(1/2 cup, 3) = %v, want 3/2 cup", got)
	}
	if got := Scale(Count(2), 4); got != Count(8) {
		t.Errorf("Scale(2, 4) = %v, want 8", got)
	}
}

func TestCompare(t *testing.T) {
	got, err := Compare(New(Whole(1), Cup), New(Whole(16), Tbsp))
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if got != 0 {
		t.Errorf("1 cup vs 16 tbsp = %d, want 0", got)
	}

	got, err = Compare(New(Whole(1), Kilogram), New(Whole(999), Gram))
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if got != 1 {
		t.Errorf("1 kg vs 999 g = %d, want 1", got)
	}

	if _, err := Compare(New(Whole(1), Cup), Count(1)); err == nil {
		t.Error("cross-family compare succeeded, want error")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Quantity
		wantErr bool
	}{
		{in: "3", want: Count(3)},
		{in: "1/2 cup", want: New(Frac(1, 2), Cup)},
		{in: "2 1/2 cups", want: New(Frac(5, 2), Cup)},
		{in: "1 tablespoon", want: New(Whole(1), Tbsp)},
		{in: "2 TBSP", want: New(Whole(2), Tbsp)},
		{in: "400 g", want: New(Whole(400), Gram)},
		{in: "1 kg", want: New(Whole(1), Kilogram)},
		{in: "250 mg", want: New(Whole(250), Milligram)},
		{in: "3 quarts", want: New(Whole(3), Quart)},
		{in: "2 cnt", want: Count(2)},
		{in: "", wantErr: true},
		{in: "cup", wantErr: true},
		{in: "1 parsec", wantErr: true},
		{in: "1/0 cup", wantErr: true},
		{in: "1 cup flour", wantErr: true},
		{in: "-2 cups", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// Formatting then re-parsing must return the identical quantity.
func TestParseFormatRoundTrip(t *testing.T) {
	quantities := []Quantity{
		Count(1),
		Count(12),
		New(Frac(1, 2), Tsp),
		New(Frac(5, 2), Cup),
		New(Whole(3), Tbsp),
		New(Whole(2), Pint),
		New(Frac(7, 3), Quart),
		New(Whole(1), Gallon),
		New(Whole(250), Milligram),
		New(Frac(1, 4), Gram),
		New(Frac(3, 2), Kilogram),
	}
	for _, q := range quantities {
		t.Run(q.String(), func(t *testing.T) {
			got, err := Parse(q.String())
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", q.String(), err)
			}
			if got != q {
				t.Errorf("round trip of %v produced %v", q, got)
			}
		})
	}
}

func TestAddMatchesScale(t *testing.T) {
	quantities := []Quantity{
		New(Whole(2), Cup),
		New(Frac(1, 2), Cup),
		New(Whole(3), Tbsp),
		New(Whole(250), Gram),
		Count(3),
	}
	for _, q := range quantities {
		t.Run(q.String(), func(t *testing.T) {
			sum, err := Add(q, q)
			if err != nil {
				t.Fatalf("Add(%v, %v) failed: %v", q, q, err)
			}
			if doubled := Scale(q, 2); sum != doubled {
				t.Errorf("Add(%v, %v) = %v, Scale by 2 = %v", q, q, sum, doubled)
			}
		})
	}
}
