package valueobjects

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr error
	}{
		{raw: "15.99", want: "15.99"},
		{raw: "0.01", want: "0.01"},
		{raw: "1000000", want: "1000000"},
		{raw: "0", wantErr: ErrAmountNotPositive},
		{raw: "-5", wantErr: ErrAmountNotPositive},
		{raw: "1000000.01", wantErr: ErrAmountTooLarge},
		{raw: "abc", wantErr: ErrAmountMalformed},
		{raw: "", wantErr: ErrAmountMalformed},
		{raw: "12,50", wantErr: ErrAmountMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseAmount(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) error = %v", tt.raw, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAmount_ExactDecimal(t *testing.T) {
	a, err := ParseAmount("15.99")
	if err != nil {
		t.Fatalf("ParseAmount: %v", err)
	}
	if !a.Decimal().Equal(decimal.RequireFromString("15.99")) {
		t.Errorf("amount drifted: got %s", a.Decimal())
	}

	b, _ := ParseAmount("0.01")
	if sum := a.Add(b); !sum.Equal(decimal.RequireFromString("16.00")) {
		t.Errorf("Add = %s, want 16.00", sum)
	}
}
