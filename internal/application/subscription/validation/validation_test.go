package validation

import (
	"strings"
	"testing"
	"time"
)

func ptr(s string) *string {
	return &s
}

func TestValidateCreate_AllFieldsMissing(t *testing.T) {
	errs := ValidateCreate(Input{})

	if len(errs) != 4 {
		t.Fatalf("got %d errors, want 4: %v", len(errs), errs)
	}
	if errs["name"] != "Name is required" {
		t.Errorf("name error = %q", errs["name"])
	}
	if errs["amount"] != "Amount is required" {
		t.Errorf("amount error = %q", errs["amount"])
	}
	if !strings.HasPrefix(errs["periodicity"], "Invalid periodicity. Must be one of:") {
		t.Errorf("periodicity error = %q", errs["periodicity"])
	}
	if errs["start_date"] != "Invalid date format. Use YYYY-MM-DD" {
		t.Errorf("start_date error = %q", errs["start_date"])
	}
}

func TestValidateCreate_FieldRules(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		field string
		want  string
	}{
		{"blank name", Input{Name: ptr("   ")}, "name", "Name is required"},
		{"overlong name", Input{Name: ptr(strings.Repeat("x", 101))}, "name", "Name must be less than 100 characters"},
		{"overlong multibyte name", Input{Name: ptr(strings.Repeat("ü", 101))}, "name", "Name must be less than 100 characters"},
		// 100 multibyte characters exceed 100 bytes but stay within the limit.
		{"multibyte name at limit", Input{Name: ptr(strings.Repeat("ü", 100))}, "name", ""},
		{"zero amount", Input{Amount: ptr("0")}, "amount", "Amount must be greater than 0"},
		{"negative amount", Input{Amount: ptr("-5")}, "amount", "Amount must be greater than 0"},
		{"huge amount", Input{Amount: ptr("1000001")}, "amount", "Amount is too large"},
		{"malformed amount", Input{Amount: ptr("abc")}, "amount", "Invalid amount format"},
		{"unknown periodicity", Input{Periodicity: ptr("biweekly")}, "periodicity", "Invalid periodicity. Must be one of: daily, weekly, monthly, quarterly, yearly"},
		{"malformed start date", Input{StartDate: ptr("01/02/2024")}, "start_date", "Invalid date format. Use YYYY-MM-DD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateCreate(tt.in)
			if errs[tt.field] != tt.want {
				t.Errorf("errs[%q] = %q, want %q", tt.field, errs[tt.field], tt.want)
			}
		})
	}
}

func TestValidateCreate_Valid(t *testing.T) {
	errs := ValidateCreate(Input{
		Name:        ptr("Netflix"),
		Amount:      ptr("15.99"),
		Periodicity: ptr("monthly"),
		StartDate:   ptr("2024-01-01"),
	})
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestValidateCreate_PastStartDateAllowed(t *testing.T) {
	errs := ValidateCreate(Input{
		Name:        ptr("Netflix"),
		Amount:      ptr("15.99"),
		Periodicity: ptr("monthly"),
		StartDate:   ptr("1999-12-31"),
	})
	if msg, ok := errs["start_date"]; ok {
		t.Errorf("past start date should be accepted, got %q", msg)
	}
}

func TestValidateUpdate_ChecksOnlyPresentFields(t *testing.T) {
	errs := ValidateUpdate(Input{Amount: ptr("abc")})

	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if errs["amount"] != "Invalid amount format" {
		t.Errorf("amount error = %q", errs["amount"])
	}
}

func TestValidateUpdate_NextPaymentDate(t *testing.T) {
	if errs := ValidateUpdate(Input{NextPaymentDate: ptr("2020-01-01")}); errs["next_payment_date"] != "Next payment date cannot be in the past" {
		t.Errorf("past date error = %q", errs["next_payment_date"])
	}

	future := time.Now().UTC().AddDate(1, 0, 0).Format("2006-01-02")
	if errs := ValidateUpdate(Input{NextPaymentDate: ptr(future)}); len(errs) != 0 {
		t.Errorf("future date rejected: %v", errs)
	}

	today := time.Now().UTC().Format("2006-01-02")
	if errs := ValidateUpdate(Input{NextPaymentDate: ptr(today)}); len(errs) != 0 {
		t.Errorf("today rejected: %v", errs)
	}
}

func TestSanitize(t *testing.T) {
	in := Input{
		Name:   ptr("  <b>Netflix</b>  "),
		Amount: ptr(" 15.99 "),
	}
	out := Sanitize(in)

	if got := *out.Name; got != "&lt;b&gt;Netflix&lt;/b&gt;" {
		t.Errorf("sanitized name = %q", got)
	}
	if got := *out.Amount; got != "15.99" {
		t.Errorf("sanitized amount = %q", got)
	}
	if out.Periodicity != nil {
		t.Error("absent fields must stay nil")
	}
	if *in.Name != "  <b>Netflix</b>  " {
		t.Error("Sanitize must not mutate its input")
	}
}
