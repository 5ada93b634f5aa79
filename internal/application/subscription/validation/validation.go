// Package validation holds the pure field validators for subscription input.
// Validators never return errors as Go errors; they return a field-keyed
// message map so multiple violations surface in one response.
package validation

import (
	"strings"
	"unicode/utf8"

	vo "subtrack/internal/domain/subscription/valueobjects"
	"subtrack/internal/shared/dateutil"
)

// Input carries the raw string fields of a create or update request. A nil
// pointer means the field was absent from the request.
type Input struct {
	Name            *string
	Amount          *string
	Periodicity     *string
	StartDate       *string
	NextPaymentDate *string
}

// escaper neutralizes angle brackets in place rather than stripping them,
// so stored values still reflect what the user typed.
var escaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// Sanitize trims and escapes every string field present in the input.
func Sanitize(in Input) Input {
	out := Input{}
	out.Name = sanitizeField(in.Name)
	out.Amount = sanitizeField(in.Amount)
	out.Periodicity = sanitizeField(in.Periodicity)
	out.StartDate = sanitizeField(in.StartDate)
	out.NextPaymentDate = sanitizeField(in.NextPaymentDate)
	return out
}

func sanitizeField(value *string) *string {
	if value == nil {
		return nil
	}
	s := escaper.Replace(strings.TrimSpace(*value))
	return &s
}

// ValidateCreate checks a full create payload: name, amount, periodicity and
// start date are all required.
func ValidateCreate(in Input) map[string]string {
	errors := map[string]string{}

	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		errors["name"] = "Name is required"
	}
	if in.Amount == nil {
		errors["amount"] = "Amount is required"
	}
	if in.Periodicity == nil {
		errors["periodicity"] = periodicityMessage()
	}
	if in.StartDate == nil {
		errors["start_date"] = "Invalid date format. Use YYYY-MM-DD"
	}

	validatePresent(in, errors)
	return errors
}

// ValidateUpdate checks only the fields present in the input; absent fields
// produce no errors.
func ValidateUpdate(in Input) map[string]string {
	errors := map[string]string{}
	validatePresent(in, errors)
	return errors
}

// validatePresent applies per-field rules to whichever fields are set,
// skipping any field that already has an error recorded.
func validatePresent(in Input, errors map[string]string) {
	if in.Name != nil && errors["name"] == "" {
		if strings.TrimSpace(*in.Name) == "" {
			errors["name"] = "Name is required"
		} else if utf8.RuneCountInString(*in.Name) > 100 {
			errors["name"] = "Name must be less than 100 characters"
		}
	}

	if in.Amount != nil && errors["amount"] == "" {
		if msg := amountMessage(*in.Amount); msg != "" {
			errors["amount"] = msg
		}
	}

	if in.Periodicity != nil && errors["periodicity"] == "" {
		if _, err := vo.ParsePeriodicity(*in.Periodicity); err != nil {
			errors["periodicity"] = periodicityMessage()
		}
	}

	if in.StartDate != nil && errors["start_date"] == "" {
		// No past-date restriction on the start date.
		if _, err := dateutil.Parse(*in.StartDate); err != nil {
			errors["start_date"] = "Invalid date format. Use YYYY-MM-DD"
		}
	}

	if in.NextPaymentDate != nil && errors["next_payment_date"] == "" {
		date, err := dateutil.Parse(*in.NextPaymentDate)
		if err != nil {
			errors["next_payment_date"] = "Invalid date format. Use YYYY-MM-DD"
		} else if date.Before(dateutil.Today()) {
			errors["next_payment_date"] = "Next payment date cannot be in the past"
		}
	}
}

func amountMessage(raw string) string {
	_, err := vo.ParseAmount(raw)
	switch err {
	case nil:
		return ""
	case vo.ErrAmountNotPositive:
		return "Amount must be greater than 0"
	case vo.ErrAmountTooLarge:
		return "Amount is too large"
	default:
		return "Invalid amount format"
	}
}

func periodicityMessage() string {
	tags := make([]string, 0, len(vo.AllPeriodicities))
	for _, p := range vo.AllPeriodicities {
		tags = append(tags, p.String())
	}
	return "Invalid periodicity. Must be one of: " + strings.Join(tags, ", ")
}
