package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/utils/accounting"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Rule inspects a candidate and reports field-keyed problems. Rules are pure.
type Rule[T any] func(T) Errors

// Validate runs every rule against candidate and returns the merged report, or nil.
func Validate[T any](candidate T, rules ...Rule[T]) error {
	all := Errors{}
	for _, rule := range rules {
		if errs := rule(candidate); len(errs) > 0 {
			all.Merge(errs)
		}
	}
	return all.OrNil()
}

// Check validates a single value and returns a message, or "" when the value is acceptable.
type Check[V any] func(V) string

// Field builds a rule that extracts one value and runs checks on it. Checks stop at the first failure.
func Field[T, V any](name string, get func(T) V, checks ...Check[V]) Rule[T] {
	return func(candidate T) Errors {
		v := get(candidate)
		for _, check := range checks {
			if msg := check(v); msg != "" {
				return Errors{name: {msg}}
			}
		}
		return nil
	}
}

// Optional skips the remaining checks for empty strings.
func Optional(checks ...Check[string]) Check[string] {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return ""
		}
		for _, check := range checks {
			if msg := check(v); msg != "" {
				return msg
			}
		}
		return ""
	}
}

// Required rejects blank strings.
func Required() Check[string] {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return "is required"
		}
		return ""
	}
}

// Length bounds the rune length of a string. max <= 0 means unbounded.
func Length(min, max int) Check[string] {
	return func(v string) string {
		n := len([]rune(v))
		if n < min {
			return fmt.Sprintf("must be at least %d characters", min)
		}
		if max > 0 && n > max {
			return fmt.Sprintf("must be at most %d characters", max)
		}
		return ""
	}
}

// MaxLength bounds the rune length of a string from above.
func MaxLength(max int) Check[string] {
	return Length(0, max)
}

// Matches checks a string against a pattern.
func Matches(re *regexp.Regexp, message string) Check[string] {
	return func(v string) string {
		if !re.MatchString(v) {
			return message
		}
		return ""
	}
}

// Tag runs a go-playground/validator tag against a single value.
func Tag(tag, message string) Check[string] {
	return func(v string) string {
		if err := engine.Var(v, tag); err != nil {
			return message
		}
		return ""
	}
}

// OneOf checks enum membership.
func OneOf[V ~string](allowed ...V) Check[V] {
	return func(v V) string {
		for _, a := range allowed {
			if v == a {
				return ""
			}
		}
		names := make([]string, len(allowed))
		for i, a := range allowed {
			names[i] = string(a)
		}
		return "must be one of: " + strings.Join(names, ", ")
	}
}

// NonNegative rejects amounts below zero.
func NonNegative() Check[decimal.Decimal] {
	return func(v decimal.Decimal) string {
		if v.IsNegative() {
			return "must not be negative"
		}
		return ""
	}
}

// Positive rejects amounts that are zero or below.
func Positive() Check[decimal.Decimal] {
	return func(v decimal.Decimal) string {
		if !v.IsPositive() {
			return "must be greater than zero"
		}
		return ""
	}
}

// Money rejects amounts with more decimal places than a stored amount keeps.
func Money() Check[decimal.Decimal] {
	return func(v decimal.Decimal) string {
		if !accounting.HasMoneyScale(v) {
			return "must not have more than 2 decimal places"
		}
		return ""
	}
}

// IntRange bounds an integer inclusively.
func IntRange(min, max int) Check[int] {
	return func(v int) string {
		if v < min || v > max {
			return fmt.Sprintf("must be between %d and %d", min, max)
		}
		return ""
	}
}

// RequiredDate rejects the zero time.
func RequiredDate() Check[time.Time] {
	return func(v time.Time) string {
		if v.IsZero() {
			return "is required"
		}
		return ""
	}
}

// NotEmpty rejects empty slices.
func NotEmpty[E any](message string) Check[[]E] {
	return func(v []E) string {
		if len(v) == 0 {
			return message
		}
		return ""
	}
}

// Each applies per-element rules and keys errors as name[i].field.
func Each[T, E any](name string, get func(T) []E, rules ...Rule[E]) Rule[T] {
	return func(candidate T) Errors {
		out := Errors{}
		for i, elem := range get(candidate) {
			for _, rule := range rules {
				for field, msgs := range rule(elem) {
					key := fmt.Sprintf("%s[%d].%s", name, i, field)
					out[key] = append(out[key], msgs...)
				}
			}
		}
		return out
	}
}

// When runs rule only if cond holds for the candidate.
func When[T any](cond func(T) bool, rule Rule[T]) Rule[T] {
	return func(candidate T) Errors {
		if !cond(candidate) {
			return nil
		}
		return rule(candidate)
	}
}

// FromValidator converts go-playground/validator errors into a field-keyed report.
// Field paths use the JSON names registered on the engine, without the root struct name.
func FromValidator(err error) (Errors, bool) {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, false
	}
	out := Errors{}
	for _, fe := range verrs {
		ns := fe.Namespace()
		if idx := strings.Index(ns, "."); idx >= 0 {
			ns = ns[idx+1:]
		}
		out.Add(ns, messageForTag(fe))
	}
	return out, true
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_with":
		return "is required"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return "must be a valid email address"
	case "eqfield":
		return "must match " + strings.ToLower(fe.Param()[:1]) + fe.Param()[1:]
	case "alphanum":
		return "must contain only letters and digits"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case TagTaxID:
		return "must be exactly 9 digits"
	case TagPhone:
		return "must be a valid phone number"
	case TagAccountCode:
		return "must be 4 to 10 digits"
	}
	return "is invalid"
}
