package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Custom validator tags usable in `binding:` and `validate:` struct tags.
const (
	TagTaxID       = "taxid"
	TagPhone       = "phone_np"
	TagAccountCode = "account_code"
)

var (
	// TaxIDPattern matches a 9-digit PAN/VAT registration number.
	TaxIDPattern = regexp.MustCompile(`^[0-9]{9}$`)
	// PhonePattern matches a Nepali landline or mobile number with optional +977 prefix.
	PhonePattern = regexp.MustCompile(`^(\+977-?)?[0-9]{7,10}$`)
	// AccountCodePattern matches chart-of-accounts codes.
	AccountCodePattern = regexp.MustCompile(`^[0-9]{4,10}$`)
)

var engine = newEngine()

func newEngine() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterCustom(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterCustom installs the project's custom tags and JSON field naming on v.
// It is applied to gin's binding engine at startup so request DTOs can use the same tags.
func RegisterCustom(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	patterns := map[string]*regexp.Regexp{
		TagTaxID:       TaxIDPattern,
		TagPhone:       PhonePattern,
		TagAccountCode: AccountCodePattern,
	}
	for tag, re := range patterns {
		re := re
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		}); err != nil {
			return err
		}
	}
	return nil
}

// Struct validates a tagged struct with the shared engine and returns a field-keyed report.
func Struct(s any) error {
	err := engine.Struct(s)
	if err == nil {
		return nil
	}
	if errs, ok := FromValidator(err); ok {
		return errs
	}
	return err
}
