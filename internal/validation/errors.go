package validation

import (
	"errors"
	"sort"
	"strings"

	"github.com/SscSPs/distributor_ledger_app/internal/apperrors"
)

// Errors is a field-keyed validation report. Keys are JSON field paths such as "entries[0]" or "vatAmount".
type Errors map[string][]string

// Add records a message for field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Merge copies every message of other into e.
func (e Errors) Merge(other Errors) {
	for field, msgs := range other {
		e[field] = append(e[field], msgs...)
	}
}

// Prefix returns a copy of e with every key nested under prefix.
func (e Errors) Prefix(prefix string) Errors {
	out := make(Errors, len(e))
	for field, msgs := range e {
		out[prefix+"."+field] = msgs
	}
	return out
}

// Fields returns the keys in sorted order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+strings.Join(e[f], ", "))
	}
	return strings.Join(parts, "; ")
}

// Is makes every Errors value match apperrors.ErrValidation.
func (e Errors) Is(target error) bool {
	return target == apperrors.ErrValidation
}

// OrNil returns nil when there are no messages.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// AsErrors extracts a field-keyed report from err, if one is present.
func AsErrors(err error) (Errors, bool) {
	var ve Errors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
