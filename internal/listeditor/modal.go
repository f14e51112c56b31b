package listeditor

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Mode says what an open Modal is editing.
type Mode string

const (
	ModeClosed Mode = ""
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Modal holds a single draft while the editor is open.
type Modal[D any] struct {
	validate *validator.Validate
	mode     Mode
	draft    D
	errors   map[string]string
}

// NewModal returns a closed Modal validating drafts with v.
func NewModal[D any](v *validator.Validate) *Modal[D] {
	if v == nil {
		v = NewValidator()
	}
	return &Modal[D]{validate: v}
}

// NewValidator configures the validator drafts are checked with. Field errors
// are keyed by the `form` tag so they line up with the inputs.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Open starts editing. A nil seed opens an empty create draft; otherwise the
// draft is replaced wholesale by the seed.
func (m *Modal[D]) Open(seed *D) {
	var draft D
	m.mode = ModeCreate
	if seed != nil {
		draft = *seed
		m.mode = ModeEdit
	}
	m.draft = draft
	m.errors = nil
}

// Cancel discards the draft and closes.
func (m *Modal[D]) Cancel() {
	var zero D
	m.draft = zero
	m.mode = ModeClosed
	m.errors = nil
}

// Submit validates draft. On failure the modal stays open holding the draft
// and a *ValidationError is returned; on success it closes.
func (m *Modal[D]) Submit(draft D) error {
	if m.mode == ModeClosed {
		m.mode = ModeCreate
	}
	m.draft = draft
	if err := m.check(draft); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			m.errors = ve.Fields
		}
		return err
	}
	m.Cancel()
	return nil
}

// Fail reopens the modal on draft with a server-side failure so the same
// submission can be retried.
func (m *Modal[D]) Fail(draft D, mode Mode) {
	m.mode = mode
	m.draft = draft
	m.errors = nil
}

func (m *Modal[D]) IsOpen() bool                   { return m.mode != ModeClosed }
func (m *Modal[D]) Mode() Mode                     { return m.mode }
func (m *Modal[D]) Draft() D                       { return m.draft }
func (m *Modal[D]) FieldErrors() map[string]string { return m.errors }

func (m *Modal[D]) check(draft D) error {
	return Check(m.validate, draft)
}

// Check validates any tagged form struct and reports field errors as a
// *ValidationError keyed by form field name.
func Check(v *validator.Validate, form any) error {
	if v == nil {
		v = NewValidator()
	}
	err := v.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("listeditor: validate form: %w", err)
	}
	fields := make(map[string]string, len(fieldErrs))
	t := reflect.TypeOf(form)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, fe := range fieldErrs {
		if _, dup := fields[fe.Field()]; dup {
			continue
		}
		fields[fe.Field()] = fieldMessage(t, fe)
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(t reflect.Type, fe validator.FieldError) string {
	label := labelOf(t, fe.StructField())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "required_if":
		parts := strings.Fields(fe.Param())
		if len(parts) >= 2 {
			return fmt.Sprintf("%s is required for %s", label, strings.Join(parts[1:], " "))
		}
		return label + " is required"
	case "email":
		return label + " must be a valid email address"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return label + " must be a date (YYYY-MM-DD)"
	case "ne":
		return fmt.Sprintf("%s must not be %s", label, fe.Param())
	case "eqfield":
		return label + " does not match"
	case "nefield":
		return label + " must be different"
	default:
		return label + " is invalid"
	}
}

// labelOf prefers the `label` tag and falls back to splitting the Go name.
func labelOf(t reflect.Type, field string) string {
	if t != nil && t.Kind() == reflect.Struct {
		if sf, ok := t.FieldByName(field); ok {
			if label := sf.Tag.Get("label"); label != "" {
				return label
			}
		}
	}
	var b strings.Builder
	for i, r := range field {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
