package dynfield

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/asaCurry/dynfield/i18n"
)

// FieldType is the closed vocabulary of dynamic field kinds. Anything outside
// this set is rejected at construction time; values read back from storage are
// dropped by DecodeFields instead (fail-soft at the persistence boundary).
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeNumber   FieldType = "number"
	TypeCheckbox FieldType = "checkbox"
	TypeSelect   FieldType = "select"
	TypeTextarea FieldType = "textarea"
	TypeDate     FieldType = "date"
)

// FieldTypes lists every valid FieldType in display order.
func FieldTypes() []FieldType {
	return []FieldType{TypeText, TypeNumber, TypeCheckbox, TypeSelect, TypeTextarea, TypeDate}
}

// Valid reports whether t is a member of the closed enumeration.
func (t FieldType) Valid() bool {
	switch t {
	case TypeText, TypeNumber, TypeCheckbox, TypeSelect, TypeTextarea, TypeDate:
		return true
	}
	return false
}

// SelectOption is one choice of a select field. Value is the persisted and
// compared identity; Label is display text.
type SelectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// DynamicField is one custom attribute a record type exposes. Inactive fields
// are excluded from rendering and validation but retained in storage so that
// existing records referencing them by id keep their data.
type DynamicField struct {
	ID       string         `json:"id"`
	Type     FieldType      `json:"type"`
	Label    string         `json:"label"`
	Order    int            `json:"order"`
	Active   bool           `json:"active"`
	Required bool           `json:"required"`
	Options  []SelectOption `json:"options,omitempty"` // select only

	// Optional per-type constraints; nil means "no constraint".
	MaxLength *int     `json:"maxLength,omitempty"` // text, textarea
	Min       *float64 `json:"min,omitempty"`       // number
	Max       *float64 `json:"max,omitempty"`       // number
}

// fieldKeyPrefix is the prefix of the flat submission key of a dynamic field.
const fieldKeyPrefix = "field_"

// Key returns the flat form/submission key of the field (field_<id>).
func (f DynamicField) Key() string { return FieldKey(f.ID) }

// FieldKey returns the flat submission key for a bare field id.
func FieldKey(id string) string { return fieldKeyPrefix + id }

// FieldIDFromKey extracts the bare field id from a field_<id> key.
func FieldIDFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, fieldKeyPrefix) || len(key) == len(fieldKeyPrefix) {
		return "", false
	}
	return key[len(fieldKeyPrefix):], true
}

// HasOptions reports whether a select field carries at least one usable
// option (non-empty value). A select with no usable options is structurally
// valid but not renderable.
func (f DynamicField) HasOptions() bool {
	if f.Type != TypeSelect {
		return false
	}
	for _, o := range f.Options {
		if o.Value != "" {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the field. Collection operations rely on this
// to keep their inputs untouched.
func (f DynamicField) Clone() DynamicField {
	out := f
	if f.Options != nil {
		out.Options = append([]SelectOption(nil), f.Options...)
	}
	if f.MaxLength != nil {
		v := *f.MaxLength
		out.MaxLength = &v
	}
	if f.Min != nil {
		v := *f.Min
		out.Min = &v
	}
	if f.Max != nil {
		v := *f.Max
		out.Max = &v
	}
	return out
}

// NewField allocates a fresh field of the given type with type-appropriate
// defaults: a new unique id, order set to the current collection length,
// active, not required. An unrecognized type is a programming error and fails
// loud with CodeInvalidFieldType.
func NewField(t FieldType, currentFieldCount int) (DynamicField, error) {
	if !t.Valid() {
		return DynamicField{}, Issues{{
			Path:    "/",
			Code:    CodeInvalidFieldType,
			Message: i18n.T(CodeInvalidFieldType, nil),
			Params:  map[string]any{"type": string(t)},
		}}
	}
	f := DynamicField{
		ID:     newFieldID(),
		Type:   t,
		Order:  currentFieldCount,
		Active: true,
	}
	if t == TypeSelect {
		f.Options = []SelectOption{}
	}
	return f, nil
}

// MustNewField is like NewField but panics on an invalid type. Intended for
// tests and static field tables.
func MustNewField(t FieldType, currentFieldCount int) DynamicField {
	f, err := NewField(t, currentFieldCount)
	if err != nil {
		panic(err)
	}
	return f
}

// Duplicate clones a field under a fresh id with order set to the current
// collection length. The label gets a " (copy)" suffix for disambiguation.
func Duplicate(f DynamicField, currentFieldCount int) DynamicField {
	out := f.Clone()
	out.ID = newFieldID()
	out.Order = currentFieldCount
	if out.Label != "" {
		out.Label += " (copy)"
	}
	return out
}

// OptionFromLabel derives a SelectOption from display text, normalizing the
// value: lowercase, spaces to underscores, everything else non-alphanumeric
// stripped.
func OptionFromLabel(label string) SelectOption {
	return SelectOption{Value: NormalizeOptionValue(label), Label: label}
}

// NormalizeOptionValue applies the option-value normalization rules to s.
func NormalizeOptionValue(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	b := &strings.Builder{}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	return b.String()
}

// newFieldID returns a short unique field id. Eight hex chars of a UUIDv4
// keep field_<id> submission keys readable; collision probability within one
// record type is negligible.
func newFieldID() string {
	u := uuid.New()
	return fmt.Sprintf("f%x", u[:4])
}
