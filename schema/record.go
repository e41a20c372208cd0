// Package schema turns a dynamic field collection into a runtime validator
// for record submissions: the fixed record attributes plus one field_<id> key
// per active field. Validation runs in one pass and collects every issue
// rather than stopping at the first, so callers can render a complete error
// summary.
package schema

import (
	"context"
	"sort"
	"strings"
	"time"

	dynfield "github.com/asaCurry/dynfield"
	"github.com/asaCurry/dynfield/i18n"
	"github.com/asaCurry/dynfield/internal/coerce"
	js "github.com/asaCurry/dynfield/jsonschema"
)

// Fixed record attribute keys, always part of the generated schema.
const (
	KeyTitle     = "title"
	KeyContent   = "content"
	KeyTags      = "tags"
	KeyIsPrivate = "isPrivate"
	KeyDatetime  = "datetime"
)

// fixedKeys in deterministic validation order.
var fixedKeys = []string{KeyTitle, KeyContent, KeyTags, KeyIsPrivate, KeyDatetime}

// datetimeLayouts accepted for the fixed datetime attribute. HTML
// datetime-local inputs submit the second layout.
var datetimeLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// UnknownPolicy controls how submission keys outside the schema are handled.
type UnknownPolicy int

const (
	UnknownStrip   UnknownPolicy = iota // Drop unknown keys (form boundaries carry CSRF tokens etc.).
	UnknownStrict                       // Reject unknown keys with an error.
)

// Opt bundles schema options. The zero value is the recommended default.
type Opt struct {
	Unknown UnknownPolicy
}

// Record validates flat record submissions against a field collection.
// Build one via ForFields whenever the stored definitions change; it is
// cheap and immutable afterwards.
type Record struct {
	active []dynfield.DynamicField // sorted by order
	known  map[string]struct{}     // fixed keys + every defined field key, inactive included
	opt    Opt
}

// ForFields builds the record schema for a field collection with default
// options. Inactive fields contribute nothing to validation (stale custom
// fields must never block submission) but their keys are still recognized,
// so UnknownStrict does not reject values recorded before a field was
// retired.
func ForFields(fields []dynfield.DynamicField) Record {
	return ForFieldsWith(fields, Opt{})
}

// ForFieldsWith is ForFields with explicit options.
func ForFieldsWith(fields []dynfield.DynamicField, opt Opt) Record {
	r := Record{
		active: dynfield.Active(dynfield.SortByOrder(fields)),
		known:  make(map[string]struct{}, len(fields)+len(fixedKeys)),
		opt:    opt,
	}
	for _, k := range fixedKeys {
		r.known[k] = struct{}{}
	}
	for _, f := range fields {
		r.known[f.Key()] = struct{}{}
	}
	return r
}

// Fields returns the active fields this schema validates, sorted by order.
func (r Record) Fields() []dynfield.DynamicField {
	return append([]dynfield.DynamicField(nil), r.active...)
}

// Parse validates a flat submission and returns a coerced copy: title and
// friends as trimmed strings, number fields as float64, checkbox fields as
// bool. Values arrive as strings from form parsers; coercion happens before
// rule checks. On failure it returns every issue found (dynfield.Issues).
func (r Record) Parse(ctx context.Context, values map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(values)+1)
	var iss dynfield.Issues

	iss = append(iss, r.parseFixed(values, out)...)

	for _, f := range r.active {
		raw := values[f.Key()]
		if fieldIss := dynfield.ValidateValue(f, raw); len(fieldIss) > 0 {
			iss = append(iss, fieldIss...)
			continue
		}
		if coerce.Empty(raw) {
			continue
		}
		out[f.Key()] = coerceTyped(f, raw)
	}

	if r.opt.Unknown == UnknownStrict {
		iss = append(iss, r.unknownKeyIssues(values)...)
	}

	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// Validate is Parse without materializing the coerced copy.
func (r Record) Validate(ctx context.Context, values map[string]any) error {
	_, err := r.Parse(ctx, values)
	return err
}

func (r Record) parseFixed(values map[string]any, out map[string]any) dynfield.Issues {
	var iss dynfield.Issues

	// title: required non-empty string
	if v := values[KeyTitle]; coerce.Empty(v) {
		iss = append(iss, dynfield.Issue{
			Path: "/" + KeyTitle, Code: dynfield.CodeRequired, Message: i18n.T(dynfield.CodeRequired, nil),
		})
	} else if s, ok := coerce.String(v); !ok {
		iss = append(iss, dynfield.Issue{
			Path: "/" + KeyTitle, Code: dynfield.CodeInvalidType, Message: i18n.T(dynfield.CodeInvalidType, nil), Hint: "expected string",
		})
	} else {
		out[KeyTitle] = strings.TrimSpace(s)
	}

	// content, tags: optional strings
	for _, k := range []string{KeyContent, KeyTags} {
		v := values[k]
		if coerce.Empty(v) {
			continue
		}
		s, ok := coerce.String(v)
		if !ok {
			iss = append(iss, dynfield.Issue{
				Path: "/" + k, Code: dynfield.CodeInvalidType, Message: i18n.T(dynfield.CodeInvalidType, nil), Hint: "expected string",
			})
			continue
		}
		out[k] = s
	}

	// isPrivate: boolean, absent means false
	if v := values[KeyIsPrivate]; coerce.Empty(v) {
		out[KeyIsPrivate] = false
	} else if b, ok := coerce.Bool(v); !ok {
		iss = append(iss, dynfield.Issue{
			Path: "/" + KeyIsPrivate, Code: dynfield.CodeInvalidType, Message: i18n.T(dynfield.CodeInvalidType, nil), Hint: "expected boolean",
		})
	} else {
		out[KeyIsPrivate] = b
	}

	// datetime: optional ISO-8601 string
	if v := values[KeyDatetime]; !coerce.Empty(v) {
		s, ok := coerce.String(v)
		if !ok {
			iss = append(iss, dynfield.Issue{
				Path: "/" + KeyDatetime, Code: dynfield.CodeInvalidType, Message: i18n.T(dynfield.CodeInvalidType, nil), Hint: "expected datetime string",
			})
		} else if !parsesAsDatetime(s) {
			iss = append(iss, dynfield.Issue{
				Path: "/" + KeyDatetime, Code: dynfield.CodeInvalidFormat, Message: i18n.T(dynfield.CodeInvalidFormat, nil), Hint: "expected ISO 8601",
			})
		} else {
			out[KeyDatetime] = s
		}
	}

	return iss
}

func (r Record) unknownKeyIssues(values map[string]any) dynfield.Issues {
	var unknown []string
	for k := range values {
		if _, ok := r.known[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	var iss dynfield.Issues
	for _, k := range unknown {
		iss = append(iss, dynfield.Issue{
			Path: "/" + k, Code: dynfield.CodeUnknownKey, Message: i18n.T(dynfield.CodeUnknownKey, nil),
		})
	}
	return iss
}

// JSONSchema projects the record schema into a minimal JSON Schema document
// so clients can render or pre-validate forms.
func (r Record) JSONSchema() (*js.Schema, error) {
	props := map[string]*js.Schema{
		KeyTitle:     {Type: "string", MinLength: intPtr(1)},
		KeyContent:   {Type: "string"},
		KeyTags:      {Type: "string"},
		KeyIsPrivate: {Type: "boolean", Default: false},
		KeyDatetime:  {Type: "string", Format: "date-time"},
	}
	required := []string{KeyTitle}

	for _, f := range r.active {
		props[f.Key()] = fieldJSONSchema(f)
		if f.Required {
			required = append(required, f.Key())
		}
	}
	return &js.Schema{Type: "object", Properties: props, Required: required}, nil
}

func fieldJSONSchema(f dynfield.DynamicField) *js.Schema {
	s := &js.Schema{Title: f.Label}
	switch f.Type {
	case dynfield.TypeNumber:
		s.Type = "number"
		s.Minimum = f.Min
		s.Maximum = f.Max
	case dynfield.TypeCheckbox:
		s.Type = "boolean"
	case dynfield.TypeSelect:
		s.Type = "string"
		for _, o := range f.Options {
			s.Enum = append(s.Enum, o.Value)
		}
	case dynfield.TypeDate:
		s.Type = "string"
		s.Format = "date"
	default: // text, textarea
		s.Type = "string"
		s.MaxLength = f.MaxLength
	}
	return s
}

// coerceTyped converts a validated raw value into its storage type.
func coerceTyped(f dynfield.DynamicField, v any) any {
	out, _ := dynfield.Coerce(f, v)
	return out
}

func parsesAsDatetime(s string) bool {
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func intPtr(v int) *int { return &v }
