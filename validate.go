package dynfield

import (
	"time"
	"unicode/utf8"

	"github.com/asaCurry/dynfield/i18n"
	"github.com/asaCurry/dynfield/internal/coerce"
)

// dateLayouts are the accepted spellings for date field values; form inputs
// of type date submit the bare-date layout, API clients tend to send RFC3339.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ValidateValue applies the type-specific rules of a single field to a
// submitted value and returns nil when the value is acceptable. It is a pure
// function; identical inputs always produce identical results.
//
// An empty value (nil or blank string) is valid unless the field is required.
func ValidateValue(f DynamicField, v any) Issues {
	path := "/" + f.Key()
	if coerce.Empty(v) {
		if f.Required {
			return Issues{{Path: path, Code: CodeRequired, Message: i18n.T(CodeRequired, nil)}}
		}
		return nil
	}

	switch f.Type {
	case TypeText, TypeTextarea:
		s, ok := coerce.String(v)
		if !ok {
			return Issues{{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected string"}}
		}
		if f.MaxLength != nil && utf8.RuneCountInString(s) > *f.MaxLength {
			return Issues{{
				Path: path, Code: CodeTooLong, Message: i18n.T(CodeTooLong, nil),
				Params: map[string]any{"max": *f.MaxLength, "got": utf8.RuneCountInString(s)},
			}}
		}
		return nil

	case TypeNumber:
		n, ok := coerce.Number(v)
		if !ok {
			return Issues{{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected number"}}
		}
		var iss Issues
		if f.Min != nil && n < *f.Min {
			iss = AppendIssues(iss, Issue{
				Path: path, Code: CodeTooSmall, Message: i18n.T(CodeTooSmall, nil),
				Params: map[string]any{"min": *f.Min, "got": n},
			})
		}
		if f.Max != nil && n > *f.Max {
			iss = AppendIssues(iss, Issue{
				Path: path, Code: CodeTooBig, Message: i18n.T(CodeTooBig, nil),
				Params: map[string]any{"max": *f.Max, "got": n},
			})
		}
		if len(iss) > 0 {
			return iss
		}
		return nil

	case TypeCheckbox:
		if _, ok := coerce.Bool(v); !ok {
			return Issues{{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected boolean"}}
		}
		return nil

	case TypeSelect:
		s, ok := coerce.String(v)
		if !ok {
			return Issues{{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected string"}}
		}
		for _, o := range f.Options {
			if o.Value == s {
				return nil
			}
		}
		return Issues{{
			Path: path, Code: CodeInvalidEnum, Message: i18n.T(CodeInvalidEnum, nil),
			Params: map[string]any{"got": s},
		}}

	case TypeDate:
		s, ok := coerce.String(v)
		if !ok {
			return Issues{{Path: path, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected date string"}}
		}
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, s); err == nil {
				return nil
			}
		}
		return Issues{{
			Path: path, Code: CodeInvalidFormat, Message: i18n.T(CodeInvalidFormat, nil),
			Hint: "expected RFC 3339 or YYYY-MM-DD",
		}}
	}

	// Corrupted type value slipped past the decode boundary.
	return Issues{{
		Path: path, Code: CodeInvalidFieldType, Message: i18n.T(CodeInvalidFieldType, nil),
		Params: map[string]any{"type": string(f.Type)},
	}}
}

// Coerce converts a raw submitted value into the storage type of the field:
// float64 for number, bool for checkbox, string otherwise. It reports false
// when the value does not coerce; callers decide whether that is an error
// (validation) or a keep-as-is situation (lossless binding).
func Coerce(f DynamicField, v any) (any, bool) {
	switch f.Type {
	case TypeNumber:
		n, ok := coerce.Number(v)
		return n, ok
	case TypeCheckbox:
		b, ok := coerce.Bool(v)
		return b, ok
	default:
		s, ok := coerce.String(v)
		return s, ok
	}
}

// ValidateAll validates every active field against values[field_<id>] and
// returns the aggregate of all issues; it never stops at the first failure so
// the UI can render a complete error summary. A nil result means the
// submission is valid. Inactive fields are skipped regardless of their
// required flag.
func ValidateAll(fields []DynamicField, values map[string]any) Issues {
	var iss Issues
	for _, f := range SortByOrder(fields) {
		if !f.Active {
			continue
		}
		iss = AppendIssues(iss, ValidateValue(f, values[f.Key()])...)
	}
	if len(iss) == 0 {
		return nil
	}
	return iss
}
