// Package binding converts between the two flat representations of a
// record's dynamic values: the form side (field_<id> keys, everything
// stringly typed) and the stored side (bare field ids, storage-typed
// values inside a record's content blob).
//
// The codec is lossless by contract. Values whose field definition has
// since been removed or retyped still cross the boundary — they ride along
// under their natural key and are listed in the Report so the caller can
// flag them as legacy instead of silently dropping user data.
package binding

import (
	"context"
	"sort"

	dynfield "github.com/asaCurry/dynfield"
	"github.com/asaCurry/dynfield/internal/coerce"
)

// Report lists the field ids that took the legacy path: present in the
// input but absent from the current field definitions.
type Report struct {
	Legacy []string
}

// Clean reports whether every value matched a current field definition.
func (r Report) Clean() bool { return len(r.Legacy) == 0 }

// Codec binds one field collection. Both directions consider every defined
// field, inactive ones included, so retired fields keep their stored values
// across edits.
type Codec struct {
	fields []dynfield.DynamicField
	byID   map[string]dynfield.DynamicField
}

// For builds a Codec over the given field definitions.
func For(fields []dynfield.DynamicField) Codec {
	c := Codec{
		fields: dynfield.SortByOrder(fields),
		byID:   make(map[string]dynfield.DynamicField, len(fields)),
	}
	for _, f := range c.fields {
		c.byID[f.ID] = f
	}
	return c
}

// Decode converts flat form values into storage shape: field_<id> entries
// become bare-id entries with values coerced per field type. Keys without
// the field_ prefix (title and friends) are the route handler's business and
// are ignored here. Unrecognized field_<id> entries are preserved under
// their bare id and reported as legacy.
func (c Codec) Decode(ctx context.Context, form map[string]any) (map[string]any, Report) {
	out := make(map[string]any, len(form))
	var rep Report
	for key, v := range form {
		id, ok := dynfield.FieldIDFromKey(key)
		if !ok {
			continue
		}
		if coerce.Empty(v) {
			continue
		}
		f, defined := c.byID[id]
		if !defined {
			out[id] = v
			rep.Legacy = append(rep.Legacy, id)
			continue
		}
		if typed, ok := dynfield.Coerce(f, v); ok {
			out[id] = typed
		} else {
			// Let validation reject it; binding never drops data.
			out[id] = v
		}
	}
	sort.Strings(rep.Legacy)
	return out, rep
}

// Encode converts stored record content into the flat initializer a form
// expects: bare ids become field_<id> keys. Orphaned ids (no longer defined)
// keep the same key shape and are reported as legacy so the form layer can
// render them clearly flagged rather than lose them on the next save.
func (c Codec) Encode(ctx context.Context, content map[string]any) (map[string]any, Report) {
	out := make(map[string]any, len(content))
	var rep Report
	for id, v := range content {
		f, defined := c.byID[id]
		if !defined {
			out[dynfield.FieldKey(id)] = v
			rep.Legacy = append(rep.Legacy, id)
			continue
		}
		if typed, ok := dynfield.Coerce(f, v); ok {
			out[f.Key()] = typed
		} else {
			out[f.Key()] = v
		}
	}
	sort.Strings(rep.Legacy)
	return out, rep
}
