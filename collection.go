package dynfield

import (
	"sort"

	"github.com/asaCurry/dynfield/i18n"
)

// SortByOrder returns the fields sorted ascending by Order. The sort is
// stable: ties keep their original sequence position, so sorting is
// idempotent. The input is not modified.
func SortByOrder(fields []DynamicField) []DynamicField {
	out := cloneAll(fields)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Active returns the active fields, preserving relative order.
func Active(fields []DynamicField) []DynamicField {
	out := make([]DynamicField, 0, len(fields))
	for _, f := range fields {
		if f.Active {
			out = append(out, f.Clone())
		}
	}
	return out
}

// Reorder moves the field at post-sort index from to index to, then renumbers
// Order densely (0..n-1) to match the new positions. Out-of-range indices
// indicate a UI bug and fail loud with CodeIndexOutOfRange.
func Reorder(fields []DynamicField, from, to int) ([]DynamicField, error) {
	n := len(fields)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, Issues{{
			Path:    "/",
			Code:    CodeIndexOutOfRange,
			Message: i18n.T(CodeIndexOutOfRange, nil),
			Params:  map[string]any{"from": from, "to": to, "len": n},
		}}
	}
	out := SortByOrder(fields)
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	rest := append([]DynamicField(nil), out[to:]...)
	out = append(append(out[:to:to], moved), rest...)
	for i := range out {
		out[i].Order = i
	}
	return out, nil
}

// ToggleActive flips the active flag of the field matching id. An unknown id
// is a no-op: the field may have been removed by a concurrent edit in the
// same session, and silently ignoring is the least surprising behavior for
// an optimistic local edit model.
func ToggleActive(fields []DynamicField, id string) []DynamicField {
	out := cloneAll(fields)
	for i := range out {
		if out[i].ID == id {
			out[i].Active = !out[i].Active
			break
		}
	}
	return out
}

// Update applies fn to a copy of the field matching id and returns the new
// collection. Same fail-soft policy as ToggleActive for unknown ids.
func Update(fields []DynamicField, id string, fn func(*DynamicField)) []DynamicField {
	out := cloneAll(fields)
	if fn == nil {
		return out
	}
	for i := range out {
		if out[i].ID == id {
			fn(&out[i])
			break
		}
	}
	return out
}

// FindByID returns the field matching id.
func FindByID(fields []DynamicField, id string) (DynamicField, bool) {
	for _, f := range fields {
		if f.ID == id {
			return f.Clone(), true
		}
	}
	return DynamicField{}, false
}

func cloneAll(fields []DynamicField) []DynamicField {
	out := make([]DynamicField, len(fields))
	for i, f := range fields {
		out[i] = f.Clone()
	}
	return out
}
