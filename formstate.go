package dynfield

// FormState is an explicit, caller-owned working state for a schema-driven
// form: current values, touched flags, and the latest validation result. It
// replaces ambient form-library state; the caller holds the single
// authoritative copy and passes it around explicitly, so the engine stays
// free of any UI-framework dependency.
type FormState struct {
	fields  []DynamicField
	initial map[string]any
	values  map[string]any
	touched map[string]bool
	issues  Issues
}

// NewFormState builds a FormState over the given field definitions with
// initial flat values (field_<id> keys, e.g. from binding.Codec.Encode).
// Both inputs are copied.
func NewFormState(fields []DynamicField, initial map[string]any) *FormState {
	s := &FormState{
		fields:  cloneAll(fields),
		initial: copyValues(initial),
		values:  copyValues(initial),
		touched: map[string]bool{},
	}
	return s
}

// SetValue records a new value for the given flat key and marks it touched.
func (s *FormState) SetValue(key string, v any) {
	s.values[key] = v
	s.touched[key] = true
}

// SetTouched marks a key as touched without changing its value (blur without
// edit).
func (s *FormState) SetTouched(key string) { s.touched[key] = true }

// Value returns the current value for a flat key.
func (s *FormState) Value(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Values returns a copy of the current flat values.
func (s *FormState) Values() map[string]any { return copyValues(s.values) }

// Touched reports whether the key has been interacted with.
func (s *FormState) Touched(key string) bool { return s.touched[key] }

// Dirty reports whether any value differs from the initial state.
func (s *FormState) Dirty() bool {
	if len(s.values) != len(s.initial) {
		return true
	}
	for k, v := range s.values {
		if iv, ok := s.initial[k]; !ok || iv != v {
			return true
		}
	}
	return false
}

// Validate runs ValidateAll over the active fields and caches the result.
// It returns nil when the form is valid.
func (s *FormState) Validate() Issues {
	s.issues = ValidateAll(s.fields, s.values)
	return s.issues
}

// FieldIssues returns the cached issues for one flat key; call Validate
// first.
func (s *FormState) FieldIssues(key string) Issues {
	var out Issues
	for _, it := range s.issues {
		if it.Path == "/"+key {
			out = append(out, it)
		}
	}
	return out
}

// Reset restores the initial values and clears touched flags and issues.
func (s *FormState) Reset() {
	s.values = copyValues(s.initial)
	s.touched = map[string]bool{}
	s.issues = nil
}

func copyValues(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
