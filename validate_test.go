package dynfield_test

import (
	"reflect"
	"testing"

	dynfield "github.com/asaCurry/dynfield"
)

// TestValidateValue_Required: empty value fails with a non-empty message,
// a real value passes.
func TestValidateValue_Required(t *testing.T) {
	f := dynfield.MustNewField(dynfield.TypeText, 0)
	f.ID = "f1"
	f.Required = true

	iss := dynfield.ValidateValue(f, "")
	if len(iss) != 1 || iss[0].Code != dynfield.CodeRequired || iss[0].Message == "" {
		t.Fatalf("expected required issue, got %v", iss)
	}
	if iss[0].Path != "/field_f1" {
		t.Fatalf("expected path /field_f1, got %q", iss[0].Path)
	}
	if iss := dynfield.ValidateValue(f, "hello"); iss != nil {
		t.Fatalf("expected valid, got %v", iss)
	}
	// nil counts as empty too
	if iss := dynfield.ValidateValue(f, nil); len(iss) != 1 || iss[0].Code != dynfield.CodeRequired {
		t.Fatalf("expected required for nil, got %v", iss)
	}
}

// TestValidateValue_OptionalEmpty: empty values are fine when not required,
// even for select fields.
func TestValidateValue_OptionalEmpty(t *testing.T) {
	sel := dynfield.MustNewField(dynfield.TypeSelect, 0)
	sel.Options = []dynfield.SelectOption{dynfield.OptionFromLabel("A")}
	if iss := dynfield.ValidateValue(sel, ""); iss != nil {
		t.Fatalf("optional empty select should pass, got %v", iss)
	}
	num := dynfield.MustNewField(dynfield.TypeNumber, 0)
	if iss := dynfield.ValidateValue(num, "   "); iss != nil {
		t.Fatalf("whitespace-only counts as empty, got %v", iss)
	}
}

// TestValidateValue_Select: membership over option values; "c" invalid, "a" valid.
func TestValidateValue_Select(t *testing.T) {
	f := dynfield.MustNewField(dynfield.TypeSelect, 0)
	f.ID = "f2"
	f.Options = []dynfield.SelectOption{{Value: "a", Label: "A"}, {Value: "b", Label: "B"}}

	if iss := dynfield.ValidateValue(f, "a"); iss != nil {
		t.Fatalf("expected valid for member value, got %v", iss)
	}
	iss := dynfield.ValidateValue(f, "c")
	if len(iss) != 1 || iss[0].Code != dynfield.CodeInvalidEnum {
		t.Fatalf("expected invalid_enum for non-member, got %v", iss)
	}
}

// TestValidateValue_Number: string coercion, then range rules; both bound
// violations are impossible at once but each reports its own code.
func TestValidateValue_Number(t *testing.T) {
	min, max := 1.0, 10.0
	f := dynfield.MustNewField(dynfield.TypeNumber, 0)
	f.Min, f.Max = &min, &max

	if iss := dynfield.ValidateValue(f, "5"); iss != nil {
		t.Fatalf("expected valid coerced number, got %v", iss)
	}
	if iss := dynfield.ValidateValue(f, 7.5); iss != nil {
		t.Fatalf("expected valid float64, got %v", iss)
	}
	if iss := dynfield.ValidateValue(f, "abc"); len(iss) != 1 || iss[0].Code != dynfield.CodeInvalidType {
		t.Fatalf("expected invalid_type for non-numeric, got %v", iss)
	}
	if iss := dynfield.ValidateValue(f, "0.5"); len(iss) != 1 || iss[0].Code != dynfield.CodeTooSmall {
		t.Fatalf("expected too_small, got %v", iss)
	}
	if iss := dynfield.ValidateValue(f, "11"); len(iss) != 1 || iss[0].Code != dynfield.CodeTooBig {
		t.Fatalf("expected too_big, got %v", iss)
	}
}

// TestValidateValue_Checkbox: booleans and the deterministic string
// spellings coerce; anything else is rejected, never silently false.
func TestValidateValue_Checkbox(t *testing.T) {
	f := dynfield.MustNewField(dynfield.TypeCheckbox, 0)
	for _, v := range []any{true, false, "true", "false", "on"} {
		if iss := dynfield.ValidateValue(f, v); iss != nil {
			t.Fatalf("expected %v to validate, got %v", v, iss)
		}
	}
	if iss := dynfield.ValidateValue(f, "yes"); len(iss) != 1 || iss[0].Code != dynfield.CodeInvalidType {
		t.Fatalf("expected invalid_type for %q, got %v", "yes", iss)
	}
	if iss := dynfield.ValidateValue(f, 1); len(iss) != 1 || iss[0].Code != dynfield.CodeInvalidType {
		t.Fatalf("expected invalid_type for numeric checkbox, got %v", iss)
	}
}

// TestValidateValue_MaxLength counts runes, not bytes.
func TestValidateValue_MaxLength(t *testing.T) {
	maxLen := 5
	f := dynfield.MustNewField(dynfield.TypeTextarea, 0)
	f.MaxLength = &maxLen

	if iss := dynfield.ValidateValue(f, "12345"); iss != nil {
		t.Fatalf("expected exactly-max to pass, got %v", iss)
	}
	if iss := dynfield.ValidateValue(f, "123456"); len(iss) != 1 || iss[0].Code != dynfield.CodeTooLong {
		t.Fatalf("expected too_long, got %v", iss)
	}
	if iss := dynfield.ValidateValue(f, "ねこねこね"); iss != nil {
		t.Fatalf("expected five runes to pass, got %v", iss)
	}
}

func TestValidateValue_Date(t *testing.T) {
	f := dynfield.MustNewField(dynfield.TypeDate, 0)
	for _, v := range []string{"2026-09-01", "2026-09-01T10:30:00Z"} {
		if iss := dynfield.ValidateValue(f, v); iss != nil {
			t.Fatalf("expected %q to validate, got %v", v, iss)
		}
	}
	if iss := dynfield.ValidateValue(f, "09/01/2026"); len(iss) != 1 || iss[0].Code != dynfield.CodeInvalidFormat {
		t.Fatalf("expected invalid_format, got %v", iss)
	}
}

// TestValidateValue_Deterministic: identical inputs, identical results.
func TestValidateValue_Deterministic(t *testing.T) {
	f := dynfield.MustNewField(dynfield.TypeNumber, 0)
	f.Required = true
	for _, v := range []any{nil, "abc", "42", true} {
		a := dynfield.ValidateValue(f, v)
		b := dynfield.ValidateValue(f, v)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("non-deterministic result for %v: %v vs %v", v, a, b)
		}
	}
}

// TestValidateAll aggregates every failing field and skips inactive ones.
func TestValidateAll(t *testing.T) {
	req := dynfield.MustNewField(dynfield.TypeText, 0)
	req.ID = "fa"
	req.Required = true
	num := dynfield.MustNewField(dynfield.TypeNumber, 1)
	num.ID = "fb"
	retired := dynfield.MustNewField(dynfield.TypeText, 2)
	retired.ID = "fc"
	retired.Required = true
	retired.Active = false

	fields := []dynfield.DynamicField{req, num, retired}
	iss := dynfield.ValidateAll(fields, map[string]any{
		"field_fb": "not-a-number",
	})
	if len(iss) != 2 {
		t.Fatalf("expected 2 issues (required fa, invalid fb), got %v", iss)
	}
	byField := iss.ByField()
	if len(byField["fa"]) != 1 || byField["fa"][0].Code != dynfield.CodeRequired {
		t.Fatalf("expected required on fa, got %v", byField["fa"])
	}
	if len(byField["fb"]) != 1 || byField["fb"][0].Code != dynfield.CodeInvalidType {
		t.Fatalf("expected invalid_type on fb, got %v", byField["fb"])
	}
	if _, ok := byField["fc"]; ok {
		t.Fatalf("inactive field must not be validated")
	}

	// all valid
	ok := dynfield.ValidateAll(fields, map[string]any{
		"field_fa": "hi",
		"field_fb": "3",
	})
	if ok != nil {
		t.Fatalf("expected valid submission, got %v", ok)
	}
}

func TestCoerce(t *testing.T) {
	num := dynfield.MustNewField(dynfield.TypeNumber, 0)
	if v, ok := dynfield.Coerce(num, "3"); !ok || v != 3.0 {
		t.Fatalf("expected 3.0, got %v ok=%v", v, ok)
	}
	box := dynfield.MustNewField(dynfield.TypeCheckbox, 0)
	if v, ok := dynfield.Coerce(box, "on"); !ok || v != true {
		t.Fatalf("expected true for on, got %v ok=%v", v, ok)
	}
	if _, ok := dynfield.Coerce(box, "yes"); ok {
		t.Fatalf("expected yes to not coerce")
	}
	txt := dynfield.MustNewField(dynfield.TypeText, 0)
	if v, ok := dynfield.Coerce(txt, "x"); !ok || v != "x" {
		t.Fatalf("expected string passthrough, got %v ok=%v", v, ok)
	}
}
