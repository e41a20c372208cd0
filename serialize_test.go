package dynfield_test

import (
	"reflect"
	"testing"

	dynfield "github.com/asaCurry/dynfield"
)

// TestEncodeDecode_RoundTrip: decode(encode(F)) is semantically equal to F
// for a collection exercising every attribute.
func TestEncodeDecode_RoundTrip(t *testing.T) {
	maxLen := 120
	min, max := 0.0, 99.5

	txt := dynfield.MustNewField(dynfield.TypeText, 0)
	txt.Label = "Name"
	txt.Required = true
	txt.MaxLength = &maxLen
	num := dynfield.MustNewField(dynfield.TypeNumber, 1)
	num.Label = "Score"
	num.Min, num.Max = &min, &max
	sel := dynfield.MustNewField(dynfield.TypeSelect, 2)
	sel.Label = "Mood"
	sel.Options = []dynfield.SelectOption{dynfield.OptionFromLabel("Happy"), dynfield.OptionFromLabel("Tired")}
	retired := dynfield.MustNewField(dynfield.TypeCheckbox, 3)
	retired.Active = false

	fields := []dynfield.DynamicField{txt, num, sel, retired}

	blob, err := dynfield.EncodeFields(fields)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	decoded, rep := dynfield.DecodeFields(blob)
	if !rep.Clean() {
		t.Fatalf("expected clean decode of canonical blob, got %+v", rep)
	}
	if !reflect.DeepEqual(fields, decoded) {
		t.Fatalf("round-trip mismatch:\n in: %#v\nout: %#v", fields, decoded)
	}
}

// TestEncodeFields_Deterministic: identical collections encode identically.
func TestEncodeFields_Deterministic(t *testing.T) {
	f := dynfield.MustNewField(dynfield.TypeText, 0)
	a, _ := dynfield.EncodeFields([]dynfield.DynamicField{f})
	b, _ := dynfield.EncodeFields([]dynfield.DynamicField{f})
	if a != b {
		t.Fatalf("non-deterministic encoding:\n%s\n%s", a, b)
	}
}

// TestDecodeFields_LegacyArray: the bare-array shape still decodes but is
// flagged so the caller can log and migrate it.
func TestDecodeFields_LegacyArray(t *testing.T) {
	blob := `[{"id":"f1","type":"text","label":"Old","order":0,"active":true,"required":false}]`
	fields, rep := dynfield.DecodeFields(blob)
	if len(fields) != 1 || fields[0].ID != "f1" {
		t.Fatalf("expected one field, got %#v", fields)
	}
	if !rep.LegacyArray || rep.Malformed || rep.Dropped != 0 {
		t.Fatalf("expected legacy flag only, got %+v", rep)
	}
}

// TestDecodeFields_FailSoft: malformed input degrades to an empty
// collection, never an error or panic.
func TestDecodeFields_FailSoft(t *testing.T) {
	for _, blob := range []string{
		`{not json`,
		`"just a string"`,
		`{"fields": 42}`,
		`[{"id":`,
	} {
		fields, rep := dynfield.DecodeFields(blob)
		if len(fields) != 0 {
			t.Fatalf("expected empty collection for %q, got %#v", blob, fields)
		}
		if !rep.Malformed {
			t.Fatalf("expected malformed flag for %q, got %+v", blob, rep)
		}
	}
}

// TestDecodeFields_DropsInvalidEntries: entries without an id or with an
// unknown type are dropped and counted; valid ones survive.
func TestDecodeFields_DropsInvalidEntries(t *testing.T) {
	blob := `{"fields":[
		{"id":"f1","type":"text","label":"Keep","order":0,"active":true},
		{"id":"","type":"text","label":"NoID","order":1,"active":true},
		{"id":"f3","type":"rating","label":"BadType","order":2,"active":true}
	]}`
	fields, rep := dynfield.DecodeFields(blob)
	if len(fields) != 1 || fields[0].ID != "f1" {
		t.Fatalf("expected only f1 to survive, got %#v", fields)
	}
	if rep.Dropped != 2 {
		t.Fatalf("expected 2 dropped entries, got %+v", rep)
	}
}

// TestDecodeFields_Empty: a blank blob (new record type) is clean.
func TestDecodeFields_Empty(t *testing.T) {
	for _, blob := range []string{"", "   ", "\n"} {
		fields, rep := dynfield.DecodeFields(blob)
		if len(fields) != 0 || !rep.Clean() {
			t.Fatalf("expected clean empty decode of %q, got %#v %+v", blob, fields, rep)
		}
	}
}

// TestDecodeFields_NormalizesSelectOptions: a select stored without an
// options key comes back with an empty, non-nil slice.
func TestDecodeFields_NormalizesSelectOptions(t *testing.T) {
	blob := `{"fields":[{"id":"f1","type":"select","label":"S","order":0,"active":true}]}`
	fields, rep := dynfield.DecodeFields(blob)
	if !rep.Clean() || len(fields) != 1 {
		t.Fatalf("unexpected decode: %#v %+v", fields, rep)
	}
	if fields[0].Options == nil || len(fields[0].Options) != 0 {
		t.Fatalf("expected normalized empty options, got %#v", fields[0].Options)
	}
}
