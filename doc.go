// Package dynfield implements the dynamic-fields engine behind household
// record types: user-defined custom fields (text, number, checkbox, select,
// textarea, date) that are persisted as a JSON blob on a record type and
// validated at record-creation time.
//
// It provides:
//
// - A closed field model (DynamicField/FieldType) with per-type defaults
// - Pure collection operations (sort, reorder, toggle, duplicate, update)
// - Per-field and multi-field validation via a stable Issues error model
// - A fail-soft wire codec for stored field collections (EncodeFields/DecodeFields)
// - Schema generation for record submissions under schema/
// - Form <-> stored-content binding under binding/
//
// Design policy:
// - Keep only public APIs in the root package; put shared implementation
//   details under internal/.
// - Place the schema generator under schema/, the form binding under
//   binding/, and the CLI under cmd/dynfield.
// - Everything is a deterministic transformation over caller-owned values:
//   no I/O, no globals, no mutation of inputs.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	fields, report := dynfield.DecodeFields(storedBlob)
//	s := schema.ForFields(fields)
//	record, err := s.Parse(ctx, submission)
//
//	content, _ := binding.For(fields).Decode(ctx, record)
package dynfield
