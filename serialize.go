package dynfield

import (
	"strings"

	json "github.com/goccy/go-json"
)

// fieldsEnvelope is the canonical on-disk shape of a stored field collection.
// Historical call sites also wrote bare arrays; DecodeFields accepts both and
// EncodeFields always emits the envelope.
type fieldsEnvelope struct {
	Fields []DynamicField `json:"fields"`
}

// EncodeFields serializes a field collection into its canonical wire form,
// {"fields":[...]}. Encoding is deterministic: field order and all attributes
// are preserved, so decode(encode(fields)) round-trips.
func EncodeFields(fields []DynamicField) (string, error) {
	env := fieldsEnvelope{Fields: fields}
	if env.Fields == nil {
		env.Fields = []DynamicField{}
	}
	b, err := json.Marshal(env)
	if err != nil {
		return "", Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return string(b), nil
}

// DecodeFields parses a stored field collection. It is deliberately
// fail-soft: malformed input yields an empty collection instead of an error
// so a record-creation form degrades to "no custom fields" rather than
// crashing on legacy or corrupt data. The Report flags everything a caller
// should log: malformed blobs, the legacy bare-array shape, and dropped
// entries (missing id or unknown type).
func DecodeFields(raw string) ([]DynamicField, Report) {
	var rep Report
	s := strings.TrimSpace(raw)
	if s == "" {
		return []DynamicField{}, rep
	}

	var decoded []DynamicField
	switch s[0] {
	case '{':
		var env fieldsEnvelope
		if err := json.Unmarshal([]byte(s), &env); err != nil {
			rep.Malformed = true
			return []DynamicField{}, rep
		}
		decoded = env.Fields
	case '[':
		rep.LegacyArray = true
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			rep.Malformed = true
			rep.LegacyArray = false
			return []DynamicField{}, rep
		}
	default:
		rep.Malformed = true
		return []DynamicField{}, rep
	}

	out := make([]DynamicField, 0, len(decoded))
	for _, f := range decoded {
		if f.ID == "" || !f.Type.Valid() {
			rep.Dropped++
			continue
		}
		if f.Type == TypeSelect && f.Options == nil {
			f.Options = []SelectOption{}
		}
		out = append(out, f)
	}
	return out, rep
}
