package dynfield

// Report describes what DecodeFields encountered at the persistence boundary.
// Decoding is fail-soft: a malformed blob yields an empty collection rather
// than an error, but the condition is flagged here so callers can log it —
// from the UI's perspective data silently disappeared otherwise.
type Report struct {
	// LegacyArray is set when the blob used the legacy bare-array shape
	// instead of the canonical {"fields":[...]} wrapper.
	LegacyArray bool
	// Malformed is set when the blob was not valid JSON or not one of the
	// accepted shapes. The returned collection is empty in that case.
	Malformed bool
	// Dropped counts entries discarded during decode (missing id, unknown
	// type value).
	Dropped int
}

// Clean reports whether decoding was lossless and canonical.
func (r Report) Clean() bool {
	return !r.LegacyArray && !r.Malformed && r.Dropped == 0
}
