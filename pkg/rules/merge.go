package rules

// Merge combines activated descriptors into a single ordered guidance
// bundle. Payloads are surfaced as-is and in order: overlapping advice
// is a presentation-layer concern, never reconciled here. An empty
// activation set yields an empty bundle, which callers must treat as
// a legitimate "no guidance applies" state.
func Merge(activated []Descriptor) Bundle {
	bundle := Bundle{
		PayloadRefs: make([]string, 0, len(activated)),
	}
	for _, d := range activated {
		bundle.PayloadRefs = append(bundle.PayloadRefs, d.PayloadRef)
		if d.Scope == ScopeUniversal {
			bundle.HasUniversal = true
		}
	}
	return bundle
}
