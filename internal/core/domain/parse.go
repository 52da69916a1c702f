package domain

// PageAssessment is the per-page extraction confidence produced by the
// parser. One assessment exists per physical page; assessments are
// ephemeral and aggregated but not persisted directly.
type PageAssessment struct {
	// PageIndex is the zero-based page index.
	PageIndex int

	// QualityScore is the confidence in [0,1] that the extracted page
	// text is usable without fallback re-extraction.
	QualityScore float64
}

// RoutingDecision maps a page assessment to a fallback-required decision.
// It is a deterministic function of assessment and threshold.
type RoutingDecision struct {
	// PageIndex is the zero-based page index.
	PageIndex int

	// RequiresVLMFallback is true when the page should be re-extracted
	// through the vision fallback path.
	RequiresVLMFallback bool
}
