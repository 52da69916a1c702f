package domain

// Route maps page assessments to fallback-required decisions against a
// threshold: a page requires VLM fallback when its quality score is
// strictly below the threshold. One decision per input, same order.
// Pure, no failure mode.
func Route(assessments []PageAssessment, threshold float64) []RoutingDecision {
	decisions := make([]RoutingDecision, len(assessments))
	for i, a := range assessments {
		decisions[i] = RoutingDecision{
			PageIndex:           a.PageIndex,
			RequiresVLMFallback: a.QualityScore < threshold,
		}
	}
	return decisions
}
