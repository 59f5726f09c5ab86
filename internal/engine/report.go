package engine

// PhaseResult is one series-report entry: the phase that ran and its
// handlers' discrete results in invocation order.
type PhaseResult struct {
	Phase   string `json:"phase"`
	Results []any  `json:"results"`
}

// Report is the ordered outcome of a series run, one entry per non-empty
// phase actually executed.
type Report []PhaseResult

// Phases returns the report's phase names in execution order.
func (r Report) Phases() []string {
	names := make([]string, len(r))
	for i, entry := range r {
		names[i] = entry.Phase
	}
	return names
}
