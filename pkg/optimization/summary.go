// Package optimization provides shared data structures for balance-closing results.
package optimization

// Summary captures the result of a single closing directive.
type Summary struct {
	Scope           string   `json:"scope"`
	TargetName      string   `json:"targetName"`
	Ordem           int      `json:"ordem"`
	Field           string   `json:"field"`
	Original        float64  `json:"original"`
	Value           float64  `json:"value"`
	ReferenceTotal  float64  `json:"referenceTotal"`
	Difference      float64  `json:"difference"`
	Iterations      int      `json:"iterations"`
	Converged       bool     `json:"converged"`
	Notes           []string `json:"notes,omitempty"`
	OriginalDisplay string   `json:"originalDisplay,omitempty"`
	ValueDisplay    string   `json:"valueDisplay,omitempty"`
}
