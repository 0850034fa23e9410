package harness

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every assertion and built-in check held.
	Pass bool `json:"pass"`

	// Program is the compiled program text.
	Program string `json:"program"`

	// Hash is the program's content hash.
	Hash string `json:"hash"`

	// BuildID is the id the program was archived under.
	BuildID string `json:"build_id,omitempty"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
