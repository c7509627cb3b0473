package harness

// TraceEvent records one flow step as the query service answered it.
type TraceEvent struct {
	Seq       int    `json:"seq"`
	Path      string `json:"path"`
	Kind      string `json:"kind"`
	RequestID string `json:"request_id,omitempty"`
	Rows      int    `json:"rows"`
	Error     string `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per flow step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event, assigning the next sequence number.
func (r *Result) AddTrace(event TraceEvent) {
	event.Seq = len(r.Trace) + 1
	r.Trace = append(r.Trace, event)
}
