package core

// Status classifies the outcome of one retrieval step. Failures are carried
// as values inside the envelope so the planner can degrade gracefully instead
// of losing the turn.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusWarning Status = "warning"
)

// Row is one record as the relational store returns it: projected column
// name to value, in whatever shape the query produced.
type Row map[string]any

// StructuredResult is the outcome of one structured-query execution.
// Immutable once returned; never cached across turns.
type StructuredResult struct {
	Status  Status   `json:"status"`
	Message string   `json:"message,omitempty"`
	Columns []string `json:"columns,omitempty"`
	Rows    []Row    `json:"rows,omitempty"`
}

func (r StructuredResult) Failed() bool {
	return r.Status == StatusError
}

// SemanticMatch is a single vector-index hit with the record payload that was
// attached at indexing time.
type SemanticMatch struct {
	ID       string            `json:"id"`
	Score    float32           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// SemanticResult is the outcome of one semantic-search execution. Matches are
// ordered by descending similarity and bounded by the configured top-K.
type SemanticResult struct {
	Status  Status          `json:"status"`
	Message string          `json:"message,omitempty"`
	Matches []SemanticMatch `json:"matches,omitempty"`
}

// Envelope is the unified result of one hybrid retrieval invocation, handed
// back to the planner as tool output. Built fresh per call, never mutated
// after construction.
type Envelope struct {
	Structured   StructuredResult `json:"sql_results"`
	ExtractedIDs []string         `json:"extracted_ids,omitempty"`
	Semantic     *SemanticResult  `json:"semantic_results,omitempty"`
}
