// Package importer ingests the two untrusted external data sources: the
// client's monthly Excel programming and KMZ/KML tower files. Both importers
// resolve against existing reference data through narrow store interfaces and
// report granular per-row results instead of failing the whole batch.
package importer

// Issue is a per-row or per-feature advisory or error. Index is the 1-based
// position in the source file (row number for Excel, placemark order for KMZ).
type Issue struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// Outcome is the combined result of one import call. Partial success is the
// normal case: Created/Updated/Skipped hold source indices, Warnings carry
// the heuristic decisions a human should review.
type Outcome struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"` // top-level failure, set only when Success is false

	Created []int `json:"created"`
	Updated []int `json:"updated"`
	Skipped []int `json:"skipped"`

	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`

	// Logical columns actually detected in the header row (Excel imports only)
	DetectedColumns []string `json:"detected_columns,omitempty"`
}

func failedOutcome(msg string) *Outcome {
	return &Outcome{Success: false, Error: msg}
}

func (o *Outcome) warn(index int, msg string) {
	o.Warnings = append(o.Warnings, Issue{Index: index, Message: msg})
}

func (o *Outcome) fail(index int, msg string) {
	o.Errors = append(o.Errors, Issue{Index: index, Message: msg})
}

// Options control upsert behavior for both importers.
type Options struct {
	// ActualizarExistentes overwrites records that already match by natural
	// key; when false a duplicate is skipped with a warning.
	ActualizarExistentes bool
}
