// Package usage holds search usage telemetry types.
package usage

// Event is one usage-telemetry record emitted per search request.
// Written through to the analytics sink, never read back by the search core.
type Event struct {
	ID           string
	Query        string
	Strategy     string
	ResultCount  int
	TotalCount   int
	Category     string
	FileType     string
	VaultScope   string
	HasDateRange bool
	DurationMS   int64
	At           int64 // unix millis
}
