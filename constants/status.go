package constants

// EntryStatus is the canonical status for rows in the provenance ledger.
type EntryStatus string

// Stable values (store these exact strings on disk).
const (
	StatusSuccess EntryStatus = "success" // document extracted, artifacts written
	StatusError   EntryStatus = "error"   // document failed before a result was produced
)
