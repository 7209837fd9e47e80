package ledger

import (
	"time"

	"declascan/constants"
)

// Entry is one immutable row of the provenance ledger: the outcome of one
// processed document, success or error. Entries are never updated or
// deleted after append.
type Entry struct {
	ID          string                `json:"id"`
	Filename    string                `json:"filename"`
	Date        time.Time             `json:"date"`
	Status      constants.EntryStatus `json:"status"`
	FieldsFound int                   `json:"fields_found"`
	TotalFields int                   `json:"total_fields"`
	JSONPath    string                `json:"json_path"`
	CSVPath     string                `json:"csv_path"`
	ErrorMsg    string                `json:"error_msg,omitempty"`
}
