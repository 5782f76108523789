package dtos

// APIResponse is the standard envelope for every JSON endpoint.
type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// IngestResult summarizes one upload run.
type IngestResult struct {
	Filename    string `json:"filename"`
	Format      string `json:"format"`
	TargetTable string `json:"target_table"`
	RowsWritten int    `json:"rows_written"`
	RowsSkipped int    `json:"rows_skipped"`
}
