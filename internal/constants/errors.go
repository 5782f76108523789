package constants

// Error codes surfaced by the report and ingestion services.

const (
	ErrCodeInvalidParams    = "INVALID_PARAMS"
	ErrCodeUnknownTable     = "UNKNOWN_TABLE"
	ErrCodeRecordNotFound   = "RECORD_NOT_FOUND"
	ErrCodeNoMatch          = "NO_CORRELATION_MATCH"
	ErrCodeStorageBusy      = "STORAGE_BUSY"
	ErrCodeStorageFailure   = "STORAGE_FAILURE"
	ErrCodeUnknownFormat    = "UNKNOWN_UPLOAD_FORMAT"
	ErrCodeMalformedUpload  = "MALFORMED_UPLOAD"
	ErrCodeInvalidAPIKey    = "INVALID_API_KEY"
	ErrCodeInvalidToken     = "INVALID_TOKEN"
	ErrCodeRateLimited      = "RATE_LIMITED"
)

var errorMessages = map[string]string{
	ErrCodeInvalidParams:   "One or more request parameters are missing or invalid",
	ErrCodeUnknownTable:    "The requested table is not a known report table",
	ErrCodeRecordNotFound:  "The requested record was not found",
	ErrCodeNoMatch:         "No trip-history row matched within the search tolerance",
	ErrCodeStorageBusy:     "Storage is busy; retries exhausted",
	ErrCodeStorageFailure:  "Storage operation failed",
	ErrCodeUnknownFormat:   "The uploaded file does not match any known export format",
	ErrCodeMalformedUpload: "The uploaded file could not be parsed",
	ErrCodeInvalidAPIKey:   "The API key is invalid or inactive",
	ErrCodeInvalidToken:    "The bearer token is invalid or expired",
	ErrCodeRateLimited:     "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the human-readable message for an error code.
func GetErrorMessage(code string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An unknown error occurred"
}
