package api

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"arkfleet/opsboard/internal/common"
	"arkfleet/opsboard/internal/constants"
	"arkfleet/opsboard/internal/db/repositories"
	"arkfleet/opsboard/internal/services"
)

// handleServiceError maps service errors to appropriate HTTP responses
func handleServiceError(w http.ResponseWriter, initTime time.Time, err error) {
	if svcErr, ok := err.(*services.ReportError); ok {
		statusCode := mapErrorCodeToHTTPStatus(svcErr.Code)
		message := svcErr.Message
		if svcErr.Code != "" {
			message = constants.GetErrorMessage(svcErr.Code)
		}
		common.RespondError(w, initTime, nil, message, statusCode)
		return
	}

	common.RespondError(w, initTime, err, "An unexpected error occurred", http.StatusInternalServerError)
}

// respondStorageError maps raw repository errors from the record admin
// endpoints, which talk to the repository without a service in between.
func respondStorageError(w http.ResponseWriter, initTime time.Time, err error) {
	switch {
	case errors.Is(err, repositories.ErrUnknownTable):
		common.RespondError(w, initTime, nil, constants.GetErrorMessage(constants.ErrCodeUnknownTable), http.StatusNotFound)
	case errors.Is(err, sql.ErrNoRows):
		common.RespondError(w, initTime, nil, constants.GetErrorMessage(constants.ErrCodeRecordNotFound), http.StatusNotFound)
	case errors.Is(err, repositories.ErrBusy):
		common.RespondError(w, initTime, nil, constants.GetErrorMessage(constants.ErrCodeStorageBusy), http.StatusServiceUnavailable)
	default:
		common.RespondError(w, initTime, err, constants.GetErrorMessage(constants.ErrCodeStorageFailure), http.StatusInternalServerError)
	}
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(errorCode string) int {
	switch errorCode {
	case constants.ErrCodeInvalidParams, constants.ErrCodeMalformedUpload, constants.ErrCodeUnknownFormat:
		return http.StatusBadRequest
	case constants.ErrCodeUnknownTable, constants.ErrCodeRecordNotFound, constants.ErrCodeNoMatch:
		return http.StatusNotFound
	case constants.ErrCodeInvalidAPIKey, constants.ErrCodeInvalidToken:
		return http.StatusUnauthorized
	case constants.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case constants.ErrCodeStorageBusy:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
