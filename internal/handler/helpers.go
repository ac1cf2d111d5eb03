package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"notevault/internal/domain"
	"notevault/internal/httputil"
)

// handleError converts domain errors to RFC 7807 responses carrying the
// machine-readable error code
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := domain.StatusOf(err)
	extras := map[string]interface{}{"code": domain.CodeOf(err)}

	var conflictErr *domain.ConflictError
	var notEmptyErr *domain.FolderNotEmptyError
	switch {
	case errors.As(err, &conflictErr):
		extras["resource_type"] = conflictErr.ResourceType
		extras["resource_id"] = conflictErr.ResourceID
	case errors.As(err, &notEmptyErr):
		extras["folder_count"] = notEmptyErr.FolderCount
		extras["file_count"] = notEmptyErr.FileCount
	}

	detail := err.Error()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "code", extras["code"], "error", err)
		// Storage errors name keys and backend details
		detail = "internal server error"
	}

	httputil.RespondErrorWithExtras(w, status, detail, extras)
}

// HandleCreateConflict handles conflicts during creation by returning the existing resource with 409
// If the error is a ConflictError, it calls fetchFn to retrieve the existing resource
func HandleCreateConflict[T any](w http.ResponseWriter, logger *slog.Logger, err error, fetchFn func(id string) (*T, error)) {
	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) && conflictErr.ResourceID != "" {
		existing, fetchErr := fetchFn(conflictErr.ResourceID)
		if fetchErr != nil {
			handleError(w, logger, fetchErr)
			return
		}

		httputil.RespondJSON(w, http.StatusConflict, existing)
		return
	}

	handleError(w, logger, err)
}

// queryBool parses an optional boolean query parameter
func queryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, domain.NewValidationError("%s must be a boolean", name)
	}
	return v, nil
}

// queryList splits a comma-separated query parameter, dropping blanks
func queryList(r *http.Request, name string) []string {
	var out []string
	for _, v := range strings.Split(r.URL.Query().Get(name), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// HealthCheck is a simple health check endpoint
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
