package ui

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"datasight/internal/dataset"
	"datasight/internal/errors"
	"datasight/internal/render"
)

type errorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps an application error code to an HTTP status
func statusFor(code string) int {
	switch code {
	case errors.CodeInvalidInput, errors.CodeValidationError:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeLoadError, errors.CodeRenderError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {"error": ...}. Internal failures are logged and
// their details withheld from the client.
func (a *App) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if isTooLarge(err) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "File too large", Code: errors.CodeInvalidInput})
		return
	}

	code := errors.GetCode(err)
	status := statusFor(code)
	resp := errorResponse{Error: err.Error(), Code: code}

	if failure, ok := render.AsFailure(err); ok {
		resp.Error = failure.Error()
		resp.Reason = failure.Reason
	}
	if status == http.StatusInternalServerError {
		a.logger.Error("[HTTP] %s %s failed: %v", r.Method, r.URL.Path, err)
		resp.Error = "Internal server error"
	}
	writeJSON(w, status, resp)
}

// isTooLarge reports whether err came from the request body limit or the
// upload storage cap
func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return stderrors.As(err, &tooLarge) ||
		stderrors.Is(err, dataset.ErrFileTooLarge) ||
		strings.Contains(err.Error(), "request body too large")
}

// decodeJSON reads a JSON request body into v
func decodeJSON(r *http.Request, v interface{}) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return errors.InvalidInput("Content-Type must be application/json")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.InvalidInput("Invalid JSON body")
	}
	return nil
}

// intQuery returns the integer query parameter key, or def when absent or
// malformed
func intQuery(r *http.Request, key string, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
