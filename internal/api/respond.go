package api

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/racklabs/rackplan/pkg/errors"
)

type errorBody struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code apperrors.Code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// respondError maps an error to the JSON envelope. Errors without a
// code are treated as internal and logged with their full chain; coded
// errors surface their message to the caller as-is.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"id", RequestID(r.Context()),
			"path", r.URL.Path,
			"err", err)
	}
	writeError(w, status, code, apperrors.UserMessage(err))
}

func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidCapacity,
		apperrors.ErrCodeInvalidItem,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeProductNotFound,
		apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnsupported:
		return http.StatusMethodNotAllowed
	case apperrors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeNetwork, apperrors.ErrCodeCatalog, apperrors.ErrCodeAI:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
