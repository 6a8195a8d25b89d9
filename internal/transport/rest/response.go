package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/forum-backend/internal/domain"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error  string          `json:"error"`
	Reason string          `json:"reason,omitempty"`
	Field  string          `json:"field,omitempty"`
	Fields []fieldResponse `json:"fields,omitempty"`
}

type fieldResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads a single JSON object from the request body. Unknown
// fields are rejected so typos in setting names do not pass silently.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("decode body: trailing data")
	}
	return nil
}

// writeServiceError maps a service error onto an HTTP response. Anything
// unrecognised is logged and reported as a 500.
func writeServiceError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var abort *domain.AbortError
	if errors.As(err, &abort) {
		writeJSON(w, abortStatus(abort.Reason), errorResponse{
			Error:  abort.Message,
			Reason: abort.Reason.String(),
			Field:  abort.Field,
		})
		return
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		resp := errorResponse{Error: "validation failed"}
		for _, fe := range ve.Errors {
			resp.Fields = append(resp.Fields, fieldResponse{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func abortStatus(reason domain.AbortReason) int {
	switch reason {
	case domain.AbortPermissionDenied, domain.AbortFeatureDisabled:
		return http.StatusForbidden
	case domain.AbortDuplicateTitle:
		return http.StatusConflict
	case domain.AbortMalformedInput:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
