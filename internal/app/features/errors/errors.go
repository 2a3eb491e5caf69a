// Package errors renders the API's error and success envelopes and maps
// domain errors onto HTTP status codes. Every handler funnels failures
// through Write so clients always get `{"error": "..."}` JSON.
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ponsectors/ponsectors/internal/app/store"
	"github.com/ponsectors/ponsectors/internal/app/system/collab"
	"github.com/ponsectors/ponsectors/internal/app/system/commenttree"
	"github.com/ponsectors/ponsectors/internal/app/system/moderation"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes a one-field error body.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// Write maps err to a status code and writes the error envelope.
// Unrecognized errors become 500 with a generic body; the detail goes to
// the log, not the client.
func Write(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		Message(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrDuplicateEmail):
		Message(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrInvalidCredentials):
		Message(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, store.ErrAlreadyCollaborator):
		Message(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrUnavailable):
		logger.Error("storage backend unavailable", zap.Error(err))
		Message(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	case errors.Is(err, collab.ErrUserNotFound):
		Message(w, http.StatusNotFound, err.Error())
	case errors.Is(err, moderation.ErrUnknownKind):
		Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, commenttree.ErrReplyTargetMissing),
		errors.Is(err, commenttree.ErrReplyWrongThread):
		Message(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("request failed", zap.Error(err))
		Message(w, http.StatusInternalServerError, "internal error")
	}
}

// Decode parses a JSON request body into dst, rejecting unknown fields.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
