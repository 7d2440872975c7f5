package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/pliu/parley/internal/service"
)

var validate = validator.New()

type meta struct {
	Count int `json:"count"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

// decodeJSON decodes and validates the request body. On failure it
// writes a 400 and reports false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return false
	}
	return true
}

// writeError maps domain errors to their fixed status and wire shape.
// The detail envelope is a contract with clients; do not change it.
func writeError(w http.ResponseWriter, err error) {
	var nf *service.NotFoundError
	var dup *service.DuplicateError
	var perm *service.PermissionError
	switch {
	case errors.As(err, &nf):
		writeJSON(w, http.StatusNotFound, map[string]any{
			"detail": map[string]any{
				"type":        "entity_not_found",
				"entity_name": nf.EntityName,
				"entity_id":   nf.EntityID,
			},
		})
	case errors.As(err, &dup):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": map[string]any{
				"type":        "duplicate_entity",
				"entity_name": dup.EntityName,
				"entity_id":   dup.EntityID,
			},
		})
	case errors.As(err, &perm):
		writeJSON(w, http.StatusForbidden, map[string]any{
			"detail": map[string]any{
				"type":        "no_permission",
				"action":      perm.Action,
				"entity_name": perm.EntityName,
				"entity_id":   perm.EntityID,
			},
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"detail": map[string]any{"type": "unauthenticated"},
		})
	default:
		log.Error().Err(err).Msg("internal error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
