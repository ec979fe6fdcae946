package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/angelmondragon/dropsight-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// RequiredQuery returns the named query parameter or a validation error.
func RequiredQuery(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, name+" query parameter required")
	}
	return value, nil
}

// UUIDParam parses a UUID path parameter.
func UUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, name+" must be a valid uuid")
	}
	return id, nil
}
