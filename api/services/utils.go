package services

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/homedash/homedash-services/api/middleware"
	"github.com/homedash/homedash-services/db"
	"github.com/homedash/homedash-services/internal/authn"
	"github.com/homedash/homedash-services/models"
)

var validate = validator.New()

// WriteResponse writes a JSON body with the given status. Responses are
// never cached so clients always see current data.
func WriteResponse(w http.ResponseWriter, statusCode int, response interface{}, location ...string) {

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "max-age=0")

	if len(location) > 0 && location[0] != "" {
		w.Header().Set("Location", location[0])
	}

	w.WriteHeader(statusCode)

	if response != nil {
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// WriteMessage writes the generic {"message": ...} envelope.
func WriteMessage(w http.ResponseWriter, statusCode int, message string) {
	WriteResponse(w, statusCode, models.MessageResponse{Message: message})
}

// decodeAndValidate parses the JSON body into dst and runs the validator
// over it. The returned error message is safe to echo to the client.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid request payload")
	}
	if err := validate.Struct(dst); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return errors.New(ve[0].Field() + " failed validation (" + ve[0].Tag() + ")")
		}
		return err
	}
	return nil
}

// claimsFrom extracts the authenticated user's claims from the request
// context. ok is false when the auth middleware did not run.
func claimsFrom(r *http.Request) (authn.Claims, bool) {
	claims, ok := r.Context().Value(middleware.ClaimsKey).(authn.Claims)
	return claims, ok
}

// writeStoreError maps persistence sentinel errors to the taxonomy: absent
// or foreign-owned rows are 404, uniqueness conflicts are 409, everything
// else is a 500 with rollback already guaranteed by the store.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		WriteMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, db.ErrGroupNotFound):
		WriteMessage(w, http.StatusNotFound, "group not found")
	case errors.Is(err, db.ErrUsernameTaken):
		WriteMessage(w, http.StatusConflict, "Username already taken")
	default:
		WriteMessage(w, http.StatusInternalServerError, "internal error")
	}
}
