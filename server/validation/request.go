package validation

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	cherikierrors "github.com/cheriki-dz/cheriki/errors"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 1 << 20

// DecodeJSON reads a JSON body into dst and validates it. The returned error
// is ready to be written with errors.WriteError.
func DecodeJSON(w http.ResponseWriter, r *http.Request, requestID string, dst interface{}) *cherikierrors.CherikiError {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			return cherikierrors.NewValidationError(requestID, "Content-Type must be application/json",
				map[string]interface{}{"content_type": ct})
		}
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return cherikierrors.NewError(cherikierrors.BadRequestError, "Request body too large",
				http.StatusRequestEntityTooLarge, requestID, nil, err)
		case errors.Is(err, io.EOF):
			return cherikierrors.NewBadRequestError(requestID, "Request body is empty", err)
		default:
			return cherikierrors.NewBadRequestError(requestID, "Invalid JSON body", err)
		}
	}

	if errs := Struct(dst); errs != nil {
		return cherikierrors.NewValidationError(requestID, "Request validation failed", Details(errs))
	}
	return nil
}
