package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/kosbot/kosbot-api/internal/api/middleware"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/utils"
	"github.com/kosbot/kosbot-api/internal/pkg/validator"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// ownerID returns the authenticated owner, writing a 401 when absent
func ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.GetOwnerID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Authentication required"))
		return "", false
	}
	return id, true
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
// It writes the error response itself and reports whether to continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, val *validator.Validator, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return false
	}
	if validationErrs := val.Validate(dst); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return false
	}
	return true
}

// writeServiceError renders err, logging unexpected failures
func writeServiceError(w http.ResponseWriter, log *logger.Logger, err error, fallback string) {
	if appErr, ok := errors.AsAppError(err); ok {
		if appErr.StatusCode >= http.StatusInternalServerError {
			log.ErrorWithErr(err, fallback)
		}
		utils.WriteError(w, appErr)
		return
	}
	log.ErrorWithErr(err, fallback)
	utils.WriteErr(w, err, fallback)
}
