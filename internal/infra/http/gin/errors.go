package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"farmstay/internal/app/access"
	domainfarms "farmstay/internal/domain/farms"
	domainimages "farmstay/internal/domain/images"
	"farmstay/internal/domain/shared/dayrange"
)

// statusForError maps application errors onto HTTP statuses. Anything not
// recognized is treated as a storage failure rather than a client mistake.
func statusForError(err error) int {
	switch {
	case errors.Is(err, dayrange.ErrInvalidStay),
		errors.Is(err, dayrange.ErrInvalidDay),
		isValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, access.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domainfarms.ErrFarmNotFound),
		errors.Is(err, domainimages.ErrImageNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, domainfarms.ErrNameRequired),
		errors.Is(err, domainfarms.ErrOwnerRequired),
		errors.Is(err, domainfarms.ErrGuestsLimit),
		errors.Is(err, domainfarms.ErrNightlyRate):
		return true
	}
	return false
}

func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status := statusForError(err)
	if logger != nil {
		fields := []any{"status", status, "error", err, "path", c.FullPath()}
		if p, ok := currentPrincipal(c); ok {
			fields = append(fields, "caller_id", string(p.ID))
		}
		logger.Error("request failed", fields...)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
