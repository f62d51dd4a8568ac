package httpapi

import (
	"errors"
	"net/http"

	"report-backend/auth"
	"report-backend/orm"
	"report-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError maps the internal error taxonomy onto HTTP statuses:
// validation 400, not-found 404, conflict 409, everything else 500.
func respondError(c *gin.Context, err error) {
	var validationErr *orm.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Reason})

		return
	}

	var notFoundErr *orm.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})

		return
	}

	var conflictErr *orm.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, gin.H{"message": conflictErr.Conflict + " already exists"})

		return
	}

	if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrAccountArchived) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})

		return
	}

	var storageErr *storage.Error
	if errors.As(err, &storageErr) {
		log.Error().Err(err).Msg("blob storage failure")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "storage failure"})

		return
	}

	log.Error().Err(err).Msg("internal error")
	c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
}
