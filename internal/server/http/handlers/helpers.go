package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/pharmadash/internal/adapter/pharmacy"
	domainErrors "github.com/polkiloo/pharmadash/internal/domain/errors"
	pkgAuth "github.com/polkiloo/pharmadash/internal/pkg/auth"
	"github.com/polkiloo/pharmadash/internal/server/http/dto"
	"github.com/polkiloo/pharmadash/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func statusFor(err error) int {
	var upstream pharmacy.StatusError
	switch {
	case errors.Is(err, domainErrors.ErrInvalidRegistration),
		errors.Is(err, domainErrors.ErrInvalidStatus),
		errors.Is(err, domainErrors.ErrMissingWarehouse):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrInvalidCredentials),
		errors.Is(err, pkgAuth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrWarehouseNotTrusted):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrAlreadyExists),
		errors.Is(err, domainErrors.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInvalidQuantity),
		errors.Is(err, domainErrors.ErrInvalidDiscount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrUpstreamUnauthorized),
		errors.Is(err, pharmacy.ErrUnexpectedPayload),
		errors.As(err, &upstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	switch status {
	case http.StatusInternalServerError:
		message = "internal server error"
	case http.StatusBadGateway:
		message = "pharmacy service unavailable: " + err.Error()
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: message})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: message})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
