package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skillbridge/marketplace-go/response"
	"github.com/skillbridge/marketplace-go/services"
)

// writeError maps service errors onto HTTP statuses: guard failures
// are conflicts, unknown projects 404, storage trouble 503. Everything
// is surfaced to the caller; nothing is logged-and-dropped.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid project id"})
		return 0, false
	}
	return uint(id), true
}
