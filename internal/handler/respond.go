package handler

import (
	"net/http"

	"qzone/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const serverErrorMsg = "Server error"

// outcome names an error by its kind, for metrics labels
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	switch service.Kind(err) {
	case service.ErrValidation:
		return "validation"
	case service.ErrConflict:
		return "conflict"
	case service.ErrAuth:
		return "auth"
	default:
		return "storage"
	}
}

// writeError maps client-caused errors to 400 with their message and everything else to a
// generic 500. Only the 500 path logs the cause.
func writeError(c *gin.Context, log *logrus.Logger, err error) {
	switch service.Kind(err) {
	case service.ErrValidation, service.ErrConflict, service.ErrAuth:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		log.WithError(err).WithField("route", c.FullPath()).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": serverErrorMsg})
	}
}
