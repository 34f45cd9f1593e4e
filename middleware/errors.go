// Package middleware holds the gin middleware shared by every route.
package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ideaforge/backend/models"
	"github.com/sirupsen/logrus"
)

// ErrorHandler turns the last error recorded on the context into an envelope. In production
// every 5xx body reads "Internal Server Error".
func ErrorHandler(clock *models.Clock, production bool, log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		apiErr := models.AsAPIError(c.Errors.Last().Err)
		status := apiErr.Status()
		message := apiErr.Message
		if production && status >= http.StatusInternalServerError {
			message = models.MsgInternal
		}

		entry := log.WithFields(logrus.Fields{
			"status":     status,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(RequestIDKey),
		}).WithError(apiErr)
		if status >= http.StatusInternalServerError {
			entry.Error("Request failed")
		} else {
			entry.Warn("Request rejected")
		}

		c.JSON(status, clock.Failure(message))
	}
}

// Recovery converts panics into a 500 envelope.
func Recovery(clock *models.Clock, log *logrus.Entry) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithFields(logrus.Fields{
			"panic":      fmt.Sprint(recovered),
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(RequestIDKey),
		}).Error("Panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, clock.Failure(models.MsgInternal))
	})
}

// NotFound answers unknown routes and methods.
func NotFound(clock *models.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, clock.Failure(models.MsgNotFound))
	}
}
