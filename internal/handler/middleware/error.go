package middleware

import (
	"log/slog"
	"net/http"

	"redemption-ledger/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the error envelope for handlers that recorded an error
// without responding. Public errors carry a prepared response in Meta; any
// other error is mapped through the taxonomy.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		last := c.Errors.Last()
		for i := len(c.Errors) - 1; i >= 0; i-- {
			if resp, ok := c.Errors[i].Meta.(httperr.Response); ok && c.Errors[i].IsType(gin.ErrorTypePublic) {
				c.JSON(resp.Status, resp)
				return
			}
		}

		status, code, msg := httperr.Status(last.Err)
		if status >= http.StatusInternalServerError {
			slog.ErrorContext(c.Request.Context(), "unhandled request error",
				"path", c.FullPath(), "method", c.Request.Method, "error", last.Err)
		}
		resp := httperr.Response{Status: status}
		resp.Error.Message = msg
		resp.Error.Code = code
		c.JSON(status, resp)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.ErrorContext(c.Request.Context(), "recovered from panic",
					"error", err, "path", c.Request.URL.Path, "method", c.Request.Method)

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"
				resp.Error.Code = "internal"

				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
