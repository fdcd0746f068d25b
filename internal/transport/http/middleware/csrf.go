package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"gopherblog/internal/transport/http/response"
)

const (
	CSRFCookie = "csrf_token"
	CSRFField  = "csrf_token"
)

// CSRF implements the double-submit cookie check: every unsafe request must
// echo the csrf_token cookie in the csrf_token form field.
func CSRF(secure bool, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CSRFCookie)
		if err != nil || token == "" {
			token = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CSRFCookie, token, 0, "/", "", secure, true)
		}
		response.SetCSRFToken(c, token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		submitted := c.PostForm(CSRFField)
		if err != nil || submitted == "" || subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
			logger.WithFields(logrus.Fields{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
			}).Warn("csrf check failed")
			response.ErrorPage(c, http.StatusBadRequest, "The CSRF token is missing or invalid.")
			c.Abort()
			return
		}
		c.Next()
	}
}
