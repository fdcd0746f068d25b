package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gopherblog/internal/app"
	"gopherblog/internal/model"
	"gopherblog/internal/transport/http/response"
)

const SessionCookie = "session"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// Session resolves the session cookie to a user. Failures leave the request
// anonymous; a stale cookie is cleared.
func Session(auth Authenticator, secure bool, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
			response.SetCurrentUser(c, user)
		case errors.Is(err, app.ErrUnauthenticated):
			ClearSessionCookie(c, secure)
		default:
			logger.WithError(err).Warn("resolve session failed")
		}
		c.Next()
	}
}

// RequireLogin sends anonymous visitors to the sign-in page, remembering
// where they were headed.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if response.CurrentUser(c) != nil {
			c.Next()
			return
		}
		response.AddFlash(c, response.FlashInfo, "Please log in to access this page.")
		response.Redirect(c, "/signin?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

func SetSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}
