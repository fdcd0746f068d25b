package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gopherblog/internal/pkg/jwtutil"
	"gopherblog/internal/transport/http/response"
)

// Flash loads messages left by the previous redirect. A tampered or expired
// cookie is dropped.
func Flash(secret string, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var incoming []jwtutil.FlashMessage
		if raw, err := c.Cookie(response.FlashCookie); err == nil && raw != "" {
			messages, err := jwtutil.ParseFlashToken(secret, raw)
			if err != nil {
				c.SetSameSite(http.SameSiteLaxMode)
				c.SetCookie(response.FlashCookie, "", -1, "/", "", secure, true)
			} else {
				incoming = messages
			}
		}
		response.SetFlashState(c, response.NewFlashState(secret, secure, incoming))
		c.Next()
	}
}
