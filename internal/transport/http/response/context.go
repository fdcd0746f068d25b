package response

import (
	"github.com/gin-gonic/gin"

	"gopherblog/internal/model"
)

const (
	contextUserKey  = "current_user"
	contextCSRFKey  = "csrf_token"
	contextFlashKey = "flash_state"
)

func SetCurrentUser(c *gin.Context, user *model.User) {
	c.Set(contextUserKey, user)
}

// CurrentUser returns the signed-in user or nil for anonymous requests.
func CurrentUser(c *gin.Context) *model.User {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*model.User)
	return user
}

func CurrentUserID(c *gin.Context) uint {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return 0
}

func SetCSRFToken(c *gin.Context, token string) {
	c.Set(contextCSRFKey, token)
}

func CSRFToken(c *gin.Context) string {
	return c.GetString(contextCSRFKey)
}
