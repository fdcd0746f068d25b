package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gopherblog/internal/pkg/jwtutil"
)

const (
	FlashCookie = "flash"

	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// FlashState carries flash messages across one redirect. Incoming messages
// come from the request cookie; queued ones were added while handling this
// request.
type FlashState struct {
	secret   string
	secure   bool
	incoming []jwtutil.FlashMessage
	queued   []jwtutil.FlashMessage
	consumed bool
}

func NewFlashState(secret string, secure bool, incoming []jwtutil.FlashMessage) *FlashState {
	return &FlashState{secret: secret, secure: secure, incoming: incoming}
}

func SetFlashState(c *gin.Context, state *FlashState) {
	c.Set(contextFlashKey, state)
}

func flashState(c *gin.Context) *FlashState {
	value, ok := c.Get(contextFlashKey)
	if !ok {
		return nil
	}
	state, _ := value.(*FlashState)
	return state
}

func AddFlash(c *gin.Context, category, text string) {
	if state := flashState(c); state != nil {
		state.queued = append(state.queued, jwtutil.FlashMessage{Category: category, Text: text})
	}
}

// takeFlashes returns every pending message for display and clears the
// cookie they arrived in.
func takeFlashes(c *gin.Context) []jwtutil.FlashMessage {
	state := flashState(c)
	if state == nil {
		return nil
	}
	messages := state.pending()
	if len(state.incoming) > 0 && !state.consumed {
		state.clearCookie(c)
	}
	state.consumed = true
	state.queued = nil
	return messages
}

// carryFlashes writes undisplayed messages to the cookie so they survive the
// redirect.
func carryFlashes(c *gin.Context) {
	state := flashState(c)
	if state == nil {
		return
	}
	messages := state.pending()
	if len(messages) == 0 {
		return
	}
	token, err := jwtutil.GenerateFlashToken(state.secret, messages)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookie, token, int(jwtutil.FlashTTL.Seconds()), "/", "", state.secure, true)
}

func (s *FlashState) pending() []jwtutil.FlashMessage {
	out := make([]jwtutil.FlashMessage, 0, len(s.incoming)+len(s.queued))
	if !s.consumed {
		out = append(out, s.incoming...)
	}
	return append(out, s.queued...)
}

func (s *FlashState) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookie, "", -1, "/", "", s.secure, true)
}
