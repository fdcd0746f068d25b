package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLocalPath(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{target: "/blog", want: "/blog"},
		{target: "/blog?page=2", want: "/blog?page=2"},
		{target: "", want: "/"},
		{target: "blog", want: "/"},
		{target: "//evil.example.com", want: "/"},
		{target: "/\\evil.example.com", want: "/"},
		{target: "https://evil.example.com/", want: "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LocalPath(tt.target, "/"), "target=%q", tt.target)
	}
}

func TestSafeReferer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{name: "missing", referer: "", want: "/blog"},
		{name: "same host", referer: "http://example.com/read/3", want: "/read/3"},
		{name: "same host with query", referer: "http://example.com/?page=2", want: "/?page=2"},
		{name: "bare host", referer: "http://example.com", want: "/"},
		{name: "relative", referer: "/blog?page=4", want: "/blog?page=4"},
		{name: "other host", referer: "https://evil.example.org/phish", want: "/blog"},
		{name: "garbage", referer: "http://[::1", want: "/blog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/blog/status/1", nil)
			if tt.referer != "" {
				c.Request.Header.Set("Referer", tt.referer)
			}
			assert.Equal(t, tt.want, SafeReferer(c, "/blog"))
		})
	}
}

func TestFlashesSurviveRedirectUntilRendered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	SetFlashState(c, NewFlashState("secret", false, nil))

	AddFlash(c, FlashSuccess, "saved")
	Redirect(c, "/blog")

	assert.Equal(t, http.StatusFound, rec.Code)
	cookies := (&http.Response{Header: rec.Header()}).Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, FlashCookie, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
	}
}

func TestCurrentUserAnonymous(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, CurrentUser(c))
	assert.Equal(t, uint(0), CurrentUserID(c))
}
