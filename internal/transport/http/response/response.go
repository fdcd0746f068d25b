package response

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// HTML renders a page with the data every template expects: the current
// user, pending flash messages and the CSRF token.
func HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = CurrentUser(c)
	data["Flashes"] = takeFlashes(c)
	data["CSRFToken"] = CSRFToken(c)
	c.HTML(status, name, data)
}

func ErrorPage(c *gin.Context, status int, message string) {
	HTML(c, status, "error.html", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	})
}

func NotFound(c *gin.Context) {
	ErrorPage(c, http.StatusNotFound, "The requested page was not found.")
}

func InternalError(c *gin.Context) {
	ErrorPage(c, http.StatusInternalServerError, "Something went wrong on our side. Please try again later.")
}

// Redirect issues a 302 and carries pending flash messages along.
func Redirect(c *gin.Context, location string) {
	carryFlashes(c)
	c.Redirect(http.StatusFound, location)
}

// RedirectBack redirects to the Referer when it points at this site, else to
// fallback.
func RedirectBack(c *gin.Context, fallback string) {
	Redirect(c, SafeReferer(c, fallback))
}

func SafeReferer(c *gin.Context, fallback string) string {
	raw := c.GetHeader("Referer")
	if raw == "" {
		return fallback
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return fallback
	}
	if ref.Host != "" && !strings.EqualFold(ref.Host, c.Request.Host) {
		return fallback
	}
	path := ref.EscapedPath()
	if path == "" {
		path = "/"
	}
	if ref.RawQuery != "" {
		path += "?" + ref.RawQuery
	}
	return LocalPath(path, fallback)
}

// LocalPath accepts only absolute paths on this site. Scheme-relative
// ("//host") and backslash tricks fall back.
func LocalPath(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") {
		return fallback
	}
	if strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	if u, err := url.Parse(target); err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return target
}
