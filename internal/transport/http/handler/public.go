package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gopherblog/internal/app"
	"gopherblog/internal/pkg/pagination"
	"gopherblog/internal/transport/http/response"
)

type PublicHandler struct {
	blogService *app.BlogService
	logger      *logrus.Logger
}

func NewPublicHandler(blogService *app.BlogService, logger *logrus.Logger) *PublicHandler {
	return &PublicHandler{blogService: blogService, logger: logger}
}

func (h *PublicHandler) Index(c *gin.Context) {
	page := pagination.Normalize(c.Query("page"))
	result, err := h.blogService.ListPublished(c.Request.Context(), page)
	if err != nil {
		h.logger.WithError(err).WithField("page", page).Error("list published blogs failed")
		response.InternalError(c)
		return
	}

	response.HTML(c, http.StatusOK, "index.html", gin.H{
		"Title": "Home",
		"Posts": result.Blogs,
		"Page":  result.Page,
		"Path":  "/",
	})
}

func (h *PublicHandler) Read(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.NotFound(c)
		return
	}

	rendered, err := h.blogService.Read(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrBlogNotFound):
			response.NotFound(c)
		default:
			h.logger.WithError(err).WithField("blog_id", id).Error("read blog failed")
			response.InternalError(c)
		}
		return
	}

	response.HTML(c, http.StatusOK, "read-blog.html", gin.H{
		"Title": rendered.Blog.Title,
		"Post":  rendered.Blog,
		"Body":  rendered.HTML,
	})
}
