package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gopherblog/internal/app"
	"gopherblog/internal/form"
	"gopherblog/internal/model"
	"gopherblog/internal/pkg/pagination"
	"gopherblog/internal/transport/http/response"
)

const (
	myBlogsPath        = "/blog"
	unauthorizedAction = "Unauthorized action! You cannot access someone else's post."
)

type BlogHandler struct {
	blogService *app.BlogService
	logger      *logrus.Logger
}

func NewBlogHandler(blogService *app.BlogService, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{blogService: blogService, logger: logger}
}

func (h *BlogHandler) MyBlogs(c *gin.Context) {
	userID := response.CurrentUserID(c)
	page := pagination.Normalize(c.Query("page"))

	result, err := h.blogService.ListByOwner(c.Request.Context(), userID, page)
	if err != nil {
		h.fail(c, err, userID, 0, "list own blogs failed")
		return
	}

	response.HTML(c, http.StatusOK, "my-blog.html", gin.H{
		"Title": "My Blogs",
		"Posts": result.Blogs,
		"Page":  result.Page,
		"Path":  myBlogsPath,
	})
}

func (h *BlogHandler) CreatePage(c *gin.Context) {
	h.renderForm(c, http.StatusOK, createBlogPage, form.NewBlogForm(), nil, nil)
}

func (h *BlogHandler) Create(c *gin.Context) {
	var input form.BlogForm
	if err := c.ShouldBind(&input); err != nil {
		response.ErrorPage(c, http.StatusBadRequest, "The submitted form could not be read.")
		return
	}

	userID := response.CurrentUserID(c)
	if _, err := h.blogService.Create(c.Request.Context(), userID, input); err != nil {
		var fieldErrs form.FieldErrors
		if errors.As(err, &fieldErrs) {
			input.Normalize()
			h.renderForm(c, http.StatusUnprocessableEntity, createBlogPage, input, fieldErrs, nil)
			return
		}
		h.fail(c, err, userID, 0, "create blog failed")
		return
	}

	response.AddFlash(c, response.FlashSuccess, "Blog post created successfully!")
	response.Redirect(c, myBlogsPath)
}

func (h *BlogHandler) View(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.NotFound(c)
		return
	}

	userID := response.CurrentUserID(c)
	rendered, err := h.blogService.ViewOwned(c.Request.Context(), userID, id)
	if err != nil {
		h.fail(c, err, userID, id, "view blog failed")
		return
	}

	response.HTML(c, http.StatusOK, "view-blog.html", gin.H{
		"Title": rendered.Blog.Title,
		"Post":  rendered.Blog,
		"Body":  rendered.HTML,
	})
}

func (h *BlogHandler) EditPage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.NotFound(c)
		return
	}

	userID := response.CurrentUserID(c)
	blog, err := h.blogService.GetOwned(c.Request.Context(), userID, id)
	if err != nil {
		h.fail(c, err, userID, id, "load blog for edit failed")
		return
	}
	h.renderForm(c, http.StatusOK, editBlogPage, form.BlogFormFrom(blog), nil, blog)
}

func (h *BlogHandler) Edit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.NotFound(c)
		return
	}

	var input form.BlogForm
	if err := c.ShouldBind(&input); err != nil {
		response.ErrorPage(c, http.StatusBadRequest, "The submitted form could not be read.")
		return
	}

	userID := response.CurrentUserID(c)
	blog, err := h.blogService.Update(c.Request.Context(), userID, id, input)
	if err != nil {
		var fieldErrs form.FieldErrors
		if errors.As(err, &fieldErrs) {
			input.Normalize()
			h.renderForm(c, http.StatusUnprocessableEntity, editBlogPage, input, fieldErrs, blog)
			return
		}
		h.fail(c, err, userID, id, "update blog failed")
		return
	}

	response.AddFlash(c, response.FlashSuccess, "Blog updated successfully!")
	response.Redirect(c, myBlogsPath)
}

func (h *BlogHandler) ToggleStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.NotFound(c)
		return
	}

	userID := response.CurrentUserID(c)
	if _, err := h.blogService.ToggleStatus(c.Request.Context(), userID, id); err != nil {
		h.fail(c, err, userID, id, "toggle blog status failed")
		return
	}

	response.AddFlash(c, response.FlashSuccess, "Post status updated!")
	response.RedirectBack(c, myBlogsPath)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.NotFound(c)
		return
	}

	userID := response.CurrentUserID(c)
	if err := h.blogService.Delete(c.Request.Context(), userID, id); err != nil {
		h.fail(c, err, userID, id, "delete blog failed")
		return
	}

	response.AddFlash(c, response.FlashSuccess, "Post has been deleted successfully!")
	response.Redirect(c, myBlogsPath)
}

type blogFormPage struct {
	template string
	title    string
}

var (
	createBlogPage = blogFormPage{template: "create-blog.html", title: "Create Blog"}
	editBlogPage   = blogFormPage{template: "edit-blog.html", title: "Edit Blog"}
)

func (h *BlogHandler) renderForm(c *gin.Context, status int, page blogFormPage, input form.BlogForm, errs form.FieldErrors, blog *model.Blog) {
	response.HTML(c, status, page.template, gin.H{
		"Title":    page.title,
		"Form":     input,
		"Errors":   errs,
		"Post":     blog,
		"Statuses": model.BlogStatuses(),
	})
}

// fail maps service errors for the owner-only pages.
func (h *BlogHandler) fail(c *gin.Context, err error, userID, blogID uint, msg string) {
	switch {
	case errors.Is(err, app.ErrBlogNotFound):
		response.NotFound(c)
	case errors.Is(err, app.ErrNotOwner):
		response.AddFlash(c, response.FlashError, unauthorizedAction)
		response.RedirectBack(c, myBlogsPath)
	default:
		h.logger.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"blog_id": blogID,
		}).Error(msg)
		response.InternalError(c)
	}
}
