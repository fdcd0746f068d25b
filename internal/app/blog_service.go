package app

import (
	"context"
	"errors"
	"html/template"

	"github.com/sirupsen/logrus"

	"gopherblog/internal/cache"
	"gopherblog/internal/form"
	"gopherblog/internal/model"
	"gopherblog/internal/pkg/markup"
	"gopherblog/internal/pkg/pagination"
)

var (
	ErrBlogNotFound = errors.New("blog not found")
	ErrNotOwner     = errors.New("blog belongs to another user")
)

type BlogService struct {
	blogs    BlogStore
	index    IndexCache
	events   EventPublisher
	pageSize int
	logger   *logrus.Logger
}

type BlogPage struct {
	Blogs []model.Blog
	Page  pagination.Page
}

// RenderedBlog is a blog with its Markdown body converted to HTML.
type RenderedBlog struct {
	Blog *model.Blog
	HTML template.HTML
}

// NewBlogService wires the blog use cases. index and events may be nil.
func NewBlogService(blogs BlogStore, index IndexCache, events EventPublisher, pageSize int, logger *logrus.Logger) *BlogService {
	if pageSize <= 0 {
		pageSize = 3
	}
	return &BlogService{
		blogs:    blogs,
		index:    index,
		events:   events,
		pageSize: pageSize,
		logger:   logger,
	}
}

// ListPublished returns one page of the public index, newest first. Cache
// failures fall through to the database.
func (s *BlogService) ListPublished(ctx context.Context, page int) (*BlogPage, error) {
	p := pagination.New(page, s.pageSize, 0)

	cacheable := false
	var gen int64
	if s.index != nil {
		var err error
		gen, err = s.index.Generation(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("read index generation failed")
		} else {
			cacheable = true
			cached, ok, err := s.index.GetPage(ctx, gen, p.Number, p.PerPage)
			if err != nil {
				s.logger.WithError(err).Warn("read index cache failed")
			}
			if ok {
				p.Total = cached.Total
				return &BlogPage{Blogs: cached.Blogs, Page: p}, nil
			}
		}
	}

	blogs, total, err := s.blogs.ListPublished(ctx, p.Offset(), p.PerPage)
	if err != nil {
		return nil, err
	}
	p.Total = total

	if cacheable {
		if err := s.index.SetPage(ctx, gen, p.Number, p.PerPage, &cache.IndexPage{Blogs: blogs, Total: total}); err != nil {
			s.logger.WithError(err).Warn("write index cache failed")
		}
	}
	return &BlogPage{Blogs: blogs, Page: p}, nil
}

// Read renders any blog by id. Status and ownership are not checked here.
func (s *BlogService) Read(ctx context.Context, id uint) (*RenderedBlog, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}
	return render(blog)
}

func (s *BlogService) ListByOwner(ctx context.Context, userID uint, page int) (*BlogPage, error) {
	p := pagination.New(page, s.pageSize, 0)
	blogs, total, err := s.blogs.ListByOwner(ctx, userID, p.Offset(), p.PerPage)
	if err != nil {
		return nil, err
	}
	p.Total = total
	return &BlogPage{Blogs: blogs, Page: p}, nil
}

func (s *BlogService) Create(ctx context.Context, userID uint, input form.BlogForm) (*model.Blog, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	input.Normalize()
	if errs := input.Validate(); errs != nil {
		return nil, errs
	}

	blog := &model.Blog{
		Title:     input.Title,
		Body:      input.Body,
		Status:    input.Status,
		IsActive:  true,
		CreatedBy: userID,
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, err
	}

	s.logFields(userID, blog).Info("blog created")
	s.changed(ctx, model.EventBlogCreated, userID, blog)
	return blog, nil
}

// GetOwned loads a blog for its owner, e.g. to pre-fill the edit form.
func (s *BlogService) GetOwned(ctx context.Context, userID, id uint) (*model.Blog, error) {
	return s.getOwned(ctx, userID, id)
}

func (s *BlogService) ViewOwned(ctx context.Context, userID, id uint) (*RenderedBlog, error) {
	blog, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return render(blog)
}

// Update overwrites title, body and status in place. Id and owner never
// change.
func (s *BlogService) Update(ctx context.Context, userID, id uint, input form.BlogForm) (*model.Blog, error) {
	blog, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	input.Normalize()
	if errs := input.Validate(); errs != nil {
		return blog, errs
	}

	if err := s.blogs.UpdateContent(ctx, blog.ID, input.Title, input.Body, input.Status); err != nil {
		return nil, err
	}
	blog.Title = input.Title
	blog.Body = input.Body
	blog.Status = input.Status

	s.logFields(userID, blog).Info("blog updated")
	s.changed(ctx, model.EventBlogUpdated, userID, blog)
	return blog, nil
}

func (s *BlogService) ToggleStatus(ctx context.Context, userID, id uint) (*model.Blog, error) {
	blog, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	next := blog.Status.Toggled()
	if err := s.blogs.UpdateStatus(ctx, blog.ID, next); err != nil {
		return nil, err
	}
	blog.Status = next

	s.logFields(userID, blog).Info("blog status toggled")
	s.changed(ctx, model.EventBlogStatusChanged, userID, blog)
	return blog, nil
}

// Delete removes the row for good.
func (s *BlogService) Delete(ctx context.Context, userID, id uint) error {
	blog, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.blogs.Delete(ctx, blog.ID); err != nil {
		return err
	}

	s.logFields(userID, blog).Info("blog deleted")
	s.changed(ctx, model.EventBlogDeleted, userID, blog)
	return nil
}

// getOwned is the single ownership check for every owner-only operation.
func (s *BlogService) getOwned(ctx context.Context, userID, id uint) (*model.Blog, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}
	if !blog.OwnedBy(userID) {
		s.logger.WithFields(logrus.Fields{
			"user_id":  userID,
			"blog_id":  id,
			"owner_id": blog.CreatedBy,
		}).Warn("blog access denied")
		return nil, ErrNotOwner
	}
	return blog, nil
}

func (s *BlogService) changed(ctx context.Context, eventType model.EventType, userID uint, blog *model.Blog) {
	if s.index != nil {
		if err := s.index.Invalidate(ctx); err != nil {
			s.logger.WithError(err).Warn("invalidate index cache failed")
		}
	}
	publish(ctx, s.events, s.logger, model.Event{
		Type:   eventType,
		UserID: userID,
		BlogID: blog.ID,
		Status: blog.Status,
	})
}

func (s *BlogService) logFields(userID uint, blog *model.Blog) *logrus.Entry {
	return s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"blog_id": blog.ID,
		"status":  blog.Status,
	})
}

func render(blog *model.Blog) (*RenderedBlog, error) {
	html, err := markup.Render(blog.Body)
	if err != nil {
		return nil, err
	}
	return &RenderedBlog{Blog: blog, HTML: html}, nil
}
