package form

import (
	"strings"

	"gopherblog/internal/model"
)

type SignupForm struct {
	Fullname string `form:"fullname" validate:"notblank,min=3,max=120"`
	Email    string `form:"email_id" validate:"notblank,email"`
	Password string `form:"password" validate:"notblank,min=6"`
}

// Normalize trims text inputs and lower-cases the email. Passwords are kept
// byte for byte.
func (f *SignupForm) Normalize() {
	f.Fullname = strings.TrimSpace(f.Fullname)
	f.Email = NormalizeEmail(f.Email)
}

func (f *SignupForm) Validate() FieldErrors {
	return check(f)
}

type SigninForm struct {
	Email    string `form:"email_id" validate:"notblank,email"`
	Password string `form:"password" validate:"notblank"`
}

func (f *SigninForm) Normalize() {
	f.Email = NormalizeEmail(f.Email)
}

func (f *SigninForm) Validate() FieldErrors {
	return check(f)
}

type BlogForm struct {
	Title  string           `form:"title" validate:"notblank,max=300"`
	Body   string           `form:"body" validate:"notblank"`
	Status model.BlogStatus `form:"status" validate:"blogstatus"`
}

func NewBlogForm() BlogForm {
	return BlogForm{Status: model.StatusDraft}
}

// BlogFormFrom pre-fills the edit form from a stored blog.
func BlogFormFrom(blog *model.Blog) BlogForm {
	return BlogForm{Title: blog.Title, Body: blog.Body, Status: blog.Status}
}

func (f *BlogForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Status = model.BlogStatus(strings.TrimSpace(string(f.Status)))
	if f.Status == "" {
		f.Status = model.StatusDraft
	}
}

func (f *BlogForm) Validate() FieldErrors {
	return check(f)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
