package form

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopherblog/internal/model"
)

func TestSignupFormValidate(t *testing.T) {
	tests := []struct {
		name  string
		form  SignupForm
		field string
		want  string
	}{
		{
			name:  "missing fullname",
			form:  SignupForm{Fullname: "   ", Email: "a@b.com", Password: "secret1"},
			field: "fullname",
			want:  "This field is required.",
		},
		{
			name:  "short fullname",
			form:  SignupForm{Fullname: "Al", Email: "a@b.com", Password: "secret1"},
			field: "fullname",
			want:  "Field must be between 3 and 120 characters long.",
		},
		{
			name:  "long fullname",
			form:  SignupForm{Fullname: strings.Repeat("x", 121), Email: "a@b.com", Password: "secret1"},
			field: "fullname",
			want:  "Field must be between 3 and 120 characters long.",
		},
		{
			name:  "bad email",
			form:  SignupForm{Fullname: "Alice", Email: "not-an-email", Password: "secret1"},
			field: "email_id",
			want:  "Invalid email address.",
		},
		{
			name:  "short password",
			form:  SignupForm{Fullname: "Alice", Email: "a@b.com", Password: "12345"},
			field: "password",
			want:  "Field must be at least 6 characters long.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.form
			f.Normalize()
			errs := f.Validate()
			require.NotNil(t, errs)
			assert.Equal(t, []string{tt.want}, errs[tt.field])
		})
	}
}

func TestSignupFormCountsRunes(t *testing.T) {
	f := SignupForm{Fullname: "Zoë", Email: "zoe@example.com", Password: "secret1"}
	assert.Nil(t, f.Validate())
}

func TestSignupFormNormalize(t *testing.T) {
	f := SignupForm{Fullname: "  Alice Doe ", Email: "  Alice@Example.COM ", Password: " pass word "}
	f.Normalize()

	assert.Equal(t, "Alice Doe", f.Fullname)
	assert.Equal(t, "alice@example.com", f.Email)
	assert.Equal(t, " pass word ", f.Password)
	assert.Nil(t, f.Validate())
}

func TestSigninFormValidate(t *testing.T) {
	f := SigninForm{}
	errs := f.Validate()
	assert.Equal(t, []string{"This field is required."}, errs["email_id"])
	assert.Equal(t, []string{"This field is required."}, errs["password"])

	ok := SigninForm{Email: "a@b.com", Password: "x"}
	assert.Nil(t, ok.Validate())
}

func TestBlogFormValidate(t *testing.T) {
	f := BlogForm{Title: strings.Repeat("t", 301), Body: "", Status: "archived"}
	f.Normalize()
	errs := f.Validate()

	assert.Equal(t, []string{"Field cannot be longer than 300 characters."}, errs["title"])
	assert.Equal(t, []string{"This field is required."}, errs["body"])
	assert.Equal(t, []string{"Not a valid choice."}, errs["status"])
}

func TestBlogFormDefaultsStatus(t *testing.T) {
	f := BlogForm{Title: " Hello ", Body: "world"}
	f.Normalize()

	assert.Equal(t, "Hello", f.Title)
	assert.Equal(t, model.StatusDraft, f.Status)
	assert.Nil(t, f.Validate())
	assert.Equal(t, model.StatusDraft, NewBlogForm().Status)
}

func TestBlogFormFrom(t *testing.T) {
	blog := &model.Blog{Title: "T", Body: "B", Status: model.StatusPublished}
	assert.Equal(t, BlogForm{Title: "T", Body: "B", Status: model.StatusPublished}, BlogFormFrom(blog))
}

func TestFieldErrorsIsError(t *testing.T) {
	var err error = FieldErrors{"title": {"This field is required."}, "body": {"This field is required."}}

	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "invalid form: body: This field is required.; title: This field is required.", err.Error())
}
