package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gopherblog/internal/app"
	"gopherblog/internal/form"
	"gopherblog/internal/transport/http/middleware"
	"gopherblog/internal/transport/http/response"
)

type AuthHandler struct {
	authService   *app.AuthService
	sessionMaxAge int
	secureCookies bool
	logger        *logrus.Logger
}

func NewAuthHandler(authService *app.AuthService, sessionMaxAge int, secureCookies bool, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		sessionMaxAge: sessionMaxAge,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

func (h *AuthHandler) SignupPage(c *gin.Context) {
	h.renderSignup(c, http.StatusOK, form.SignupForm{}, nil)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var input form.SignupForm
	if err := c.ShouldBind(&input); err != nil {
		response.ErrorPage(c, http.StatusBadRequest, "The submitted form could not be read.")
		return
	}

	_, err := h.authService.SignUp(c.Request.Context(), input)
	if err != nil {
		var fieldErrs form.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			input.Normalize()
			h.renderSignup(c, http.StatusUnprocessableEntity, input, fieldErrs)
		case errors.Is(err, app.ErrEmailExists):
			response.AddFlash(c, response.FlashError, "Email already registered!")
			response.Redirect(c, "/signup")
		default:
			h.logger.WithError(err).Error("sign up failed")
			response.InternalError(c)
		}
		return
	}

	response.AddFlash(c, response.FlashSuccess, "Account created successfully! Please sign in.")
	response.Redirect(c, "/signin")
}

func (h *AuthHandler) SigninPage(c *gin.Context) {
	h.renderSignin(c, http.StatusOK, form.SigninForm{}, nil)
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var input form.SigninForm
	if err := c.ShouldBind(&input); err != nil {
		response.ErrorPage(c, http.StatusBadRequest, "The submitted form could not be read.")
		return
	}

	result, err := h.authService.SignIn(c.Request.Context(), input)
	if err != nil {
		var fieldErrs form.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			input.Normalize()
			input.Password = ""
			h.renderSignin(c, http.StatusUnprocessableEntity, input, fieldErrs)
		case errors.Is(err, app.ErrInvalidCredential):
			response.AddFlash(c, response.FlashError, "Invalid email or password!")
			response.Redirect(c, signinURL(c.Query("next")))
		default:
			h.logger.WithError(err).Error("sign in failed")
			response.InternalError(c)
		}
		return
	}

	middleware.SetSessionCookie(c, result.Token, h.sessionMaxAge, h.secureCookies)
	response.AddFlash(c, response.FlashSuccess, fmt.Sprintf("Welcome back, %s!", result.User.Fullname))
	response.Redirect(c, response.LocalPath(c.Query("next"), "/"))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil {
		if err := h.authService.SignOut(c.Request.Context(), token); err != nil {
			h.logger.WithError(err).WithField("user_id", response.CurrentUserID(c)).Warn("destroy session failed")
		}
	}
	middleware.ClearSessionCookie(c, h.secureCookies)
	response.AddFlash(c, response.FlashSuccess, "You have been logged out.")
	response.Redirect(c, "/signin")
}

func (h *AuthHandler) renderSignup(c *gin.Context, status int, input form.SignupForm, errs form.FieldErrors) {
	input.Password = ""
	response.HTML(c, status, "signup.html", gin.H{
		"Title":  "Sign Up",
		"Form":   input,
		"Errors": errs,
	})
}

func (h *AuthHandler) renderSignin(c *gin.Context, status int, input form.SigninForm, errs form.FieldErrors) {
	response.HTML(c, status, "signin.html", gin.H{
		"Title":  "Sign In",
		"Form":   input,
		"Errors": errs,
		"Next":   response.LocalPath(c.Query("next"), ""),
	})
}

// signinURL keeps a safe next parameter across a failed sign-in.
func signinURL(next string) string {
	if safe := response.LocalPath(next, ""); safe != "" {
		return "/signin?next=" + url.QueryEscape(safe)
	}
	return "/signin"
}
