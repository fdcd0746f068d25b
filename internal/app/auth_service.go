package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"gopherblog/internal/form"
	"gopherblog/internal/model"
	"gopherblog/internal/pkg/jwtutil"
	"gopherblog/internal/repository"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmailExists       = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrUnauthenticated   = errors.New("no valid session")
)

type AuthService struct {
	users      UserStore
	sessions   SessionStore
	hasher     PasswordHasher
	events     EventPublisher
	secret     string
	sessionTTL time.Duration
	logger     *logrus.Logger
}

type SignInResult struct {
	Token string
	User  *model.User
}

// NewAuthService wires the auth use cases. events may be nil.
func NewAuthService(
	users UserStore,
	sessions SessionStore,
	hasher PasswordHasher,
	events EventPublisher,
	secret string,
	sessionTTL time.Duration,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		hasher:     hasher,
		events:     events,
		secret:     secret,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// SignUp registers a new account. It does not sign the user in.
func (s *AuthService) SignUp(ctx context.Context, input form.SignupForm) (*model.User, error) {
	input.Normalize()
	if errs := input.Validate(); errs != nil {
		return nil, errs
	}

	existing, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Fullname:     input.Fullname,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	s.logger.WithField("user_id", user.ID).Info("user signed up")
	publish(ctx, s.events, s.logger, model.Event{Type: model.EventUserSignedUp, UserID: user.ID})
	return user, nil
}

// SignIn checks the credentials and opens a server-side session. Unknown
// email and wrong password fail identically.
func (s *AuthService) SignIn(ctx context.Context, input form.SigninForm) (*SignInResult, error) {
	input.Normalize()
	if errs := input.Validate(); errs != nil {
		return nil, errs
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}
	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		return nil, ErrInvalidCredential
	}

	sid, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	token, err := jwtutil.GenerateSessionToken(s.secret, s.sessionTTL, sid, user.ID)
	if err != nil {
		if destroyErr := s.sessions.Destroy(ctx, sid); destroyErr != nil {
			s.logger.WithError(destroyErr).WithField("user_id", user.ID).Warn("drop orphaned session failed")
		}
		return nil, err
	}

	s.logger.WithField("user_id", user.ID).Info("user signed in")
	return &SignInResult{Token: token, User: user}, nil
}

// SignOut drops the session behind token. Unparseable tokens are ignored.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims, err := jwtutil.ParseSessionToken(s.secret, token)
	if err != nil {
		return nil
	}
	return s.sessions.Destroy(ctx, claims.ID)
}

// Authenticate resolves a session cookie to its user. Every token or session
// problem is reported as ErrUnauthenticated; other errors are infrastructure
// failures.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := jwtutil.ParseSessionToken(s.secret, token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	userID, ok, err := s.sessions.Lookup(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !ok || userID != claims.UserID {
		return nil, ErrUnauthenticated
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

func publish(ctx context.Context, events EventPublisher, logger *logrus.Logger, event model.Event) {
	if events == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if err := events.Publish(ctx, event); err != nil {
		logger.WithError(err).WithField("event", event.Type).Warn("publish event failed")
	}
}
