package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gopherblog/internal/app/apptest"
	"gopherblog/internal/form"
	"gopherblog/internal/mocks"
	"gopherblog/internal/model"
	"gopherblog/internal/pkg/hasher"
	"gopherblog/internal/pkg/jwtutil"
	"gopherblog/internal/repository"
)

const testSecret = "test-secret"

func newAuthWithMocks() (*AuthService, *mocks.UserStore, *mocks.SessionStore, *mocks.PasswordHasher, *mocks.EventPublisher) {
	users := new(mocks.UserStore)
	sessions := new(mocks.SessionStore)
	h := new(mocks.PasswordHasher)
	events := new(mocks.EventPublisher)
	logger, _ := test.NewNullLogger()
	return NewAuthService(users, sessions, h, events, testSecret, time.Hour, logger), users, sessions, h, events
}

func TestSignUpHashesPassword(t *testing.T) {
	ctx := context.Background()
	svc, users, _, h, events := newAuthWithMocks()

	users.On("GetByEmail", ctx, "alice@example.com").Return(nil, nil)
	h.On("Hash", "secret1").Return("hashed-secret", nil)
	users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "alice@example.com" &&
			u.PasswordHash == "hashed-secret" &&
			u.Role == model.RoleUser &&
			u.IsActive
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 9
	}).Return(nil)
	events.On("Publish", ctx, mock.MatchedBy(func(e model.Event) bool {
		return e.Type == model.EventUserSignedUp && e.UserID == 9
	})).Return(nil)

	user, err := svc.SignUp(ctx, form.SignupForm{Fullname: " Alice ", Email: "Alice@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, uint(9), user.ID)
	assert.Equal(t, "Alice", user.Fullname)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	users.AssertExpectations(t)
	h.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestSignUpRejectsExistingEmail(t *testing.T) {
	ctx := context.Background()
	svc, users, _, h, _ := newAuthWithMocks()

	users.On("GetByEmail", ctx, "alice@example.com").Return(&model.User{ID: 1, Email: "alice@example.com"}, nil)

	_, err := svc.SignUp(ctx, form.SignupForm{Fullname: "Alice", Email: "alice@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	h.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestSignUpTranslatesDuplicateKey(t *testing.T) {
	ctx := context.Background()
	svc, users, _, h, _ := newAuthWithMocks()

	users.On("GetByEmail", ctx, "alice@example.com").Return(nil, nil)
	h.On("Hash", "secret1").Return("hashed", nil)
	users.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateEmail)

	_, err := svc.SignUp(ctx, form.SignupForm{Fullname: "Alice", Email: "alice@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestSignUpReturnsFieldErrors(t *testing.T) {
	svc, users, _, _, _ := newAuthWithMocks()

	_, err := svc.SignUp(context.Background(), form.SignupForm{Fullname: "Al", Email: "bad", Password: "1"})

	var fe form.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Len(t, fe, 3)
	users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestSignInIssuesSessionToken(t *testing.T) {
	ctx := context.Background()
	svc, users, sessions, h, _ := newAuthWithMocks()

	user := &model.User{ID: 4, Email: "bob@example.com", PasswordHash: "hash"}
	users.On("GetByEmail", ctx, "bob@example.com").Return(user, nil)
	h.On("Compare", "hash", "secret1").Return(nil)
	sessions.On("Create", ctx, uint(4)).Return("sid-123", nil)

	result, err := svc.SignIn(ctx, form.SigninForm{Email: "BOB@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user, result.User)

	claims, err := jwtutil.ParseSessionToken(testSecret, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "sid-123", claims.ID)
	assert.Equal(t, uint(4), claims.UserID)
}

func TestSignInDropsSessionWhenTokenFails(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.UserStore)
	sessions := new(mocks.SessionStore)
	h := new(mocks.PasswordHasher)
	logger, hook := test.NewNullLogger()
	svc := NewAuthService(users, sessions, h, nil, "", time.Hour, logger)

	users.On("GetByEmail", ctx, "bob@example.com").Return(&model.User{ID: 4, PasswordHash: "hash"}, nil)
	h.On("Compare", "hash", "secret1").Return(nil)
	sessions.On("Create", ctx, uint(4)).Return("sid-7", nil)
	sessions.On("Destroy", ctx, "sid-7").Return(errors.New("redis down"))

	_, err := svc.SignIn(ctx, form.SigninForm{Email: "bob@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, jwtutil.ErrEmptySecret)
	sessions.AssertCalled(t, "Destroy", ctx, "sid-7")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, uint(4), entry.Data["user_id"])
	assert.EqualError(t, entry.Data[logrus.ErrorKey].(error), "redis down")
}

func TestSignInFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, users, sessions, h, _ := newAuthWithMocks()

	users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil)
	users.On("GetByEmail", ctx, "bob@example.com").Return(&model.User{ID: 4, PasswordHash: "hash"}, nil)
	h.On("Compare", "hash", "wrong-pass").Return(bcrypt.ErrMismatchedHashAndPassword)

	_, unknownErr := svc.SignIn(ctx, form.SigninForm{Email: "ghost@example.com", Password: "secret1"})
	_, wrongErr := svc.SignIn(ctx, form.SigninForm{Email: "bob@example.com", Password: "wrong-pass"})

	assert.ErrorIs(t, unknownErr, ErrInvalidCredential)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredential)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	users := apptest.NewUsers()
	sessions := apptest.NewSessions()
	logger, _ := test.NewNullLogger()
	svc := NewAuthService(users, sessions, hasher.Bcrypt{Cost: bcrypt.MinCost}, nil, testSecret, time.Hour, logger)

	_, err := svc.SignUp(ctx, form.SignupForm{Fullname: "Carol", Email: "carol@example.com", Password: "secret1"})
	require.NoError(t, err)
	result, err := svc.SignIn(ctx, form.SigninForm{Email: "carol@example.com", Password: "secret1"})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", user.Email)

	forged, err := jwtutil.GenerateSessionToken("other-secret", time.Hour, "sid-1", user.ID)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, forged)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	require.NoError(t, svc.SignOut(ctx, result.Token))
	assert.Equal(t, 0, sessions.Len())
	_, err = svc.Authenticate(ctx, result.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticateRejectsSessionBoundToOtherUser(t *testing.T) {
	ctx := context.Background()
	svc, _, sessions, _, _ := newAuthWithMocks()

	token, err := jwtutil.GenerateSessionToken(testSecret, time.Hour, "sid-9", 5)
	require.NoError(t, err)
	sessions.On("Lookup", ctx, "sid-9").Return(uint(6), true, nil)

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSignOutIgnoresGarbage(t *testing.T) {
	svc, _, sessions, _, _ := newAuthWithMocks()

	assert.NoError(t, svc.SignOut(context.Background(), "garbage"))
	sessions.AssertNotCalled(t, "Destroy", mock.Anything, mock.Anything)
}
