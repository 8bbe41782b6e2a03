package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"sainath-backend/internal/domain"
	"sainath-backend/internal/security"
	"sainath-backend/internal/service"
)

const testDefaultPassword = "121212"

func newAuthService(userRepo *MockUserRepo, emails *MockEmailService) service.AuthService {
	tokens := security.NewTokenManager("test-secret-that-is-at-least-32-chars", 15*time.Minute, 24*time.Hour)
	return service.NewAuthService(userRepo, tokens, emails, testDefaultPassword)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRequestToJoin_CreatesPendingMember(t *testing.T) {
	userRepo := new(MockUserRepo)
	emails := new(MockEmailService)
	svc := newAuthService(userRepo, emails)

	userRepo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, domain.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleMember && u.Status == domain.UserStatusPending && u.PasswordHash != ""
	})).Return(nil)
	userRepo.On("GetHost", mock.Anything).Return(hostUser("host-1"), nil)
	emails.On("SendJoinRequestNotification", mock.Anything, "host@example.com", "New Member", "new@example.com").Return(nil)

	user, err := svc.RequestToJoin(context.Background(), "New Member", "New@Example.com ", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, domain.UserStatusPending, user.Status)
	emails.AssertExpectations(t)
}

func TestRequestToJoin_BlankPasswordUsesDefault(t *testing.T) {
	userRepo := new(MockUserRepo)
	emails := new(MockEmailService)
	svc := newAuthService(userRepo, emails)

	userRepo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, domain.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(testDefaultPassword)) == nil
	})).Return(nil)
	userRepo.On("GetHost", mock.Anything).Return(hostUser("host-1"), nil)
	emails.On("SendJoinRequestNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.RequestToJoin(context.Background(), "New Member", "new@example.com", "")
	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestRequestToJoin_DuplicateEmailRejected(t *testing.T) {
	userRepo := new(MockUserRepo)
	emails := new(MockEmailService)
	svc := newAuthService(userRepo, emails)

	userRepo.On("GetByEmail", mock.Anything, "taken@example.com").Return(memberUser("member-1"), nil)

	_, err := svc.RequestToJoin(context.Background(), "New Member", "taken@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrValidation)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Succeeds(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := newAuthService(userRepo, new(MockEmailService))

	member := memberUser("member-1")
	member.PasswordHash = hashOf(t, "secret123")
	userRepo.On("GetByEmail", mock.Anything, "member@example.com").Return(member, nil)

	user, access, refresh, err := svc.Login(context.Background(), "member@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "member-1", user.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := newAuthService(userRepo, new(MockEmailService))

	member := memberUser("member-1")
	member.PasswordHash = hashOf(t, "secret123")
	userRepo.On("GetByEmail", mock.Anything, "member@example.com").Return(member, nil)

	_, _, _, err := svc.Login(context.Background(), "member@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLogin_PendingAccountBlocked(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := newAuthService(userRepo, new(MockEmailService))

	pending := pendingUser("member-1")
	pending.PasswordHash = hashOf(t, "secret123")
	userRepo.On("GetByEmail", mock.Anything, "member@example.com").Return(pending, nil)

	_, _, _, err := svc.Login(context.Background(), "member@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrAccountPending)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := newAuthService(userRepo, new(MockEmailService))

	member := memberUser("member-1")
	member.PasswordHash = hashOf(t, "secret123")
	userRepo.On("GetByEmail", mock.Anything, "member@example.com").Return(member, nil)
	userRepo.On("GetByID", mock.Anything, "member-1").Return(member, nil)

	_, _, refresh, err := svc.Login(context.Background(), "member@example.com", "secret123")
	require.NoError(t, err)

	access, newRefresh, err := svc.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, newRefresh)
}

func TestRefreshToken_AccessTokenRejected(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := newAuthService(userRepo, new(MockEmailService))

	member := memberUser("member-1")
	member.PasswordHash = hashOf(t, "secret123")
	userRepo.On("GetByEmail", mock.Anything, "member@example.com").Return(member, nil)

	_, access, _, err := svc.Login(context.Background(), "member@example.com", "secret123")
	require.NoError(t, err)

	_, _, err = svc.RefreshToken(context.Background(), access)
	assert.ErrorIs(t, err, security.ErrWrongTokenType)
}

func TestGetProfile_PendingAccountDenied(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := newAuthService(userRepo, new(MockEmailService))

	userRepo.On("GetByID", mock.Anything, "member-1").Return(pendingUser("member-1"), nil)

	_, err := svc.GetProfile(context.Background(), "member-1")
	assert.ErrorIs(t, err, domain.ErrAccountPending)
}

func TestChangeEmail_RequiresCurrentPassword(t *testing.T) {
	userRepo := new(MockUserRepo)
	svc := newAuthService(userRepo, new(MockEmailService))

	member := memberUser("member-1")
	member.PasswordHash = hashOf(t, "secret123")
	userRepo.On("GetByID", mock.Anything, "member-1").Return(member, nil)

	err := svc.ChangeEmail(context.Background(), "member-1", "fresh@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
