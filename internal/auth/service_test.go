package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventvenue/internal/shared/config"
	"eventvenue/internal/users"
)

type stubUserRepo struct {
	byEmail map[string]*users.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*users.User)}
}

func (r *stubUserRepo) CreateUser(ctx context.Context, user *users.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.byEmail[user.Email] = user
	return nil
}

func (r *stubUserRepo) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (r *stubUserRepo) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	for _, user := range r.byEmail {
		if user.ID.String() == id {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *stubUserRepo) UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error {
	for _, user := range r.byEmail {
		if user.ID.String() == userID {
			user.Password = hashedPassword
			return nil
		}
	}
	return ErrUserNotFound
}

func (r *stubUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func newAuthService(repo Repository) Service {
	cfg := &config.Config{JWT: config.JWTConfig{
		Secret:           "test-secret",
		JWTExpiresIn:     15 * time.Minute,
		RefreshExpiresIn: time.Hour,
	}}
	return NewService(repo, cfg)
}

func TestRegisterThenLogin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	registered, err := svc.Register(context.Background(), &RegisterRequest{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@example.com",
		Password:  "sup3rsecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "USER", registered.User.Role)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)

	loggedIn, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "asha@example.com",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	req := &RegisterRequest{FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Password: "sup3rsecret"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterDowngradesAdminRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	registered, err := svc.Register(context.Background(), &RegisterRequest{
		FirstName: "Mallory",
		LastName:  "Gray",
		Email:     "mallory@example.com",
		Password:  "sup3rsecret",
		Role:      "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "USER", registered.User.Role)
}

func TestValidateTokenCarriesUserClaims(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	registered, err := svc.Register(context.Background(), &RegisterRequest{
		FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Password: "sup3rsecret",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, "access", claims.Type)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	registered, err := svc.Register(context.Background(), &RegisterRequest{
		FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Password: "sup3rsecret",
	})
	require.NoError(t, err)

	// An access token must not mint a new pair.
	_, err = svc.RefreshToken(context.Background(), registered.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	pair, err := svc.RefreshToken(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}
