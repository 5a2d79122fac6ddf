package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Ankitkushwaha90/techforge/internal/dto"
	"github.com/Ankitkushwaha90/techforge/internal/models"
)

type userRepoStub struct {
	users map[uint]models.User
	next  uint
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: map[uint]models.User{}}
}

func (r *userRepoStub) Create(ctx context.Context, user *models.User) error {
	r.next++
	user.ID = r.next
	user.Profile.UserID = r.next
	r.users[user.ID] = *user
	return nil
}

func (r *userRepoStub) GetByID(ctx context.Context, id uint) (models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *userRepoStub) GetByUsername(ctx context.Context, username string) (models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (r *userRepoStub) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r *userRepoStub) UpdateProfile(ctx context.Context, profile *models.UserProfile) error {
	user, ok := r.users[profile.UserID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Profile = *profile
	r.users[profile.UserID] = user
	return nil
}

type uploaderStub struct {
	url string
}

func (u uploaderStub) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	return u.url + "/" + name, nil
}

func validRegisterRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Username: "Asha",
		Email:    "Asha@Example.com",
		Password: "supersecret",
		Whatsapp: "9876543210",
		Branch:   "cse",
	}
}

func newAuthFixture() (AuthService, *userRepoStub) {
	repo := newUserRepoStub()
	svc := NewAuthService(repo, uploaderStub{url: "https://cdn.example"}, validator.New(), "access-secret", "refresh-secret", testLogger())
	return svc, repo
}

func TestAuthServiceRegisterNormalisesAndHashes(t *testing.T) {
	svc, repo := newAuthFixture()

	resp, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)
	require.Equal(t, "asha", resp.Username)
	require.Equal(t, "asha@example.com", resp.Email)

	stored := repo.users[resp.ID]
	require.NotEqual(t, "supersecret", stored.PasswordHash)
	require.True(t, strings.HasPrefix(stored.PasswordHash, "$2"), "password must be bcrypt-hashed")
	require.Equal(t, "cse", stored.Profile.Branch)
}

func TestAuthServiceRegisterRejectsDuplicateUsername(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegisterRequest())
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthServiceLoginAndRefresh(t *testing.T) {
	svc, _ := newAuthFixture()

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	pair, err := svc.Login(context.Background(), dto.LoginRequest{Username: "asha", Password: "supersecret"})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	refreshed, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)

	// An access token is not a valid refresh token.
	_, err = svc.Refresh(context.Background(), pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Refresh(context.Background(), "garbage")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	profile, err := svc.GetProfile(context.Background(), registered.ID)
	require.NoError(t, err)
	require.Equal(t, "asha", profile.Username)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "asha", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "whatever"})
	require.ErrorIs(t, err, ErrInvalidCredentials, "unknown users look identical to wrong passwords")
}

func TestAuthServiceUpdateProfile(t *testing.T) {
	svc, _ := newAuthFixture()

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	resp, err := svc.UpdateProfile(context.Background(), registered.ID, dto.ProfileUpdateRequest{
		Bio:      "Backend developer",
		Location: "Pune",
		Github:   "https://github.com/asha",
	})
	require.NoError(t, err)
	require.Equal(t, "Backend developer", resp.Profile.Bio)
	require.Equal(t, "Pune", resp.Profile.Location)
	require.Equal(t, "9876543210", resp.Profile.Whatsapp, "blank whatsapp keeps the registered number")

	_, err = svc.UpdateProfile(context.Background(), 999, dto.ProfileUpdateRequest{})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthServiceUploadAvatar(t *testing.T) {
	svc, repo := newAuthFixture()

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	resp, err := svc.UploadAvatar(context.Background(), registered.ID, "me.png", strings.NewReader("img"))
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example/me.png", resp.Profile.AvatarURL)
	require.Equal(t, resp.Profile.AvatarURL, repo.users[registered.ID].Profile.AvatarURL)

	noUploads := NewAuthService(repo, nil, validator.New(), "a", "b", testLogger())
	_, err = noUploads.UploadAvatar(context.Background(), registered.ID, "me.png", strings.NewReader("img"))
	require.Error(t, err)
}
