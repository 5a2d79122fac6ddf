package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Ankitkushwaha90/techforge/internal/dto"
	"github.com/Ankitkushwaha90/techforge/internal/models"
	"github.com/Ankitkushwaha90/techforge/internal/repository"
)

var (
	// ErrInvalidCredentials covers unknown users and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken indicates the requested username already exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUserNotFound indicates the account does not exist.
	ErrUserNotFound = errors.New("user not found")
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 24 * time.Hour
)

// AuthService exposes registration, sessions and profile management.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (dto.TokenPair, error)
	GetProfile(ctx context.Context, userID uint) (dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uint, req dto.ProfileUpdateRequest) (dto.UserResponse, error)
	UploadAvatar(ctx context.Context, userID uint, name string, file io.Reader) (dto.UserResponse, error)
	UploadResume(ctx context.Context, userID uint, name string, file io.Reader) (dto.UserResponse, error)
}

type authService struct {
	repo          repository.UserRepository
	uploader      FileUploader
	validator     *validator.Validate
	secret        string
	refreshSecret string
	logger        zerolog.Logger
	now           func() time.Time
}

// NewAuthService constructs the auth/profile service.
func NewAuthService(repo repository.UserRepository, uploader FileUploader, validate *validator.Validate, secret, refreshSecret string, logger zerolog.Logger) AuthService {
	return &authService{
		repo:          repo,
		uploader:      uploader,
		validator:     validate,
		secret:        secret,
		refreshSecret: refreshSecret,
		logger:        logger.With().Str("component", "auth_service").Logger(),
		now:           time.Now,
	}
}

// Register creates the account with its profile in one shot; every user
// has a profile from creation.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.UserResponse{}, err
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return dto.UserResponse{}, err
	}
	if exists {
		return dto.UserResponse{}, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Profile: models.UserProfile{
			Whatsapp:       req.Whatsapp,
			Branch:         req.Branch,
			Github:         req.Github,
			AdditionalInfo: req.AdditionalInfo,
		},
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Str("username", username).Msg("user registered")

	return dto.NewUserResponse(user), nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.TokenPair, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.TokenPair{}, err
	}

	user, err := s.repo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(req.Username)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return dto.TokenPair{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return dto.TokenPair{}, ErrInvalidCredentials
	}

	return s.issueTokens(user.ID)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (dto.TokenPair, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return dto.TokenPair{}, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return dto.TokenPair{}, ErrInvalidCredentials
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return dto.TokenPair{}, ErrInvalidCredentials
	}

	userID, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return dto.TokenPair{}, ErrInvalidCredentials
	}

	if _, err := s.repo.GetByID(ctx, uint(userID)); err != nil {
		return dto.TokenPair{}, ErrInvalidCredentials
	}

	return s.issueTokens(uint(userID))
}

func (s *authService) issueTokens(userID uint) (dto.TokenPair, error) {
	now := s.now()
	subject := strconv.FormatUint(uint64(userID), 10)

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(accessTokenTTL).Unix(),
	})
	accessToken, err := access.SignedString([]byte(s.secret))
	if err != nil {
		return dto.TokenPair{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(refreshTokenTTL).Unix(),
	})
	refreshToken, err := refresh.SignedString([]byte(s.refreshSecret))
	if err != nil {
		return dto.TokenPair{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return dto.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *authService) GetProfile(ctx context.Context, userID uint) (dto.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, ErrUserNotFound
	}
	if err != nil {
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uint, req dto.ProfileUpdateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, ErrUserNotFound
	}
	if err != nil {
		return dto.UserResponse{}, err
	}

	profile := user.Profile
	profile.Bio = req.Bio
	profile.Location = req.Location
	profile.Website = req.Website
	if req.Whatsapp != "" {
		profile.Whatsapp = req.Whatsapp
	}
	if req.Branch != "" {
		profile.Branch = req.Branch
	}
	profile.Github = req.Github
	profile.AdditionalInfo = req.AdditionalInfo

	if err := s.repo.UpdateProfile(ctx, &profile); err != nil {
		return dto.UserResponse{}, err
	}

	user.Profile = profile
	return dto.NewUserResponse(user), nil
}

func (s *authService) UploadAvatar(ctx context.Context, userID uint, name string, file io.Reader) (dto.UserResponse, error) {
	return s.uploadAsset(ctx, userID, name, file, func(profile *models.UserProfile, url string) {
		profile.AvatarURL = url
	})
}

func (s *authService) UploadResume(ctx context.Context, userID uint, name string, file io.Reader) (dto.UserResponse, error) {
	return s.uploadAsset(ctx, userID, name, file, func(profile *models.UserProfile, url string) {
		profile.ResumeURL = url
	})
}

func (s *authService) uploadAsset(ctx context.Context, userID uint, name string, file io.Reader, assign func(*models.UserProfile, string)) (dto.UserResponse, error) {
	if s.uploader == nil {
		return dto.UserResponse{}, fmt.Errorf("file uploads are not configured")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, ErrUserNotFound
	}
	if err != nil {
		return dto.UserResponse{}, err
	}

	url, err := s.uploader.Upload(ctx, name, file)
	if err != nil {
		return dto.UserResponse{}, err
	}

	profile := user.Profile
	assign(&profile, url)

	if err := s.repo.UpdateProfile(ctx, &profile); err != nil {
		return dto.UserResponse{}, err
	}

	user.Profile = profile
	return dto.NewUserResponse(user), nil
}
