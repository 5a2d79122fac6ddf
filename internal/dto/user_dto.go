package dto

import (
	"time"

	"github.com/Ankitkushwaha90/techforge/internal/models"
)

// RegisterRequest carries the registration payload.
type RegisterRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=64"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	Whatsapp       string `json:"whatsapp" validate:"required,len=10,numeric"`
	Branch         string `json:"branch" validate:"required,oneof=cse it ece eee mech civil ai_ml cyber_security data_science other"`
	Github         string `json:"github" validate:"omitempty,url"`
	AdditionalInfo string `json:"additional_info"`
}

// LoginRequest carries the credentials payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPair holds the issued session tokens.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ProfileUpdateRequest carries mutable profile fields.
type ProfileUpdateRequest struct {
	Bio            string `json:"bio"`
	Location       string `json:"location" validate:"omitempty,max=100"`
	Website        string `json:"website" validate:"omitempty,url"`
	Whatsapp       string `json:"whatsapp" validate:"omitempty,len=10,numeric"`
	Branch         string `json:"branch" validate:"omitempty,oneof=cse it ece eee mech civil ai_ml cyber_security data_science other"`
	Github         string `json:"github" validate:"omitempty,url"`
	AdditionalInfo string `json:"additional_info"`
}

// UserResponse is a serialised account with its profile.
type UserResponse struct {
	ID        uint            `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Profile   ProfileResponse `json:"profile"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProfileResponse is a serialised user profile.
type ProfileResponse struct {
	Bio            string `json:"bio"`
	AvatarURL      string `json:"avatar_url"`
	Location       string `json:"location"`
	Website        string `json:"website"`
	Whatsapp       string `json:"whatsapp"`
	Branch         string `json:"branch"`
	Github         string `json:"github"`
	ResumeURL      string `json:"resume_url"`
	AdditionalInfo string `json:"additional_info"`
}

// NewUserResponse serialises a user with its profile.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Profile: ProfileResponse{
			Bio:            user.Profile.Bio,
			AvatarURL:      user.Profile.AvatarURL,
			Location:       user.Profile.Location,
			Website:        user.Profile.Website,
			Whatsapp:       user.Profile.Whatsapp,
			Branch:         user.Profile.Branch,
			Github:         user.Profile.Github,
			ResumeURL:      user.Profile.ResumeURL,
			AdditionalInfo: user.Profile.AdditionalInfo,
		},
		CreatedAt: user.CreatedAt,
	}
}
