package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Znerf/headacheFront/internal"
	"github.com/Znerf/headacheFront/internal/auth"
	"github.com/Znerf/headacheFront/internal/storage"
)

var validate = validator.New()

var ErrInvalidCredentials = errors.New("service: invalid email or password")

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func ValidateSignUpRequest(body *SignUpRequest) error {
	return validate.Struct(body)
}

func ValidateLoginRequest(body *LoginRequest) error {
	return validate.Struct(body)
}

// AuthResult is what a successful signup or login hands back to the handler.
type AuthResult struct {
	User         internal.User
	AccessToken  string
	RefreshToken string
}

func issueTokens(ctx context.Context, users storage.UserRepository, tokens *auth.TokenManager, user *internal.StoredUser) (*AuthResult, error) {
	access, err := tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	refresh, err := tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	user.RefreshToken = refresh
	user.UpdatedAt = time.Now()
	if err := users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return &AuthResult{User: user.User(), AccessToken: access, RefreshToken: refresh}, nil
}

func SignUp(ctx context.Context, users storage.UserRepository, tokens *auth.TokenManager, body *SignUpRequest) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &internal.StoredUser{
		ID:           uuid.NewString(),
		Email:        body.Email,
		Name:         body.Name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return issueTokens(ctx, users, tokens, user)
}

func Login(ctx context.Context, users storage.UserRepository, tokens *auth.TokenManager, body *LoginRequest) (*AuthResult, error) {
	user, err := users.GetUserByEmail(ctx, body.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return issueTokens(ctx, users, tokens, user)
}

// Logout invalidates the stored refresh token. The access token simply
// expires; clients drop both immediately regardless.
func Logout(ctx context.Context, users storage.UserRepository, user *internal.StoredUser) error {
	user.RefreshToken = ""
	user.UpdatedAt = time.Now()
	return users.UpdateUser(ctx, user)
}
