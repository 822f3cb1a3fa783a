package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Znerf/headacheFront/internal"
	"github.com/Znerf/headacheFront/internal/auth"
	"github.com/Znerf/headacheFront/internal/service"
	"github.com/Znerf/headacheFront/internal/storage"
)

type authResponse struct {
	User         internal.User `json:"user"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
}

func PostSignUp(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.SignUpRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateSignUpRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Email, password (8+ characters) and name are required")
			return
		}

		result, err := service.SignUp(c.Request.Context(), app.UserRepo(), app.Tokens(), &body)
		if err != nil {
			if errors.Is(err, storage.ErrEmailExists) {
				HandleError(c, app.Logger(), err, 409, "An account with this email already exists")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to create account")
			return
		}

		app.Metrics().UserRegistered()
		c.JSON(http.StatusCreated, authResponse{
			User:         result.User,
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
		})
	}
}

func PostLogin(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.LoginRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateLoginRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Email and password are required")
			return
		}

		result, err := service.Login(c.Request.Context(), app.UserRepo(), app.Tokens(), &body)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				HandleError(c, app.Logger(), err, 401, "Invalid email or password")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to log in")
			return
		}

		c.JSON(http.StatusOK, authResponse{
			User:         result.User,
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
		})
	}
}

func PostLogout(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		if err := service.Logout(c.Request.Context(), app.UserRepo(), user); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to log out")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// GetMe returns the authenticated user's profile: the name plus whatever
// location fields have been set.
func GetMe(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		c.JSON(http.StatusOK, user.Profile())
	}
}

func PutProfile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		var body service.ProfileUpdateRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateProfileUpdateRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Name is required and coordinates must be valid")
			return
		}

		profile, err := service.UpdateProfile(c.Request.Context(), app.UserRepo(), user, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to update profile")
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}
