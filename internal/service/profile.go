package service

import (
	"context"
	"time"

	"github.com/Znerf/headacheFront/internal"
	"github.com/Znerf/headacheFront/internal/storage"
)

// ProfileUpdateRequest carries only the fields the client chose to send.
// Absent optional fields keep their stored values.
type ProfileUpdateRequest struct {
	Name      string   `json:"name" validate:"required"`
	City      *string  `json:"city,omitempty"`
	State     *string  `json:"state,omitempty"`
	Country   *string  `json:"country,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

func ValidateProfileUpdateRequest(body *ProfileUpdateRequest) error {
	return validate.Struct(body)
}

func UpdateProfile(ctx context.Context, users storage.UserRepository, user *internal.StoredUser, body *ProfileUpdateRequest) (*internal.Profile, error) {
	user.Name = body.Name

	if body.City != nil || body.State != nil || body.Country != nil || body.Latitude != nil || body.Longitude != nil {
		if user.Location == nil {
			user.Location = &internal.Location{}
		}
		if body.City != nil {
			user.Location.City = body.City
		}
		if body.State != nil {
			user.Location.State = body.State
		}
		if body.Country != nil {
			user.Location.Country = body.Country
		}
		if body.Latitude != nil {
			user.Location.Latitude = body.Latitude
		}
		if body.Longitude != nil {
			user.Location.Longitude = body.Longitude
		}
	}

	user.UpdatedAt = time.Now()
	if err := users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user.Profile(), nil
}
