package storage

import (
	"context"
	"errors"

	"github.com/Znerf/headacheFront/internal"
)

// Sentinel errors shared by every backend.
var (
	ErrNotFound    = errors.New("storage: not found")
	ErrEmailExists = errors.New("storage: email already registered")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *internal.StoredUser) error
	GetUserByID(ctx context.Context, id string) (*internal.StoredUser, error)
	GetUserByEmail(ctx context.Context, email string) (*internal.StoredUser, error)
	UpdateUser(ctx context.Context, user *internal.StoredUser) error
}

type RecordRepository interface {
	SaveRecord(ctx context.Context, rec *internal.OwnedRecord) error
	GetRecord(ctx context.Context, id string) (*internal.OwnedRecord, error)
	// GetRecordByDate returns ErrNotFound when the user has no record for
	// the YYYY-MM-DD date.
	GetRecordByDate(ctx context.Context, userID, date string) (*internal.OwnedRecord, error)
	// ListRecords returns one page of the user's records, newest date
	// first, plus the total count.
	ListRecords(ctx context.Context, userID string, limit, page int) ([]internal.HeadacheRecord, int, error)
	DeleteRecord(ctx context.Context, id string) error
}

type WeatherRepository interface {
	SaveSnapshot(ctx context.Context, userID string, snap *internal.WeatherSnapshot) error
	// GetLatest returns (nil, nil) when no snapshot has been stored yet;
	// that is a normal steady state, not an error.
	GetLatest(ctx context.Context, userID string) (*internal.WeatherSnapshot, error)
}
