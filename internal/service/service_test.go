package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Znerf/headacheFront/internal"
	"github.com/Znerf/headacheFront/internal/auth"
	"github.com/Znerf/headacheFront/internal/storage"
)

func newTestStorage(t *testing.T) *storage.FileStorage {
	t.Helper()
	dir := t.TempDir()
	s, err := storage.NewFileStorage(
		filepath.Join(dir, "users.json"),
		filepath.Join(dir, "records.json"),
		filepath.Join(dir, "weather.json"),
		internal.NewNopLogger(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func signUpTestUser(t *testing.T, s *storage.FileStorage, tokens *auth.TokenManager) *internal.StoredUser {
	t.Helper()
	ctx := context.Background()
	result, err := SignUp(ctx, s, tokens, &SignUpRequest{
		Email:    "a@example.com",
		Password: "secret-pass",
		Name:     "Test User",
	})
	require.NoError(t, err)
	user, err := s.GetUserByID(ctx, result.User.ID)
	require.NoError(t, err)
	return user
}

func TestSignUpAndLogin(t *testing.T) {
	s := newTestStorage(t)
	tokens := auth.NewTokenManager("test-secret")
	ctx := context.Background()

	result, err := SignUp(ctx, s, tokens, &SignUpRequest{
		Email:    "a@example.com",
		Password: "secret-pass",
		Name:     "Test User",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "a@example.com", result.User.Email)

	login, err := Login(ctx, s, tokens, &LoginRequest{Email: "a@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)

	userID, err := tokens.Verify(login.AccessToken, "access")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, userID)
}

func TestLogin_WrongCredentials(t *testing.T) {
	s := newTestStorage(t)
	tokens := auth.NewTokenManager("test-secret")
	ctx := context.Background()
	signUpTestUser(t, s, tokens)

	_, err := Login(ctx, s, tokens, &LoginRequest{Email: "a@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Login(ctx, s, tokens, &LoginRequest{Email: "nobody@example.com", Password: "secret-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	s := newTestStorage(t)
	tokens := auth.NewTokenManager("test-secret")
	ctx := context.Background()
	signUpTestUser(t, s, tokens)

	_, err := SignUp(ctx, s, tokens, &SignUpRequest{
		Email:    "a@example.com",
		Password: "secret-pass",
		Name:     "Other",
	})
	assert.ErrorIs(t, err, storage.ErrEmailExists)
}

func TestLogout_ClearsRefreshToken(t *testing.T) {
	s := newTestStorage(t)
	tokens := auth.NewTokenManager("test-secret")
	ctx := context.Background()
	user := signUpTestUser(t, s, tokens)
	require.NotEmpty(t, user.RefreshToken)

	require.NoError(t, Logout(ctx, s, user))

	stored, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.RefreshToken)
}

func TestCreateRecord_OnePerDate(t *testing.T) {
	s := newTestStorage(t)
	tokens := auth.NewTokenManager("test-secret")
	ctx := context.Background()
	user := signUpTestUser(t, s, tokens)

	body := &CreateRecordRequest{Date: "2026-01-05"}
	body.HadHeadache = true
	start := "09:30"
	body.HeadacheStartTime = &start

	rec, err := CreateRecord(ctx, s, user, body)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "09:30", rec.HeadacheStartTime)

	_, err = CreateRecord(ctx, s, user, body)
	assert.ErrorIs(t, err, ErrRecordExists)
}

func TestCreateRecord_DropsTimesWithoutHeadache(t *testing.T) {
	s := newTestStorage(t)
	tokens := auth.NewTokenManager("test-secret")
	ctx := context.Background()
	user := signUpTestUser(t, s, tokens)

	start := "09:30"
	body := &CreateRecordRequest{Date: "2026-01-05"}
	body.HadHeadache = false
	body.HeadacheStartTime = &start

	rec, err := CreateRecord(ctx, s, user, body)
	require.NoError(t, err)
	assert.Empty(t, rec.HeadacheStartTime)
	assert.Empty(t, rec.HeadacheEndTime)
}

func TestUpdateRecord_OwnershipAndFields(t *testing.T) {
	s := newTestStorage(t)
	tokens := auth.NewTokenManager("test-secret")
	ctx := context.Background()
	user := signUpTestUser(t, s, tokens)

	body := &CreateRecordRequest{Date: "2026-01-05"}
	rec, err := CreateRecord(ctx, s, user, body)
	require.NoError(t, err)

	notes := "behind left eye"
	update := &RecordFieldsRequest{HadHeadache: true, Notes: &notes}
	updated, err := UpdateRecord(ctx, s, user, rec.ID, update)
	require.NoError(t, err)
	assert.True(t, updated.HadHeadache)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, rec.ID, updated.ID)

	// Another user's record reads as not found.
	other, err := SignUp(ctx, s, tokens, &SignUpRequest{
		Email:    "b@example.com",
		Password: "secret-pass",
		Name:     "Other",
	})
	require.NoError(t, err)
	otherUser, err := s.GetUserByID(ctx, other.User.ID)
	require.NoError(t, err)

	_, err = UpdateRecord(ctx, s, otherUser, rec.ID, update)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, DeleteRecord(ctx, s, otherUser, rec.ID), storage.ErrNotFound)
}

func TestListRecords_TotalPages(t *testing.T) {
	s := newTestStorage(t)
	tokens := auth.NewTokenManager("test-secret")
	ctx := context.Background()
	user := signUpTestUser(t, s, tokens)

	for _, d := range []string{"2026-01-01", "2026-01-02", "2026-01-03"} {
		_, err := CreateRecord(ctx, s, user, &CreateRecordRequest{Date: d})
		require.NoError(t, err)
	}

	page, err := ListRecords(ctx, s, user, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	require.Len(t, page.Records, 2)
	assert.Equal(t, "2026-01-03", page.Records[0].Date)
}

func TestUpdateProfile_MergesLocation(t *testing.T) {
	s := newTestStorage(t)
	tokens := auth.NewTokenManager("test-secret")
	ctx := context.Background()
	user := signUpTestUser(t, s, tokens)

	city := "Kathmandu"
	lat, lon := 27.7172, 85.324
	profile, err := UpdateProfile(ctx, s, user, &ProfileUpdateRequest{
		Name: "Sam", City: &city, Latitude: &lat, Longitude: &lon,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sam", profile.Name)
	require.NotNil(t, profile.Location)
	assert.Equal(t, "Kathmandu", *profile.Location.City)

	// A later update without coordinates keeps them.
	country := "Nepal"
	stored, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	profile, err = UpdateProfile(ctx, s, stored, &ProfileUpdateRequest{Name: "Sam", Country: &country})
	require.NoError(t, err)
	require.NotNil(t, profile.Location.Latitude)
	assert.Equal(t, lat, *profile.Location.Latitude)
	assert.Equal(t, "Nepal", *profile.Location.Country)
}

type fakeForecast struct {
	data  *internal.WeatherData
	err   error
	calls int
}

func (f *fakeForecast) Forecast(ctx context.Context, lat, lon float64) (*internal.WeatherData, error) {
	f.calls++
	return f.data, f.err
}

func TestLatestWeather_NoCoordinates(t *testing.T) {
	s := newTestStorage(t)
	tokens := auth.NewTokenManager("test-secret")
	user := signUpTestUser(t, s, tokens)
	provider := &fakeForecast{}

	snap, err := LatestWeather(context.Background(), s, provider, internal.NewNopLogger(), user)
	require.NoError(t, err)
	assert.Equal(t, MsgNoWeatherData, snap.Message)
	assert.Nil(t, snap.Weather)
	assert.Zero(t, provider.calls)
}

func TestLatestWeather_FetchesAndStores(t *testing.T) {
	s := newTestStorage(t)
	tokens := auth.NewTokenManager("test-secret")
	ctx := context.Background()
	user := signUpTestUser(t, s, tokens)
	user.Location = &internal.Location{
		Latitude:  internal.FloatPtr(27.7172),
		Longitude: internal.FloatPtr(85.324),
	}

	provider := &fakeForecast{data: &internal.WeatherData{
		Current: &internal.CurrentWeather{Temperature2M: 21.5},
	}}

	snap, err := LatestWeather(ctx, s, provider, internal.NewNopLogger(), user)
	require.NoError(t, err)
	assert.Empty(t, snap.Message)
	assert.Equal(t, "open-meteo", snap.Provider)
	require.NotNil(t, snap.Weather.Current)
	assert.Equal(t, 21.5, snap.Weather.Current.Temperature2M)

	stored, err := s.GetLatest(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "open-meteo", stored.Provider)
}

func TestLatestWeather_FallsBackToCache(t *testing.T) {
	s := newTestStorage(t)
	tokens := auth.NewTokenManager("test-secret")
	ctx := context.Background()
	user := signUpTestUser(t, s, tokens)
	user.Location = &internal.Location{
		Latitude:  internal.FloatPtr(27.7172),
		Longitude: internal.FloatPtr(85.324),
	}

	good := &fakeForecast{data: &internal.WeatherData{Current: &internal.CurrentWeather{Temperature2M: 18}}}
	_, err := LatestWeather(ctx, s, good, internal.NewNopLogger(), user)
	require.NoError(t, err)

	down := &fakeForecast{err: errors.New("upstream down")}
	snap, err := LatestWeather(ctx, s, down, internal.NewNopLogger(), user)
	require.NoError(t, err)
	require.NotNil(t, snap.Weather)
	assert.Equal(t, float64(18), snap.Weather.Current.Temperature2M)
}
