package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Znerf/headacheFront/internal"
	"github.com/Znerf/headacheFront/internal/auth"
	"github.com/Znerf/headacheFront/internal/config"
	"github.com/Znerf/headacheFront/internal/metrics"
	"github.com/Znerf/headacheFront/internal/server"
	"github.com/Znerf/headacheFront/internal/service"
	"github.com/Znerf/headacheFront/internal/storage"
)

type fakeForecast struct {
	data *internal.WeatherData
	err  error
}

func (f *fakeForecast) Forecast(ctx context.Context, lat, lon float64) (*internal.WeatherData, error) {
	return f.data, f.err
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeForecast) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	repos, err := storage.NewRepositories(&config.Config{
		DBType:      "file",
		FileUsers:   filepath.Join(dir, "users.json"),
		FileRecords: filepath.Join(dir, "records.json"),
		FileWeather: filepath.Join(dir, "weather.json"),
	}, internal.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	forecast := &fakeForecast{}
	app := server.NewServer(
		internal.NewNopLogger(),
		repos,
		auth.NewTokenManager("test-secret"),
		forecast,
		metrics.New(),
	)
	return server.NewRouter(app), forecast
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}

func signUp(t *testing.T, r *gin.Engine, email string) (token string) {
	t.Helper()
	w := doJSON(t, r, "POST", "/auth/signup", "", service.SignUpRequest{
		Email:    email,
		Password: "secret-pass",
		Name:     "Test User",
	})
	require.Equal(t, 201, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestSignupLoginAndMe(t *testing.T) {
	r, _ := newTestRouter(t)
	signUp(t, r, "a@example.com")

	w := doJSON(t, r, "POST", "/auth/login", "", service.LoginRequest{
		Email:    "a@example.com",
		Password: "secret-pass",
	})
	require.Equal(t, 200, w.Code)
	var login struct {
		User        internal.User `json:"user"`
		AccessToken string        `json:"accessToken"`
	}
	decode(t, w, &login)
	assert.Equal(t, "a@example.com", login.User.Email)

	w = doJSON(t, r, "GET", "/auth/me", login.AccessToken, nil)
	require.Equal(t, 200, w.Code)
	var profile internal.Profile
	decode(t, w, &profile)
	assert.Equal(t, "Test User", profile.Name)
	assert.Nil(t, profile.Location)
}

func TestLogin_BadPassword(t *testing.T) {
	r, _ := newTestRouter(t)
	signUp(t, r, "a@example.com")

	w := doJSON(t, r, "POST", "/auth/login", "", service.LoginRequest{
		Email:    "a@example.com",
		Password: "wrong-pass",
	})
	assert.Equal(t, 401, w.Code)

	var body internal.AppError
	decode(t, w, &body)
	assert.Equal(t, "Invalid email or password", body.Message)
	assert.Equal(t, 401, body.Code)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	r, _ := newTestRouter(t)
	signUp(t, r, "a@example.com")

	w := doJSON(t, r, "POST", "/auth/signup", "", service.SignUpRequest{
		Email:    "a@example.com",
		Password: "secret-pass",
		Name:     "Again",
	})
	assert.Equal(t, 409, w.Code)
}

func TestProtectedRoutes_RejectMissingOrBadToken(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, token := range []string{"", "garbage"} {
		w := doJSON(t, r, "GET", "/auth/me", token, nil)
		assert.Equal(t, 401, w.Code)
		w = doJSON(t, r, "GET", "/headache", token, nil)
		assert.Equal(t, 401, w.Code)
	}
}

func TestProfileUpdate_PartialFieldsMerge(t *testing.T) {
	r, _ := newTestRouter(t)
	token := signUp(t, r, "a@example.com")

	w := doJSON(t, r, "PUT", "/auth/profile", token, map[string]interface{}{
		"name": "Sam", "city": "Kathmandu", "latitude": 27.7172, "longitude": 85.324,
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	// Omitted fields survive the next update.
	w = doJSON(t, r, "PUT", "/auth/profile", token, map[string]interface{}{
		"name": "Sam", "country": "Nepal",
	})
	require.Equal(t, 200, w.Code)

	var profile internal.Profile
	decode(t, w, &profile)
	require.NotNil(t, profile.Location)
	assert.Equal(t, "Kathmandu", *profile.Location.City)
	assert.Equal(t, "Nepal", *profile.Location.Country)
	assert.Equal(t, 27.7172, *profile.Location.Latitude)
}

func TestProfileUpdate_RequiresName(t *testing.T) {
	r, _ := newTestRouter(t)
	token := signUp(t, r, "a@example.com")

	w := doJSON(t, r, "PUT", "/auth/profile", token, map[string]interface{}{"city": "Kathmandu"})
	assert.Equal(t, 400, w.Code)
}

func TestRecordLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)
	token := signUp(t, r, "a@example.com")

	// Create without headache: times sent anyway are dropped.
	w := doJSON(t, r, "POST", "/headache", token, map[string]interface{}{
		"date":                 "2026-01-05",
		"hadHeadache":          false,
		"headacheStartTime":    "09:30",
		"wentOutsideYesterday": true,
		"drankWaterYesterday":  false,
	})
	require.Equal(t, 201, w.Code, w.Body.String())
	var rec internal.HeadacheRecord
	decode(t, w, &rec)
	require.NotEmpty(t, rec.ID)
	assert.Empty(t, rec.HeadacheStartTime)
	assert.True(t, rec.WentOutsideYesterday)

	// Second create for the same date conflicts.
	w = doJSON(t, r, "POST", "/headache", token, map[string]interface{}{
		"date": "2026-01-05", "hadHeadache": true,
	})
	assert.Equal(t, 409, w.Code)

	// Fetch by date.
	w = doJSON(t, r, "GET", "/headache/by-date?date=2026-01-05", token, nil)
	require.Equal(t, 200, w.Code)
	decode(t, w, &rec)
	assert.Equal(t, "2026-01-05", rec.Date)

	w = doJSON(t, r, "GET", "/headache/by-date?date=2026-01-06", token, nil)
	assert.Equal(t, 404, w.Code)
	w = doJSON(t, r, "GET", "/headache/by-date?date=bogus", token, nil)
	assert.Equal(t, 400, w.Code)

	// Update turns it into a headache day with times.
	w = doJSON(t, r, "PUT", "/headache/"+rec.ID, token, map[string]interface{}{
		"hadHeadache":       true,
		"headacheStartTime": "09:30",
		"headacheEndTime":   "11:00",
		"notes":             "behind left eye",
	})
	require.Equal(t, 200, w.Code, w.Body.String())
	decode(t, w, &rec)
	assert.Equal(t, "09:30", rec.HeadacheStartTime)
	assert.Equal(t, "behind left eye", rec.Notes)

	// Delete.
	w = doJSON(t, r, "DELETE", "/headache/"+rec.ID, token, nil)
	assert.Equal(t, 204, w.Code)
	w = doJSON(t, r, "GET", "/headache/by-date?date=2026-01-05", token, nil)
	assert.Equal(t, 404, w.Code)
}

func TestRecordList_PaginationShape(t *testing.T) {
	r, _ := newTestRouter(t)
	token := signUp(t, r, "a@example.com")

	for _, d := range []string{"2026-01-01", "2026-01-02", "2026-01-03"} {
		w := doJSON(t, r, "POST", "/headache", token, map[string]interface{}{"date": d})
		require.Equal(t, 201, w.Code)
	}

	w := doJSON(t, r, "GET", "/headache?limit=2&page=1", token, nil)
	require.Equal(t, 200, w.Code)

	var page internal.RecordPage
	decode(t, w, &page)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	require.Len(t, page.Records, 2)
	assert.Equal(t, "2026-01-03", page.Records[0].Date)

	// The wire key for the list is "data".
	var raw map[string]json.RawMessage
	decode(t, w, &raw)
	assert.Contains(t, raw, "data")
}

func TestRecords_IsolatedPerUser(t *testing.T) {
	r, _ := newTestRouter(t)
	tokenA := signUp(t, r, "a@example.com")
	tokenB := signUp(t, r, "b@example.com")

	w := doJSON(t, r, "POST", "/headache", tokenA, map[string]interface{}{"date": "2026-01-05"})
	require.Equal(t, 201, w.Code)
	var rec internal.HeadacheRecord
	decode(t, w, &rec)

	// B cannot see, update or delete A's record.
	w = doJSON(t, r, "GET", "/headache/by-date?date=2026-01-05", tokenB, nil)
	assert.Equal(t, 404, w.Code)
	w = doJSON(t, r, "PUT", "/headache/"+rec.ID, tokenB, map[string]interface{}{"hadHeadache": true})
	assert.Equal(t, 404, w.Code)
	w = doJSON(t, r, "DELETE", "/headache/"+rec.ID, tokenB, nil)
	assert.Equal(t, 404, w.Code)
}

func TestWeatherLatest_MessageWithoutLocation(t *testing.T) {
	r, _ := newTestRouter(t)
	token := signUp(t, r, "a@example.com")

	w := doJSON(t, r, "GET", "/weather/latest", token, nil)
	require.Equal(t, 200, w.Code)

	var snap internal.WeatherSnapshot
	decode(t, w, &snap)
	assert.Equal(t, service.MsgNoWeatherData, snap.Message)
	assert.Nil(t, snap.Weather)
}

func TestWeatherLatest_WithLocation(t *testing.T) {
	r, forecast := newTestRouter(t)
	token := signUp(t, r, "a@example.com")
	forecast.data = &internal.WeatherData{
		Current: &internal.CurrentWeather{Temperature2M: 21.5},
		Hourly: &internal.HourlyWeather{
			Time:          []string{"2026-01-05T00:00"},
			Temperature2M: []float64{21.5},
		},
	}

	w := doJSON(t, r, "PUT", "/auth/profile", token, map[string]interface{}{
		"name": "Test User", "latitude": 27.7172, "longitude": 85.324,
	})
	require.Equal(t, 200, w.Code)

	w = doJSON(t, r, "GET", "/weather/latest", token, nil)
	require.Equal(t, 200, w.Code)

	var snap internal.WeatherSnapshot
	decode(t, w, &snap)
	assert.Empty(t, snap.Message)
	assert.Equal(t, "open-meteo", snap.Provider)
	require.NotNil(t, snap.Weather)
	assert.Equal(t, 21.5, snap.Weather.Current.Temperature2M)
}

func TestLogout_RequiresAuthAndSucceeds(t *testing.T) {
	r, _ := newTestRouter(t)
	token := signUp(t, r, "a@example.com")

	w := doJSON(t, r, "POST", "/auth/logout", "", nil)
	assert.Equal(t, 401, w.Code)

	w = doJSON(t, r, "POST", "/auth/logout", token, nil)
	assert.Equal(t, 204, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "GET", "/metrics", "", nil)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "headache_http_requests_total")
}
