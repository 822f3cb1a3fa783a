package internal

import "time"

// DateLayout is the calendar-date key used for daily records (local time).
const DateLayout = "2006-01-02"

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Location holds optional, independently settable locality fields.
// Pointer fields distinguish "not set" from a zero value.
type Location struct {
	City      *string  `json:"city,omitempty"`
	State     *string  `json:"state,omitempty"`
	Country   *string  `json:"country,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type Profile struct {
	Name     string    `json:"name"`
	Location *Location `json:"location,omitempty"`
}

// HeadacheRecord is one daily log entry. At most one record exists per
// calendar date per user.
type HeadacheRecord struct {
	ID                   string    `json:"id"`
	Date                 string    `json:"date"` // YYYY-MM-DD
	HadHeadache          bool      `json:"hadHeadache"`
	HeadacheStartTime    string    `json:"headacheStartTime,omitempty"`
	HeadacheEndTime      string    `json:"headacheEndTime,omitempty"`
	WentOutsideYesterday bool      `json:"wentOutsideYesterday"`
	DrankWaterYesterday  bool      `json:"drankWaterYesterday"`
	Notes                string    `json:"notes,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// OwnedRecord pairs a record with its owner for persistence. Handlers return
// only the embedded HeadacheRecord.
type OwnedRecord struct {
	UserID string `json:"userId"`
	HeadacheRecord
}

// RecordPage is one page of a user's records, most recent first.
type RecordPage struct {
	Records    []HeadacheRecord `json:"data"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

// CurrentWeather mirrors the provider's "current" block.
type CurrentWeather struct {
	Time               string  `json:"time,omitempty"`
	Temperature2M      float64 `json:"temperature_2m"`
	ApparentTemp       float64 `json:"apparent_temperature"`
	RelativeHumidity2M float64 `json:"relative_humidity_2m"`
	Precipitation      float64 `json:"precipitation"`
	WindSpeed10M       float64 `json:"wind_speed_10m"`
	WeatherCode        int     `json:"weather_code"`
}

// HourlyWeather holds the provider's hourly forecast as parallel arrays:
// index i in every array refers to the timestamp Time[i].
type HourlyWeather struct {
	Time                []string  `json:"time"`
	Temperature2M       []float64 `json:"temperature_2m"`
	ApparentTemperature []float64 `json:"apparent_temperature"`
	RelativeHumidity2M  []float64 `json:"relative_humidity_2m"`
	Precipitation       []float64 `json:"precipitation"`
	WindSpeed10M        []float64 `json:"wind_speed_10m"`
	UVIndex             []float64 `json:"uv_index"`
	DewPoint2M          []float64 `json:"dew_point_2m"`
	CloudCover          []float64 `json:"cloud_cover"`
	SurfacePressure     []float64 `json:"surface_pressure"`
	Visibility          []float64 `json:"visibility"`
}

type WeatherData struct {
	Current *CurrentWeather `json:"current,omitempty"`
	Hourly  *HourlyWeather  `json:"hourly,omitempty"`
}

// WeatherSnapshot is one fetched weather payload. A snapshot with Message set
// signals "no data available" rather than an error.
type WeatherSnapshot struct {
	RecordedAt *time.Time   `json:"recordedAt,omitempty"`
	Location   *Location    `json:"location,omitempty"`
	Provider   string       `json:"provider,omitempty"`
	Weather    *WeatherData `json:"weather,omitempty"`
	Message    string       `json:"message,omitempty"`
}

// StoredUser is the server-side account: credentials plus the profile the
// front-end edits. The JSON tags are for file-backed persistence; the
// password hash and refresh token are never served to clients.
type StoredUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"passwordHash"`
	Location     *Location `json:"location,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *StoredUser) Profile() *Profile {
	return &Profile{Name: u.Name, Location: u.Location}
}

func (u *StoredUser) User() User {
	return User{ID: u.ID, Email: u.Email, Name: u.Name}
}

func StringPtr(s string) *string  { return &s }
func FloatPtr(f float64) *float64 { return &f }
