// Package dashboard implements the page-load orchestration the tracker's
// views share: session guard, then profile, then weather and records, with
// each optional load failing on its own without taking the page down.
package dashboard

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/Znerf/headacheFront/internal"
	"github.com/Znerf/headacheFront/internal/client"
	"github.com/Znerf/headacheFront/internal/geo"
	"github.com/Znerf/headacheFront/internal/session"
	"github.com/Znerf/headacheFront/internal/weather"
)

// RouteLogin is where unauthenticated sessions are sent.
const RouteLogin = "/login"

// DefaultPageSize is the fixed record page size.
const DefaultPageSize = 10

// ErrNotAuthenticated is returned when the session guard aborts a load
// before any data fetch is attempted.
var ErrNotAuthenticated = errors.New("not authenticated")

type Config struct {
	API      *client.Client
	Session  session.Store
	Logger   internal.Logger
	Navigate func(route string)
	Position geo.PositionProvider // nil when the platform has no capability
	Geocoder *geo.Geocoder
	PageSize int
	Now      func() time.Time
}

// Dashboard owns one page view's state: the server entities, their editable
// form mirrors, and the per-action in-progress flags. One Dashboard serves
// one logical thread of control; its operations are not called concurrently.
type Dashboard struct {
	api      *client.Client
	session  session.Store
	logger   internal.Logger
	navigate func(route string)
	position geo.PositionProvider
	geocoder *geo.Geocoder
	pageSize int
	now      func() time.Time

	Profile     *internal.Profile
	ProfileForm ProfileForm

	Weather *internal.WeatherSnapshot
	Hourly  []weather.HourlyPoint

	Records     []internal.HeadacheRecord
	Total       int
	TotalPages  int
	CurrentPage int
	TodayRecord *internal.HeadacheRecord
	RecordForm  RecordForm

	Loading       bool
	SavingProfile bool
	SavingRecord  bool
	ProfileStatus string
	RecordStatus  string
	GeoState      geo.State
	GeoStatus     string
}

func New(cfg Config) *Dashboard {
	if cfg.Navigate == nil {
		cfg.Navigate = func(string) {}
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Dashboard{
		api:         cfg.API,
		session:     cfg.Session,
		logger:      cfg.Logger,
		navigate:    cfg.Navigate,
		position:    cfg.Position,
		geocoder:    cfg.Geocoder,
		pageSize:    cfg.PageSize,
		now:         cfg.Now,
		CurrentPage: 1,
		RecordForm:  newRecordForm(cfg.Now()),
	}
}

// Load runs the page-load sequence: session guard, profile, then weather and
// records. The guard strictly precedes the profile fetch; weather and record
// loading follow it with no defined relative order, and a failure in either
// is isolated to that loader.
func (d *Dashboard) Load(ctx context.Context) error {
	if access, _ := d.session.Tokens(); access == "" {
		d.navigate(RouteLogin)
		return ErrNotAuthenticated
	}

	d.Loading = true
	defer func() { d.Loading = false }()

	profile, err := d.api.GetProfile(ctx)
	if err != nil {
		// A failed profile fetch is an authentication failure, not a
		// data error.
		d.logger.Warnf("profile fetch failed, redirecting to login: %v", err)
		d.navigate(RouteLogin)
		return err
	}
	d.Profile = profile
	d.ProfileForm = newProfileForm(profile)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		d.loadWeather(ctx)
	}()
	go func() {
		defer wg.Done()
		d.loadRecords(ctx)
	}()
	wg.Wait()

	return nil
}

// loadWeather fetches the latest snapshot. A true fetch failure is swallowed;
// a well-formed "no data" response is valid data and kept as-is.
func (d *Dashboard) loadWeather(ctx context.Context) {
	snap, err := d.api.GetLatestWeather(ctx)
	if err != nil {
		d.logger.Debugf("weather fetch failed: %v", err)
		return
	}
	d.Weather = snap
	d.Hourly = weather.DeriveHourly(snap)
}

// loadRecords fetches page 1 and, independently, today's record. Both are
// best-effort and never block the page.
func (d *Dashboard) loadRecords(ctx context.Context) {
	if err := d.fetchRecordsPage(ctx, 1); err != nil {
		d.logger.Debugf("record list fetch failed: %v", err)
	}

	today := d.now().Format(internal.DateLayout)
	rec, err := d.api.GetRecordByDate(ctx, today)
	if err != nil {
		d.logger.Debugf("today record fetch failed: %v", err)
		return
	}
	if rec != nil {
		d.TodayRecord = rec
		d.RecordForm = recordFormFrom(rec)
	}
}

// fetchRecordsPage updates the held page only on success; a failed fetch
// leaves the displayed records and page number untouched.
func (d *Dashboard) fetchRecordsPage(ctx context.Context, page int) error {
	res, err := d.api.GetRecords(ctx, d.pageSize, page)
	if err != nil {
		return err
	}
	d.Records = res.Records
	d.Total = res.Total
	d.TotalPages = res.TotalPages
	d.CurrentPage = page
	return nil
}

// SaveProfile submits the profile form, merges the server's authoritative
// response back, and re-fetches weather since the location may have changed.
func (d *Dashboard) SaveProfile(ctx context.Context) error {
	if d.SavingProfile {
		return nil
	}
	d.SavingProfile = true
	defer func() { d.SavingProfile = false }()

	update, err := d.ProfileForm.payload()
	if err != nil {
		d.ProfileStatus = "Name is required."
		return err
	}

	updated, err := d.api.UpdateProfile(ctx, update)
	if err != nil {
		d.ProfileStatus = client.ServerMessage(err, "Failed to update profile.")
		return err
	}

	d.mergeProfile(updated)
	d.ProfileStatus = "Profile updated."
	d.loadWeather(ctx)
	return nil
}

// mergeProfile shallow-merges the server response into the held profile:
// response fields overwrite, unspecified local fields persist.
func (d *Dashboard) mergeProfile(updated *internal.Profile) {
	if d.Profile == nil {
		d.Profile = updated
		return
	}
	if updated.Name != "" {
		d.Profile.Name = updated.Name
	}
	if updated.Location == nil {
		return
	}
	if d.Profile.Location == nil {
		d.Profile.Location = &internal.Location{}
	}
	loc := d.Profile.Location
	if updated.Location.City != nil {
		loc.City = updated.Location.City
	}
	if updated.Location.State != nil {
		loc.State = updated.Location.State
	}
	if updated.Location.Country != nil {
		loc.Country = updated.Location.Country
	}
	if updated.Location.Latitude != nil {
		loc.Latitude = updated.Location.Latitude
	}
	if updated.Location.Longitude != nil {
		loc.Longitude = updated.Location.Longitude
	}
}

// SaveRecord creates or updates today's entry: an update when today's record
// was previously loaded, a create otherwise. After either path succeeds the
// current page is re-fetched, not reset to page 1.
func (d *Dashboard) SaveRecord(ctx context.Context) error {
	if d.SavingRecord {
		return nil
	}
	d.SavingRecord = true
	defer func() { d.SavingRecord = false }()

	var (
		rec *internal.HeadacheRecord
		err error
	)
	if d.TodayRecord != nil {
		rec, err = d.api.UpdateRecord(ctx, d.TodayRecord.ID, d.RecordForm.fields())
	} else {
		rec, err = d.api.CreateRecord(ctx, client.CreateRecordRequest{
			Date:         d.RecordForm.Date,
			RecordFields: d.RecordForm.fields(),
		})
	}
	if err != nil {
		d.RecordStatus = client.ServerMessage(err, "Failed to save entry.")
		return err
	}

	// The returned record becomes today's record, so the next save in this
	// session is an update rather than a second create.
	d.TodayRecord = rec
	d.RecordStatus = "Entry saved."

	if err := d.fetchRecordsPage(ctx, d.CurrentPage); err != nil {
		d.logger.Debugf("record list refresh failed: %v", err)
	}
	return nil
}

// GoToPage re-fetches the target page and advances the page number only on
// success. Range checks belong to the rendering layer; out-of-range pages
// are never requested from there.
func (d *Dashboard) GoToPage(ctx context.Context, page int) {
	if err := d.fetchRecordsPage(ctx, page); err != nil {
		d.logger.Debugf("page %d fetch failed: %v", page, err)
	}
}

// Locate resolves the device position into the profile form. Coordinates are
// filled immediately on acquisition; the locality lookup that follows is best
// effort and only ever overwrites, never clears. Nothing is persisted until
// the user saves the profile.
func (d *Dashboard) Locate(ctx context.Context) {
	if d.position == nil {
		d.GeoState = geo.StateFailed
		d.GeoStatus = geo.MsgUnsupported
		return
	}

	d.GeoState = geo.StateRequesting
	d.GeoStatus = "Detecting your location..."

	pos, err := d.position.CurrentPosition(ctx)
	if err != nil {
		d.GeoState = geo.StateFailed
		d.GeoStatus = geo.FailureMessage(err)
		return
	}

	d.ProfileForm.Latitude = strconv.FormatFloat(pos.Latitude, 'f', -1, 64)
	d.ProfileForm.Longitude = strconv.FormatFloat(pos.Longitude, 'f', -1, 64)

	place, err := d.geocoder.Reverse(ctx, pos.Latitude, pos.Longitude)
	if err != nil {
		d.GeoState = geo.StateResolved
		d.GeoStatus = "Coordinates captured. Enter your city and country manually, then save."
		return
	}
	if city := place.CityName(); city != "" {
		d.ProfileForm.City = city
	}
	if place.PrincipalSubdivision != "" {
		d.ProfileForm.State = place.PrincipalSubdivision
	}
	if place.CountryName != "" {
		d.ProfileForm.Country = place.CountryName
	}
	d.GeoState = geo.StateResolved
	d.GeoStatus = "Location filled in. Review and save your profile."
}

// Logout clears the credential pair unconditionally and navigates to login.
// A failed server-side logout is logged, never surfaced.
func (d *Dashboard) Logout(ctx context.Context) {
	if err := d.api.Logout(ctx); err != nil {
		d.logger.Errorf("logout failed: %v", err)
	}
	if err := d.session.Clear(); err != nil {
		d.logger.Errorf("failed to clear session: %v", err)
	}
	d.navigate(RouteLogin)
}
