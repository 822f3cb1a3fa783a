package dashboard

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Znerf/headacheFront/internal"
	"github.com/Znerf/headacheFront/internal/client"
)

var validate = validator.New()

// ProfileForm is the editable mirror of the server profile. Every field is
// text so the user can clear or partially type numeric values; parsing
// happens only when a payload is built.
type ProfileForm struct {
	Name      string `validate:"required"`
	City      string
	State     string
	Country   string
	Latitude  string
	Longitude string
}

func newProfileForm(p *internal.Profile) ProfileForm {
	form := ProfileForm{Name: p.Name}
	if loc := p.Location; loc != nil {
		if loc.City != nil {
			form.City = *loc.City
		}
		if loc.State != nil {
			form.State = *loc.State
		}
		if loc.Country != nil {
			form.Country = *loc.Country
		}
		if loc.Latitude != nil {
			form.Latitude = strconv.FormatFloat(*loc.Latitude, 'f', -1, 64)
		}
		if loc.Longitude != nil {
			form.Longitude = strconv.FormatFloat(*loc.Longitude, 'f', -1, 64)
		}
	}
	return form
}

// payload builds the update request. Blank optional fields are omitted, not
// sent as empty strings; unparseable coordinates are omitted too.
func (f *ProfileForm) payload() (client.ProfileUpdate, error) {
	if err := validate.Struct(f); err != nil {
		return client.ProfileUpdate{}, err
	}
	update := client.ProfileUpdate{Name: f.Name}
	if f.City != "" {
		update.City = internal.StringPtr(f.City)
	}
	if f.State != "" {
		update.State = internal.StringPtr(f.State)
	}
	if f.Country != "" {
		update.Country = internal.StringPtr(f.Country)
	}
	if lat, err := strconv.ParseFloat(f.Latitude, 64); err == nil {
		update.Latitude = internal.FloatPtr(lat)
	}
	if lon, err := strconv.ParseFloat(f.Longitude, 64); err == nil {
		update.Longitude = internal.FloatPtr(lon)
	}
	return update, nil
}

// RecordForm is the editable mirror of today's log entry.
type RecordForm struct {
	Date                 string `validate:"required,datetime=2006-01-02"`
	HadHeadache          bool
	HeadacheStartTime    string
	HeadacheEndTime      string
	WentOutsideYesterday bool
	DrankWaterYesterday  bool
	Notes                string
}

// newRecordForm is the default mirror for a day with no record yet.
func newRecordForm(now time.Time) RecordForm {
	return RecordForm{Date: now.Format(internal.DateLayout)}
}

func recordFormFrom(rec *internal.HeadacheRecord) RecordForm {
	return RecordForm{
		Date:                 rec.Date,
		HadHeadache:          rec.HadHeadache,
		HeadacheStartTime:    rec.HeadacheStartTime,
		HeadacheEndTime:      rec.HeadacheEndTime,
		WentOutsideYesterday: rec.WentOutsideYesterday,
		DrankWaterYesterday:  rec.DrankWaterYesterday,
		Notes:                rec.Notes,
	}
}

func (f *RecordForm) fields() client.RecordFields {
	fields := client.RecordFields{
		HadHeadache:          f.HadHeadache,
		WentOutsideYesterday: f.WentOutsideYesterday,
		DrankWaterYesterday:  f.DrankWaterYesterday,
	}
	if f.HeadacheStartTime != "" {
		fields.HeadacheStartTime = internal.StringPtr(f.HeadacheStartTime)
	}
	if f.HeadacheEndTime != "" {
		fields.HeadacheEndTime = internal.StringPtr(f.HeadacheEndTime)
	}
	if f.Notes != "" {
		fields.Notes = internal.StringPtr(f.Notes)
	}
	return fields
}
