package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Znerf/headacheFront/internal"
	"github.com/Znerf/headacheFront/internal/storage"
)

// ErrRecordExists signals a second entry for a date that already has one.
var ErrRecordExists = errors.New("service: a record already exists for this date")

type RecordFieldsRequest struct {
	HadHeadache          bool    `json:"hadHeadache"`
	HeadacheStartTime    *string `json:"headacheStartTime,omitempty" validate:"omitempty,datetime=15:04"`
	HeadacheEndTime      *string `json:"headacheEndTime,omitempty" validate:"omitempty,datetime=15:04"`
	WentOutsideYesterday bool    `json:"wentOutsideYesterday"`
	DrankWaterYesterday  bool    `json:"drankWaterYesterday"`
	Notes                *string `json:"notes,omitempty"`
}

type CreateRecordRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	RecordFieldsRequest
}

func ValidateCreateRecordRequest(body *CreateRecordRequest) error {
	return validate.Struct(body)
}

func ValidateRecordFieldsRequest(body *RecordFieldsRequest) error {
	return validate.Struct(body)
}

func (f *RecordFieldsRequest) apply(rec *internal.HeadacheRecord) {
	rec.HadHeadache = f.HadHeadache
	rec.HeadacheStartTime = ""
	rec.HeadacheEndTime = ""
	if f.HadHeadache {
		if f.HeadacheStartTime != nil {
			rec.HeadacheStartTime = *f.HeadacheStartTime
		}
		if f.HeadacheEndTime != nil {
			rec.HeadacheEndTime = *f.HeadacheEndTime
		}
	}
	rec.WentOutsideYesterday = f.WentOutsideYesterday
	rec.DrankWaterYesterday = f.DrankWaterYesterday
	if f.Notes != nil {
		rec.Notes = *f.Notes
	} else {
		rec.Notes = ""
	}
}

func CreateRecord(ctx context.Context, records storage.RecordRepository, user *internal.StoredUser, body *CreateRecordRequest) (*internal.HeadacheRecord, error) {
	_, err := records.GetRecordByDate(ctx, user.ID, body.Date)
	if err == nil {
		return nil, ErrRecordExists
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	rec := &internal.OwnedRecord{
		UserID: user.ID,
		HeadacheRecord: internal.HeadacheRecord{
			ID:        uuid.NewString(),
			Date:      body.Date,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	body.RecordFieldsRequest.apply(&rec.HeadacheRecord)

	if err := records.SaveRecord(ctx, rec); err != nil {
		return nil, err
	}
	return &rec.HeadacheRecord, nil
}

// UpdateRecord rewrites the mutable fields of an existing entry. Records
// belonging to other users are reported as not found.
func UpdateRecord(ctx context.Context, records storage.RecordRepository, user *internal.StoredUser, id string, body *RecordFieldsRequest) (*internal.HeadacheRecord, error) {
	rec, err := records.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.UserID != user.ID {
		return nil, storage.ErrNotFound
	}

	body.apply(&rec.HeadacheRecord)
	rec.UpdatedAt = time.Now()

	if err := records.SaveRecord(ctx, rec); err != nil {
		return nil, err
	}
	return &rec.HeadacheRecord, nil
}

func GetRecordByDate(ctx context.Context, records storage.RecordRepository, user *internal.StoredUser, date string) (*internal.HeadacheRecord, error) {
	rec, err := records.GetRecordByDate(ctx, user.ID, date)
	if err != nil {
		return nil, err
	}
	return &rec.HeadacheRecord, nil
}

func DeleteRecord(ctx context.Context, records storage.RecordRepository, user *internal.StoredUser, id string) error {
	rec, err := records.GetRecord(ctx, id)
	if err != nil {
		return err
	}
	if rec.UserID != user.ID {
		return storage.ErrNotFound
	}
	return records.DeleteRecord(ctx, id)
}

func ListRecords(ctx context.Context, records storage.RecordRepository, user *internal.StoredUser, limit, page int) (*internal.RecordPage, error) {
	if limit < 1 {
		limit = 10
	}
	if page < 1 {
		page = 1
	}

	items, total, err := records.ListRecords(ctx, user.ID, limit, page)
	if err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit
	return &internal.RecordPage{
		Records:    items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
