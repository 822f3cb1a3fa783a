package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Znerf/headacheFront/internal"
)

// RecordFields are the editable fields shared by create and update. Optional
// string fields are nil when blank and omitted from the payload.
type RecordFields struct {
	HadHeadache          bool    `json:"hadHeadache"`
	HeadacheStartTime    *string `json:"headacheStartTime,omitempty"`
	HeadacheEndTime      *string `json:"headacheEndTime,omitempty"`
	WentOutsideYesterday bool    `json:"wentOutsideYesterday"`
	DrankWaterYesterday  bool    `json:"drankWaterYesterday"`
	Notes                *string `json:"notes,omitempty"`
}

type CreateRecordRequest struct {
	Date string `json:"date"`
	RecordFields
}

func (c *Client) CreateRecord(ctx context.Context, req CreateRecordRequest) (*internal.HeadacheRecord, error) {
	var rec internal.HeadacheRecord
	if err := c.post(ctx, "/headache", req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) GetRecords(ctx context.Context, limit, page int) (*internal.RecordPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("page", strconv.Itoa(page))

	var resp internal.RecordPage
	if err := c.get(ctx, "/headache", query, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetRecordByDate looks up the record for a YYYY-MM-DD date. An absent record
// is a normal outcome and returns (nil, nil).
func (c *Client) GetRecordByDate(ctx context.Context, date string) (*internal.HeadacheRecord, error) {
	query := url.Values{}
	query.Set("date", date)

	var rec internal.HeadacheRecord
	if err := c.get(ctx, "/headache/by-date", query, &rec); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if rec.ID == "" {
		return nil, nil
	}
	return &rec, nil
}

func (c *Client) UpdateRecord(ctx context.Context, id string, fields RecordFields) (*internal.HeadacheRecord, error) {
	var rec internal.HeadacheRecord
	if err := c.put(ctx, "/headache/"+id, fields, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	return c.delete(ctx, "/headache/"+id)
}
