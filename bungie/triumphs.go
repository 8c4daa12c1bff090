package bungie

import (
	"context"
	"errors"
	"math"

	"github.com/rking788/warmind-advisors/models"
)

// ErrEmptyRecordBook is returned by GetTriumphsProgress when the record book exists but has
// no records to measure progress against.
var ErrEmptyRecordBook = errors.New("bungie: record book has no records")

// AccountAdvisorsResponse is the response from the account Advisors endpoint.
type AccountAdvisorsResponse struct {
	*BaseResponse
	Response *struct {
		Data *struct {
			RecordBooks map[string]*struct {
				BookHash uint `json:"bookHash"`
				Records  map[string]*struct {
					RecordHash uint `json:"recordHash"`
					Status     int  `json:"status"`
				} `json:"records"`
			} `json:"recordBooks"`
		} `json:"data"`
	} `json:"Response"`
}

func (r *AccountAdvisorsResponse) hasResult() bool { return r.Response != nil }

// GetTriumphsProgress is the percentage, 0 to 100, of Age of Triumphs records the account has
// completed. ok is false when the record book was unavailable. ErrEmptyRecordBook is returned
// for a record book without any records.
func (c *Client) GetTriumphsProgress(ctx context.Context, id models.DestinyID) (percent int, ok bool, err error) {

	response := AccountAdvisorsResponse{}
	if !c.execute(ctx, NewAccountAdvisorsRequest(id), &response) {
		return 0, false, nil
	}

	data := response.Response.Data
	if data == nil {
		return 0, false, nil
	}

	book := data.RecordBooks[ageOfTriumphsRecordBook]
	if book == nil {
		return 0, false, nil
	}

	if len(book.Records) == 0 {
		return 0, false, ErrEmptyRecordBook
	}

	completed := 0
	for _, record := range book.Records {
		if record != nil && record.Status == recordStatusCompleted {
			completed++
		}
	}

	percent = int(math.Round(100 * float64(completed) / float64(len(book.Records))))
	return percent, true, nil
}
