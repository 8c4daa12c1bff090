package bungie

import (
	"context"
	"net/url"
)

// RawResponse keeps the Response of any endpoint as a generic JSON value: an object, an
// array or a scalar.
type RawResponse struct {
	*BaseResponse
	Response interface{} `json:"Response"`
}

func (r *RawResponse) hasResult() bool { return r.Response != nil }

// GetRaw requests an arbitrary path below the base URL and returns the validated Response
// undecoded. nil is returned for invalid documents.
func (c *Client) GetRaw(ctx context.Context, path string, query url.Values) interface{} {

	response := RawResponse{}
	if !c.execute(ctx, NewRawRequest(path, query), &response) {
		return nil
	}

	return response.Response
}
