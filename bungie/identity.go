package bungie

import (
	"context"

	"github.com/rking788/warmind-advisors/models"
)

// SearchPlayerResponse is the response from the SearchDestinyPlayer endpoint, one entry per
// matching membership on the searched platform.
type SearchPlayerResponse struct {
	*BaseResponse
	Response []*struct {
		MembershipType int    `json:"membershipType"`
		MembershipID   string `json:"membershipId"`
		DisplayName    string `json:"displayName"`
	} `json:"Response"`
}

func (r *SearchPlayerResponse) hasResult() bool { return r.Response != nil }

// searchOrder is the platform priority used when the caller did not specify one.
var searchOrder = []models.Platform{models.Xbox, models.Playstation}

// ResolveIdentity finds the Destiny account for a display name. With a specific platform a
// single search is made. With models.AnyPlatform Xbox is searched first and Playstation only
// when Xbox found nothing. nil means no account could be found.
func (c *Client) ResolveIdentity(ctx context.Context, displayName string, platform models.Platform) *models.DestinyID {

	if platform != models.AnyPlatform {
		return c.searchPlayer(ctx, displayName, platform)
	}

	for _, p := range searchOrder {
		if id := c.searchPlayer(ctx, displayName, p); id != nil {
			return id
		}
	}

	return nil
}

func (c *Client) searchPlayer(ctx context.Context, displayName string, platform models.Platform) *models.DestinyID {

	response := SearchPlayerResponse{}
	if !c.execute(ctx, NewSearchPlayerRequest(platform, displayName), &response) {
		return nil
	}

	if len(response.Response) == 0 || response.Response[0] == nil {
		return nil
	}

	id := models.NewDestinyID(platform, response.Response[0].MembershipID)
	c.log.Debugf("Resolved %s to %s", displayName, id)

	return &id
}
