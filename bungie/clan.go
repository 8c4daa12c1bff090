package bungie

import (
	"context"

	"github.com/rking788/warmind-advisors/models"
)

// ClanMembersResponse is the response from a single page of the ClanMembers endpoint.
type ClanMembersResponse struct {
	*BaseResponse
	Response *SearchResultOfClanMember `json:"Response"`
}

func (r *ClanMembersResponse) hasResult() bool { return r.Response != nil }

// SearchResultOfClanMember is one page of clan members.
type SearchResultOfClanMember struct {
	HasMore bool          `json:"hasMore"`
	Results []*ClanMember `json:"results"`
}

// ClanMember is a roster entry as returned by the API.
type ClanMember struct {
	DestinyUserInfo *struct {
		MembershipType int    `json:"membershipType"`
		MembershipID   string `json:"membershipId"`
		DisplayName    string `json:"displayName"`
	} `json:"destinyUserInfo"`
}

// GetClanRoster walks the pages of a clan roster starting at page 0 and returns the members
// in page order. A page that comes back invalid or without results is skipped; paging stops
// at the first valid page reporting no more results, when ctx is done, or after the
// configured page ceiling. The result is never nil.
func (c *Client) GetClanRoster(ctx context.Context, clanID string, platform models.Platform) []models.ClanMember {

	members := make([]models.ClanMember, 0, 100)
	for page := 0; page < c.maxClanPages; page++ {
		// Canceled: keep what was read so far
		if ctx.Err() != nil {
			return members
		}

		result := c.clanPage(ctx, clanID, platform, page)
		if result == nil || len(result.Results) == 0 {
			if result != nil && !result.HasMore {
				return members
			}
			continue
		}

		for _, member := range result.Results {
			if member == nil || member.DestinyUserInfo == nil {
				continue
			}

			info := member.DestinyUserInfo
			members = append(members, models.ClanMember{
				ID:             models.NewDestinyID(platform, info.MembershipID),
				DisplayName:    info.DisplayName,
				MembershipType: info.MembershipType,
			})
		}

		if !result.HasMore {
			return members
		}
	}

	c.log.Warnf("Stopped reading clan %s roster after %d pages with %d members",
		clanID, c.maxClanPages, len(members))

	return members
}

// clanPage fetches one roster page, requesting it up to clanPageAttempts times while the
// response is invalid. nil means every attempt failed.
func (c *Client) clanPage(ctx context.Context, clanID string, platform models.Platform, page int) *SearchResultOfClanMember {

	request := NewClanMembersRequest(clanID, platform, page)
	for attempt := 0; attempt < c.clanPageAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil
		}

		response := ClanMembersResponse{}
		if c.execute(ctx, request, &response) {
			return response.Response
		}
	}

	return nil
}
