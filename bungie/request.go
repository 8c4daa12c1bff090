package bungie

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/rking788/warmind-advisors/models"
)

// APIRequest is a generic request object that can be sent to a bungie.Client. Name is a short
// stable identifier for the endpoint used in logs and metrics.
type APIRequest struct {
	Name     string
	Endpoint string
	Query    url.Values
}

// URL joins the request onto the provided base URL.
func (r *APIRequest) URL(base string) string {
	full := base + r.Endpoint
	if len(r.Query) > 0 {
		full += "?" + r.Query.Encode()
	}

	return full
}

func (r *APIRequest) String() string {
	return fmt.Sprintf("%s %s", r.Name, r.URL(""))
}

// NewSearchPlayerRequest is a helper function for searching a display name on a single platform.
func NewSearchPlayerRequest(platform models.Platform, displayName string) *APIRequest {
	return &APIRequest{
		Name:     "SearchDestinyPlayer",
		Endpoint: fmt.Sprintf(SearchDestinyPlayerEndpointFmt, platform.Code(), url.PathEscape(displayName)),
	}
}

// NewAccountSummaryRequest is a helper function for loading the character summaries of an account.
func NewAccountSummaryRequest(id models.DestinyID) *APIRequest {
	return &APIRequest{
		Name:     "AccountSummary",
		Endpoint: fmt.Sprintf(AccountSummaryEndpointFmt, id.Platform().Code(), id.MembershipID()),
	}
}

// NewBungieAccountRequest is a helper function for loading the Bungie account of a Destiny
// membership, which carries the grimoire score and the flat character records.
func NewBungieAccountRequest(id models.DestinyID) *APIRequest {
	return &APIRequest{
		Name:     "GetBungieAccount",
		Endpoint: fmt.Sprintf(BungieAccountEndpointFmt, id.MembershipID(), id.Platform().Code()),
	}
}

// NewInventorySummaryRequest is a helper function for loading a character's inventory.
func NewInventorySummaryRequest(id models.DestinyID, characterID string) *APIRequest {
	return &APIRequest{
		Name: "InventorySummary",
		Endpoint: fmt.Sprintf(InventorySummaryEndpointFmt, id.Platform().Code(),
			id.MembershipID(), characterID),
	}
}

// NewActivityHistoryRequest is a helper function for a character's activity history filtered
// by the given mode. An empty mode means no filter.
func NewActivityHistoryRequest(id models.DestinyID, characterID, mode string) *APIRequest {
	vals := url.Values{}
	if mode != "" {
		vals.Set("mode", mode)
	}

	return &APIRequest{
		Name: "ActivityHistory",
		Endpoint: fmt.Sprintf(ActivityHistoryEndpointFmt, id.Platform().Code(),
			id.MembershipID(), characterID),
		Query: vals,
	}
}

// NewClanMembersRequest is a helper function for loading a single page of a clan roster.
func NewClanMembersRequest(clanID string, platform models.Platform, page int) *APIRequest {
	vals := url.Values{}
	vals.Set("currentPage", strconv.Itoa(page))
	vals.Set("platformType", strconv.Itoa(platform.Code()))

	return &APIRequest{
		Name:     "ClanMembers",
		Endpoint: fmt.Sprintf(ClanMembersEndpointFmt, url.PathEscape(clanID)),
		Query:    vals,
	}
}

// NewXurRequest is a helper function for loading Xur's current stock.
func NewXurRequest() *APIRequest {
	return &APIRequest{
		Name:     "XurAdvisor",
		Endpoint: XurAdvisorEndpoint,
	}
}

// NewWeeklyAdvisorsRequest is a helper function for loading the weekly activity rotation.
func NewWeeklyAdvisorsRequest() *APIRequest {
	return &APIRequest{
		Name:     "AdvisorsV2",
		Endpoint: WeeklyAdvisorsEndpoint,
	}
}

// NewAccountAdvisorsRequest is a helper function for loading the advisor data (record books,
// checklists) of a single account.
func NewAccountAdvisorsRequest(id models.DestinyID) *APIRequest {
	return &APIRequest{
		Name:     "AccountAdvisors",
		Endpoint: fmt.Sprintf(AccountAdvisorsEndpointFmt, id.Platform().Code(), id.MembershipID()),
	}
}

// NewRawRequest passes an arbitrary path through untouched.
func NewRawRequest(path string, query url.Values) *APIRequest {
	return &APIRequest{
		Name:     "Raw",
		Endpoint: path,
		Query:    query,
	}
}
