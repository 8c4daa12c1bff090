package bungie

// DefaultBaseURL is the root all endpoint paths below are appended to.
const DefaultBaseURL = "https://www.bungie.net/Platform"

// Constant API endpoints
const (
	SearchDestinyPlayerEndpointFmt = "/Destiny/SearchDestinyPlayer/%d/%s/"
	AccountSummaryEndpointFmt      = "/Destiny/%d/Account/%s/Summary/"
	BungieAccountEndpointFmt       = "/User/GetBungieAccount/%s/%d/"
	InventorySummaryEndpointFmt    = "/Destiny/%d/Account/%s/Character/%s/Inventory/Summary/"
	ActivityHistoryEndpointFmt     = "/Destiny/Stats/ActivityHistory/%d/%s/%s/"
	ClanMembersEndpointFmt         = "/Group/%s/ClanMembers/"
	XurAdvisorEndpoint             = "/Destiny/Advisors/Xur/"
	WeeklyAdvisorsEndpoint         = "/Destiny/Advisors/V2/"
	AccountAdvisorsEndpointFmt     = "/Destiny/%d/Account/%s/Advisors/"
)

// Activity history mode filters
const (
	ModeNone = "None"
	ModeRaid = "Raid"
)

// successErrorCode is the ErrorCode value of a successful response envelope.
const successErrorCode = 1

// defenseStatHash is the primary stat hash of armor pieces; weapons use Attack.
const defenseStatHash uint = 3897883278

// exoticGearCategory is the title of Xur's sale category holding the exotic weapons and armor.
const exoticGearCategory = "Exotic Gear"

// ageOfTriumphsRecordBook is the record book tracked by GetTriumphsProgress.
const ageOfTriumphsRecordBook = "840570351"

// recordStatusCompleted is the record status of a finished (redeemed) triumph.
const recordStatusCompleted = 2

// Clan paging defaults
const (
	DefaultMaxClanPages     = 100
	DefaultClanPageAttempts = 1
)
