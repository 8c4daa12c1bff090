package models

// ClanMember is a single entry on a clan roster.
type ClanMember struct {
	ID          DestinyID
	DisplayName string
	// MembershipType is the platform flag reported on the member record itself.
	MembershipType int
}
