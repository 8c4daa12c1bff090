package models

import (
	"fmt"
	"strings"
)

// Platform is the Bungie membership type a Destiny account belongs to. The numeric value is the
// code used in the Bungie.net API paths.
type Platform int

// BungieMembershipType values understood by the Destiny endpoints
const (
	AnyPlatform Platform = 0
	Xbox        Platform = 1
	Playstation Platform = 2
)

// Code returns the integer used for this platform in request paths and query parameters.
func (p Platform) Code() int { return int(p) }

func (p Platform) String() string {
	switch p {
	case Xbox:
		return "Xbox"
	case Playstation:
		return "Playstation"
	}

	return "Any"
}

var platformNames = map[string]Platform{
	"":            AnyPlatform,
	"any":         AnyPlatform,
	"xbox":        Xbox,
	"xbl":         Xbox,
	"xbox live":   Xbox,
	"xbox one":    Xbox,
	"1":           Xbox,
	"psn":         Playstation,
	"ps4":         Playstation,
	"playstation": Playstation,
	"2":           Playstation,
}

// ParsePlatform translates a user supplied platform name (from a CLI flag or a voice slot)
// into a Platform.
func ParsePlatform(name string) (Platform, error) {
	if p, ok := platformNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p, nil
	}

	return AnyPlatform, fmt.Errorf("unknown platform %q", name)
}

// DestinyID identifies a single Destiny account on one platform. The platform is fixed when the
// ID is created and is never inferred afterwards.
type DestinyID struct {
	platform     Platform
	membershipID string
}

// NewDestinyID creates the identity for the given platform and membership ID.
func NewDestinyID(platform Platform, membershipID string) DestinyID {
	return DestinyID{platform: platform, membershipID: membershipID}
}

// Platform is the platform this account was created for.
func (id DestinyID) Platform() Platform { return id.platform }

// MembershipID is the opaque Destiny membership token.
func (id DestinyID) MembershipID() string { return id.membershipID }

func (id DestinyID) String() string {
	return fmt.Sprintf("%s:%s", id.platform, id.membershipID)
}
