// Package briefing turns Bungie API results into the short sentences spoken by the voice
// assistants and printed by the command line client.
package briefing

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kpango/glg"

	"github.com/rking788/warmind-advisors/bungie"
	"github.com/rking788/warmind-advisors/models"
	"github.com/rking788/warmind-advisors/storage"
)

const (
	unknownActivity = "an unknown activity"
	unknownItem     = "an unknown item"
	apologyPrefix   = "Sorry Guardian, "
)

// Advisor is the read API used to build briefings. *bungie.Client satisfies it.
type Advisor interface {
	ResolveIdentity(ctx context.Context, displayName string, platform models.Platform) *models.DestinyID
	GetCurrentActivity(ctx context.Context, id models.DestinyID) *models.ActivityReference
	GetProfile(ctx context.Context, id models.DestinyID) *models.Profile
	GetLastPlayedCharacter(ctx context.Context, id models.DestinyID) *models.Character
	GetGrimoireScore(ctx context.Context, id models.DestinyID) (int, bool)
	GetLastCompletedActivity(ctx context.Context, character *models.Character) *models.ActivityReference
	GetRaidCompletions(ctx context.Context, character *models.Character) ([]models.ActivityReference, bool)
	GetInventory(ctx context.Context, id models.DestinyID, characterID string) *models.Inventory
	GetClanRoster(ctx context.Context, clanID string, platform models.Platform) []models.ClanMember
	GetXurVendorStock(ctx context.Context) ([]models.XurExoticItem, bool)
	GetWeeklyProgram(ctx context.Context) *models.WeeklyProgram
	GetTriumphsProgress(ctx context.Context, id models.DestinyID) (int, bool, error)
	GetRaw(ctx context.Context, path string, query url.Values) interface{}
}

var _ Advisor = (*bungie.Client)(nil)

// Namer translates manifest hashes into display names. *storage.LookupDB satisfies it.
type Namer interface {
	ItemName(ctx context.Context, hash uint) (string, error)
	ActivityName(ctx context.Context, hash uint) (string, error)
	ActivityTypeName(ctx context.Context, hash uint) (string, error)
}

var _ Namer = (*storage.LookupDB)(nil)

// Service composes briefings from an Advisor and a Namer.
type Service struct {
	advisor Advisor
	namer   Namer
	now     func() time.Time
}

// NewService creates a briefing Service. namer may be nil, in which case every hash is
// described as unknown.
func NewService(advisor Advisor, namer Namer) *Service {
	return &Service{
		advisor: advisor,
		namer:   namer,
		now:     time.Now,
	}
}

// Advisor exposes the underlying read API.
func (s *Service) Advisor() Advisor {
	return s.advisor
}

func (s *Service) itemName(ctx context.Context, hash uint) string {
	if s.namer == nil {
		return unknownItem
	}

	name, err := s.namer.ItemName(ctx, hash)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			glg.Warnf("Failed to find item name for %d: %s", hash, err.Error())
		}
		return unknownItem
	}

	return name
}

// activityName describes an activity by its own name, followed by its type when the
// reference carries a type override.
func (s *Service) activityName(ctx context.Context, ref models.ActivityReference) string {
	if s.namer == nil {
		return unknownActivity
	}

	name, err := s.namer.ActivityName(ctx, ref.Hash)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			glg.Warnf("Failed to find activity name for %d: %s", ref.Hash, err.Error())
		}
		return unknownActivity
	}

	if ref.Override == nil {
		return name
	}

	typeName, err := s.namer.ActivityTypeName(ctx, ref.TypeHash())
	if err != nil || typeName == "" || strings.EqualFold(typeName, name) {
		return name
	}

	return fmt.Sprintf("%s (%s)", name, typeName)
}

// ResolvePlayer finds the Destiny account for a gamertag.
func (s *Service) ResolvePlayer(ctx context.Context, gamertag string, platform models.Platform) *models.DestinyID {
	if strings.TrimSpace(gamertag) == "" {
		return nil
	}

	return s.advisor.ResolveIdentity(ctx, gamertag, platform)
}

// PlayerNotFound is spoken when a gamertag could not be resolved.
func PlayerNotFound(gamertag string) string {
	return apologyPrefix + "I couldn't find a Destiny account for " + gamertag + "."
}

// joinNames lists names in spoken form: "a", "a and b", "a, b, and c".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	}

	return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
}

func plural(count int, singular, pluralForm string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}

	return fmt.Sprintf("%d %s", count, pluralForm)
}

// Xur describes the exotics Xur is selling, or that he is not visiting.
func (s *Service) Xur(ctx context.Context) string {

	items, ok := s.advisor.GetXurVendorStock(ctx)
	if !ok {
		return apologyPrefix + "I wasn't able to find Xur's inventory right now."
	}
	if len(items) == 0 {
		return "Xur is not visiting the Tower or the Reef right now. He arrives every Friday."
	}

	weapons := make([]string, 0, len(items))
	armor := make([]string, 0, len(items))
	for _, item := range items {
		name := s.itemName(ctx, item.ItemHash)
		if item.IsArmor {
			armor = append(armor, name)
		} else {
			weapons = append(weapons, name)
		}
	}

	parts := make([]string, 0, 2)
	if len(weapons) > 0 {
		parts = append(parts, "the "+plural(len(weapons), "weapon", "weapons")+" "+joinNames(weapons))
	}
	if len(armor) > 0 {
		parts = append(parts, "the armor "+joinNames(armor))
	}

	return "Xur is selling " + strings.Join(parts, ", and ") + "."
}

// Nightfall describes this week's nightfall and its modifiers.
func (s *Service) Nightfall(ctx context.Context) string {

	program := s.advisor.GetWeeklyProgram(ctx)
	if program == nil || program.Nightfall == nil {
		return apologyPrefix + "I couldn't load this week's nightfall."
	}

	speech := "This week's nightfall is " + s.activityName(ctx, program.Nightfall.Activity)
	if modifiers := program.Nightfall.Modifiers.Collect(); len(modifiers) > 0 {
		speech += " with the modifiers " + joinNames(modifiers)
	}

	return speech + "."
}

// WeeklyActivities describes every featured activity of the week.
func (s *Service) WeeklyActivities(ctx context.Context) string {

	program := s.advisor.GetWeeklyProgram(ctx)
	if program == nil {
		return apologyPrefix + "I couldn't load this week's activities."
	}

	sentences := make([]string, 0, 5)
	if program.Nightfall != nil {
		sentences = append(sentences, "The nightfall is "+s.activityName(ctx, program.Nightfall.Activity)+".")
	}
	if program.FeaturedRaid != nil {
		raid := "The featured raid is " + s.activityName(ctx, program.FeaturedRaid.Activity)
		if modifiers := program.FeaturedRaid.Modifiers.Collect(); len(modifiers) > 0 {
			raid += " with " + joinNames(modifiers)
		}
		sentences = append(sentences, raid+".")
	}
	if program.WeeklyCrucible != nil {
		sentences = append(sentences, "The weekly crucible playlist is "+s.activityName(ctx, *program.WeeklyCrucible)+".")
	}
	if modifiers := program.HeroicStrike.Collect(); len(modifiers) > 0 {
		sentences = append(sentences, "Heroic strikes have the modifiers "+joinNames(modifiers)+".")
	}
	if modifiers := program.ElderChallenge.Collect(); len(modifiers) > 0 {
		sentences = append(sentences, "The Challenge of the Elders has "+joinNames(modifiers)+".")
	}

	if len(sentences) == 0 {
		return "There are no featured activities this week."
	}

	return strings.Join(sentences, " ")
}

// CurrentActivity describes what the player is doing right now.
func (s *Service) CurrentActivity(ctx context.Context, gamertag string, id models.DestinyID) string {

	activity := s.advisor.GetCurrentActivity(ctx, id)
	if activity == nil {
		return gamertag + " is not playing Destiny right now."
	}

	return gamertag + " is currently playing " + s.activityName(ctx, *activity) + "."
}

// GrimoireScore speaks the player's grimoire score.
func (s *Service) GrimoireScore(ctx context.Context, gamertag string, id models.DestinyID) string {

	score, ok := s.advisor.GetGrimoireScore(ctx, id)
	if !ok {
		return apologyPrefix + "I couldn't load the grimoire score for " + gamertag + "."
	}

	return fmt.Sprintf("%s has a grimoire score of %s.", gamertag, humanize.Comma(int64(score)))
}

// TriumphsProgress speaks the player's Age of Triumphs completion percentage.
func (s *Service) TriumphsProgress(ctx context.Context, gamertag string, id models.DestinyID) string {

	percent, ok, err := s.advisor.GetTriumphsProgress(ctx, id)
	if errors.Is(err, bungie.ErrEmptyRecordBook) {
		return gamertag + " has no Age of Triumphs records to complete."
	} else if err != nil || !ok {
		return apologyPrefix + "I couldn't load the Age of Triumphs record book for " + gamertag + "."
	}

	if percent == 100 {
		return gamertag + " has completed every Age of Triumphs record."
	}

	return fmt.Sprintf("%s has completed %d percent of the Age of Triumphs record book.", gamertag, percent)
}

// RaidCompletions counts the raids completed on the player's most recently played character.
func (s *Service) RaidCompletions(ctx context.Context, gamertag string, id models.DestinyID) string {

	character := s.advisor.GetLastPlayedCharacter(ctx, id)
	if character == nil {
		return apologyPrefix + "I couldn't find any characters for " + gamertag + "."
	}

	raids, ok := s.advisor.GetRaidCompletions(ctx, character)
	if !ok {
		return apologyPrefix + "I couldn't load the raid history for " + gamertag + "."
	}
	if len(raids) == 0 {
		return fmt.Sprintf("%s has not completed any raids on their %s.", gamertag, character.ClassType)
	}

	return fmt.Sprintf("%s has %s on their %s. The most recent was %s.", gamertag,
		plural(len(raids), "raid completion", "raid completions"), character.ClassType,
		s.activityName(ctx, raids[0]))
}

// LastPlayed describes the player's most recently played character and their last activity.
func (s *Service) LastPlayed(ctx context.Context, gamertag string, id models.DestinyID) string {

	character := s.advisor.GetLastPlayedCharacter(ctx, id)
	if character == nil {
		return apologyPrefix + "I couldn't find any characters for " + gamertag + "."
	}

	speech := fmt.Sprintf("%s last played their %s %s", gamertag, character.ClassType,
		humanize.RelTime(character.DateLastPlayed, s.now(), "ago", "from now"))

	if activity := s.advisor.GetLastCompletedActivity(ctx, character); activity != nil {
		speech += ", finishing " + s.activityName(ctx, *activity)
	}

	return speech + "."
}
