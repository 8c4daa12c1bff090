package cli

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rking788/warmind-advisors/models"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// ErrUnavailable is returned when Bungie.net did not provide the requested data.
var ErrUnavailable = errors.New("not available from Bungie.net")

// printResult writes data to w in the configured format
func printResult(w io.Writer, data any) error {
	if opts.Format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Identity output type
type Identity struct {
	Gamertag     string `json:"gamertag" yaml:"gamertag"`
	Platform     string `json:"platform" yaml:"platform"`
	MembershipID string `json:"membershipId" yaml:"membershipId"`
}

func newIdentity(gamertag string, id models.DestinyID) Identity {
	return Identity{Gamertag: gamertag, Platform: id.Platform().String(), MembershipID: id.MembershipID()}
}

// Activity output type
type Activity struct {
	Hash     uint  `json:"hash" yaml:"hash"`
	Override *uint `json:"override,omitempty" yaml:"override,omitempty"`
	TypeHash uint  `json:"typeHash" yaml:"typeHash"`
}

func newActivity(ref models.ActivityReference) Activity {
	return Activity{Hash: ref.Hash, Override: ref.Override, TypeHash: ref.TypeHash()}
}

func newActivities(refs []models.ActivityReference) []Activity {
	activities := make([]Activity, 0, len(refs))
	for _, ref := range refs {
		activities = append(activities, newActivity(ref))
	}
	return activities
}

// Character output type
type Character struct {
	CharacterID    string    `json:"characterId" yaml:"characterId"`
	Class          string    `json:"class" yaml:"class"`
	DateLastPlayed time.Time `json:"dateLastPlayed" yaml:"dateLastPlayed"`
}

// Profile output type. Triumphs and CurrentActivity are omitted when Bungie.net did not
// report them.
type Profile struct {
	Identity        Identity    `json:"identity" yaml:"identity"`
	GrimoireScore   int         `json:"grimoireScore" yaml:"grimoireScore"`
	Characters      []Character `json:"characters" yaml:"characters"`
	LastPlayed      string      `json:"lastPlayedCharacter,omitempty" yaml:"lastPlayedCharacter,omitempty"`
	Triumphs        *int        `json:"triumphsPercent,omitempty" yaml:"triumphsPercent,omitempty"`
	CurrentActivity *Activity   `json:"currentActivity,omitempty" yaml:"currentActivity,omitempty"`
}

func newProfile(identity Identity, profile *models.Profile) Profile {
	result := Profile{
		Identity:      identity,
		GrimoireScore: profile.GrimoireScore,
		Characters:    make([]Character, 0, len(profile.Characters)),
	}

	for _, char := range profile.Characters {
		if char == nil {
			continue
		}
		result.Characters = append(result.Characters, Character{
			CharacterID:    char.CharacterID,
			Class:          char.ClassType.String(),
			DateLastPlayed: char.DateLastPlayed,
		})
	}

	if last := profile.LastPlayedCharacter(); last != nil {
		result.LastPlayed = last.CharacterID
	}

	return result
}

// Item output type
type Item struct {
	ItemHash   uint   `json:"itemHash" yaml:"itemHash"`
	InstanceID string `json:"itemId" yaml:"itemId"`
	Power      int    `json:"power" yaml:"power"`
	Quantity   int    `json:"quantity" yaml:"quantity"`
	IsEquipped bool   `json:"isEquipped" yaml:"isEquipped"`
}

// Inventory output type
type Inventory struct {
	CharacterID   string `json:"characterId" yaml:"characterId"`
	EquippedPower int    `json:"equippedPower" yaml:"equippedPower"`
	Items         []Item `json:"items" yaml:"items"`
}

func newInventory(inventory *models.Inventory, items models.ItemList) Inventory {
	result := Inventory{
		CharacterID:   inventory.CharacterID,
		EquippedPower: inventory.EquippedPower(),
		Items:         make([]Item, 0, len(items)),
	}

	for _, item := range items {
		result.Items = append(result.Items, Item{
			ItemHash:   item.ItemHash,
			InstanceID: item.InstanceID,
			Power:      item.Power(),
			Quantity:   item.Quantity,
			IsEquipped: item.IsEquipped,
		})
	}

	return result
}

// Member output type
type Member struct {
	DisplayName    string `json:"displayName" yaml:"displayName"`
	Platform       string `json:"platform" yaml:"platform"`
	MembershipID   string `json:"membershipId" yaml:"membershipId"`
	MembershipType int    `json:"membershipType" yaml:"membershipType"`
}

// XurItem output type
type XurItem struct {
	ItemHash uint   `json:"itemHash" yaml:"itemHash"`
	Kind     string `json:"kind" yaml:"kind"`
}

// WeeklyActivity output type
type WeeklyActivity struct {
	Activity  Activity `json:"activity" yaml:"activity"`
	Modifiers []string `json:"modifiers" yaml:"modifiers"`
}

// Weekly output type. Activities Bungie.net did not feature this week are omitted.
type Weekly struct {
	Nightfall      *WeeklyActivity `json:"nightfall,omitempty" yaml:"nightfall,omitempty"`
	FeaturedRaid   *WeeklyActivity `json:"featuredRaid,omitempty" yaml:"featuredRaid,omitempty"`
	ElderChallenge []string        `json:"elderChallenge" yaml:"elderChallenge"`
	WeeklyCrucible *Activity       `json:"weeklyCrucible,omitempty" yaml:"weeklyCrucible,omitempty"`
	HeroicStrike   []string        `json:"heroicStrike" yaml:"heroicStrike"`
}

func newWeeklyActivity(activity *models.WeeklyActivity) *WeeklyActivity {
	if activity == nil {
		return nil
	}

	return &WeeklyActivity{Activity: newActivity(activity.Activity), Modifiers: activity.Modifiers.Collect()}
}

func newWeekly(program *models.WeeklyProgram) Weekly {
	result := Weekly{
		Nightfall:      newWeeklyActivity(program.Nightfall),
		FeaturedRaid:   newWeeklyActivity(program.FeaturedRaid),
		ElderChallenge: program.ElderChallenge.Collect(),
		HeroicStrike:   program.HeroicStrike.Collect(),
	}

	if program.WeeklyCrucible != nil {
		crucible := newActivity(*program.WeeklyCrucible)
		result.WeeklyCrucible = &crucible
	}

	return result
}
