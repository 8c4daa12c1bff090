package bungie

import (
	"context"
	"time"

	"github.com/rking788/warmind-advisors/models"
)

// BungieAccountResponse is the response from the GetBungieAccount endpoint. Only the Destiny
// accounts are read; the first one is the account that was requested.
type BungieAccountResponse struct {
	*BaseResponse
	Response *struct {
		DestinyAccounts []*struct {
			GrimoireScore int `json:"grimoireScore"`
			Characters    []*struct {
				CharacterID    string    `json:"characterId"`
				ClassType      int       `json:"classType"`
				DateLastPlayed time.Time `json:"dateLastPlayed"`
				PowerLevel     int       `json:"powerLevel"`
			} `json:"characters"`
		} `json:"destinyAccounts"`
	} `json:"Response"`
}

func (r *BungieAccountResponse) hasResult() bool { return r.Response != nil }

// GetProfile loads the grimoire score and characters of a Destiny account. nil is returned
// when the account could not be loaded.
func (c *Client) GetProfile(ctx context.Context, id models.DestinyID) *models.Profile {

	response := BungieAccountResponse{}
	if !c.execute(ctx, NewBungieAccountRequest(id), &response) {
		return nil
	}

	accounts := response.Response.DestinyAccounts
	if len(accounts) == 0 || accounts[0] == nil {
		return nil
	}

	account := accounts[0]
	profile := &models.Profile{
		GrimoireScore: account.GrimoireScore,
		Characters:    make(models.CharacterList, 0, len(account.Characters)),
	}

	for _, char := range account.Characters {
		if char == nil {
			continue
		}

		profile.Characters = append(profile.Characters, &models.Character{
			Owner:          id,
			CharacterID:    char.CharacterID,
			ClassType:      models.ClassType(char.ClassType),
			DateLastPlayed: char.DateLastPlayed,
		})
	}

	c.log.Debugf("Loaded profile for %s with %d characters", id, len(profile.Characters))

	return profile
}

// GetLastPlayedCharacter is the most recently played character of the account, or nil when
// the profile is unavailable or has no characters.
func (c *Client) GetLastPlayedCharacter(ctx context.Context, id models.DestinyID) *models.Character {
	return c.GetProfile(ctx, id).LastPlayedCharacter()
}

// GetGrimoireScore is the account's grimoire score. ok is false when the profile could not
// be loaded.
func (c *Client) GetGrimoireScore(ctx context.Context, id models.DestinyID) (score int, ok bool) {
	profile := c.GetProfile(ctx, id)
	if profile == nil {
		return 0, false
	}

	return profile.GrimoireScore, true
}
