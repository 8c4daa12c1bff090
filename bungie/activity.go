package bungie

import (
	"context"
	"time"

	"github.com/rking788/warmind-advisors/models"
)

// AccountSummaryResponse is the response from the account Summary endpoint. Each character's
// live state is nested under its characterBase.
type AccountSummaryResponse struct {
	*BaseResponse
	Response *struct {
		Data *struct {
			MembershipID string `json:"membershipId"`
			Characters   []*struct {
				CharacterBase *struct {
					CharacterID         string    `json:"characterId"`
					DateLastPlayed      time.Time `json:"dateLastPlayed"`
					CurrentActivityHash uint      `json:"currentActivityHash"`
					ClassType           int       `json:"classType"`
				} `json:"characterBase"`
			} `json:"characters"`
		} `json:"data"`
	} `json:"Response"`
}

func (r *AccountSummaryResponse) hasResult() bool { return r.Response != nil }

// ActivityHistoryResponse is the response from the character ActivityHistory endpoint.
type ActivityHistoryResponse struct {
	*BaseResponse
	Response *struct {
		Data *struct {
			Activities []*HistoricalActivity `json:"activities"`
		} `json:"data"`
	} `json:"Response"`
}

func (r *ActivityHistoryResponse) hasResult() bool { return r.Response != nil }

// HistoricalActivity is a single entry of a character's activity history.
type HistoricalActivity struct {
	Period          time.Time `json:"period"`
	ActivityDetails *struct {
		ReferenceID              uint   `json:"referenceId"`
		InstanceID               string `json:"instanceId"`
		Mode                     int    `json:"mode"`
		ActivityTypeHashOverride uint   `json:"activityTypeHashOverride"`
	} `json:"activityDetails"`
	Values map[string]*struct {
		Basic *struct {
			Value        float64 `json:"value"`
			DisplayValue string  `json:"displayValue"`
		} `json:"basic"`
	} `json:"values"`
}

func (a *HistoricalActivity) reference() models.ActivityReference {
	if a.ActivityDetails == nil {
		return models.ActivityReference{}
	}

	return models.NewActivityReference(a.ActivityDetails.ReferenceID,
		a.ActivityDetails.ActivityTypeHashOverride)
}

// completions is the "completed" stat of the activity; a missing stat counts as zero.
func (a *HistoricalActivity) completions() float64 {
	completed := a.Values["completed"]
	if completed == nil || completed.Basic == nil {
		return 0
	}

	return completed.Basic.Value
}

// GetCurrentActivity returns the activity the account is currently playing, found by scanning
// the characters in order for the first non-zero current activity hash. nil means the account
// is not in an activity or the summary could not be loaded.
func (c *Client) GetCurrentActivity(ctx context.Context, id models.DestinyID) *models.ActivityReference {

	response := AccountSummaryResponse{}
	if !c.execute(ctx, NewAccountSummaryRequest(id), &response) {
		return nil
	}

	data := response.Response.Data
	if data == nil || len(data.Characters) == 0 {
		return nil
	}

	for _, char := range data.Characters {
		if char == nil || char.CharacterBase == nil {
			continue
		}

		// 0 means the character is not in an activity
		if char.CharacterBase.CurrentActivityHash != 0 {
			ref := models.NewActivityReference(char.CharacterBase.CurrentActivityHash, 0)
			return &ref
		}
	}

	return nil
}

// GetLastCompletedActivity returns the most recent entry of the character's unfiltered
// activity history.
func (c *Client) GetLastCompletedActivity(ctx context.Context, character *models.Character) *models.ActivityReference {
	if character == nil {
		return nil
	}

	response := ActivityHistoryResponse{}
	request := NewActivityHistoryRequest(character.Owner, character.CharacterID, ModeNone)
	if !c.execute(ctx, request, &response) {
		return nil
	}

	data := response.Response.Data
	if data == nil || len(data.Activities) == 0 || data.Activities[0] == nil {
		return nil
	}

	ref := data.Activities[0].reference()
	return &ref
}

// GetRaidCompletions lists the raids in the character's history that were completed, in
// history order. ok is false when the history could not be loaded at all; an empty result
// with ok true means the history loaded but holds no raid activities.
func (c *Client) GetRaidCompletions(ctx context.Context, character *models.Character) (raids []models.ActivityReference, ok bool) {
	if character == nil {
		return nil, false
	}

	response := ActivityHistoryResponse{}
	request := NewActivityHistoryRequest(character.Owner, character.CharacterID, ModeRaid)
	if !c.execute(ctx, request, &response) {
		return nil, false
	}

	data := response.Response.Data
	if data == nil {
		return nil, false
	}

	raids = make([]models.ActivityReference, 0, len(data.Activities))
	for _, activity := range data.Activities {
		if activity == nil || activity.ActivityDetails == nil || activity.completions() == 0 {
			continue
		}
		raids = append(raids, activity.reference())
	}

	return raids, true
}
