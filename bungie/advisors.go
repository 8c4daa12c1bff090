package bungie

import (
	"context"

	"github.com/rking788/warmind-advisors/models"
)

// WeeklyAdvisorsResponse is the response from the V2 advisors endpoint. Each featured
// activity has its own shape, only the parts used by GetWeeklyProgram are described here.
type WeeklyAdvisorsResponse struct {
	*BaseResponse
	Response *struct {
		Data *struct {
			Activities *struct {
				Nightfall      *advisorActivity `json:"nightfall"`
				FeaturedRaid   *advisorActivity `json:"weeklyfeaturedraid"`
				ElderChallenge *advisorActivity `json:"elderchallenge"`
				WeeklyCrucible *advisorActivity `json:"weeklycrucible"`
				HeroicStrike   *advisorActivity `json:"heroicstrike"`
			} `json:"activities"`
		} `json:"data"`
	} `json:"Response"`
}

func (r *WeeklyAdvisorsResponse) hasResult() bool { return r.Response != nil }

type advisorActivity struct {
	Display *struct {
		ActivityHash             uint `json:"activityHash"`
		ActivityTypeHashOverride uint `json:"activityTypeHashOverride"`
	} `json:"display"`
	Extended *struct {
		SkullCategories []*skullCategory `json:"skullCategories"`
	} `json:"extended"`
	ActivityTiers []*struct {
		ActivityHash    uint             `json:"activityHash"`
		SkullCategories []*skullCategory `json:"skullCategories"`
	} `json:"activityTiers"`
}

type skullCategory struct {
	Title  string `json:"title"`
	Skulls []*struct {
		DisplayName string `json:"displayName"`
		Description string `json:"description"`
	} `json:"skulls"`
}

// names lazily yields the skull display names of the category. A nil category yields nothing.
func (s *skullCategory) names() models.Modifiers {
	if s == nil {
		return models.NoModifiers()
	}

	skulls := s.Skulls
	return func(yield func(string) bool) {
		for _, skull := range skulls {
			if skull == nil {
				continue
			}
			if !yield(skull.DisplayName) {
				return
			}
		}
	}
}

func firstCategory(categories []*skullCategory) *skullCategory {
	if len(categories) == 0 {
		return nil
	}

	return categories[0]
}

// allCategoryNames concatenates the skull names of every category in order.
func allCategoryNames(categories []*skullCategory) models.Modifiers {
	return func(yield func(string) bool) {
		for _, category := range categories {
			for name := range category.names() {
				if !yield(name) {
					return
				}
			}
		}
	}
}

func (a *advisorActivity) reference() *models.ActivityReference {
	if a == nil || a.Display == nil {
		return nil
	}

	ref := models.NewActivityReference(a.Display.ActivityHash, a.Display.ActivityTypeHashOverride)
	return &ref
}

func (a *advisorActivity) extendedCategories() []*skullCategory {
	if a == nil || a.Extended == nil {
		return nil
	}

	return a.Extended.SkullCategories
}

func (a *advisorActivity) tierCategories() []*skullCategory {
	if a == nil || len(a.ActivityTiers) == 0 || a.ActivityTiers[0] == nil {
		return nil
	}

	return a.ActivityTiers[0].SkullCategories
}

func weeklyActivity(a *advisorActivity, modifiers models.Modifiers) *models.WeeklyActivity {
	ref := a.reference()
	if ref == nil {
		return nil
	}

	return &models.WeeklyActivity{
		Activity:  *ref,
		Modifiers: modifiers,
	}
}

// GetWeeklyProgram loads the featured activities of the current week. nil means the advisor
// data was unavailable; individual slots missing from the response are left nil.
func (c *Client) GetWeeklyProgram(ctx context.Context) *models.WeeklyProgram {

	response := WeeklyAdvisorsResponse{}
	if !c.execute(ctx, NewWeeklyAdvisorsRequest(), &response) {
		return nil
	}

	data := response.Response.Data
	if data == nil || data.Activities == nil {
		return nil
	}

	activities := data.Activities
	return &models.WeeklyProgram{
		Nightfall: weeklyActivity(activities.Nightfall,
			firstCategory(activities.Nightfall.extendedCategories()).names()),
		FeaturedRaid: weeklyActivity(activities.FeaturedRaid,
			firstCategory(activities.FeaturedRaid.tierCategories()).names()),
		ElderChallenge: allCategoryNames(activities.ElderChallenge.extendedCategories()),
		WeeklyCrucible: activities.WeeklyCrucible.reference(),
		HeroicStrike:   firstCategory(activities.HeroicStrike.extendedCategories()).names(),
	}
}
