package bungie

import (
	"context"

	"github.com/rking788/warmind-advisors/models"
)

// InventorySummaryResponse is the response from the character Inventory Summary endpoint.
type InventorySummaryResponse struct {
	*BaseResponse
	Response *struct {
		Data *struct {
			Items []*models.Item `json:"items"`
		} `json:"data"`
	} `json:"Response"`
}

func (r *InventorySummaryResponse) hasResult() bool { return r.Response != nil }

// GetInventory loads the items carried by one character. An inventory is never returned
// empty; nil means no items were available.
func (c *Client) GetInventory(ctx context.Context, id models.DestinyID, characterID string) *models.Inventory {

	response := InventorySummaryResponse{}
	if !c.execute(ctx, NewInventorySummaryRequest(id, characterID), &response) {
		return nil
	}

	data := response.Response.Data
	if data == nil {
		return nil
	}

	items := make([]*models.Item, 0, len(data.Items))
	for _, item := range data.Items {
		if item != nil {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil
	}

	return &models.Inventory{
		Owner:       id,
		CharacterID: characterID,
		Items:       items,
	}
}
