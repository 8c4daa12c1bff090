package bungie

import (
	"context"
	"encoding/json"

	"github.com/rking788/warmind-advisors/models"
)

// XurResponse is the response from the Xur advisor endpoint. When Xur is not visiting the
// Response is an empty object.
type XurResponse struct {
	*BaseResponse
	Response *XurResult `json:"Response"`
}

func (r *XurResponse) hasResult() bool { return r.Response != nil }

// XurResult is the Response body of the Xur advisor.
type XurResult struct {
	Data *struct {
		SaleItemCategories []*XurSaleCategory `json:"saleItemCategories"`
	} `json:"data"`

	// empty is set when the Response object had no keys at all.
	empty bool
	// malformed is set when the Response was not an object of the expected shape.
	malformed bool
}

// XurSaleCategory is one titled group of items Xur is selling.
type XurSaleCategory struct {
	CategoryTitle string `json:"categoryTitle"`
	SaleItems     []*struct {
		Item *struct {
			ItemHash    uint `json:"itemHash"`
			IsEquipment bool `json:"isEquipment"`
			PrimaryStat *struct {
				StatHash uint `json:"statHash"`
				Value    int  `json:"value"`
			} `json:"primaryStat"`
		} `json:"item"`
	} `json:"saleItems"`
}

// UnmarshalJSON decodes the result while remembering whether the object was empty. A
// Response of the wrong shape is marked malformed rather than failing the whole document.
func (x *XurResult) UnmarshalJSON(data []byte) error {
	keys := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &keys); err != nil {
		*x = XurResult{malformed: true}
		return nil
	}

	// alias drops the method set so the default decoding is used
	type alias XurResult
	decoded := alias{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		*x = XurResult{malformed: true}
		return nil
	}

	*x = XurResult(decoded)
	x.empty = len(keys) == 0

	return nil
}

// GetXurVendorStock lists the exotic weapons and armor Xur is selling. An empty list with ok
// true means Xur is not visiting; ok is false when the stock could not be determined.
func (c *Client) GetXurVendorStock(ctx context.Context) (items []models.XurExoticItem, ok bool) {

	response := XurResponse{}
	if !c.execute(ctx, NewXurRequest(), &response) {
		return nil, false
	}

	if response.Response.malformed {
		return nil, false
	}
	if response.Response.empty {
		return []models.XurExoticItem{}, true
	}

	data := response.Response.Data
	if data == nil || data.SaleItemCategories == nil {
		return nil, false
	}

	var exotics *XurSaleCategory
	for _, category := range data.SaleItemCategories {
		if category != nil && category.CategoryTitle == exoticGearCategory {
			exotics = category
			break
		}
	}
	if exotics == nil {
		c.log.Debugf("Xur stock is missing the %s category", exoticGearCategory)
		return nil, false
	}

	items = make([]models.XurExoticItem, 0, len(exotics.SaleItems))
	for _, sale := range exotics.SaleItems {
		// Engrams are not equipment
		if sale == nil || sale.Item == nil || !sale.Item.IsEquipment {
			continue
		}

		isArmor := sale.Item.PrimaryStat != nil && sale.Item.PrimaryStat.StatHash == defenseStatHash
		items = append(items, models.XurExoticItem{
			ItemHash: sale.Item.ItemHash,
			IsArmor:  isArmor,
		})
	}

	return items, true
}
