package models

import (
	"fmt"
)

//Item represents a single inventory item returned by the character inventory summary endpoint
type Item struct {
	ItemHash    uint   `json:"itemHash"`
	InstanceID  string `json:"itemId"`
	BucketHash  uint   `json:"bucketHash"`
	Quantity    int    `json:"quantity"`
	DamageType  int    `json:"damageType"`
	IsEquipped  bool   `json:"isEquipped"`
	PrimaryStat *struct {
		StatHash     uint `json:"statHash"`
		Value        int  `json:"value"`
		MaximumValue int  `json:"maximumValue"`
	} `json:"primaryStat"`
}

func (i *Item) String() string {
	if i.PrimaryStat != nil {
		return fmt.Sprintf("Item{itemHash: %d, itemID: %s, light:%d, isEquipped: %v, quantity: %d}", i.ItemHash, i.InstanceID, i.PrimaryStat.Value, i.IsEquipped, i.Quantity)
	}

	return fmt.Sprintf("Item{itemHash: %d, itemID: %s, quantity: %d}", i.ItemHash, i.InstanceID, i.Quantity)
}

// Power is a convenience accessor to return the light level for a specific item or zero if it does not apply.
func (i *Item) Power() int {
	if i == nil || i.PrimaryStat == nil {
		return 0
	}

	return i.PrimaryStat.Value
}

// Inventory holds the items carried by one character of one Destiny account.
type Inventory struct {
	Owner       DestinyID
	CharacterID string
	Items       []*Item
}

// XurExoticItem is a single exotic Xur is offering this week.
type XurExoticItem struct {
	ItemHash uint
	IsArmor  bool
}

// IsWeapon is the complement of IsArmor; every equippable exotic is one or the other.
func (x XurExoticItem) IsWeapon() bool { return !x.IsArmor }
