package models

import "sort"

// ItemList is a collection of Item instances.
type ItemList []*Item

// ItemFilter returns true for the items that should be kept by FilterItems.
type ItemFilter func(*Item) bool

// LightSort orders an ItemList by the power of each item.
type LightSort ItemList

func (items LightSort) Len() int      { return len(items) }
func (items LightSort) Swap(i, j int) { items[i], items[j] = items[j], items[i] }
func (items LightSort) Less(i, j int) bool {
	return items[i].Power() < items[j].Power()
}

// FilterItems returns the items matching every filter, in their original order. The receiver
// is not modified.
func (items ItemList) FilterItems(filters ...ItemFilter) ItemList {
	result := make(ItemList, 0, len(items))

	for _, item := range items {
		if item == nil {
			continue
		}

		allMatch := true
		for _, filter := range filters {
			if !filter(item) {
				allMatch = false
				break
			}
		}

		if allMatch {
			result = append(result, item)
		}
	}

	return result
}

// SortedByPower returns a copy of the list ordered from the highest power to the lowest.
func (items ItemList) SortedByPower() ItemList {
	sorted := make(ItemList, 0, len(items))
	sorted = append(sorted, items.FilterItems()...)
	sort.Stable(sort.Reverse(LightSort(sorted)))

	return sorted
}

// EquippedFilter keeps the items currently equipped on the character.
func EquippedFilter(item *Item) bool {
	return item.IsEquipped
}

// ItemHashFilter keeps the items with the given hash.
func ItemHashFilter(hash uint) ItemFilter {
	return func(item *Item) bool {
		return item.ItemHash == hash
	}
}

// Equipped lists the equipped items of the inventory.
func (inv *Inventory) Equipped() ItemList {
	if inv == nil {
		return nil
	}

	return ItemList(inv.Items).FilterItems(EquippedFilter)
}

// EquippedPower is the average power of the equipped items that carry a primary stat,
// truncated to an integer. Zero is returned when nothing qualifies.
func (inv *Inventory) EquippedPower() int {
	total, count := 0, 0
	for _, item := range inv.Equipped() {
		if item.PrimaryStat == nil {
			continue
		}
		total += item.Power()
		count++
	}

	if count == 0 {
		return 0
	}

	return total / count
}
