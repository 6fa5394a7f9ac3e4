package simstate

import "github.com/VioletSpaceCadet/space-simulation-sub001/internal/simid"

// MergeMaterialLot merges a refined-material lot into inventory: if an
// existing Material item with the same element and exact-match quality is
// found, its kg is incremented; otherwise a new lot is appended. Exact
// float equality on quality is intentional (spec.md's composition math
// calls for bit-exact lot merging, not fuzzy matching).
func MergeMaterialLot(inventory []InventoryItem, element string, kg float32, quality float32) []InventoryItem {
	for i := range inventory {
		item := &inventory[i]
		if item.Kind == ItemMaterial && item.Element == element && item.Quality == quality {
			item.Kg += kg
			return inventory
		}
	}
	return append(inventory, InventoryItem{
		Kind:    ItemMaterial,
		Element: element,
		Kg:      kg,
		Quality: quality,
	})
}

// MergeComponentLot merges a manufactured-component lot into inventory: an
// existing Component item with the same component id and exact-match
// quality has its count incremented; otherwise a new lot is appended.
func MergeComponentLot(inventory []InventoryItem, componentID simid.ComponentID, count uint32, quality float32) []InventoryItem {
	for i := range inventory {
		item := &inventory[i]
		if item.Kind == ItemComponent && item.ComponentID == componentID && item.Quality == quality {
			item.Count += count
			return inventory
		}
	}
	return append(inventory, InventoryItem{
		Kind:        ItemComponent,
		ComponentID: componentID,
		Count:       count,
		Quality:     quality,
	})
}

// TotalOreKg sums the kg of every Ore lot in inventory.
func TotalOreKg(inventory []InventoryItem) float32 {
	var total float32
	for _, item := range inventory {
		if item.Kind == ItemOre {
			total += item.Kg
		}
	}
	return total
}

// MaterialKg returns the total kg held of element at exactly quality.
func MaterialKg(inventory []InventoryItem, element string, quality float32) float32 {
	var total float32
	for _, item := range inventory {
		if item.Kind == ItemMaterial && item.Element == element && item.Quality == quality {
			total += item.Kg
		}
	}
	return total
}
