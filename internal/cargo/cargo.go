// Package cargo computes inventory lot volumes, letting ships and
// stations enforce cargo_capacity_m3 against a mixed hold of ore,
// material, and component lots.
package cargo

import (
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/simstate"
)

// defaultDensity is used when an ore lot's constituent elements aren't
// found in content (shouldn't happen with well-formed content, but keeps
// volume math total rather than panicking).
const defaultDensity = 5000.0

func elementDensity(c *content.GameContent, element string) float32 {
	if def, ok := c.ElementByID(element); ok && def.DensityKgPerM3 > 0 {
		return def.DensityKgPerM3
	}
	return defaultDensity
}

// ItemVolumeM3 returns the cargo volume one inventory lot occupies.
func ItemVolumeM3(item simstate.InventoryItem, c *content.GameContent) float32 {
	switch item.Kind {
	case simstate.ItemOre:
		var density float32
		for element, fraction := range item.Composition {
			density += fraction * elementDensity(c, element)
		}
		if density <= 0 {
			density = defaultDensity
		}
		return item.Kg / density
	case simstate.ItemMaterial:
		return item.Kg / elementDensity(c, item.Element)
	case simstate.ItemComponent:
		if def, ok := c.ComponentDefs[item.ComponentID]; ok {
			return def.VolumeM3 * float32(item.Count)
		}
		return 0
	default:
		return 0
	}
}

// TotalVolumeM3 sums ItemVolumeM3 across an inventory.
func TotalVolumeM3(inventory []simstate.InventoryItem, c *content.GameContent) float32 {
	var total float32
	for _, item := range inventory {
		total += ItemVolumeM3(item, c)
	}
	return total
}
