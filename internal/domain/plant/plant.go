// Package plant holds the plant reference entity.
package plant

// Plant is a row of the plants table.
type Plant struct {
	ID           int64    `json:"id"`
	UniqueName   string   `json:"unique_name"`
	CommonNameDE []string `json:"common_name_de"`
	CommonNameEN []string `json:"common_name_en"`
	EdibleUsesEN *string  `json:"edible_uses_en,omitempty"`
	SoilPH       *SoilPH  `json:"soil_ph,omitempty"`
}

// Table and column names.
const (
	Table           = "plants"
	ColID           = "id"
	ColUniqueName   = "unique_name"
	ColCommonNameDE = "common_name_de"
	ColCommonNameEN = "common_name_en"
	ColEdibleUsesEN = "edible_uses_en"
	ColSoilPH       = "soil_ph"
)
