package plantdex

import (
	dommap "github.com/kailas-cloud/plantdex/internal/domain/gardenmap"
	"github.com/kailas-cloud/plantdex/internal/domain/page"
	domplant "github.com/kailas-cloud/plantdex/internal/domain/plant"
	domplanting "github.com/kailas-cloud/plantdex/internal/domain/planting"
	"github.com/kailas-cloud/plantdex/internal/domain/search"
)

// Plant is a catalog entry.
type Plant = domplant.Plant

// SoilPH is the soil acidity a plant prefers.
type SoilPH = domplant.SoilPH

// ScoredPlant pairs a plant with its similarity rank.
type ScoredPlant = search.Scored[domplant.Plant]

// PlantPage is one page of find results.
type PlantPage = page.Page[domplant.Plant]

// ScoredPlantPage is one page of search results, best rank first.
type ScoredPlantPage = page.Page[search.Scored[domplant.Plant]]

// Planting places a plant on a map layer.
type Planting = domplanting.Planting

// PlantingDraft is the input for creating a planting.
type PlantingDraft = domplanting.Draft

// PlantingPatch is a partial planting update. Nil fields are unchanged.
type PlantingPatch = domplanting.Patch

// PlantingFilter narrows Plantings().Find. Nil fields match everything.
type PlantingFilter = domplanting.SearchParameters

// Map is a garden map.
type Map = dommap.Map

// MapDraft is the input for creating a map.
type MapDraft = dommap.Draft

// MapFilter narrows Maps().Find. Set fields are combined with AND.
type MapFilter = dommap.SearchParameters

// MapPage is one page of maps.
type MapPage = page.Page[dommap.Map]

// Privacy controls who can see a map.
type Privacy = dommap.Privacy

// Privacy values.
const (
	PrivacyPublic    = dommap.PrivacyPublic
	PrivacyProtected = dommap.PrivacyProtected
	PrivacyPrivate   = dommap.PrivacyPrivate
)
