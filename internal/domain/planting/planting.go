// Package planting holds plant placements on a map layer.
package planting

import (
	"math"

	"github.com/kailas-cloud/plantdex/internal/domain"
)

// Planting is a plant placed on a plants layer.
type Planting struct {
	ID       int64   `json:"id"`
	LayerID  int64   `json:"layer_id"`
	PlantID  int64   `json:"plant_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	ScaleX   float64 `json:"scale_x"`
	ScaleY   float64 `json:"scale_y"`
}

// Table and column names.
const (
	Table       = "plantings"
	ColID       = "id"
	ColLayerID  = "layer_id"
	ColPlantID  = "plant_id"
	ColX        = "x"
	ColY        = "y"
	ColWidth    = "width"
	ColHeight   = "height"
	ColRotation = "rotation"
	ColScaleX   = "scale_x"
	ColScaleY   = "scale_y"
)

// SearchParameters narrows Find. Nil fields do not filter.
type SearchParameters struct {
	PlantID *int64
	LayerID *int64
}

// Draft is a planting that has not been stored yet.
type Draft struct {
	LayerID  int64   `json:"layer_id"`
	PlantID  int64   `json:"plant_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	ScaleX   float64 `json:"scale_x"`
	ScaleY   float64 `json:"scale_y"`
}

// New validates a draft: positive ids, positive size, non-zero finite scale.
func New(d Draft) (Draft, error) {
	if d.LayerID <= 0 {
		return Draft{}, domain.NewInvalidInput("layer_id", "must be positive")
	}
	if d.PlantID <= 0 {
		return Draft{}, domain.NewInvalidInput("plant_id", "must be positive")
	}
	for _, c := range []struct {
		field string
		v     float64
	}{{"x", d.X}, {"y", d.Y}, {"rotation", d.Rotation}} {
		if !finite(c.v) {
			return Draft{}, domain.NewInvalidInput(c.field, "must be a finite number")
		}
	}
	if err := validateSize("width", d.Width); err != nil {
		return Draft{}, err
	}
	if err := validateSize("height", d.Height); err != nil {
		return Draft{}, err
	}
	if err := validateScale("scale_x", d.ScaleX); err != nil {
		return Draft{}, err
	}
	if err := validateScale("scale_y", d.ScaleY); err != nil {
		return Draft{}, err
	}
	return d, nil
}

// Patch is a partial planting update. Nil fields are unchanged.
type Patch struct {
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	ScaleX   *float64 `json:"scale_x,omitempty"`
	ScaleY   *float64 `json:"scale_y,omitempty"`
}

// NewPatch validates a patch. At least one field must be provided.
func NewPatch(p Patch) (Patch, error) {
	if p.IsEmpty() {
		return Patch{}, domain.NewInvalidInput("patch", "at least one field must be provided")
	}
	for _, c := range []struct {
		field string
		v     *float64
	}{{"x", p.X}, {"y", p.Y}, {"rotation", p.Rotation}} {
		if c.v != nil && !finite(*c.v) {
			return Patch{}, domain.NewInvalidInput(c.field, "must be a finite number")
		}
	}
	if p.Width != nil {
		if err := validateSize("width", *p.Width); err != nil {
			return Patch{}, err
		}
	}
	if p.Height != nil {
		if err := validateSize("height", *p.Height); err != nil {
			return Patch{}, err
		}
	}
	if p.ScaleX != nil {
		if err := validateScale("scale_x", *p.ScaleX); err != nil {
			return Patch{}, err
		}
	}
	if p.ScaleY != nil {
		if err := validateScale("scale_y", *p.ScaleY); err != nil {
			return Patch{}, err
		}
	}
	return p, nil
}

// IsEmpty reports whether no field is set.
func (p Patch) IsEmpty() bool {
	return p.X == nil && p.Y == nil && p.Width == nil && p.Height == nil &&
		p.Rotation == nil && p.ScaleX == nil && p.ScaleY == nil
}

// Columns returns the set fields as column/value pairs in a fixed order.
func (p Patch) Columns() ([]string, []any) {
	var cols []string
	var vals []any
	add := func(col string, v *float64) {
		if v != nil {
			cols = append(cols, col)
			vals = append(vals, *v)
		}
	}
	add(ColX, p.X)
	add(ColY, p.Y)
	add(ColWidth, p.Width)
	add(ColHeight, p.Height)
	add(ColRotation, p.Rotation)
	add(ColScaleX, p.ScaleX)
	add(ColScaleY, p.ScaleY)
	return cols, vals
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func validateSize(field string, v float64) error {
	if !finite(v) || v <= 0 {
		return domain.NewInvalidInput(field, "must be positive")
	}
	return nil
}

func validateScale(field string, v float64) error {
	if !finite(v) || v == 0 {
		return domain.NewInvalidInput(field, "must be non-zero")
	}
	return nil
}
