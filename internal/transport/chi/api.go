package chi

import (
	"github.com/google/uuid"

	dommap "github.com/kailas-cloud/plantdex/internal/domain/gardenmap"
	domplanting "github.com/kailas-cloud/plantdex/internal/domain/planting"
)

// ErrorCode is a machine-readable error code returned to clients.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeStoreUnavailable ErrorCode = "store_unavailable"
	ErrorCodeQueryFailed      ErrorCode = "query_failed"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// CreatePlantingRequest is the body of POST /api/plantings.
type CreatePlantingRequest struct {
	LayerID  int64    `json:"layer_id"`
	PlantID  int64    `json:"plant_id"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Rotation float64  `json:"rotation"`
	ScaleX   *float64 `json:"scale_x,omitempty"`
	ScaleY   *float64 `json:"scale_y,omitempty"`
}

// Draft converts the request. Omitted scales default to 1.
func (r CreatePlantingRequest) Draft() domplanting.Draft {
	return domplanting.Draft{
		LayerID:  r.LayerID,
		PlantID:  r.PlantID,
		X:        r.X,
		Y:        r.Y,
		Width:    r.Width,
		Height:   r.Height,
		Rotation: r.Rotation,
		ScaleX:   orOne(r.ScaleX),
		ScaleY:   orOne(r.ScaleY),
	}
}

// UpdatePlantingRequest is the body of PATCH /api/plantings/{planting_id}.
type UpdatePlantingRequest = domplanting.Patch

// CreateMapRequest is the body of POST /api/maps.
type CreateMapRequest struct {
	Name        string    `json:"name"`
	OwnerID     uuid.UUID `json:"owner_id"`
	IsInactive  bool      `json:"is_inactive"`
	Privacy     string    `json:"privacy,omitempty"`
	Description *string   `json:"description,omitempty"`
	ZoomFactor  int       `json:"zoom_factor"`
}

// Draft converts the request. Validation happens in the map service.
func (r CreateMapRequest) Draft() dommap.Draft {
	return dommap.Draft{
		Name:        r.Name,
		OwnerID:     r.OwnerID,
		IsInactive:  r.IsInactive,
		Privacy:     dommap.Privacy(r.Privacy),
		Description: r.Description,
		ZoomFactor:  r.ZoomFactor,
	}
}

func orOne(v *float64) float64 {
	if v == nil {
		return 1
	}
	return *v
}
