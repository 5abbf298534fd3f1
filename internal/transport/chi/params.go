package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/plantdex/internal/domain"
	dommap "github.com/kailas-cloud/plantdex/internal/domain/gardenmap"
	"github.com/kailas-cloud/plantdex/internal/domain/page"
	domplanting "github.com/kailas-cloud/plantdex/internal/domain/planting"
)

// PaginationConfig bounds page sizes accepted at the HTTP boundary.
type PaginationConfig struct {
	DefaultPerPage int
	MaxPerPage     int
}

// pageParameters binds page and per_page. An omitted field takes its default
// (page 1, configured per_page); a present one is validated, never clamped.
func (s *Server) pageParameters(r *http.Request) (page.Parameters, error) {
	var pageNum, perPage *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &pageNum); err != nil {
		return page.Parameters{}, domain.NewInvalidInput("page", "must be an integer")
	}
	if err := runtime.BindQueryParameter("form", true, false, "per_page", q, &perPage); err != nil {
		return page.Parameters{}, domain.NewInvalidInput("per_page", "must be an integer")
	}
	if pageNum == nil && perPage == nil {
		return page.DefaultParameters(s.pagination.DefaultPerPage), nil
	}
	p, pp := page.MinPage, s.pagination.DefaultPerPage
	if pageNum != nil {
		p = *pageNum
	}
	if perPage != nil {
		pp = *perPage
	}
	return page.NewParameters(p, pp, s.pagination.MaxPerPage)
}

// optionalString binds an optional string query parameter.
func optionalString(r *http.Request, name string) (*string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return nil, domain.NewInvalidInput(name, "must be a string")
	}
	return v, nil
}

// optionalID binds an optional positive integer query parameter.
func optionalID(r *http.Request, name string) (*int64, error) {
	var v *int64
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return nil, domain.NewInvalidInput(name, "must be an integer")
	}
	return v, nil
}

// pathID binds a positive integer path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return 0, domain.NewInvalidInput(name, "must be an integer")
	}
	if id <= 0 {
		return 0, domain.NewInvalidInput(name, "must be positive")
	}
	return id, nil
}

func plantingSearchParameters(r *http.Request) (domplanting.SearchParameters, error) {
	plantID, err := optionalID(r, "plant_id")
	if err != nil {
		return domplanting.SearchParameters{}, err
	}
	layerID, err := optionalID(r, "layer_id")
	if err != nil {
		return domplanting.SearchParameters{}, err
	}
	return domplanting.SearchParameters{PlantID: plantID, LayerID: layerID}, nil
}

func mapSearchParameters(r *http.Request) (dommap.SearchParameters, error) {
	var params dommap.SearchParameters
	q := r.URL.Query()

	name, err := optionalString(r, "name")
	if err != nil {
		return params, err
	}
	params.Name = name

	if err := runtime.BindQueryParameter("form", true, false, "is_inactive", q, &params.IsInactive); err != nil {
		return params, domain.NewInvalidInput("is_inactive", "must be a boolean")
	}

	privacy, err := optionalString(r, "privacy")
	if err != nil {
		return params, err
	}
	if privacy != nil {
		p, err := dommap.ParsePrivacy(*privacy)
		if err != nil {
			return params, domain.NewInvalidInput("privacy", fmt.Sprintf("unknown value %q", *privacy))
		}
		params.Privacy = &p
	}

	owner, err := optionalString(r, "owner_id")
	if err != nil {
		return params, err
	}
	if owner != nil {
		id, err := uuid.Parse(*owner)
		if err != nil {
			return params, domain.NewInvalidInput("owner_id", "must be a UUID")
		}
		params.OwnerID = &id
	}
	return params, nil
}
