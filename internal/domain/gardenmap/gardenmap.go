// Package gardenmap holds the garden map aggregate.
package gardenmap

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/kailas-cloud/plantdex/internal/domain"
)

// Limits for map fields.
const (
	MaxNameLength = 120
	MinZoomFactor = 1
	MaxZoomFactor = 100
)

// Privacy controls who can see a map.
type Privacy string

// Privacy levels.
const (
	PrivacyPublic    Privacy = "public"
	PrivacyProtected Privacy = "protected"
	PrivacyPrivate   Privacy = "private"
)

// Valid reports whether p is a known level.
func (p Privacy) Valid() bool {
	return p == PrivacyPublic || p == PrivacyProtected || p == PrivacyPrivate
}

// ParsePrivacy converts a stored name.
func ParsePrivacy(s string) (Privacy, error) {
	p := Privacy(s)
	if !p.Valid() {
		return "", domain.NewInvalidInput("privacy", fmt.Sprintf("unknown value %q", s))
	}
	return p, nil
}

// Scan implements sql.Scanner.
func (p *Privacy) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("scan privacy: unsupported type %T", src)
	}
	parsed, err := ParsePrivacy(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Value implements driver.Valuer.
func (p Privacy) Value() (driver.Value, error) { return string(p), nil }

// Map is a garden map row.
type Map struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	IsInactive  bool      `json:"is_inactive"`
	Privacy     Privacy   `json:"privacy"`
	Description *string   `json:"description,omitempty"`
	ZoomFactor  int       `json:"zoom_factor"`
}

// Table and column names.
const (
	Table          = "maps"
	ColID          = "id"
	ColName        = "name"
	ColOwnerID     = "owner_id"
	ColCreatedAt   = "created_at"
	ColIsInactive  = "is_inactive"
	ColPrivacy     = "privacy"
	ColDescription = "description"
	ColZoomFactor  = "zoom_factor"
)

// SearchParameters narrows Find. Nil fields do not filter.
type SearchParameters struct {
	Name       *string
	IsInactive *bool
	Privacy    *Privacy
	OwnerID    *uuid.UUID
}

// Draft is a map that has not been stored yet.
type Draft struct {
	Name        string    `json:"name"`
	OwnerID     uuid.UUID `json:"owner_id"`
	IsInactive  bool      `json:"is_inactive"`
	Privacy     Privacy   `json:"privacy"`
	Description *string   `json:"description,omitempty"`
	ZoomFactor  int       `json:"zoom_factor"`
}

// New validates a draft. Name is trimmed, 1-120 runes. Zoom factor: 1-100.
// An empty privacy defaults to private.
func New(d Draft) (Draft, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return Draft{}, domain.NewInvalidInput("name", "is required")
	}
	if utf8.RuneCountInString(d.Name) > MaxNameLength {
		return Draft{}, domain.NewInvalidInput("name",
			"too long (max "+strconv.Itoa(MaxNameLength)+" characters)")
	}
	if d.OwnerID == uuid.Nil {
		return Draft{}, domain.NewInvalidInput("owner_id", "is required")
	}
	if d.Privacy == "" {
		d.Privacy = PrivacyPrivate
	}
	if !d.Privacy.Valid() {
		return Draft{}, domain.NewInvalidInput("privacy", fmt.Sprintf("unknown value %q", d.Privacy))
	}
	if d.ZoomFactor < MinZoomFactor || d.ZoomFactor > MaxZoomFactor {
		return Draft{}, domain.NewInvalidInput("zoom_factor", "must be between 1 and 100")
	}
	return d, nil
}
