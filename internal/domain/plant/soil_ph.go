package plant

import (
	"database/sql/driver"
	"fmt"
)

// SoilPH is the preferred soil acidity of a plant.
type SoilPH string

// Stored soil pH names.
const (
	SoilPHVeryAcid     SoilPH = "very acid"
	SoilPHAcid         SoilPH = "acid"
	SoilPHNeutral      SoilPH = "neutral"
	SoilPHAlkaline     SoilPH = "alkaline"
	SoilPHVeryAlkaline SoilPH = "very alkaline"
)

// Valid reports whether s is one of the stored names.
func (s SoilPH) Valid() bool {
	switch s {
	case SoilPHVeryAcid, SoilPHAcid, SoilPHNeutral, SoilPHAlkaline, SoilPHVeryAlkaline:
		return true
	}
	return false
}

// ParseSoilPH converts a stored name.
func ParseSoilPH(s string) (SoilPH, error) {
	ph := SoilPH(s)
	if !ph.Valid() {
		return "", fmt.Errorf("invalid soil pH: %q", s)
	}
	return ph, nil
}

// Scan implements sql.Scanner. PostgreSQL returns the enum as text or bytes.
func (s *SoilPH) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("scan soil pH: unsupported type %T", src)
	}
	ph, err := ParseSoilPH(raw)
	if err != nil {
		return err
	}
	*s = ph
	return nil
}

// Value implements driver.Valuer.
func (s SoilPH) Value() (driver.Value, error) {
	return string(s), nil
}
