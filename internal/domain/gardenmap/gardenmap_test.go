package gardenmap

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/kailas-cloud/plantdex/internal/domain"
)

func validDraft() Draft {
	return Draft{
		Name:       "  Backyard ",
		OwnerID:    uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		ZoomFactor: 10,
	}
}

func TestNew_Normalizes(t *testing.T) {
	d, err := New(validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Name != "Backyard" {
		t.Errorf("name = %q, want trimmed", d.Name)
	}
	if d.Privacy != PrivacyPrivate {
		t.Errorf("privacy = %q, want private", d.Privacy)
	}
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
	}{
		{"blank name", func(d *Draft) { d.Name = "   " }},
		{"long name", func(d *Draft) { d.Name = strings.Repeat("x", MaxNameLength+1) }},
		{"nil owner", func(d *Draft) { d.OwnerID = uuid.Nil }},
		{"bad privacy", func(d *Draft) { d.Privacy = "secret" }},
		{"zoom zero", func(d *Draft) { d.ZoomFactor = 0 }},
		{"zoom too high", func(d *Draft) { d.ZoomFactor = 101 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(&d)
			if _, err := New(d); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestPrivacy_Scan(t *testing.T) {
	var p Privacy
	if err := p.Scan([]byte("protected")); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if p != PrivacyProtected {
		t.Errorf("privacy = %q", p)
	}
	if err := p.Scan("hidden"); err == nil {
		t.Error("expected error for unknown privacy")
	}
}
