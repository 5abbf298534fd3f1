package main

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/plantdex/internal/config"
)

func TestFlushable(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.CacheConfig
		wantErr string
	}{
		{"disabled", config.CacheConfig{Standalone: true}, "disabled"},
		{"cluster mode", config.CacheConfig{Enabled: true, Addrs: []string{"redis:6379"}}, "standalone"},
		{"standalone", config.CacheConfig{Enabled: true, Addrs: []string{"redis:6379"}, Standalone: true}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := flushable(tc.cfg)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want it to mention %q", err, tc.wantErr)
			}
		})
	}
}
