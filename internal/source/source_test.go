package source

import (
	"testing"

	"github.com/pfrederiksen/tourwatch/internal/config"
)

func TestNewFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.SourceConfig
		wantName string
		wantErr  bool
	}{
		{
			name:     "html source",
			cfg:      config.SourceConfig{Kind: config.SourceHTML, URL: "https://example.com/tour"},
			wantName: "html",
		},
		{
			name:     "api source",
			cfg:      config.SourceConfig{Kind: config.SourceAPI, URL: "https://api.example.com/events", APIKey: "k"},
			wantName: "api",
		},
		{
			name:    "unknown kind",
			cfg:     config.SourceConfig{Kind: "rss", URL: "https://example.com/feed"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewFromConfig(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFromConfig failed: %v", err)
			}
			if src.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", src.Name(), tt.wantName)
			}
		})
	}
}
