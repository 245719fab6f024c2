package logging

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{name: "debug", level: "debug"},
		{name: "info", level: "info"},
		{name: "warn", level: "warn"},
		{name: "error", level: "error"},
		{name: "unknown level falls back to info", level: "chatty"},
		{name: "empty level falls back to info", level: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			logger, err := New(tt.level)

			// Assert
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if logger == nil {
				t.Fatal("New() returned nil logger")
			}
			_ = logger.Sync()
		})
	}
}
