package logger

import "testing"

func TestShouldLog(t *testing.T) {
	tests := []struct {
		name        string
		loggerLevel string
		msgLevel    string
		want        bool
	}{
		{"debug logger passes debug", "debug", "debug", true},
		{"info logger filters debug", "info", "debug", false},
		{"info logger passes warn", "info", "warn", true},
		{"error logger filters warn", "error", "warn", false},
		{"error logger passes error", "error", "error", true},
		{"unknown level defaults to info", "bogus", "debug", false},
		{"unknown level passes info", "bogus", "info", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.loggerLevel).(*implLogger)
			if got := l.shouldLog(tt.msgLevel); got != tt.want {
				t.Errorf("shouldLog(%q) with level %q = %v, want %v",
					tt.msgLevel, tt.loggerLevel, got, tt.want)
			}
		})
	}
}
