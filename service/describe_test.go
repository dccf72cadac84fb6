package service

import "testing"

func TestFallbackDescription(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "Scene at 00:00."},
		{45, "Scene at 00:45."},
		{90, "Scene at 01:30."},
		{3599, "Scene at 59:59."},
	}
	for _, tt := range tests {
		if got := fallbackDescription(tt.seconds); got != tt.want {
			t.Errorf("fallbackDescription(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
