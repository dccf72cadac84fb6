package service

import (
	"strings"
	"testing"
)

func TestValidateNarrationText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		maxLen  int
		wantErr bool
	}{
		{name: "valid", text: "A man walks into a kitchen.", maxLen: 4096, wantErr: false},
		{name: "empty", text: "", maxLen: 4096, wantErr: true},
		{name: "whitespace only", text: "   \n\t ", maxLen: 4096, wantErr: true},
		{name: "at limit", text: strings.Repeat("a", 4096), maxLen: 4096, wantErr: false},
		{name: "over limit", text: strings.Repeat("a", 4097), maxLen: 4096, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateNarrationText(tt.text, tt.maxLen)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateNarrationText() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
