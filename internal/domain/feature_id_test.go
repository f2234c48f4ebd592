package domain

import (
	"strings"
	"testing"
)

func TestNewFeatureID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid simple", value: "auth", wantErr: false},
		{name: "valid with hyphens", value: "user-auth-api", wantErr: false},
		{name: "valid with numbers", value: "oauth2-login", wantErr: false},
		{name: "consecutive hyphens accepted", value: "user--auth", wantErr: false},
		{name: "trailing hyphen accepted", value: "auth-", wantErr: false},
		{name: "empty", value: "", wantErr: true},
		{name: "uppercase", value: "Auth", wantErr: true},
		{name: "starts with number", value: "2fa", wantErr: true},
		{name: "starts with hyphen", value: "-auth", wantErr: true},
		{name: "underscore", value: "user_auth", wantErr: true},
		{name: "too long", value: strings.Repeat("a", 101), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewFeatureID(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewFeatureID(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err == nil && id.String() != tt.value {
				t.Errorf("expected ID %q, got %q", tt.value, id.String())
			}
		})
	}
}
