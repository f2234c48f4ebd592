package domain

import "testing"

func TestNewPriority(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "P0", value: "P0", wantErr: false},
		{name: "P1", value: "P1", wantErr: false},
		{name: "P2", value: "P2", wantErr: false},
		{name: "lowercase", value: "p0", wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "unknown", value: "P3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPriority(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewPriority(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestPriorityOutranks(t *testing.T) {
	if !PriorityP0.Outranks(PriorityP1) {
		t.Error("P0 should outrank P1")
	}
	if !PriorityP1.Outranks(PriorityP2) {
		t.Error("P1 should outrank P2")
	}
	if PriorityP0.Outranks(PriorityP0) {
		t.Error("a priority does not outrank itself")
	}
	if Priority("P9").Outranks(PriorityP2) {
		t.Error("unknown priorities rank last")
	}
}
