package faker

import (
	"errors"
	"testing"
)

func TestFloatRange_Forms(t *testing.T) {
	tests := []struct {
		name       string
		args       Args
		lo, hi     float64
		wantDigits int
	}{
		{"defaults", nil, 1, 1000, 2},
		{"lone max", Args{50}, 1, 50, 2},
		{"positional", Args{0.5, 2.5, 3}, 0.5, 2.5, 3},
		{"options", Args{map[string]any{"min": 10, "max": 20.5, "fractionDigits": 1}}, 10, 20.5, 1},
		{"options min only", Args{map[string]any{"min": 5}}, 5, 1000, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, digits, err := tt.args.FloatRange(1, 1000, 2)
			if err != nil {
				t.Fatalf("FloatRange() error = %v", err)
			}
			if lo != tt.lo || hi != tt.hi || digits != tt.wantDigits {
				t.Errorf("FloatRange() = (%v, %v, %d), want (%v, %v, %d)", lo, hi, digits, tt.lo, tt.hi, tt.wantDigits)
			}
		})
	}
}

func TestFloatRange_Errors(t *testing.T) {
	tests := []struct {
		name string
		args Args
	}{
		{"min not a number", Args{map[string]any{"min": "low"}}},
		{"max not a number", Args{map[string]any{"max": true}}},
		{"min above max", Args{map[string]any{"min": 9, "max": 1}}},
		{"digits out of range", Args{1, 2, 16}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := tt.args.FloatRange(1, 1000, 2)
			var argErr *ArgumentError
			if !errors.As(err, &argErr) {
				t.Fatalf("FloatRange() error = %v, want *ArgumentError", err)
			}
		})
	}
}
