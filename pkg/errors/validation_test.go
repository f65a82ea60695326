package errors

import (
	"math"
	"testing"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"positive", 0.4, false},
		{"tiny positive", 1e-9, false},

		{"zero", 0, true},
		{"negative", -1, true},
		{"NaN", math.NaN(), true},
		{"+Inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive(ErrCodeInvalidRadius, "radius", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidRadius) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidRadius)
			}
		})
	}
}

func TestValidateClosed(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"lower bound", 0, false},
		{"upper bound", 1, false},
		{"inside", 0.6, false},

		{"below", -0.01, true},
		{"above", 1.5, true},
		{"NaN", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClosed(ErrCodeInvalidDensity, "density", tt.input, 0, 1)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateClosed(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateResolution(t *testing.T) {
	tests := []struct {
		input   int
		wantErr bool
	}{
		{2, false},
		{300, false},
		{MaxResolution, false},
		{1, true},
		{0, true},
		{-5, true},
		{MaxResolution + 1, true},
	}

	for _, tt := range tests {
		err := ValidateResolution(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateResolution(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
