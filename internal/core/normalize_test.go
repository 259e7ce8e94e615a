package core

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"empty", "", ""},
		{"punctuation and spaces", "V-8 Engine", "v8engine"},
		{"already canonical", "v8engine", "v8engine"},
		{"part number", "  Spark-Plug #12 ", "sparkplug12"},
		{"whole float", 350.0, "350"},
		{"fractional float", 3.5, "35"},
		{"negative float", -2.25, "225"},
		{"NaN", math.NaN(), ""},
		{"bool", true, "true"},
		{"non-ascii letters dropped", "Ölfilter", "lfilter"},
		{"int via fallback", 42, "42"},
		{"only symbols", "--/ #", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%#v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []any{"V-8 Engine", "  Spark-Plug #12 ", 3.5, "ÄBC-def"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%#v)) = %q, want %q", in, twice, once)
		}
	}
}
