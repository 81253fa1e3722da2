package dashboard

import (
	"math"
	"testing"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Canceled ", "cancelled"},
		{"cancelled", "cancelled"},
		{"SHIPPED", "shipped"},
		{" Pending", "pending"},
		{"Delivered", "delivered"},
		{"processing", "processing"},
		{"weird-status", "weird-status"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeStatus(tt.in); got != tt.want {
				t.Errorf("NormalizeStatus(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsCanonicalStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "shipped", "delivered", "cancelled"} {
		if !IsCanonicalStatus(s) {
			t.Errorf("IsCanonicalStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"canceled", "Pending", "mystery", ""} {
		if IsCanonicalStatus(s) {
			t.Errorf("IsCanonicalStatus(%q) = true, want false", s)
		}
	}
}

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float passes through", 12.5, 12.5},
		{"int passes through", 7, 7},
		{"plain numeric string", "42.50", 42.5},
		{"currency string", "$1,234.56", 1234.56},
		{"negative string", "-3.5", -3.5},
		{"garbage string", "abc", 0},
		{"empty string", "", 0},
		{"nil", nil, 0},
		{"NaN coerces to zero", math.NaN(), 0},
		{"Inf coerces to zero", math.Inf(1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoerceAmount(tt.in); got != tt.want {
				t.Errorf("CoerceAmount(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
