package repository

import "testing"

func TestCentsRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		in    float64
		cents int64
		out   float64
	}{
		{name: "whole cents survive", in: 19.99, cents: 1999, out: 19.99},
		{name: "half value exact", in: 12.5, cents: 1250, out: 12.5},
		{name: "sub-cent rounded away", in: 10.554, cents: 1055, out: 10.55},
		{name: "zero", in: 0, cents: 0, out: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := toCents(tt.in)
			if c != tt.cents {
				t.Fatalf("toCents(%v) = %d, want %d", tt.in, c, tt.cents)
			}
			if got := fromCents(c); got != tt.out {
				t.Fatalf("fromCents(%d) = %v, want %v", c, got, tt.out)
			}
		})
	}
}

func TestCentsPtr(t *testing.T) {
	if toCentsPtr(nil) != nil || fromCentsPtr(nil) != nil {
		t.Fatal("nil must pass through unchanged")
	}

	v := 7.25
	c := toCentsPtr(&v)
	if c == nil || *c != 725 {
		t.Fatalf("toCentsPtr(7.25) = %v, want 725", c)
	}
	back := fromCentsPtr(c)
	if back == nil || *back != 7.25 {
		t.Fatalf("fromCentsPtr(725) = %v, want 7.25", back)
	}
}
