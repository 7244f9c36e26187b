package core

import "testing"

func TestParseAmountLenient(t *testing.T) {
	cases := []struct {
		in  string
		out float64
	}{
		{"12.34", 12.34},
		{"12,34", 12.34},
		{" 2.50 ", 2.5},
		{"0", 0},
		{"", 0},     // blank contributes zero
		{"abc", 0},  // non-numeric contributes zero
		{"-5", 0},   // negative treated as absent
		{"1.2.3", 0},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); !almostEqual(got, tc.out) {
			t.Fatalf("%q: expected %v, got %v", tc.in, tc.out, got)
		}
	}
}

func TestParseDecimalStrict(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"300", 300, true},
		{"99,90", 99.9, true},
		{"0", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-1", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimal(tc.in)
		if tc.ok {
			if err != nil || !almostEqual(got, tc.out) {
				t.Fatalf("%q: expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestRoundDisplay(t *testing.T) {
	cases := []struct{ in, out float64 }{
		{90.006, 90.01},
		{90.004, 90.0},
		{123.456, 123.46},
		{-0.006, -0.01},
	}
	for _, tc := range cases {
		if got := RoundDisplay(tc.in); got != tc.out {
			t.Fatalf("%v: expected %v, got %v", tc.in, tc.out, got)
		}
	}
}
