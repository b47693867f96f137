package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12.34", 1234, false},
		{"12,34", 1234, false},
		{"12.345", 1234, false},
		{"12.346", 1235, false},
		{"100", 10000, false},
		{"0", 0, false},
		{".5", 50, false},
		{"-1", 0, true},
		{"+1", 0, true},
		{"", 0, true},
		{"1.2.3", 0, true},
		{"abc", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseDecimalToCents(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDecimalToCents(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseDecimalToCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	raw, err := json.Marshal(Money{Cents: 1250})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != "12.5" {
		t.Fatalf("marshal = %s, want 12.5", raw)
	}

	var m Money
	if err := json.Unmarshal([]byte("100"), &m); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if m.Cents != 10000 {
		t.Fatalf("cents = %d, want 10000", m.Cents)
	}

	if err := json.Unmarshal([]byte(`"42.75"`), &m); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if m.Cents != 4275 {
		t.Fatalf("cents = %d, want 4275", m.Cents)
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{1234, "12.34"},
		{123450, "1234.50"},
		{-150, "-1.50"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("Money{%d}.String() = %s, want %s", tc.cents, got, tc.want)
		}
	}
}
