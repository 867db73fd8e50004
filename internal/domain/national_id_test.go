package domain

import "testing"

func TestValidNationalID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"123456782", true},
		{"3456787", true},    // short ids are zero-padded before the check
		{"123456789", false}, // bad check digit
		{"000000000", true},
		{"12-345678-2", true}, // separators stripped
		{"", false},
		{"12345678901", false}, // too long
		{"12345678a", false},
	}

	for _, tt := range tests {
		if got := ValidNationalID(tt.id); got != tt.valid {
			t.Errorf("ValidNationalID(%q) = %v, want %v", tt.id, got, tt.valid)
		}
	}
}

func TestNormalizeNationalID(t *testing.T) {
	got, ok := NormalizeNationalID("12-345678-2")
	if !ok || got != "123456782" {
		t.Errorf("NormalizeNationalID = %q, %v", got, ok)
	}
	got, ok = NormalizeNationalID("45678")
	if !ok || got != "000045678" {
		t.Errorf("short id: got %q, want 000045678", got)
	}
	if _, ok := NormalizeNationalID("abc"); ok {
		t.Error("letters should not normalize")
	}
}
