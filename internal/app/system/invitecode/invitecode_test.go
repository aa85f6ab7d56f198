package invitecode_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/system/invitecode"
)

func TestNew(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := invitecode.New()
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if len(code) != invitecode.Length {
			t.Fatalf("code %q has length %d, want %d", code, len(code), invitecode.Length)
		}
		for _, c := range code {
			if !strings.ContainsRune(invitecode.Alphabet, c) {
				t.Fatalf("code %q contains %q outside the alphabet", code, c)
			}
		}
		seen[code] = true
	}
	// 200 draws from 36^8 should essentially never collide.
	if len(seen) < 199 {
		t.Errorf("got %d distinct codes out of 200", len(seen))
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"ABCD1234", true},
		{"ZZZZZZZZ", true},
		{"abcd1234", false}, // lowercase
		{"ABCD123", false},  // short
		{"ABCD12345", false},
		{"ABCD-234", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := invitecode.Valid(tt.code); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
