package normalize_test

import (
	"testing"

	"github.com/dalemusser/clubhub/internal/app/system/normalize"
)

func TestEmail(t *testing.T) {
	if got := normalize.Email("  Aisyah@Example.COM "); got != "aisyah@example.com" {
		t.Errorf("Email = %q", got)
	}
}

func TestName(t *testing.T) {
	if got := normalize.Name("  Nur   Aisyah  "); got != "Nur Aisyah" {
		t.Errorf("Name = %q", got)
	}
}

func TestPhone(t *testing.T) {
	if got := normalize.Phone("+60 12-345 6789"); got != "+60123456789" {
		t.Errorf("Phone = %q", got)
	}
}

func TestValidMalaysianPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+60123456789", true},
		{"0123456789", true},
		{"01112345678", true},
		{"012-345 6789", true}, // normalized before matching
		{"+65 9123 4567", false},
		{"0153456789", false}, // 015 is not a mobile prefix
		{"12345", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := normalize.ValidMalaysianPhone(tt.phone); got != tt.want {
			t.Errorf("ValidMalaysianPhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}
