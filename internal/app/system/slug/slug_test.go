package slug_test

import (
	"testing"

	"github.com/dalemusser/clubhub/internal/app/system/slug"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "KL Badminton Club", "kl-badminton-club"},
		{"punctuation collapses", "KL Badminton Club!!", "kl-badminton-club"},
		{"symbols between words", "Foo & Bar FC", "foo-bar-fc"},
		{"leading and trailing junk", "  --Ace United-- ", "ace-united"},
		{"digits kept", "Kelab Renang Selangor 2024", "kelab-renang-selangor-2024"},
		{"runs of separators", "a___b...c", "a-b-c"},
		{"already clean", "padel-one", "padel-one"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slug.Make(tt.in); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWithSuffix(t *testing.T) {
	if got := slug.WithSuffix("KL Badminton Club!!", 1); got != "kl-badminton-club-1" {
		t.Errorf("WithSuffix = %q, want kl-badminton-club-1", got)
	}
	if got := slug.WithSuffix("Ace United", 12); got != "ace-united-12" {
		t.Errorf("WithSuffix = %q, want ace-united-12", got)
	}
}
