package document

import (
	"testing"

	"portfolio-builder/internal/domain"
)

func TestLinkLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"https://www.github.com/ada/", "github.com/ada"},
		{"http://linkedin.com/in/ada", "linkedin.com/in/ada"},
		{"blog.ada.co.uk/posts/", "ada.co.uk/posts"},
		{"https://ada.dev", "ada.dev"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			if got := LinkLabel(tt.raw); got != tt.want {
				t.Errorf("LinkLabel(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestProfileLinks(t *testing.T) {
	t.Parallel()

	if got := ProfileLinks(nil); got != nil {
		t.Errorf("ProfileLinks(nil) = %v", got)
	}

	links := ProfileLinks(&domain.Profile{
		GitHubURL:    "https://github.com/ada",
		PortfolioURL: "https://ada.dev/",
	})
	if len(links) != 2 {
		t.Fatalf("got %d links, want 2", len(links))
	}
	if links[0].Kind != "GitHub" || links[1].Kind != "Website" {
		t.Errorf("unexpected order: %+v", links)
	}
	if links[1].Label != "ada.dev" {
		t.Errorf("website label = %q", links[1].Label)
	}
}

func TestJoinLinks(t *testing.T) {
	t.Parallel()

	got := joinLinks(&domain.Profile{
		LinkedInURL:  "https://linkedin.com/in/ada",
		PortfolioURL: "https://ada.dev",
	})
	want := "LinkedIn: https://linkedin.com/in/ada | Website: https://ada.dev"
	if got != want {
		t.Errorf("joinLinks() = %q, want %q", got, want)
	}
}
