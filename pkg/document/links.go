package document

import (
	"net/url"
	"strings"

	"portfolio-builder/internal/domain"

	"golang.org/x/net/publicsuffix"
)

// Link is a profile URL with a short display label.
type Link struct {
	Kind  string
	URL   string
	Label string
}

// ProfileLinks returns the profile's LinkedIn, GitHub and website links in
// that order, skipping empty ones.
func ProfileLinks(p *domain.Profile) []Link {
	if p == nil {
		return nil
	}
	var out []Link
	for _, l := range []Link{
		{Kind: "LinkedIn", URL: p.LinkedInURL},
		{Kind: "GitHub", URL: p.GitHubURL},
		{Kind: "Website", URL: p.PortfolioURL},
	} {
		if l.URL == "" {
			continue
		}
		l.Label = LinkLabel(l.URL)
		out = append(out, l)
	}
	return out
}

// LinkLabel shortens a URL to its registrable domain plus path, e.g.
// "https://www.github.com/ada/" becomes "github.com/ada".
func LinkLabel(raw string) string {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return ""
	}
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Hostname() == "" {
		return raw
	}

	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		host = etld
	}
	return host + strings.TrimRight(parsed.EscapedPath(), "/")
}

// joinLinks renders the "LinkedIn: … | GitHub: … | Website: …" contact line.
func joinLinks(p *domain.Profile) string {
	links := ProfileLinks(p)
	parts := make([]string, len(links))
	for i, l := range links {
		parts[i] = l.Kind + ": " + l.URL
	}
	return strings.Join(parts, " | ")
}
