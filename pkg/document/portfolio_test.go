package document

import (
	"errors"
	"strings"
	"testing"
	"time"

	"portfolio-builder/internal/domain"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func samplePortfolio() *domain.Portfolio {
	end := month(2020, time.June)
	return &domain.Portfolio{
		User: domain.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Phone: "+44 20 1234"},
		Profile: &domain.Profile{
			Location:     "London",
			LinkedInURL:  "https://linkedin.com/in/ada",
			GitHubURL:    "https://www.github.com/ada/",
			Summary:      "Mathematician <and> writer",
			Skills:       "Mathematics, Analysis ,Poetry",
			PortfolioURL: "",
		},
		Educations: []domain.Education{
			{Institution: "Home tutoring", Degree: domain.DegreeOther, FieldOfStudy: "Music", StartDate: month(1825, time.January), EndDate: &end},
			{Institution: "University of London", Degree: domain.DegreeMaster, FieldOfStudy: "Mathematics", StartDate: month(1830, time.January), CurrentlyStudying: true, Grade: "Distinction"},
		},
		Experiences: []domain.Experience{
			{Company: "Babbage & Co", Position: "Analyst", Location: "London", StartDate: month(1842, time.January), EndDate: &end, Description: "- Wrote notes\n- Published algorithm"},
			{Company: "Royal Society", Position: "Correspondent", StartDate: month(1850, time.March), CurrentlyWorking: true},
		},
		Projects: []domain.Project{
			{Title: "Note G", Description: "First published algorithm", Technologies: "Analytical Engine, Punch cards", ProjectURL: "https://example.com/note-g"},
			{Title: "Flyology", Description: "Study of flight"},
		},
	}
}

func TestCreatePortfolioHTML(t *testing.T) {
	t.Parallel()

	got, err := CreatePortfolioHTML(samplePortfolio())
	if err != nil {
		t.Fatalf("CreatePortfolioHTML() error = %v", err)
	}

	for _, want := range []string{
		"<title>Portfolio - Ada Lovelace</title>",
		"<h1>Ada Lovelace</h1>",
		"<p>ada@example.com | &#43;44 20 1234</p>",
		"<p>London</p>",
		"<p>LinkedIn: https://linkedin.com/in/ada | GitHub: https://www.github.com/ada/</p>",
		"<h2>About Me</h2>",
		"Mathematician &lt;and&gt; writer",
		`<ul class="skills-list">`,
		"<li>Analysis</li>",
		"<p class=\"company\">Babbage &amp; Co | London</p>",
		"<p class=\"date-range\">January 1842 - June 2020</p>",
		"<p class=\"date-range\">March 1850 - Present</p>",
		"<h3>Master&#39;s Degree in Mathematics</h3>",
		"<p><strong>Grade:</strong> Distinction</p>",
		"<p><strong>Technologies:</strong> Analytical Engine, Punch cards</p>",
		"<p><strong>URL:</strong> https://example.com/note-g</p>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("portfolio HTML missing %q", want)
		}
	}

	if strings.Contains(got, "Website:") {
		t.Error("empty portfolio URL must not be listed")
	}

	// newest experience and education first, projects in stored order
	assertOrder(t, got, "Correspondent", "Analyst")
	assertOrder(t, got, "University of London", "Home tutoring")
	assertOrder(t, got, "Note G", "Flyology")
	assertOrder(t, got, "<h2>Experience</h2>", "<h2>Education</h2>")
	assertOrder(t, got, "<h2>Education</h2>", "<h2>Projects</h2>")
}

func TestCreatePortfolioHTML_WithoutProfile(t *testing.T) {
	t.Parallel()

	p := &domain.Portfolio{User: domain.User{FirstName: "Grace", Email: "grace@example.com"}}
	got, err := CreatePortfolioHTML(p)
	if err != nil {
		t.Fatalf("CreatePortfolioHTML() error = %v", err)
	}
	for _, absent := range []string{"About Me", "Skills", "<h2>Experience</h2>", "<h2>Education</h2>", "<h2>Projects</h2>", " | "} {
		if strings.Contains(got, absent) {
			t.Errorf("portfolio without data should not contain %q", absent)
		}
	}
	if !strings.Contains(got, "<p>grace@example.com</p>") {
		t.Error("contact line missing")
	}
}

func TestCreatePortfolioHTML_DoesNotReorderInput(t *testing.T) {
	t.Parallel()

	p := samplePortfolio()
	if _, err := CreatePortfolioHTML(p); err != nil {
		t.Fatal(err)
	}
	if p.Experiences[0].Position != "Analyst" {
		t.Error("builder must not mutate the caller's slices")
	}
}

func TestRender_NilPortfolio(t *testing.T) {
	t.Parallel()

	if _, err := CreatePortfolioHTML(nil); !errors.Is(err, ErrNoPortfolio) {
		t.Errorf("CreatePortfolioHTML(nil) error = %v, want ErrNoPortfolio", err)
	}
	if _, err := RenderResumeBody(nil); !errors.Is(err, ErrNoPortfolio) {
		t.Errorf("RenderResumeBody(nil) error = %v, want ErrNoPortfolio", err)
	}
}

func TestRenderResumeBody(t *testing.T) {
	t.Parallel()

	got, err := RenderResumeBody(samplePortfolio())
	if err != nil {
		t.Fatalf("RenderResumeBody() error = %v", err)
	}
	if !IsHTMLContent(got) {
		t.Fatal("resume body must start with a tag so it is not re-escaped")
	}
	for _, want := range []string{
		`<a href="https://www.github.com/ada/">github.com/ada</a>`,
		`<a href="https://linkedin.com/in/ada">linkedin.com/in/ada</a>`,
		"<li>Wrote notes</li>",
		"<li>Published algorithm</li>",
		"<h2>Professional Summary</h2>",
		`<a href="https://example.com/note-g">example.com/note-g</a>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("resume body missing %q", want)
		}
	}

	doc := FormatResumeForPDF("Ada Lovelace", got)
	if !strings.Contains(doc, "<title>Resume</title>") {
		t.Error("generated body should be wrapped as HTML content")
	}
}

func TestDescriptionBullets(t *testing.T) {
	t.Parallel()

	got := descriptionBullets("- one\n\n* two\nthree  ")
	want := []string{"one", "two", "three"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("descriptionBullets() = %v, want %v", got, want)
	}
}

func assertOrder(t *testing.T, s, first, second string) {
	t.Helper()
	i, j := strings.Index(s, first), strings.Index(s, second)
	if i < 0 || j < 0 {
		t.Errorf("missing %q or %q", first, second)
		return
	}
	if i > j {
		t.Errorf("%q should appear before %q", first, second)
	}
}
