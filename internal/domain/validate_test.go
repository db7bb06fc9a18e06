package domain

import (
	"errors"
	"testing"
	"time"
)

func validPortfolio() Portfolio {
	end := date(2020, time.June)
	return Portfolio{
		User:    User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		Profile: &Profile{GitHubURL: "https://github.com/ada"},
		Educations: []Education{{
			Institution: "University of London", Degree: DegreeBachelor, FieldOfStudy: "Mathematics",
			StartDate: date(2016, time.September), EndDate: &end,
		}},
		Experiences: []Experience{{Company: "Analytical Engines", Position: "Engineer", StartDate: date(2020, time.July), CurrentlyWorking: true}},
		Projects:    []Project{{Title: "Notes", Description: "Annotated translation", ProjectURL: "https://example.com/notes"}},
	}
}

func TestPortfolio_Validate(t *testing.T) {
	t.Parallel()

	before := date(2010, time.January)
	tests := []struct {
		name    string
		mutate  func(p *Portfolio)
		wantErr bool
	}{
		{"valid", func(p *Portfolio) {}, false},
		{"nil profile is fine", func(p *Portfolio) { p.Profile = nil }, false},
		{"missing email", func(p *Portfolio) { p.User.Email = "" }, true},
		{"malformed email", func(p *Portfolio) { p.User.Email = "not-an-email" }, true},
		{"bad profile url", func(p *Portfolio) { p.Profile.LinkedInURL = "not a url" }, true},
		{"unknown degree", func(p *Portfolio) { p.Educations[0].Degree = "wizard" }, true},
		{"end before start", func(p *Portfolio) { p.Educations[0].EndDate = &before }, true},
		{"experience without company", func(p *Portfolio) { p.Experiences[0].Company = "" }, true},
		{"project without title", func(p *Portfolio) { p.Projects[0].Title = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := validPortfolio()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsValidationError(err) {
				t.Errorf("IsValidationError(%v) = false", err)
			}
		})
	}
}

func TestIsValidationError_Plain(t *testing.T) {
	t.Parallel()

	if IsValidationError(errors.New("boom")) {
		t.Error("plain error reported as validation error")
	}
}
