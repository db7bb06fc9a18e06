package model

// Go models that match portfolio.schema.json, the document accepted by the
// import endpoint and the offline renderer.

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"portfolio-builder/internal/domain"
)

type User struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

type Profile struct {
	Location     string   `json:"location,omitempty"`
	LinkedInURL  string   `json:"linkedin_url,omitempty"`
	GitHubURL    string   `json:"github_url,omitempty"`
	PortfolioURL string   `json:"portfolio_url,omitempty"`
	Summary      string   `json:"summary,omitempty"`
	Skills       []string `json:"skills,omitempty"`
}

type Education struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date,omitempty"`
	Current      bool   `json:"current,omitempty"`
	Grade        string `json:"grade,omitempty"`
	Description  string `json:"description,omitempty"`
}

type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	Current     bool   `json:"current,omitempty"`
	Description string `json:"description,omitempty"`
}

type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// PortfolioDocument is the JSON shape of a complete user portfolio.
type PortfolioDocument struct {
	User       User         `json:"user"`
	Profile    *Profile     `json:"profile,omitempty"`
	Education  []Education  `json:"education,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Projects   []Project    `json:"projects,omitempty"`
}

// Accepted date layouts; a month without a day means the first.
var dateLayouts = []string{"2006-01-02", "2006-01"}

func parseDate(field, raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s: invalid date %q", ErrInvalidDocument, field, raw)
}

func parseOptionalDate(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(field, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ToPortfolio converts the document into domain models owned by userID.
// Entry IDs are freshly generated; project creation times follow document
// order so that stored order is preserved.
func (d *PortfolioDocument) ToPortfolio(userID uuid.UUID, now time.Time) (*domain.Portfolio, error) {
	p := &domain.Portfolio{
		User: domain.User{
			ID:        userID,
			FirstName: strings.TrimSpace(d.User.FirstName),
			LastName:  strings.TrimSpace(d.User.LastName),
			Email:     strings.TrimSpace(d.User.Email),
			Phone:     strings.TrimSpace(d.User.Phone),
		},
	}

	if d.Profile != nil {
		p.Profile = &domain.Profile{
			UserID:       userID,
			Location:     d.Profile.Location,
			LinkedInURL:  d.Profile.LinkedInURL,
			GitHubURL:    d.Profile.GitHubURL,
			PortfolioURL: d.Profile.PortfolioURL,
			Summary:      d.Profile.Summary,
			Skills:       joinList(d.Profile.Skills),
		}
	}

	for i, e := range d.Education {
		start, err := parseDate(fmt.Sprintf("education[%d].start_date", i), e.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := parseOptionalDate(fmt.Sprintf("education[%d].end_date", i), e.EndDate)
		if err != nil {
			return nil, err
		}
		p.Educations = append(p.Educations, domain.Education{
			ID:                uuid.New(),
			UserID:            userID,
			Institution:       e.Institution,
			Degree:            e.Degree,
			FieldOfStudy:      e.FieldOfStudy,
			StartDate:         start,
			EndDate:           end,
			CurrentlyStudying: e.Current,
			Grade:             e.Grade,
			Description:       e.Description,
		})
	}

	for i, e := range d.Experience {
		start, err := parseDate(fmt.Sprintf("experience[%d].start_date", i), e.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := parseOptionalDate(fmt.Sprintf("experience[%d].end_date", i), e.EndDate)
		if err != nil {
			return nil, err
		}
		p.Experiences = append(p.Experiences, domain.Experience{
			ID:               uuid.New(),
			UserID:           userID,
			Company:          e.Company,
			Position:         e.Position,
			Location:         e.Location,
			StartDate:        start,
			EndDate:          end,
			CurrentlyWorking: e.Current,
			Description:      e.Description,
		})
	}

	for i, pr := range d.Projects {
		p.Projects = append(p.Projects, domain.Project{
			ID:           uuid.New(),
			UserID:       userID,
			Title:        pr.Title,
			Description:  pr.Description,
			Technologies: joinList(pr.Technologies),
			ProjectURL:   pr.URL,
			CreatedAt:    now.Add(time.Duration(i) * time.Microsecond),
		})
	}
	return p, nil
}

func joinList(items []string) string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, ", ")
}
