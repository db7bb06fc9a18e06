package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MonthYear is the date layout used on generated documents ("January 2006").
const MonthYear = "January 2006"

// Present is shown instead of an end date for ongoing entries.
const Present = "Present"

type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
}

// FullName joins the non-empty name parts with a single space.
func (u User) FullName() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{u.FirstName, u.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

type Profile struct {
	UserID       uuid.UUID `json:"user_id"`
	Location     string    `json:"location,omitempty"`
	LinkedInURL  string    `json:"linkedin_url,omitempty"`
	GitHubURL    string    `json:"github_url,omitempty"`
	PortfolioURL string    `json:"portfolio_url,omitempty"`
	Summary      string    `json:"summary,omitempty"`
	// Skills is stored as a comma-separated list.
	Skills string `json:"skills,omitempty"`
}

// SkillsList returns the trimmed, non-empty skills in stored order.
func (p *Profile) SkillsList() []string {
	if p == nil {
		return nil
	}
	return splitList(p.Skills)
}

// HasLinks reports whether any of the social/portfolio URLs is set.
func (p *Profile) HasLinks() bool {
	return p != nil && (p.LinkedInURL != "" || p.GitHubURL != "" || p.PortfolioURL != "")
}

// Degree codes accepted for Education.Degree.
const (
	DegreeHighSchool  = "high_school"
	DegreeAssociate   = "associate"
	DegreeBachelor    = "bachelor"
	DegreeMaster      = "master"
	DegreeDoctorate   = "doctorate"
	DegreeCertificate = "certificate"
	DegreeOther       = "other"
)

var degreeLabels = map[string]string{
	DegreeHighSchool:  "High School",
	DegreeAssociate:   "Associate Degree",
	DegreeBachelor:    "Bachelor's Degree",
	DegreeMaster:      "Master's Degree",
	DegreeDoctorate:   "Doctorate (PhD)",
	DegreeCertificate: "Certificate",
	DegreeOther:       "Other",
}

// DegreeCodes lists the accepted degree codes.
func DegreeCodes() []string {
	return []string{DegreeHighSchool, DegreeAssociate, DegreeBachelor, DegreeMaster, DegreeDoctorate, DegreeCertificate, DegreeOther}
}

type Education struct {
	ID                uuid.UUID  `json:"id"`
	UserID            uuid.UUID  `json:"user_id"`
	Institution       string     `json:"institution"`
	Degree            string     `json:"degree"`
	FieldOfStudy      string     `json:"field_of_study"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           *time.Time `json:"end_date,omitempty"`
	CurrentlyStudying bool       `json:"currently_studying"`
	Grade             string     `json:"grade,omitempty"`
	Description       string     `json:"description,omitempty"`
}

// DegreeDisplay returns the human label of the degree code; unknown codes
// are returned unchanged.
func (e Education) DegreeDisplay() string {
	if label, ok := degreeLabels[e.Degree]; ok {
		return label
	}
	return e.Degree
}

// Period formats the education date range.
func (e Education) Period() string {
	return formatPeriod(e.StartDate, e.EndDate, e.CurrentlyStudying)
}

type Experience struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	Company          string     `json:"company"`
	Position         string     `json:"position"`
	Location         string     `json:"location,omitempty"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	CurrentlyWorking bool       `json:"currently_working"`
	Description      string     `json:"description,omitempty"`
}

// Period formats the experience date range.
func (e Experience) Period() string {
	return formatPeriod(e.StartDate, e.EndDate, e.CurrentlyWorking)
}

type Project struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	// Technologies is stored as a comma-separated list.
	Technologies string    `json:"technologies,omitempty"`
	ProjectURL   string    `json:"project_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// TechnologiesList returns the trimmed, non-empty technologies in stored order.
func (p Project) TechnologiesList() []string {
	return splitList(p.Technologies)
}

// Portfolio aggregates everything the document builders need for one user.
// Profile is nil when the user never filled one in.
type Portfolio struct {
	User        User         `json:"user"`
	Profile     *Profile     `json:"profile,omitempty"`
	Educations  []Education  `json:"educations"`
	Experiences []Experience `json:"experiences"`
	Projects    []Project    `json:"projects"`
}

// SortByStartDate orders educations and experiences newest first. Projects
// keep their stored order.
func (p *Portfolio) SortByStartDate() {
	sort.SliceStable(p.Educations, func(i, j int) bool {
		return p.Educations[i].StartDate.After(p.Educations[j].StartDate)
	})
	sort.SliceStable(p.Experiences, func(i, j int) bool {
		return p.Experiences[i].StartDate.After(p.Experiences[j].StartDate)
	})
}

func formatPeriod(start time.Time, end *time.Time, ongoing bool) string {
	until := Present
	if end != nil && !end.IsZero() && !ongoing {
		until = end.Format(MonthYear)
	}
	return start.Format(MonthYear) + " - " + until
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
