package domain

import (
	"reflect"
	"testing"
	"time"
)

func date(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestUser_FullName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user User
		want string
	}{
		{"both parts", User{FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{"first only", User{FirstName: "Ada"}, "Ada"},
		{"last only", User{LastName: " Lovelace "}, "Lovelace"},
		{"empty", User{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.user.FullName(); got != tt.want {
				t.Errorf("FullName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProfile_SkillsList(t *testing.T) {
	t.Parallel()

	p := &Profile{Skills: " Go, ,PostgreSQL ,  Docker,"}
	want := []string{"Go", "PostgreSQL", "Docker"}
	if got := p.SkillsList(); !reflect.DeepEqual(got, want) {
		t.Errorf("SkillsList() = %v, want %v", got, want)
	}

	var nilProfile *Profile
	if got := nilProfile.SkillsList(); got != nil {
		t.Errorf("nil profile SkillsList() = %v, want nil", got)
	}
}

func TestEducation_DegreeDisplay(t *testing.T) {
	t.Parallel()

	if got := (Education{Degree: DegreeMaster}).DegreeDisplay(); got != "Master's Degree" {
		t.Errorf("DegreeDisplay() = %q", got)
	}
	if got := (Education{Degree: "diploma"}).DegreeDisplay(); got != "diploma" {
		t.Errorf("unknown DegreeDisplay() = %q, want raw code", got)
	}
}

func TestPeriod(t *testing.T) {
	t.Parallel()

	end := date(2022, time.March)
	tests := []struct {
		name string
		exp  Experience
		want string
	}{
		{"closed range", Experience{StartDate: date(2019, time.June), EndDate: &end}, "June 2019 - March 2022"},
		{"no end date", Experience{StartDate: date(2019, time.June)}, "June 2019 - Present"},
		{"currently working wins", Experience{StartDate: date(2019, time.June), EndDate: &end, CurrentlyWorking: true}, "June 2019 - Present"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.exp.Period(); got != tt.want {
				t.Errorf("Period() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPortfolio_SortByStartDate(t *testing.T) {
	t.Parallel()

	p := &Portfolio{
		Experiences: []Experience{
			{Company: "old", StartDate: date(2015, time.January)},
			{Company: "new", StartDate: date(2021, time.January)},
			{Company: "mid", StartDate: date(2018, time.January)},
		},
		Educations: []Education{
			{Institution: "school", StartDate: date(2008, time.September)},
			{Institution: "uni", StartDate: date(2012, time.September)},
		},
		Projects: []Project{{Title: "b"}, {Title: "a"}},
	}
	p.SortByStartDate()

	var companies []string
	for _, e := range p.Experiences {
		companies = append(companies, e.Company)
	}
	if want := []string{"new", "mid", "old"}; !reflect.DeepEqual(companies, want) {
		t.Errorf("experience order = %v, want %v", companies, want)
	}
	if p.Educations[0].Institution != "uni" {
		t.Errorf("first education = %q, want uni", p.Educations[0].Institution)
	}
	if p.Projects[0].Title != "b" {
		t.Error("projects must keep stored order")
	}
}
