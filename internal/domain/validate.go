package domain

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var errEndBeforeStart = validation.NewError("validation_end_before_start", "must not be before the start date")

// Validate checks the user's identity fields.
func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.FirstName, validation.Length(0, 150)),
		validation.Field(&u.LastName, validation.Length(0, 150)),
		validation.Field(&u.Email, validation.Required, is.EmailFormat),
		validation.Field(&u.Phone, validation.Length(0, 20)),
	)
}

// Validate checks that all links are absolute URLs.
func (p Profile) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Location, validation.Length(0, 100)),
		validation.Field(&p.LinkedInURL, is.URL),
		validation.Field(&p.GitHubURL, is.URL),
		validation.Field(&p.PortfolioURL, is.URL),
		validation.Field(&p.Skills, validation.Length(0, 1000)),
	)
}

func (e Education) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Institution, validation.Required, validation.Length(1, 200)),
		validation.Field(&e.Degree, validation.Required, validation.In(stringsToAny(DegreeCodes())...)),
		validation.Field(&e.FieldOfStudy, validation.Required, validation.Length(1, 200)),
		validation.Field(&e.StartDate, validation.Required),
		validation.Field(&e.EndDate, validation.By(notBefore(e.StartDate))),
		validation.Field(&e.Grade, validation.Length(0, 50)),
	)
}

func (e Experience) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Company, validation.Required, validation.Length(1, 200)),
		validation.Field(&e.Position, validation.Required, validation.Length(1, 200)),
		validation.Field(&e.Location, validation.Length(0, 100)),
		validation.Field(&e.StartDate, validation.Required),
		validation.Field(&e.EndDate, validation.By(notBefore(e.StartDate))),
	)
}

func (p Project) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Description, validation.Required),
		validation.Field(&p.ProjectURL, is.URL),
	)
}

// Validate checks the user, the optional profile and every entry.
func (p Portfolio) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.User),
		validation.Field(&p.Profile),
		validation.Field(&p.Educations),
		validation.Field(&p.Experiences),
		validation.Field(&p.Projects),
	)
}

// IsValidationError reports whether err came from model validation rather
// than an internal failure.
func IsValidationError(err error) bool {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return true
	}
	var verr validation.Error
	return errors.As(err, &verr)
}

func notBefore(start time.Time) validation.RuleFunc {
	return func(value interface{}) error {
		end, _ := value.(*time.Time)
		if end == nil || end.IsZero() {
			return nil
		}
		if end.Before(start) {
			return errEndBeforeStart
		}
		return nil
	}
}

func stringsToAny(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
