package http

import (
	"strings"
	"time"

	profileUC "github.com/khoahotran/devconnect/internal/application/usecase/profile"
	"github.com/khoahotran/devconnect/pkg/apperror"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) validate() error {
	var violations []apperror.FieldViolation
	if !strings.Contains(r.Email, "@") {
		violations = append(violations, apperror.FieldViolation{Msg: "Please type into a valid email", Param: "email"})
	}
	if r.Password == "" {
		violations = append(violations, apperror.FieldViolation{Msg: "Please enter the password", Param: "password"})
	}
	if len(violations) > 0 {
		return apperror.NewValidation(violations...)
	}
	return nil
}

type upsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Youtube        string `json:"youtube"`
	Facebook       string `json:"facebook"`
	Twitter        string `json:"twitter"`
	Instagram      string `json:"instagram"`
	Linkedin       string `json:"linkedin"`
}

func (r upsertProfileRequest) toInput() profileUC.UpsertInput {
	return profileUC.UpsertInput{
		Company:        r.Company,
		Website:        r.Website,
		Location:       r.Location,
		Status:         r.Status,
		Skills:         r.Skills,
		Bio:            r.Bio,
		GithubUsername: r.GithubUsername,
		Youtube:        r.Youtube,
		Facebook:       r.Facebook,
		Twitter:        r.Twitter,
		Instagram:      r.Instagram,
		Linkedin:       r.Linkedin,
	}
}

type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     *bool  `json:"current"`
	Description string `json:"description"`
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      *bool  `json:"current"`
	Description  string `json:"description"`
}

type createPostRequest struct {
	Text string `json:"text"`
}

type addCommentRequest struct {
	Text string `json:"text"`
}

// parseDate accepts both plain dates and full RFC 3339 timestamps; an empty
// string yields the zero time so required-field validation can catch it.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r experienceRequest) toInput() (profileUC.ExperienceInput, error) {
	from, err := parseDate(r.From)
	if err != nil {
		return profileUC.ExperienceInput{}, apperror.NewValidation(apperror.FieldViolation{Msg: "From date is invalid", Param: "from"})
	}
	to, err := parseOptionalDate(r.To)
	if err != nil {
		return profileUC.ExperienceInput{}, apperror.NewValidation(apperror.FieldViolation{Msg: "To date is invalid", Param: "to"})
	}
	return profileUC.ExperienceInput{
		Title:       r.Title,
		Company:     r.Company,
		Location:    r.Location,
		From:        from,
		To:          to,
		Current:     r.Current,
		Description: r.Description,
	}, nil
}

func (r educationRequest) toInput() (profileUC.EducationInput, error) {
	from, err := parseDate(r.From)
	if err != nil {
		return profileUC.EducationInput{}, apperror.NewValidation(apperror.FieldViolation{Msg: "From date is invalid", Param: "from"})
	}
	to, err := parseOptionalDate(r.To)
	if err != nil {
		return profileUC.EducationInput{}, apperror.NewValidation(apperror.FieldViolation{Msg: "To date is invalid", Param: "to"})
	}
	return profileUC.EducationInput{
		School:       r.School,
		Degree:       r.Degree,
		FieldOfStudy: r.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      r.Current,
		Description:  r.Description,
	}, nil
}
