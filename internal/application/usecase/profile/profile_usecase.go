package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/khoahotran/devconnect/internal/domain/profile"
	"github.com/khoahotran/devconnect/pkg/apperror"
)

// ProfileUseCase owns every mutation of the Profile aggregate and its
// embedded Experience/Education collections. Whole-profile deletion is not
// exposed here; only the account deletion coordinator removes profiles.
type ProfileUseCase struct {
	profileRepo profile.Repository
}

func NewProfileUseCase(repo profile.Repository) *ProfileUseCase {
	return &ProfileUseCase{profileRepo: repo}
}

var tracer = otel.Tracer("profile_usecase")

func (uc *ProfileUseCase) GetOwn(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("Profile", userID.String())
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}
	return p, nil
}

func (uc *ProfileUseCase) GetByUser(ctx context.Context, targetUserID uuid.UUID) (*profile.Profile, error) {
	return uc.GetOwn(ctx, targetUserID)
}

func (uc *ProfileUseCase) ListAll(ctx context.Context) ([]*profile.Profile, error) {
	profiles, err := uc.profileRepo.ListAll(ctx)
	if err != nil {
		return nil, apperror.NewInternal("failed to list profiles", err)
	}
	return profiles, nil
}

// UpsertInput fields are presence-by-content: an empty string is treated as
// absent, matching the API contract where omitted fields stay unset.
type UpsertInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string
	Bio            string
	GithubUsername string
	Youtube        string
	Facebook       string
	Twitter        string
	Instagram      string
	Linkedin       string
}

func (in UpsertInput) validate() error {
	var violations []apperror.FieldViolation
	if in.Status == "" {
		violations = append(violations, apperror.FieldViolation{Msg: "Status should not be empty", Param: "status"})
	}
	if in.Skills == "" {
		violations = append(violations, apperror.FieldViolation{Msg: "Skills should not be empty", Param: "skills"})
	}
	if len(violations) > 0 {
		return apperror.NewValidation(violations...)
	}
	return nil
}

// Upsert creates the caller's profile or applies the present input fields to
// it. Absent top-level fields keep their stored values; the social links
// sub-object is rebuilt from the input as a whole. Embedded
// Experience/Education collections survive untouched. Idempotent under
// identical input.
func (uc *ProfileUseCase) Upsert(ctx context.Context, userID uuid.UUID, input UpsertInput) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "Upsert")
	defer span.End()

	if err := input.validate(); err != nil {
		return nil, err
	}

	p := &profile.Profile{
		ID:             uuid.New(),
		UserID:         userID,
		Experience:     []profile.Experience{},
		Education:      []profile.Education{},
		Skills:         profile.ParseSkills(input.Skills),
		Company:        input.Company,
		Website:        input.Website,
		Location:       input.Location,
		Status:         input.Status,
		Bio:            input.Bio,
		GithubUsername: input.GithubUsername,
		Social: profile.Social{
			Youtube:   input.Youtube,
			Facebook:  input.Facebook,
			Twitter:   input.Twitter,
			Instagram: input.Instagram,
			Linkedin:  input.Linkedin,
		},
		UpdatedAt: time.Now().UTC(),
	}

	existing, err := uc.profileRepo.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		p.ID = existing.ID
		p.Experience = existing.Experience
		p.Education = existing.Education
		// absent fields keep their stored values
		if input.Company == "" {
			p.Company = existing.Company
		}
		if input.Website == "" {
			p.Website = existing.Website
		}
		if input.Location == "" {
			p.Location = existing.Location
		}
		if input.Bio == "" {
			p.Bio = existing.Bio
		}
		if input.GithubUsername == "" {
			p.GithubUsername = existing.GithubUsername
		}
	case errors.Is(err, profile.ErrProfileNotFound):
		// first upsert creates the document
	default:
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to upsert profile", err)
	}
	return p, nil
}

// ExperienceInput carries the fields of one experience item. Current is a
// pointer so a missing flag can be told apart from an explicit false.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     *bool
	Description string
}

func (in ExperienceInput) validate() error {
	var violations []apperror.FieldViolation
	if in.Title == "" {
		violations = append(violations, apperror.FieldViolation{Msg: "Title is required", Param: "title"})
	}
	if in.Company == "" {
		violations = append(violations, apperror.FieldViolation{Msg: "Company is required", Param: "company"})
	}
	if in.From.IsZero() {
		violations = append(violations, apperror.FieldViolation{Msg: "From date is required", Param: "from"})
	}
	if in.Current == nil {
		violations = append(violations, apperror.FieldViolation{Msg: "Current is required", Param: "current"})
	}
	if len(violations) > 0 {
		return apperror.NewValidation(violations...)
	}
	return nil
}

func (uc *ProfileUseCase) AddExperience(ctx context.Context, userID uuid.UUID, input ExperienceInput) (*profile.Profile, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	p, err := uc.GetOwn(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.AddExperience(profile.Experience{
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        input.From,
		To:          input.To,
		Current:     *input.Current,
		Description: input.Description,
	})
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to persist profile", err)
	}
	return p, nil
}

func (uc *ProfileUseCase) RemoveExperience(ctx context.Context, userID, expID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.GetOwn(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveExperience(expID); err != nil {
		return nil, apperror.NewNotFound("Experience", expID.String())
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to persist profile", err)
	}
	return p, nil
}

type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      *bool
	Description  string
}

func (in EducationInput) validate() error {
	var violations []apperror.FieldViolation
	if in.School == "" {
		violations = append(violations, apperror.FieldViolation{Msg: "School is required", Param: "school"})
	}
	if in.Degree == "" {
		violations = append(violations, apperror.FieldViolation{Msg: "Degree is required", Param: "degree"})
	}
	if in.FieldOfStudy == "" {
		violations = append(violations, apperror.FieldViolation{Msg: "Fieldofstudy is required", Param: "fieldofstudy"})
	}
	if in.From.IsZero() {
		violations = append(violations, apperror.FieldViolation{Msg: "From date is required", Param: "from"})
	}
	if in.Current == nil {
		violations = append(violations, apperror.FieldViolation{Msg: "Current is required", Param: "current"})
	}
	if len(violations) > 0 {
		return apperror.NewValidation(violations...)
	}
	return nil
}

func (uc *ProfileUseCase) AddEducation(ctx context.Context, userID uuid.UUID, input EducationInput) (*profile.Profile, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	p, err := uc.GetOwn(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.AddEducation(profile.Education{
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         input.From,
		To:           input.To,
		Current:      *input.Current,
		Description:  input.Description,
	})
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to persist profile", err)
	}
	return p, nil
}

func (uc *ProfileUseCase) RemoveEducation(ctx context.Context, userID, eduID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.GetOwn(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveEducation(eduID); err != nil {
		return nil, apperror.NewNotFound("Education", eduID.String())
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to persist profile", err)
	}
	return p, nil
}
