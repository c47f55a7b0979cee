package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrExperienceNotFound = errors.New("experience not found")
	ErrEducationNotFound  = errors.New("education not found")
)

// Social holds the optional social links. Absent links stay empty; an upsert
// rebuilds the whole object from the fields present in the input.
type Social struct {
	Youtube   string `json:"youtube,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
}

// Experience is an embedded item owned exclusively by its Profile. A nil To
// together with Current=true means the position is ongoing.
type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type Education struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// Profile is the aggregate root: one per user, owning its embedded
// Experience and Education collections outright.
type Profile struct {
	ID             uuid.UUID    `json:"id"`
	UserID         uuid.UUID    `json:"user_id"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Status         string       `json:"status"`
	Skills         []string     `json:"skills"`
	Bio            string       `json:"bio,omitempty"`
	GithubUsername string       `json:"githubusername,omitempty"`
	Social         Social       `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// ParseSkills splits a comma-delimited skills string into the ordered skill
// set, trimming whitespace and dropping empty entries.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// AddExperience prepends the item so the newest entry comes first, assigning
// a fresh identifier when none is set.
func (p *Profile) AddExperience(exp Experience) Experience {
	if exp.ID == uuid.Nil {
		exp.ID = uuid.New()
	}
	p.Experience = append([]Experience{exp}, p.Experience...)
	return exp
}

func (p *Profile) RemoveExperience(id uuid.UUID) error {
	for i, exp := range p.Experience {
		if exp.ID == id {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return nil
		}
	}
	return ErrExperienceNotFound
}

func (p *Profile) AddEducation(edu Education) Education {
	if edu.ID == uuid.Nil {
		edu.ID = uuid.New()
	}
	p.Education = append([]Education{edu}, p.Education...)
	return edu
}

func (p *Profile) RemoveEducation(id uuid.UUID) error {
	for i, edu := range p.Education {
		if edu.ID == id {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return nil
		}
	}
	return ErrEducationNotFound
}

type Repository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	ListAll(ctx context.Context) ([]*Profile, error)
	// Upsert persists the whole aggregate, embedded collections included,
	// keyed on the owning user.
	Upsert(ctx context.Context, p *Profile) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
