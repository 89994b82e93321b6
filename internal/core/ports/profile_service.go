package ports

import (
	"context"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
)

// UpsertProfileInput is the create-or-update profile form. Optional fields
// left nil are not touched on an existing profile. Skills is the raw
// comma separated list.
type UpsertProfileInput struct {
	Status         string  `json:"status" validate:"required" msg:"Status is required"`
	Skills         string  `json:"skills" validate:"required" msg:"Skills is required"`
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`
	YouTube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	LinkedIn       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

// ExperienceInput is the add-experience form. Dates are YYYY-MM-DD or RFC 3339.
type ExperienceInput struct {
	Title       string `json:"title"   validate:"required" msg:"Title is required"`
	Company     string `json:"company" validate:"required" msg:"Company is required"`
	Location    string `json:"location"`
	From        string `json:"from"    validate:"required" msg:"From date is required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// EducationInput is the add-education form.
type EducationInput struct {
	School       string `json:"school"       validate:"required" msg:"School is required"`
	Degree       string `json:"degree"       validate:"required" msg:"Degree is required"`
	FieldOfStudy string `json:"fieldofstudy" validate:"required" msg:"Field of study is required"`
	From         string `json:"from"         validate:"required" msg:"From date is required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// UpsertResult reports whether the upsert created the profile.
type UpsertResult struct {
	Profile *domain.Profile
	Created bool
}

type ProfileService interface {
	GetMine(ctx context.Context, userID string) (*domain.Profile, error)
	Upsert(ctx context.Context, userID string, input UpsertProfileInput) (*UpsertResult, error)
	ListAll(ctx context.Context) ([]*domain.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Remove(ctx context.Context, userID string) error

	AddExperience(ctx context.Context, userID string, input ExperienceInput) (*domain.Profile, error)
	RemoveExperience(ctx context.Context, userID, expID string) (*domain.Profile, error)
	AddEducation(ctx context.Context, userID string, input EducationInput) (*domain.Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID string) (*domain.Profile, error)

	GithubRepos(ctx context.Context, username string) ([]domain.GithubRepo, error)
}
