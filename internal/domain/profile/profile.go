package profile

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type Education struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Profile is the aggregate root: one per user, embedded lists are persisted
// and mutated only as part of the profile itself.
type Profile struct {
	UserID         uuid.UUID    `json:"user"`
	Handle         string       `json:"handle"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Status         string       `json:"status"`
	GithubUsername string       `json:"githubusername,omitempty"`
	Skills         []string     `json:"skills"`
	Social         SocialLinks  `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Patch carries the profile upsert payload. Required fields are plain
// strings; optional fields are pointers so an absent key leaves the stored
// value untouched. An empty string counts as absent, matching the presence
// rule the clients rely on.
type Patch struct {
	Handle         string `validate:"notblank,min=2,max=40"`
	Status         string `validate:"notblank"`
	Skills         string `validate:"notblank"`
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	GithubUsername *string
	Youtube        *string
	Twitter        *string
	Facebook       *string
	Linkedin       *string
	Instagram      *string
}

// ExperienceInput is the payload for adding an experience entry.
type ExperienceInput struct {
	Title       string     `validate:"notblank"`
	Company     string     `validate:"notblank"`
	Location    string     `validate:"-"`
	From        time.Time  `validate:"required"`
	To          *time.Time `validate:"-"`
	Current     bool       `validate:"-"`
	Description string     `validate:"-"`
}

// EducationInput is the payload for adding an education entry.
type EducationInput struct {
	School       string     `validate:"notblank"`
	Degree       string     `validate:"notblank"`
	FieldOfStudy string     `validate:"notblank"`
	From         time.Time  `validate:"required"`
	To           *time.Time `validate:"-"`
	Current      bool       `validate:"-"`
	Description  string     `validate:"-"`
}

// SplitSkills splits the comma-delimited skills input. Elements are kept
// as-is, including empty or whitespace-only ones.
func SplitSkills(s string) []string {
	return strings.Split(s, ",")
}

func applyOptional(dst *string, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}

// Apply copies the set fields of the patch onto the profile.
func (p *Profile) Apply(patch Patch) {
	p.Handle = patch.Handle
	p.Status = patch.Status
	p.Skills = SplitSkills(patch.Skills)

	applyOptional(&p.Company, patch.Company)
	applyOptional(&p.Website, patch.Website)
	applyOptional(&p.Location, patch.Location)
	applyOptional(&p.Bio, patch.Bio)
	applyOptional(&p.GithubUsername, patch.GithubUsername)

	applyOptional(&p.Social.Youtube, patch.Youtube)
	applyOptional(&p.Social.Twitter, patch.Twitter)
	applyOptional(&p.Social.Facebook, patch.Facebook)
	applyOptional(&p.Social.Linkedin, patch.Linkedin)
	applyOptional(&p.Social.Instagram, patch.Instagram)
}

// AddExperience prepends, newest-first.
func (p *Profile) AddExperience(exp Experience) {
	p.Experience = append([]Experience{exp}, p.Experience...)
}

func (p *Profile) AddEducation(edu Education) {
	p.Education = append([]Education{edu}, p.Education...)
}

// RemoveExperience removes the entry with the given id, preserving the
// order of the remaining entries. Returns false when no entry matches.
func (p *Profile) RemoveExperience(id uuid.UUID) bool {
	for i, exp := range p.Experience {
		if exp.ID == id {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Profile) RemoveEducation(id uuid.UUID) bool {
	for i, edu := range p.Education {
		if edu.ID == id {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return true
		}
	}
	return false
}

type Repository interface {
	// FindByUserID returns apperror.ErrNotFound when no profile references
	// the user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	FindByHandle(ctx context.Context, handle string) (*Profile, error)
	FindAll(ctx context.Context) ([]*Profile, error)
	// Create fails with a conflict error when the handle is already taken.
	Create(ctx context.Context, p *Profile) error
	// Update replaces the whole aggregate, embedded lists included.
	Update(ctx context.Context, p *Profile) error
	// DeleteByUserID is idempotent: deleting an absent profile is not an error.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
