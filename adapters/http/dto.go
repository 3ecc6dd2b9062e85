package http

import (
	"time"

	"github.com/khanhvu/devconnect/internal/domain/post"
	"github.com/khanhvu/devconnect/internal/domain/profile"
	profileUC "github.com/khanhvu/devconnect/internal/application/usecase/profile"
)

// Profile DTOs

type UpsertProfileRequest struct {
	Handle         string  `json:"handle"`
	Status         string  `json:"status"`
	Skills         string  `json:"skills"`
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`
	Youtube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	Linkedin       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

func (r *UpsertProfileRequest) ToDomainPatch() profile.Patch {
	return profile.Patch{
		Handle:         r.Handle,
		Status:         r.Status,
		Skills:         r.Skills,
		Company:        r.Company,
		Website:        r.Website,
		Location:       r.Location,
		Bio:            r.Bio,
		GithubUsername: r.GithubUsername,
		Youtube:        r.Youtube,
		Twitter:        r.Twitter,
		Facebook:       r.Facebook,
		Linkedin:       r.Linkedin,
		Instagram:      r.Instagram,
	}
}

type AddExperienceRequest struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

func (r *AddExperienceRequest) ToDomainInput() profile.ExperienceInput {
	return profile.ExperienceInput{
		Title:       r.Title,
		Company:     r.Company,
		Location:    r.Location,
		From:        r.From,
		To:          r.To,
		Current:     r.Current,
		Description: r.Description,
	}
}

type AddEducationRequest struct {
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

func (r *AddEducationRequest) ToDomainInput() profile.EducationInput {
	return profile.EducationInput{
		School:       r.School,
		Degree:       r.Degree,
		FieldOfStudy: r.FieldOfStudy,
		From:         r.From,
		To:           r.To,
		Current:      r.Current,
		Description:  r.Description,
	}
}

type OwnerDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type ProfileDTO struct {
	UserID         string               `json:"user"`
	Owner          *OwnerDTO            `json:"owner,omitempty"`
	Handle         string               `json:"handle"`
	Company        string               `json:"company,omitempty"`
	Website        string               `json:"website,omitempty"`
	Location       string               `json:"location,omitempty"`
	Bio            string               `json:"bio,omitempty"`
	Status         string               `json:"status"`
	GithubUsername string               `json:"githubusername,omitempty"`
	Skills         []string             `json:"skills"`
	Social         profile.SocialLinks  `json:"social"`
	Experience     []profile.Experience `json:"experience"`
	Education      []profile.Education  `json:"education"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	return ProfileDTO{
		UserID:         p.UserID.String(),
		Handle:         p.Handle,
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Bio:            p.Bio,
		Status:         p.Status,
		GithubUsername: p.GithubUsername,
		Skills:         p.Skills,
		Social:         p.Social,
		Experience:     p.Experience,
		Education:      p.Education,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ToProfileWithOwnerDTO(pw *profileUC.ProfileWithOwner) ProfileDTO {
	dto := ToProfileDTO(pw.Profile)
	if pw.Owner != nil {
		dto.Owner = &OwnerDTO{
			ID:     pw.Owner.ID.String(),
			Name:   pw.Owner.Name,
			Avatar: pw.Owner.Avatar,
		}
	}
	return dto
}

// Post DTOs

type PostRequest struct {
	Text   string `json:"text"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (r *PostRequest) ToDomainInput() post.Input {
	return post.Input{
		Text:   r.Text,
		Name:   r.Name,
		Avatar: r.Avatar,
	}
}

type LikeDTO struct {
	UserID string `json:"user"`
}

type CommentDTO struct {
	ID     string    `json:"id"`
	UserID string    `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

type PostDTO struct {
	ID       string       `json:"id"`
	UserID   string       `json:"user"`
	Text     string       `json:"text"`
	Name     string       `json:"name"`
	Avatar   string       `json:"avatar"`
	Likes    []LikeDTO    `json:"likes"`
	Comments []CommentDTO `json:"comments"`
	Date     time.Time    `json:"date"`
}

func ToPostDTO(p *post.Post) PostDTO {
	likes := make([]LikeDTO, len(p.Likes))
	for i, l := range p.Likes {
		likes[i] = LikeDTO{UserID: l.UserID.String()}
	}
	comments := make([]CommentDTO, len(p.Comments))
	for i, c := range p.Comments {
		comments[i] = CommentDTO{
			ID:     c.ID.String(),
			UserID: c.UserID.String(),
			Text:   c.Text,
			Name:   c.Name,
			Avatar: c.Avatar,
			Date:   c.Date,
		}
	}
	return PostDTO{
		ID:       p.ID.String(),
		UserID:   p.UserID.String(),
		Text:     p.Text,
		Name:     p.Name,
		Avatar:   p.Avatar,
		Likes:    likes,
		Comments: comments,
		Date:     p.Date,
	}
}

func ToPostDTOs(posts []*post.Post) []PostDTO {
	out := make([]PostDTO, len(posts))
	for i, p := range posts {
		out[i] = ToPostDTO(p)
	}
	return out
}
