package post

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Like struct {
	UserID uuid.UUID `json:"user"`
}

type Comment struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

// Input is the payload shared by post creation and commenting.
type Input struct {
	Text   string `validate:"notblank,min=10,max=300"`
	Name   string `validate:"notblank"`
	Avatar string `validate:"notblank"`
}

// Post is the aggregate root. Likes and comments live inside the post and
// are only ever written back as part of it.
type Post struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user"`
	Text     string    `json:"text"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
	Likes    []Like    `json:"likes"`
	Comments []Comment `json:"comments"`
	Date     time.Time `json:"date"`
}

// HasLike reports whether the user already appears in the like set. A like
// is set membership, never a counter.
func (p *Post) HasLike(userID uuid.UUID) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// AddLike prepends, newest-first. Callers must guard with HasLike first.
func (p *Post) AddLike(userID uuid.UUID) {
	p.Likes = append([]Like{{UserID: userID}}, p.Likes...)
}

// RemoveLike removes the first entry for the user. Returns false when the
// user never liked the post.
func (p *Post) RemoveLike(userID uuid.UUID) bool {
	for i, l := range p.Likes {
		if l.UserID == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Post) AddComment(c Comment) {
	p.Comments = append([]Comment{c}, p.Comments...)
}

// RemoveCommentByAuthor removes the first comment written by the user.
// Removal is keyed by author, not comment id: a user with several comments
// on the same post can only have the first match removed. This mirrors the
// upstream API contract and is kept deliberately.
func (p *Post) RemoveCommentByAuthor(userID uuid.UUID) bool {
	for i, c := range p.Comments {
		if c.UserID == userID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return true
		}
	}
	return false
}

type Repository interface {
	// FindByID returns apperror.ErrNotFound when the post does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)
	// FindAll returns every post, newest first.
	FindAll(ctx context.Context) ([]*Post, error)
	Create(ctx context.Context, p *Post) error
	// Update replaces the whole aggregate, likes and comments included.
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}
