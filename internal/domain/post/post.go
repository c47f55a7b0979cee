package post

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post has not been liked")
)

// IsOwner is the authorization predicate for aggregate mutations: only the
// owner of a post or comment may remove it.
func IsOwner(actorID, ownerID uuid.UUID) bool {
	return actorID == ownerID
}

// Like marks a single user's like. At most one per (post, user).
type Like struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user"`
}

// Comment carries a denormalized snapshot of the commenter's name and avatar
// taken at creation time; it is never re-synced with later user edits.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}

// Post is the aggregate root owning its Likes and Comments. Name and Avatar
// are a snapshot of the author at creation time.
type Post struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"date"`
}

func (p *Post) LikedBy(userID uuid.UUID) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

func (p *Post) AddLike(userID uuid.UUID) error {
	if p.LikedBy(userID) {
		return ErrAlreadyLiked
	}
	p.Likes = append([]Like{{ID: uuid.New(), UserID: userID}}, p.Likes...)
	return nil
}

func (p *Post) RemoveLike(userID uuid.UUID) error {
	for i, l := range p.Likes {
		if l.UserID == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return nil
		}
	}
	return ErrNotLiked
}

// AddComment prepends so the newest comment comes first, assigning a fresh
// identifier when none is set.
func (p *Post) AddComment(c Comment) Comment {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	p.Comments = append([]Comment{c}, p.Comments...)
	return c
}

func (p *Post) FindComment(id uuid.UUID) (*Comment, bool) {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i], true
		}
	}
	return nil, false
}

func (p *Post) RemoveComment(id uuid.UUID) error {
	for i, c := range p.Comments {
		if c.ID == id {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return nil
		}
	}
	return ErrCommentNotFound
}

type Repository interface {
	Save(ctx context.Context, p *Post) error
	// Update persists the whole aggregate after an embedded-collection
	// mutation (like, unlike, comment).
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)
	// ListAll returns every post, newest first.
	ListAll(ctx context.Context) ([]*Post, error)
}
