package http

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/devconnect/adapters/event"
	"github.com/khoahotran/devconnect/internal/domain/post"
	"github.com/khoahotran/devconnect/internal/domain/profile"
	"github.com/khoahotran/devconnect/internal/domain/user"
)

type memUserRepo struct {
	byID map[uuid.UUID]user.User
}

func newMemUserRepo(users ...user.User) *memUserRepo {
	r := &memUserRepo{byID: make(map[uuid.UUID]user.User)}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := u
	return &cp, nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

type memPostRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]post.Post
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{byID: make(map[uuid.UUID]post.Post)}
}

func (r *memPostRepo) Save(_ context.Context, p *post.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = *p
	return nil
}

func (r *memPostRepo) Update(_ context.Context, p *post.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return post.ErrPostNotFound
	}
	r.byID[p.ID] = *p
	return nil
}

func (r *memPostRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *memPostRepo) DeleteByAuthor(_ context.Context, authorID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.byID {
		if p.AuthorID == authorID {
			delete(r.byID, id)
		}
	}
	return nil
}

func (r *memPostRepo) FindByID(_ context.Context, id uuid.UUID) (*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	cp := p
	return &cp, nil
}

func (r *memPostRepo) ListAll(_ context.Context) ([]*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*post.Post, 0, len(r.byID))
	for _, p := range r.byID {
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}

type memProfileRepo struct {
	byUser map[uuid.UUID]profile.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{byUser: make(map[uuid.UUID]profile.Profile)}
}

func (r *memProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, ok := r.byUser[userID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	cp := p
	return &cp, nil
}

func (r *memProfileRepo) ListAll(_ context.Context) ([]*profile.Profile, error) {
	out := make([]*profile.Profile, 0, len(r.byUser))
	for _, p := range r.byUser {
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProfileRepo) Upsert(_ context.Context, p *profile.Profile) error {
	r.byUser[p.UserID] = *p
	return nil
}

func (r *memProfileRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	delete(r.byUser, userID)
	return nil
}

type nopPublisher struct{}

func (nopPublisher) PublishPostEvent(context.Context, event.PostEventPayload) error { return nil }
func (nopPublisher) PublishAccountEvent(context.Context, event.AccountEventPayload) error {
	return nil
}
