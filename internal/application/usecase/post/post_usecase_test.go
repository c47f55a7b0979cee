package post

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/devconnect/adapters/event"
	"github.com/khoahotran/devconnect/internal/domain/post"
	"github.com/khoahotran/devconnect/internal/domain/user"
	"github.com/khoahotran/devconnect/pkg/apperror"
	"github.com/khoahotran/devconnect/pkg/logger"
)

type fakePostRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]post.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{byID: make(map[uuid.UUID]post.Post)}
}

func (r *fakePostRepo) Save(_ context.Context, p *post.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = *p
	return nil
}

func (r *fakePostRepo) Update(_ context.Context, p *post.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return post.ErrPostNotFound
	}
	r.byID[p.ID] = *p
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *fakePostRepo) DeleteByAuthor(_ context.Context, authorID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.byID {
		if p.AuthorID == authorID {
			delete(r.byID, id)
		}
	}
	return nil
}

func (r *fakePostRepo) FindByID(_ context.Context, id uuid.UUID) (*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	cp := p
	return &cp, nil
}

func (r *fakePostRepo) ListAll(_ context.Context) ([]*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*post.Post, 0, len(r.byID))
	for _, p := range r.byID {
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}

type fakeUserRepo struct {
	byID map[uuid.UUID]user.User
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: make(map[uuid.UUID]user.User)}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := u
	return &cp, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []event.PostEventPayload
}

func (p *capturingPublisher) PublishPostEvent(_ context.Context, payload event.PostEventPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, payload)
	return nil
}

func (p *capturingPublisher) waitForEvents(t *testing.T, n int) []event.PostEventPayload {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		if len(p.events) >= n {
			out := append([]event.PostEventPayload(nil), p.events...)
			p.mu.Unlock()
			return out
		}
		p.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d published events", n)
	return nil
}

func TestCreatePost_RequiresText(t *testing.T) {
	uc := NewCreatePostUseCase(newFakePostRepo(), newFakeUserRepo(), &capturingPublisher{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), CreatePostInput{AuthorID: uuid.New()})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestCreatePost_SnapshotsAuthorAndPublishes(t *testing.T) {
	author := user.User{ID: uuid.New(), Email: "dev@example.com", Name: "Dev One", Avatar: "//gravatar/abc"}
	repo := newFakePostRepo()
	pub := &capturingPublisher{}
	uc := NewCreatePostUseCase(repo, newFakeUserRepo(author), pub, logger.NewNop())

	p, err := uc.Execute(context.Background(), CreatePostInput{AuthorID: author.ID, Text: "hello world"})
	require.NoError(t, err)

	assert.Equal(t, author.ID, p.AuthorID)
	assert.Equal(t, "Dev One", p.Name)
	assert.Equal(t, "//gravatar/abc", p.Avatar)
	assert.NotNil(t, p.Likes)
	assert.NotNil(t, p.Comments)

	events := pub.waitForEvents(t, 1)
	assert.Equal(t, event.PostEventTypeCreated, events[0].EventType)
	assert.Equal(t, p.ID, events[0].PostID)
}

func TestCreatePost_UnknownAuthor(t *testing.T) {
	uc := NewCreatePostUseCase(newFakePostRepo(), newFakeUserRepo(), &capturingPublisher{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), CreatePostInput{AuthorID: uuid.New(), Text: "hi"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestLikePost_OncePerUser(t *testing.T) {
	repo := newFakePostRepo()
	p := post.Post{ID: uuid.New(), AuthorID: uuid.New(), Text: "hi", Likes: []post.Like{}}
	require.NoError(t, repo.Save(context.Background(), &p))

	uc := NewLikePostUseCase(repo)
	liker := uuid.New()

	likes, err := uc.Like(context.Background(), liker, p.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, liker, likes[0].UserID)

	_, err = uc.Like(context.Background(), liker, p.ID)
	require.ErrorIs(t, err, apperror.ErrConflict)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Post already liked", appErr.Message)
}

func TestUnlikePost(t *testing.T) {
	repo := newFakePostRepo()
	p := post.Post{ID: uuid.New(), AuthorID: uuid.New(), Text: "hi", Likes: []post.Like{}}
	require.NoError(t, repo.Save(context.Background(), &p))

	uc := NewLikePostUseCase(repo)
	liker := uuid.New()

	_, err := uc.Unlike(context.Background(), liker, p.ID)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = uc.Like(context.Background(), liker, p.ID)
	require.NoError(t, err)

	likes, err := uc.Unlike(context.Background(), liker, p.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)
}

func TestLikePost_UnknownPost(t *testing.T) {
	uc := NewLikePostUseCase(newFakePostRepo())

	_, err := uc.Like(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeletePost_OnlyAuthor(t *testing.T) {
	repo := newFakePostRepo()
	author := uuid.New()
	p := post.Post{ID: uuid.New(), AuthorID: author, Text: "hi"}
	require.NoError(t, repo.Save(context.Background(), &p))

	pub := &capturingPublisher{}
	uc := NewDeletePostUseCase(repo, pub, logger.NewNop())

	err := uc.Execute(context.Background(), DeletePostInput{PostID: p.ID, ActorID: uuid.New()})
	require.ErrorIs(t, err, apperror.ErrPermission)

	// the rejected delete must not have touched the document
	_, err = repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)

	err = uc.Execute(context.Background(), DeletePostInput{PostID: p.ID, ActorID: author})
	require.NoError(t, err)

	_, err = repo.FindByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, post.ErrPostNotFound)

	events := pub.waitForEvents(t, 1)
	assert.Equal(t, event.PostEventTypeDeleted, events[0].EventType)

	err = uc.Execute(context.Background(), DeletePostInput{PostID: p.ID, ActorID: author})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestComments_Lifecycle(t *testing.T) {
	repo := newFakePostRepo()
	commenter := user.User{ID: uuid.New(), Email: "c@example.com", Name: "Commenter", Avatar: "//gravatar/c"}
	users := newFakeUserRepo(commenter)

	p := post.Post{ID: uuid.New(), AuthorID: uuid.New(), Text: "hi", Comments: []post.Comment{}}
	require.NoError(t, repo.Save(context.Background(), &p))

	uc := NewCommentPostUseCase(repo, users)

	_, err := uc.Add(context.Background(), AddCommentInput{PostID: p.ID, UserID: commenter.ID})
	require.ErrorIs(t, err, apperror.ErrInvalidInput)

	comments, err := uc.Add(context.Background(), AddCommentInput{PostID: p.ID, UserID: commenter.ID, Text: "first"})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Commenter", comments[0].Name)
	assert.Equal(t, "//gravatar/c", comments[0].Avatar)

	comments, err = uc.Add(context.Background(), AddCommentInput{PostID: p.ID, UserID: commenter.ID, Text: "second"})
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)

	target := comments[0]

	_, err = uc.Remove(context.Background(), RemoveCommentInput{PostID: p.ID, CommentID: target.ID, ActorID: uuid.New()})
	require.ErrorIs(t, err, apperror.ErrPermission)

	comments, err = uc.Remove(context.Background(), RemoveCommentInput{PostID: p.ID, CommentID: target.ID, ActorID: commenter.ID})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "first", comments[0].Text)

	_, err = uc.Remove(context.Background(), RemoveCommentInput{PostID: p.ID, CommentID: target.ID, ActorID: commenter.ID})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListPosts_NoCache(t *testing.T) {
	repo := newFakePostRepo()
	for i := 0; i < 3; i++ {
		p := post.Post{ID: uuid.New(), AuthorID: uuid.New(), Text: "hi"}
		require.NoError(t, repo.Save(context.Background(), &p))
	}

	uc := NewListPostsUseCase(repo, nil, logger.NewNop())

	posts, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 3)
}
