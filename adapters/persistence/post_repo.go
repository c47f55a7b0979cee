package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/devconnect/internal/domain/post"
)

// Posts are stored document-style: the likes and comments collections live
// in JSONB columns of the post row, so deleting the row drops the whole
// aggregate atomically.
type postgresPostRepo struct {
	db *pgxpool.Pool
}

func NewPostgresPostRepo(db *pgxpool.Pool) post.Repository {
	return &postgresPostRepo{db: db}
}

var psqlPost = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const postColumns = "id, author_id, text, name, avatar, likes, comments, created_at"

func scanPostRow(row pgx.Row) (*post.Post, error) {
	p := &post.Post{}
	var likesBytes, commentsBytes []byte

	err := row.Scan(
		&p.ID,
		&p.AuthorID,
		&p.Text,
		&p.Name,
		&p.Avatar,
		&likesBytes,
		&commentsBytes,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to scan post row: %w", err)
	}

	if err := json.Unmarshal(likesBytes, &p.Likes); err != nil {
		p.Likes = []post.Like{}
	}
	if err := json.Unmarshal(commentsBytes, &p.Comments); err != nil {
		p.Comments = []post.Comment{}
	}
	return p, nil
}

func (r *postgresPostRepo) Save(ctx context.Context, p *post.Post) error {
	likesBytes, err := json.Marshal(p.Likes)
	if err != nil {
		return fmt.Errorf("failed to marshal post likes: %w", err)
	}
	commentsBytes, err := json.Marshal(p.Comments)
	if err != nil {
		return fmt.Errorf("failed to marshal post comments: %w", err)
	}

	query := `
		INSERT INTO posts (id, author_id, text, name, avatar, likes, comments, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.Exec(ctx, query,
		p.ID, p.AuthorID, p.Text, p.Name, p.Avatar,
		likesBytes, commentsBytes, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	return nil
}

func (r *postgresPostRepo) Update(ctx context.Context, p *post.Post) error {
	likesBytes, err := json.Marshal(p.Likes)
	if err != nil {
		return fmt.Errorf("failed to marshal post likes: %w", err)
	}
	commentsBytes, err := json.Marshal(p.Comments)
	if err != nil {
		return fmt.Errorf("failed to marshal post comments: %w", err)
	}

	query := `
		UPDATE posts SET
			text = $2, likes = $3, comments = $4
		WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, p.ID, p.Text, likesBytes, commentsBytes)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

func (r *postgresPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

// DeleteByAuthor removes every post a user authored; zero rows is fine.
func (r *postgresPostRepo) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM posts WHERE author_id = $1`, authorID)
	if err != nil {
		return fmt.Errorf("failed to delete posts by author: %w", err)
	}
	return nil
}

func (r *postgresPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	return scanPostRow(r.db.QueryRow(ctx, query, id))
}

func (r *postgresPostRepo) ListAll(ctx context.Context) ([]*post.Post, error) {
	builder := psqlPost.Select(postColumns).
		From("posts").
		OrderBy("created_at DESC")

	sql, args, _ := builder.ToSql()
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*post.Post, 0)
	for rows.Next() {
		p, err := scanPostRow(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}
	return posts, nil
}
