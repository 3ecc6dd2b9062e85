package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khanhvu/devconnect/internal/domain/post"
	"github.com/khanhvu/devconnect/pkg/apperror"
	"github.com/khanhvu/devconnect/pkg/logger"
)

// postgresPostRepo stores each post as one row with its likes and comments
// in JSONB columns, written back whole on every mutation.
type postgresPostRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresPostRepo(db *pgxpool.Pool, log logger.Logger) post.Repository {
	return &postgresPostRepo{db: db, logger: log}
}

const postColumns = "id, user_id, text, name, avatar, likes, comments, date"

func (r *postgresPostRepo) scanPost(row pgx.Row) (*post.Post, error) {
	p := &post.Post{}
	var likesBytes, commentsBytes []byte

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Text,
		&p.Name,
		&p.Avatar,
		&likesBytes,
		&commentsBytes,
		&p.Date,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(likesBytes, &p.Likes); err != nil {
		r.logger.Warn("Failed to unmarshal post likes", zap.String("post_id", p.ID.String()), zap.Error(err))
		p.Likes = []post.Like{}
	}
	if err := json.Unmarshal(commentsBytes, &p.Comments); err != nil {
		r.logger.Warn("Failed to unmarshal post comments", zap.String("post_id", p.ID.String()), zap.Error(err))
		p.Comments = []post.Comment{}
	}

	return p, nil
}

func (r *postgresPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	p, err := r.scanPost(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("post", id.String())
		}
		return nil, mapStoreError("failed to query post", err)
	}
	return p, nil
}

func (r *postgresPostRepo) FindAll(ctx context.Context) ([]*post.Post, error) {
	builder := psql.Select(postColumns).
		From("posts").
		OrderBy("date DESC")

	query, args, _ := builder.ToSql()
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapStoreError("failed to query posts", err)
	}
	defer rows.Close()

	posts := make([]*post.Post, 0)
	for rows.Next() {
		p, err := r.scanPost(rows)
		if err != nil {
			return nil, mapStoreError("failed to scan post row", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError("error iterating post rows", err)
	}
	return posts, nil
}

func (r *postgresPostRepo) marshalEmbedded(p *post.Post) (likes, comments []byte, err error) {
	if likes, err = json.Marshal(p.Likes); err != nil {
		return nil, nil, apperror.NewInternal("failed to marshal post likes", err)
	}
	if comments, err = json.Marshal(p.Comments); err != nil {
		return nil, nil, apperror.NewInternal("failed to marshal post comments", err)
	}
	return likes, comments, nil
}

func (r *postgresPostRepo) Create(ctx context.Context, p *post.Post) error {
	likes, comments, err := r.marshalEmbedded(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO posts (` + postColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.Exec(ctx, query, p.ID, p.UserID, p.Text, p.Name, p.Avatar, likes, comments, p.Date)
	if err != nil {
		return mapStoreError("failed to insert post", err)
	}
	return nil
}

func (r *postgresPostRepo) Update(ctx context.Context, p *post.Post) error {
	likes, comments, err := r.marshalEmbedded(p)
	if err != nil {
		return err
	}

	query := `
		UPDATE posts SET
			text = $2, name = $3, avatar = $4, likes = $5, comments = $6
		WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, p.ID, p.Text, p.Name, p.Avatar, likes, comments)
	if err != nil {
		return mapStoreError("failed to update post", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("post", p.ID.String())
	}
	return nil
}

func (r *postgresPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return mapStoreError("failed to delete post", err)
	}
	return nil
}
