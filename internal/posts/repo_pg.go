package posts

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, post Post) (int64, error) {
	const query = `
INSERT INTO posts (user_id, content, created_at, posted_at)
VALUES ($1, $2, $3, NULL)
RETURNING id`

	var id int64
	err := r.DB.QueryRowContext(ctx, query, post.UserID, post.Content, post.CreatedAt).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id int64, userID string) (Post, error) {
	const query = `
SELECT id, user_id, content, created_at, posted_at
FROM posts
WHERE id = $1 AND user_id = $2
LIMIT 1`

	var post Post
	var postedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id, userID).Scan(
		&post.ID,
		&post.UserID,
		&post.Content,
		&post.CreatedAt,
		&postedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Post{}, ErrNotFound
		}
		return Post{}, err
	}
	if postedAt.Valid {
		post.PostedAt = &postedAt.Time
	}
	return post, nil
}

// MarkPosted is a single conditional update; the WHERE clause carries the
// lifecycle invariants (set once, never before created_at).
func (r *PGRepo) MarkPosted(ctx context.Context, id int64, userID string, postedAt time.Time) error {
	const query = `
UPDATE posts
SET posted_at = $1
WHERE id = $2 AND user_id = $3 AND posted_at IS NULL AND created_at <= $1`

	res, err := r.DB.ExecContext(ctx, query, postedAt, id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Post, error) {
	const query = `
SELECT id, user_id, content, created_at, posted_at
FROM posts
WHERE user_id = $1
ORDER BY created_at ASC, id ASC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Post{}
	for rows.Next() {
		var post Post
		var postedAt sql.NullTime
		if err := rows.Scan(&post.ID, &post.UserID, &post.Content, &post.CreatedAt, &postedAt); err != nil {
			return nil, err
		}
		if postedAt.Valid {
			post.PostedAt = &postedAt.Time
		}
		out = append(out, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
