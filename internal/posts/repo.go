package posts

import (
	"context"
	"time"
)

// Repo defines persistence operations for posts.
type Repo interface {
	// Create inserts a new unpublished post and returns the assigned id.
	Create(ctx context.Context, post Post) (int64, error)
	// GetByID returns the post with the given id owned by userID.
	GetByID(ctx context.Context, id int64, userID string) (Post, error)
	// MarkPosted stamps posted_at on a not-yet-posted post. The stamp must
	// not precede the post's creation time; a post that is missing, already
	// posted, or stamped too early reports ErrNotFound.
	MarkPosted(ctx context.Context, id int64, userID string, postedAt time.Time) error
	// ListByUser returns all posts for a user ordered by creation time.
	ListByUser(ctx context.Context, userID string) ([]Post, error)
}
