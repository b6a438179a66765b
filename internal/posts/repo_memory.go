package posts

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	posts  map[int64]Post
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, posts: make(map[int64]Post)}
}

func (r *MemoryRepo) Create(ctx context.Context, post Post) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = r.nextID
	post.PostedAt = nil
	r.nextID++
	r.posts[post.ID] = post
	return post.ID, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id int64, userID string) (Post, error) {
	if err := ctx.Err(); err != nil {
		return Post{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	post, ok := r.posts[id]
	if !ok || post.UserID != userID {
		return Post{}, ErrNotFound
	}
	return post, nil
}

func (r *MemoryRepo) MarkPosted(ctx context.Context, id int64, userID string, postedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok || post.UserID != userID || post.PostedAt != nil || postedAt.Before(post.CreatedAt) {
		return ErrNotFound
	}
	stamp := postedAt
	post.PostedAt = &stamp
	r.posts[id] = post
	return nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Post{}
	for _, post := range r.posts {
		if post.UserID == userID {
			out = append(out, post)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
