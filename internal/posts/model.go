package posts

import "time"

// Post is a generated piece of content plus its lifecycle timestamps. A post
// with a nil PostedAt has been generated but not yet published; PostedAt is
// set exactly once, when publication succeeds.
type Post struct {
	ID        int64      `json:"id"`
	UserID    string     `json:"userId"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	PostedAt  *time.Time `json:"postedAt,omitempty"`
}
