package profiles

import "time"

// Profile is a user's submitted skills, experience and interests.
type Profile struct {
	UserID     string    `json:"userId"`
	Skills     []string  `json:"skills"`
	Experience []string  `json:"experience"`
	Interests  []string  `json:"interests"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
