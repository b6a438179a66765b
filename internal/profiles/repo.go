package profiles

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "profile not found" }

// Repo defines persistence operations for profiles. Upsert keeps exactly one
// record per user; re-submission overwrites prior values.
type Repo interface {
	Upsert(ctx context.Context, profile Profile) error
	GetByUserID(ctx context.Context, userID string) (Profile, error)
}
