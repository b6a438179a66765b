package posts

import "errors"

var (
	// ErrNotFound means no post matched the given id for the user.
	ErrNotFound = errors.New("post not found")
	// ErrNoValidToken means no unexpired access token is cached for the user;
	// the caller must re-run the OAuth flow.
	ErrNoValidToken = errors.New("no valid access token")
	// ErrAlreadyPosted means the post already reached its terminal state.
	ErrAlreadyPosted = errors.New("post already published")
	// ErrGenerationFailed means the LLM call failed; no post row was created.
	ErrGenerationFailed = errors.New("post generation failed")
	// ErrPublishFailed means the platform rejected the publish; the post
	// record is unchanged and the publish can be retried.
	ErrPublishFailed = errors.New("publish failed")
	// ErrInvalidScheduleTime means the caller-supplied publication stamp
	// precedes the post's creation time.
	ErrInvalidScheduleTime = errors.New("scheduled time precedes post creation")
)
