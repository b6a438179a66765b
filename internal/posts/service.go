package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"linkedin-backend/internal/llm"
	"linkedin-backend/internal/tokens"
)

// hashtagSuffix is appended to every generated post.
const hashtagSuffix = " #PersonalBranding #IndustryTrends"

// defaultTrends backs GeneratePost when the caller supplies none.
var defaultTrends = []string{
	"AI in marketing",
	"Personal branding in 2025",
	"Social media analytics",
}

// Publisher publishes plain-text shares on the external platform.
type Publisher interface {
	Publish(ctx context.Context, accessToken, authorURN, text string) (string, error)
}

// Service owns the post lifecycle: generation creates an unpublished record,
// scheduling publishes it and stamps posted_at exactly once.
type Service struct {
	Repo     Repo
	Tokens   tokens.Store
	LLM      llm.Client
	Platform Publisher

	now func() time.Time
}

func NewService(repo Repo, tokenStore tokens.Store, llmClient llm.Client, platform Publisher) *Service {
	return &Service{
		Repo:     repo,
		Tokens:   tokenStore,
		LLM:      llmClient,
		Platform: platform,
		now:      time.Now,
	}
}

// GenerateInput carries the profile fields and trends for post generation.
type GenerateInput struct {
	UserID     string
	Skills     []string
	Experience []string
	Interests  []string
	Trends     []string
}

// Generate produces post text from the profile and trends, appends the fixed
// hashtags and records the post as not yet published. The row is inserted
// only after generation succeeds.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (Post, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return Post{}, errors.New("user id is required")
	}

	trends := input.Trends
	if len(trends) == 0 {
		trends = defaultTrends
	}

	base, err := s.LLM.GeneratePost(ctx, llm.GenerateInput{
		ProfileSummary: profileSummary(input.Skills, input.Experience, input.Interests),
		Trends:         trends,
	})
	if err != nil {
		return Post{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	post := Post{
		UserID:    input.UserID,
		Content:   base + hashtagSuffix,
		CreatedAt: s.now().UTC(),
	}
	id, err := s.Repo.Create(ctx, post)
	if err != nil {
		return Post{}, fmt.Errorf("create post: %w", err)
	}
	post.ID = id
	return post, nil
}

// Schedule publishes the post on behalf of the user and stamps posted_at with
// the caller-supplied time. The token lookup happens first: without a valid
// cached token neither the platform nor the repository is touched. A publish
// rejection leaves the record unchanged so the caller can retry.
func (s *Service) Schedule(ctx context.Context, userID string, postID int64, scheduledTime time.Time) error {
	if strings.TrimSpace(userID) == "" {
		return errors.New("user id is required")
	}

	token, ok, err := s.Tokens.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("token lookup: %w", err)
	}
	if !ok {
		return ErrNoValidToken
	}

	post, err := s.Repo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.PostedAt != nil {
		return ErrAlreadyPosted
	}
	if scheduledTime.Before(post.CreatedAt) {
		return ErrInvalidScheduleTime
	}

	if _, err := s.Platform.Publish(ctx, token, "urn:li:person:"+userID, post.Content); err != nil {
		return fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}

	if err := s.Repo.MarkPosted(ctx, postID, userID, scheduledTime); err != nil {
		return fmt.Errorf("mark posted: %w", err)
	}
	return nil
}

// Analytics returns all posts for the user in creation order. A user with no
// posts yields an empty slice, not an error.
func (s *Service) Analytics(ctx context.Context, userID string) ([]Post, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("user id is required")
	}
	return s.Repo.ListByUser(ctx, userID)
}

// profileSummary builds the deterministic summary string fed to generation.
func profileSummary(skills, experience, interests []string) string {
	return fmt.Sprintf("Skills: %s, Experience: %s, Interests: %s",
		strings.Join(skills, ", "),
		strings.Join(experience, ", "),
		strings.Join(interests, ", "),
	)
}
